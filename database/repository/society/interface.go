package societyRepo

import "bookcircle/models"

// SocietyRepository defines persistence operations for societies.
type SocietyRepository interface {
	Create(society *models.Society) error

	GetByID(id string) (*models.Society, error)
	GetByCode(code string) (*models.Society, error)
	ListByStatus(status string) ([]models.Society, error)
	GetAll() ([]models.Society, error)

	// UpdateStatus moves a pending society to approved or rejected. It fails
	// when the society is not pending.
	UpdateStatus(id, status string) error

	IncrementMembers(id string, delta int) error
	IncrementBooks(id string, delta int) error
}
