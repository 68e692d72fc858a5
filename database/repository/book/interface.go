package bookRepo

import "bookcircle/models"

// BookRepository defines persistence operations for listed books.
type BookRepository interface {
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id string) error

	GetByID(id string) (*models.Book, error)
	ListBySociety(societyID string, availableOnly bool) ([]models.Book, error)
	ListByOwner(ownerID string) ([]models.Book, error)

	// SetAvailability flips is_available from the expected current value to
	// the new one. It fails when the book is absent or already flipped, which
	// is what keeps availability in lockstep with active rentals.
	SetAvailability(id string, from, to bool) error

	SetCoverURL(id, url string) error
}
