package userRepo

import (
	"time"

	"bookcircle/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error

	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByReferralCode(code string) (*models.User, error)
	GetAll() ([]models.User, error)

	SetTokenHash(userID, tokenHash string) error
	AddSociety(userID, societyID string) error
	IncrementBooksUploaded(userID string, delta int) error
	IncrementReferralStats(userID string, referrals int, earnings float64) error
	SetCommissionFreeUntil(userID string, until time.Time) error

	AppendNotification(userID string, n models.Notification) error
	MarkNotificationsRead(userID string, ids []string) error
}
