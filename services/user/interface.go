package user

import (
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/credit"
)

// UserService handles registration, authentication and profile management.
type UserService interface {
	RegisterUser(data models.UserRegistrationData) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	RevokeUserAuthToken(userID string) error

	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(userID string) error
	UpdateUserPassword(userID, currentPassword, newPassword string) error

	// Admin / utility
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Credits credit.CreditService
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}
