package user

import (
	"fmt"

	"bookcircle/models"
)

// GetUserByID fetches the full user document.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// GetUserByEmail fetches a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return usr, nil
}

// UpdateUser applies the mutable profile fields.
func (s *DefaultUserService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	usr, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		usr.Username = req.Username
	}
	if req.PhoneNumber != "" {
		usr.PhoneNumber = req.PhoneNumber
	}
	if req.ProfileImage != "" {
		usr.ProfileImage = req.ProfileImage
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// DeleteUser removes the account and revokes its session.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.RevokeUserAuthToken(userID); err != nil {
		return err
	}
	return s.Repo.Delete(userID)
}

// GetAllUsers lists every user (admin surface).
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
