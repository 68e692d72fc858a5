package user

import (
	"context"
	"fmt"
	"time"

	"bookcircle/models"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// RegisterUser validates the payload, checks for duplicates, persists the
// user and returns an auth response. When a referral code is supplied the
// referrer is linked and a pending referral is recorded.
func (s *DefaultUserService) RegisterUser(data models.UserRegistrationData) (*AuthResponse, error) {
	if data.Email == "" || data.Password == "" || data.Username == "" {
		return nil, fmt.Errorf("username, email and password are required")
	}

	existing, err := s.Repo.GetByEmail(data.Email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: duplicate check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	var referrer *models.User
	if data.ReferralCode != "" {
		referrer, err = s.Repo.GetByReferralCode(data.ReferralCode)
		if err != nil {
			utils.GetLogger().Error("RegisterUser: referral lookup failed", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
		if referrer == nil {
			return nil, fmt.Errorf("unknown referral code")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.newUniqueReferralCode()
	if err != nil {
		return nil, err
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: string(hash),
		PhoneNumber:  data.PhoneNumber,
		ReferralCode: code,
	}
	if referrer != nil {
		usr.ReferredBy = referrer.ID
	}

	if err := s.Repo.Create(usr); err != nil {
		return nil, err
	}

	if referrer != nil {
		if err := s.Credits.RecordReferral(referrer.ID, usr.ID, data.ReferralCode); err != nil {
			utils.GetLogger().Error("RegisterUser: failed to record referral",
				zap.String("referrerID", referrer.ID), zap.Error(err))
		}
	}

	return s.issueToken(usr)
}

// AuthenticateUser verifies credentials and issues a token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: lookup failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(usr)
}

// RevokeUserAuthToken signs the user out everywhere.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	if err := s.Repo.SetTokenHash(userID, ""); err != nil {
		return err
	}
	cacheKey := utils.AuthCachePrefix + userID
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("RevokeUserAuthToken: failed to clear auth cache",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// UpdateUserPassword verifies the current password before replacing it. The
// session is revoked so the old token stops working.
func (s *DefaultUserService) UpdateUserPassword(userID, currentPassword, newPassword string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	usr.PasswordHash = string(hash)
	if err := s.Repo.Update(usr); err != nil {
		return err
	}
	return s.RevokeUserAuthToken(userID)
}

func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(usr.ID, tokenHash); err != nil {
		return nil, err
	}

	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("issueToken: failed to prime auth cache",
			zap.String("userID", usr.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:           usr.ID,
		Token:        token,
		Username:     usr.Username,
		Email:        usr.Email,
		ReferralCode: usr.ReferralCode,
	}, nil
}
