package notification

import (
	"fmt"
	"time"

	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService delivers in-app notifications.
type NotificationService interface {
	Notify(userID, notifType, message string, data map[string]interface{}) error
	List(userID string) ([]models.Notification, error)
	MarkRead(userID string, ids []string) error
}

// DefaultNotificationService appends notifications to the user document.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

// Notify appends one notification. Delivery failures are logged, not fatal;
// a missing user is still an error.
func (s *DefaultNotificationService) Notify(userID, notifType, message string, data map[string]interface{}) error {
	n := models.Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Message:   message,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Users.AppendNotification(userID, n); err != nil {
		utils.GetLogger().Error("failed to append notification",
			zap.String("userID", userID), zap.String("type", notifType), zap.Error(err))
		return fmt.Errorf("failed to notify user %s: %w", userID, err)
	}
	return nil
}

// List returns the user's notifications.
func (s *DefaultNotificationService) List(userID string) ([]models.Notification, error) {
	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return usr.Notifications, nil
}

// MarkRead flags the given notifications as read.
func (s *DefaultNotificationService) MarkRead(userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.Users.MarkNotificationsRead(userID, ids)
}
