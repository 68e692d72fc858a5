package society

import (
	"fmt"

	societyRepo "bookcircle/database/repository/society"
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/notification"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const joinCodeLength = 6

// SocietyService manages community lifecycle and membership.
type SocietyService interface {
	RequestCreate(userID string, req models.SocietyCreateRequest) (*models.Society, error)
	Approve(id string) (*models.Society, error)
	Reject(id string) error
	JoinByCode(userID, code string) (*models.Society, error)

	GetByID(id string) (*models.Society, error)
	ListPending() ([]models.Society, error)
	ListAll() ([]models.Society, error)
}

// DefaultSocietyService is the production implementation.
type DefaultSocietyService struct {
	Repo     societyRepo.SocietyRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
}

// RequestCreate files a society request in pending state. The requester
// becomes the first member once the society is approved and they join.
func (s *DefaultSocietyService) RequestCreate(userID string, req models.SocietyCreateRequest) (*models.Society, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("society name is required")
	}
	if req.ApartmentCount < 0 {
		return nil, fmt.Errorf("apartment count cannot be negative")
	}

	code, err := s.newUniqueJoinCode()
	if err != nil {
		return nil, err
	}

	soc := &models.Society{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Code:           code,
		ApartmentCount: req.ApartmentCount,
		Status:         models.SocietyStatusPending,
		RequestedBy:    userID,
	}
	if err := s.Repo.Create(soc); err != nil {
		return nil, err
	}
	return soc, nil
}

// Approve moves a pending society to approved and tells the requester.
func (s *DefaultSocietyService) Approve(id string) (*models.Society, error) {
	if err := s.Repo.UpdateStatus(id, models.SocietyStatusApproved); err != nil {
		return nil, err
	}
	soc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	_ = s.Notifier.Notify(soc.RequestedBy, "society_approved",
		fmt.Sprintf("Your society %q was approved. Share code %s to invite neighbours.", soc.Name, soc.Code),
		map[string]interface{}{"societyId": soc.ID, "code": soc.Code})

	return soc, nil
}

// Reject moves a pending society to rejected.
func (s *DefaultSocietyService) Reject(id string) error {
	if err := s.Repo.UpdateStatus(id, models.SocietyStatusRejected); err != nil {
		return err
	}
	soc, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Warn("Reject: fetch after update failed", zap.String("societyID", id), zap.Error(err))
		return nil
	}
	_ = s.Notifier.Notify(soc.RequestedBy, "society_rejected",
		fmt.Sprintf("Your society request %q was rejected.", soc.Name),
		map[string]interface{}{"societyId": soc.ID})
	return nil
}

// JoinByCode adds the user to an approved society.
func (s *DefaultSocietyService) JoinByCode(userID, code string) (*models.Society, error) {
	soc, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if soc == nil {
		return nil, fmt.Errorf("no society with code %s", code)
	}
	if soc.Status != models.SocietyStatusApproved {
		return nil, fmt.Errorf("society %s is not accepting members", soc.Name)
	}

	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	for _, id := range usr.SocietyIDs {
		if id == soc.ID {
			return nil, fmt.Errorf("already a member of %s", soc.Name)
		}
	}

	if err := s.Users.AddSociety(userID, soc.ID); err != nil {
		return nil, err
	}
	if err := s.Repo.IncrementMembers(soc.ID, 1); err != nil {
		return nil, err
	}
	soc.MemberCount++
	return soc, nil
}

// GetByID fetches one society.
func (s *DefaultSocietyService) GetByID(id string) (*models.Society, error) {
	return s.Repo.GetByID(id)
}

// ListPending lists societies awaiting an admin decision.
func (s *DefaultSocietyService) ListPending() ([]models.Society, error) {
	return s.Repo.ListByStatus(models.SocietyStatusPending)
}

// ListAll lists every society.
func (s *DefaultSocietyService) ListAll() ([]models.Society, error) {
	return s.Repo.GetAll()
}

func (s *DefaultSocietyService) newUniqueJoinCode() (string, error) {
	for attempts := 0; attempts < 5; attempts++ {
		code, err := utils.RandomCode(joinCodeLength)
		if err != nil {
			return "", err
		}
		existing, err := s.Repo.GetByCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique join code")
}
