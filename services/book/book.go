package book

import (
	"fmt"

	bookRepo "bookcircle/database/repository/book"
	societyRepo "bookcircle/database/repository/society"
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/credit"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validConditions = map[string]bool{
	models.ConditionNew:  true,
	models.ConditionGood: true,
	models.ConditionFair: true,
	models.ConditionWorn: true,
}

// BookService manages book listings.
type BookService interface {
	Create(ownerID string, req models.BookCreateRequest) (*models.Book, error)
	Update(ownerID, bookID string, req models.BookUpdateRequest) (*models.Book, error)
	Delete(ownerID, bookID string) error

	GetByID(bookID string) (*models.Book, error)
	ListBySociety(societyID string, availableOnly bool) ([]models.Book, error)
	ListByOwner(ownerID string) ([]models.Book, error)

	SetCover(ownerID, bookID, url string) error
	Lookup(isbn string) (*models.BookMetadata, error)
}

// DefaultBookService is the production implementation.
type DefaultBookService struct {
	Repo      bookRepo.BookRepository
	Users     userRepo.UserRepository
	Societies societyRepo.SocietyRepository
	Credits   credit.CreditService
	Catalog   *CatalogClient
}

// Create lists a book in one of the owner's societies and grants the upload
// reward.
func (s *DefaultBookService) Create(ownerID string, req models.BookCreateRequest) (*models.Book, error) {
	if req.Title == "" || req.Author == "" {
		return nil, fmt.Errorf("title and author are required")
	}
	if !validConditions[req.Condition] {
		return nil, fmt.Errorf("unknown condition %q", req.Condition)
	}
	if req.DailyFee <= 0 {
		return nil, fmt.Errorf("daily fee must be positive")
	}

	owner, err := s.Users.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if !memberOf(owner, req.SocietyID) {
		return nil, fmt.Errorf("you must be a member of the society to list a book there")
	}
	soc, err := s.Societies.GetByID(req.SocietyID)
	if err != nil {
		return nil, err
	}
	if soc.Status != models.SocietyStatusApproved {
		return nil, fmt.Errorf("society %s is not approved", soc.Name)
	}

	bk := &models.Book{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		Condition:   req.Condition,
		DailyFee:    req.DailyFee,
		OwnerID:     ownerID,
		SocietyID:   req.SocietyID,
		IsAvailable: true,
	}
	if err := s.Repo.Create(bk); err != nil {
		return nil, err
	}

	if err := s.Users.IncrementBooksUploaded(ownerID, 1); err != nil {
		utils.GetLogger().Error("Create: failed to bump upload counter",
			zap.String("ownerID", ownerID), zap.Error(err))
	}
	if err := s.Societies.IncrementBooks(req.SocietyID, 1); err != nil {
		utils.GetLogger().Error("Create: failed to bump society book count",
			zap.String("societyID", req.SocietyID), zap.Error(err))
	}
	if err := s.Credits.Award(ownerID, credit.UploadReward, models.CreditTypeUploadReward,
		"book listed", bk.ID); err != nil {
		utils.GetLogger().Error("Create: failed to award upload reward",
			zap.String("ownerID", ownerID), zap.Error(err))
	}

	return bk, nil
}

// Update edits a listing. Owner only.
func (s *DefaultBookService) Update(ownerID, bookID string, req models.BookUpdateRequest) (*models.Book, error) {
	bk, err := s.Repo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if bk.OwnerID != ownerID {
		return nil, fmt.Errorf("only the owner can edit this book")
	}

	if req.Title != "" {
		bk.Title = req.Title
	}
	if req.Author != "" {
		bk.Author = req.Author
	}
	if req.Genre != "" {
		bk.Genre = req.Genre
	}
	if req.Condition != "" {
		if !validConditions[req.Condition] {
			return nil, fmt.Errorf("unknown condition %q", req.Condition)
		}
		bk.Condition = req.Condition
	}
	if req.DailyFee > 0 {
		bk.DailyFee = req.DailyFee
	}

	if err := s.Repo.Update(bk); err != nil {
		return nil, err
	}
	return bk, nil
}

// Delete removes a listing. Owner only, and never while the book is out on
// loan.
func (s *DefaultBookService) Delete(ownerID, bookID string) error {
	bk, err := s.Repo.GetByID(bookID)
	if err != nil {
		return err
	}
	if bk.OwnerID != ownerID {
		return fmt.Errorf("only the owner can delete this book")
	}
	if !bk.IsAvailable {
		return fmt.Errorf("book is currently on loan")
	}

	if err := s.Repo.Delete(bookID); err != nil {
		return err
	}
	if err := s.Societies.IncrementBooks(bk.SocietyID, -1); err != nil {
		utils.GetLogger().Error("Delete: failed to drop society book count",
			zap.String("societyID", bk.SocietyID), zap.Error(err))
	}
	return nil
}

// GetByID fetches one book.
func (s *DefaultBookService) GetByID(bookID string) (*models.Book, error) {
	return s.Repo.GetByID(bookID)
}

// ListBySociety lists books scoped to a society.
func (s *DefaultBookService) ListBySociety(societyID string, availableOnly bool) ([]models.Book, error) {
	return s.Repo.ListBySociety(societyID, availableOnly)
}

// ListByOwner lists a user's own books.
func (s *DefaultBookService) ListByOwner(ownerID string) ([]models.Book, error) {
	return s.Repo.ListByOwner(ownerID)
}

// SetCover stores the uploaded cover URL. Owner only.
func (s *DefaultBookService) SetCover(ownerID, bookID, url string) error {
	bk, err := s.Repo.GetByID(bookID)
	if err != nil {
		return err
	}
	if bk.OwnerID != ownerID {
		return fmt.Errorf("only the owner can change the cover")
	}
	return s.Repo.SetCoverURL(bookID, url)
}

// Lookup resolves ISBN metadata via the catalog client.
func (s *DefaultBookService) Lookup(isbn string) (*models.BookMetadata, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("catalog lookups are not configured")
	}
	return s.Catalog.Lookup(isbn)
}

func memberOf(usr *models.User, societyID string) bool {
	for _, id := range usr.SocietyIDs {
		if id == societyID {
			return true
		}
	}
	return false
}
