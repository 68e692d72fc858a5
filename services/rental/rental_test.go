package rental

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookcircle/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// In-memory doubles for the repositories and collaborating services, so the
// lifecycle rules can be exercised without a database.

type fakeRentalStore struct {
	rentals    map[string]*models.Rental
	extensions map[string]*models.ExtensionRequest
	createErr  error
}

func newFakeRentalStore() *fakeRentalStore {
	return &fakeRentalStore{
		rentals:    make(map[string]*models.Rental),
		extensions: make(map[string]*models.ExtensionRequest),
	}
}

func (f *fakeRentalStore) Create(rental *models.Rental) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rental
	f.rentals[rental.ID] = &cp
	return nil
}

func (f *fakeRentalStore) GetByID(id string) (*models.Rental, error) {
	rental, ok := f.rentals[id]
	if !ok {
		return nil, errors.New("rental not found")
	}
	cp := *rental
	return &cp, nil
}

func (f *fakeRentalStore) ListByBorrower(userID string) ([]models.Rental, error) { return nil, nil }
func (f *fakeRentalStore) ListByLender(userID string) ([]models.Rental, error)  { return nil, nil }
func (f *fakeRentalStore) ListAll(status string) ([]models.Rental, error)       { return nil, nil }

func (f *fakeRentalStore) MarkReturned(id string, returnedAt time.Time, lateFee float64) error {
	rental, ok := f.rentals[id]
	if !ok || (rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusOverdue) {
		return errors.New("rental not open")
	}
	rental.Status = models.RentalStatusReturned
	rental.ActualReturnDate = &returnedAt
	rental.LateFee = lateFee
	return nil
}

func (f *fakeRentalStore) SetPaymentStatus(id, status string) error {
	rental, ok := f.rentals[id]
	if !ok {
		return errors.New("rental not found")
	}
	rental.PaymentStatus = status
	return nil
}

func (f *fakeRentalStore) CountPaidByBorrower(userID string) (int64, error) {
	var n int64
	for _, rental := range f.rentals {
		if rental.BorrowerID != userID {
			continue
		}
		if rental.PaymentStatus == models.PaymentStatusPaid || rental.PaymentStatus == models.PaymentStatusSettled {
			n++
		}
	}
	return n, nil
}

func (f *fakeRentalStore) AdvanceEndDate(id string, newDue time.Time) error {
	rental, ok := f.rentals[id]
	if !ok || (rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusOverdue) {
		return errors.New("rental not open")
	}
	rental.EndDate = newDue
	rental.Status = models.RentalStatusActive
	return nil
}

func (f *fakeRentalStore) RecordLateFeePayment(id string, at time.Time) error {
	rental, ok := f.rentals[id]
	if !ok || rental.Status != models.RentalStatusOverdue {
		return errors.New("rental not overdue")
	}
	rental.LateFeesSettledAt = &at
	return nil
}

func (f *fakeRentalStore) MarkOverdue(now time.Time) ([]models.Rental, error)          { return nil, nil }
func (f *fakeRentalStore) ListDueBetween(from, to time.Time) ([]models.Rental, error) { return nil, nil }

func (f *fakeRentalStore) CreateExtension(req *models.ExtensionRequest) error {
	cp := *req
	f.extensions[req.ID] = &cp
	return nil
}

func (f *fakeRentalStore) GetExtensionByID(id string) (*models.ExtensionRequest, error) {
	ext, ok := f.extensions[id]
	if !ok {
		return nil, errors.New("extension request not found")
	}
	cp := *ext
	return &cp, nil
}

func (f *fakeRentalStore) GetPendingExtensionByRental(rentalID string) (*models.ExtensionRequest, error) {
	for _, ext := range f.extensions {
		if ext.RentalID == rentalID && ext.Status == models.ExtensionStatusPending {
			cp := *ext
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRentalStore) ListExtensionsByLender(lenderID, status string) ([]models.ExtensionRequest, error) {
	return nil, nil
}

func (f *fakeRentalStore) DecideExtension(id, status string, decidedAt time.Time) error {
	ext, ok := f.extensions[id]
	if !ok || ext.Status != models.ExtensionStatusPending {
		return errors.New("extension request not pending")
	}
	ext.Status = status
	ext.DecidedAt = &decidedAt
	return nil
}

type fakeBookStore struct {
	books map[string]*models.Book
}

func (f *fakeBookStore) Create(book *models.Book) error { return nil }
func (f *fakeBookStore) Update(book *models.Book) error { return nil }
func (f *fakeBookStore) Delete(id string) error         { return nil }

func (f *fakeBookStore) GetByID(id string) (*models.Book, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, errors.New("book not found")
	}
	cp := *book
	return &cp, nil
}

func (f *fakeBookStore) ListBySociety(societyID string, availableOnly bool) ([]models.Book, error) {
	return nil, nil
}
func (f *fakeBookStore) ListByOwner(ownerID string) ([]models.Book, error) { return nil, nil }

func (f *fakeBookStore) SetAvailability(id string, from, to bool) error {
	book, ok := f.books[id]
	if !ok || book.IsAvailable != from {
		return errors.New("availability flip rejected")
	}
	book.IsAvailable = to
	return nil
}

func (f *fakeBookStore) SetCoverURL(id, url string) error { return nil }

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) Create(user *models.User) error { return nil }
func (f *fakeUserStore) Update(user *models.User) error { return nil }
func (f *fakeUserStore) Delete(id string) error         { return nil }

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	usr, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	cp := *usr
	return &cp, nil
}

func (f *fakeUserStore) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}
func (f *fakeUserStore) GetByEmail(email string) (*models.User, error)       { return nil, nil }
func (f *fakeUserStore) GetByReferralCode(code string) (*models.User, error) { return nil, nil }
func (f *fakeUserStore) GetAll() ([]models.User, error)                      { return nil, nil }

func (f *fakeUserStore) SetTokenHash(userID, tokenHash string) error { return nil }
func (f *fakeUserStore) AddSociety(userID, societyID string) error   { return nil }
func (f *fakeUserStore) IncrementBooksUploaded(userID string, delta int) error {
	return nil
}
func (f *fakeUserStore) IncrementReferralStats(userID string, referrals int, earnings float64) error {
	return nil
}
func (f *fakeUserStore) SetCommissionFreeUntil(userID string, until time.Time) error { return nil }
func (f *fakeUserStore) AppendNotification(userID string, n models.Notification) error {
	return nil
}
func (f *fakeUserStore) MarkNotificationsRead(userID string, ids []string) error { return nil }

type fakePayments struct {
	processErr error
	charges    []models.PaymentRequest
	refunded   []string
}

func (f *fakePayments) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if f.processErr != nil {
		return nil, f.processErr
	}
	f.charges = append(f.charges, req)
	status := "paid"
	if req.Method == models.PaymentMethodCash {
		status = "pending"
	}
	return &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		RentalID:  req.RentalID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    status,
	}, nil
}

func (f *fakePayments) Refund(ctx context.Context, inv *models.Invoice) error {
	f.refunded = append(f.refunded, inv.InvoiceID)
	inv.Status = "refunded"
	return nil
}

type fakeCredits struct {
	completedFor []string
}

func (f *fakeCredits) Balance(userID string) (*models.CreditBalance, error) { return nil, nil }
func (f *fakeCredits) Transactions(userID string) ([]models.CreditTransaction, error) {
	return nil, nil
}
func (f *fakeCredits) Award(userID string, amount int, creditType, reason, refID string) error {
	return nil
}
func (f *fakeCredits) Spend(userID string, amount int, reason, refID string) error { return nil }
func (f *fakeCredits) RecordReferral(referrerID, referredID, code string) error    { return nil }

func (f *fakeCredits) CompleteReferralForBorrower(borrowerID string) error {
	f.completedFor = append(f.completedFor, borrowerID)
	return nil
}

func (f *fakeCredits) BadgesFor(user *models.User) []models.Badge { return nil }

type fakeNotifier struct{}

func (f *fakeNotifier) Notify(userID, notifType, message string, data map[string]interface{}) error {
	return nil
}
func (f *fakeNotifier) List(userID string) ([]models.Notification, error) { return nil, nil }
func (f *fakeNotifier) MarkRead(userID string, ids []string) error        { return nil }

type rentalFixture struct {
	svc     *DefaultRentalService
	rentals *fakeRentalStore
	books   *fakeBookStore
	pays    *fakePayments
	credits *fakeCredits
}

const (
	testLenderID   = "lender-1"
	testBorrowerID = "borrower-1"
	testBookID     = "book-1"
	testSocietyID  = "society-1"
)

func newRentalFixture() *rentalFixture {
	rentals := newFakeRentalStore()
	books := &fakeBookStore{books: map[string]*models.Book{
		testBookID: {
			ID:          testBookID,
			OwnerID:     testLenderID,
			SocietyID:   testSocietyID,
			Title:       "The Go Programming Language",
			DailyFee:    10,
			IsAvailable: true,
		},
	}}
	users := &fakeUserStore{users: map[string]*models.User{
		testLenderID:   {ID: testLenderID, Username: "lender"},
		testBorrowerID: {ID: testBorrowerID, Username: "borrower", SocietyIDs: []string{testSocietyID}},
	}}
	pays := &fakePayments{}
	credits := &fakeCredits{}

	return &rentalFixture{
		svc: &DefaultRentalService{
			Rentals:  rentals,
			Books:    books,
			Users:    users,
			Payments: pays,
			Credits:  credits,
			Notifier: &fakeNotifier{},
		},
		rentals: rentals,
		books:   books,
		pays:    pays,
		credits: credits,
	}
}

func (fx *rentalFixture) seedOverdueRental(t *testing.T, endDate time.Time) *models.Rental {
	t.Helper()
	rental := &models.Rental{
		ID:              uuid.New().String(),
		BookID:          testBookID,
		BorrowerID:      testBorrowerID,
		LenderID:        testLenderID,
		SocietyID:       testSocietyID,
		StartDate:       endDate.AddDate(0, 0, -7),
		EndDate:         endDate,
		DurationDays:    7,
		SecurityDeposit: SecurityDeposit,
		Status:          models.RentalStatusOverdue,
		PaymentStatus:   models.PaymentStatusPaid,
	}
	require.NoError(t, fx.rentals.Create(rental))
	fx.books.books[testBookID].IsAvailable = false
	return rental
}

func TestBorrowReleasesBookWhenPaymentFails(t *testing.T) {
	fx := newRentalFixture()
	fx.pays.processErr = errors.New("card declined")

	_, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})

	require.Error(t, err)
	assert.True(t, fx.books.books[testBookID].IsAvailable, "book must be released when the charge fails")
	assert.Empty(t, fx.rentals.rentals)
}

func TestBorrowRefundsChargeWhenCreateFails(t *testing.T) {
	fx := newRentalFixture()
	fx.rentals.createErr = errors.New("write failed")

	_, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodBrocks,
	})

	require.Error(t, err)
	assert.True(t, fx.books.books[testBookID].IsAvailable)
	assert.Len(t, fx.pays.refunded, 1, "a charge with no rental behind it must be refunded")
}

func TestBorrowKeepsBookLockedWhileRented(t *testing.T) {
	fx := newRentalFixture()

	rental, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.False(t, fx.books.books[testBookID].IsAvailable)

	// A second borrower cannot take the same copy.
	fx.svc.Users.(*fakeUserStore).users["borrower-2"] = &models.User{
		ID: "borrower-2", Username: "other", SocietyIDs: []string{testSocietyID},
	}
	_, err = fx.svc.Borrow(context.Background(), "borrower-2", models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.Error(t, err)
	assert.Equal(t, ErrCodeBookUnavailable, Code(err))

	// The settled rental is the only one on file.
	assert.Len(t, fx.rentals.rentals, 1)
	assert.Equal(t, models.PaymentStatusPaid, fx.rentals.rentals[rental.ID].PaymentStatus)
}

func TestCashRentalCompletesReferralAtReturn(t *testing.T) {
	fx := newRentalFixture()

	rental, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, rental.PaymentStatus)
	assert.Empty(t, fx.credits.completedFor, "an unpaid rental must not complete a referral")

	_, err = fx.svc.ConfirmReturn(testLenderID, rental.ID)
	require.NoError(t, err)

	assert.Contains(t, fx.credits.completedFor, testBorrowerID,
		"referral should complete once the first rental's charge settles")
	assert.Equal(t, models.PaymentStatusSettled, fx.rentals.rentals[rental.ID].PaymentStatus)
}

func TestCardRentalCompletesReferralAtBorrow(t *testing.T) {
	fx := newRentalFixture()

	_, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	assert.Contains(t, fx.credits.completedFor, testBorrowerID)
}

func TestPayLateFeesLeavesDueDateAlone(t *testing.T) {
	fx := newRentalFixture()
	endDate := time.Now().Add(-50 * time.Hour)
	rental := fx.seedOverdueRental(t, endDate)

	invoice, err := fx.svc.PayLateFees(context.Background(), testBorrowerID, rental.ID, models.PaymentMethodCard)
	require.NoError(t, err)

	// 50 hours late is 3 started days at half the 10/day fee.
	assert.Equal(t, 15.0, invoice.Amount)

	stored := fx.rentals.rentals[rental.ID]
	assert.True(t, stored.EndDate.Equal(endDate), "paying late fees must not move the due date")
	assert.Equal(t, models.RentalStatusOverdue, stored.Status, "the rental stays overdue until returned")
	require.NotNil(t, stored.LateFeesSettledAt)
	assert.True(t, stored.LateFeesSettledAt.Equal(endDate.Add(3*24*time.Hour)),
		"the settle stamp covers the three days that were charged")

	// Nothing further has accrued, so a second payment is refused.
	_, err = fx.svc.PayLateFees(context.Background(), testBorrowerID, rental.ID, models.PaymentMethodCard)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotOverdue, Code(err))
}

func TestConfirmReturnChargesOnlyUnsettledLateness(t *testing.T) {
	fx := newRentalFixture()
	rental := fx.seedOverdueRental(t, time.Now().Add(-50*time.Hour))

	_, err := fx.svc.PayLateFees(context.Background(), testBorrowerID, rental.ID, models.PaymentMethodCard)
	require.NoError(t, err)

	returned, err := fx.svc.ConfirmReturn(testLenderID, rental.ID)
	require.NoError(t, err)

	// The mid-rental payment covered accrual to date; the deposit is whole.
	assert.Equal(t, 0.0, returned.LateFee)
	assert.True(t, fx.books.books[testBookID].IsAvailable)
}

func TestDecideExtensionApproveAdvancesDueDate(t *testing.T) {
	fx := newRentalFixture()

	rental, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	req, err := fx.svc.RequestExtension(testBorrowerID, rental.ID, 7)
	require.NoError(t, err)

	decided, err := fx.svc.DecideExtension(context.Background(), testLenderID, req.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ExtensionStatusApproved, decided.Status)

	stored := fx.rentals.rentals[rental.ID]
	assert.True(t, stored.EndDate.Equal(req.NewDueDate), "approval moves the due date to the quoted one")
}

func TestDecideExtensionDenyLeavesRentalUntouched(t *testing.T) {
	fx := newRentalFixture()

	rental, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)
	originalDue := fx.rentals.rentals[rental.ID].EndDate
	chargesBefore := len(fx.pays.charges)

	req, err := fx.svc.RequestExtension(testBorrowerID, rental.ID, 7)
	require.NoError(t, err)

	decided, err := fx.svc.DecideExtension(context.Background(), testLenderID, req.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ExtensionStatusDenied, decided.Status)

	stored := fx.rentals.rentals[rental.ID]
	assert.True(t, stored.EndDate.Equal(originalDue), "denial must not move the due date")
	assert.Equal(t, chargesBefore, len(fx.pays.charges), "denial must not charge the borrower")
}

func TestRequestExtensionOnePendingPerRental(t *testing.T) {
	fx := newRentalFixture()

	rental, err := fx.svc.Borrow(context.Background(), testBorrowerID, models.BorrowRequest{
		BookID:        testBookID,
		DurationDays:  7,
		PaymentMethod: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = fx.svc.RequestExtension(testBorrowerID, rental.ID, 7)
	require.NoError(t, err)

	_, err = fx.svc.RequestExtension(testBorrowerID, rental.ID, 3)
	require.Error(t, err)
	assert.Equal(t, ErrCodePendingExtension, Code(err))
}
