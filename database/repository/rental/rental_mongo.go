package rentalRepo

import (
	"context"
	"fmt"
	"time"

	"bookcircle/database"
	"bookcircle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRentalRepo implements RentalRepository using MongoDB.
type MongoRentalRepo struct {
	coll    *mongo.Collection
	extColl *mongo.Collection
}

// NewMongoRentalRepo creates a new instance of RentalRepository using MongoDB.
func NewMongoRentalRepo() RentalRepository {
	repo := &MongoRentalRepo{
		coll:    database.Collection("rentals"),
		extColl: database.Collection("extension_requests"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRentalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	rentalIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "borrower_id", Value: 1}}},
		{Keys: bson.D{{Key: "lender_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, rentalIndexes); err != nil {
		return fmt.Errorf("failed to create rental indexes: %w", err)
	}

	extIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rental_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "lender_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.extColl.Indexes().CreateMany(ctx, extIndexes); err != nil {
		return fmt.Errorf("failed to create extension indexes: %w", err)
	}
	return nil
}

// Create inserts a new rental document.
func (r *MongoRentalRepo) Create(rental *models.Rental) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rental.CreatedAt = now
	rental.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, rental)
	if err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

// GetByID retrieves a rental by its unique ID.
func (r *MongoRentalRepo) GetByID(id string) (*models.Rental, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rental models.Rental
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rental); err != nil {
		return nil, fmt.Errorf("failed to fetch rental with id %s: %w", id, err)
	}
	return &rental, nil
}

// ListByBorrower retrieves rentals where the user is the borrower.
func (r *MongoRentalRepo) ListByBorrower(userID string) ([]models.Rental, error) {
	return r.list(bson.M{"borrower_id": userID})
}

// ListByLender retrieves rentals where the user is the lender.
func (r *MongoRentalRepo) ListByLender(userID string) ([]models.Rental, error) {
	return r.list(bson.M{"lender_id": userID})
}

// ListAll retrieves every rental, optionally filtered by status.
func (r *MongoRentalRepo) ListAll(status string) ([]models.Rental, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

// MarkReturned closes an open rental.
func (r *MongoRentalRepo) MarkReturned(id string, returnedAt time.Time, lateFee float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": []string{models.RentalStatusActive, models.RentalStatusOverdue}},
	}
	update := bson.M{"$set": bson.M{
		"status":             models.RentalStatusReturned,
		"actual_return_date": returnedAt,
		"late_fee":           lateFee,
		"updated_at":         time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark rental %s returned: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rental %s not found or not open", id)
	}
	return nil
}

// SetPaymentStatus updates the payment state on a rental.
func (r *MongoRentalRepo) SetPaymentStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment_status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment status for rental %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rental with id %s not found", id)
	}
	return nil
}

// CountPaidByBorrower counts the user's rentals with a settled charge.
func (r *MongoRentalRepo) CountPaidByBorrower(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"borrower_id":    userID,
		"payment_status": bson.M{"$in": []string{models.PaymentStatusPaid, models.PaymentStatusSettled}},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count paid rentals for user %s: %w", userID, err)
	}
	return count, nil
}

// AdvanceEndDate moves the due date forward on an open rental.
func (r *MongoRentalRepo) AdvanceEndDate(id string, newDue time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": []string{models.RentalStatusActive, models.RentalStatusOverdue}},
	}
	update := bson.M{"$set": bson.M{
		"end_date":   newDue,
		"status":     models.RentalStatusActive,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to advance due date for rental %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rental %s not found or not open", id)
	}
	return nil
}

// RecordLateFeePayment stamps the late-fee settle point on an overdue rental.
func (r *MongoRentalRepo) RecordLateFeePayment(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.RentalStatusOverdue}
	update := bson.M{"$set": bson.M{
		"late_fees_settled_at": at,
		"updated_at":           time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to record late fee payment for rental %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rental %s not found or not overdue", id)
	}
	return nil
}

// MarkOverdue flags active rentals past due and returns the flipped ones.
func (r *MongoRentalRepo) MarkOverdue(now time.Time) ([]models.Rental, error) {
	overdue, err := r.list(bson.M{
		"status":   models.RentalStatusActive,
		"end_date": bson.M{"$lt": now},
	})
	if err != nil {
		return nil, err
	}
	if len(overdue) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(overdue))
	for _, rental := range overdue {
		ids = append(ids, rental.ID)
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"id": bson.M{"$in": ids}, "status": models.RentalStatusActive}
	update := bson.M{"$set": bson.M{"status": models.RentalStatusOverdue, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("failed to mark rentals overdue: %w", err)
	}
	return overdue, nil
}

// ListDueBetween returns active rentals due inside the window.
func (r *MongoRentalRepo) ListDueBetween(from, to time.Time) ([]models.Rental, error) {
	return r.list(bson.M{
		"status":   models.RentalStatusActive,
		"end_date": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *MongoRentalRepo) list(filter bson.M) ([]models.Rental, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rentals: %w", err)
	}
	defer cursor.Close(ctx)

	var rentals []models.Rental
	for cursor.Next(ctx) {
		var rental models.Rental
		if err := cursor.Decode(&rental); err != nil {
			return nil, fmt.Errorf("failed to decode rental: %w", err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, nil
}
