package creditRepo

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

// ErrInsufficientCredits is returned when a debit exceeds the balance.
var ErrInsufficientCredits = fmt.Errorf("insufficient credits")

// MongoCreditRepo implements CreditRepository using MongoDB.
type MongoCreditRepo struct {
	balances  *mongo.Collection
	txns      *mongo.Collection
	referrals *mongo.Collection
}

// NewMongoCreditRepo creates a new instance of CreditRepository using MongoDB.
func NewMongoCreditRepo() CreditRepository {
	repo := &MongoCreditRepo{
		balances:  database.Collection("user_credits"),
		txns:      database.Collection("credit_transactions"),
		referrals: database.Collection("referrals"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCreditRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.balances.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create balance index: %w", err)
	}

	txnIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.txns.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	refIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referred_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.referrals.Indexes().CreateMany(ctx, refIndexes); err != nil {
		return fmt.Errorf("failed to create referral indexes: %w", err)
	}
	return nil
}

// GetBalance returns the user's balance document, zero-valued when absent.
func (r *MongoCreditRepo) GetBalance(userID string) (*models.CreditBalance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var balance models.CreditBalance
	if err := r.balances.FindOne(ctx, bson.M{"user_id": userID}).Decode(&balance); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.CreditBalance{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to fetch balance for user %s: %w", userID, err)
	}
	return &balance, nil
}

// ApplyTransaction adjusts the balance and appends the ledger entry. The
// balance update is conditional so a debit can never overdraw.
func (r *MongoCreditRepo) ApplyTransaction(txn *models.CreditTransaction) (*models.CreditBalance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.CreatedAt = time.Now()

	filter := bson.M{"user_id": txn.UserID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if txn.Amount < 0 {
		filter["balance"] = bson.M{"$gte": -txn.Amount}
	} else {
		opts.SetUpsert(true)
	}
	update := bson.M{
		"$inc": bson.M{"balance": txn.Amount},
		"$set": bson.M{"updated_at": txn.CreatedAt},
	}

	var balance models.CreditBalance
	err := r.balances.FindOneAndUpdate(ctx, filter, update, opts).Decode(&balance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInsufficientCredits
		}
		return nil, fmt.Errorf("failed to adjust balance for user %s: %w", txn.UserID, err)
	}

	if _, err := r.txns.InsertOne(ctx, txn); err != nil {
		// Roll the balance back so it keeps matching the ledger.
		revert := bson.M{
			"$inc": bson.M{"balance": -txn.Amount},
			"$set": bson.M{"updated_at": time.Now()},
		}
		if _, rbErr := r.balances.UpdateOne(ctx, bson.M{"user_id": txn.UserID}, revert); rbErr != nil {
			return nil, fmt.Errorf("failed to append credit transaction (balance revert also failed: %v): %w", rbErr, err)
		}
		return nil, fmt.Errorf("failed to append credit transaction: %w", err)
	}
	return &balance, nil
}

// ListTransactions returns the user's ledger entries, newest first.
func (r *MongoCreditRepo) ListTransactions(userID string) ([]models.CreditTransaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.txns.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve credit transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []models.CreditTransaction
	for cursor.Next(ctx) {
		var txn models.CreditTransaction
		if err := cursor.Decode(&txn); err != nil {
			return nil, fmt.Errorf("failed to decode credit transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// CreateReferral inserts a new referral in pending state.
func (r *MongoCreditRepo) CreateReferral(ref *models.Referral) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	ref.CreatedAt = time.Now()

	if _, err := r.referrals.InsertOne(ctx, ref); err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

// GetPendingReferralByReferred returns the pending referral for a referred
// user. Returns (nil, nil) when absent.
func (r *MongoCreditRepo) GetPendingReferralByReferred(referredID string) (*models.Referral, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"referred_id": referredID, "status": models.ReferralStatusPending}
	var ref models.Referral
	if err := r.referrals.FindOne(ctx, filter).Decode(&ref); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending referral for user %s: %w", referredID, err)
	}
	return &ref, nil
}

// CompleteReferral transitions a pending referral to completed.
func (r *MongoCreditRepo) CompleteReferral(id string, completedAt time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ReferralStatusPending}
	update := bson.M{"$set": bson.M{"status": models.ReferralStatusCompleted, "completed_at": completedAt}}

	result, err := r.referrals.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete referral %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("referral %s not found or already completed", id)
	}
	return nil
}
