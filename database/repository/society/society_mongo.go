package societyRepo

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

// MongoSocietyRepo implements SocietyRepository using MongoDB.
type MongoSocietyRepo struct {
	coll *mongo.Collection
}

// NewMongoSocietyRepo creates a new instance of SocietyRepository using MongoDB.
func NewMongoSocietyRepo() SocietyRepository {
	coll := database.Collection("societies")
	repo := &MongoSocietyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSocietyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new society document.
func (r *MongoSocietyRepo) Create(society *models.Society) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	society.CreatedAt = now
	society.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, society)
	if err != nil {
		return fmt.Errorf("failed to create society: %w", err)
	}
	return nil
}

// GetByID retrieves a society by its unique ID.
func (r *MongoSocietyRepo) GetByID(id string) (*models.Society, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var society models.Society
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&society); err != nil {
		return nil, fmt.Errorf("failed to fetch society with id %s: %w", id, err)
	}
	return &society, nil
}

// GetByCode retrieves a society by join code. Returns (nil, nil) when absent.
func (r *MongoSocietyRepo) GetByCode(code string) (*models.Society, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var society models.Society
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&society); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch society with code %s: %w", code, err)
	}
	return &society, nil
}

// ListByStatus retrieves societies in the given approval state.
func (r *MongoSocietyRepo) ListByStatus(status string) ([]models.Society, error) {
	return r.list(bson.M{"status": status})
}

// GetAll retrieves all societies.
func (r *MongoSocietyRepo) GetAll() ([]models.Society, error) {
	return r.list(bson.M{})
}

// UpdateStatus transitions a pending society to the given status.
func (r *MongoSocietyRepo) UpdateStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.SocietyStatusPending}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status for society %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("society %s not found or not pending", id)
	}
	return nil
}

// IncrementMembers bumps the member counter.
func (r *MongoSocietyRepo) IncrementMembers(id string, delta int) error {
	return r.increment(id, "member_count", delta)
}

// IncrementBooks bumps the book counter.
func (r *MongoSocietyRepo) IncrementBooks(id string, delta int) error {
	return r.increment(id, "book_count", delta)
}

func (r *MongoSocietyRepo) increment(id, field string, delta int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment %s for society %s: %w", field, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("society with id %s not found", id)
	}
	return nil
}

func (r *MongoSocietyRepo) list(filter bson.M) ([]models.Society, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve societies: %w", err)
	}
	defer cursor.Close(ctx)

	var societies []models.Society
	for cursor.Next(ctx) {
		var s models.Society
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode society: %w", err)
		}
		societies = append(societies, s)
	}
	return societies, nil
}
