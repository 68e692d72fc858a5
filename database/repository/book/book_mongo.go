package bookRepo

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

// MongoBookRepo implements BookRepository using MongoDB.
type MongoBookRepo struct {
	coll *mongo.Collection
}

// NewMongoBookRepo creates a new instance of BookRepository using MongoDB.
func NewMongoBookRepo() BookRepository {
	coll := database.Collection("books")
	repo := &MongoBookRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "society_id", Value: 1}, {Key: "is_available", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new book document.
func (r *MongoBookRepo) Create(book *models.Book) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update modifies an existing book document.
func (r *MongoBookRepo) Update(book *models.Book) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	book.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": book.ID}, bson.M{"$set": book})
	if err != nil {
		return fmt.Errorf("failed to update book with id %s: %w", book.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("book with id %s not found", book.ID)
	}
	return nil
}

// Delete removes a book document by its ID.
func (r *MongoBookRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete book with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("book with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a book by its unique ID.
func (r *MongoBookRepo) GetByID(id string) (*models.Book, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var book models.Book
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&book); err != nil {
		return nil, fmt.Errorf("failed to fetch book with id %s: %w", id, err)
	}
	return &book, nil
}

// ListBySociety retrieves books scoped to a society, optionally only the
// ones currently available.
func (r *MongoBookRepo) ListBySociety(societyID string, availableOnly bool) ([]models.Book, error) {
	filter := bson.M{"society_id": societyID}
	if availableOnly {
		filter["is_available"] = true
	}
	return r.list(filter)
}

// ListByOwner retrieves all books listed by one owner.
func (r *MongoBookRepo) ListByOwner(ownerID string) ([]models.Book, error) {
	return r.list(bson.M{"owner_id": ownerID})
}

// SetAvailability flips is_available conditionally.
func (r *MongoBookRepo) SetAvailability(id string, from, to bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "is_available": from}
	update := bson.M{"$set": bson.M{"is_available": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for book %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("book %s is not in the expected availability state", id)
	}
	return nil
}

// SetCoverURL stores the uploaded cover image URL.
func (r *MongoBookRepo) SetCoverURL(id, url string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"cover_url": url, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set cover for book %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("book with id %s not found", id)
	}
	return nil
}

func (r *MongoBookRepo) list(filter bson.M) ([]models.Book, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []models.Book
	for cursor.Next(ctx) {
		var b models.Book
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode book: %w", err)
		}
		books = append(books, b)
	}
	return books, nil
}
