// File: database/repository/rental/extension_mongo.go
package rentalRepo

import (
	"fmt"
	"time"

	"bookcircle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateExtension inserts a new extension request.
func (r *MongoRentalRepo) CreateExtension(req *models.ExtensionRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.CreatedAt = time.Now()

	_, err := r.extColl.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create extension request: %w", err)
	}
	return nil
}

// GetExtensionByID retrieves an extension request by its unique ID.
func (r *MongoRentalRepo) GetExtensionByID(id string) (*models.ExtensionRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ExtensionRequest
	if err := r.extColl.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to fetch extension request %s: %w", id, err)
	}
	return &req, nil
}

// GetPendingExtensionByRental retrieves the pending request for a rental, if
// any. Returns (nil, nil) when absent.
func (r *MongoRentalRepo) GetPendingExtensionByRental(rentalID string) (*models.ExtensionRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"rental_id": rentalID, "status": models.ExtensionStatusPending}
	var req models.ExtensionRequest
	if err := r.extColl.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending extension for rental %s: %w", rentalID, err)
	}
	return &req, nil
}

// ListExtensionsByLender retrieves a lender's extension requests, optionally
// filtered by status.
func (r *MongoRentalRepo) ListExtensionsByLender(lenderID, status string) ([]models.ExtensionRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"lender_id": lenderID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.extColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve extension requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ExtensionRequest
	for cursor.Next(ctx) {
		var req models.ExtensionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode extension request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// DecideExtension transitions a pending request to approved or denied.
func (r *MongoRentalRepo) DecideExtension(id, status string, decidedAt time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ExtensionStatusPending}
	update := bson.M{"$set": bson.M{"status": status, "decided_at": decidedAt}}

	result, err := r.extColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decide extension request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("extension request %s not found or already decided", id)
	}
	return nil
}
