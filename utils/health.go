package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the backing stores the rental flows
// depend on.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	AuthCache bool      `json:"authCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func ping(check func(ctx context.Context) error) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return check(ctx) == nil
}

// StartHealthMonitor checks Mongo and both Redis clients once a minute and
// keeps the snapshot in memory for the health endpoint.
func StartHealthMonitor(cache, authCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			status := HealthStatus{
				Mongo: ping(func(ctx context.Context) error {
					return mongoClient.Ping(ctx, nil)
				}),
				Cache: ping(func(ctx context.Context) error {
					return cache.Ping(ctx).Err()
				}),
				AuthCache: ping(func(ctx context.Context) error {
					return authCache.Ping(ctx).Err()
				}),
				CheckedAt: time.Now(),
			}

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
