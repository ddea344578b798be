package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salonsys/scheduling-service/internal/optimizer"
)

// CacheRepository caches the most recently computed schedule for a date so
// repeated reads (e.g. a dashboard polling for today's schedule) do not
// force a re-solve.
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository creates a new cache repository. It returns nil when
// client is nil, so a caller running without Redis configured can skip
// caching by checking for a nil *CacheRepository rather than a nil client.
func NewCacheRepository(client *redis.Client) *CacheRepository {
	if client == nil {
		return nil
	}
	return &CacheRepository{client: client}
}

// SetSchedule stores result under a key derived from date, with ttl expiry.
func (r *CacheRepository) SetSchedule(ctx context.Context, date time.Time, result optimizer.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	if err := r.client.Set(ctx, scheduleKey(date), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to set schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	return nil
}

// GetSchedule retrieves the cached schedule for date, if present.
func (r *CacheRepository) GetSchedule(ctx context.Context, date time.Time) (*optimizer.Result, error) {
	payload, err := r.client.Get(ctx, scheduleKey(date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: failed to get schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	var result optimizer.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("cache: failed to unmarshal schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	return &result, nil
}

func scheduleKey(date time.Time) string {
	return fmt.Sprintf("schedule:%s", date.Format("2006-01-02"))
}
