package utils

import (
	"context"
	"donow/models"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const activityTTL = 30 * 24 * time.Hour

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) (*redis.Client, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis dsn: %w", err)
	}

	// Configure connection pooling
	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// ActivityTracker records the last request made by each user. A tracker
// without a client does nothing.
type ActivityTracker struct {
	client *redis.Client
	now    func() time.Time
}

func NewActivityTracker(client *redis.Client) *ActivityTracker {
	return &ActivityTracker{client: client, now: time.Now}
}

func (a *ActivityTracker) Enabled() bool {
	return a != nil && a.client != nil
}

func activityKey(userID int64) string {
	return "activity:" + strconv.FormatInt(userID, 10)
}

// Touch stores the time, user agent and IP of the current request.
func (a *ActivityTracker) Touch(ctx context.Context, userID int64, userAgent, ip string) error {
	if !a.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := activityKey(userID)
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"last_activity": a.now().UTC().Format(time.RFC3339),
			"user_agent":    userAgent,
			"ip_address":    ip,
		})
		pipe.Expire(ctx, key, activityTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error updating last activity: %w", err)
	}
	return nil
}

// LastActivity returns the recorded activity of a user, if any.
func (a *ActivityTracker) LastActivity(ctx context.Context, userID int64) (models.Activity, bool, error) {
	if !a.Enabled() {
		return models.Activity{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := a.client.HGetAll(ctx, activityKey(userID)).Result()
	if err != nil {
		return models.Activity{}, false, fmt.Errorf("error reading last activity: %w", err)
	}
	if len(data) == 0 {
		return models.Activity{}, false, nil
	}

	return models.Activity{
		LastActivity: data["last_activity"],
		UserAgent:    data["user_agent"],
		IPAddress:    data["ip_address"],
	}, true, nil
}
