// Package ratings keeps a per-player rating ledger in Redis, grounded on
// common/database/redis.go's client wrapper.
package ratings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mahjong/internal/config"
	"mahjong/internal/logging"
)

const keyPrefix = "mahjong:rating:"

// Ledger wraps a redis.Cmdable for incrementing and reading player ratings.
type Ledger struct {
	cli redis.Cmdable
}

// Connect dials Redis per config.Conf.DatabaseConf.RedisConf.
func Connect() *Ledger {
	conf := config.Conf.DatabaseConf.RedisConf
	cli := redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Password:     conf.Password,
		PoolSize:     conf.PoolSize,
		MinIdleConns: conf.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		logging.Fatal("ratings: redis connect failed: %v", err)
		return nil
	}
	return &Ledger{cli: cli}
}

func ratingKey(userID string) string { return keyPrefix + userID }

// Get returns a player's current rating, defaulting newcomers to 1500.
func (l *Ledger) Get(ctx context.Context, userID string) (int64, error) {
	val, err := l.cli.Get(ctx, ratingKey(userID)).Int64()
	if err == redis.Nil {
		return 1500, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ratings: get %s: %w", userID, err)
	}
	return val, nil
}

// Adjust applies delta to userID's rating, initializing newcomers at 1500
// first so IncrBy never operates on a missing key.
func (l *Ledger) Adjust(ctx context.Context, userID string, delta int64) (int64, error) {
	key := ratingKey(userID)
	exists, err := l.cli.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ratings: exists %s: %w", userID, err)
	}
	if exists == 0 {
		if err := l.cli.Set(ctx, key, 1500, 0).Err(); err != nil {
			return 0, fmt.Errorf("ratings: seed %s: %w", userID, err)
		}
	}
	return l.cli.IncrBy(ctx, key, delta).Result()
}

// ApplyPayments adjusts every seat's rating from a hand's payment table in
// one pipeline, scaled down from raw tai payments to a smaller rating delta
// (tai swings can be large; ratings should move gradually).
func (l *Ledger) ApplyPayments(ctx context.Context, userIDs [4]string, payments map[int]int, scale int64) error {
	if scale <= 0 {
		scale = 1
	}
	pipe := l.cli.TxPipeline()
	for seat, userID := range userIDs {
		if userID == "" {
			continue
		}
		key := ratingKey(userID)
		pipe.SetNX(ctx, key, 1500, 0)
		pipe.IncrBy(ctx, key, int64(payments[seat])/scale)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		logging.Error("ratings: apply payments failed: %v", err)
	}
	return err
}
