package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	withdrawalKeyPrefix = "payroll:withdrawal:"
	claimPending        = "pending"
	claimDone           = "done"

	// A claim left pending by a crashed consumer frees up after this.
	defaultPendingTTL = 5 * time.Minute
	defaultDoneTTL    = 7 * 24 * time.Hour
)

type ClaimState int

const (
	// ClaimAcquired means this consumer owns the request and must apply it.
	ClaimAcquired ClaimState = iota
	// ClaimCompleted means the request was already applied.
	ClaimCompleted
	// ClaimInFlight means another attempt holds the request right now.
	ClaimInFlight
)

// Deduplicator makes a withdrawal request id apply at most once across
// redeliveries.
type Deduplicator interface {
	Claim(ctx context.Context, requestID string) (ClaimState, error)
	Complete(ctx context.Context, requestID string) error
	Release(ctx context.Context, requestID string) error
}

type RedisDeduplicator struct {
	rdb        redis.Cmdable
	pendingTTL time.Duration
	doneTTL    time.Duration
}

func NewRedisDeduplicator(rdb redis.Cmdable) *RedisDeduplicator {
	return &RedisDeduplicator{
		rdb:        rdb,
		pendingTTL: defaultPendingTTL,
		doneTTL:    defaultDoneTTL,
	}
}

func withdrawalKey(requestID string) string {
	return withdrawalKeyPrefix + requestID
}

func (d *RedisDeduplicator) Claim(ctx context.Context, requestID string) (ClaimState, error) {
	key := withdrawalKey(requestID)

	ok, err := d.rdb.SetNX(ctx, key, claimPending, d.pendingTTL).Result()
	if err != nil {
		return ClaimInFlight, err
	}
	if ok {
		return ClaimAcquired, nil
	}

	state, err := d.rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// Expired between the two calls; let the retry claim it.
		return ClaimInFlight, nil
	case err != nil:
		return ClaimInFlight, err
	case state == claimDone:
		return ClaimCompleted, nil
	default:
		return ClaimInFlight, nil
	}
}

func (d *RedisDeduplicator) Complete(ctx context.Context, requestID string) error {
	return d.rdb.Set(ctx, withdrawalKey(requestID), claimDone, d.doneTTL).Err()
}

func (d *RedisDeduplicator) Release(ctx context.Context, requestID string) error {
	return d.rdb.Del(ctx, withdrawalKey(requestID)).Err()
}
