package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// DefaultRedisPrefix namespaces counter keys.
const DefaultRedisPrefix = "sessiond:ratelimit:"

// Redis keeps counters in Redis so every replica shares one budget per key.
// The window is the TTL of the counter key, set on the first hit.
type Redis struct {
	client redis.UniversalClient
	cfg    Config
	prefix string
	now    func() time.Time
}

var _ Limiter = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, cfg Config, prefix string) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, cfg: cfg, prefix: prefix, now: time.Now}, nil
}

func (r *Redis) Admit(ctx context.Context, key string) (Decision, error) {
	k := r.prefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, r.unavailable(err, "incr")
	}

	if count == 1 {
		if err := r.client.PExpire(ctx, k, r.cfg.Window).Err(); err != nil {
			return Decision{}, r.unavailable(err, "expire")
		}
		return decide(r.cfg, count, r.now().Add(r.cfg.Window)), nil
	}

	ttl, err := r.client.PTTL(ctx, k).Result()
	if err != nil {
		return Decision{}, r.unavailable(err, "pttl")
	}
	// A counter without TTL means the expire after the first hit was lost.
	if ttl < 0 {
		ttl = r.cfg.Window
		if err := r.client.PExpire(ctx, k, ttl).Err(); err != nil {
			return Decision{}, r.unavailable(err, "expire")
		}
	}

	return decide(r.cfg, count, r.now().Add(ttl)), nil
}

func (r *Redis) unavailable(err error, op string) error {
	return oops.In("ratelimit").With("op", op).Wrap(fmt.Errorf("%w: %w", ErrBackendUnavailable, err))
}
