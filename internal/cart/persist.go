package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores JSON cart snapshots in Redis with a TTL.
type RedisPersister struct {
	Client *redis.Client
	TTL    time.Duration
}

func (p RedisPersister) ttl() time.Duration {
	if p.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return p.TTL
}

// Save serialises the cart and writes it under the given key.
func (p RedisPersister) Save(ctx context.Context, key string, cart Cart) error {
	if p.Client == nil || key == "" {
		return fmt.Errorf("cart persister not configured")
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := p.Client.Set(ctx, key, data, p.ttl()).Err(); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot under key. A missing key reports
// found=false with no error; a malformed payload is an error so the caller
// can discard it.
func (p RedisPersister) Load(ctx context.Context, key string) (Cart, bool, error) {
	if p.Client == nil || key == "" {
		return Empty(), false, nil
	}
	data, err := p.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Empty(), false, nil
		}
		return Empty(), false, fmt.Errorf("read cart: %w", err)
	}
	var snapshot Cart
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Empty(), false, fmt.Errorf("decode cart: %w", err)
	}
	return snapshot, true, nil
}

// Delete removes the persisted snapshot.
func (p RedisPersister) Delete(ctx context.Context, key string) error {
	if p.Client == nil || key == "" {
		return nil
	}
	return p.Client.Del(ctx, key).Err()
}
