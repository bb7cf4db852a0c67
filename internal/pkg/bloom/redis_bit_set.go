package bloom

import (
	"context"
	"fmt"
	"time"

	"sharedbloom/internal/pkg/redis"
)

// redisBitSet is a bit set implementation using a Redis bitmap as the backend.
type redisBitSet struct {
	store redis.Store
	key   string
	bits  uint64
}

// newRedisBitSet creates a new redisBitSet instance.
func newRedisBitSet(store redis.Store, key string, bits uint64) *redisBitSet {
	return &redisBitSet{
		store: store,
		key:   key,
		bits:  bits,
	}
}

func (r *redisBitSet) checkOffsets(offsets []uint64) error {
	for _, offset := range offsets {
		if offset >= r.bits {
			return ErrTooLargeOffset
		}
	}
	return nil
}

// check reads the bits at the given offsets in one transaction.
func (r *redisBitSet) check(ctx context.Context, offsets []uint64) ([]bool, error) {
	if err := r.checkOffsets(offsets); err != nil {
		return nil, err
	}
	pipe := r.store.BitPipeline()
	for _, offset := range offsets {
		pipe.GetBit(r.key, offset)
	}

	results, err := pipe.Exec(ctx)
	if err != nil {
		return nil, storeUnavailable("getbit", r.key, err)
	}
	if len(results) != len(offsets) {
		return nil, storeUnavailable("getbit", r.key,
			fmt.Errorf("got %d results for %d offsets", len(results), len(offsets)))
	}

	isSet := make([]bool, len(results))
	for i, v := range results {
		isSet[i] = v == 1
	}
	return isSet, nil
}

// set sets the bits at the given offsets in one transaction.
func (r *redisBitSet) set(ctx context.Context, offsets []uint64) error {
	if err := r.checkOffsets(offsets); err != nil {
		return err
	}
	pipe := r.store.BitPipeline()
	for _, offset := range offsets {
		pipe.SetBit(r.key, offset, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return storeUnavailable("setbit", r.key, err)
	}
	return nil
}

// del deletes the bit set from Redis.
func (r *redisBitSet) del(ctx context.Context) error {
	if _, err := r.store.Del(ctx, r.key); err != nil {
		return storeUnavailable("del", r.key, err)
	}
	return nil
}

// expire sets the expiration time for the bit set.
func (r *redisBitSet) expire(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := r.store.Expire(ctx, r.key, ttl)
	if err != nil {
		return false, storeUnavailable("expire", r.key, err)
	}
	return ok, nil
}
