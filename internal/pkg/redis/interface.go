package redis

import (
	"context"
	"time"
)

// Store is the narrow view of the key-value store the bloom filter needs.
// A bitmap key reads as zero until set and grows to cover the highest offset set.
type Store interface {
	Ping(ctx context.Context) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// FlushDB removes every key of the selected database.
	FlushDB(ctx context.Context) error

	// Expire sets a time to live on key. It reports false when key does not exist.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// BitPipeline returns an empty batch. Batches are not reusable.
	BitPipeline() BitPipeline

	Close() error
}

// BitPipeline queues bit operations and submits them in a single exchange.
type BitPipeline interface {
	// SetBit queues setting the bit at offset of key to value (0 or 1).
	SetBit(key string, offset uint64, value int)

	// GetBit queues reading the bit at offset of key.
	GetBit(key string, offset uint64)

	// Len returns the number of queued operations.
	Len() int

	// Exec submits the queued operations. Result i belongs to operation i:
	// the bit value for GetBit, the previous bit value for SetBit.
	Exec(ctx context.Context) ([]int64, error)
}
