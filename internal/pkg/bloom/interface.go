package bloom

import (
	"context"
	"time"
)

type bitSetProvider interface {
	check(ctx context.Context, offsets []uint64) ([]bool, error)
	set(ctx context.Context, offsets []uint64) error
	del(ctx context.Context) error
	expire(ctx context.Context, ttl time.Duration) (bool, error)
}
