package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxBitOffset is the highest offset a Redis bitmap accepts.
const MaxBitOffset = 1<<32 - 1

// ErrClosed is returned by commands issued after the store was closed.
var ErrClosed = redis.ErrClosed

// Redis implements Store on top of a go-redis client.
type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

// Option adjusts the go-redis options parsed from a URL.
type Option func(opts *redis.Options)

// WithDialTimeout sets the timeout for establishing new connections.
func WithDialTimeout(d time.Duration) Option {
	return func(opts *redis.Options) {
		opts.DialTimeout = d
	}
}

// WithReadTimeout sets the socket read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(opts *redis.Options) {
		opts.ReadTimeout = d
	}
}

// WithWriteTimeout sets the socket write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(opts *redis.Options) {
		opts.WriteTimeout = d
	}
}

// WithPoolSize sets the maximum number of socket connections.
func WithPoolSize(n int) Option {
	return func(opts *redis.Options) {
		opts.PoolSize = n
	}
}

// New creates a Store from a redis:// or rediss:// URL. No connection is
// made until the first command.
func New(url string, options ...Option) (*Redis, error) {
	// 1. Prepare Redis client configurations
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}
	for _, o := range options {
		o(opts)
	}
	// 2. Create a new Redis client
	return NewFromClient(redis.NewClient(opts)), nil
}

// NewFromClient wraps an existing client. Closing the Store closes the client.
func NewFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ping implements Store.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Del implements Store.
func (r *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	return r.client.Del(ctx, keys...).Result()
}

// FlushDB implements Store.
func (r *Redis) FlushDB(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

// Expire implements Store.
func (r *Redis) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.Expire(ctx, key, ttl).Result()
}

// BitPipeline implements Store.
func (r *Redis) BitPipeline() BitPipeline {
	return &bitPipeline{client: r.client}
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}

type bitOp struct {
	key    string
	offset int64
	value  int
	get    bool
}

// bitPipeline collects SETBIT/GETBIT commands and sends them inside one
// MULTI/EXEC transaction.
type bitPipeline struct {
	client *redis.Client
	ops    []bitOp
}

func (p *bitPipeline) SetBit(key string, offset uint64, value int) {
	p.ops = append(p.ops, bitOp{key: key, offset: int64(offset), value: value})
}

func (p *bitPipeline) GetBit(key string, offset uint64) {
	p.ops = append(p.ops, bitOp{key: key, offset: int64(offset), get: true})
}

func (p *bitPipeline) Len() int {
	return len(p.ops)
}

func (p *bitPipeline) Exec(ctx context.Context) ([]int64, error) {
	if len(p.ops) == 0 {
		return nil, nil
	}
	for _, op := range p.ops {
		if op.offset < 0 || op.offset > MaxBitOffset {
			return nil, fmt.Errorf("redis: bit offset %d out of range", op.offset)
		}
	}

	cmds, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range p.ops {
			if op.get {
				pipe.GetBit(ctx, op.key, op.offset)
			} else {
				pipe.SetBit(ctx, op.key, op.offset, op.value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cmds) != len(p.ops) {
		return nil, fmt.Errorf("redis: pipeline returned %d results for %d commands", len(cmds), len(p.ops))
	}

	results := make([]int64, len(cmds))
	for i, cmd := range cmds {
		intCmd, ok := cmd.(*redis.IntCmd)
		if !ok {
			return nil, fmt.Errorf("redis: unexpected reply type %T at index %d", cmd, i)
		}
		results[i] = intCmd.Val()
	}
	return results, nil
}
