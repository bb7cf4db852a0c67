package bloom

import (
	"context"
	"sync/atomic"

	"github.com/go-kratos/kratos/v2/log"

	"sharedbloom/internal/pkg/redis"
)

// Client owns the connection to the bitmap store and the parameters shared by
// all filters obtained from it. It is safe for concurrent use.
type Client struct {
	store  redis.Store
	config Config
	closed atomic.Bool
	log    *log.Helper
}

// New connects to the Redis server at url (redis://, rediss:// or unix://)
// and returns a client. The configuration is validated before connecting.
func New(ctx context.Context, url string, opts ...Option) (*Client, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	store, err := redis.New(url, o.storeOptions...)
	if err != nil {
		return nil, connectionError(err)
	}
	c, err := newClient(ctx, store, o)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

// NewWithStore returns a client over an existing store. The client takes
// ownership of the store: it closes it on Close, and right away when the
// client cannot be created.
func NewWithStore(ctx context.Context, store redis.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, configurationError("store is required")
	}
	o, err := buildOptions(opts)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	c, err := newClient(ctx, store, o)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

func newClient(ctx context.Context, store redis.Store, o *options) (*Client, error) {
	helper := log.NewHelper(log.With(o.logger, "module", "bloom"))
	if err := store.Ping(ctx); err != nil {
		helper.Errorf("failed to connect to bitmap store: %v", err)
		return nil, connectionError(err)
	}
	helper.Infof("connected to bitmap store (bits=%d, hash functions=%d)", o.config.Bits, o.config.HashFunctions)

	return &Client{
		store:  store,
		config: o.config,
		log:    helper,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Get returns a handle on the filter called name. It makes no remote call;
// the filter comes into existence when its first item is added.
func (c *Client) Get(name string) *Filter {
	key := c.config.KeyPrefix + name
	return &Filter{
		client: c,
		name:   name,
		key:    key,
		bitSet: newRedisBitSet(c.store, key, c.config.Bits),
	}
}

// Clear deletes the filter called name. It is a no-op when the filter does not exist.
func (c *Client) Clear(ctx context.Context, name string) error {
	return c.Get(name).Clear(ctx)
}

// ClearAll flushes the whole database the client is connected to, including
// keys that do not belong to any filter. Meant for tests.
func (c *Client) ClearAll(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	c.log.Warn("flushing every key of the bitmap store database")
	if err := c.store.FlushDB(ctx); err != nil {
		return storeUnavailable("flushdb", "*", err)
	}
	return nil
}

// Close releases the connection. Every later call on the client or on its
// filters returns ErrClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	c.log.Info("closing bitmap store connection")
	if err := c.store.Close(); err != nil {
		return storeUnavailable("close", "*", err)
	}
	return nil
}

func (c *Client) checkOpen() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}
