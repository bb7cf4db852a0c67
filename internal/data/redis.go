package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sharedbloom/internal/conf"
	"sharedbloom/internal/pkg/bloom"
	pkgredis "sharedbloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
)

// NewRedisStore creates the bitmap store from configuration and checks that
// it is reachable. Failures are reported as bloom.ErrConnection. The returned
// store is owned by whoever closes it; NewBloomClient takes it over.
func NewRedisStore(c *conf.Bootstrap, logger log.Logger) (pkgredis.Store, error) {
	helper := log.NewHelper(logger)
	if c.Data == nil || c.Data.Redis == nil || c.Data.Redis.URL == "" {
		return nil, bloom.ErrConnection.WithCause(errors.New("data: redis url is not configured"))
	}
	rc := c.Data.Redis

	// Build connection options from config
	var opts []pkgredis.Option
	if rc.DialTimeout > 0 {
		opts = append(opts, pkgredis.WithDialTimeout(rc.DialTimeout.AsDuration()))
	}
	if rc.ReadTimeout > 0 {
		opts = append(opts, pkgredis.WithReadTimeout(rc.ReadTimeout.AsDuration()))
	}
	if rc.WriteTimeout > 0 {
		opts = append(opts, pkgredis.WithWriteTimeout(rc.WriteTimeout.AsDuration()))
	}
	if rc.PoolSize > 0 {
		opts = append(opts, pkgredis.WithPoolSize(rc.PoolSize))
	}

	store, err := pkgredis.New(rc.URL, opts...)
	if err != nil {
		return nil, bloom.ErrConnection.WithCause(err)
	}

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		helper.Errorf("failed to connect to Redis: %v", err)
		return nil, bloom.ErrConnection.WithCause(fmt.Errorf("failed to connect to Redis: %w", err))
	}

	helper.Info("connected to Redis")
	return store, nil
}
