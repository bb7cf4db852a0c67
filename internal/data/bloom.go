package data

import (
	"context"
	"time"

	"sharedbloom/internal/conf"
	"sharedbloom/internal/pkg/bloom"
	"sharedbloom/internal/pkg/hash"
	pkgredis "sharedbloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
)

// NewBloomClient creates the bloom client over store using the filter
// parameters from configuration. The cleanup closes the client and the store.
// The store is closed as well when the client cannot be created.
func NewBloomClient(c *conf.Bootstrap, store pkgredis.Store, logger log.Logger) (*bloom.Client, func(), error) {
	helper := log.NewHelper(logger)

	bc := c.Bloom
	if bc == nil {
		bc = conf.Default().Bloom
	}
	hasher, err := hash.ByName(bc.Hasher)
	if err != nil {
		_ = store.Close()
		return nil, nil, bloom.ErrConfiguration.WithCause(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := bloom.NewWithStore(ctx, store,
		bloom.WithBits(bc.Bits),
		bloom.WithHashFunctions(bc.HashFunctions),
		bloom.WithDoubleHasher(hasher),
		bloom.WithKeyPrefix(bc.KeyPrefix),
		bloom.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing bloom client")
		if err := client.Close(); err != nil {
			helper.Errorf("failed to close bloom client: %v", err)
		}
	}
	return client, cleanup, nil
}
