package data

import (
	"sharedbloom/internal/conf"
	"sharedbloom/internal/pkg/logging"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewLogger,
	NewRedisStore,
	NewBloomClient,
)

// NewLogger builds the process logger from configuration.
func NewLogger(c *conf.Bootstrap) (log.Logger, func(), error) {
	lc := c.Log
	if lc == nil {
		lc = conf.Default().Log
	}
	logger, err := logging.New(lc.Level, lc.Format)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}
