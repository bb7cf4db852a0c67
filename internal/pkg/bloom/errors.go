package bloom

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"

	"sharedbloom/internal/pkg/redis"
)

const (
	reasonConnection       = "BLOOM_CONNECTION"
	reasonStoreUnavailable = "BLOOM_STORE_UNAVAILABLE"
	reasonClosed           = "BLOOM_CLOSED"
	reasonConfiguration    = "BLOOM_CONFIGURATION"
	reasonOffsetRange      = "BLOOM_OFFSET_OUT_OF_RANGE"

	codeClientClosed = 499
)

// Sentinel errors. They match with errors.Is by code and reason, so a
// returned error carrying extra detail or a cause still matches.
var (
	// ErrConnection indicates the bitmap store could not be reached.
	ErrConnection = errors.ServiceUnavailable(reasonConnection, "bitmap store is unreachable")
	// ErrStoreUnavailable indicates a store operation failed mid-flight.
	ErrStoreUnavailable = errors.ServiceUnavailable(reasonStoreUnavailable, "bitmap store operation failed")
	// ErrClosed indicates the client was closed.
	ErrClosed = errors.New(codeClientClosed, reasonClosed, "bloom client is closed")
	// ErrConfiguration indicates invalid filter parameters.
	ErrConfiguration = errors.BadRequest(reasonConfiguration, "invalid bloom filter configuration")
	// ErrTooLargeOffset indicates the offset is too large in bitset.
	ErrTooLargeOffset = errors.InternalServer(reasonOffsetRange, "too large offset")
)

func connectionError(err error) error {
	return errors.ServiceUnavailable(reasonConnection, err.Error()).WithCause(err)
}

// storeUnavailable classifies a failed store call. A store closed under a
// call still in flight reports ErrClosed.
func storeUnavailable(op, key string, err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return ErrClosed.WithCause(err)
	}
	return errors.ServiceUnavailable(reasonStoreUnavailable, fmt.Sprintf("%s %q: %v", op, key, err)).WithCause(err)
}

func configurationError(format string, args ...any) error {
	return errors.BadRequest(reasonConfiguration, fmt.Sprintf(format, args...))
}
