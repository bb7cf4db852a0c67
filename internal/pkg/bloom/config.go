package bloom

import (
	"github.com/go-kratos/kratos/v2/log"

	"sharedbloom/internal/pkg/hash"
	"sharedbloom/internal/pkg/redis"
)

const (
	// DefaultBits is the default width of the bitmap.
	DefaultBits = 10000
	// DefaultHashFunctions is the default number of positions per item.
	DefaultHashFunctions = 3

	maxBits = redis.MaxBitOffset + 1
)

// Config holds the parameters shared by every filter of a client.
type Config struct {
	Bits          uint64            // m, width of the bitmap
	HashFunctions uint              // k, positions set and checked per item
	Hasher        hash.DoubleHasher // yields h1 and h2 for double hashing
	KeyPrefix     string            // prepended to a filter name to form its key
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Bits:          DefaultBits,
		HashFunctions: DefaultHashFunctions,
		Hasher:        hash.SHA256Windows{},
	}
}

// Validate reports a configuration error for unusable parameters.
func (c Config) Validate() error {
	if c.Bits == 0 {
		return configurationError("bit array size must be positive")
	}
	if c.Bits > maxBits {
		return configurationError("bit array size %d exceeds the bitmap limit of %d", c.Bits, uint64(maxBits))
	}
	if c.HashFunctions == 0 {
		return configurationError("hash function count must be positive")
	}
	if c.Hasher == nil {
		return configurationError("hasher is required")
	}
	return probeHasher(c.Hasher)
}

// probeHasher runs the hasher once so a broken strategy fails at construction
// rather than on the first Add.
func probeHasher(h hash.DoubleHasher) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = configurationError("hasher failed to produce a value: %v", r)
		}
	}()
	h.Sum32Pair("")
	return nil
}

type options struct {
	config       Config
	hasher1      hash.Hasher
	hasher2      hash.Hasher
	hashersSet   bool
	logger       log.Logger
	storeOptions []redis.Option
}

// Option configures a Client.
type Option func(o *options)

// WithConfig replaces the whole configuration. Later options still apply on top.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithBits sets the bitmap width m.
func WithBits(bits uint64) Option {
	return func(o *options) {
		o.config.Bits = bits
	}
}

// WithHashFunctions sets the number of positions k per item.
func WithHashFunctions(k uint) Option {
	return func(o *options) {
		o.config.HashFunctions = k
	}
}

// WithHashers sets two independent hash functions for double hashing.
// Both must be non-nil.
func WithHashers(h1, h2 hash.Hasher) Option {
	return func(o *options) {
		o.hasher1, o.hasher2 = h1, h2
		o.hashersSet = true
	}
}

// WithDoubleHasher sets a strategy that yields both base values at once.
func WithDoubleHasher(h hash.DoubleHasher) Option {
	return func(o *options) {
		o.config.Hasher = h
		o.hashersSet = false
	}
}

// WithKeyPrefix namespaces the keys of all filters of the client.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.config.KeyPrefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStoreOptions passes connection options to the Redis store created by New.
func WithStoreOptions(opts ...redis.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		config: DefaultConfig(),
		logger: log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.hashersSet {
		if o.hasher1 == nil || o.hasher2 == nil {
			return nil, configurationError("both hash functions must be provided")
		}
		o.config.Hasher = hash.Pair(o.hasher1, o.hasher2)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
