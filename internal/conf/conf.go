package conf

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
)

// EnvPrefix is stripped from environment variables before they are exposed
// to ${NAME:default} placeholders in config files.
const EnvPrefix = "BLOOM_"

// Bootstrap is the root of the configuration tree.
type Bootstrap struct {
	Data  *Data  `json:"data"`
	Bloom *Bloom `json:"bloom"`
	Log   *Log   `json:"log"`
}

// Data holds the store connection settings.
type Data struct {
	Redis *Redis `json:"redis"`
}

// Redis configures the connection to the bitmap store.
type Redis struct {
	URL          string   `json:"url"`
	DialTimeout  Duration `json:"dial_timeout"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	PoolSize     int      `json:"pool_size"`
}

// Bloom holds the filter parameters.
type Bloom struct {
	Bits          uint64 `json:"bits"`
	HashFunctions uint   `json:"hash_functions"`
	Hasher        string `json:"hasher"`
	KeyPrefix     string `json:"key_prefix"`
}

// Log selects level and output format.
type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Duration is a time.Duration read from a string such as "3s".
type Duration time.Duration

// AsDuration returns d as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		if value == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("conf: invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("conf: invalid duration %v", v)
	}
	return nil
}

// Default returns the configuration used when a file leaves values unset.
func Default() *Bootstrap {
	return &Bootstrap{
		Data: &Data{
			Redis: &Redis{
				URL:         "redis://127.0.0.1:6379/0",
				DialTimeout: Duration(5 * time.Second),
			},
		},
		Bloom: &Bloom{
			Bits:          10000,
			HashFunctions: 3,
			Hasher:        "sha256",
		},
		Log: &Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the file at path on top of Default. Environment variables
// prefixed with EnvPrefix can be referenced from the file.
func Load(path string) (*Bootstrap, error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource(EnvPrefix),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("conf: load %s: %w", path, err)
	}

	bc := Default()
	if err := c.Scan(bc); err != nil {
		return nil, fmt.Errorf("conf: scan %s: %w", path, err)
	}
	return bc, nil
}
