package hash

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Strategy names accepted by ByName.
const (
	NameSHA256  = "sha256"
	NameMurmur3 = "murmur3"
	NameXXHash  = "xxhash"
	NameXXH3    = "xxh3"
	NameMetro   = "metro"
)

const murmur3SecondSeed = 0x9747b28c

// Murmur3 is a seeded 32-bit murmur3 hasher.
type Murmur3 uint32

// Sum32 implements Hasher.
func (seed Murmur3) Sum32(item string) uint32 {
	return murmur3.Sum32WithSeed([]byte(item), uint32(seed))
}

// XXHash splits one xxhash64 sum into its two halves.
type XXHash struct{}

// Sum32Pair implements DoubleHasher.
func (XXHash) Sum32Pair(item string) (uint32, uint32) {
	return split64(xxhash.Sum64String(item))
}

// XXH3 splits one 64-bit xxh3 sum into its two halves.
type XXH3 struct{}

// Sum32Pair implements DoubleHasher.
func (XXH3) Sum32Pair(item string) (uint32, uint32) {
	return split64(xxh3.HashString(item))
}

// Metro splits one seeded metrohash64 sum into its two halves.
type Metro uint64

// Sum32Pair implements DoubleHasher.
func (seed Metro) Sum32Pair(item string) (uint32, uint32) {
	return split64(metro.Hash64([]byte(item), uint64(seed)))
}

// ByName returns the double hasher registered under name.
// An empty name selects the SHA-256 default.
func ByName(name string) (DoubleHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSHA256:
		return SHA256Windows{}, nil
	case NameMurmur3:
		return Pair(Murmur3(0), Murmur3(murmur3SecondSeed)), nil
	case NameXXHash:
		return XXHash{}, nil
	case NameXXH3:
		return XXH3{}, nil
	case NameMetro:
		return Metro(0), nil
	}
	return nil, fmt.Errorf("hash: unknown strategy %q", name)
}
