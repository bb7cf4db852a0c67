package hash

// Hasher maps an item to a uniformly distributed 32-bit value.
type Hasher interface {
	Sum32(item string) uint32
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc func(item string) uint32

// Sum32 implements Hasher.
func (f HasherFunc) Sum32(item string) uint32 {
	return f(item)
}

// DoubleHasher yields the two base values used by double hashing.
// Implementations must be safe for concurrent use.
type DoubleHasher interface {
	Sum32Pair(item string) (h1, h2 uint32)
}

type pair struct {
	first, second Hasher
}

// Pair combines two independent hashers into a DoubleHasher.
func Pair(first, second Hasher) DoubleHasher {
	return pair{first: first, second: second}
}

// Sum32Pair implements DoubleHasher.
func (p pair) Sum32Pair(item string) (uint32, uint32) {
	return p.first.Sum32(item), p.second.Sum32(item)
}

// split64 turns one 64-bit hash into two 32-bit values, low half first.
func split64(h uint64) (uint32, uint32) {
	return uint32(h), uint32(h >> 32)
}
