package hash

import (
	"crypto/sha256"
	"encoding/binary"
)

// windowCount is the number of 4-byte windows starting inside a SHA-256 digest.
const windowCount = sha256.Size - 4 + 1

// SHA256Window reads four little-endian bytes of the SHA-256 digest of an
// item, starting at offset. Offsets outside [0, 28] wrap modulo 29.
type SHA256Window int

// Sum32 implements Hasher.
func (w SHA256Window) Sum32(item string) uint32 {
	sum := sha256.Sum256([]byte(item))
	start := w.start()
	return binary.LittleEndian.Uint32(sum[start : start+4])
}

func (w SHA256Window) start() int {
	start := int(w) % windowCount
	if start < 0 {
		start += windowCount
	}
	return start
}

// SHA256Windows is the default double hasher. Both values come from a single
// digest: bytes 0-3 and bytes 4-7, read as little-endian.
type SHA256Windows struct{}

// Sum32Pair implements DoubleHasher.
func (SHA256Windows) Sum32Pair(item string) (uint32, uint32) {
	sum := sha256.Sum256([]byte(item))
	return binary.LittleEndian.Uint32(sum[0:4]), binary.LittleEndian.Uint32(sum[4:8])
}
