package bloom

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the item count from which locations are computed on
// several goroutines.
const parallelThreshold = 256

// Locations computes the k bit offsets of item by double hashing:
// offset_i = (h1 + i*h2 mod 2^32) mod m, for i in [0, k).
// The result keeps generation order and may contain duplicates.
func Locations(item string, c Config) []uint64 {
	h1, h2 := c.Hasher.Sum32Pair(item)
	locations := make([]uint64, c.HashFunctions)
	for i := uint(0); i < c.HashFunctions; i++ {
		combined := h1 + uint32(i)*h2
		locations[i] = uint64(combined) % c.Bits
	}
	return locations
}

// locationsOf computes Locations for every item, in input order.
func locationsOf(items []string, c Config) [][]uint64 {
	out := make([][]uint64, len(items))
	if len(items) < parallelThreshold {
		for i, item := range items {
			out[i] = Locations(item, c)
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(items) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = Locations(items[i], c)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// distinctOffsets flattens locations into a list of unique offsets, in order
// of first appearance, and the index of each offset in that list.
func distinctOffsets(locations [][]uint64) ([]uint64, map[uint64]int) {
	index := make(map[uint64]int)
	offsets := make([]uint64, 0)
	for _, locs := range locations {
		for _, offset := range locs {
			if _, ok := index[offset]; ok {
				continue
			}
			index[offset] = len(offsets)
			offsets = append(offsets, offset)
		}
	}
	return offsets, index
}

// distinctItems drops repeated items, keeping the first occurrence.
func distinctItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
