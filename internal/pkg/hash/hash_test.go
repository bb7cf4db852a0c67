package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Windows_EmptyString(t *testing.T) {
	// sha256("") = e3b0c442 98fc1c14 ...
	h1, h2 := SHA256Windows{}.Sum32Pair("")
	assert.Equal(t, uint32(0x42c4b0e3), h1)
	assert.Equal(t, uint32(0x141cfc98), h2)
}

func TestSHA256Window_MatchesPair(t *testing.T) {
	for _, item := range []string{"", "foo", "bar", "a much longer item with spaces"} {
		h1, h2 := SHA256Windows{}.Sum32Pair(item)
		assert.Equal(t, h1, SHA256Window(0).Sum32(item), item)
		assert.Equal(t, h2, SHA256Window(4).Sum32(item), item)
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty selects default", input: ""},
		{name: "sha256", input: NameSHA256},
		{name: "case insensitive", input: " Murmur3 "},
		{name: "xxhash", input: NameXXHash},
		{name: "xxh3", input: NameXXH3},
		{name: "metro", input: NameMetro},
		{name: "unknown", input: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ByName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)

			a1, a2 := h.Sum32Pair("item")
			b1, b2 := h.Sum32Pair("item")
			assert.Equal(t, a1, b1)
			assert.Equal(t, a2, b2)
		})
	}
}

func TestPair_UsesBothHashers(t *testing.T) {
	p := Pair(HasherFunc(func(string) uint32 { return 7 }), HasherFunc(func(s string) uint32 { return uint32(len(s)) }))
	h1, h2 := p.Sum32Pair("abcd")
	assert.Equal(t, uint32(7), h1)
	assert.Equal(t, uint32(4), h2)
}

func TestSplit64(t *testing.T) {
	lo, hi := split64(0x0123456789abcdef)
	assert.Equal(t, uint32(0x89abcdef), lo)
	assert.Equal(t, uint32(0x01234567), hi)
}

func TestMurmur3_SeedsDiffer(t *testing.T) {
	assert.NotEqual(t, Murmur3(0).Sum32("foo"), Murmur3(murmur3SecondSeed).Sum32("foo"))
}

func TestSHA256Window_OutOfRangeWraps(t *testing.T) {
	tests := []struct {
		name   string
		window SHA256Window
		same   SHA256Window
	}{
		{name: "last window", window: 28, same: 28},
		{name: "one past the end", window: 29, same: 0},
		{name: "far past the end", window: 61, same: 3},
		{name: "negative", window: -1, same: 28},
		{name: "very negative", window: -30, same: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { tt.window.Sum32("foo") })
			assert.Equal(t, tt.same.Sum32("foo"), tt.window.Sum32("foo"))
		})
	}
}
