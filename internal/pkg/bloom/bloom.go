package bloom

import (
	"context"
	"time"
)

// Filter is a handle on one named filter. Handles are cheap: any number of
// them may refer to the same name, and they all read and write the same key.
type Filter struct {
	client *Client
	name   string
	key    string
	bitSet bitSetProvider
}

// Name returns the filter name.
func (f *Filter) Name() string {
	return f.name
}

// Key returns the store key backing the filter.
func (f *Filter) Key() string {
	return f.key
}

// Add inserts items. All their bits are set in a single round trip.
func (f *Filter) Add(ctx context.Context, items ...string) error {
	if err := f.client.checkOpen(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	items = distinctItems(items)
	offsets, _ := distinctOffsets(locationsOf(items, f.client.config))
	if err := f.bitSet.set(ctx, offsets); err != nil {
		f.client.log.Errorf("add to %q failed: %v", f.key, err)
		return err
	}
	f.client.log.Debugf("added %d items to %q (%d bits)", len(items), f.key, len(offsets))
	return nil
}

// ExtractContainedItems returns the subset of items that may be in the
// filter. An item that was added is always returned; an item that was not
// may be returned too (false positive). Bits are read in a single round trip.
func (f *Filter) ExtractContainedItems(ctx context.Context, items ...string) (map[string]struct{}, error) {
	if err := f.client.checkOpen(); err != nil {
		return nil, err
	}
	contained := make(map[string]struct{})
	if len(items) == 0 {
		return contained, nil
	}

	items = distinctItems(items)
	locations := locationsOf(items, f.client.config)
	offsets, index := distinctOffsets(locations)

	isSet, err := f.bitSet.check(ctx, offsets)
	if err != nil {
		f.client.log.Errorf("query of %q failed: %v", f.key, err)
		return nil, err
	}

	for i, item := range items {
		if allSet(locations[i], index, isSet) {
			contained[item] = struct{}{}
		}
	}
	f.client.log.Debugf("queried %d items in %q (%d bits), %d contained", len(items), f.key, len(offsets), len(contained))
	return contained, nil
}

// Contains reports whether item may be in the filter.
func (f *Filter) Contains(ctx context.Context, item string) (bool, error) {
	contained, err := f.ExtractContainedItems(ctx, item)
	if err != nil {
		return false, err
	}
	_, ok := contained[item]
	return ok, nil
}

// Clear deletes the filter. Clearing a filter that does not exist is not an error.
func (f *Filter) Clear(ctx context.Context) error {
	if err := f.client.checkOpen(); err != nil {
		return err
	}
	return f.bitSet.del(ctx)
}

// Expire makes the filter disappear after ttl. It reports false when the
// filter holds no bits yet.
func (f *Filter) Expire(ctx context.Context, ttl time.Duration) (bool, error) {
	if err := f.client.checkOpen(); err != nil {
		return false, err
	}
	return f.bitSet.expire(ctx, ttl)
}

func allSet(locations []uint64, index map[uint64]int, isSet []bool) bool {
	for _, offset := range locations {
		if !isSet[index[offset]] {
			return false
		}
	}
	return true
}
