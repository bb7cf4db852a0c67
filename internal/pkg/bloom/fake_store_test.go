package bloom

import (
	"context"
	"errors"
	"sync"
	"time"

	"sharedbloom/internal/pkg/redis"
)

type fakeOp struct {
	key    string
	offset uint64
	value  int
	get    bool
}

// fakeStore is an in-memory redis.Store that records every pipeline it runs.
type fakeStore struct {
	mu        sync.Mutex
	bitmaps   map[string]map[uint64]bool
	pipelines [][]fakeOp
	closed    bool

	pingErr   error
	execErr   error
	delErr    error
	flushErr  error
	expireErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{bitmaps: make(map[string]map[uint64]bool)}
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *fakeStore) Del(_ context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return 0, s.delErr
	}
	var n int64
	for _, key := range keys {
		if _, ok := s.bitmaps[key]; ok {
			delete(s.bitmaps, key)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) FlushDB(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flushErr != nil {
		return s.flushErr
	}
	s.bitmaps = make(map[string]map[uint64]bool)
	return nil
}

func (s *fakeStore) Expire(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expireErr != nil {
		return false, s.expireErr
	}
	_, ok := s.bitmaps[key]
	return ok, nil
}

func (s *fakeStore) BitPipeline() redis.BitPipeline {
	return &fakePipeline{store: s}
}

func (s *fakeStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("already closed")
	}
	s.closed = true
	return nil
}

func (s *fakeStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeStore) execCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pipelines)
}

func (s *fakeStore) lastPipeline() []fakeOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pipelines) == 0 {
		return nil
	}
	return s.pipelines[len(s.pipelines)-1]
}

type fakePipeline struct {
	store *fakeStore
	ops   []fakeOp
}

func (p *fakePipeline) SetBit(key string, offset uint64, value int) {
	p.ops = append(p.ops, fakeOp{key: key, offset: offset, value: value})
}

func (p *fakePipeline) GetBit(key string, offset uint64) {
	p.ops = append(p.ops, fakeOp{key: key, offset: offset, get: true})
}

func (p *fakePipeline) Len() int {
	return len(p.ops)
}

func (p *fakePipeline) Exec(context.Context) ([]int64, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pipelines = append(s.pipelines, p.ops)
	if s.execErr != nil {
		return nil, s.execErr
	}

	results := make([]int64, len(p.ops))
	for i, op := range p.ops {
		bitmap := s.bitmaps[op.key]
		if bitmap[op.offset] {
			results[i] = 1
		}
		if op.get {
			continue
		}
		if bitmap == nil {
			bitmap = make(map[uint64]bool)
			s.bitmaps[op.key] = bitmap
		}
		bitmap[op.offset] = op.value == 1
	}
	return results, nil
}
