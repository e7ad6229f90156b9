package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("document not found")

// Document kinds.
const (
	KindProduct     = "product"
	KindOrder       = "order"
	KindCustomer    = "customer"
	KindTransaction = "transaction"
	KindPayment     = "payment"
	KindInvoice     = "invoice"
)

// Store keeps JSON documents by kind and id. IDs come from NextID and are
// unique across kinds.
type Store interface {
	NextID(ctx context.Context) (int64, error)
	Put(ctx context.Context, kind string, id int64, body []byte) error
	Get(ctx context.Context, kind string, id int64) ([]byte, error)
	List(ctx context.Context, kind string) ([][]byte, error)
	Delete(ctx context.Context, kind string, id int64) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	seq  int64
	docs map[string]map[int64][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[int64][]byte)}
}

func (s *MemoryStore) NextID(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

func (s *MemoryStore) Put(_ context.Context, kind string, id int64, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.docs[kind]
	if !ok {
		m = make(map[int64][]byte)
		s.docs[kind] = m
	}
	m[id] = append([]byte(nil), body...)
	if id > s.seq {
		s.seq = id
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, kind string, id int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.docs[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// List returns documents ordered by id.
func (s *MemoryStore) List(_ context.Context, kind string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.docs[kind]))
	for id := range s.docs[kind] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		out = append(out, append([]byte(nil), s.docs[kind][id]...))
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, kind string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[kind][id]; !ok {
		return ErrNotFound
	}
	delete(s.docs[kind], id)
	return nil
}

func load[T any](ctx context.Context, st Store, kind string, id int64) (*T, error) {
	b, err := st.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadAll[T any](ctx context.Context, st Store, kind string) ([]T, error) {
	docs, err := st.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, b := range docs {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func save(ctx context.Context, st Store, kind string, id int64, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return st.Put(ctx, kind, id, b)
}
