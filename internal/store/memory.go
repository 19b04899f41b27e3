package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"spicysweet/internal/model"
)

// MemoryStore implements SessionStore in process memory. Records are
// stored as JSON so transactions see the same copy semantics as the
// Redis store. Transactions for one code run under a single mutex, so
// commit order is the lock acquisition order, which gives the same
// per-record total order the real store provides.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string][]byte
	subscribers map[string]map[int]OnChange
	nextSubID   int
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string][]byte),
		subscribers: make(map[string]map[int]OnChange),
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.Code]; ok {
		return ErrExists
	}
	m.sessions[s.Code] = data
	return nil
}

func (m *MemoryStore) Read(ctx context.Context, code string) (*model.Session, error) {
	m.mu.Lock()
	data, ok := m.sessions[code]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Transact(ctx context.Context, code string, fn TxFunc) (*model.Session, error) {
	m.mu.Lock()
	data, ok := m.sessions[code]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	if err := fn(&s); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	s.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(&s)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.sessions[code] = payload

	subs := make([]OnChange, 0, len(m.subscribers[code]))
	for _, cb := range m.subscribers[code] {
		subs = append(subs, cb)
	}
	m.mu.Unlock()

	// Notify outside the lock; each subscriber gets its own copy.
	for _, cb := range subs {
		var snap model.Session
		if err := json.Unmarshal(payload, &snap); err == nil {
			cb(&snap)
		}
	}
	return &s, nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, code string, onChange OnChange) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subscribers[code] == nil {
		m.subscribers[code] = make(map[int]OnChange)
	}
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[code][id] = onChange

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers[code], id)
	}, nil
}

func (m *MemoryStore) Delete(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, code)
	return nil
}
