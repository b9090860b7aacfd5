package users

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Updates of one user are
// serialized by a per-user mutex, different users do not contend.
type MemoryStore struct {
	mutex   sync.RWMutex
	records map[string]*Record
	locks   map[string]*sync.Mutex

	// injectable clock, for tests
	NowFunc func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
		locks:   make(map[string]*sync.Mutex),
		NowFunc: time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, email string) (*Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.records[email]; ok {
		return nil, ErrUserExists
	}

	rec := NewRecord(email, s.NowFunc())
	s.records[email] = rec
	s.locks[email] = &sync.Mutex{}
	return rec.Clone(), nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, ok := s.records[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, email string, fn UpdateFunc) (*Record, error) {
	s.mutex.RLock()
	userLock, ok := s.locks[email]
	s.mutex.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}

	userLock.Lock()
	defer userLock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := fn(rec); err != nil {
		return nil, err
	}
	rec.Email = email
	rec.UpdatedAt = s.NowFunc()

	s.mutex.Lock()
	s.records[email] = rec.Clone()
	s.mutex.Unlock()

	return rec, nil
}

func (s *MemoryStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}
