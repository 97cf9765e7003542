package profile

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps profiles in process. Entries never expire.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Profile, error) {
	x, found := s.items.Get(id)
	if !found {
		return Profile{}, NotFoundError{ID: id}
	}
	return x.(Profile), nil
}

func (s *MemoryStore) Put(_ context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.items.Set(p.ID, p, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.items.Delete(id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
