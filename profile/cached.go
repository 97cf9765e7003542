package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Memcache is the subset of *memcache.Client used by CachedStore.
type Memcache interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// CachedStore reads through memcached in front of another Store.
// Cache failures are logged and fall back to the backing store.
type CachedStore struct {
	backing Store
	mc      Memcache
	ttl     time.Duration
	logger  *zap.Logger
}

func NewCachedStore(backing Store, mc Memcache, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{backing: backing, mc: mc, ttl: ttl, logger: logger}
}

func cacheKey(id string) string {
	return "lfprofile:" + id
}

func (s *CachedStore) Get(ctx context.Context, id string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile.CachedStore.Get")
	defer span.End()

	item, err := s.mc.Get(cacheKey(id))
	if err == nil {
		var p Profile
		if err := json.Unmarshal(item.Value, &p); err == nil {
			return p, nil
		}
	} else if !errors.Is(err, memcache.ErrCacheMiss) {
		s.logger.Warn("memcache get failed", zap.String("id", id), zap.Error(err))
	}

	p, err := s.backing.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	s.fill(p)
	return p, nil
}

func (s *CachedStore) Put(ctx context.Context, p Profile) error {
	if err := s.backing.Put(ctx, p); err != nil {
		return err
	}
	s.fill(p)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.backing.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.mc.Delete(cacheKey(id)); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		s.logger.Warn("memcache delete failed", zap.String("id", id), zap.Error(err))
	}
	return nil
}

func (s *CachedStore) fill(p Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	err = s.mc.Set(&memcache.Item{
		Key:        cacheKey(p.ID),
		Value:      raw,
		Expiration: int32(s.ttl / time.Second),
	})
	if err != nil {
		s.logger.Warn("memcache set failed", zap.String("id", p.ID), zap.Error(err))
	}
}

var _ Store = (*CachedStore)(nil)
