package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/livefyre"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Put(ctx, Profile{ID: "alice"})
	assert.ErrorIs(t, err, livefyre.ErrInvalidArgument)

	want := Profile{ID: "alice", DisplayName: "Alice", Websites: []string{"https://example.com"}}
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.DisplayName = "Alice B."
	require.NoError(t, store.Put(ctx, want))
	got, err = store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.DisplayName)

	require.NoError(t, store.Delete(ctx, "alice"))
	_, err = store.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisStore(rdb, "")
	exerciseStore(t, store)

	require.NoError(t, store.Put(context.Background(), Profile{ID: "bob", DisplayName: "Bob"}))
	assert.True(t, mr.Exists("livefyre:profile:bob"))
}

// mockMemcache is an in-memory stand-in for *memcache.Client.
type mockMemcache struct {
	items map[string]*memcache.Item
	gets  int
}

func newMockMemcache() *mockMemcache {
	return &mockMemcache{items: map[string]*memcache.Item{}}
}

func (m *mockMemcache) Get(key string) (*memcache.Item, error) {
	m.gets++
	item, ok := m.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (m *mockMemcache) Set(item *memcache.Item) error {
	m.items[item.Key] = item
	return nil
}

func (m *mockMemcache) Delete(key string) error {
	if _, ok := m.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(m.items, key)
	return nil
}

func TestCachedStore(t *testing.T) {
	mc := newMockMemcache()
	exerciseStore(t, NewCachedStore(NewMemoryStore(), mc, time.Minute, nil))
}

func TestCachedStoreReadsThrough(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	mc := newMockMemcache()
	store := NewCachedStore(backing, mc, time.Minute, nil)

	require.NoError(t, backing.Put(ctx, Profile{ID: "alice", DisplayName: "Alice"}))

	_, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Contains(t, mc.items, "lfprofile:alice")
	assert.Equal(t, int32(60), mc.items["lfprofile:alice"].Expiration)

	// served from cache even after the backing entry changes
	require.NoError(t, backing.Put(ctx, Profile{ID: "alice", DisplayName: "Changed"}))
	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)
}

func TestModelRoundTrip(t *testing.T) {
	p := Profile{ID: "alice", DisplayName: "Alice", Bio: "hi", Websites: []string{"a", "b"}}
	assert.Equal(t, p, fromModel(toModel(p)))
}
