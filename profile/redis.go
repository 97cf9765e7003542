package profile

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "livefyre:profile:"

// RedisStore keeps profiles as JSON strings under prefix+id.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore uses the default key prefix when prefix is empty.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, id string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile.RedisStore.Get")
	defer span.End()

	raw, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Profile{}, NotFoundError{ID: id}
	}
	if err != nil {
		span.RecordError(err)
		return Profile{}, errors.Wrap(err, "redis get")
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, errors.Wrap(err, "decode profile")
	}
	return p, nil
}

func (s *RedisStore) Put(ctx context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "Profile.RedisStore.Put")
	defer span.End()

	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode profile")
	}
	if err := s.rdb.Set(ctx, s.prefix+p.ID, raw, 0).Err(); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Profile.RedisStore.Delete")
	defer span.End()

	if err := s.rdb.Del(ctx, s.prefix+id).Err(); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "redis del")
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
