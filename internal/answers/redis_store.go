package answers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
)

const (
	keyIndex        = "answers:communities"
	keyBucketPrefix = "answers:community:"
	maxWriteRetries = 5
)

// RedisStore keeps each community bucket as one JSON document so a write
// replaces the whole sorted set in a single command.
type RedisStore struct {
	client   *rplatform.Client
	location string
}

func NewRedisStore(client *rplatform.Client, location string) *RedisStore {
	return &RedisStore{client: client, location: location}
}

func bucketKey(community string) string { return keyBucketPrefix + community }

func (s *RedisStore) Read(ctx context.Context) (Bank, error) {
	names, err := s.client.SMembers(ctx, keyIndex).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("read answer index", err)
	}
	bank := make(Bank, len(names))
	if len(names) == 0 {
		return bank, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = bucketKey(name)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("read answer buckets", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			bank[names[i]] = map[string]string{}
			continue
		}
		var records []Record
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			return nil, apperrors.NewStorageError("decode answer bucket "+names[i], err)
		}
		bank[names[i]] = ToMap(records)
	}
	return bank, nil
}

// Records returns one community bucket in stored (sorted) order.
func (s *RedisStore) Records(ctx context.Context, community string) ([]Record, error) {
	raw, err := s.client.Get(ctx, bucketKey(community)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("read answer bucket", err)
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, apperrors.NewStorageError("decode answer bucket", err)
	}
	return records, nil
}

func (s *RedisStore) Write(ctx context.Context, community string, records []Record) (string, error) {
	if len(records) == 0 {
		return s.location, nil
	}
	key := bucketKey(community)

	txf := func(tx *redis.Tx) error {
		var existing []Record
		raw, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return err
			}
		}

		merged := Merge(existing, records)
		if len(merged) == 0 {
			return nil
		}
		doc, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.SAdd(ctx, keyIndex, community)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < maxWriteRetries; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return "", apperrors.NewStorageError("write answers for "+community, err)
	}
	return s.location, nil
}
