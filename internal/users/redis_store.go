package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitprogress/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	userKeyPrefix = "fitprogress||user||"
	// optimistic update attempts before giving up on a busy key
	maxUpdateRetries = 25
)

var ErrUpdateContention = errors.New("too many concurrent updates")

// RedisStore keeps each record as one JSON value. Update watches the key
// and retries when another client changed it in the meantime.
type RedisStore struct {
	redisClient *redis.Client
	// injectable clock, for tests
	NowFunc func() time.Time
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		NowFunc:     time.Now,
	}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

func (s *RedisStore) Create(ctx context.Context, email string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.redis.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rec := NewRecord(email, s.NowFunc())
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	created, err := s.redisClient.SetNX(ctx, userKey(email), string(encoded), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("user [setnx]: %w", err)
	}
	if !created {
		return nil, ErrUserExists
	}

	return rec, nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := s.redisClient.Get(ctx, userKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user [get]: %w", err)
	}

	return decodeRecord(raw)
}

func (s *RedisStore) Update(ctx context.Context, email string, fn UpdateFunc) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.redis.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := userKey(email)
	for attempt := 1; attempt <= maxUpdateRetries; attempt++ {
		var updated *Record
		err = s.redisClient.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return ErrUserNotFound
				}
				return fmt.Errorf("user [get]: %w", err)
			}

			rec, err := decodeRecord(raw)
			if err != nil {
				return err
			}
			if err := fn(rec); err != nil {
				return err
			}
			rec.Email = email
			rec.UpdatedAt = s.NowFunc()

			encoded, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal record: %w", err)
			}

			if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, string(encoded), 0)
				return nil
			}); err != nil {
				return err
			}

			updated = rec
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			log.Debugf("user [%s] changed during update, attempt %d", email, attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("update user [%s]: %w", email, ErrUpdateContention)
}

func decodeRecord(raw string) (*Record, error) {
	rec := &Record{}
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	rec.Progress = rec.Progress.Clone()
	return rec, nil
}
