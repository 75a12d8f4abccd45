package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/retry"
)

const sessionKeyPrefix = "checkout:session:"

// updateRetry repeats an optimistic update whose watched key changed before EXEC.
var updateRetry = retry.Config{
	MaxAttempts:  10,
	InitialDelay: 2 * time.Millisecond,
	MaxDelay:     50 * time.Millisecond,
	Multiplier:   2.0,
	JitterFactor: 0.5,
	RetryIf:      isTxConflict,
}

func isTxConflict(err error) bool {
	return errors.Is(err, redis.TxFailedErr)
}

// RedisStore keeps sessions in Redis as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	cfg    Config
}

var _ domain.SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *redis.Client, cfg Config) *RedisStore {
	return &RedisStore{
		client: client,
		cfg:    cfg.withDefaults(),
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Get loads and decodes the session, or returns domain.ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (domain.CheckoutState, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CheckoutState{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.CheckoutState{}, fmt.Errorf("get session %s: %w", id, err)
	}

	state, err := decodeState(data)
	if err != nil {
		return domain.CheckoutState{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return state, nil
}

// Save encodes the session and resets its TTL.
func (s *RedisStore) Save(ctx context.Context, state domain.CheckoutState) error {
	if state.ID == "" {
		return domain.WrapInvalidRequest("session id is required")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}
	if err := s.client.Set(ctx, sessionKey(state.ID), data, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", state.ID, err)
	}
	return nil
}

// Update runs fn inside WATCH/MULTI/EXEC on the session key. When another client writes the key
// first, the transaction is discarded and fn runs again on the fresh value.
func (s *RedisStore) Update(ctx context.Context, id string, fn domain.UpdateFunc) (domain.CheckoutState, error) {
	key := sessionKey(id)

	var out domain.CheckoutState
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session %s: %w", id, err)
		}
		current, err := decodeState(data)
		if err != nil {
			return fmt.Errorf("decode session %s: %w", id, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next.ID != id {
			return domain.WrapInvalidRequest("session id cannot change from %q to %q", id, next.ID)
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.cfg.TTL)
			return nil
		})
		if err != nil {
			return err
		}
		out = next
		return nil
	}

	err := retry.Do(ctx, func() error {
		return s.client.Watch(ctx, txf, key)
	}, updateRetry)
	if isTxConflict(err) {
		return domain.CheckoutState{}, fmt.Errorf("update session %s: %w", id, domain.ErrConcurrentUpdate)
	}
	if err != nil {
		return domain.CheckoutState{}, err
	}
	return out, nil
}

// Delete removes the session key.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// decodeState restores a session, filling the maps JSON leaves nil.
func decodeState(data []byte) (domain.CheckoutState, error) {
	var state domain.CheckoutState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.CheckoutState{}, err
	}
	if state.Errors == nil {
		state.Errors = domain.ValidationErrorMap{}
	}
	return state, nil
}
