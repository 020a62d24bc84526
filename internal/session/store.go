// Package session implements the opaque-token session store backed by Redis.
// A session maps a random token to a single user ID; the token is the only
// piece of identity state a client holds.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"warbler/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "session:%s"
	userKeyPrefix  = "user_sessions:%d"
)

// ErrUnavailable is returned when the backing Redis store cannot be reached.
var ErrUnavailable = errors.New("session store unavailable")

// Store persists sessions in Redis with a sliding expiry.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store bound to the given Redis client.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func tokenKey(token string) string {
	return fmt.Sprintf(tokenKeyPrefix, token)
}

func userKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// Create establishes a new session for the user and returns the opaque token.
// The token is also tracked in a per-user set so account deletion can revoke
// every session referencing the user.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	if s.rdb == nil {
		return "", ErrUnavailable
	}

	token := uuid.NewString()
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(token), strconv.FormatUint(uint64(userID), 10), s.ttl)
	pipe.SAdd(ctx, userKey(userID), token)
	pipe.Expire(ctx, userKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	middleware.SessionsCreated.Inc()
	return token, nil
}

// Resolve maps a token back to a user ID. The second return value is false
// when the token is unknown or expired; that is not an error.
func (s *Store) Resolve(ctx context.Context, token string) (uint, bool, error) {
	if s.rdb == nil || token == "" {
		return 0, false, nil
	}

	val, err := s.rdb.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		// A corrupt entry behaves like an absent session.
		return 0, false, nil
	}
	return uint(userID), true, nil
}

// Destroy removes a single session. Destroying an absent session is a no-op,
// which makes logout idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if s.rdb == nil || token == "" {
		return nil
	}

	userID, found, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	if found {
		pipe.SRem(ctx, userKey(userID), token)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if found {
		middleware.SessionsRevoked.Inc()
	}
	return nil
}

// RevokeUser destroys every session belonging to the user. Called as the last
// step of account deletion so no token can resolve to the removed ID.
func (s *Store) RevokeUser(ctx context.Context, userID uint) error {
	if s.rdb == nil {
		return nil
	}

	tokens, err := s.rdb.SMembers(ctx, userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, tokenKey(token))
	}
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	middleware.SessionsRevoked.Add(float64(len(tokens)))
	return nil
}
