// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// Expiry is delegated to the key TTL: an expired session simply stops
// resolving, no sweeper needed.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Save stores a session keyed by the refresh-token hash.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: int64
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Save(context context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Find resolves a token hash into the owning user ID.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - int64: Owning user ID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Find(context context.Context, tokenHash string) (int64, error) {
	key := constants.RedisPrefixSession + tokenHash

	value, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Session is invalid or expired")
		}
		return 0, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_session_corrupt_value: %w", err)
	}

	return userID, nil
}

/*
Delete removes the session from Redis. Deleting an absent key is a no-op.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

/*
DeleteAllForUser revokes every session belonging to one user.

Description: Sessions are keyed by token hash, not by user, so revocation
walks the session keyspace with SCAN and deletes the keys whose value matches
the user ID. Runs on password reset only, so the scan cost is acceptable.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Scan or deletion failures
*/
func (repository *RedisSessionRepository) DeleteAllForUser(context context.Context, userID int64) error {
	target := strconv.FormatInt(userID, 10)

	iterator := repository.client.Scan(context, 0, constants.RedisPrefixSession+"*", 100).Iterator()
	for iterator.Next(context) {
		key := iterator.Val()

		value, err := repository.client.Get(context, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired between SCAN and GET
			}
			return fmt.Errorf("redis_session_revoke_read_failed: %w", err)
		}

		if value != target {
			continue
		}

		if err := repository.client.Del(context, key).Err(); err != nil {
			return fmt.Errorf("redis_session_revoke_delete_failed: %w", err)
		}
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_scan_failed: %w", err)
	}

	return nil
}

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
//
// One key per outstanding reset token; the key TTL enforces the token
// lifetime and consumption deletes the key, so a token resolves at most once.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token keyed by its hash.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: int64
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_save_failed: %w", err)
	}

	return nil
}

/*
Get resolves a token hash into the owning user ID.

Description: Returns apperr.NotFound if the token is absent, consumed, or
expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - int64: Owning user ID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, tokenHash string) (int64, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	value, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Reset token is invalid or expired")
		}
		return 0, fmt.Errorf("redis_reset_token_find_failed: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_reset_token_corrupt_value: %w", err)
	}

	return userID, nil
}

/*
Delete consumes the reset token. Deleting an absent key is a no-op.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}
