package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
)

const (
	userCacheKeyPrefix    = "user:"
	defaultUserTTL        = 15 * time.Minute
	defaultUserMissingTTL = time.Minute
)

// userEntry is the cached value. Missing marks a user the identity provider
// reported as unknown.
type userEntry struct {
	User    *model.User `json:"user,omitempty"`
	Missing bool        `json:"missing,omitempty"`
}

// UserCache caches identity provider profiles by user id.
type UserCache struct {
	client     *Client
	log        ports.Logger
	ttl        time.Duration
	missingTTL time.Duration
}

func NewUserCache(client *Client, log ports.Logger, ttl, missingTTL time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	if missingTTL <= 0 {
		missingTTL = defaultUserMissingTTL
	}
	return &UserCache{client: client, log: log, ttl: ttl, missingTTL: missingTTL}
}

func (u *UserCache) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var entry userEntry
	if err := u.client.Get(ctx, userKey(userID), &entry); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	if entry.Missing {
		u.log.Debug("User cache hit for unknown user", slog.String("user_id", userID))
		return nil, custom_errors.ErrUserNotFound
	}
	if entry.User == nil {
		return nil, fmt.Errorf("cached user %s has no profile", userID)
	}

	u.log.Debug("User cache hit", slog.String("user_id", userID))
	return entry.User, nil
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	if err := u.client.Set(ctx, userKey(user.ID), userEntry{User: user}, u.ttl); err != nil {
		return fmt.Errorf("failed to set user cache: %w", err)
	}
	return nil
}

// SetUserMissing remembers for a short while that the identity provider does
// not know userID.
func (u *UserCache) SetUserMissing(ctx context.Context, userID string) error {
	if err := u.client.Set(ctx, userKey(userID), userEntry{Missing: true}, u.missingTTL); err != nil {
		return fmt.Errorf("failed to set missing user cache: %w", err)
	}
	return nil
}

func userKey(userID string) string {
	return userCacheKeyPrefix + userID
}
