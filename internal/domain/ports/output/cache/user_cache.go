package cache

import (
	"context"

	model "inkwell-blog-service/internal/domain/models"
)

//go:generate mockery --name UserCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename UserCache.go
type UserCache interface {
	// GetUser returns ErrCacheMiss when nothing is cached and ErrUserNotFound
	// when userID was stored with SetUserMissing.
	GetUser(ctx context.Context, userID string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	SetUserMissing(ctx context.Context, userID string) error
}
