package post_repository

import (
	"context"

	model "inkwell-blog-service/internal/domain/models"
)

// Repository persists posts. Implementations return custom_errors.ErrSlugConflict when a write
// would duplicate a slug and custom_errors.ErrPostNotFound for unknown rows. Lists are ordered
// newest first.
//
//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}
