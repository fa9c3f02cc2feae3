package post_service

import (
	"context"

	model "inkwell-blog-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename Service.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	EditPost(ctx context.Context, slug, authorID string, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, slug, authorID string) error
	GetPostForEdit(ctx context.Context, slug, authorID string) (*model.Post, error)
	GetPostForView(ctx context.Context, slug string) (*model.PostDetailed, error)
	ListFeed(ctx context.Context) ([]*model.PostDetailed, error)
	ListDashboard(ctx context.Context, authorID string) ([]*model.Post, error)
}
