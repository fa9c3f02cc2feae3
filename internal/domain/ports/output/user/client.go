package user_client

import (
	"context"

	model "inkwell-blog-service/internal/domain/models"
)

// Client looks up author profiles at the identity provider.
//
//go:generate mockery --name Client --dir . --output ../../../../../mocks/user --outpkg mocks --filename Client.go
type Client interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}
