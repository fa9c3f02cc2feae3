package user_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	output "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/domain/ports/output/cache"
	user_client "inkwell-blog-service/internal/domain/ports/output/user"
)

// ClientCacheDecorator is a read-through cache in front of the identity provider.
// Cache failures never fail a lookup.
type ClientCacheDecorator struct {
	client    user_client.Client
	userCache cache.UserCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewClientCacheDecorator(
	client user_client.Client,
	userCache cache.UserCache,
	log output.Logger,
	metrics output.MetricsProvider,
) user_client.Client {
	return &ClientCacheDecorator{
		client:    client,
		userCache: userCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *ClientCacheDecorator) GetUser(ctx context.Context, id string) (*model.User, error) {
	cacheStart := time.Now()
	cached, err := d.userCache.GetUser(ctx, id)
	d.metrics.RecordCacheOperationDuration("user_get", time.Since(cacheStart))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cached, nil
	}
	if errors.Is(err, custom_errors.ErrUserNotFound) {
		d.metrics.IncrementCacheHits()
		return nil, custom_errors.ErrUserNotFound
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get user from cache", slog.String("user_id", id), slog.String("error", err.Error()))
	}

	user, err := d.client.GetUser(ctx, id)
	if errors.Is(err, custom_errors.ErrUserNotFound) {
		if err := d.userCache.SetUserMissing(ctx, id); err != nil {
			d.log.Warn("Failed to cache unknown user", slog.String("user_id", id), slog.String("error", err.Error()))
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.userCache.SetUser(ctx, user); err != nil {
		d.log.Warn("Failed to cache user", slog.String("user_id", id), slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("user_set", time.Since(setStart))

	return user, nil
}
