package custom_errors

import "errors"

var (
	// post errors
	ErrPostValidation = errors.New("post validation failed")
	ErrPostNotFound   = errors.New("post not found")
	ErrSlugConflict   = errors.New("a post with this slug already exists")
	ErrForbidden      = errors.New("user is not the author of the post")

	// auth errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidSession  = errors.New("invalid session")
	ErrInvalidState    = errors.New("invalid oauth state")

	// user errors
	ErrUserNotFound         = errors.New("user not found")
	ErrExternalServiceError = errors.New("external service error")

	// infrastructure errors
	ErrDatabaseQuery = errors.New("database query failed")
	ErrDatabaseScan  = errors.New("database scan failed")
	ErrCacheMiss     = errors.New("cache miss")
)
