package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	slugConstraint      = "posts_slug_key"

	postColumns = `id, author_id, created, title, body, slug`
)

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("author_id", post.AuthorID), slog.String("slug", post.Slug))

	created := post.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"author_id": post.AuthorID,
		"created":   created,
		"title":     post.Title,
		"body":      post.Body,
		"slug":      post.Slug,
	}

	query := `
		INSERT INTO posts (author_id, created, title, body, slug)
		VALUES (@author_id, @created, @title, @body, @slug)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.record("post_create", start, false)
		if isSlugViolation(err) {
			p.log.Debug("Slug already taken", slog.String("slug", post.Slug))
			return nil, custom_errors.ErrSlugConflict
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.record("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID), slog.String("slug", createdPost.Slug))
	return createdPost, nil
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by slug", slog.String("slug", slug))

	args := pgx.NamedArgs{"slug": slug}
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = @slug`

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.record("post_get_by_slug", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by slug", slog.String("slug", slug))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by slug", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.record("post_get_by_slug", start, true)
	return post, nil
}

func (p *PostRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created DESC, id DESC`
	return p.list(ctx, "post_list_all", query, pgx.NamedArgs{})
}

func (p *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = @author_id ORDER BY created DESC, id DESC`
	return p.list(ctx, "post_list_by_author", query, pgx.NamedArgs{"author_id": authorID})
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", post.ID), slog.String("slug", post.Slug))

	args := pgx.NamedArgs{
		"id":    post.ID,
		"title": post.Title,
		"body":  post.Body,
		"slug":  post.Slug,
	}
	query := `
		UPDATE posts SET title = @title, body = @body, slug = @slug
		WHERE id = @id
		RETURNING ` + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.record("post_update", start, false)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			p.log.Debug("Post not found by id during Update", slog.Int64("id", post.ID))
			return nil, custom_errors.ErrPostNotFound
		case isSlugViolation(err):
			p.log.Debug("Slug already taken during Update", slog.Int64("id", post.ID), slog.String("slug", post.Slug))
			return nil, custom_errors.ErrSlugConflict
		default:
			p.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	p.record("post_update", start, true)
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	args := pgx.NamedArgs{"id": id}
	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, args)
	if err != nil {
		p.record("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.record("post_delete", start, false)
		return custom_errors.ErrPostNotFound
	}

	p.record("post_delete", start, true)
	return nil
}

func (p *PostRepository) list(ctx context.Context, queryType, query string, args pgx.NamedArgs) ([]*model.Post, error) {
	start := time.Now()

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.record(queryType, start, false)
		p.log.Error("Error listing posts", slog.String("query", queryType), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.record(queryType, start, false)
			p.log.Error("Error scanning post", slog.String("query", queryType), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.record(queryType, start, false)
		p.log.Error("Error iterating rows", slog.String("query", queryType), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.record(queryType, start, true)
	return posts, nil
}

func (p *PostRepository) record(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Created,
		&post.Title,
		&post.Body,
		&post.Slug,
	)
	if err != nil {
		return nil, err
	}
	post.Created = post.Created.UTC()
	return &post, nil
}

func isSlugViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && (pgErr.ConstraintName == "" || pgErr.ConstraintName == slugConstraint)
}
