package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	post_service "inkwell-blog-service/internal/domain/ports/input/post"
	output "inkwell-blog-service/internal/domain/ports/output"
	post_repository "inkwell-blog-service/internal/domain/ports/output/post"
	user_client "inkwell-blog-service/internal/domain/ports/output/user"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo   post_repository.Repository
	userClient user_client.Client
	validate   *validator.Validate
	log        output.Logger
	metrics    output.MetricsProvider
}

var _ post_service.Service = (*PostService)(nil)

func NewPostService(
	postRepo post_repository.Repository,
	userClient user_client.Client,
	validate *validator.Validate,
	log output.Logger,
	metrics output.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userClient: userClient,
		validate:   validate,
		log:        log,
		metrics:    metrics,
	}
}

func (s *PostService) CreatePost(ctx context.Context, dto *model.CreatePostDTO) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations("create", err == nil) }()

	input := &model.CreatePostDTO{
		AuthorID: strings.TrimSpace(dto.AuthorID),
		Title:    strings.TrimSpace(dto.Title),
		Body:     strings.TrimSpace(dto.Body),
	}
	if err := s.validateStruct(input); err != nil {
		s.log.Debug("Create post validation failed", slog.String("author_id", input.AuthorID), slog.String("error", err.Error()))
		return nil, err
	}

	postSlug, err := makeSlug(input.Title)
	if err != nil {
		s.log.Debug("Create post title has no usable slug", slog.String("title", input.Title), slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.postRepo.Create(ctx, &model.Post{
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Body:     input.Body,
		Slug:     postSlug,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrSlugConflict) {
			s.log.Debug("Slug conflict on create", slog.String("slug", postSlug))
			return nil, err
		}
		s.log.Error("Failed to create post", slog.String("slug", postSlug), slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("Post created", slog.Int64("id", created.ID), slog.String("slug", created.Slug), slog.String("author_id", created.AuthorID))
	return created, nil
}

func (s *PostService) EditPost(ctx context.Context, postSlug, authorID string, dto *model.UpdatePostDTO) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations("edit", err == nil) }()

	existing, err := s.ownedPost(ctx, postSlug, authorID)
	if err != nil {
		return nil, err
	}

	input := &model.UpdatePostDTO{
		Title: strings.TrimSpace(dto.Title),
		Body:  strings.TrimSpace(dto.Body),
	}
	if err := s.validateStruct(input); err != nil {
		s.log.Debug("Edit post validation failed", slog.String("slug", postSlug), slog.String("error", err.Error()))
		return nil, err
	}

	newSlug, err := makeSlug(input.Title)
	if err != nil {
		return nil, err
	}

	updated, err := s.postRepo.Update(ctx, &model.Post{
		ID:       existing.ID,
		AuthorID: existing.AuthorID,
		Created:  existing.Created,
		Title:    input.Title,
		Body:     input.Body,
		Slug:     newSlug,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrSlugConflict) || errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Failed to update post", slog.String("slug", postSlug), slog.String("new_slug", newSlug), slog.String("error", err.Error()))
			return nil, err
		}
		s.log.Error("Failed to update post", slog.String("slug", postSlug), slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("Post updated", slog.Int64("id", updated.ID), slog.String("old_slug", postSlug), slog.String("slug", updated.Slug))
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, postSlug, authorID string) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

	existing, err := s.ownedPost(ctx, postSlug, authorID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post vanished before delete", slog.String("slug", postSlug))
			return err
		}
		s.log.Error("Failed to delete post", slog.String("slug", postSlug), slog.String("error", err.Error()))
		return err
	}

	s.log.Info("Post deleted", slog.Int64("id", existing.ID), slog.String("slug", postSlug))
	return nil
}

func (s *PostService) GetPostForEdit(ctx context.Context, postSlug, authorID string) (*model.Post, error) {
	return s.ownedPost(ctx, postSlug, authorID)
}

func (s *PostService) GetPostForView(ctx context.Context, postSlug string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

func (s *PostService) ListFeed(ctx context.Context) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, err
	}
	return s.enrich(ctx, posts)
}

func (s *PostService) ListDashboard(ctx context.Context, authorID string) ([]*model.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to list author posts", slog.String("author_id", authorID), slog.String("error", err.Error()))
		return nil, err
	}
	return posts, nil
}

// ownedPost loads the post behind slug and checks that authorID wrote it.
func (s *PostService) ownedPost(ctx context.Context, postSlug, authorID string) (*model.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if authorID == "" || post.AuthorID != authorID {
		s.log.Debug("Ownership check failed", slog.String("slug", postSlug), slog.String("user_id", authorID), slog.String("author_id", post.AuthorID))
		return nil, custom_errors.ErrForbidden
	}
	return post, nil
}

// enrich attaches author profiles, fetching each distinct author once.
func (s *PostService) enrich(ctx context.Context, posts []*model.Post) ([]*model.PostDetailed, error) {
	authors := make(map[string]*model.User)
	result := make([]*model.PostDetailed, 0, len(posts))

	for _, post := range posts {
		author, seen := authors[post.AuthorID]
		if !seen {
			var err error
			author, err = s.lookupAuthor(ctx, post.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[post.AuthorID] = author
		}
		result = append(result, &model.PostDetailed{Post: post, Author: author})
	}

	return result, nil
}

func (s *PostService) lookupAuthor(ctx context.Context, authorID string) (*model.User, error) {
	user, err := s.userClient.GetUser(ctx, authorID)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, custom_errors.ErrUserNotFound) {
		s.log.Debug("Author unknown to identity provider", slog.String("author_id", authorID))
		return nil, nil
	}
	s.log.Error("Failed to get author from identity provider", slog.String("author_id", authorID), slog.String("error", err.Error()))
	return nil, custom_errors.ErrExternalServiceError
}

func (s *PostService) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", custom_errors.ErrPostValidation, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", custom_errors.ErrPostValidation, strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "authorid" {
		field = "author"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	default:
		return field + " is invalid"
	}
}

// reservedSlugs are single-segment paths served by fixed routes, so a post
// with one of these slugs could never be reached at /{slug}.
var reservedSlugs = map[string]struct{}{
	"dashboard": {},
	"healthz":   {},
	"login":     {},
	"logout":    {},
}

func makeSlug(title string) (string, error) {
	s := slug.Make(title)
	if s == "" {
		return "", fmt.Errorf("%w: title must contain at least one letter or digit", custom_errors.ErrPostValidation)
	}
	if _, reserved := reservedSlugs[s]; reserved {
		return "", fmt.Errorf("%w: title %q is reserved, please choose another", custom_errors.ErrPostValidation, s)
	}
	return s, nil
}
