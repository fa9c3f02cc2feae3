package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
)

// PostRepository keeps posts in process memory with the same slug uniqueness and ordering
// guarantees as the postgres implementation.
type PostRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	slugs  map[string]int64
	nextID int64
	now    func() time.Time
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		slugs:  make(map[string]int64),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.String("author_id", post.AuthorID), slog.String("slug", post.Slug))

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.slugs[post.Slug]; taken {
		p.log.Debug("Slug already taken (memory impl)", slog.String("slug", post.Slug))
		return nil, custom_errors.ErrSlugConflict
	}

	created := post.Created
	if created.IsZero() {
		created = p.now()
	}

	newPost := &model.Post{
		ID:       p.nextID,
		AuthorID: post.AuthorID,
		Created:  created.UTC(),
		Title:    post.Title,
		Body:     post.Body,
		Slug:     post.Slug,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost
	p.slugs[newPost.Slug] = newPost.ID

	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	id, exists := p.slugs[slug]
	if !exists {
		p.log.Debug("Post not found by slug", slog.String("slug", slug))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *p.posts[id]
	return &result, nil
}

func (p *PostRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	return p.filter(func(*model.Post) bool { return true }), nil
}

func (p *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return p.filter(func(post *model.Post) bool { return post.AuthorID == authorID }), nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	existing, exists := p.posts[post.ID]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if ownerID, taken := p.slugs[post.Slug]; taken && ownerID != post.ID {
		p.log.Debug("Slug already taken during update (memory impl)", slog.Int64("id", post.ID), slog.String("slug", post.Slug))
		return nil, custom_errors.ErrSlugConflict
	}

	delete(p.slugs, existing.Slug)
	existing.Title = post.Title
	existing.Body = post.Body
	existing.Slug = post.Slug
	p.slugs[existing.Slug] = existing.ID

	result := *existing
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.slugs, post.Slug)
	delete(p.posts, id)
	return nil
}

func (p *PostRepository) filter(keep func(*model.Post) bool) []*model.Post {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		if keep(post) {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Created.Equal(result[j].Created) {
			return result[i].Created.After(result[j].Created)
		}
		return result[i].ID > result[j].ID
	})

	return result
}
