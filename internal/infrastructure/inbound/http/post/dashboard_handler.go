package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"
)

type DashboardService interface {
	ListDashboard(ctx context.Context, authorID string) ([]*model.Post, error)
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type DashboardHandler struct {
	postService DashboardService
	renderer    Renderer
	log         ports.Logger
}

func NewDashboardHandler(postService DashboardService, renderer Renderer, log ports.Logger) *DashboardHandler {
	return &DashboardHandler{postService: postService, renderer: renderer, log: log}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PostForm{}, "")
}

// CreatePost publishes a post and shows the dashboard again. Invalid or conflicting
// submissions come back with the message and the values the user typed.
func (h *DashboardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	form, err := parsePostForm(w, r)
	if err != nil {
		h.log.Debug("Failed to parse create form", slog.String("error", err.Error()))
		h.renderer.Error(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	created, err := h.postService.CreatePost(r.Context(), &model.CreatePostDTO{
		AuthorID: userID,
		Title:    form.Title,
		Body:     form.Body,
	})
	if err != nil {
		if isFormError(err) {
			status, message := statusFor(err)
			h.log.Debug("Create post rejected", slog.String("user_id", userID), slog.String("error", err.Error()))
			h.render(w, r, status, form, message)
			return
		}
		writeError(h.renderer, h.log, w, r, err)
		return
	}

	h.log.Debug("Post published from dashboard", slog.String("user_id", userID), slog.String("slug", created.Slug))
	h.render(w, r, http.StatusOK, render.PostForm{}, "")
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, form render.PostForm, message string) {
	posts, err := h.postService.ListDashboard(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(h.renderer, h.log, w, r, err)
		return
	}
	h.renderer.Render(w, r, status, render.PageDashboard, render.DashboardView{
		Posts: posts,
		Form:  form,
		Error: message,
	})
}
