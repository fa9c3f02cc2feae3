package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"

	"github.com/gorilla/mux"
)

type PostEditor interface {
	GetPostForEdit(ctx context.Context, slug, authorID string) (*model.Post, error)
	EditPost(ctx context.Context, slug, authorID string, post *model.UpdatePostDTO) (*model.Post, error)
}

type EditPostHandler struct {
	postService PostEditor
	renderer    Renderer
	log         ports.Logger
}

func NewEditPostHandler(postService PostEditor, renderer Renderer, log ports.Logger) *EditPostHandler {
	return &EditPostHandler{postService: postService, renderer: renderer, log: log}
}

func (h *EditPostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.postService.GetPostForEdit(r.Context(), slug, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(h.renderer, h.log, w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, render.PageEdit, render.EditView{
		Post: post,
		Form: render.PostForm{Title: post.Title, Body: post.Body},
	})
}

func (h *EditPostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	userID := auth.UserIDFromContext(r.Context())

	form, err := parsePostForm(w, r)
	if err != nil {
		h.log.Debug("Failed to parse edit form", slog.String("slug", slug), slog.String("error", err.Error()))
		h.renderer.Error(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	updated, err := h.postService.EditPost(r.Context(), slug, userID, &model.UpdatePostDTO{
		Title: form.Title,
		Body:  form.Body,
	})
	if err != nil {
		if !isFormError(err) {
			writeError(h.renderer, h.log, w, r, err)
			return
		}

		post, getErr := h.postService.GetPostForEdit(r.Context(), slug, userID)
		if getErr != nil {
			writeError(h.renderer, h.log, w, r, getErr)
			return
		}
		status, message := statusFor(err)
		h.log.Debug("Edit post rejected", slog.String("slug", slug), slog.String("error", err.Error()))
		h.renderer.Render(w, r, status, render.PageEdit, render.EditView{Post: post, Form: form, Error: message})
		return
	}

	http.Redirect(w, r, "/"+updated.Slug, http.StatusSeeOther)
}
