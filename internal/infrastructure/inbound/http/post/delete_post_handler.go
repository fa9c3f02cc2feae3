package post_http

import (
	"context"
	"log/slog"
	"net/http"

	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"

	"github.com/gorilla/mux"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, slug, authorID string) error
}

type DeletePostHandler struct {
	postService PostDeleter
	renderer    Renderer
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, renderer Renderer, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{postService: postService, renderer: renderer, log: log}
}

func (h *DeletePostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	userID := auth.UserIDFromContext(r.Context())

	if err := h.postService.DeletePost(r.Context(), slug, userID); err != nil {
		writeError(h.renderer, h.log, w, r, err)
		return
	}

	h.log.Debug("Post deleted", slog.String("slug", slug), slog.String("user_id", userID))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
