package post_http

import (
	"context"
	"net/http"

	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"

	"github.com/gorilla/mux"
)

type PostViewer interface {
	GetPostForView(ctx context.Context, slug string) (*model.PostDetailed, error)
}

type ViewPostHandler struct {
	postService PostViewer
	renderer    Renderer
	log         ports.Logger
}

func NewViewPostHandler(postService PostViewer, renderer Renderer, log ports.Logger) *ViewPostHandler {
	return &ViewPostHandler{postService: postService, renderer: renderer, log: log}
}

func (h *ViewPostHandler) ViewPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPostForView(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(h.renderer, h.log, w, r, err)
		return
	}

	viewer := auth.UserIDFromContext(r.Context())
	h.renderer.Render(w, r, http.StatusOK, render.PagePost, render.PostView{
		Post:    post,
		IsOwner: viewer != "" && viewer == post.Post.AuthorID,
	})
}
