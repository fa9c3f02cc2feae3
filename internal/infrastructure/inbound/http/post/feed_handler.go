package post_http

import (
	"context"
	"net/http"

	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"
)

type FeedLister interface {
	ListFeed(ctx context.Context) ([]*model.PostDetailed, error)
}

type FeedHandler struct {
	postService FeedLister
	renderer    Renderer
	log         ports.Logger
}

func NewFeedHandler(postService FeedLister, renderer Renderer, log ports.Logger) *FeedHandler {
	return &FeedHandler{postService: postService, renderer: renderer, log: log}
}

func (h *FeedHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListFeed(r.Context())
	if err != nil {
		writeError(h.renderer, h.log, w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, render.PageIndex, render.FeedView{Posts: posts})
}
