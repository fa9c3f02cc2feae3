package post_http

import (
	"net/http"

	post_service "inkwell-blog-service/internal/domain/ports/input/post"
	ports "inkwell-blog-service/internal/domain/ports/output"

	"github.com/gorilla/mux"
)

type PostHTTPService struct {
	feedHandler       *FeedHandler
	dashboardHandler  *DashboardHandler
	viewPostHandler   *ViewPostHandler
	editPostHandler   *EditPostHandler
	deletePostHandler *DeletePostHandler
}

func NewPostHTTPService(postService post_service.Service, renderer Renderer, log ports.Logger) *PostHTTPService {
	return &PostHTTPService{
		feedHandler:       NewFeedHandler(postService, renderer, log),
		dashboardHandler:  NewDashboardHandler(postService, renderer, log),
		viewPostHandler:   NewViewPostHandler(postService, renderer, log),
		editPostHandler:   NewEditPostHandler(postService, renderer, log),
		deletePostHandler: NewDeletePostHandler(postService, renderer, log),
	}
}

// RegisterRoutes mounts the blog pages. It must run after every fixed top-level path
// is registered, since /{slug} matches any single segment.
func (s *PostHTTPService) RegisterRoutes(router *mux.Router, requireLogin mux.MiddlewareFunc) {
	protected := func(h http.HandlerFunc) http.Handler { return requireLogin(h) }

	router.HandleFunc("/", s.feedHandler.ListFeed).Methods(http.MethodGet)
	router.Handle("/dashboard", protected(s.dashboardHandler.Dashboard)).Methods(http.MethodGet)
	router.Handle("/dashboard", protected(s.dashboardHandler.CreatePost)).Methods(http.MethodPost)
	router.Handle("/{slug}/edit", protected(s.editPostHandler.EditForm)).Methods(http.MethodGet)
	router.Handle("/{slug}/edit", protected(s.editPostHandler.EditPost)).Methods(http.MethodPost)
	router.Handle("/{slug}/delete", protected(s.deletePostHandler.DeletePost)).Methods(http.MethodPost)
	router.HandleFunc("/{slug}", s.viewPostHandler.ViewPost).Methods(http.MethodGet)
}
