package post_http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	"inkwell-blog-service/internal/infrastructure/config"
	"inkwell-blog-service/internal/infrastructure/inbound/http/auth"
	"inkwell-blog-service/internal/infrastructure/inbound/http/render"
	"inkwell-blog-service/internal/infrastructure/logger"
	post_service_mock "inkwell-blog-service/mocks/post"
)

type renderedPage struct {
	status  int
	page    string
	view    any
	message string
}

type stubRenderer struct {
	pages []renderedPage
}

func (s *stubRenderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, view any) {
	s.pages = append(s.pages, renderedPage{status: status, page: page, view: view})
	w.WriteHeader(status)
}

func (s *stubRenderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.pages = append(s.pages, renderedPage{status: status, page: render.PageError, message: message})
	w.WriteHeader(status)
}

func (s *stubRenderer) last(t *testing.T) renderedPage {
	t.Helper()
	require.NotEmpty(t, s.pages)
	return s.pages[len(s.pages)-1]
}

type testServer struct {
	router   *mux.Router
	service  *post_service_mock.Service
	renderer *stubRenderer
	sessions *auth.SessionManager
}

func newTestServer(t *testing.T) *testServer {
	log := logger.New("test")
	service := post_service_mock.NewService(t)
	renderer := &stubRenderer{}
	sessions := auth.NewSessionManager(config.Session{Secret: "secret", TTL: time.Hour, CookieName: "blog_session"})

	router := mux.NewRouter()
	router.Use(auth.LoadSession(sessions, log))
	NewPostHTTPService(service, renderer, log).RegisterRoutes(router, auth.RequireLogin(sessions, log))

	return &testServer{router: router, service: service, renderer: renderer, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, target, userID string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		rec := httptest.NewRecorder()
		require.NoError(t, s.sessions.Issue(rec, userID))
		req.AddCookie(rec.Result().Cookies()[0])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func helloPost() *model.Post {
	return &model.Post{ID: 1, AuthorID: "u1", Title: "Hello World", Body: "first post", Slug: "hello-world", Created: time.Now().UTC()}
}

func TestFeedHandler(t *testing.T) {
	tests := []struct {
		name       string
		mocks      func(service *post_service_mock.Service)
		wantStatus int
		wantPage   string
	}{
		{
			name: "renders feed",
			mocks: func(service *post_service_mock.Service) {
				service.On("ListFeed", mock.Anything).Return([]*model.PostDetailed{{Post: helloPost()}}, nil)
			},
			wantStatus: http.StatusOK,
			wantPage:   render.PageIndex,
		},
		{
			name: "identity provider failure",
			mocks: func(service *post_service_mock.Service) {
				service.On("ListFeed", mock.Anything).Return(nil, custom_errors.ErrExternalServiceError)
			},
			wantStatus: http.StatusBadGateway,
			wantPage:   render.PageError,
		},
		{
			name: "store failure",
			mocks: func(service *post_service_mock.Service) {
				service.On("ListFeed", mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)
			},
			wantStatus: http.StatusInternalServerError,
			wantPage:   render.PageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			tt.mocks(srv.service)

			rec := srv.do(t, http.MethodGet, "/", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantPage, srv.renderer.last(t).page)
		})
	}
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/dashboard"},
		{http.MethodPost, "/dashboard"},
		{http.MethodGet, "/hello-world/edit"},
		{http.MethodPost, "/hello-world/edit"},
		{http.MethodPost, "/hello-world/delete"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			srv := newTestServer(t)

			rec := srv.do(t, route.method, route.target, "", url.Values{})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login?next="+url.QueryEscape(route.target), rec.Header().Get("Location"))
			assert.Empty(t, srv.renderer.pages)
		})
	}
}

func TestDashboardHandler_Dashboard(t *testing.T) {
	srv := newTestServer(t)
	posts := []*model.Post{helloPost()}
	srv.service.On("ListDashboard", mock.Anything, "u1").Return(posts, nil)

	rec := srv.do(t, http.MethodGet, "/dashboard", "u1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	page := srv.renderer.last(t)
	assert.Equal(t, render.PageDashboard, page.page)
	assert.Equal(t, render.DashboardView{Posts: posts}, page.view)
}

func TestDashboardHandler_CreatePost(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		wantStatus int
		wantView   func(posts []*model.Post) render.DashboardView
	}{
		{
			name:       "published",
			wantStatus: http.StatusOK,
			wantView: func(posts []*model.Post) render.DashboardView {
				return render.DashboardView{Posts: posts}
			},
		},
		{
			name:       "validation error keeps submitted values",
			createErr:  errors.Join(custom_errors.ErrPostValidation),
			wantStatus: http.StatusBadRequest,
			wantView: func(posts []*model.Post) render.DashboardView {
				return render.DashboardView{Posts: posts, Form: render.PostForm{Title: "Hello World", Body: ""}, Error: "Title and body are required."}
			},
		},
		{
			name:       "slug conflict keeps submitted values",
			createErr:  custom_errors.ErrSlugConflict,
			wantStatus: http.StatusConflict,
			wantView: func(posts []*model.Post) render.DashboardView {
				return render.DashboardView{Posts: posts, Form: render.PostForm{Title: "Hello World", Body: ""}, Error: "A post with this title already exists."}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			posts := []*model.Post{helloPost()}
			dto := &model.CreatePostDTO{AuthorID: "u1", Title: "Hello World", Body: ""}
			if tt.createErr != nil {
				srv.service.On("CreatePost", mock.Anything, dto).Return(nil, tt.createErr)
			} else {
				srv.service.On("CreatePost", mock.Anything, dto).Return(helloPost(), nil)
			}
			srv.service.On("ListDashboard", mock.Anything, "u1").Return(posts, nil)

			rec := srv.do(t, http.MethodPost, "/dashboard", "u1", url.Values{"title": {"Hello World"}, "body": {""}})

			assert.Equal(t, tt.wantStatus, rec.Code)
			page := srv.renderer.last(t)
			assert.Equal(t, render.PageDashboard, page.page)
			assert.Equal(t, tt.wantView(posts), page.view)
		})
	}
}

func TestDashboardHandler_CreatePost_StoreFailure(t *testing.T) {
	srv := newTestServer(t)
	srv.service.On("CreatePost", mock.Anything, mock.AnythingOfType("*model.CreatePostDTO")).Return(nil, custom_errors.ErrDatabaseQuery)

	rec := srv.do(t, http.MethodPost, "/dashboard", "u1", url.Values{"title": {"T"}, "body": {"B"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, render.PageError, srv.renderer.last(t).page)
}

func TestViewPostHandler(t *testing.T) {
	detailed := &model.PostDetailed{Post: helloPost(), Author: &model.User{ID: "u1", FirstName: "Ada"}}

	tests := []struct {
		name       string
		userID     string
		mocks      func(service *post_service_mock.Service)
		wantStatus int
		wantView   any
	}{
		{
			name: "anonymous visitor",
			mocks: func(service *post_service_mock.Service) {
				service.On("GetPostForView", mock.Anything, "hello-world").Return(detailed, nil)
			},
			wantStatus: http.StatusOK,
			wantView:   render.PostView{Post: detailed},
		},
		{
			name:   "owner sees edit controls",
			userID: "u1",
			mocks: func(service *post_service_mock.Service) {
				service.On("GetPostForView", mock.Anything, "hello-world").Return(detailed, nil)
			},
			wantStatus: http.StatusOK,
			wantView:   render.PostView{Post: detailed, IsOwner: true},
		},
		{
			name:   "other user",
			userID: "u2",
			mocks: func(service *post_service_mock.Service) {
				service.On("GetPostForView", mock.Anything, "hello-world").Return(detailed, nil)
			},
			wantStatus: http.StatusOK,
			wantView:   render.PostView{Post: detailed},
		},
		{
			name: "unknown slug",
			mocks: func(service *post_service_mock.Service) {
				service.On("GetPostForView", mock.Anything, "hello-world").Return(nil, custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			tt.mocks(srv.service)

			rec := srv.do(t, http.MethodGet, "/hello-world", tt.userID, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantView, srv.renderer.last(t).view)
		})
	}
}

func TestEditPostHandler_EditForm(t *testing.T) {
	tests := []struct {
		name       string
		getErr     error
		wantStatus int
	}{
		{name: "owner gets form", wantStatus: http.StatusOK},
		{name: "non-owner", getErr: custom_errors.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "unknown slug", getErr: custom_errors.ErrPostNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			if tt.getErr != nil {
				srv.service.On("GetPostForEdit", mock.Anything, "hello-world", "u1").Return(nil, tt.getErr)
			} else {
				srv.service.On("GetPostForEdit", mock.Anything, "hello-world", "u1").Return(helloPost(), nil)
			}

			rec := srv.do(t, http.MethodGet, "/hello-world/edit", "u1", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			page := srv.renderer.last(t)
			if tt.getErr != nil {
				assert.Equal(t, render.PageError, page.page)
				return
			}
			assert.Equal(t, render.PageEdit, page.page)
			view, ok := page.view.(render.EditView)
			require.True(t, ok)
			assert.Equal(t, render.PostForm{Title: "Hello World", Body: "first post"}, view.Form)
		})
	}
}

func TestEditPostHandler_EditPost(t *testing.T) {
	dto := &model.UpdatePostDTO{Title: "Hello Again", Body: "edited"}

	tests := []struct {
		name         string
		mocks        func(service *post_service_mock.Service)
		wantStatus   int
		wantLocation string
		wantPage     string
	}{
		{
			name: "redirects to new slug",
			mocks: func(service *post_service_mock.Service) {
				updated := helloPost()
				updated.Title, updated.Body, updated.Slug = "Hello Again", "edited", "hello-again"
				service.On("EditPost", mock.Anything, "hello-world", "u1", dto).Return(updated, nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/hello-again",
		},
		{
			name: "forbidden",
			mocks: func(service *post_service_mock.Service) {
				service.On("EditPost", mock.Anything, "hello-world", "u1", dto).Return(nil, custom_errors.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
			wantPage:   render.PageError,
		},
		{
			name: "not found",
			mocks: func(service *post_service_mock.Service) {
				service.On("EditPost", mock.Anything, "hello-world", "u1", dto).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantPage:   render.PageError,
		},
		{
			name: "conflict re-renders form",
			mocks: func(service *post_service_mock.Service) {
				service.On("EditPost", mock.Anything, "hello-world", "u1", dto).Return(nil, custom_errors.ErrSlugConflict)
				service.On("GetPostForEdit", mock.Anything, "hello-world", "u1").Return(helloPost(), nil)
			},
			wantStatus: http.StatusConflict,
			wantPage:   render.PageEdit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			tt.mocks(srv.service)

			rec := srv.do(t, http.MethodPost, "/hello-world/edit", "u1", url.Values{"title": {"Hello Again"}, "body": {"edited"}})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantPage == "" {
				assert.Empty(t, srv.renderer.pages)
				return
			}
			page := srv.renderer.last(t)
			assert.Equal(t, tt.wantPage, page.page)
			if view, ok := page.view.(render.EditView); ok {
				assert.Equal(t, render.PostForm{Title: "Hello Again", Body: "edited"}, view.Form)
				assert.Equal(t, "A post with this title already exists.", view.Error)
			}
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	tests := []struct {
		name         string
		deleteErr    error
		wantStatus   int
		wantLocation string
	}{
		{name: "owner deletes", wantStatus: http.StatusSeeOther, wantLocation: "/dashboard"},
		{name: "non-owner", deleteErr: custom_errors.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "unknown slug", deleteErr: custom_errors.ErrPostNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			srv.service.On("DeletePost", mock.Anything, "hello-world", "u1").Return(tt.deleteErr)

			rec := srv.do(t, http.MethodPost, "/hello-world/delete", "u1", url.Values{})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: custom_errors.ErrPostValidation, wantStatus: http.StatusBadRequest},
		{err: custom_errors.ErrSlugConflict, wantStatus: http.StatusConflict},
		{err: custom_errors.ErrPostNotFound, wantStatus: http.StatusNotFound},
		{err: custom_errors.ErrForbidden, wantStatus: http.StatusForbidden},
		{err: custom_errors.ErrExternalServiceError, wantStatus: http.StatusBadGateway},
		{err: custom_errors.ErrDatabaseQuery, wantStatus: http.StatusInternalServerError},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, message := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	err := errors.Join(custom_errors.ErrPostValidation)
	assert.Equal(t, "Title and body are required.", validationMessage(err))

	wrapped := errors.New(custom_errors.ErrPostValidation.Error() + ": body is required")
	assert.Equal(t, "Body is required.", validationMessage(wrapped))
}
