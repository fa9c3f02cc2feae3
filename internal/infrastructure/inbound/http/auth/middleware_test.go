package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-blog-service/internal/infrastructure/logger"
)

func sessionCookie(t *testing.T, sessions *SessionManager, userID string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, userID))
	return rec.Result().Cookies()[0]
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserIDFromContext(r.Context())))
	})
}

func TestRequireLogin(t *testing.T) {
	log := logger.New("test")
	sessions := newTestSessions()
	handler := RequireLogin(sessions, log)(echoUserID())

	tests := []struct {
		name         string
		target       string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{
			name:         "anonymous is sent to login",
			target:       "/hello-world/edit",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?next=%2Fhello-world%2Fedit",
		},
		{
			name:         "invalid cookie is sent to login",
			target:       "/dashboard",
			cookie:       &http.Cookie{Name: "blog_session", Value: "forged"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?next=%2Fdashboard",
		},
		{
			name:       "valid session passes with user in context",
			target:     "/dashboard",
			cookie:     sessionCookie(t, sessions, "00u1"),
			wantStatus: http.StatusOK,
			wantBody:   "00u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLoadSession(t *testing.T) {
	log := logger.New("test")
	sessions := newTestSessions()
	handler := LoadSession(sessions, log)(echoUserID())

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, anonymous.Code)
	assert.Empty(t, anonymous.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, sessions, "00u1"))
	loggedIn := httptest.NewRecorder()
	handler.ServeHTTP(loggedIn, req)
	assert.Equal(t, "00u1", loggedIn.Body.String())
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{next: "/dashboard", want: "/dashboard"},
		{next: "/hello-world/edit?x=1", want: "/hello-world/edit?x=1"},
		{next: "", want: ""},
		{next: "//evil.example.com", want: ""},
		{next: "/\\evil.example.com", want: ""},
		{next: "https://evil.example.com/", want: ""},
		{next: "dashboard", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeNext(tt.next))
		})
	}
}
