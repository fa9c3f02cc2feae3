package user_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-blog-service/internal/custom_errors"
	"inkwell-blog-service/internal/infrastructure/logger"
	"inkwell-blog-service/internal/infrastructure/outbound/metrics/prometheus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OktaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOktaClient(srv.URL+"/", "token-123", time.Second, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
}

func TestOktaClient_GetUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/00u1", r.URL.Path)
		assert.Equal(t, "SSWS token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"00u1","status":"ACTIVE","profile":{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","login":"ada@example.com"}}`))
	})

	user, err := client.GetUser(context.Background(), "00u1")
	require.NoError(t, err)
	assert.Equal(t, "00u1", user.ID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.DisplayName())
}

func TestOktaClient_GetUser_EscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/a%2Fb", r.URL.RawPath)
		_, _ = w.Write([]byte(`{"profile":{"firstName":"X"}}`))
	})

	user, err := client.GetUser(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", user.ID)
}

func TestOktaClient_GetUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"errorCode":"E0000007"}`, wantErr: custom_errors.ErrUserNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"errorCode":"E0000011"}`, wantErr: custom_errors.ErrExternalServiceError},
		{name: "server error", status: http.StatusInternalServerError, body: ``, wantErr: custom_errors.ErrExternalServiceError},
		{name: "malformed body", status: http.StatusOK, body: `{"profile":`, wantErr: custom_errors.ErrExternalServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			user, err := client.GetUser(context.Background(), "00u1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestOktaClient_GetUser_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewOktaClient(srv.URL, "t", 100*time.Millisecond, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	_, err := client.GetUser(context.Background(), "00u1")
	assert.ErrorIs(t, err, custom_errors.ErrExternalServiceError)
}
