package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-blog-service/internal/custom_errors"
	"inkwell-blog-service/internal/infrastructure/config"
)

func newTestSessions() *SessionManager {
	return NewSessionManager(config.Session{
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: "blog_session",
	})
}

func TestSessionManager_TokenRoundTrip(t *testing.T) {
	sessions := newTestSessions()

	token, err := sessions.GenerateToken("00u1")
	require.NoError(t, err)

	userID, err := sessions.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "00u1", userID)
}

func TestSessionManager_ParseToken_Rejects(t *testing.T) {
	sessions := newTestSessions()

	expired := newTestSessions()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("00u1")
	require.NoError(t, err)

	otherSecret := NewSessionManager(config.Session{Secret: "other", TTL: time.Hour, CookieName: "blog_session"})
	foreignToken, err := otherSecret.GenerateToken("00u1")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "00u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	emptySubject, err := sessions.GenerateToken("")
	require.NoError(t, err)

	valid, err := sessions.GenerateToken("00u1")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	forgedPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"UserID":"admin","exp":4102444800}`))
	tampered := parts[0] + "." + forgedPayload + "." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expiredToken},
		{name: "signed with another secret", token: foreignToken},
		{name: "unsigned", token: noneToken},
		{name: "no user id", token: emptySubject},
		{name: "tampered payload", token: tampered},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := sessions.ParseToken(tt.token)
			assert.ErrorIs(t, err, custom_errors.ErrInvalidSession)
			assert.Empty(t, userID)
		})
	}
}

func TestSessionManager_CookieLifecycle(t *testing.T) {
	sessions := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, "00u1"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "blog_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])
	userID, err := sessions.UserID(req)
	require.NoError(t, err)
	assert.Equal(t, "00u1", userID)

	_, err = sessions.UserID(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)

	cleared := httptest.NewRecorder()
	sessions.Clear(cleared)
	clearedCookies := cleared.Result().Cookies()
	require.Len(t, clearedCookies, 1)
	assert.Equal(t, "", clearedCookies[0].Value)
	assert.Less(t, clearedCookies[0].MaxAge, 0)
}
