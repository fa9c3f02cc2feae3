package auth

import (
	"errors"
	"net/http"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	"inkwell-blog-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity provider's subject as UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// SessionManager issues and reads the signed session cookie.
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionManager(cfg config.Session) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

func (m *SessionManager) GenerateToken(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

func (m *SessionManager) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", errors.Join(custom_errors.ErrInvalidSession, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", custom_errors.ErrInvalidSession
	}
	return claims.UserID, nil
}

// Issue signs a session for userID and sets it as a cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, userID string) error {
	token, err := m.GenerateToken(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  m.now().Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// UserID returns the user behind the request's session cookie.
func (m *SessionManager) UserID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", custom_errors.ErrUnauthenticated
	}
	return m.ParseToken(cookie.Value)
}

func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
