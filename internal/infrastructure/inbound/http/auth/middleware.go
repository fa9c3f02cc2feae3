package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"inkwell-blog-service/internal/custom_errors"
	ports "inkwell-blog-service/internal/domain/ports/output"
)

type SessionReader interface {
	UserID(r *http.Request) (string, error)
}

// LoadSession puts the session's user id into the request context when the cookie is valid.
// Anonymous and invalid sessions pass through untouched.
func LoadSession(sessions SessionReader, log ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				if !errors.Is(err, custom_errors.ErrUnauthenticated) {
					log.Debug("Ignoring invalid session", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, remembering where they were going.
func RequireLogin(sessions SessionReader, log ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) != "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.UserID(r)
			if err != nil {
				log.Debug("Login required", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func LoginURL(next string) string {
	if SafeNext(next) == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local absolute path and "" otherwise.
func SafeNext(next string) string {
	if len(next) == 0 || next[0] != '/' {
		return ""
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
