package post_http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"inkwell-blog-service/internal/custom_errors"
	ports "inkwell-blog-service/internal/domain/ports/output"
)

type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, page string, view any)
	Error(w http.ResponseWriter, r *http.Request, status int, message string)
}

// statusFor maps a service error to the HTTP status and the message shown to the user.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, custom_errors.ErrPostValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, custom_errors.ErrSlugConflict):
		return http.StatusConflict, "A post with this title already exists."
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return http.StatusNotFound, "Post not found."
	case errors.Is(err, custom_errors.ErrForbidden):
		return http.StatusForbidden, "You can only change your own posts."
	case errors.Is(err, custom_errors.ErrExternalServiceError):
		return http.StatusBadGateway, "Author profiles are unavailable right now."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), custom_errors.ErrPostValidation.Error()+": ")
	if msg == "" || msg == err.Error() {
		return "Title and body are required."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// isFormError reports whether err should re-render the submitted form instead of an error page.
func isFormError(err error) bool {
	return errors.Is(err, custom_errors.ErrPostValidation) || errors.Is(err, custom_errors.ErrSlugConflict)
}

func writeError(renderer Renderer, log ports.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", slog.String("path", r.URL.Path), slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		log.Debug("Request rejected", slog.String("path", r.URL.Path), slog.Int("status", status), slog.String("error", err.Error()))
	}
	renderer.Error(w, r, status, message)
}
