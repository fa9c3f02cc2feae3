package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	ports "inkwell-blog-service/internal/domain/ports/output"
	"inkwell-blog-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	stateCookie   = "blog_oauth_state"
	nextCookie    = "blog_oauth_next"
	flowCookieTTL = 10 * time.Minute

	defaultLanding = "/dashboard"
)

type ErrorRenderer interface {
	Error(w http.ResponseWriter, r *http.Request, status int, message string)
}

// OIDCHandler runs the authorization-code flow against the identity provider.
type OIDCHandler struct {
	oauth       *oauth2.Config
	userinfoURL string
	httpClient  *http.Client
	sessions    *SessionManager
	renderer    ErrorRenderer
	log         ports.Logger
}

func NewOIDCHandler(cfg config.Identity, sessions *SessionManager, renderer ErrorRenderer, log ports.Logger) *OIDCHandler {
	issuer := strings.TrimRight(cfg.Issuer, "/")
	return &OIDCHandler{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   issuer + "/v1/authorize",
				TokenURL:  issuer + "/v1/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		userinfoURL: issuer + "/v1/userinfo",
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		sessions:    sessions,
		renderer:    renderer,
		log:         log,
	}
}

// Login sends an anonymous visitor to the provider. A visitor who already has a session goes straight to next.
func (h *OIDCHandler) Login(w http.ResponseWriter, r *http.Request) {
	next := SafeNext(r.URL.Query().Get("next"))

	if _, err := h.sessions.UserID(r); err == nil {
		http.Redirect(w, r, landing(next), http.StatusSeeOther)
		return
	}

	state := uuid.NewString()
	h.setFlowCookie(w, stateCookie, state, flowCookieTTL)
	h.setFlowCookie(w, nextCookie, next, flowCookieTTL)

	h.log.Debug("Redirecting to identity provider", slog.String("next", next))
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

func (h *OIDCHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		h.log.Debug("Identity provider returned an error", slog.String("error", providerErr), slog.String("description", query.Get("error_description")))
		h.renderer.Error(w, r, http.StatusBadRequest, "Login was not completed.")
		return
	}

	stateCookieValue, err := r.Cookie(stateCookie)
	if err != nil || stateCookieValue.Value == "" || stateCookieValue.Value != query.Get("state") {
		h.log.Debug("OAuth state mismatch", slog.String("error", custom_errors.ErrInvalidState.Error()))
		h.renderer.Error(w, r, http.StatusBadRequest, "Login session expired, please try again.")
		return
	}

	code := query.Get("code")
	if code == "" {
		h.renderer.Error(w, r, http.StatusBadRequest, "Missing authorization code.")
		return
	}

	userID, err := h.exchange(r.Context(), code)
	if err != nil {
		h.log.Error("Failed to complete login", slog.String("error", err.Error()))
		h.renderer.Error(w, r, http.StatusBadGateway, "The identity provider could not be reached.")
		return
	}

	if err := h.sessions.Issue(w, userID); err != nil {
		h.log.Error("Failed to issue session", slog.String("user_id", userID), slog.String("error", err.Error()))
		h.renderer.Error(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	next := ""
	if c, err := r.Cookie(nextCookie); err == nil {
		next = SafeNext(c.Value)
	}
	h.setFlowCookie(w, stateCookie, "", -1)
	h.setFlowCookie(w, nextCookie, "", -1)

	h.log.Info("User logged in", slog.String("user_id", userID))
	http.Redirect(w, r, landing(next), http.StatusSeeOther)
}

func (h *OIDCHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// exchange trades the code for tokens and resolves the subject from the userinfo endpoint.
func (h *OIDCHandler) exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: code exchange: %v", custom_errors.ErrExternalServiceError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: userinfo: %v", custom_errors.ErrExternalServiceError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: userinfo returned %d", custom_errors.ErrExternalServiceError, resp.StatusCode)
	}

	var info struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: decode userinfo: %v", custom_errors.ErrExternalServiceError, err)
	}
	if info.Sub == "" {
		return "", fmt.Errorf("%w: userinfo without subject", custom_errors.ErrExternalServiceError)
	}
	return info.Sub, nil
}

func (h *OIDCHandler) setFlowCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.sessions.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func landing(next string) string {
	if next == "" {
		return defaultLanding
	}
	return next
}
