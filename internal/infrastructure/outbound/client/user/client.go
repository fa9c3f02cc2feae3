package user_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkwell-blog-service/internal/custom_errors"
	model "inkwell-blog-service/internal/domain/models"
	ports "inkwell-blog-service/internal/domain/ports/output"
)

// OktaClient resolves user profiles through the Okta Users API.
type OktaClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        ports.Logger
	metrics    ports.MetricsProvider
}

type oktaUser struct {
	ID      string `json:"id"`
	Profile struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	} `json:"profile"`
}

func NewOktaClient(orgURL, apiToken string, timeout time.Duration, log ports.Logger, metrics ports.MetricsProvider) *OktaClient {
	return &OktaClient{
		baseURL:    strings.TrimRight(orgURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		metrics:    metrics,
	}
}

func (c *OktaClient) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := c.getUser(ctx, id)
	c.metrics.IncrementUserLookups(err == nil)
	return user, err
}

func (c *OktaClient) getUser(ctx context.Context, id string) (*model.User, error) {
	endpoint := c.baseURL + "/api/v1/users/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "SSWS "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Failed to call identity provider", slog.String("user_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrExternalServiceError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.log.Debug("User not found at identity provider", slog.String("user_id", id))
		return nil, custom_errors.ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("Identity provider returned an error",
			slog.String("user_id", id),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: unexpected status %d", custom_errors.ErrExternalServiceError, resp.StatusCode)
	}

	var u oktaUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		c.log.Error("Failed to decode user profile", slog.String("user_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: decode profile: %v", custom_errors.ErrExternalServiceError, err)
	}

	if u.ID == "" {
		u.ID = id
	}
	return &model.User{
		ID:        u.ID,
		FirstName: u.Profile.FirstName,
		LastName:  u.Profile.LastName,
		Email:     u.Profile.Email,
	}, nil
}
