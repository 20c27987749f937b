package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/config"
)

// GoTrueClient implements membership.IdentityProvider against a
// GoTrue-compatible auth service (Supabase Auth). The service key is
// used for admin operations, the anon key for end-user flows.
type GoTrueClient struct {
	baseURL    string
	serviceKey string
	anonKey    string
	httpClient *http.Client
}

// NewGoTrueClient creates a new identity client
func NewGoTrueClient(cfg config.IdentityConfig) *GoTrueClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &GoTrueClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID string `json:"id"`
}

type tokenResponse struct {
	User userResponse `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Error
}

// SignUp creates a credentialed user via the admin endpoint so the
// account is immediately confirmed
func (c *GoTrueClient) SignUp(ctx context.Context, email, password string) (uuid.UUID, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var resp userResponse
	if err := c.doRequest(ctx, http.MethodPost, "/admin/users", c.serviceKey, body, &resp); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(resp.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity: malformed user id %q", resp.ID)
	}
	return id, nil
}

// VerifyPassword checks credentials against the password grant endpoint
// and returns the user id
func (c *GoTrueClient) VerifyPassword(ctx context.Context, email, password string) (uuid.UUID, error) {
	body := credentialsRequest{Email: email, Password: password}

	var resp tokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey, body, &resp); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(resp.User.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity: malformed user id %q", resp.User.ID)
	}
	return id, nil
}

// DeleteUser removes a user via the admin endpoint
func (c *GoTrueClient) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.doRequest(ctx, http.MethodDelete, "/admin/users/"+userID.String(), c.serviceKey, nil, nil)
}

// doRequest performs an authenticated JSON request and maps upstream
// error messages to domain errors
func (c *GoTrueClient) doRequest(ctx context.Context, method, path, apiKey string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identity: failed to build request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("identity: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("identity: failed to decode response: %w", err)
		}
	}
	return nil
}

// mapError translates GoTrue error payloads into domain errors
func (c *GoTrueClient) mapError(status int, body []byte) error {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)
	msg := strings.ToLower(apiErr.text())

	switch {
	case strings.Contains(msg, "email not confirmed"):
		return membership.ErrEmailNotConfirmed
	case strings.Contains(msg, "signups not allowed"), strings.Contains(msg, "signups are disabled"):
		return membership.ErrSignupsDisabled
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already been registered"):
		return membership.ErrAlreadyRegistered
	case status == http.StatusBadRequest, status == http.StatusUnauthorized:
		return membership.ErrInvalidCredentials
	case status == http.StatusNotFound:
		return shared.ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", shared.ErrUpstreamUnavailable, status)
	}
}

// Ensure GoTrueClient implements IdentityProvider
var _ membership.IdentityProvider = (*GoTrueClient)(nil)
