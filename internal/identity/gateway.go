// Package identity is the client for the remote identity service. It
// exchanges raw credentials for a bearer token and a principal record, and
// best-effort revokes server-side sessions on logout.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinops/wardview/internal/principal"
)

// Sentinel errors
var (
	// ErrRejected is returned when the identity service explicitly rejects
	// the submitted credentials. Its message is safe to show to the user.
	ErrRejected = errors.New("authentication rejected")

	// ErrUnavailable is returned when the identity service cannot be
	// reached or answers outside the login contract.
	ErrUnavailable = errors.New("identity service unavailable")
)

// Credentials are the raw login inputs.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Grant is a successful authentication result: an opaque bearer token and
// the principal it was issued to, in wire form.
type Grant struct {
	Token     string                 `json:"token"`
	Principal principal.RawPrincipal `json:"principal"`
}

// Gateway authenticates credentials against the identity service.
type Gateway interface {
	Authenticate(ctx context.Context, creds Credentials) (*Grant, error)

	// Invalidate revokes the server-side session behind token. Callers
	// treat failures as best-effort.
	Invalidate(ctx context.Context, token string) error
}

// requestTimeout bounds each identity call. No retries happen here; retry
// policy belongs to the transport layer.
const requestTimeout = 10 * time.Second

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an identity client against baseURL. A nil httpClient
// falls back to a plain client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// Authenticate submits credentials and returns the grant. A 401/403
// answer maps to ErrRejected with the server's message; anything else that
// breaks the contract maps to ErrUnavailable.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Grant, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrRejected, errorMessage(resp.Body))
	default:
		return nil, fmt.Errorf("%w: identity service returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var grant Grant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %v", ErrUnavailable, err)
	}

	if grant.Token == "" {
		return nil, fmt.Errorf("%w: login response missing token", ErrUnavailable)
	}

	log.Debug().Str("principal", grant.Principal.ID).Msg("authenticated against identity service")

	return &grant, nil
}

// Invalidate revokes the server-side session behind token.
func (c *Client) Invalidate(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: identity service returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	log.Debug().Msg("remote session invalidated")

	return nil
}

// errorMessage extracts the server-provided rejection message, falling
// back to a generic one.
func errorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload.Message == "" {
		return "credentials rejected"
	}
	return payload.Message
}
