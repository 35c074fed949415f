package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userEndpoint = "/auth/v1/user"

// ErrInvalidToken is returned when the provider rejects the token or
// resolves no identity for it. Transport failures are returned as-is so
// callers can tell the two cases apart.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved subject behind a bearer token.
type Identity struct {
	Subject string
	Email   string
}

// Verifier resolves a bearer token to an identity.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// Client verifies bearer tokens against the identity provider's user
// introspection endpoint. Every call hits the provider; results are
// never cached.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating introspection request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling identity provider: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading introspection response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding introspection response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{Subject: user.ID, Email: user.Email}, nil
}
