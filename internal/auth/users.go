package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gutly/internal/config"
)

// ErrMissingAPIKey is returned by every lookup while WHOP_API_KEY is unset.
var ErrMissingAPIKey = errors.New("WHOP_API_KEY environment variable is not set")

// User is the subset of a Whop user profile the app shows.
type User struct {
	ID       string `json:"id" example:"user_abc123"`
	Email    string `json:"email,omitempty" example:"jane@example.com"`
	Name     string `json:"name,omitempty" example:"Jane Doe"`
	Username string `json:"username,omitempty" example:"jane"`
}

// UserLookup fetches a profile for a verified user id.
type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*User, error)
}

// UsersClient talks to the Whop REST API.
type UsersClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewUsersClient(cfg config.WhopConfig) *UsersClient {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.whop.com/api/v1"
	}
	return &UsersClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *UsersClient) GetUser(ctx context.Context, userID string) (*User, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Whop API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		user.ID = userID
	}
	return &user, nil
}
