package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gutly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/user_1", r.URL.Path)
		assert.Equal(t, "Bearer whop_key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user_1","email":"jane@example.com","name":"Jane Doe","username":"jane","bio":"ignored"}`))
	}))
	defer srv.Close()

	c := NewUsersClient(config.WhopConfig{APIKey: "whop_key", APIBaseURL: srv.URL + "/api/v1/"})
	user, err := c.GetUser(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "user_1", Email: "jane@example.com", Name: "Jane Doe", Username: "jane"}, user)
}

func TestGetUserAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	c := NewUsersClient(config.WhopConfig{APIKey: "whop_key", APIBaseURL: srv.URL})
	user, err := c.GetUser(context.Background(), "user_1")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGetUserWithoutAPIKey(t *testing.T) {
	_, err := NewUsersClient(config.WhopConfig{}).GetUser(context.Background(), "user_1")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
