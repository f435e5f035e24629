package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gutly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []json.RawMessage `json:"messages"`
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	})
	return string(b)
}

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:              "sk-test",
		BaseURL:             baseURL + "/v1",
		Model:               "gpt-4o-mini",
		AnalysisTemperature: 0.3,
		InsightsTemperature: 0.7,
	}
}

func TestScoreMealSendsImageAndJSONFormat(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, completionBody(`{"title":"Bowl"}`), &captured)

	c := NewClient(testConfig(srv.URL), "system prompt", "user prompt")
	out, err := c.ScoreMeal(context.Background(), "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, `{"title":"Bowl"}`, out)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.InDelta(t, 0.3, captured.Temperature, 0.0001)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, string(captured.Messages[0]), "system prompt")
	assert.Contains(t, string(captured.Messages[1]), "data:image/jpeg;base64,AAAA")
	assert.Contains(t, string(captured.Messages[1]), "user prompt")
}

func TestScoreMealEmptyReplyBecomesEmptyObject(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, completionBody(""), nil)

	out, err := NewClient(testConfig(srv.URL), "s", "u").ScoreMeal(context.Background(), "data:image/png;base64,AA")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestScoreMealProviderError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, nil)

	_, err := NewClient(testConfig(srv.URL), "s", "u").ScoreMeal(context.Background(), "data:image/png;base64,AA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient(config.OpenAIConfig{}, "s", "u")

	_, err := c.ScoreMeal(context.Background(), "data:image/png;base64,AA")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = c.GenerateInsights(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateInsightsUsesInsightsTemperature(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, completionBody(`{"insights":[]}`), &captured)

	out, err := NewClient(testConfig(srv.URL), "s", "u").GenerateInsights(context.Background(), "history", "analyze")
	require.NoError(t, err)

	assert.Equal(t, `{"insights":[]}`, out)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	assert.Contains(t, string(captured.Messages[0]), "history")
}
