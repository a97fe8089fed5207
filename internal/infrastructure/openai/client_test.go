package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/intelligence/sidekick_gpt"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
)

func testRequest() *sidekick_gpt.ChatRequest {
	return &sidekick_gpt.ChatRequest{
		Model:       "gpt-4o",
		Temperature: 0.7,
		MaxTokens:   1500,
		Messages: []sidekick_gpt.Message{
			{Role: sidekick_gpt.RoleSystem, Content: "persona"},
			{Role: sidekick_gpt.RoleUser, Content: "analyse this"},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{})
	require.Error(t, err)
	_, err = NewClient(nil)
	require.Error(t, err)
}

func TestCompleteHappyPath(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `{"ok": true}`}},
			},
		})
	})

	reply, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotBody["model"])
	assert.InDelta(t, 0.7, gotBody["temperature"].(float64), 1e-9)
	assert.InDelta(t, 1500, gotBody["max_tokens"].(float64), 1e-9)
}

func TestCompleteStatusMapping(t *testing.T) {
	for status, want := range map[int]errors.ErrorCode{
		http.StatusUnauthorized:        errors.ErrCodeGenerationAuth,
		http.StatusForbidden:           errors.ErrCodeGenerationAuth,
		http.StatusTooManyRequests:     errors.ErrCodeGenerationQuota,
		http.StatusGatewayTimeout:      errors.ErrCodeGenerationTimeout,
		http.StatusInternalServerError: errors.ErrCodeGenerationUnreachable,
	} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "nope", "type": "test"},
			})
		})

		_, err := client.Complete(context.Background(), testRequest())
		require.Error(t, err, "status %d", status)
		assert.True(t, errors.IsCode(err, want), "status %d: got %v", status, err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGenerationEmpty))
}

func TestCompleteBlankContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  \n"}},
			},
		})
	})

	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGenerationEmpty))
}

func TestCompleteConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(&Config{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGenerationUnreachable))
}

//Personal.AI order the ending
