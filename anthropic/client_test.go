package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwojcik/toolstream"
	"github.com/mwojcik/toolstream/anthropic"
)

func TestClient_RequestShape(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n"))
	}))
	t.Cleanup(srv.Close)

	client := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	src, err := client.Stream(context.Background(), anthropic.Request{
		Model:  "claude-3-5-haiku-latest",
		System: "You run tabletop tools.",
		Messages: []anthropic.Message{
			{Role: "user", Content: "Roll 3d20."},
		},
		Tools: []toolstream.Tool{{
			Name:        "roll_dice",
			Description: "Simulate dice rolls",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"sides":{"type":"integer"}}}`),
		}},
		ToolChoice: "any",
		MaxTokens:  512,
	})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "test-key", gotHeader.Get("X-Api-Key"))
	assert.Equal(t, "2023-06-01", gotHeader.Get("Anthropic-Version"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))

	assert.Equal(t, "claude-3-5-haiku-latest", gotBody["model"])
	assert.Equal(t, true, gotBody["stream"])
	assert.Equal(t, float64(512), gotBody["max_tokens"])
	assert.Equal(t, "You run tabletop tools.", gotBody["system"])

	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "Roll 3d20."}, msgs[0])

	tools, ok := gotBody["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, "roll_dice", tool["name"])
	assert.Equal(t, "Simulate dice rolls", tool["description"])
	assert.Contains(t, tool, "input_schema")

	choice, ok := gotBody["tool_choice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "any", choice["type"])
}

func TestClient_Defaults(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n"))
	}))
	t.Cleanup(srv.Close)

	client := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	src, err := client.Stream(context.Background(), anthropic.Request{
		Messages: []anthropic.Message{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)
	defer src.Close()

	assert.NotEmpty(t, gotBody["model"])
	assert.NotZero(t, gotBody["max_tokens"])
	assert.NotContains(t, gotBody, "tools")
	assert.NotContains(t, gotBody, "tool_choice")
	assert.NotContains(t, gotBody, "temperature")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	t.Cleanup(srv.Close)

	client := anthropic.New("bad-key", anthropic.WithBaseURL(srv.URL))
	_, err := client.Stream(context.Background(), anthropic.Request{
		Messages: []anthropic.Message{{Role: "user", Content: "Hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestClient_HTTPErrorUnparseableBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream fell over"))
	}))
	t.Cleanup(srv.Close)

	client := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	_, err := client.Stream(context.Background(), anthropic.Request{
		Messages: []anthropic.Message{{Role: "user", Content: "Hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream fell over")
}
