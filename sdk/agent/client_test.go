package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseHandler(t *testing.T, frames [][2]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, f := range frames {
			require.NoError(t, WriteFrame(w, f[0], f[1]))
			flusher.Flush()
		}
	}
}

func TestClientHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy","agent_configured":true}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		health, err := client.Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "healthy", health.Status)
		assert.True(t, health.AgentConfigured)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestClientChat(t *testing.T) {
	t.Run("streams decoded events in order", func(t *testing.T) {
		server := httptest.NewServer(sseHandler(t, [][2]string{
			{"plan", `{"selected_tool":"search_airports"}`},
			{"tool_call_start", `{"name":"search_airports"}`},
			{"tool_call_end", `{"name":"search_airports","result":{"airports":[{"ident":"EGLL"}]}}`},
			{"message", `{"content":"Found Heathrow"}`},
			{"done", `{"session_id":"s1","tokens":{"input":10,"output":5,"total":15}}`},
		}))
		defer server.Close()

		client := NewClient(server.URL)
		events, errCh, err := client.Chat(context.Background(), &ChatRequest{Message: "find london airports"})
		require.NoError(t, err)

		var types []EventType
		for ev := range events {
			types = append(types, ev.Type())
		}
		require.NoError(t, <-errCh)
		assert.Equal(t, []EventType{
			EventTypePlan,
			EventTypeToolCallStart,
			EventTypeToolCallEnd,
			EventTypeMessage,
			EventTypeDone,
		}, types)
	})

	t.Run("http error before streaming", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad request", http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, _, err := client.Chat(context.Background(), &ChatRequest{Message: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("context cancellation stops the stream", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			WriteFrame(w, "message", `{"content":"first"}`)
			flusher.Flush()
			<-release
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		client := NewClient(server.URL)
		events, errCh, err := client.Chat(ctx, &ChatRequest{Message: "x"})
		require.NoError(t, err)

		ev := <-events
		assert.Equal(t, EventTypeMessage, ev.Type())
		cancel()

		for range events {
		}
		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("error channel never closed after cancellation")
		}
	})
}

func TestClientChatSync(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, [][2]string{
		{"message", `{"content":"Heathrow "}`},
		{"message", `{"content":"found"}`},
		{"final_answer", `{"state":{"final_answer":"Heathrow is EGLL."}}`},
		{"done", `{"session_id":"s1","tokens":{"input":20,"output":8,"total":28}}`},
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.ChatSync(context.Background(), &ChatRequest{Message: "where is heathrow"})
	require.NoError(t, err)
	assert.Equal(t, "Heathrow found", result.Text)
	assert.Equal(t, "Heathrow is EGLL.", result.FinalAnswer)
	assert.Equal(t, "s1", result.SessionID)
	assert.Equal(t, TokenUsage{Input: 20, Output: 8, Total: 28}, result.Tokens)
	assert.Empty(t, result.Err)
}
