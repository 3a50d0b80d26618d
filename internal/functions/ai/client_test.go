package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare json",
			content: `{"type":"meeting"}`,
			want:    `{"type":"meeting"}`,
		},
		{
			name:    "markdown fenced",
			content: "```json\n{\"type\":\"meeting\"}\n```",
			want:    `{"type":"meeting"}`,
		},
		{
			name:    "surrounding prose",
			content: "Here is the result:\n{\"type\":\"task\"}\nHope that helps!",
			want:    `{"type":"task"}`,
		},
		{
			name:    "whitespace only",
			content: "  \n ",
			want:    "",
		},
		{
			name:    "no braces passes through",
			content: "not json at all",
			want:    "not json at all",
		},
		{
			name:    "reversed braces pass through",
			content: "} nothing {",
			want:    "} nothing {",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.content))
		})
	}
}

func TestParseEmail(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := ChatResponse{
			Choices: []struct {
				Message ChatMessage `json:"message"`
			}{
				{Message: ChatMessage{
					Role:    "assistant",
					Content: "```json\n{\"detailed_task_title\":\"Design review with Acme\",\"company_name\":\"Acme\",\"type\":\"meeting\",\"deadline\":\"2025-06-20\"}\n```",
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Options{Provider: "openai", APIKey: "test-key", Model: "gpt-4o-mini"})
	client.SetBaseURL(server.URL)

	parsed, err := client.ParseEmail("Design review 6/20/2025", "alice@acme.com")
	require.NoError(t, err)

	assert.Equal(t, "Design review with Acme", parsed.DetailedTaskTitle)
	assert.Equal(t, "Acme", parsed.CompanyName)
	assert.Equal(t, "meeting", parsed.Type)
	assert.Equal(t, "2025-06-20", parsed.Deadline)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "Design review 6/20/2025")
	assert.Contains(t, gotReq.Messages[0].Content, "alice@acme.com")
}

func TestParseEmailErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client := NewClient(Options{Provider: "openai"})
		_, err := client.ParseEmail("subject", "sender@example.com")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(Options{Provider: "openai", APIKey: "test-key"})
		client.SetBaseURL(server.URL)

		_, err := client.ParseEmail("subject", "sender@example.com")
		assert.ErrorIs(t, err, ErrAPICallFailed)
	})

	t.Run("unparseable content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Choices: []struct {
					Message ChatMessage `json:"message"`
				}{
					{Message: ChatMessage{Role: "assistant", Content: "sorry, I cannot help with that"}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(Options{Provider: "openai", APIKey: "test-key"})
		client.SetBaseURL(server.URL)

		_, err := client.ParseEmail("subject", "sender@example.com")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}
