package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured indicates the AI client is not configured
	ErrNotConfigured = errors.New("AI client not configured")
	// ErrAPICallFailed indicates the AI API call failed
	ErrAPICallFailed = errors.New("AI API call failed")
	// ErrInvalidResponse indicates an invalid response from the AI API
	ErrInvalidResponse = errors.New("invalid AI API response")
)

// Provider represents an AI provider
type Provider string

const (
	// ProviderOpenAI represents OpenAI API
	ProviderOpenAI Provider = "openai"
	// ProviderAzure represents Azure OpenAI API
	ProviderAzure Provider = "azure"
	// ProviderClaude represents Anthropic Claude API
	ProviderClaude Provider = "claude"
	// ProviderCustom represents a custom API endpoint
	ProviderCustom Provider = "custom"
)

// Options configures a Client. The API key is injected here, not read from
// process-wide state.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Client handles the chat-completions call used for email classification
type Client struct {
	provider   Provider
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new AI Client from the given options
func NewClient(opts Options) *Client {
	c := &Client{
		provider: Provider(strings.ToLower(opts.Provider)),
		apiKey:   opts.APIKey,
		model:    opts.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if opts.BaseURL != "" {
		c.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
	} else {
		switch c.provider {
		case ProviderOpenAI:
			c.baseURL = "https://api.openai.com/v1"
			if c.model == "" {
				c.model = "gpt-3.5-turbo"
			}
		case ProviderClaude:
			c.baseURL = "https://api.anthropic.com/v1"
			if c.model == "" {
				c.model = "claude-3-haiku-20240307"
			}
		case ProviderAzure:
			// Azure requires a custom endpoint
			if c.model == "" {
				c.model = "gpt-35-turbo"
			}
		default:
			c.provider = ProviderOpenAI
			c.baseURL = "https://api.openai.com/v1"
		}
	}

	return c
}

// SetBaseURL overrides the API base URL (used by tests)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

// IsConfigured returns whether the client has an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// ChatMessage represents a message in a chat conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// sendChatRequest sends a chat completion request to the AI API
func (c *Client) sendChatRequest(messages []ChatMessage) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.3,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPICallFailed, err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPICallFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")

	switch c.provider {
	case ProviderClaude:
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPICallFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPICallFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAPICallFailed, resp.StatusCode, string(respBody))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrAPICallFailed, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrInvalidResponse
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ParsedEmail is the structured guess the classification service returns.
// Deadline is the service's own free-text suggestion and is not trusted for
// non-meetings.
type ParsedEmail struct {
	DetailedTaskTitle string `json:"detailed_task_title"`
	CompanyName       string `json:"company_name"`
	Type              string `json:"type"`
	Deadline          string `json:"deadline"`
}

// ParseEmail prompts the classification service with the subject and sender
// and parses the strict JSON object it is instructed to return
func (c *Client) ParseEmail(subject, sender string) (*ParsedEmail, error) {
	prompt := fmt.Sprintf(`Based ONLY on the email subject and sender, extract this information as JSON:
- detailed_task_title: Create a meaningful title from the subject (max 8 words)
- company_name: Extract company name from sender email domain
- type: Classify as "email", "meeting", or "task" based on subject keywords
- deadline: For tasks, use 3 days from today. For meetings, try to extract date from subject.

Subject: %s
Sender: %s

Return ONLY JSON with keys: detailed_task_title, company_name, type, deadline`, subject, sender)

	response, err := c.sendChatRequest([]ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	cleaned := CleanJSONResponse(response)

	var parsed ParsedEmail
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &parsed, nil
}

// CleanJSONResponse strips markdown code fences and surrounding text from an
// LLM response, keeping just the JSON object
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start > end {
		return content
	}

	return strings.TrimSpace(content[start : end+1])
}
