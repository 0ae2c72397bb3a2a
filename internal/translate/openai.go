// internal/translate/openai.go
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DM20911/Shodan-AI/internal/core"
)

// DefaultHTTPClient is the client used for completion calls. Tests swap it
// for an httptest server client.
var DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o-mini"

	systemPrompt = "Convert the user's question into a Shodan search query. " +
		"Use filters such as country:, port:, product:, org:. " +
		"Answer with ONLY the query, no explanation, no formatting."
)

// OpenAIClient translates questions through an OpenAI-compatible
// chat-completion endpoint.
type OpenAIClient struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		APIKey:  apiKey,
		BaseURL: defaultOpenAIBaseURL,
		Model:   defaultOpenAIModel,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TranslateQuery asks the completion API for a Shodan query. Any failure is
// returned to the caller, which falls back to the heuristic translator.
func (c *OpenAIClient) TranslateQuery(ctx context.Context, question string) (string, error) {
	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
		Temperature: 0,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := DefaultHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", core.ErrAPIError, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: %s", core.ErrAPIError, resp.Status)
	}
	if len(parsed.Choices) == 0 {
		return "", core.ErrEmptyCompletion
	}

	query := extractQuery(parsed.Choices[0].Message.Content)
	if query == "" {
		return "", core.ErrEmptyCompletion
	}
	return query, nil
}

// extractQuery pulls the query out of a completion: the first non-empty line,
// with code fences and surrounding quotes stripped. Models occasionally wrap
// the answer in markdown despite the prompt.
func extractQuery(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		return strings.TrimSpace(strings.Trim(line, "`"))
	}
	return ""
}
