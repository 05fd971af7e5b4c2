// internal/summarize/client.go
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultEndpoint is the chat-completions endpoint used unless configured
// otherwise.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Request carries everything needed to summarize one file.
type Request struct {
	Content string // full file content
	Path    string // path relative to the scan root
	Project string // project/context label
	Model   string // model identifier
}

// Summarizer produces a short natural-language summary for one file.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

const systemPrompt = "You are a helpful assistant that provides concise, technically accurate code summaries for LLM context."

const userPromptFormat = `Analyze this file from the '%s' project. These summaries will be used as context for an LLM to understand the codebase.

File path: %s

For your summary:
1. Explain the primary purpose of this file
2. Mention key functionality or components it implements
3. Note any important dependencies or relationships to other files (if apparent)
4. Focus on what would be most helpful for understanding the code's role in the project

Content:
%s

Provide a concise, informative summary in 1-3 sentences.`

// OpenAIClient talks to an OpenAI-style chat-completions endpoint with
// bearer-token auth. Each call spools its JSON payload through a temp file
// that lives only for the duration of the request.
type OpenAIClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewOpenAIClient(endpoint, apiKey string) *OpenAIClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &OpenAIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{},
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
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends one chat completion request and returns the trimmed
// summary text from the first choice.
func (c *OpenAIClient) Summarize(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, req.Project, req.Path, req.Content)},
		},
		Temperature: 0.3,
		MaxTokens:   250,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	payload, err := spoolPayload(body)
	if err != nil {
		return "", err
	}
	defer payload.Close()
	defer os.Remove(payload.Name())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.ContentLength = int64(len(body))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	summary := strings.TrimSpace(result.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("chat response contained no summary content")
	}
	return summary, nil
}

// spoolPayload writes the request body to a temp file and rewinds it so it
// can serve as the request's reader. The caller removes the file once the
// request completes.
func spoolPayload(body []byte) (*os.File, error) {
	f, err := os.CreateTemp("", "dirtree-payload-*.json")
	if err != nil {
		return nil, fmt.Errorf("create payload file: %w", err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write payload file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("rewind payload file: %w", err)
	}
	return f, nil
}
