package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient calls the Groq Chat Completions API (OpenAI-compatible).
// See: https://console.groq.com/docs/api-reference
type GroqClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

// NewGroqClient creates a Groq client. The API key is required; key
// presence is validated at startup so requests never discover a
// missing credential.
func NewGroqClient(apiKey string, timeout time.Duration) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: api key is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GroqClient{
		http:    &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

type chatReq struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float32           `json:"temperature,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompleteStructured requests a completion constrained to a JSON
// object and verifies the content decodes before returning it.
func (g *GroqClient) CompleteStructured(ctx context.Context, opts Options, system, user string) (json.RawMessage, error) {
	req := chatReq{
		Model: opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    opts.Temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	content, err := g.send(ctx, req)
	if err != nil {
		return nil, err
	}
	raw := json.RawMessage(content)
	var scratch any
	if err := json.Unmarshal(raw, &scratch); err != nil {
		return nil, fmt.Errorf("groq: completion is not valid JSON: %w", err)
	}
	return raw, nil
}

// CompleteText requests a free-text completion.
func (g *GroqClient) CompleteText(ctx context.Context, opts Options, system, user string) (string, error) {
	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})
	content, err := g.send(ctx, chatReq{Model: opts.Model, Messages: messages, Temperature: opts.Temperature})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// DescribeImage sends the image as a base64 data URL to a
// vision-capable model and returns the description text.
func (g *GroqClient) DescribeImage(ctx context.Context, opts Options, instruction, mimeType string, data []byte) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	req := chatReq{
		Model: opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a product vision expert. Describe the product for an e-commerce listing in a detailed yet concise way."},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: instruction},
				{Type: "image_url", ImageURL: &imageURL{URL: fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)}},
			}},
		},
		Temperature: opts.Temperature,
	}
	content, err := g.send(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (g *GroqClient) send(ctx context.Context, body chatReq) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(raw) > max {
			raw = raw[:max]
		}
		err := fmt.Errorf("groq: unexpected status %s: %s", resp.Status, string(raw))
		if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(strings.ToLower(string(raw)), "rate_limit") {
			return "", &RateLimitError{Err: err}
		}
		return "", err
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
