package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"jobtailor/internal/ailog"
	"jobtailor/internal/llm"
	"jobtailor/internal/shared/telemetry"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

const defaultSystemMessage = "You are a helpful assistant."

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	aiLog      *ailog.Logger
}

// NewClient constructs a new OpenAI client. aiLog may be nil.
func NewClient(apiKey, model string, aiLog *ailog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		aiLog: aiLog,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends a system+user exchange and returns the first choice content
// with any markdown code fencing stripped.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	systemMessage := strings.TrimSpace(req.SystemMessage)
	if systemMessage == "" {
		systemMessage = defaultSystemMessage
	}

	telemetry.Info("llm.request", map[string]any{
		"label":       req.Label,
		"model":       c.model,
		"prompt_len":  len(req.Prompt),
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
	})
	c.aiLog.Request(req.Label, systemMessage, req.Prompt)

	temp := req.Temperature
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: &temp,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			err = fmt.Errorf("openai request timeout: %w", err)
		}
		c.aiLog.ResponseError(req.Label, err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.aiLog.ResponseError(req.Label, err)
		return "", err
	}

	content, err := parseChatResponse(body)
	if err != nil {
		c.aiLog.ResponseError(req.Label, err)
		return "", err
	}

	telemetry.Info("llm.response", map[string]any{
		"label":       req.Label,
		"model":       c.model,
		"content_len": len(content),
	})
	c.aiLog.Response(req.Label, content)
	return content, nil
}

func parseChatResponse(body []byte) (string, error) {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	if parsed.Usage != nil {
		telemetry.Info("llm.usage", map[string]any{
			"prompt_tokens":     parsed.Usage.PromptTokens,
			"completion_tokens": parsed.Usage.CompletionTokens,
			"total_tokens":      parsed.Usage.TotalTokens,
		})
	}

	content := StripCodeFences(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	return content, nil
}

// StripCodeFences removes leading/trailing markdown code-fence markers that
// models sometimes wrap around HTML or JSON output.
func StripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence, e.g. ```html or ```json.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, " \t<{") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ llm.Client = (*Client)(nil)
