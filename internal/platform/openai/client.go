// Package openai is a model backend speaking the OpenAI Responses API with
// strict structured output.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/platform/promptstyle"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// Temperature is omitted from requests when nil.
	Temperature *float64
}

type Client struct {
	log         *logger.Logger
	baseURL     string
	apiKey      string
	model       string
	temperature *float64
	httpClient  *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4.1-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &Client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Model() string { return c.model }

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.Current().ObserveLLMRequest("openai", c.model, "transport_error", time.Since(start))
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	observability.Current().ObserveLLMRequest("openai", c.model, strconv.Itoa(resp.StatusCode), time.Since(start))
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// -------------------- Responses API --------------------

type responsesInput struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type responsesRequest struct {
	Model string           `json:"model"`
	Input []responsesInput `json:"input"`

	Text struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text,omitempty"`

	Temperature *float64 `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) string {
	var out strings.Builder
	for _, item := range resp.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && c.Text != "" {
					out.WriteString(c.Text)
				}
			}
		}
	}
	return out.String()
}

func extractRefusal(resp responsesResponse) string {
	if resp.Refusal != "" {
		return resp.Refusal
	}
	for _, item := range resp.Output {
		for _, c := range item.Content {
			if c.Type == "refusal" && c.Refusal != "" {
				return c.Refusal
			}
		}
	}
	return ""
}

// userContent renders the user turn. Without attachments it is a plain
// string; with attachments it becomes a content list where images travel as
// input_image and every other MIME type as input_file.
func userContent(user string, media []llm.Media) any {
	if len(media) == 0 {
		return user
	}
	content := make([]map[string]any, 0, 1+len(media))
	content = append(content, map[string]any{"type": "input_text", "text": user})
	for i, m := range media {
		if m.IsImage() {
			content = append(content, map[string]any{
				"type":      "input_image",
				"image_url": m.DataURI(),
			})
			continue
		}
		content = append(content, map[string]any{
			"type":      "input_file",
			"filename":  fmt.Sprintf("attachment-%d%s", i+1, extensionFor(m.MIMEType)),
			"file_data": m.DataURI(),
		})
	}
	return content
}

func extensionFor(mime string) string {
	switch mime {
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "application/msword":
		return ".doc"
	default:
		return ""
	}
}

// GenerateJSON makes exactly one Responses API call constrained by req.Schema.
func (c *Client) GenerateJSON(ctx context.Context, req llm.JSONRequest) (map[string]any, error) {
	if req.SchemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if req.Schema == nil {
		return nil, errors.New("schema required")
	}
	system := promptstyle.ApplySystem(req.System, "json")

	body := responsesRequest{
		Model: c.model,
		Input: []responsesInput{
			{Role: "system", Content: system},
			{Role: "user", Content: userContent(req.User, req.Media)},
		},
		Temperature: c.temperature,
	}
	body.Text.Format = map[string]any{
		"type":   "json_schema",
		"name":   req.SchemaName,
		"schema": req.Schema,
		"strict": true,
	}

	raw, err := c.doOnce(ctx, http.MethodPost, "/v1/responses", &body)
	if err != nil {
		c.log.Warn("OpenAI request failed", "prompt", req.Name, "error", err)
		return nil, err
	}
	var resp responsesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("openai decode error: %w", err)
	}
	if refusal := extractRefusal(resp); refusal != "" {
		return nil, fmt.Errorf("%w: model refused: %s", llm.ErrMalformedOutput, refusal)
	}

	jsonText := extractOutputText(resp)
	if strings.TrimSpace(jsonText) == "" {
		return nil, fmt.Errorf("%w: no output_text found in response", llm.ErrMalformedOutput)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(jsonText), &obj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model JSON: %v", llm.ErrMalformedOutput, err)
	}
	return obj, nil
}
