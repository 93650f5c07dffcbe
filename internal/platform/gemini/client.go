// Package gemini is a model backend on the Gemini API using JSON-schema
// constrained output.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/platform/promptstyle"
)

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL     string
	Timeout     time.Duration
	Temperature *float64
}

type Client struct {
	log         *logger.Logger
	client      *genai.Client
	model       string
	temperature *float32
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: strings.TrimSpace(cfg.BaseURL)},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	c := &Client{
		log:    log.With("service", "GeminiClient"),
		client: gc,
		model:  model,
	}
	if cfg.Temperature != nil {
		c.temperature = genai.Ptr(float32(*cfg.Temperature))
	}
	return c, nil
}

func (c *Client) Model() string { return c.model }

func userContent(user string, media []llm.Media) *genai.Content {
	parts := make([]*genai.Part, 0, 1+len(media))
	parts = append(parts, genai.NewPartFromText(user))
	for _, m := range media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	return genai.NewContentFromParts(parts, genai.RoleUser)
}

// GenerateJSON makes exactly one generateContent call with the schema as the
// response constraint.
func (c *Client) GenerateJSON(ctx context.Context, req llm.JSONRequest) (map[string]any, error) {
	if req.SchemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if req.Schema == nil {
		return nil, errors.New("schema required")
	}
	system := promptstyle.ApplySystem(req.System, "json")

	config := &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema,
		Temperature:        c.temperature,
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{userContent(req.User, req.Media)}, config)
	if err != nil {
		observability.Current().ObserveLLMRequest("gemini", c.model, "error", time.Since(start))
		c.log.Warn("Gemini request failed", "prompt", req.Name, "error", err)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	observability.Current().ObserveLLMRequest("gemini", c.model, "ok", time.Since(start))

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return nil, fmt.Errorf("%w: empty response (finish reason %q)", llm.ErrMalformedOutput, reason)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model JSON: %v", llm.ErrMalformedOutput, err)
	}
	return obj, nil
}
