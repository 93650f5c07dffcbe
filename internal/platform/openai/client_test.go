package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

func assistantText(text string) map[string]any {
	return map[string]any{
		"output": []any{map[string]any{
			"type": "message",
			"role": "assistant",
			"content": []any{map[string]any{
				"type": "output_text",
				"text": text,
			}},
		}},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	temp := 0.2
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL + "/", Model: "gpt-test", Temperature: &temp})
	require.NoError(t, err)
	return c, &calls
}

func TestGenerateJSONSendsStrictSchemaAndAttachments(t *testing.T) {
	var got map[string]any
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_ = json.NewEncoder(w).Encode(assistantText(`{"skills":["Go"]}`))
	})

	out, err := c.GenerateJSON(context.Background(), llm.JSONRequest{
		Name:       "parse_resume",
		System:     "Extract resume data.",
		User:       "Resume: [attached file 1: application/pdf]",
		SchemaName: "ParseResumeOutput",
		Schema:     map[string]any{"type": "object"},
		Media: []llm.Media{
			{MIMEType: "application/pdf", Data: []byte("%PDF-1.4\n")},
			{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"skills": []any{"Go"}}, out)
	assert.Equal(t, 1, *calls)

	assert.Equal(t, "gpt-test", got["model"])
	assert.Equal(t, 0.2, got["temperature"])
	format := got["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "ParseResumeOutput", format["name"])
	assert.Equal(t, true, format["strict"])

	input := got["input"].([]any)
	require.Len(t, input, 2)
	assert.Contains(t, input[0].(map[string]any)["content"], "GROWTHDESK_PROMPT_STYLE_V1")

	parts := input[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 3)
	assert.Equal(t, "input_text", parts[0].(map[string]any)["type"])
	file := parts[1].(map[string]any)
	assert.Equal(t, "input_file", file["type"])
	assert.Equal(t, "attachment-1.pdf", file["filename"])
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQK", file["file_data"])
	assert.Equal(t, "input_image", parts[2].(map[string]any)["type"])
}

func TestGenerateJSONPlainUserContent(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(assistantText(`{"headline":"x"}`))
	})
	_, err := c.GenerateJSON(context.Background(), llm.JSONRequest{SchemaName: "S", Schema: map[string]any{}, User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got["input"].([]any)[1].(map[string]any)["content"])
}

func TestGenerateJSONHTTPErrorIsNotRetried(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	})

	_, err := c.GenerateJSON(context.Background(), llm.JSONRequest{SchemaName: "S", Schema: map[string]any{}})
	require.Error(t, err)
	var httpErr *openAIHTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.NotErrorIs(t, err, llm.ErrMalformedOutput)
	assert.Equal(t, 1, *calls)
}

func TestGenerateJSONMalformedOutput(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"not json": assistantText("Sure! Here is your headline."),
		"empty":    {"output": []any{}},
		"refusal":  {"refusal": "I can't help with that."},
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(body)
			})
			_, err := c.GenerateJSON(context.Background(), llm.JSONRequest{SchemaName: "S", Schema: map[string]any{}})
			assert.ErrorIs(t, err, llm.ErrMalformedOutput)
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(logger.Nop(), Config{})
	assert.Error(t, err)
}
