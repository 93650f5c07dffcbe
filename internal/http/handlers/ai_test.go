package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/growthdesk-backend/internal/actions"
	"github.com/yungbote/growthdesk-backend/internal/ai/aitest"
	"github.com/yungbote/growthdesk-backend/internal/ai/flows"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

func aiRouter(t *testing.T, backend *aitest.Backend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f, err := flows.New(logger.Nop(), backend)
	require.NoError(t, err)
	h := NewAIHandler(logger.Nop(), actions.New(logger.Nop(), f), f.Registry())

	r := gin.New()
	r.GET("/api/ai/capabilities", h.ListCapabilities)
	r.POST("/api/ai/headline", h.SuggestHeadline)
	r.POST("/api/ai/about", h.GenerateAboutSection)
	r.POST("/api/ai/growth-suggestions", h.GetDailyGrowthSuggestions)
	r.POST("/api/ai/quiz", h.GenerateQuiz)
	r.POST("/api/ai/resume", h.ParseResume)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAIHandlerSuccess(t *testing.T) {
	backend := aitest.Returning(map[string]any{"headline": "Data Scientist | ML for Healthcare"})
	r := aiRouter(t, backend)

	rec := post(r, "/api/ai/headline", `{"careerField":"Data Science","experience":"3 years building ML models for healthcare"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"headline": "Data Scientist | ML for Healthcare"}, decodeBody(t, rec))
	assert.Equal(t, 1, backend.CallCount())
}

func TestAIHandlerReshapesSuggestions(t *testing.T) {
	backend := aitest.Returning(map[string]any{"growthSuggestions": []string{"a", "b", "c"}})
	r := aiRouter(t, backend)

	rec := post(r, "/api/ai/growth-suggestions", `{"currentProfileSummary":"Backend engineer in fintech","careerField":"IT"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"suggestions": []any{"a", "b", "c"}}, decodeBody(t, rec))
}

func TestAIHandlerFailureStatuses(t *testing.T) {
	cases := []struct {
		name    string
		backend *aitest.Backend
		path    string
		body    string
		status  int
		message string
	}{
		{
			name:    "validation",
			backend: aitest.Returning(map[string]any{"aboutSection": "never"}),
			path:    "/api/ai/about",
			body:    `{"userInput":"short"}`,
			status:  http.StatusBadRequest,
			message: "Invalid input: userInput must be at least 20 characters.",
		},
		{
			name:    "upstream",
			backend: aitest.Failing(errors.New("connection refused")),
			path:    "/api/ai/headline",
			body:    `{"careerField":"Marketing","experience":"5 years in B2B SaaS"}`,
			status:  http.StatusBadGateway,
			message: actions.GenericFailureMessage,
		},
		{
			name:    "contract",
			backend: aitest.Returning(map[string]any{"questions": []any{}}),
			path:    "/api/ai/quiz",
			body:    `{"learningTopic":"Goroutines, channels and the select statement"}`,
			status:  http.StatusBadGateway,
			message: actions.GenericFailureMessage,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(aiRouter(t, tc.backend), tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, map[string]any{"error": tc.message}, decodeBody(t, rec))
		})
	}
}

func TestAIHandlerMalformedBody(t *testing.T) {
	backend := aitest.Returning(map[string]any{"headline": "x"})
	r := aiRouter(t, backend)

	for _, body := range []string{`{"careerField":`, `{"careerField": 7}`} {
		rec := post(r, "/api/ai/headline", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeBody(t, rec)
		assert.Len(t, got, 1)
		assert.Contains(t, got, "error")
		assert.NotContains(t, rec.Body.String(), "SuggestHeadlineInput")
		assert.NotContains(t, rec.Body.String(), "Go struct field")
	}
	assert.Zero(t, backend.CallCount())
}

func TestAIHandlerBodyLimits(t *testing.T) {
	backend := aitest.Returning(map[string]any{
		"aboutSection": "I build things.",
		"experience":   []any{},
		"education":    []any{},
		"skills":       []string{"Go"},
	})
	r := aiRouter(t, backend)

	huge := `{"userInput":"` + strings.Repeat("a", int(textBodyLimit)) + `"}`
	rec := post(r, "/api/ai/about", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, map[string]any{"error": "Request body too large."}, decodeBody(t, rec))
	assert.Zero(t, backend.CallCount())

	// An attachment well past the text cap still fits the resume route.
	pdf := base64.StdEncoding.EncodeToString(append([]byte("%PDF-1.4\n"), make([]byte, 256<<10)...))
	rec = post(r, "/api/ai/resume", `{"resumeDataUri":"data:application/pdf;base64,`+pdf+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, backend.CallCount())

	tooBig := strings.Repeat("A", int(mediaBodyLimit))
	rec = post(r, "/api/ai/resume", `{"resumeDataUri":"data:application/pdf;base64,`+tooBig+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 1, backend.CallCount())
}

func TestListCapabilities(t *testing.T) {
	r := aiRouter(t, aitest.Returning(map[string]any{}))

	req := httptest.NewRequest(http.MethodGet, "/api/ai/capabilities", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Capabilities []struct {
			Name         string         `json:"name"`
			Version      int            `json:"version"`
			Slots        []string       `json:"slots"`
			OutputSchema map[string]any `json:"output_schema"`
		} `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Capabilities, 9)

	names := make([]string, 0, len(body.Capabilities))
	for _, c := range body.Capabilities {
		names = append(names, c.Name)
		assert.Positive(t, c.Version)
		assert.Equal(t, false, c.OutputSchema["additionalProperties"])
	}
	assert.Contains(t, names, "generate_quiz")
	assert.Contains(t, names, "parse_resume")
}
