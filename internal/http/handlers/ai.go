package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/growthdesk-backend/internal/actions"
	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
	"github.com/yungbote/growthdesk-backend/internal/ai/prompts"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const (
	// textBodyLimit caps the text-only capabilities.
	textBodyLimit  int64 = 64 << 10
	// mediaBodyLimit caps requests carrying a base64 attachment.
	mediaBodyLimit int64 = 10 << 20
)

// AIHandler exposes the capability actions. Bodies are the capability input
// objects; responses are the action results as-is.
type AIHandler struct {
	log      *logger.Logger
	actions  *actions.Actions
	registry *prompts.Registry
}

func NewAIHandler(log *logger.Logger, a *actions.Actions, registry *prompts.Registry) *AIHandler {
	return &AIHandler{log: log.With("handler", "AIHandler"), actions: a, registry: registry}
}

// POST /api/ai/headline
func (h *AIHandler) SuggestHeadline(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.SuggestHeadline)
}

// POST /api/ai/about
func (h *AIHandler) GenerateAboutSection(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.GenerateAboutSection)
}

// POST /api/ai/post
func (h *AIHandler) GeneratePost(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.GeneratePost)
}

// POST /api/ai/hashtags
func (h *AIHandler) SuggestHashtags(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.SuggestHashtags)
}

// POST /api/ai/growth-suggestions
func (h *AIHandler) GetDailyGrowthSuggestions(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.GetDailyGrowthSuggestions)
}

// POST /api/ai/resume
func (h *AIHandler) ParseResume(c *gin.Context) {
	serve(h, c, mediaBodyLimit, h.actions.ParseResume)
}

// POST /api/ai/quiz
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.GenerateQuiz)
}

// POST /api/ai/quiz-title
func (h *AIHandler) GenerateQuizTitle(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.GenerateQuizTitle)
}

// POST /api/ai/journal-feedback
func (h *AIHandler) ProvideJournalFeedback(c *gin.Context) {
	serve(h, c, textBodyLimit, h.actions.ProvideJournalFeedback)
}

type capabilityView struct {
	Name         prompts.PromptName `json:"name"`
	Version      int                `json:"version"`
	Slots        []string           `json:"slots"`
	InputSchema  map[string]any     `json:"input_schema"`
	OutputSchema map[string]any     `json:"output_schema"`
}

// GET /api/ai/capabilities
func (h *AIHandler) ListCapabilities(c *gin.Context) {
	if h.registry == nil {
		c.JSON(http.StatusOK, gin.H{"capabilities": []capabilityView{}})
		return
	}
	all := h.registry.All()
	out := make([]capabilityView, 0, len(all))
	for _, t := range all {
		out = append(out, capabilityView{
			Name:         t.Name,
			Version:      t.Version,
			Slots:        t.Slots,
			InputSchema:  t.Input.JSONSchema(),
			OutputSchema: t.Output.JSONSchema(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"capabilities": out})
}

func serve[In, P any](h *AIHandler, c *gin.Context, limit int64, call func(context.Context, In) actions.Result[P]) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Debug("AI request body too large", "path", c.FullPath(), "limit", limit)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large."})
			return
		}
		h.log.Debug("Malformed AI request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: expected a JSON object with the capability's fields."})
		return
	}
	res := call(c.Request.Context(), in)
	c.JSON(statusFor(res.OK(), res.Kind()), res)
}

func statusFor(ok bool, kind aierr.Kind) int {
	if ok {
		return http.StatusOK
	}
	switch kind {
	case aierr.KindValidation:
		return http.StatusBadRequest
	case aierr.KindUpstream, aierr.KindContract:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
