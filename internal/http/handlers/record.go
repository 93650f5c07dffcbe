package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/growthdesk-backend/internal/http/response"
	"github.com/yungbote/growthdesk-backend/internal/platform/apierr"
	"github.com/yungbote/growthdesk-backend/internal/services"
)

const maxRecordBody = 1 << 20

type RecordHandler struct {
	records services.RecordService
}

func NewRecordHandler(records services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// GET /api/collections/:collection?limit=N
func (h *RecordHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	out, err := h.records.List(c.Request.Context(), c.Param("collection"), limit)
	if err != nil {
		response.RespondAPIError(c, classify(err))
		return
	}
	response.RespondOK(c, gin.H{"records": out})
}

// GET /api/collections/:collection/:id
func (h *RecordHandler) Get(c *gin.Context) {
	rec, err := h.records.Get(c.Request.Context(), c.Param("collection"), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, classify(err))
		return
	}
	response.RespondOK(c, gin.H{"record": rec})
}

// POST /api/collections/:collection
func (h *RecordHandler) Create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	rec, err := h.records.Create(c.Request.Context(), c.Param("collection"), body)
	if err != nil {
		response.RespondAPIError(c, classify(err))
		return
	}
	response.RespondCreated(c, gin.H{"record": rec})
}

// PATCH /api/collections/:collection/:id
func (h *RecordHandler) Patch(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	rec, err := h.records.Patch(c.Request.Context(), c.Param("collection"), c.Param("id"), body)
	if err != nil {
		response.RespondAPIError(c, classify(err))
		return
	}
	response.RespondOK(c, gin.H{"record": rec})
}

// DELETE /api/collections/:collection/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("collection"), c.Param("id")); err != nil {
		response.RespondAPIError(c, classify(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func readBody(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordBody))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return nil, false
	}
	return body, true
}

func classify(err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return apierr.New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, services.ErrUnknownCollection):
		return apierr.BadRequest("unknown_collection", err)
	case errors.Is(err, services.ErrInvalidRecord):
		return apierr.BadRequest("invalid_record", err)
	case errors.Is(err, services.ErrRecordNotFound):
		return apierr.NotFound("not_found", err)
	default:
		return err
	}
}
