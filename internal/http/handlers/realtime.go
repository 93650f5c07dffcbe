package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/growthdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/realtime"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{Log: log.With("handler", "RealtimeHandler"), Hub: hub}
}

// GET /api/sse/stream streams the caller's record changes.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "not authenticated", "code": "unauthorized"}})
		return
	}

	client := h.Hub.NewSSEClient(userID)
	defer h.Hub.CloseClient(client)
	h.Hub.AddChannel(client, realtime.UserChannel(userID))

	h.Log.Debug("SSE stream open", "user_id", userID, "client_id", client.ID, "clients", h.Hub.ClientCount())
	h.Hub.ServeHTTP(c.Writer, c.Request, client)
	h.Log.Debug("SSE stream closed", "user_id", userID, "client_id", client.ID)
}
