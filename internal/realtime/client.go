package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const clientBuffer = 32

type SSEClient struct {
	ID        uuid.UUID
	UserID    string
	Channels  map[string]bool
	Outbound  chan SSEMessage
	done      chan struct{}
	closeOnce sync.Once
	Logger    *logger.Logger
}

// Done is closed once the client has been closed by the hub.
func (c *SSEClient) Done() <-chan struct{} { return c.done }
