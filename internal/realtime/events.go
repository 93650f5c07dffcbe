package realtime

type SSEEvent string

const (
	SSEEventRecordCreated SSEEvent = "RecordCreated"
	SSEEventRecordUpdated SSEEvent = "RecordUpdated"
	SSEEventRecordDeleted SSEEvent = "RecordDeleted"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// UserChannel is the channel every stream of the user is subscribed to.
func UserChannel(userID string) string {
	return "user:" + userID
}
