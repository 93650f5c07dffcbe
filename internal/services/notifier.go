package services

import (
	"context"

	types "github.com/yungbote/growthdesk-backend/internal/domain"
	"github.com/yungbote/growthdesk-backend/internal/realtime"
)

// RecordNotifier tells the owner's open streams about record changes.
type RecordNotifier interface {
	RecordCreated(ctx context.Context, rec *types.Record)
	RecordUpdated(ctx context.Context, rec *types.Record)
	RecordDeleted(ctx context.Context, userID string, collection types.Collection, id string)
}

type recordNotifier struct {
	emit SSEEmitter
}

func NewRecordNotifier(emit SSEEmitter) RecordNotifier {
	return &recordNotifier{emit: emit}
}

func (n *recordNotifier) RecordCreated(ctx context.Context, rec *types.Record) {
	if n == nil || n.emit == nil || rec == nil || rec.UserID == "" {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(rec.UserID),
		Event:   realtime.SSEEventRecordCreated,
		Data:    map[string]any{"collection": rec.Collection, "record": rec},
	})
}

func (n *recordNotifier) RecordUpdated(ctx context.Context, rec *types.Record) {
	if n == nil || n.emit == nil || rec == nil || rec.UserID == "" {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(rec.UserID),
		Event:   realtime.SSEEventRecordUpdated,
		Data:    map[string]any{"collection": rec.Collection, "record": rec},
	})
}

func (n *recordNotifier) RecordDeleted(ctx context.Context, userID string, collection types.Collection, id string) {
	if n == nil || n.emit == nil || userID == "" {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   realtime.SSEEventRecordDeleted,
		Data:    map[string]any{"collection": collection, "id": id},
	})
}
