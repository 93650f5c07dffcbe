package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/growthdesk-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, collection types.Collection, data map[string]any, createdAt time.Time) *types.Record {
	tb.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		tb.Fatalf("marshal record data: %v", err)
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := &types.Record{
		ID:         uuid.New(),
		UserID:     userID,
		Collection: collection,
		Data:       datatypes.JSON(raw),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed record: %v", err)
	}
	return row
}
