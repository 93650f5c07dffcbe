package records

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/growthdesk-backend/internal/domain"
	"github.com/yungbote/growthdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

// RecordRepo scopes every lookup by (user_id, collection, id); a row owned by
// another user is indistinguishable from a missing one.
type RecordRepo interface {
	Create(dbc dbctx.Context, row *types.Record) error
	GetByID(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID) (*types.Record, error)
	List(dbc dbctx.Context, userID string, collection types.Collection, limit int) ([]*types.Record, error)
	UpdateData(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID, data datatypes.JSON) (int64, error)
	Delete(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID) (int64, error)
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return &recordRepo{db: db, log: baseLog.With("repo", "RecordRepo")}
}

func (r *recordRepo) Create(dbc dbctx.Context, row *types.Record) error {
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	return dbc.DB(r.db).Create(row).Error
}

func (r *recordRepo) GetByID(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID) (*types.Record, error) {
	if userID == "" || id == uuid.Nil {
		return nil, nil
	}
	var row types.Record
	err := dbc.DB(r.db).
		Where("id = ? AND user_id = ? AND collection = ?", id, userID, collection).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// List returns the newest records first. limit <= 0 means no limit.
func (r *recordRepo) List(dbc dbctx.Context, userID string, collection types.Collection, limit int) ([]*types.Record, error) {
	var out []*types.Record
	if userID == "" {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("user_id = ? AND collection = ?", userID, collection).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recordRepo) UpdateData(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID, data datatypes.JSON) (int64, error) {
	if userID == "" || id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Record{}).
		Where("id = ? AND user_id = ? AND collection = ?", id, userID, collection).
		Updates(map[string]any{
			"data":       data,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *recordRepo) Delete(dbc dbctx.Context, userID string, collection types.Collection, id uuid.UUID) (int64, error) {
	if userID == "" || id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Where("id = ? AND user_id = ? AND collection = ?", id, userID, collection).
		Delete(&types.Record{})
	return res.RowsAffected, res.Error
}
