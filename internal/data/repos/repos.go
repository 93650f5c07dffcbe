package repos

import (
	"github.com/yungbote/growthdesk-backend/internal/data/repos/records"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RecordRepo = records.RecordRepo

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return records.NewRecordRepo(db, baseLog)
}
