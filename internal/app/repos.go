package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/growthdesk-backend/internal/data/repos"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

type Repos struct {
	Record repos.RecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Record: repos.NewRecordRepo(db, log),
	}
}
