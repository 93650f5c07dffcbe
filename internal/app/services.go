package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/growthdesk-backend/internal/actions"
	"github.com/yungbote/growthdesk-backend/internal/ai/flows"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/services"
)

type Services struct {
	Flows   *flows.Flows
	Actions *actions.Actions

	Emitter services.SSEEmitter
	Records services.RecordService
}

func wireServices(db *gorm.DB, log *logger.Logger, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	f, err := flows.New(log, clients.LLM)
	if err != nil {
		return Services{}, fmt.Errorf("init flows: %w", err)
	}

	emitter := &services.BusEmitter{Bus: clients.SSEBus, Log: log.With("service", "SSEEmitter")}
	notifier := services.NewRecordNotifier(emitter)

	return Services{
		Flows:   f,
		Actions: actions.New(log, f),
		Emitter: emitter,
		Records: services.NewRecordService(db, log, reposet.Record, notifier),
	}, nil
}
