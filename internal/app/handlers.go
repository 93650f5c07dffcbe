package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/growthdesk-backend/internal/http"
	httpH "github.com/yungbote/growthdesk-backend/internal/http/handlers"
	httpMW "github.com/yungbote/growthdesk-backend/internal/http/middleware"
	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	AI       *httpH.AIHandler
	Record   *httpH.RecordHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(map[string]httpH.Pinger{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}),
		AI:       httpH.NewAIHandler(log, services.Actions, services.Flows.Registry()),
		Record:   httpH.NewRecordHandler(services.Records),
		Realtime: httpH.NewRealtimeHandler(log, sseHub),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey, cfg.JWTIssuer),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     cfg.Otel.ServiceName,
		CORSOrigins:     cfg.CORSOrigins,
		Metrics:         metrics,
		AuthMiddleware:  middleware.Auth,
		AIHandler:       handlers.AI,
		RecordHandler:   handlers.Record,
		RealtimeHandler: handlers.Realtime,
		HealthHandler:   handlers.Health,
	})
}
