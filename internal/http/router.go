package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/growthdesk-backend/internal/http/handlers"
	httpMW "github.com/yungbote/growthdesk-backend/internal/http/middleware"
	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	AIHandler       *httpH.AIHandler
	RecordHandler   *httpH.RecordHandler
	RealtimeHandler *httpH.RealtimeHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "growthdesk"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log.With("component", "http")))
	r.Use(httpMW.Metrics(cfg.Metrics, "/healthcheck", "/readyz", "/metrics"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// AI capabilities (public)
	if cfg.AIHandler != nil {
		ai := api.Group("/ai")
		ai.GET("/capabilities", cfg.AIHandler.ListCapabilities)
		ai.POST("/headline", cfg.AIHandler.SuggestHeadline)
		ai.POST("/about", cfg.AIHandler.GenerateAboutSection)
		ai.POST("/post", cfg.AIHandler.GeneratePost)
		ai.POST("/hashtags", cfg.AIHandler.SuggestHashtags)
		ai.POST("/growth-suggestions", cfg.AIHandler.GetDailyGrowthSuggestions)
		ai.POST("/resume", cfg.AIHandler.ParseResume)
		ai.POST("/quiz", cfg.AIHandler.GenerateQuiz)
		ai.POST("/quiz-title", cfg.AIHandler.GenerateQuizTitle)
		ai.POST("/journal-feedback", cfg.AIHandler.ProvideJournalFeedback)
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Records
		if cfg.RecordHandler != nil {
			protected.GET("/collections/:collection", cfg.RecordHandler.List)
			protected.POST("/collections/:collection", cfg.RecordHandler.Create)
			protected.GET("/collections/:collection/:id", cfg.RecordHandler.Get)
			protected.PATCH("/collections/:collection/:id", cfg.RecordHandler.Patch)
			protected.DELETE("/collections/:collection/:id", cfg.RecordHandler.Delete)
		}
	}

	return r
}
