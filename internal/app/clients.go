package app

import (
	"context"
	"fmt"

	"github.com/yungbote/growthdesk-backend/internal/platform/gemini"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/platform/openai"
	"github.com/yungbote/growthdesk-backend/internal/realtime/bus"
)

type Clients struct {
	LLM    llm.Backend
	SSEBus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "llm_provider", cfg.LLMProvider)

	var backend llm.Backend
	switch cfg.LLMProvider {
	case ProviderOpenAI:
		c, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		backend = c
	default:
		c, err := gemini.NewClient(ctx, log, cfg.Gemini)
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini client: %w", err)
		}
		backend = c
	}

	// Redis fans realtime messages out to every instance; without it the
	// in-process bus serves a single instance.
	var sseBus bus.Bus
	if cfg.Redis.Addr != "" {
		b, err := bus.NewRedisBus(ctx, log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		sseBus = b
	} else {
		sseBus = bus.NewMemoryBus()
	}

	return Clients{LLM: backend, SSEBus: sseBus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
}
