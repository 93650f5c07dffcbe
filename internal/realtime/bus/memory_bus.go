package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/growthdesk-backend/internal/realtime"
)

// memoryBus delivers in-process only. It backs single-instance deployments
// that run without Redis.
type memoryBus struct {
	mu        sync.RWMutex
	closed    bool
	listeners map[int]func(realtime.SSEMessage)
	nextID    int
}

func NewMemoryBus() Bus {
	return &memoryBus{listeners: make(map[int]func(realtime.SSEMessage))}
}

func (b *memoryBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("memory bus closed")
	}
	for _, fn := range b.listeners {
		fn(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("memory bus closed")
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = onMsg
	b.mu.Unlock()

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	})
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.listeners = make(map[int]func(realtime.SSEMessage))
	return nil
}
