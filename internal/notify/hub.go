// Package notify delivers user-visible notifications on an explicit channel
// owned by the presentation layer.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"jobboard/internal/domain"

	"github.com/google/uuid"
)

// Hub fans notifications out to subscribers and logs each one.
// Slow subscribers drop notifications rather than block a workflow.
type Hub struct {
	mu      sync.Mutex
	clients map[chan domain.Notification]struct{}
	logger  *slog.Logger
	now     func() time.Time
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[chan domain.Notification]struct{}),
		logger:  logger.With("component", "notify"),
		now:     time.Now,
	}
}

// Subscribe returns a buffered channel receiving every later notification.
func (h *Hub) Subscribe() chan domain.Notification {
	ch := make(chan domain.Notification, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe detaches and closes ch.
func (h *Hub) Unsubscribe(ch chan domain.Notification) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Notify implements domain.Notifier.
func (h *Hub) Notify(level domain.NotificationLevel, message string) {
	n := domain.Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      h.now().UTC(),
	}
	h.logger.Info("notification", "id", n.ID, "level", string(n.Level), "message", n.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- n:
		default:
			h.logger.Warn("dropping notification for slow subscriber", "id", n.ID)
		}
	}
}

// Drain returns whatever is already buffered on ch without blocking.
func Drain(ch <-chan domain.Notification) []domain.Notification {
	var out []domain.Notification
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, n)
		default:
			return out
		}
	}
}
