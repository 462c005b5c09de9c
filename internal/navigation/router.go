package navigation

import (
	"log/slog"
	"sync"

	"jobboard/internal/domain"
)

// Router tracks the current view and its history. It is the navigation
// owner handed to the form controller and the confirmation workflow.
type Router struct {
	mu      sync.RWMutex
	current string
	history []string
	logger  *slog.Logger
}

// NewRouter starts at the given path.
func NewRouter(start string, logger *slog.Logger) *Router {
	return &Router{
		current: start,
		history: []string{start},
		logger:  logger.With("component", "router"),
	}
}

// Navigate implements domain.Navigator.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.current = path
	r.history = append(r.history, path)
	r.mu.Unlock()
	r.logger.Debug("navigated", "path", path)
}

// Current returns the active path.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// History returns every path visited, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

// CurrentAction implements domain.ActionSource from the active path.
func (r *Router) CurrentAction() (domain.MutationAction, error) {
	return ResolveAction(r.Current())
}
