// Package confirm gates destructive actions behind an explicit user
// confirmation.
//
//	idle ──► prompted ──► executing ──► done
//	  ▲         │              │
//	  └─────────┘ cancel       └──► error ──► idle
//	            dismiss
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"
	"jobboard/internal/navigation"

	"github.com/google/uuid"
)

// Phase is the workflow's single-slot state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePrompted  Phase = "prompted"
	PhaseExecuting Phase = "executing"
	PhaseDone      Phase = "done"
	PhaseError     Phase = "error"
)

// Default prompt texts.
const (
	DefaultTitle        = "Confirm Action"
	DefaultMessage      = "This action cannot be undone. Are you sure you want to proceed?"
	DefaultConfirmLabel = "Delete"
	DefaultCancelLabel  = "Cancel"

	DeletedNotice      = "Item deleted successfully"
	DeleteFailedNotice = "Failed to delete item. Please try again."
)

var (
	// ErrNoPendingRequest is returned by Confirm when nothing is prompted.
	ErrNoPendingRequest = errors.New("no confirmation pending")
	// ErrExecuting is returned by Confirm while the action is running.
	ErrExecuting = errors.New("confirmed action already executing")
)

// Request is the prompt shown to the user. OnConfirm performs the
// destructive action and SuccessPath, when set, is navigated to afterwards.
type Request struct {
	ID           string
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string

	OnConfirm   func(ctx context.Context) error
	SuccessPath string
}

// Deleter removes a job by id.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Workflow holds at most one pending confirmation.
type Workflow struct {
	mu      sync.Mutex
	phase   Phase
	pending *Request

	deleter      Deleter
	notifier     domain.Notifier
	navigator    domain.Navigator
	logger       *slog.Logger
	onTransition func(from, to Phase)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithTransitionHook observes every phase change. The hook runs while the
// workflow is locked and must not call back into it.
func WithTransitionHook(fn func(from, to Phase)) Option {
	return func(w *Workflow) { w.onTransition = fn }
}

// NewWorkflow creates an idle workflow.
func NewWorkflow(deleter Deleter, notifier domain.Notifier, navigator domain.Navigator, logger *slog.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		phase:     PhaseIdle,
		deleter:   deleter,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger.With("component", "confirmation"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) setPhase(to Phase) {
	from := w.phase
	w.phase = to
	if w.onTransition != nil && from != to {
		w.onTransition(from, to)
	}
}

// Phase returns the current phase.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Pending returns a copy of the prompted request, or nil.
func (w *Workflow) Pending() *Request {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return nil
	}
	cp := *w.pending
	return &cp
}

// Request prompts for req. While a request is prompted or executing the
// existing one is returned and req is discarded.
func (w *Workflow) Request(req Request) *Request {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == PhasePrompted || w.phase == PhaseExecuting {
		w.logger.Debug("confirmation already pending", "request_id", w.pending.ID)
		cp := *w.pending
		return &cp
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Title == "" {
		req.Title = DefaultTitle
	}
	if req.Message == "" {
		req.Message = DefaultMessage
	}
	if req.ConfirmLabel == "" {
		req.ConfirmLabel = DefaultConfirmLabel
	}
	if req.CancelLabel == "" {
		req.CancelLabel = DefaultCancelLabel
	}

	w.pending = &req
	w.setPhase(PhasePrompted)
	w.logger.Info("confirmation requested", "request_id", req.ID, "title", req.Title)
	cp := req
	return &cp
}

// RequestDeletion prompts for deleting the job with the given id.
func (w *Workflow) RequestDeletion(jobID string) *Request {
	return w.Request(Request{
		Title:        "Delete Confirmation",
		Message:      "This will permanently delete the item. Are you sure?",
		ConfirmLabel: "Yes, delete it",
		CancelLabel:  "No, keep it",
		OnConfirm: func(ctx context.Context) error {
			return w.deleter.Delete(ctx, jobID)
		},
		SuccessPath: navigation.JobsPath,
	})
}

// Cancel collapses the prompt without side effects.
func (w *Workflow) Cancel() bool { return w.collapse("cancelled") }

// Dismiss collapses the prompt without side effects.
func (w *Workflow) Dismiss() bool { return w.collapse("dismissed") }

func (w *Workflow) collapse(resolution string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhasePrompted {
		return false
	}
	w.logger.Info("confirmation "+resolution, "request_id", w.pending.ID)
	w.pending = nil
	w.setPhase(PhaseIdle)
	metrics.ConfirmationsTotal.WithLabelValues(resolution).Inc()
	return true
}

// Confirm runs the pending action once. On success it notifies and
// navigates away; on failure it notifies, logs and returns to idle.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	switch w.phase {
	case PhaseExecuting:
		w.mu.Unlock()
		return ErrExecuting
	case PhasePrompted:
	default:
		w.mu.Unlock()
		return ErrNoPendingRequest
	}
	req := *w.pending
	w.setPhase(PhaseExecuting)
	w.mu.Unlock()

	var err error
	if req.OnConfirm != nil {
		err = req.OnConfirm(context.WithoutCancel(ctx))
	}

	w.mu.Lock()
	w.pending = nil
	if err != nil {
		w.setPhase(PhaseError)
		w.logger.Error("confirmed action failed", "request_id", req.ID, "error", err)
		w.setPhase(PhaseIdle)
		w.mu.Unlock()
		metrics.ConfirmationsTotal.WithLabelValues("failed").Inc()
		w.notifier.Notify(domain.NotificationError, DeleteFailedNotice)
		return err
	}
	w.setPhase(PhaseDone)
	w.mu.Unlock()

	metrics.ConfirmationsTotal.WithLabelValues("confirmed").Inc()
	w.logger.Info("confirmed action completed", "request_id", req.ID)
	w.notifier.Notify(domain.NotificationSuccess, DeletedNotice)
	if req.SuccessPath != "" {
		w.navigator.Navigate(req.SuccessPath)
	}
	return nil
}
