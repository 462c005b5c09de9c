// Package form drives a single job form instance: draft edits, validation,
// mutation dispatch and the reconciliation of the outcome into form state.
//
// Phase graph of one submit attempt:
//
//	idle ──► validating ──► submitting ──► succeeded
//	  ▲          │               │
//	  │          ▼               ▼
//	  └──────── idle ◄──────── failed
//
// A submit trigger while submitting is a no-op.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"
	"jobboard/internal/navigation"
)

// Phase is the controller's position in the submit state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// User-visible messages.
const (
	RootRouteMessage   = "Unrecognized submission context"
	RootBackendMessage = "Error from backend!"
	FailureNotice      = "Submission failed! Please try again."
	CreatedNotice      = "Job added successfully!"
	UpdatedNotice      = "Job updated successfully!"
)

// ErrSubmitInFlight is returned when a submit is triggered while another
// submission of the same form is still running.
var ErrSubmitInFlight = errors.New("submission already in flight")

// Validator checks a draft and returns the normalized record or field errors.
type Validator interface {
	Validate(input domain.JobFormInput) (*domain.JobRecord, domain.FieldErrors)
}

// Dispatcher performs the network mutation for a validated record.
type Dispatcher interface {
	Submit(ctx context.Context, action domain.MutationAction, record *domain.JobRecord) (string, error)
}

// State is the serializable snapshot of a form instance.
type State struct {
	Phase    Phase               `json:"phase"`
	Editing  bool                `json:"editing"`
	Draft    domain.JobFormInput `json:"draft"`
	Errors   domain.FieldErrors  `json:"errors,omitempty"`
	RecordID string              `json:"record_id,omitempty"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecord pre-populates the draft from a loaded record for editing.
func WithRecord(rec *domain.JobRecord) Option {
	return func(c *Controller) {
		if rec == nil {
			return
		}
		c.state.Draft = domain.InputFromRecord(rec)
		c.state.Editing = true
	}
}

// WithTransitionHook observes every phase change. The hook runs while the
// controller is locked and must not call back into it.
func WithTransitionHook(fn func(from, to Phase)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// Controller owns the error state and the in-flight flag of one form.
// Controllers share nothing with each other.
type Controller struct {
	mu    sync.Mutex
	state State

	validator    Validator
	actions      domain.ActionSource
	dispatcher   Dispatcher
	notifier     domain.Notifier
	navigator    domain.Navigator
	logger       *slog.Logger
	onTransition func(from, to Phase)
}

// New creates a controller with an empty draft unless WithRecord is given.
func New(v Validator, actions domain.ActionSource, d Dispatcher, n domain.Notifier, nav domain.Navigator, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		state:      State{Phase: PhaseIdle},
		validator:  v,
		actions:    actions,
		dispatcher: d,
		notifier:   n,
		navigator:  nav,
		logger:     logger.With("component", "job-form"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one draft field by its form name.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Draft.Set(name, value) {
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Errors = c.state.Errors.Clone()
	return s
}

// Disabled reports whether submit triggers are currently ignored.
func (c *Controller) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase == PhaseSubmitting
}

// Title is the form heading.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Editing {
		return "Edit Job"
	}
	return "Add Job"
}

// SubmitLabel is the submit trigger's caption for the current phase.
func (c *Controller) SubmitLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state.Phase == PhaseSubmitting && c.state.Editing:
		return "Updating job..."
	case c.state.Phase == PhaseSubmitting:
		return "Adding job..."
	case c.state.Editing:
		return "Edit Job"
	}
	return "Add Job"
}

// Submit validates the draft and, if it passes, dispatches the mutation the
// navigation context implies. It returns the persisted record's id.
//
// Field errors are returned as domain.FieldErrors and raise no notification.
// Route and backend failures set the root error, notify and log. The
// dispatched call is not cancelled when ctx is: its outcome is always
// reconciled.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues("in_flight").Inc()
		c.logger.Debug("submit ignored while a submission is in flight")
		return "", ErrSubmitInFlight
	}

	c.setPhase(PhaseValidating)
	record, fieldErrs := c.validator.Validate(c.state.Draft)
	if len(fieldErrs) > 0 {
		c.state.Errors = fieldErrs.Clone()
		c.setPhase(PhaseIdle)
		c.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues("invalid").Inc()
		return "", fieldErrs
	}
	c.state.Errors = nil

	action, err := c.actions.CurrentAction()
	if err != nil {
		c.failLocked(RootRouteMessage, err)
		c.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues("rejected").Inc()
		c.notifier.Notify(domain.NotificationError, FailureNotice)
		return "", err
	}

	c.setPhase(PhaseSubmitting)
	c.mu.Unlock()

	id, err := c.dispatcher.Submit(context.WithoutCancel(ctx), action, record)

	c.mu.Lock()
	if err != nil {
		c.failLocked(RootBackendMessage, err)
		c.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues("failed").Inc()
		c.notifier.Notify(domain.NotificationError, FailureNotice)
		return "", err
	}
	c.state.RecordID = id
	c.setPhase(PhaseSucceeded)
	c.mu.Unlock()

	metrics.FormSubmissionsTotal.WithLabelValues("succeeded").Inc()
	notice := CreatedNotice
	if action.IsUpdate() {
		notice = UpdatedNotice
	}
	c.logger.Info("job form submitted", "action", action.String(), "job_id", id)
	c.notifier.Notify(domain.NotificationSuccess, notice)
	c.navigator.Navigate(navigation.DetailPath(id))
	return id, nil
}

// failLocked records a whole-submission failure and returns to idle.
func (c *Controller) failLocked(rootMessage string, err error) {
	c.logger.Error("job form submission failed", "error", err)
	c.state.Errors = domain.FieldErrors{domain.RootField: rootMessage}
	c.setPhase(PhaseFailed)
	c.setPhase(PhaseIdle)
}

func (c *Controller) setPhase(to Phase) {
	from := c.state.Phase
	c.state.Phase = to
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}
