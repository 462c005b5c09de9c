// internal/scheduler/cron_scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"jobboard/internal/domain"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Lister is the read side of the job API.
type Lister interface {
	List(ctx context.Context) ([]*domain.JobRecord, error)
}

// Sink receives the outcome of every refresh.
type Sink func(jobs []*domain.JobRecord, err error)

// RefreshScheduler re-lists jobs on a cron schedule. A refresh that is still
// running when the next one is due is skipped.
type RefreshScheduler struct {
	cron     *cron.Cron
	lister   Lister
	sink     Sink
	schedule string
	runs     atomic.Int64
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewRefreshScheduler parses schedule (standard five-field spec or a
// descriptor such as "@every 30s") and registers the refresh job.
func NewRefreshScheduler(schedule string, lister Lister, sink Sink, logger *slog.Logger) (*RefreshScheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &RefreshScheduler{
		cron:     c,
		lister:   lister,
		sink:     sink,
		schedule: schedule,
		logger:   logger.With("component", "refresh-scheduler"),
		tracer:   otel.Tracer("jobboard-scheduler"),
	}
	if _, err := c.AddFunc(schedule, func() { s.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler until ctx is cancelled, then waits for a running
// refresh to finish.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.logger.Info("refresh scheduler started", "schedule", s.schedule)
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("refresh scheduler stopping...")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("refresh scheduler stopped", "runs", s.runs.Load())
	return ctx.Err()
}

// Refresh lists jobs once and hands the result to the sink.
func (s *RefreshScheduler) Refresh(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "scheduler.Refresh")
	defer span.End()

	run := s.runs.Add(1)
	jobs, err := s.lister.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to refresh job list")
		s.logger.Error("failed to refresh job list", "run", run, "error", err)
	} else {
		span.SetAttributes(attribute.Int("jobs_returned", len(jobs)))
		s.logger.Debug("job list refreshed", "run", run, "count", len(jobs))
	}
	s.sink(jobs, err)
}

// Runs reports how many refreshes have started.
func (s *RefreshScheduler) Runs() int64 { return s.runs.Load() }
