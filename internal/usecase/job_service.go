package usecase

import (
	"context"
	"log/slog"

	"jobboard/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// JobService implements the backend side of the job REST surface for the
// development server.
type JobService struct {
	repo   domain.JobRepository
	logger *slog.Logger
	tracer trace.Tracer
	newID  func() string
}

// NewJobService creates a new JobService instance.
func NewJobService(repo domain.JobRepository, logger *slog.Logger) *JobService {
	return &JobService{
		repo:   repo,
		logger: logger.With("component", "job-service"),
		tracer: otel.Tracer("jobboard-usecase"),
		newID:  uuid.NewString,
	}
}

// Create assigns a fresh id and stores job.
func (s *JobService) Create(ctx context.Context, job *domain.JobRecord) (*domain.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.Create")
	defer span.End()

	job.ID = s.newID()
	span.SetAttributes(attribute.String("job.id", job.ID), attribute.String("job.title", job.Title))

	if err := s.repo.Create(ctx, job); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create job in repository")
		return nil, err
	}
	s.logger.Info("job created", "job_id", job.ID)
	return job, nil
}

// Update replaces the job stored under id.
func (s *JobService) Update(ctx context.Context, id string, job *domain.JobRecord) (*domain.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.Update")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job.ID = id
	if err := s.repo.Update(ctx, job); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update job in repository")
		return nil, err
	}
	s.logger.Info("job updated", "job_id", id)
	return job, nil
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "service.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete job from repository")
		return err
	}
	s.logger.Info("job deleted", "job_id", id)
	return nil
}

// Get returns one job.
func (s *JobService) Get(ctx context.Context, id string) (*domain.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.Get")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get job from repository")
	}
	return job, err
}

// List returns every job in insertion order.
func (s *JobService) List(ctx context.Context) ([]*domain.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.List")
	defer span.End()

	jobs, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list jobs from repository")
	}
	return jobs, err
}
