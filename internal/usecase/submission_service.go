package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubmissionService dispatches exactly one network mutation per call.
// It neither retries nor touches any local cache.
type SubmissionService struct {
	api    domain.JobAPI
	logger *slog.Logger
	tracer trace.Tracer
}

// NewSubmissionService creates a dispatcher over api.
func NewSubmissionService(api domain.JobAPI, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		api:    api,
		logger: logger.With("component", "submission"),
		tracer: otel.Tracer("jobboard-usecase"),
	}
}

// Submit creates or updates record according to action and returns the
// identifier of the persisted record.
func (s *SubmissionService) Submit(ctx context.Context, action domain.MutationAction, record *domain.JobRecord) (string, error) {
	ctx, span := s.tracer.Start(ctx, "submission.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("mutation.action", action.String()))

	var (
		out *domain.JobRecord
		err error
	)
	switch action.Kind {
	case domain.MutationCreate:
		payload := *record
		payload.ID = ""
		out, err = s.api.Create(ctx, &payload)
	case domain.MutationUpdate:
		payload := *record
		payload.ID = action.ID
		out, err = s.api.Update(ctx, &payload)
		if err == nil && out != nil && out.ID == "" {
			out.ID = action.ID
		}
	default:
		err = fmt.Errorf("%w: %s", domain.ErrRouteNotRecognized, action)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown mutation")
		return "", err
	}

	op := action.Kind.String()
	if err == nil && (out == nil || out.ID == "") {
		err = errors.New("backend returned no identifier")
	}
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(op, "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "mutation failed")
		if !errors.Is(err, domain.ErrMutationFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrMutationFailed, err)
		}
		return "", err
	}

	metrics.MutationsTotal.WithLabelValues(op, "success").Inc()
	span.SetAttributes(attribute.String("job.id", out.ID))
	s.logger.Info("job persisted", "action", op, "job_id", out.ID)
	return out.ID, nil
}

// Delete removes the job with the given id.
func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "submission.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	if err := s.api.Delete(ctx, id); err != nil {
		metrics.MutationsTotal.WithLabelValues("delete", "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		if !errors.Is(err, domain.ErrMutationFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrMutationFailed, err)
		}
		return err
	}

	metrics.MutationsTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info("job deleted", "job_id", id)
	return nil
}
