// internal/api/http/job_handler.go
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"
	"jobboard/internal/usecase"
	"jobboard/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

// JobHandler serves the job REST surface.
type JobHandler struct {
	service  *usecase.JobService
	logger   *slog.Logger
	validate *validation.Validator
	tracer   trace.Tracer
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service *usecase.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		service:  service,
		logger:   logger.With("component", "job-handler"),
		validate: validation.New(),
		tracer:   otel.Tracer("jobboard-api"),
	}
}

// A helper struct to capture the status code
type instrumentedResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *instrumentedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Instrument wraps every request in a span and counts it by route pattern.
func (h *JobHandler) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), "HTTP "+r.Method, trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		))
		defer span.End()

		r = r.WithContext(ctx)
		iw := &instrumentedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(iw, r)

		// the pattern is only known once chi has routed the request
		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		span.SetName("HTTP " + r.Method + " " + path)
		metrics.HttpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(iw.statusCode)).Inc()

		span.SetAttributes(attribute.Int("http.status_code", iw.statusCode))
		if iw.statusCode >= 500 {
			span.SetStatus(codes.Error, "Server Error")
		}
	})
}

// RegisterRoutes registers the job routes on r.
func (h *JobHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", h.handleListJobs)
		r.Post("/", h.handleCreateJob)
		r.Get("/{id}", h.handleGetJob)
		r.Put("/{id}", h.handleUpdateJob)
		r.Delete("/{id}", h.handleDeleteJob)
	})
}

func (h *JobHandler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.ListJobs")
	defer span.End()

	jobs, err := h.service.List(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to list jobs from service")
		span.RecordError(err)
		h.logger.Error("error listing jobs", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.GetJob")
	defer span.End()
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("job.id", id))

	job, err := h.service.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to get job from service")
		span.RecordError(err)
		h.writeServiceError(w, "error getting job", id, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.CreateJob")
	defer span.End()

	job, ok := h.decodeJob(w, r, span)
	if !ok {
		return
	}
	created, err := h.service.Create(ctx, job)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to create job in service")
		span.RecordError(err)
		h.logger.Error("error creating job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	span.SetAttributes(attribute.String("job.id", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *JobHandler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.UpdateJob")
	defer span.End()
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("job.id", id))

	job, ok := h.decodeJob(w, r, span)
	if !ok {
		return
	}
	updated, err := h.service.Update(ctx, id, job)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to update job in service")
		span.RecordError(err)
		h.writeServiceError(w, "error updating job", id, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JobHandler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.DeleteJob")
	defer span.End()
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("job.id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, "Failed to delete job in service")
		span.RecordError(err)
		h.writeServiceError(w, "error deleting job", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJob reads and validates the request body. It writes the 400 answer
// itself and reports whether the handler may continue.
func (h *JobHandler) decodeJob(w http.ResponseWriter, r *http.Request, span trace.Span) (*domain.JobRecord, bool) {
	var req SaveJobRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		span.SetStatus(codes.Error, "Failed to decode request body")
		span.RecordError(err)
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}

	job := req.ToDomainJob()
	details, err := h.validate.ValidateRecord(job)
	if err != nil {
		span.SetStatus(codes.Error, "Validation failed")
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		return nil, false
	}
	return job, true
}

func (h *JobHandler) writeServiceError(w http.ResponseWriter, msg, id string, err error) {
	if errors.Is(err, domain.ErrJobNotFound) {
		h.logger.Warn(msg, "job_id", id, "error", err)
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	h.logger.Error(msg, "job_id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
