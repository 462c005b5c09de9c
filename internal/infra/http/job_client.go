package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobboard/internal/domain"
	"jobboard/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CollectionPath is the jobs collection endpoint relative to the base URL.
	CollectionPath = "/api/jobs"
	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1024
)

// JobClient implements domain.JobAPI against the REST backend. Every call
// is a single attempt; there is no retry.
type JobClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewJobClient creates a client for the backend at baseURL.
func NewJobClient(baseURL string, timeout time.Duration, logger *slog.Logger) *JobClient {
	return &JobClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "job-client"),
		tracer: otel.Tracer("jobboard-client"),
	}
}

func (c *JobClient) collectionURL() string { return c.baseURL + CollectionPath }

func (c *JobClient) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// List fetches every job in server order.
func (c *JobClient) List(ctx context.Context) ([]*domain.JobRecord, error) {
	ctx, span := c.tracer.Start(ctx, "client.List")
	defer span.End()

	body, status, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, c.fail(span, "list jobs", err)
	}
	if status != http.StatusOK {
		return nil, c.fail(span, "list jobs", statusError(status, body))
	}

	jobs, err := validation.DecodeJobList(body, c.logger)
	if err != nil {
		return nil, c.fail(span, "list jobs", err)
	}
	span.SetAttributes(attribute.Int("jobs.count", len(jobs)))
	return jobs, nil
}

// Get fetches one job and checks it against the persisted-record shape.
func (c *JobClient) Get(ctx context.Context, id string) (*domain.JobRecord, error) {
	ctx, span := c.tracer.Start(ctx, "client.Get")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	body, status, err := c.do(ctx, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return nil, c.fail(span, "get job", err)
	}
	if status == http.StatusNotFound {
		return nil, c.fail(span, "get job", fmt.Errorf("%w: %s", domain.ErrJobNotFound, id))
	}
	if status != http.StatusOK {
		return nil, c.fail(span, "get job", statusError(status, body))
	}

	job, err := validation.DecodeJobRecord(body)
	if err != nil {
		return nil, c.fail(span, "get job", err)
	}
	return job, nil
}

// Create posts job without an id and returns the created record.
func (c *JobClient) Create(ctx context.Context, job *domain.JobRecord) (*domain.JobRecord, error) {
	ctx, span := c.tracer.Start(ctx, "client.Create")
	defer span.End()

	payload := *job
	payload.ID = ""
	out, err := c.write(ctx, http.MethodPost, c.collectionURL(), &payload)
	if err != nil {
		return nil, c.fail(span, "create job", err)
	}
	if out.ID == "" {
		return nil, c.fail(span, "create job", fmt.Errorf("%w: response has no id", domain.ErrMutationFailed))
	}
	span.SetAttributes(attribute.String("job.id", out.ID))
	return out, nil
}

// Update puts job, id included, to its item endpoint.
func (c *JobClient) Update(ctx context.Context, job *domain.JobRecord) (*domain.JobRecord, error) {
	ctx, span := c.tracer.Start(ctx, "client.Update")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", job.ID))

	if job.ID == "" {
		return nil, c.fail(span, "update job", fmt.Errorf("%w: update without id", domain.ErrMutationFailed))
	}
	out, err := c.write(ctx, http.MethodPut, c.itemURL(job.ID), job)
	if err != nil {
		return nil, c.fail(span, "update job", err)
	}
	if out.ID == "" {
		// The backend echoed less than the record; the id is already known.
		echoed := *job
		return &echoed, nil
	}
	return out, nil
}

// Delete removes a job. No response body is expected.
func (c *JobClient) Delete(ctx context.Context, id string) error {
	ctx, span := c.tracer.Start(ctx, "client.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	body, status, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return c.fail(span, "delete job", fmt.Errorf("%w: %v", domain.ErrMutationFailed, err))
	}
	if status < 200 || status >= 300 {
		return c.fail(span, "delete job", fmt.Errorf("%w: %v", domain.ErrMutationFailed, statusError(status, body)))
	}
	return nil
}

// write sends a JSON body and decodes whatever record the backend echoes.
// An empty success body yields a zero record.
func (c *JobClient) write(ctx context.Context, method, target string, job *domain.JobRecord) (*domain.JobRecord, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal job: %v", domain.ErrMutationFailed, err)
	}

	body, status, err := c.do(ctx, method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMutationFailed, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %v", domain.ErrMutationFailed, statusError(status, body))
	}

	var out domain.JobRecord
	if len(bytes.TrimSpace(body)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrMutationFailed, err)
	}
	return &out, nil
}

// do performs a single HTTP request and returns the body and status.
func (c *JobClient) do(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	c.logger.Debug("sending request", "method", method, "url", target, "request_id", reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *JobClient) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	c.logger.Error(op+" failed", "error", err)
	return err
}

func statusError(status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if status >= 500 {
		return fmt.Errorf("http request returned 5xx server error: %d %s", status, bytes.TrimSpace(body))
	}
	return fmt.Errorf("http request returned unexpected status: %d %s", status, bytes.TrimSpace(body))
}
