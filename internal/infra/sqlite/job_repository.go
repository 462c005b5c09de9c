// internal/infra/sqlite/job_repository.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jobboard/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  description TEXT NOT NULL,
  location TEXT NOT NULL,
  salary TEXT NOT NULL,
  company_name TEXT NOT NULL,
  company_description TEXT NOT NULL,
  contact_email TEXT NOT NULL,
  contact_phone TEXT NOT NULL DEFAULT ''
);
`

const selectColumns = `SELECT id, title, type, description, location, salary,
  company_name, company_description, contact_email, contact_phone FROM jobs`

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// one writer; an in-memory database also lives on a single connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}

type jobRepository struct {
	db     *sql.DB
	logger *slog.Logger
	tracer trace.Tracer
}

// NewJobRepository creates a job repository backed by SQLite.
func NewJobRepository(db *sql.DB, logger *slog.Logger) domain.JobRepository {
	return &jobRepository{
		db:     db,
		logger: logger.With("component", "sqlite-job-repo"),
		tracer: otel.Tracer("jobboard-sqlite-repo"),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobRecord) error {
	ctx, span := r.tracer.Start(ctx, "repo.sqlite.Create")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", job.ID))

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, type, description, location, salary,
           company_name, company_description, contact_email, contact_phone)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Type, job.Description, job.Location, job.Salary,
		job.Company.Name, job.Company.Description, job.Company.ContactEmail, job.Company.ContactPhone,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert job")
		return fmt.Errorf("failed to save job %s to sqlite: %w", job.ID, err)
	}
	return nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobRecord) error {
	ctx, span := r.tracer.Start(ctx, "repo.sqlite.Update")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", job.ID))

	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = ?, type = ?, description = ?, location = ?, salary = ?,
           company_name = ?, company_description = ?, contact_email = ?, contact_phone = ?
         WHERE id = ?`,
		job.Title, job.Type, job.Description, job.Location, job.Salary,
		job.Company.Name, job.Company.Description, job.Company.ContactEmail, job.Company.ContactPhone,
		job.ID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update job")
		return fmt.Errorf("failed to update job %s in sqlite: %w", job.ID, err)
	}
	return r.requireRow(res, job.ID)
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "repo.sqlite.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete job")
		return fmt.Errorf("failed to delete job %s from sqlite: %w", id, err)
	}
	return r.requireRow(res, id)
}

func (r *jobRepository) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for job %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	return nil
}

func (r *jobRepository) Get(ctx context.Context, id string) (*domain.JobRecord, error) {
	ctx, span := r.tracer.Start(ctx, "repo.sqlite.Get")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := scanJob(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get job")
		return nil, fmt.Errorf("failed to get job %s from sqlite: %w", id, err)
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]*domain.JobRecord, error) {
	ctx, span := r.tracer.Start(ctx, "repo.sqlite.List")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY seq ASC`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list jobs")
		return nil, fmt.Errorf("failed to list jobs from sqlite: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.JobRecord, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			r.logger.Warn("failed to scan job row", "error", err)
			continue
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	span.SetAttributes(attribute.Int("jobs_returned", len(jobs)))
	return jobs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*domain.JobRecord, error) {
	var (
		job     domain.JobRecord
		jobType string
	)
	err := s.Scan(&job.ID, &job.Title, &jobType, &job.Description, &job.Location, &job.Salary,
		&job.Company.Name, &job.Company.Description, &job.Company.ContactEmail, &job.Company.ContactPhone)
	if err != nil {
		return nil, err
	}
	job.Type = domain.JobType(jobType)
	return &job, nil
}
