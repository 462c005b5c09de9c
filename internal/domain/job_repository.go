package domain

import "context"

// JobRepository defines the interface for persisting and retrieving job
// records on the development backend.
type JobRepository interface {
	Create(ctx context.Context, job *JobRecord) error
	// Update replaces an existing record and returns ErrJobNotFound when the
	// id is unknown.
	Update(ctx context.Context, job *JobRecord) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*JobRecord, error)
	// List returns records in insertion order.
	List(ctx context.Context) ([]*JobRecord, error)
}
