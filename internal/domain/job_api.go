package domain

import "context"

// JobAPI is the REST surface of the job backend as seen by the client.
type JobAPI interface {
	List(ctx context.Context) ([]*JobRecord, error)
	Get(ctx context.Context, id string) (*JobRecord, error)
	// Create returns the record with its server-assigned ID.
	Create(ctx context.Context, job *JobRecord) (*JobRecord, error)
	// Update returns the echoed record; implementations fill in the known ID
	// when the backend echoes less.
	Update(ctx context.Context, job *JobRecord) (*JobRecord, error)
	Delete(ctx context.Context, id string) error
}
