package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"jobboard/internal/domain"

	"github.com/go-playground/validator/v10"
)

// wireCompany and wireJob mirror the persisted record with pointer fields so
// that absent and null members can be told apart from empty strings.
type wireCompany struct {
	Name         *string `json:"name" validate:"required"`
	Description  *string `json:"description" validate:"required"`
	ContactEmail *string `json:"contactEmail" validate:"required"`
	ContactPhone *string `json:"contactPhone" validate:"required"`
}

type wireJob struct {
	ID          *string      `json:"id" validate:"required"`
	Title       *string      `json:"title" validate:"required"`
	Type        *string      `json:"type" validate:"required"`
	Description *string      `json:"description" validate:"required"`
	Location    *string      `json:"location" validate:"required"`
	Salary      *string      `json:"salary" validate:"required"`
	Company     *wireCompany `json:"company" validate:"required"`
}

var shape = validator.New()

// DecodeJobRecord parses a single persisted record and fails closed: every
// member must be present and string-typed, including the id.
func DecodeJobRecord(data []byte) (*domain.JobRecord, error) {
	var w wireJob
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if err := shape.Struct(w); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedResponse, trimNamespace(verrs[0].Namespace()))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return &domain.JobRecord{
		ID:          *w.ID,
		Title:       *w.Title,
		Type:        domain.JobType(*w.Type),
		Description: *w.Description,
		Location:    *w.Location,
		Salary:      *w.Salary,
		Company: domain.Company{
			Name:         *w.Company.Name,
			Description:  *w.Company.Description,
			ContactEmail: *w.Company.ContactEmail,
			ContactPhone: *w.Company.ContactPhone,
		},
	}, nil
}

// DecodeJobList parses a listing in server order. The top level must be an
// array; entries that do not match the record shape are skipped.
func DecodeJobList(data []byte, logger *slog.Logger) ([]*domain.JobRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	jobs := make([]*domain.JobRecord, 0, len(raw))
	for i, item := range raw {
		job, err := DecodeJobRecord(item)
		if err != nil {
			logger.Warn("skipping malformed job in listing", "index", i, "error", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
