package http

import (
	"strings"

	"jobboard/internal/domain"
)

// CompanyRequest is the DTO for the embedded company.
type CompanyRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// SaveJobRequest is the body of POST /api/jobs and PUT /api/jobs/{id}.
// Any id in the body is ignored: the server assigns it on create and the
// path carries it on update.
type SaveJobRequest struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Salary      string         `json:"salary"`
	Company     CompanyRequest `json:"company"`
}

// ErrorResponse is the body of every non-2xx answer carrying details.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// ToDomainJob converts the DTO to a trimmed domain.JobRecord without an id.
func (r *SaveJobRequest) ToDomainJob() *domain.JobRecord {
	return &domain.JobRecord{
		Title:       strings.TrimSpace(r.Title),
		Type:        domain.JobType(strings.TrimSpace(r.Type)),
		Description: strings.TrimSpace(r.Description),
		Location:    strings.TrimSpace(r.Location),
		Salary:      strings.TrimSpace(r.Salary),
		Company: domain.Company{
			Name:         strings.TrimSpace(r.Company.Name),
			Description:  strings.TrimSpace(r.Company.Description),
			ContactEmail: strings.TrimSpace(r.Company.ContactEmail),
			ContactPhone: strings.TrimSpace(r.Company.ContactPhone),
		},
	}
}
