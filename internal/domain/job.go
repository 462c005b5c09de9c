package domain

// JobType is the employment type of a job posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-Time"
	JobTypePartTime   JobType = "Part-Time"
	JobTypeRemote     JobType = "Remote"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists every accepted job type in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeRemote, JobTypeInternship}

// SalaryBand is one of the fixed yearly salary ranges.
type SalaryBand string

// SalaryBands lists the accepted bands in ascending order.
var SalaryBands = []SalaryBand{
	"Under $50K",
	"$50K - $60K",
	"$60K - $70K",
	"$70K - $80K",
	"$80K - $90K",
	"$90K - $100K",
	"$100K - $125K",
	"$125K - $150K",
	"$150K - $175K",
	"$175K - $200K",
	"Over $200K",
}

// IsValidJobType reports whether s names one of JobTypes.
func IsValidJobType(s string) bool {
	for _, t := range JobTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// IsValidSalaryBand reports whether s names one of SalaryBands.
func IsValidSalaryBand(s string) bool {
	for _, b := range SalaryBands {
		if string(b) == s {
			return true
		}
	}
	return false
}

// Company is the hiring company embedded in every job record.
type Company struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// JobRecord is a job posting as persisted by the backend.
// The ID is opaque and assigned by the server; it is empty on create.
type JobRecord struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Type        JobType `json:"type"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Salary      string  `json:"salary"`
	Company     Company `json:"company"`
}

// JobFormInput is the raw, unvalidated draft a user edits.
// Field names match the form's input names.
type JobFormInput struct {
	Type               string `json:"type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Salary             string `json:"salary"`
	Location           string `json:"location"`
	Company            string `json:"company"`
	CompanyDescription string `json:"company_description"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
}

// Form field names.
const (
	FieldType               = "type"
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldSalary             = "salary"
	FieldLocation           = "location"
	FieldCompany            = "company"
	FieldCompanyDescription = "company_description"
	FieldContactEmail       = "contact_email"
	FieldContactPhone       = "contact_phone"
)

// FormFields lists the draft's fields in form order.
var FormFields = []string{
	FieldType,
	FieldTitle,
	FieldDescription,
	FieldSalary,
	FieldLocation,
	FieldCompany,
	FieldCompanyDescription,
	FieldContactEmail,
	FieldContactPhone,
}

// InputFromRecord pre-populates a draft from a loaded record.
func InputFromRecord(r *JobRecord) JobFormInput {
	if r == nil {
		return JobFormInput{}
	}
	return JobFormInput{
		Type:               string(r.Type),
		Title:              r.Title,
		Description:        r.Description,
		Salary:             r.Salary,
		Location:           r.Location,
		Company:            r.Company.Name,
		CompanyDescription: r.Company.Description,
		ContactEmail:       r.Company.ContactEmail,
		ContactPhone:       r.Company.ContactPhone,
	}
}

// Set assigns a draft field by its form name.
func (in *JobFormInput) Set(field, value string) bool {
	p := in.field(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Get returns a draft field by its form name.
func (in *JobFormInput) Get(field string) (string, bool) {
	p := in.field(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

func (in *JobFormInput) field(name string) *string {
	switch name {
	case FieldType:
		return &in.Type
	case FieldTitle:
		return &in.Title
	case FieldDescription:
		return &in.Description
	case FieldSalary:
		return &in.Salary
	case FieldLocation:
		return &in.Location
	case FieldCompany:
		return &in.Company
	case FieldCompanyDescription:
		return &in.CompanyDescription
	case FieldContactEmail:
		return &in.ContactEmail
	case FieldContactPhone:
		return &in.ContactPhone
	}
	return nil
}

// ToRecord maps the draft onto the persisted shape without validating it.
func (in JobFormInput) ToRecord() *JobRecord {
	return &JobRecord{
		Title:       in.Title,
		Type:        JobType(in.Type),
		Description: in.Description,
		Location:    in.Location,
		Salary:      in.Salary,
		Company: Company{
			Name:         in.Company,
			Description:  in.CompanyDescription,
			ContactEmail: in.ContactEmail,
			ContactPhone: in.ContactPhone,
		},
	}
}
