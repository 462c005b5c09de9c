// Package validation checks job drafts against the form contract and
// backend responses against the persisted-record shape.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"jobboard/internal/domain"

	"github.com/go-playground/validator/v10"
)

// fieldMessages holds the one message shown per failing form field.
var fieldMessages = map[string]string{
	domain.FieldType:               "Job type must be one of Full-Time, Part-Time, Remote, Internship",
	domain.FieldTitle:              "Job title is required",
	domain.FieldDescription:        "Description must be at least 10 characters",
	domain.FieldSalary:             "Salary must be one of the listed ranges",
	domain.FieldLocation:           "Location is required",
	domain.FieldCompany:            "Company name is required",
	domain.FieldCompanyDescription: "Company description must be at least 10 characters",
	domain.FieldContactEmail:       "Invalid email format",
	domain.FieldContactPhone:       "Invalid number",
}

// formSchema is the client-side contract for a job draft. Contact phone is
// required here even though the persisted shape allows it to be empty.
type formSchema struct {
	Type               string `json:"type" validate:"jobtype"`
	Title              string `json:"title" validate:"required"`
	Description        string `json:"description" validate:"min=10"`
	Salary             string `json:"salary" validate:"salaryband"`
	Location           string `json:"location" validate:"required"`
	Company            string `json:"company" validate:"required"`
	CompanyDescription string `json:"company_description" validate:"min=10"`
	ContactEmail       string `json:"contact_email" validate:"email"`
	ContactPhone       string `json:"contact_phone" validate:"min=10"`
}

type companySchema struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description" validate:"min=10"`
	ContactEmail string `json:"contactEmail" validate:"email"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,min=10"`
}

// recordSchema is the contract the development backend enforces on bodies.
type recordSchema struct {
	Title       string        `json:"title" validate:"required"`
	Type        string        `json:"type" validate:"jobtype"`
	Description string        `json:"description" validate:"min=10"`
	Location    string        `json:"location" validate:"required"`
	Salary      string        `json:"salary" validate:"salaryband"`
	Company     companySchema `json:"company"`
}

// Validator validates job drafts and records. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the job-specific tags registered.
func New() *Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return domain.IsValidJobType(fl.Field().String())
	})

	_ = validate.RegisterValidation("salaryband", func(fl validator.FieldLevel) bool {
		return domain.IsValidSalaryBand(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate checks every rule of the form contract against a trimmed copy of
// input. On success it returns the normalized record and nil; otherwise it
// returns nil and one message per failing field.
func (v *Validator) Validate(input domain.JobFormInput) (*domain.JobRecord, domain.FieldErrors) {
	in := Normalize(input)

	err := v.validate.Struct(formSchema{
		Type:               in.Type,
		Title:              in.Title,
		Description:        in.Description,
		Salary:             in.Salary,
		Location:           in.Location,
		Company:            in.Company,
		CompanyDescription: in.CompanyDescription,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
	})
	if err == nil {
		return in.ToRecord(), nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, domain.FieldErrors{domain.RootField: err.Error()}
	}

	fieldErrs := make(domain.FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := fieldErrs[field]; seen {
			continue
		}
		fieldErrs[field] = fieldMessages[field]
	}
	return nil, fieldErrs
}

// ValidateRecord checks a persisted-shape body. The error lists one detail
// line per failing field.
func (v *Validator) ValidateRecord(rec *domain.JobRecord) ([]string, error) {
	if rec == nil {
		return nil, errors.New("job record is nil")
	}
	err := v.validate.Struct(recordSchema{
		Title:       rec.Title,
		Type:        string(rec.Type),
		Description: rec.Description,
		Location:    rec.Location,
		Salary:      rec.Salary,
		Company: companySchema{
			Name:         rec.Company.Name,
			Description:  rec.Company.Description,
			ContactEmail: rec.Company.ContactEmail,
			ContactPhone: rec.Company.ContactPhone,
		},
	})
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, "Field '"+trimNamespace(fe.Namespace())+"' failed on the '"+fe.Tag()+"' tag.")
	}
	return details, err
}

// Normalize trims surrounding whitespace from every draft field.
func Normalize(in domain.JobFormInput) domain.JobFormInput {
	for _, f := range domain.FormFields {
		val, _ := in.Get(f)
		in.Set(f, strings.TrimSpace(val))
	}
	return in
}

// trimNamespace drops the root struct name: "recordSchema.company.name" -> "company.name".
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
