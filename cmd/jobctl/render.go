package main

import (
	"fmt"
	"io"
	"strings"

	"jobboard/internal/domain"
	"jobboard/internal/navigation"
)

const (
	homeLimit       = 3
	cardDescription = 90
)

// renderListing prints job cards; home mode shows only the most recent few.
func renderListing(w io.Writer, jobs []*domain.JobRecord, home bool) {
	heading := "Browse All Jobs"
	if home {
		heading = "Recent Jobs"
		if len(jobs) > homeLimit {
			jobs = jobs[:homeLimit]
		}
	}
	fmt.Fprintf(w, "%s\n\n", heading)
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return
	}
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\n%s\n%s\n%s / Year\n@ %s\n-> %s\n\n",
			j.Type, j.Title, cardText(j.Description), j.Salary, j.Location, navigation.DetailPath(j.ID))
	}
}

// cardText is the collapsed card description.
func cardText(description string) string {
	r := []rune(description)
	if len(r) > cardDescription {
		r = r[:cardDescription]
	}
	return string(r) + "..."
}

func renderJob(w io.Writer, j *domain.JobRecord) {
	fmt.Fprintf(w, "%s\n%s\n@ %s\n\n", j.Type, j.Title, j.Location)
	fmt.Fprintf(w, "Job Description\n%s\n\nSalary\n%s / Year\n\n", j.Description, j.Salary)
	fmt.Fprintf(w, "Company Info\n%s\n%s\n", j.Company.Name, j.Company.Description)
	fmt.Fprintf(w, "Contact Email: %s\n", j.Company.ContactEmail)
	if j.Company.ContactPhone != "" {
		fmt.Fprintf(w, "Contact Phone: %s\n", j.Company.ContactPhone)
	}
	fmt.Fprintf(w, "\nEdit: %s\n", navigation.EditPath(j.ID))
}

func renderFieldErrors(w io.Writer, errs domain.FieldErrors) {
	for _, f := range append(append([]string{}, domain.FormFields...), domain.RootField) {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(w, "  %s: %s\n", f, msg)
		}
	}
}

func renderNotifications(w io.Writer, notes []domain.Notification) {
	for _, n := range notes {
		fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
	}
}
