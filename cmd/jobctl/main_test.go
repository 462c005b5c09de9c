package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard/internal/domain"
	"jobboard/internal/testutil"
)

func newApp(api domain.JobAPI, input string) (*app, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &app{
		api:      api,
		in:       bufio.NewReader(strings.NewReader(input)),
		out:      out,
		logger:   testutil.Logger(),
		schedule: "@every 1h",
	}, out
}

func sample(id, title string) *domain.JobRecord {
	return &domain.JobRecord{
		ID:          id,
		Title:       title,
		Type:        domain.JobTypeRemote,
		Description: strings.Repeat("x", 120),
		Location:    "Remote",
		Salary:      "$50K - $60K",
		Company: domain.Company{
			Name:         "Acme",
			Description:  "We build things",
			ContactEmail: "a@b.com",
			ContactPhone: "1234567890",
		},
	}
}

func TestCardText(t *testing.T) {
	if got := cardText(strings.Repeat("é", 100)); got != strings.Repeat("é", 90)+"..." {
		t.Errorf("long description = %q", got)
	}
	if got := cardText("short"); got != "short..." {
		t.Errorf("short description = %q", got)
	}
}

func TestRenderListing_HomeShowsThree(t *testing.T) {
	var jobs []*domain.JobRecord
	for _, id := range []string{"1", "2", "3", "4"} {
		jobs = append(jobs, sample(id, "Job "+id))
	}
	var buf bytes.Buffer
	renderListing(&buf, jobs, true)
	out := buf.String()
	if !strings.Contains(out, "Recent Jobs") || !strings.Contains(out, "/jobs/3") || strings.Contains(out, "/jobs/4") {
		t.Errorf("home listing = %s", out)
	}
}

func TestAdd_FromFlags(t *testing.T) {
	api := &testutil.FakeJobAPI{NextID: "7", Jobs: map[string]*domain.JobRecord{"7": sample("7", "Engineer")}}
	a, out := newApp(api, "")

	err := a.run(context.Background(), []string{"add",
		"-type", "Remote", "-title", "Engineer", "-description", "A role building things",
		"-salary", "$50K - $60K", "-location", "Remote", "-company", "Acme",
		"-company_description", "We build things", "-contact_email", "a@b.com",
		"-contact_phone", "1234567890",
	})
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if n := api.Count("POST"); n != 1 {
		t.Errorf("POST count = %d", n)
	}
	if s := out.String(); !strings.Contains(s, "Job added successfully!") || !strings.Contains(s, "-> /jobs/7") {
		t.Errorf("output = %s", s)
	}
}

func TestAdd_FromFileWithFieldErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	if err := os.WriteFile(path, []byte(`{"type":"Remote","title":"Engineer"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	api := &testutil.FakeJobAPI{NextID: "1"}
	a, out := newApp(api, "")

	err := a.run(context.Background(), []string{"add", "-file", path})
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if len(api.Calls()) != 0 {
		t.Errorf("calls = %+v", api.Calls())
	}
	if s := out.String(); !strings.Contains(s, "contact_email:") || strings.Contains(s, "title:") {
		t.Errorf("output = %s", s)
	}
}

func TestEdit_KeepsUnsetFields(t *testing.T) {
	api := &testutil.FakeJobAPI{Jobs: map[string]*domain.JobRecord{"42": sample("42", "Engineer")}}
	a, out := newApp(api, "")

	if err := a.run(context.Background(), []string{"edit", "-id", "42", "-location", "Denver"}); err != nil {
		t.Fatalf("edit: %v\n%s", err, out)
	}
	var put *testutil.Call
	for _, c := range api.Calls() {
		if c.Method == "PUT" {
			c := c
			put = &c
		}
	}
	if put == nil || put.ID != "42" || put.Body.Location != "Denver" || put.Body.Title != "Engineer" {
		t.Errorf("PUT = %+v", put)
	}
	if !strings.Contains(out.String(), "Job updated successfully!") {
		t.Errorf("output = %s", out)
	}
}

func TestDelete_Answers(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		deletes int
		want    string
	}{
		{"confirm", "y\n", 1, "-> /jobs"},
		{"cancel", "n\n", 0, "Kept."},
		{"dismiss", "\n", 0, "Dismissed."},
		{"eof dismisses", "", 0, "Dismissed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &testutil.FakeJobAPI{}
			a, out := newApp(api, tt.answer)
			if err := a.run(context.Background(), []string{"delete", "-id", "5"}); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if n := api.Count("DELETE"); n != tt.deletes {
				t.Errorf("DELETE count = %d, want %d", n, tt.deletes)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %s", out)
			}
		})
	}
}

func TestDelete_FailureReported(t *testing.T) {
	api := &testutil.FakeJobAPI{Err: testutil.ErrNetwork}
	a, out := newApp(api, "y\n")
	if err := a.run(context.Background(), []string{"delete", "-id", "5"}); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(out.String(), "Failed to delete item. Please try again.") {
		t.Errorf("output = %s", out)
	}
}

func TestRun_Usage(t *testing.T) {
	a, _ := newApp(&testutil.FakeJobAPI{}, "")
	if err := a.run(context.Background(), nil); !errors.Is(err, errUsage) {
		t.Errorf("no args = %v", err)
	}
	if err := a.run(context.Background(), []string{"frobnicate"}); !errors.Is(err, errUsage) {
		t.Errorf("unknown command = %v", err)
	}
	if err := a.run(context.Background(), []string{"show"}); !errors.Is(err, errUsage) {
		t.Errorf("show without id = %v", err)
	}
}

func TestShow_NotFoundState(t *testing.T) {
	a, out := newApp(&testutil.FakeJobAPI{}, "")
	if err := a.run(context.Background(), []string{"show", "-id", "9"}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(out.String(), "Job not found.") {
		t.Errorf("output = %s", out)
	}
}
