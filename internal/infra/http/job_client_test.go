package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/internal/domain"
	jobhttp "jobboard/internal/infra/http"
)

func newClient(t *testing.T, h http.HandlerFunc) (*jobhttp.JobClient, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get(jobhttp.RequestIDHeader) == "" {
			t.Errorf("%s %s sent without request id", r.Method, r.URL.Path)
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobhttp.NewJobClient(srv.URL+"/", 2*time.Second, logger), &calls
}

func sampleJob() *domain.JobRecord {
	return &domain.JobRecord{
		Title:       "Engineer",
		Type:        domain.JobTypeRemote,
		Description: "A role building things",
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

func TestCreate_PostsWithoutID(t *testing.T) {
	client, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/jobs" {
			t.Errorf("got %s %s, want POST /api/jobs", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["id"]; ok {
			t.Errorf("create body carries an id: %v", body)
		}
		body["id"] = "7"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	job := sampleJob()
	job.ID = "stale"
	out, err := client.Create(context.Background(), job)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != "7" {
		t.Errorf("Create id = %q, want 7", out.ID)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("server saw %d calls, want 1", n)
	}
}

func TestCreate_ResponseWithoutIDFails(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	if _, err := client.Create(context.Background(), sampleJob()); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("err = %v, want ErrMutationFailed", err)
	}
}

func TestUpdate_PutsWithIDAndAcceptsEmptyEcho(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/jobs/42" {
			t.Errorf("got %s %s, want PUT /api/jobs/42", r.Method, r.URL.Path)
		}
		var body domain.JobRecord
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.ID != "42" {
			t.Errorf("update body id = %q, want 42", body.ID)
		}
		w.WriteHeader(http.StatusOK)
	})

	job := sampleJob()
	job.ID = "42"
	out, err := client.Update(context.Background(), job)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.ID != "42" {
		t.Errorf("Update id = %q, want 42", out.ID)
	}
}

func TestMutations_ServerErrorIsSingleAttempt(t *testing.T) {
	client, calls := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	ctx := context.Background()
	if _, err := client.Create(ctx, sampleJob()); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("Create err = %v", err)
	}
	job := sampleJob()
	job.ID = "1"
	if _, err := client.Update(ctx, job); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("Update err = %v", err)
	}
	if err := client.Delete(ctx, "1"); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("Delete err = %v", err)
	}
	if n := atomic.LoadInt32(calls); n != 3 {
		t.Errorf("server saw %d calls, want exactly 3 (no retries)", n)
	}
}

func TestMutations_NetworkErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := jobhttp.NewJobClient(srv.URL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if _, err := client.Create(context.Background(), sampleJob()); !errors.Is(err, domain.ErrMutationFailed) {
		t.Errorf("err = %v, want ErrMutationFailed", err)
	}
}

func TestDelete(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/jobs/9" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := client.Delete(context.Background(), "9"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestGet(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/jobs/1":
			job := sampleJob()
			job.ID = "1"
			_ = json.NewEncoder(w).Encode(job)
		case "/api/jobs/2":
			_, _ = w.Write([]byte(`{"id": 2, "title": "numeric id"}`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	job, err := client.Get(ctx, "1")
	if err != nil || job.ID != "1" || job.Company.Name != "Acme" {
		t.Errorf("Get(1) = %+v, %v", job, err)
	}
	if _, err := client.Get(ctx, "2"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("Get(2) err = %v, want ErrMalformedResponse", err)
	}
	if _, err := client.Get(ctx, "3"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Get(3) err = %v, want ErrJobNotFound", err)
	}
}

func TestList_PreservesServerOrder(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var jobs []*domain.JobRecord
		for _, id := range []string{"b", "a", "c"} {
			j := sampleJob()
			j.ID = id
			jobs = append(jobs, j)
		}
		_ = json.NewEncoder(w).Encode(jobs)
	})

	jobs, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	if len(ids) != 3 || ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Errorf("List order = %v, want [b a c]", ids)
	}
}
