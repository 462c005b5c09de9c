package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain"
	"jobboard/internal/infra/sqlite"
	"jobboard/internal/testutil"
)

func newRepo(t *testing.T) domain.JobRepository {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewJobRepository(db, testutil.Logger())
}

func job(id, title string) *domain.JobRecord {
	return &domain.JobRecord{
		ID:          id,
		Title:       title,
		Type:        domain.JobTypePartTime,
		Description: "A role building things",
		Location:    "Austin",
		Salary:      "$70K - $80K",
		Company: domain.Company{
			Name:         "Acme",
			Description:  "We build things",
			ContactEmail: "a@b.com",
		},
	}
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	for _, j := range []*domain.JobRecord{job("b", "Second"), job("a", "First"), job("c", "Third")} {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatalf("Create(%s): %v", j.ID, err)
		}
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *job("a", "First") {
		t.Errorf("Get = %+v", got)
	}

	updated := job("a", "First, revised")
	updated.Company.ContactPhone = "1234567890"
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ := repo.Get(ctx, "a"); got.Title != "First, revised" || got.Company.ContactPhone != "1234567890" {
		t.Errorf("after update = %+v", got)
	}

	if err := repo.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("List order = %v, want [b a]", ids(list))
	}
}

func TestRepository_UnknownID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Get err = %v", err)
	}
	if err := repo.Update(ctx, job("nope", "x")); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Update err = %v", err)
	}
	if err := repo.Delete(ctx, "nope"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Delete err = %v", err)
	}
}

func TestRepository_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	if err := repo.Create(ctx, job("x", "One")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, job("x", "Two")); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestRepository_EmptyList(t *testing.T) {
	list, err := newRepo(t).List(context.Background())
	if err != nil || list == nil || len(list) != 0 {
		t.Errorf("List = %v, %v; want empty non-nil", list, err)
	}
}

func ids(jobs []*domain.JobRecord) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}
