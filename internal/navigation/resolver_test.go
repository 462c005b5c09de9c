package navigation_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"jobboard/internal/domain"
	"jobboard/internal/navigation"
)

func TestResolveAction(t *testing.T) {
	cases := []struct {
		path string
		want domain.MutationAction
	}{
		{"/edit-job/42", domain.UpdateAction("42")},
		{"edit-job/42/", domain.UpdateAction("42")},
		{"//edit-job//abc-1", domain.UpdateAction("abc-1")},
		{"/add-job", domain.CreateAction()},
		{"/add-job/", domain.CreateAction()},
	}
	for _, c := range cases {
		got, err := navigation.ResolveAction(c.path)
		if err != nil {
			t.Errorf("ResolveAction(%q) error: %v", c.path, err)
			continue
		}
		if got != c.want {
			t.Errorf("ResolveAction(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestResolveAction_Unrecognized(t *testing.T) {
	for _, path := range []string{"/jobs/42", "/jobs", "/", "", "/edit-job", "/edit-job/", "/add-jobs"} {
		got, err := navigation.ResolveAction(path)
		if !errors.Is(err, domain.ErrRouteNotRecognized) {
			t.Errorf("ResolveAction(%q) err = %v, want ErrRouteNotRecognized", path, err)
		}
		if got.Kind == domain.MutationCreate {
			t.Errorf("ResolveAction(%q) defaulted to create", path)
		}
	}
}

func TestPaths(t *testing.T) {
	if got := navigation.DetailPath("7"); got != "/jobs/7" {
		t.Errorf("DetailPath = %q", got)
	}
	if got, _ := navigation.ResolveAction(navigation.EditPath("7")); got != domain.UpdateAction("7") {
		t.Errorf("EditPath does not resolve to update: %v", got)
	}
}

func TestFixed(t *testing.T) {
	if _, err := navigation.Fixed(domain.UpdateAction("")).CurrentAction(); !errors.Is(err, domain.ErrRouteNotRecognized) {
		t.Errorf("update without id: err = %v", err)
	}
	if _, err := navigation.Fixed(domain.MutationAction{}).CurrentAction(); !errors.Is(err, domain.ErrRouteNotRecognized) {
		t.Errorf("zero action: err = %v", err)
	}
	got, err := navigation.Fixed(domain.CreateAction()).CurrentAction()
	if err != nil || got != domain.CreateAction() {
		t.Errorf("create: got %v, %v", got, err)
	}
}

func TestRouter(t *testing.T) {
	r := navigation.NewRouter(navigation.AddJobPath, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if a, err := r.CurrentAction(); err != nil || a != domain.CreateAction() {
		t.Fatalf("CurrentAction on add path = %v, %v", a, err)
	}

	r.Navigate(navigation.DetailPath("9"))
	if _, err := r.CurrentAction(); !errors.Is(err, domain.ErrRouteNotRecognized) {
		t.Errorf("CurrentAction on detail path err = %v", err)
	}
	if h := r.History(); len(h) != 2 || h[1] != "/jobs/9" {
		t.Errorf("History = %v", h)
	}
}
