package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/domain"
	"jobboard/internal/scheduler"
	"jobboard/internal/testutil"
)

func TestNewRefreshScheduler_RejectsBadSchedule(t *testing.T) {
	sink := func([]*domain.JobRecord, error) {}
	for _, spec := range []string{"", "every minute", "* * *", "@every nope"} {
		if _, err := scheduler.NewRefreshScheduler(spec, &testutil.FakeJobAPI{}, sink, testutil.Logger()); err == nil {
			t.Errorf("schedule %q accepted", spec)
		}
	}
}

func TestRefresh_DeliversListOrError(t *testing.T) {
	api := &testutil.FakeJobAPI{Jobs: map[string]*domain.JobRecord{"1": {ID: "1", Title: "Engineer"}}}

	var (
		gotJobs []*domain.JobRecord
		gotErr  error
	)
	s, err := scheduler.NewRefreshScheduler("@every 1h", api, func(jobs []*domain.JobRecord, err error) {
		gotJobs, gotErr = jobs, err
	}, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}

	s.Refresh(context.Background())
	if gotErr != nil || len(gotJobs) != 1 || gotJobs[0].ID != "1" {
		t.Errorf("first refresh = %v, %v", gotJobs, gotErr)
	}

	api.Err = testutil.ErrNetwork
	s.Refresh(context.Background())
	if !errors.Is(gotErr, testutil.ErrNetwork) {
		t.Errorf("second refresh err = %v", gotErr)
	}
	if s.Runs() != 2 {
		t.Errorf("Runs = %d, want 2", s.Runs())
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	s, err := scheduler.NewRefreshScheduler("*/5 * * * *", &testutil.FakeJobAPI{}, func([]*domain.JobRecord, error) {}, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
