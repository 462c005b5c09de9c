// Package navigation owns view paths and turns them into typed mutation
// context for the submission workflow.
package navigation

import (
	"fmt"
	"strings"

	"jobboard/internal/domain"
)

const (
	JobsPath   = "/jobs"
	AddJobPath = "/add-job"

	editSegment = "edit-job"
	addSegment  = "add-job"
)

// DetailPath is the view of a single job.
func DetailPath(id string) string { return JobsPath + "/" + id }

// EditPath is the edit form of a single job.
func EditPath(id string) string { return "/" + editSegment + "/" + id }

// Segments splits a path into its non-empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ResolveAction derives the mutation a form on path performs. Only the add
// and edit forms resolve; every other path is an error, never a create.
func ResolveAction(path string) (domain.MutationAction, error) {
	segs := Segments(path)
	if len(segs) > 0 {
		switch {
		case segs[0] == editSegment && len(segs) > 1:
			return domain.UpdateAction(segs[1]), nil
		case segs[0] == addSegment:
			return domain.CreateAction(), nil
		}
	}
	return domain.MutationAction{}, fmt.Errorf("%w: %q", domain.ErrRouteNotRecognized, path)
}

// Fixed is an ActionSource that always yields the same action.
type Fixed domain.MutationAction

// CurrentAction implements domain.ActionSource.
func (f Fixed) CurrentAction() (domain.MutationAction, error) {
	a := domain.MutationAction(f)
	if a.Kind == 0 || (a.Kind == domain.MutationUpdate && a.ID == "") {
		return domain.MutationAction{}, fmt.Errorf("%w: %s", domain.ErrRouteNotRecognized, a)
	}
	return a, nil
}
