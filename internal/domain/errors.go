package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrJobNotFound is returned when the backend has no record for an id.
	ErrJobNotFound = errors.New("job not found")
	// ErrRouteNotRecognized is returned when the navigation context implies
	// neither a create nor an update.
	ErrRouteNotRecognized = errors.New("route not recognized")
	// ErrMutationFailed wraps every network or server failure of a write.
	ErrMutationFailed = errors.New("mutation failed")
	// ErrMalformedResponse is returned when a response does not match the
	// persisted-record shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// RootField keys whole-submission failures in FieldErrors.
const RootField = "root"

// FieldErrors maps a form field to its single error message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Root returns the whole-submission message, if any.
func (fe FieldErrors) Root() string { return fe[RootField] }

// Clone returns an independent copy.
func (fe FieldErrors) Clone() FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}
