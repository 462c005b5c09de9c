package domain

import "fmt"

// MutationKind selects which write a submission performs.
type MutationKind int

const (
	MutationCreate MutationKind = iota + 1
	MutationUpdate
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	}
	return fmt.Sprintf("MutationKind(%d)", int(k))
}

// MutationAction is the tagged variant {Create} | {Update, ID}.
// It is derived per submission attempt and never persisted.
type MutationAction struct {
	Kind MutationKind
	ID   string // set only for MutationUpdate
}

// CreateAction returns the {Create} variant.
func CreateAction() MutationAction { return MutationAction{Kind: MutationCreate} }

// UpdateAction returns the {Update, id} variant.
func UpdateAction(id string) MutationAction { return MutationAction{Kind: MutationUpdate, ID: id} }

// IsUpdate reports whether the action edits an existing record.
func (a MutationAction) IsUpdate() bool { return a.Kind == MutationUpdate }

func (a MutationAction) String() string {
	if a.Kind == MutationUpdate {
		return "update(" + a.ID + ")"
	}
	return a.Kind.String()
}

// ActionSource yields the mutation implied by the current navigation context.
type ActionSource interface {
	CurrentAction() (MutationAction, error)
}
