package domain

import "github.com/google/uuid"

// ChangeType classifies a delta on the pending-suggestions collection.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeModified
	ChangeRemoved
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is one delta from the pending-suggestions change feed, caused by
// any actor: this process, another operator session, or the import pipeline.
// Before-state is unavailable; Suggestion is nil for removals.
type Change struct {
	Type       ChangeType
	Key        uuid.UUID
	Suggestion *Suggestion
}
