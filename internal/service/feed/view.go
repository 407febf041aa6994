package feed

import (
	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// View is the reconciled, insertion-ordered set of pending suggestions.
// It is not safe for concurrent use; Feed serializes access to it.
type View struct {
	order []uuid.UUID
	items map[uuid.UUID]*domain.Suggestion
}

// NewView creates an empty view.
func NewView() *View {
	return &View{items: make(map[uuid.UUID]*domain.Suggestion)}
}

// Apply folds one change into the view and returns the effective change to
// dispatch. The feed's source can replay or reorder events, so Apply
// normalizes them against current state:
//
//   - Added for a present key replaces the document in place and dispatches
//     as Modified.
//   - Modified for an absent key inserts and dispatches as Added.
//   - Removed for an absent key is a no-op (ok=false, nothing dispatched).
//
// Insertion order is arrival order; a replace keeps the original position.
func (v *View) Apply(change domain.Change) (domain.Change, bool) {
	_, present := v.items[change.Key]

	switch change.Type {
	case domain.ChangeRemoved:
		if !present {
			return domain.Change{}, false
		}
		delete(v.items, change.Key)
		for i, key := range v.order {
			if key == change.Key {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
		return change, true

	case domain.ChangeAdded, domain.ChangeModified:
		if change.Suggestion == nil {
			return domain.Change{}, false
		}
		v.items[change.Key] = change.Suggestion
		effective := change
		if present {
			effective.Type = domain.ChangeModified
		} else {
			v.order = append(v.order, change.Key)
			effective.Type = domain.ChangeAdded
		}
		return effective, true

	default:
		return domain.Change{}, false
	}
}

// Len returns the number of suggestions in the view.
func (v *View) Len() int {
	return len(v.order)
}

// Snapshot returns the suggestions in insertion order. Documents are deep
// copies; mutating them does not affect the view.
func (v *View) Snapshot() []*domain.Suggestion {
	out := make([]*domain.Suggestion, 0, len(v.order))
	for _, key := range v.order {
		out = append(out, v.items[key].Clone())
	}
	return out
}
