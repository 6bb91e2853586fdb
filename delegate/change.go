// Package delegate provides the item models a PathView draws from: a count,
// on-demand item creation with optional incubation, reference-counted
// release and change sets describing structural edits.
package delegate

// Change is a contiguous run of indices that was inserted or removed.
// Changes produced by a move share a non-zero MoveID.
type Change struct {
	Index  int
	Count  int
	MoveID int
}

// IsMove reports whether the change is one half of a move.
func (c Change) IsMove() bool {
	return c.MoveID != 0
}

// End returns the first index after the change.
func (c Change) End() int {
	return c.Index + c.Count
}

// ChangeSet lists the removals and insertions of one model update. Removal
// indices refer to the model before the update, insertion indices to the
// model after it.
type ChangeSet struct {
	Removes []Change
	Inserts []Change
}

// Empty reports whether the set contains no change.
func (c ChangeSet) Empty() bool {
	return len(c.Removes) == 0 && len(c.Inserts) == 0
}

// ReleaseResult says what happened to an item handed back to its model.
type ReleaseResult int

const (
	// FullyReleased means the model dropped its last reference and
	// destroyed the item.
	FullyReleased ReleaseResult = iota
	// StillReferenced means another holder keeps the item alive.
	StillReferenced
)

func (r ReleaseResult) String() string {
	switch r {
	case FullyReleased:
		return "released"
	case StillReferenced:
		return "referenced"
	}
	return "unknown"
}

// Observer receives item and structure notifications from an ItemModel.
type Observer interface {
	// InitItem is called for a freshly built item before anyone else sees
	// it.
	InitItem(index int, item any)
	// CreatedItem is called once a requested item is ready. item is nil
	// when nothing usable could be built for index.
	CreatedItem(index int, item any)
	// ModelUpdated is called after the model changed. reset means the whole
	// content was replaced.
	ModelUpdated(changes ChangeSet, reset bool)
}

// ItemModel is the contract between a view and the source of its items.
// Items must be comparable values, usually pointers.
type ItemModel interface {
	// Count returns the number of entries.
	Count() int
	// Object returns the item for index and takes a reference on it. With
	// async set the model may return nil and deliver the item later via
	// Observer.CreatedItem.
	Object(index int, async bool) any
	// Release drops a reference taken by Object.
	Release(item any) ReleaseResult
	// Cancel abandons an outstanding asynchronous request.
	Cancel(index int)
	// Incubating reports whether an asynchronous request for index is
	// still outstanding.
	Incubating(index int) bool
	// IndexOf returns the current index of item, or -1.
	IndexOf(item any) int
	// Observe registers o and returns a function that unregisters it.
	Observe(o Observer) (cancel func())
}
