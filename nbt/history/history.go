// Package history keeps undo and redo stacks of whole-document snapshots.
//
// A snapshot is a deep copy of the root compound and its name, taken before
// each edit.
package history

import (
	"github.com/joshuapare/nbtkit/nbt"
)

// Snapshot is one saved document state.
type Snapshot struct {
	Name string
	Root *nbt.Compound
}

func (s Snapshot) clone() Snapshot {
	if s.Root == nil {
		return Snapshot{Name: s.Name, Root: nbt.NewCompound()}
	}
	return Snapshot{Name: s.Name, Root: s.Root.Clone()}
}

// History holds the two stacks. The zero value is ready to use and keeps an
// unbounded number of snapshots.
type History struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

// New returns a History that keeps at most limit undo snapshots. Zero or a
// negative limit means no bound.
func New(limit int) *History {
	return &History{limit: limit}
}

// Push records the state before an edit. It copies the snapshot and clears
// the redo stack.
func (h *History) Push(name string, root *nbt.Compound) {
	h.undo = append(h.undo, Snapshot{Name: name, Root: root}.clone())
	if h.limit > 0 && len(h.undo) > h.limit {
		drop := len(h.undo) - h.limit
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo pops the latest snapshot and pushes current onto the redo stack. It
// returns false and changes nothing when there is nothing to undo.
func (h *History) Undo(name string, current *nbt.Compound) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return Snapshot{}, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = Snapshot{}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, Snapshot{Name: name, Root: current}.clone())
	return last.clone(), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(name string, current *nbt.Compound) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return Snapshot{}, false
	}
	last := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = Snapshot{}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, Snapshot{Name: name, Root: current}.clone())
	return last.clone(), true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
