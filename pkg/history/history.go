// Package history implements the undo/redo stacks for a single board.
//
// The strategy is snapshot-based: before every graph-mutating operation the
// caller pushes a deep copy of the board's nodes, connectors, and sections.
// Undo swaps the current state with the top of the undo stack through the
// redo stack; any new mutation clears the redo stack, so there is no
// branching history. The undo stack is bounded and drops its oldest entry
// on overflow.
package history

import "github.com/futurita/flowbox/pkg/board"

// DefaultCap is the maximum number of undo entries kept per board.
const DefaultCap = 100

// History holds the undo and redo stacks for one board. The two stacks are
// disjoint in content: an entry lives on exactly one of them at a time.
type History struct {
	cap  int
	undo []board.Snapshot
	redo []board.Snapshot
}

// New creates a history with the given capacity. Capacities below 1 fall
// back to DefaultCap.
func New(cap int) *History {
	if cap < 1 {
		cap = DefaultCap
	}
	return &History{cap: cap}
}

// Push records a snapshot of the state about to be mutated and clears the
// redo stack. When the undo stack is full the oldest entry is dropped.
func (h *History) Push(s board.Snapshot) {
	if len(h.undo) >= h.cap {
		h.undo = append(h.undo[:0], h.undo[1:]...)
		h.undo = h.undo[:h.cap-1]
	}
	h.undo = append(h.undo, s)
	h.redo = h.redo[:0]
}

// Undo moves the board back one step: the current state goes onto the redo
// stack and the top of the undo stack becomes current. Returns false (and
// leaves the board untouched) when there is nothing to undo.
func (h *History) Undo(b *board.Board) bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, b.Snapshot())
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	b.Restore(top)
	return true
}

// Redo is symmetric to Undo. Returns false when there is nothing to redo.
func (h *History) Redo(b *board.Board) bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = append(h.undo, b.Snapshot())
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	b.Restore(top)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }
