package history

import (
	"fmt"
	"testing"

	"github.com/futurita/flowbox/pkg/board"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	b := board.New("test")
	h := New(0)

	h.Push(b.Snapshot())
	b.AddNode(board.KindProcess, 0, 0)
	h.Push(b.Snapshot())
	b.AddNode(board.KindProcess, 400, 0)

	if !h.Undo(b) {
		t.Fatal("undo should succeed")
	}
	if b.NodeCount() != 1 {
		t.Errorf("after undo node count = %d, want 1", b.NodeCount())
	}
	if !h.Undo(b) {
		t.Fatal("second undo should succeed")
	}
	if b.NodeCount() != 0 {
		t.Errorf("after second undo node count = %d, want 0", b.NodeCount())
	}
	if h.Undo(b) {
		t.Error("undo on an empty stack should report false")
	}

	if !h.Redo(b) || b.NodeCount() != 1 {
		t.Errorf("redo should restore one node, got %d", b.NodeCount())
	}
	if !h.Redo(b) || b.NodeCount() != 2 {
		t.Errorf("second redo should restore both nodes, got %d", b.NodeCount())
	}
	if h.Redo(b) {
		t.Error("redo past the end should report false")
	}
}

func TestPushClearsRedo(t *testing.T) {
	b := board.New("test")
	h := New(0)

	h.Push(b.Snapshot())
	b.AddNode(board.KindProcess, 0, 0)
	h.Undo(b)
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	// A new mutation forks history; the redo branch is discarded.
	h.Push(b.Snapshot())
	b.AddNode(board.KindDecision, 100, 100)
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestCapDropsOldest(t *testing.T) {
	b := board.New("test")
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Push(b.Snapshot())
		b.AddNode(board.KindProcess, float64(i)*200, 0)
	}

	undos := 0
	for h.Undo(b) {
		undos++
	}
	if undos != 3 {
		t.Errorf("undo depth = %d, want cap 3", undos)
	}
	// The oldest surviving snapshot has 2 nodes: entries 0 and 1 were dropped.
	if b.NodeCount() != 2 {
		t.Errorf("node count after full unwind = %d, want 2", b.NodeCount())
	}
}

func TestDefaultCap(t *testing.T) {
	b := board.New("test")
	h := New(0)

	for i := 0; i < DefaultCap+20; i++ {
		b.SetNodeLabel("none", fmt.Sprintf("%d", i)) // no-op mutation for variety
		h.Push(b.Snapshot())
	}
	undo, redo := h.Depth()
	if undo != DefaultCap {
		t.Errorf("undo depth = %d, want %d", undo, DefaultCap)
	}
	if redo != 0 {
		t.Errorf("redo depth = %d, want 0", redo)
	}
}

func TestHundredStepRoundTrip(t *testing.T) {
	b := board.New("test")
	h := New(DefaultCap)

	for i := 0; i < DefaultCap; i++ {
		h.Push(b.Snapshot())
		b.AddNode(board.KindProcess, float64(i), 0)
	}
	for h.Undo(b) {
	}
	if b.NodeCount() != 0 {
		t.Fatalf("full unwind should reach the empty board, got %d nodes", b.NodeCount())
	}
	for h.Redo(b) {
	}
	if b.NodeCount() != DefaultCap {
		t.Errorf("full replay should restore %d nodes, got %d", DefaultCap, b.NodeCount())
	}
}
