package container

import (
	"context"
	"testing"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/store"
)

// countingStore wraps a store and counts Save calls.
type countingStore struct {
	store.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, key string, data []byte) error {
	c.saves++
	return c.Store.Save(ctx, key, data)
}

func newTestContainer(t *testing.T) (*Container, *countingStore) {
	t.Helper()
	st := &countingStore{Store: store.NewMemory()}
	c := New(context.Background(), st, Options{})
	if err := c.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c, st
}

func TestStartsEmpty(t *testing.T) {
	c, _ := newTestContainer(t)
	if !c.Empty() || c.Len() != 0 {
		t.Error("fresh container should be in the no-boards state")
	}
	if c.ActiveEntry() != nil {
		t.Error("no active entry in the no-boards state")
	}
}

func TestAddBoardActivatesAndPersists(t *testing.T) {
	c, st := newTestContainer(t)

	e := c.AddBoard("")
	if e.Board.Title != "Board 1" {
		t.Errorf("default title = %q, want %q", e.Board.Title, "Board 1")
	}
	if c.ActiveEntry() != e {
		t.Error("new board should become active")
	}
	if st.saves != 1 {
		t.Errorf("saves = %d, want 1", st.saves)
	}

	e2 := c.AddBoard("flows")
	if e2.Board.Title != "flows" || c.ActiveEntry() != e2 {
		t.Error("named board should be created and activated")
	}
}

func TestSessionCommitPersists(t *testing.T) {
	c, st := newTestContainer(t)
	e := c.AddBoard("")
	base := st.saves

	e.Session.AddNode(board.KindProcess, 100, 100)
	if st.saves != base+1 {
		t.Errorf("saves = %d, want exactly one per committed operation", st.saves-base)
	}
	e.Session.Undo()
	if st.saves != base+2 {
		t.Errorf("saves = %d, undo should persist once", st.saves-base)
	}
}

func TestCloneBoard(t *testing.T) {
	c, _ := newTestContainer(t)
	e := c.AddBoard("origin")
	n1 := e.Session.AddNode(board.KindProcess, 0, 0)
	n2 := e.Session.AddNode(board.KindProcess, 400, 0)
	e.Board.AddConnector(n1.ID, geom.SideRight, n2.ID, geom.SideLeft, "")

	cp, err := c.CloneBoard(e.Board.ID)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if cp.Board.Title != "origin (copy)" {
		t.Errorf("clone title = %q", cp.Board.Title)
	}
	if cp.Board.ID == e.Board.ID {
		t.Error("clone needs its own board ID")
	}
	if cp.Board.NodeCount() != 2 || cp.Board.ConnectorCount() != 1 {
		t.Errorf("clone shape = %d/%d, want 2/1", cp.Board.NodeCount(), cp.Board.ConnectorCount())
	}
	if c.ActiveEntry() != cp {
		t.Error("clone should become active")
	}

	// The copy is independent.
	cp.Session.AddNode(board.KindStart, 50, 50)
	if e.Board.NodeCount() != 2 {
		t.Error("mutating the clone must not touch the source")
	}

	if _, err := c.CloneBoard("missing"); err == nil {
		t.Error("cloning an unknown board should fail")
	}
}

func TestDeleteBoard(t *testing.T) {
	c, _ := newTestContainer(t)
	e1 := c.AddBoard("one")
	e2 := c.AddBoard("two")
	e3 := c.AddBoard("three")

	// Deleting the active board activates its predecessor.
	if err := c.DeleteBoard(e3.Board.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.ActiveEntry() != e2 {
		t.Error("predecessor should become active")
	}

	if err := c.DeleteBoard(e1.Board.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.ActiveEntry() != e2 {
		t.Error("active board should be unaffected by deleting another")
	}

	if err := c.DeleteBoard(e2.Board.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !c.Empty() || c.ActiveEntry() != nil {
		t.Error("deleting the last board should yield the explicit no-boards state")
	}

	if err := c.DeleteBoard("missing"); err == nil {
		t.Error("deleting an unknown board should fail")
	}
}

func TestDeleteRefusedMidGesture(t *testing.T) {
	c, _ := newTestContainer(t)
	e := c.AddBoard("")
	n := e.Session.AddNode(board.KindProcess, 0, 0)

	e.Session.PointerDown(gesture.Hit{Kind: gesture.HitHandle, NodeID: n.ID}, geom.Point{X: 10, Y: 5})
	if err := c.DeleteBoard(e.Board.ID); err == nil {
		t.Error("delete must be refused while a gesture is active")
	}
	if err := c.SetActive(e.Board.ID); err == nil {
		t.Error("switching must be refused while a gesture is active")
	}
	e.Session.PointerUp(geom.Point{X: 10, Y: 5})

	if err := c.DeleteBoard(e.Board.ID); err != nil {
		t.Errorf("delete should work once idle: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	c := New(ctx, st, Options{})
	if err := c.Load(); err != nil {
		t.Fatalf("load empty: %v", err)
	}
	e := c.AddBoard("persisted")
	n1 := e.Session.AddNode(board.KindProcess, 100, 100)
	n2 := e.Session.AddNode(board.KindProcess, 500, 100)
	e.Board.AddConnector(n1.ID, geom.SideRight, n2.ID, geom.SideLeft, "flow")
	c.AddBoard("second")
	if err := c.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	// A fresh container over the same store sees the same boards.
	c2 := New(ctx, st, Options{})
	if err := c2.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c2.Len() != 2 {
		t.Fatalf("len = %d, want 2", c2.Len())
	}
	got, err := c2.Find(e.Board.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Board.NodeCount() != 2 || got.Board.ConnectorCount() != 1 {
		t.Errorf("restored shape = %d/%d, want 2/1",
			got.Board.NodeCount(), got.Board.ConnectorCount())
	}
	if c2.ActiveEntry() == nil || c2.ActiveEntry().Board.Title != "second" {
		t.Error("active board should be restored")
	}
	// Restored boards get live sessions.
	if got.Session == nil || got.Session.State() != gesture.StateIdle {
		t.Error("restored entry should carry an idle session")
	}
}

func TestAddBoardFromSnapshot(t *testing.T) {
	c, _ := newTestContainer(t)

	snap := board.Snapshot{
		Nodes: []board.Node{
			{ID: "a", Kind: board.KindStart, X: 0, Y: 0},
			{ID: "b", Kind: board.KindProcess, X: 400, Y: 0},
		},
		Edges: []board.Connector{
			{ID: "e", From: "a", To: "b", FromSide: geom.SideRight, ToSide: geom.SideLeft},
			{ID: "ghost", From: "a", To: "gone", FromSide: geom.SideRight, ToSide: geom.SideLeft},
		},
	}
	e := c.AddBoardFrom("imported", snap)

	if e.Board.NodeCount() != 2 || e.Board.ConnectorCount() != 1 {
		t.Errorf("shape = %d/%d, want 2/1 after orphan pruning",
			e.Board.NodeCount(), e.Board.ConnectorCount())
	}
	// IDs from the snapshot are not reused.
	if _, ok := e.Board.Node("a"); ok {
		t.Error("imported board should carry fresh node IDs")
	}
}
