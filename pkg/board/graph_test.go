package board

import (
	"strings"
	"testing"

	"github.com/futurita/flowbox/pkg/geom"
)

func TestAddNodeClampsToOrigin(t *testing.T) {
	b := New("test")
	n := b.AddNode(KindProcess, -50, -10)
	if n.X != 0 || n.Y != 0 {
		t.Errorf("negative position should clamp to origin, got (%v, %v)", n.X, n.Y)
	}
}

func TestNodeSizes(t *testing.T) {
	b := New("test")

	d := b.AddNode(KindDecision, 0, 0)
	if w, h := d.Size(); w != DecisionSide || h != DecisionSide {
		t.Errorf("decision size = %v×%v, want %v×%v", w, h, DecisionSide, DecisionSide)
	}

	s := b.AddNode(KindStart, 0, 0)
	if w, h := s.Size(); w != StartDiameter || h != StartDiameter {
		t.Errorf("start size = %v×%v, want %v×%v", w, h, StartDiameter, StartDiameter)
	}

	p := b.AddNode(KindProcess, 0, 0)
	if w, h := p.Size(); w != ProcessMinWidth || h != ProcessMinHeight {
		t.Errorf("empty process size = %v×%v, want minimums", w, h)
	}

	p.Label = strings.Repeat("x", 30)
	if w, _ := p.Size(); w <= ProcessMinWidth {
		t.Errorf("long label should widen the node, got %v", w)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	d := b.AddNode(KindProcess, 800, 0)
	b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")
	b.AddConnector(c.ID, geom.SideRight, d.ID, geom.SideLeft, "")
	kept := b.AddConnector(a.ID, geom.SideBottom, d.ID, geom.SideBottom, "")

	if !b.RemoveNode(c.ID) {
		t.Fatal("RemoveNode should succeed")
	}
	if b.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", b.NodeCount())
	}
	if b.ConnectorCount() != 1 {
		t.Fatalf("connectors touching the node should go with it, %d left", b.ConnectorCount())
	}
	if b.Connectors()[0].ID != kept.ID {
		t.Error("the untouched connector should survive")
	}
	if b.RemoveNode(c.ID) {
		t.Error("removing an unknown node should report false")
	}
}

func TestAddConnectorRejections(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)

	if got := b.AddConnector(a.ID, geom.SideRight, a.ID, geom.SideLeft, ""); got != nil {
		t.Error("self-loop should be rejected silently")
	}
	if got := b.AddConnector(a.ID, geom.SideRight, "nope", geom.SideLeft, ""); got != nil {
		t.Error("unknown endpoint should be rejected")
	}

	first := b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")
	if first == nil {
		t.Fatal("valid connector should be created")
	}
	if got := b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, ""); got != nil {
		t.Error("identical arguments should yield exactly one connector")
	}
	// A different anchor pairing between the same nodes is distinct.
	if got := b.AddConnector(a.ID, geom.SideBottom, c.ID, geom.SideTop, ""); got == nil {
		t.Error("same nodes on different sides should be allowed")
	}
	if b.ConnectorCount() != 2 {
		t.Errorf("connector count = %d, want 2", b.ConnectorCount())
	}
}

func TestRewireConnector(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	d := b.AddNode(KindProcess, 800, 0)
	con := b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")

	if !b.RewireConnector(con.ID, EndTo, d.ID, geom.SideTop) {
		t.Fatal("rewire to a free node should succeed")
	}
	if con.To != d.ID || con.ToSide != geom.SideTop {
		t.Errorf("endpoint not updated: to=%s side=%v", con.To, con.ToSide)
	}

	if b.RewireConnector(con.ID, EndTo, a.ID, geom.SideLeft) {
		t.Error("rewire creating a self-loop should be refused")
	}

	// With an identical a→c connector present, rewiring con onto the same
	// tuple is a duplicate and must be refused.
	if b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideTop, "") == nil {
		t.Fatal("setup connector should be created")
	}
	if b.RewireConnector(con.ID, EndTo, c.ID, geom.SideTop) {
		t.Error("rewire duplicating an existing connector should be refused")
	}
	if con.To != d.ID {
		t.Error("refused rewire must leave the connector untouched")
	}
}

func TestConnectorLabelTruncation(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	con := b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")

	long := strings.Repeat("é", MaxConnectorLabel+15)
	if !b.UpdateConnectorLabel(con.ID, long) {
		t.Fatal("label update should succeed")
	}
	if got := len([]rune(con.Label)); got != MaxConnectorLabel {
		t.Errorf("label length = %d runes, want %d", got, MaxConnectorLabel)
	}
}

func TestSections(t *testing.T) {
	b := New("test")
	b.AddNode(KindProcess, 0, 500)

	if b.AddSection(0) != nil {
		t.Error("non-positive height should be rejected")
	}
	s := b.AddSection(300)
	if s == nil {
		t.Fatal("AddSection should succeed")
	}
	if s.Y <= 500 {
		t.Errorf("section should start below existing content, got y=%v", s.Y)
	}
	s2 := b.AddSection(200)
	if s2.Y < s.Y+s.Height {
		t.Errorf("second section should stack below the first, got y=%v", s2.Y)
	}
	if !b.RemoveSection(s.ID) {
		t.Error("RemoveSection should succeed")
	}
	if b.RemoveSection(s.ID) {
		t.Error("removing twice should report false")
	}
}

func TestSetZoomBounds(t *testing.T) {
	b := New("test")
	for _, z := range []float64{0, -1, 8.5} {
		if b.SetZoom(z) {
			t.Errorf("SetZoom(%v) should be refused", z)
		}
	}
	if !b.SetZoom(2) {
		t.Fatal("SetZoom(2) should succeed")
	}
	if b.Zoom != 2 {
		t.Errorf("zoom = %v, want 2", b.Zoom)
	}
}

func TestSetZoomDirtiesAllConnectors(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")
	b.TakeDirty()

	b.SetZoom(1.5)
	if !b.HasDirty() {
		t.Error("zoom change should mark every connector dirty")
	}
}

func TestMoveNodeMarksTouchingDirty(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	d := b.AddNode(KindProcess, 800, 0)
	con := b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")
	other := b.AddConnector(c.ID, geom.SideRight, d.ID, geom.SideLeft, "")
	b.TakeDirty()

	b.MoveNode(a.ID, 0, 200)
	dirty := b.TakeDirty()
	if len(dirty) != 1 || dirty[0] != con.ID {
		t.Errorf("dirty = %v, want just %s (not %s)", dirty, con.ID, other.ID)
	}
}

func TestPruneOrphans(t *testing.T) {
	b := New("test")
	a := b.AddNode(KindProcess, 0, 0)
	c := b.AddNode(KindProcess, 400, 0)
	b.AddConnector(a.ID, geom.SideRight, c.ID, geom.SideLeft, "")

	// Restore can bring in edges pointing at unknown nodes.
	snap := b.Snapshot()
	snap.Edges = append(snap.Edges, Connector{ID: "ghost", From: a.ID, To: "gone"})
	b.Restore(snap)

	if pruned := b.PruneOrphans(); pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if b.ConnectorCount() != 1 {
		t.Errorf("connector count = %d, want 1", b.ConnectorCount())
	}
	if pruned := b.PruneOrphans(); pruned != 0 {
		t.Errorf("second prune should be a no-op, got %d", pruned)
	}
}
