package board

import (
	"encoding/json"
	"testing"

	"github.com/futurita/flowbox/pkg/geom"
)

func buildSample() *Board {
	b := New("sample")
	a := b.AddNode(KindStart, 0, 0)
	p := b.AddNode(KindProcess, 400, 0)
	d := b.AddNode(KindDecision, 800, 0)
	b.AddConnector(a.ID, geom.SideRight, p.ID, geom.SideLeft, "go")
	b.AddConnector(p.ID, geom.SideRight, d.ID, geom.SideLeft, "check")
	b.AddSection(300)
	return b
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	b := buildSample()
	snap := b.Snapshot()

	b.Nodes()[0].X = 999
	b.Connectors()[0].Label = "mutated"

	if snap.Nodes[0].X == 999 {
		t.Error("snapshot node should be unaffected by later board mutation")
	}
	if snap.Edges[0].Label == "mutated" {
		t.Error("snapshot connector should be unaffected by later board mutation")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	b := buildSample()
	snap := b.Snapshot()

	b.RemoveNode(b.Nodes()[1].ID)
	b.AddNode(KindProcess, 50, 50)

	b.Restore(snap)
	if b.NodeCount() != len(snap.Nodes) {
		t.Errorf("node count = %d, want %d", b.NodeCount(), len(snap.Nodes))
	}
	if b.ConnectorCount() != len(snap.Edges) {
		t.Errorf("connector count = %d, want %d", b.ConnectorCount(), len(snap.Edges))
	}
	if !b.HasDirty() {
		t.Error("restore should schedule a recompute for every connector")
	}
	// Restored board must be internally consistent.
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	// Index must be rebuilt: lookups work for restored IDs.
	if _, ok := b.Node(snap.Nodes[0].ID); !ok {
		t.Error("restored node should be findable by ID")
	}
}

func TestCloneFreshIdentities(t *testing.T) {
	b := buildSample()
	cp := b.Clone()

	if cp.ID == b.ID {
		t.Error("clone should get its own board ID")
	}
	if cp.NodeCount() != b.NodeCount() || cp.ConnectorCount() != b.ConnectorCount() {
		t.Fatalf("clone shape = %d/%d, want %d/%d",
			cp.NodeCount(), cp.ConnectorCount(), b.NodeCount(), b.ConnectorCount())
	}

	orig := make(map[string]bool)
	for _, n := range b.Nodes() {
		orig[n.ID] = true
	}
	for _, n := range cp.Nodes() {
		if orig[n.ID] {
			t.Errorf("cloned node reuses ID %s", n.ID)
		}
	}
	// Endpoints must resolve inside the clone, not back into the original.
	if err := cp.Validate(); err != nil {
		t.Errorf("clone Validate() = %v", err)
	}

	cp.Nodes()[0].X = 12345
	if b.Nodes()[0].X == 12345 {
		t.Error("mutating the clone should not touch the original")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	b := buildSample()
	b.SetZoom(2)

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Board
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != b.ID || got.Title != b.Title {
		t.Error("identity fields should round-trip")
	}
	if got.Zoom != 2 {
		t.Errorf("zoom = %v, want 2", got.Zoom)
	}
	if got.NodeCount() != b.NodeCount() || got.ConnectorCount() != b.ConnectorCount() {
		t.Errorf("shape = %d/%d, want %d/%d",
			got.NodeCount(), got.ConnectorCount(), b.NodeCount(), b.ConnectorCount())
	}
	if len(got.Sections()) != 1 {
		t.Errorf("sections = %d, want 1", len(got.Sections()))
	}
}

func TestUnmarshalPrunesOrphansAndDefaultsZoom(t *testing.T) {
	raw := []byte(`{
		"id": "b1", "title": "stored", "gridSize": 20, "columnWidth": 160,
		"gridEnabled": true, "zoom": 0,
		"nodes": [{"id": "a", "kind": "process", "x": 0, "y": 0, "label": ""}],
		"edges": [{"id": "e1", "from": "a", "to": "missing", "fromSide": 1, "toSide": 3}],
		"sections": []
	}`)

	var b Board
	if err := json.Unmarshal(raw, &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.ConnectorCount() != 0 {
		t.Errorf("orphaned edge should be pruned on load, %d left", b.ConnectorCount())
	}
	if b.Zoom != DefaultZoom {
		t.Errorf("zoom = %v, want default %v", b.Zoom, DefaultZoom)
	}
}
