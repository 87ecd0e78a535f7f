package board

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Snapshot is a deep copy of a board's mutable graph state, used by the
// undo/redo history. Snapshots are plain values: mutating the board after
// taking one never changes it.
type Snapshot struct {
	Nodes    []Node      `json:"nodes" bson:"nodes"`
	Edges    []Connector `json:"edges" bson:"edges"`
	Sections []Section   `json:"sections" bson:"sections"`
}

// Snapshot returns a deep copy of the board's nodes, connectors, and
// sections. Canvas settings (grid, zoom, title) are not part of the
// undoable state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Nodes:    make([]Node, len(b.nodes)),
		Edges:    make([]Connector, len(b.edges)),
		Sections: make([]Section, len(b.sections)),
	}
	for i, n := range b.nodes {
		s.Nodes[i] = *n
	}
	for i, c := range b.edges {
		s.Edges[i] = *c
	}
	for i, sec := range b.sections {
		s.Sections[i] = *sec
	}
	return s
}

// Restore replaces the board's graph state with the snapshot's and
// schedules a routing recompute for every connector.
func (b *Board) Restore(s Snapshot) {
	b.nodes = make([]*Node, len(s.Nodes))
	b.index = make(map[string]*Node, len(s.Nodes))
	for i := range s.Nodes {
		n := s.Nodes[i]
		b.nodes[i] = &n
		b.index[n.ID] = &n
	}
	b.edges = make([]*Connector, len(s.Edges))
	for i := range s.Edges {
		c := s.Edges[i]
		b.edges[i] = &c
	}
	b.sections = make([]*Section, len(s.Sections))
	for i := range s.Sections {
		sec := s.Sections[i]
		b.sections[i] = &sec
	}
	b.dirty = make(map[string]struct{})
	b.MarkAllDirty()
}

// Clone returns a deep copy of the board with fresh IDs for the board
// itself and for every node, connector, and section. Connector endpoints
// are remapped to the new node IDs.
func (b *Board) Clone() *Board {
	out := New(b.Title)
	out.GridSize = b.GridSize
	out.ColumnWidth = b.ColumnWidth
	out.GridEnabled = b.GridEnabled
	out.Zoom = b.Zoom

	idMap := make(map[string]string, len(b.nodes))
	for _, n := range b.nodes {
		cp := *n
		cp.ID = uuid.NewString()
		idMap[n.ID] = cp.ID
		out.nodes = append(out.nodes, &cp)
		out.index[cp.ID] = &cp
	}
	for _, c := range b.edges {
		from, okFrom := idMap[c.From]
		to, okTo := idMap[c.To]
		if !okFrom || !okTo {
			continue // orphan, dropped by the copy
		}
		cp := *c
		cp.ID = uuid.NewString()
		cp.From, cp.To = from, to
		out.edges = append(out.edges, &cp)
	}
	for _, s := range b.sections {
		cp := *s
		cp.ID = uuid.NewString()
		out.sections = append(out.sections, &cp)
	}
	out.MarkAllDirty()
	return out
}

// boardState is the serialization form of a Board. The unexported graph
// slices are flattened to values so the whole board round-trips through
// encoding/json.
type boardState struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	GridSize    float64     `json:"gridSize"`
	ColumnWidth float64     `json:"columnWidth"`
	GridEnabled bool        `json:"gridEnabled"`
	Zoom        float64     `json:"zoom"`
	Nodes       []Node      `json:"nodes"`
	Edges       []Connector `json:"edges"`
	Sections    []Section   `json:"sections"`
}

// MarshalJSON implements json.Marshaler.
func (b *Board) MarshalJSON() ([]byte, error) {
	snap := b.Snapshot()
	return json.Marshal(boardState{
		ID:          b.ID,
		Title:       b.Title,
		GridSize:    b.GridSize,
		ColumnWidth: b.ColumnWidth,
		GridEnabled: b.GridEnabled,
		Zoom:        b.Zoom,
		Nodes:       snap.Nodes,
		Edges:       snap.Edges,
		Sections:    snap.Sections,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Orphaned connectors in the
// stored state are pruned after loading, and every surviving connector is
// marked for a routing recompute.
func (b *Board) UnmarshalJSON(data []byte) error {
	var st boardState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	b.ID = st.ID
	b.Title = st.Title
	b.GridSize = st.GridSize
	b.ColumnWidth = st.ColumnWidth
	b.GridEnabled = st.GridEnabled
	b.Zoom = st.Zoom
	if b.Zoom <= 0 {
		b.Zoom = DefaultZoom
	}
	b.Restore(Snapshot{Nodes: st.Nodes, Edges: st.Edges, Sections: st.Sections})
	b.PruneOrphans()
	return nil
}
