package board

import (
	"errors"

	"github.com/google/uuid"

	"github.com/futurita/flowbox/pkg/geom"
)

var (
	// ErrUnknownNode is returned by Validate when a connector references a
	// node that does not exist. Orphaned connectors can arise transiently
	// from a cascading delete and are pruned on the next render pass.
	ErrUnknownNode = errors.New("connector references unknown node")

	// ErrSelfLoop is returned by Validate when a connector joins a node to
	// itself. AddConnector never creates such a connector.
	ErrSelfLoop = errors.New("connector joins node to itself")

	// ErrSectionHeight is returned by Validate when a section has a
	// non-positive height.
	ErrSectionHeight = errors.New("section height must be positive")
)

// AddNode creates a node of the given kind at the position and adds it to
// the board. Coordinates are clamped to be non-negative. The new node's
// connectors-to-be are of course not dirty yet; no recompute is scheduled.
func (b *Board) AddNode(kind string, x, y float64) *Node {
	n := &Node{
		ID:   uuid.NewString(),
		Kind: kind,
		X:    maxf(x, 0),
		Y:    maxf(y, 0),
	}
	b.nodes = append(b.nodes, n)
	b.index[n.ID] = n
	return n
}

// RemoveNode deletes the node and every connector referencing it in the
// same logical step, so no transient orphan connector is ever observable.
// Returns false if the node does not exist.
func (b *Board) RemoveNode(id string) bool {
	if _, ok := b.index[id]; !ok {
		return false
	}
	delete(b.index, id)
	b.nodes = deleteFunc(b.nodes, func(n *Node) bool { return n.ID == id })
	b.edges = deleteFunc(b.edges, func(c *Connector) bool {
		if c.Touches(id) {
			delete(b.dirty, c.ID)
			return true
		}
		return false
	})
	return true
}

// MoveNode repositions the node, clamping coordinates to be non-negative,
// and schedules a routing recompute for the connectors touching it.
// Returns false if the node does not exist.
func (b *Board) MoveNode(id string, x, y float64) bool {
	n, ok := b.index[id]
	if !ok {
		return false
	}
	n.X = maxf(x, 0)
	n.Y = maxf(y, 0)
	b.markNodeDirty(id)
	return true
}

// SetNodeLabel updates a node's label. Process nodes grow to fit the new
// text, which moves their anchors, so touching connectors are re-routed.
func (b *Board) SetNodeLabel(id, label string) bool {
	n, ok := b.index[id]
	if !ok {
		return false
	}
	n.Label = label
	b.markNodeDirty(id)
	return true
}

// AddConnector creates a directed connector between two node anchors.
//
// It fails silently, returning nil with no mutation, when the endpoints are
// equal, when either endpoint is missing, or when a connector with the same
// (from, to, fromSide, toSide) tuple already exists. These are policy
// rejections from normal interactive exploration, not errors.
func (b *Board) AddConnector(fromID string, fromSide geom.Side, toID string, toSide geom.Side, label string) *Connector {
	if fromID == toID {
		return nil
	}
	if _, ok := b.index[fromID]; !ok {
		return nil
	}
	if _, ok := b.index[toID]; !ok {
		return nil
	}
	for _, c := range b.edges {
		if c.From == fromID && c.To == toID && c.FromSide == fromSide && c.ToSide == toSide {
			return nil
		}
	}
	c := &Connector{
		ID:       uuid.NewString(),
		From:     fromID,
		To:       toID,
		FromSide: fromSide,
		ToSide:   toSide,
		Label:    truncateLabel(label),
	}
	b.edges = append(b.edges, c)
	b.dirty[c.ID] = struct{}{}
	return c
}

// RemoveConnector deletes the connector. Returns false if it does not exist.
func (b *Board) RemoveConnector(id string) bool {
	before := len(b.edges)
	b.edges = deleteFunc(b.edges, func(c *Connector) bool { return c.ID == id })
	delete(b.dirty, id)
	return len(b.edges) != before
}

// End identifies which endpoint of a connector is being rewired.
type End int

const (
	EndFrom End = iota
	EndTo
)

// RewireConnector reassigns one endpoint of an existing connector, keeping
// the other end fixed. The same duplicate and self-loop checks as
// AddConnector apply; on rejection the connector is left unchanged and
// false is returned.
func (b *Board) RewireConnector(id string, end End, nodeID string, side geom.Side) bool {
	c, ok := b.Connector(id)
	if !ok {
		return false
	}
	if _, ok := b.index[nodeID]; !ok {
		return false
	}

	from, fromSide, to, toSide := c.From, c.FromSide, c.To, c.ToSide
	if end == EndFrom {
		from, fromSide = nodeID, side
	} else {
		to, toSide = nodeID, side
	}
	if from == to {
		return false
	}
	for _, other := range b.edges {
		if other.ID == c.ID {
			continue
		}
		if other.From == from && other.To == to && other.FromSide == fromSide && other.ToSide == toSide {
			return false
		}
	}

	c.From, c.FromSide, c.To, c.ToSide = from, fromSide, to, toSide
	b.dirty[c.ID] = struct{}{}
	return true
}

// UpdateConnectorLabel replaces the connector's label, truncated to the
// 20-rune maximum. Label changes do not move the path, so no routing
// recompute is scheduled. Returns false if the connector does not exist.
func (b *Board) UpdateConnectorLabel(id, text string) bool {
	c, ok := b.Connector(id)
	if !ok {
		return false
	}
	c.Label = truncateLabel(text)
	return true
}

// AddSection appends a horizontal band below all existing content. The
// band's y position is one grid row below the current content extent.
// Height must be positive; zero or negative heights are rejected.
func (b *Board) AddSection(height float64) *Section {
	if height <= 0 {
		return nil
	}
	s := &Section{
		ID:     uuid.NewString(),
		Y:      b.contentBottom() + b.GridSize,
		Height: height,
	}
	b.sections = append(b.sections, s)
	return s
}

// RemoveSection deletes the section. Returns false if it does not exist.
func (b *Board) RemoveSection(id string) bool {
	before := len(b.sections)
	b.sections = deleteFunc(b.sections, func(s *Section) bool { return s.ID == id })
	return len(b.sections) != before
}

// SetZoom updates the zoom factor and schedules a routing recompute for
// every connector, since anchor positions in surface coordinates change.
// Zoom factors outside (0, 8] are ignored.
func (b *Board) SetZoom(z float64) bool {
	if z <= 0 || z > 8 {
		return false
	}
	b.Zoom = z
	b.MarkAllDirty()
	return true
}

// PruneOrphans removes connectors whose endpoints no longer resolve to an
// existing node and returns how many were removed. Called on every render
// pass and on load; orphans are a consistency repair, not an error.
func (b *Board) PruneOrphans() int {
	before := len(b.edges)
	b.edges = deleteFunc(b.edges, func(c *Connector) bool {
		_, okFrom := b.index[c.From]
		_, okTo := b.index[c.To]
		if !okFrom || !okTo {
			delete(b.dirty, c.ID)
			return true
		}
		return false
	})
	return before - len(b.edges)
}

// MarkAllDirty schedules a routing recompute for every connector.
// Used on zoom change and full board load.
func (b *Board) MarkAllDirty() {
	for _, c := range b.edges {
		b.dirty[c.ID] = struct{}{}
	}
}

// TakeDirty drains and returns the IDs of connectors whose paths need
// recomputing. The order is unspecified.
func (b *Board) TakeDirty() []string {
	if len(b.dirty) == 0 {
		return nil
	}
	ids := make([]string, 0, len(b.dirty))
	for id := range b.dirty {
		ids = append(ids, id)
	}
	b.dirty = make(map[string]struct{})
	return ids
}

// HasDirty reports whether any connector is awaiting a routing recompute.
func (b *Board) HasDirty() bool { return len(b.dirty) > 0 }

// Validate checks board integrity and returns nil if valid. It verifies
// that every connector's endpoints resolve to existing distinct nodes and
// that all sections have positive heights.
func (b *Board) Validate() error {
	for _, c := range b.edges {
		if _, ok := b.index[c.From]; !ok {
			return ErrUnknownNode
		}
		if _, ok := b.index[c.To]; !ok {
			return ErrUnknownNode
		}
		if c.From == c.To {
			return ErrSelfLoop
		}
	}
	for _, s := range b.sections {
		if s.Height <= 0 {
			return ErrSectionHeight
		}
	}
	return nil
}

func (b *Board) markNodeDirty(nodeID string) {
	for _, c := range b.edges {
		if c.Touches(nodeID) {
			b.dirty[c.ID] = struct{}{}
		}
	}
}

// contentBottom returns the lowest y extent of nodes and sections.
func (b *Board) contentBottom() float64 {
	var bottom float64
	for _, n := range b.nodes {
		_, h := n.Size()
		if y := n.Y + h; y > bottom {
			bottom = y
		}
	}
	for _, s := range b.sections {
		if y := s.Y + s.Height; y > bottom {
			bottom = y
		}
	}
	return bottom
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) > MaxConnectorLabel {
		return string(r[:MaxConnectorLabel])
	}
	return s
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// deleteFunc removes all elements matching del, preserving order.
func deleteFunc[T any](s []T, del func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if !del(v) {
			out = append(out, v)
		}
	}
	// Zero the tail so removed pointers can be collected.
	for i := len(out); i < len(s); i++ {
		var zero T
		s[i] = zero
	}
	return out
}
