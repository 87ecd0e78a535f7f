package board

import (
	"github.com/google/uuid"

	"github.com/futurita/flowbox/pkg/geom"
)

// Node kinds supported by the editor.
const (
	KindProcess  = "process"  // variable-size rounded rectangle
	KindDecision = "decision" // fixed square, rendered as a diamond
	KindStart    = "start"    // fixed circle
)

// Fixed node dimensions. Process nodes grow to fit their label but never
// shrink below the minimum; decision and start nodes have immutable sizes
// that are never persisted as overrides.
const (
	ProcessMinWidth  = 140
	ProcessMinHeight = 44
	DecisionSide     = 100
	StartDiameter    = 80
)

// MaxConnectorLabel is the longest label a connector may carry, in runes.
const MaxConnectorLabel = 20

// Default canvas settings for a fresh board.
const (
	DefaultGridSize    = 20
	DefaultColumnWidth = 160
	DefaultZoom        = 1.0
)

// Node is a positioned diagram element.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Kind  string  `json:"kind" bson:"kind"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	W     float64 `json:"w,omitempty" bson:"w,omitempty"` // process nodes only
	H     float64 `json:"h,omitempty" bson:"h,omitempty"` // process nodes only
	Label string  `json:"label" bson:"label"`
}

// Size returns the effective width and height of the node. Decision and
// start nodes have fixed sizes regardless of any stored override; process
// nodes grow to fit their label with a 140×44 minimum.
func (n *Node) Size() (w, h float64) {
	switch n.Kind {
	case KindDecision:
		return DecisionSide, DecisionSide
	case KindStart:
		return StartDiameter, StartDiameter
	default:
		w, h = n.W, n.H
		if min := processWidthFor(n.Label); w < min {
			w = min
		}
		if h < ProcessMinHeight {
			h = ProcessMinHeight
		}
		return w, h
	}
}

// processWidthFor estimates the width needed to fit a single-line label
// inside a process node. The factor matches the editor's label font metrics.
func processWidthFor(label string) float64 {
	w := float64(len([]rune(label)))*8 + 24
	if w < ProcessMinWidth {
		w = ProcessMinWidth
	}
	return w
}

// Bounds returns the node's bounding box using its effective size.
func (n *Node) Bounds() geom.Rect {
	w, h := n.Size()
	return geom.Rect{X: n.X, Y: n.Y, W: w, H: h}
}

// Anchor returns the attachment point for the given side of the node.
func (n *Node) Anchor(s geom.Side) geom.Point {
	return geom.Anchor(n.Bounds(), s)
}

// Connector is a directed link between two node anchors.
type Connector struct {
	ID       string    `json:"id" bson:"id"`
	From     string    `json:"from" bson:"from"`
	To       string    `json:"to" bson:"to"`
	FromSide geom.Side `json:"fromSide" bson:"fromSide"`
	ToSide   geom.Side `json:"toSide" bson:"toSide"`
	Label    string    `json:"label,omitempty" bson:"label,omitempty"`
}

// Touches reports whether either endpoint references the node.
func (c *Connector) Touches(nodeID string) bool {
	return c.From == nodeID || c.To == nodeID
}

// Section is a horizontal band marking an additional diagram area appended
// below existing content. It is a rendering and scroll-target hint only.
type Section struct {
	ID     string  `json:"id" bson:"id"`
	Y      float64 `json:"y" bson:"y"`
	Height float64 `json:"h" bson:"h"`
}

// Board is one independent graph with its own canvas state. It owns its
// nodes, connectors, and sections exclusively; a board belongs to exactly
// one entry in a container's ordered list.
//
// Board is not safe for concurrent use. The engine is single-threaded and
// event-driven, so no locking is needed.
type Board struct {
	ID          string  `json:"id" bson:"id"`
	Title       string  `json:"title" bson:"title"`
	GridSize    float64 `json:"gridSize" bson:"gridSize"`
	ColumnWidth float64 `json:"columnWidth" bson:"columnWidth"`
	GridEnabled bool    `json:"gridEnabled" bson:"gridEnabled"`
	Zoom        float64 `json:"zoom" bson:"zoom"`

	nodes    []*Node
	edges    []*Connector
	sections []*Section

	index map[string]*Node    // node ID -> node
	dirty map[string]struct{} // connector IDs needing a routing recompute
}

// New creates an empty board with default canvas settings.
func New(title string) *Board {
	return &Board{
		ID:          uuid.NewString(),
		Title:       title,
		GridSize:    DefaultGridSize,
		ColumnWidth: DefaultColumnWidth,
		GridEnabled: true,
		Zoom:        DefaultZoom,
		index:       make(map[string]*Node),
		dirty:       make(map[string]struct{}),
	}
}

// Node returns the node with the given ID and true, or nil and false.
func (b *Board) Node(id string) (*Node, bool) {
	n, ok := b.index[id]
	return n, ok
}

// Nodes returns the board's nodes in insertion order.
// The slice is shared with the board; treat it as read-only.
func (b *Board) Nodes() []*Node { return b.nodes }

// Connectors returns the board's connectors in insertion order.
// The slice is shared with the board; treat it as read-only.
func (b *Board) Connectors() []*Connector { return b.edges }

// Sections returns the board's sections in insertion order.
func (b *Board) Sections() []*Section { return b.sections }

// Connector returns the connector with the given ID and true, or nil and false.
func (b *Board) Connector(id string) (*Connector, bool) {
	for _, c := range b.edges {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ConnectorsTouching returns the connectors that have the node as either
// endpoint. Used to limit re-routing to the affected connectors during drag.
func (b *Board) ConnectorsTouching(nodeID string) []*Connector {
	var out []*Connector
	for _, c := range b.edges {
		if c.Touches(nodeID) {
			out = append(out, c)
		}
	}
	return out
}

// NodeCount returns the number of nodes on the board.
func (b *Board) NodeCount() int { return len(b.nodes) }

// ConnectorCount returns the number of connectors on the board.
func (b *Board) ConnectorCount() int { return len(b.edges) }
