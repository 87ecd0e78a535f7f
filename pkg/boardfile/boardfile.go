// Package boardfile implements the JSON board file format used for import
// and export.
//
// # Format
//
//	{
//	  "title": "Checkout flow",
//	  "nodes": [
//	    {"id": "a", "kind": "process", "x": 40, "y": 80, "label": "Start"}
//	  ],
//	  "edges": [
//	    {"id": "e1", "from": "a", "to": "b", "fromPort": "r", "toPort": "l"}
//	  ],
//	  "sections": [{"id": "s1", "y": 600, "h": 300}],
//	  "gridSize": 20, "columnWidth": 160, "gridEnabled": true,
//	  "exportedAt": "2026-08-23T10:00:00Z", "version": "1"
//	}
//
// Ports are the single-letter side codes "t", "r", "b", "l".
//
// # Validation
//
// Import is strict about nodes and lenient about edges: the root must be
// an object with a nodes array, and every node must carry a string id and
// numeric x and y — otherwise the whole import fails and the current board
// is left untouched. Malformed edge entries (missing id, from, or to, or
// an unknown port code) are filtered out individually rather than
// rejecting the import. Edges referencing nodes that do not exist survive
// parsing and are pruned by the board's orphan sweep on load.
package boardfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/futurita/flowbox/pkg/board"
	flowerrors "github.com/futurita/flowbox/pkg/errors"
	"github.com/futurita/flowbox/pkg/geom"
)

// FormatVersion is written to exported files.
const FormatVersion = "1"

// File is the on-disk board file shape.
type File struct {
	Title       string    `json:"title"`
	Nodes       []Node    `json:"nodes" validate:"required,dive"`
	Edges       []Edge    `json:"edges"`
	Sections    []Section `json:"sections,omitempty"`
	GridSize    float64   `json:"gridSize,omitempty"`
	ColumnWidth float64   `json:"columnWidth,omitempty"`
	GridEnabled *bool     `json:"gridEnabled,omitempty"`
	ExportedAt  string    `json:"exportedAt,omitempty"`
	Version     string    `json:"version,omitempty"`
}

// Node is a board-file node entry. X and Y are pointers so a missing
// coordinate is distinguishable from zero and fails validation.
type Node struct {
	ID    string   `json:"id" validate:"required"`
	Kind  string   `json:"kind,omitempty" validate:"omitempty,oneof=process decision start"`
	X     *float64 `json:"x" validate:"required"`
	Y     *float64 `json:"y" validate:"required"`
	W     float64  `json:"w,omitempty"`
	H     float64  `json:"h,omitempty"`
	Label string   `json:"label"`
}

// Edge is a board-file connector entry.
type Edge struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	FromPort string `json:"fromPort"`
	ToPort   string `json:"toPort"`
	Label    string `json:"label,omitempty"`
}

// Section is a board-file section entry.
type Section struct {
	ID string  `json:"id"`
	Y  float64 `json:"y"`
	H  float64 `json:"h"`
}

// Settings carries the canvas settings a file can override on import.
type Settings struct {
	Title       string
	GridSize    float64
	ColumnWidth float64
	GridEnabled *bool
}

var validate = validator.New()

// Read decodes and validates a board file. All failures carry
// ErrCodeInvalidImport; the caller reports them to the user and aborts
// with no partial mutation.
func Read(r io.Reader) (File, error) {
	var f File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return File{}, flowerrors.Wrap(flowerrors.ErrCodeInvalidImport, err, "not a valid board file")
	}
	if err := validate.Struct(f); err != nil {
		return File{}, flowerrors.Wrap(flowerrors.ErrCodeInvalidImport, err, "board file failed validation")
	}
	return f, nil
}

// ReadFile reads and validates a board file from disk.
func ReadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, flowerrors.Wrap(flowerrors.ErrCodeInvalidImport, err, "open %s", path)
	}
	defer fh.Close()
	return Read(fh)
}

// ToSnapshot converts a validated file into a board snapshot plus the
// canvas settings it carries. Malformed edges are filtered here; IDs from
// the file are preserved so that a round-trip export/import keeps node and
// connector identity.
func ToSnapshot(f File) (board.Snapshot, Settings) {
	snap := board.Snapshot{
		Nodes:    make([]board.Node, 0, len(f.Nodes)),
		Edges:    make([]board.Connector, 0, len(f.Edges)),
		Sections: make([]board.Section, 0, len(f.Sections)),
	}
	for _, n := range f.Nodes {
		kind := n.Kind
		if kind == "" {
			kind = board.KindProcess
		}
		node := board.Node{
			ID:    n.ID,
			Kind:  kind,
			X:     *n.X,
			Y:     *n.Y,
			Label: n.Label,
		}
		// Size overrides are only meaningful for process nodes.
		if kind == board.KindProcess {
			node.W, node.H = n.W, n.H
		}
		snap.Nodes = append(snap.Nodes, node)
	}
	for _, e := range f.Edges {
		if e.ID == "" || e.From == "" || e.To == "" {
			continue
		}
		fromSide, okFrom := geom.ParsePort(e.FromPort)
		toSide, okTo := geom.ParsePort(e.ToPort)
		if !okFrom || !okTo {
			continue
		}
		snap.Edges = append(snap.Edges, board.Connector{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			FromSide: fromSide,
			ToSide:   toSide,
			Label:    truncateLabel(e.Label),
		})
	}
	for _, s := range f.Sections {
		if s.ID == "" || s.H <= 0 {
			continue
		}
		snap.Sections = append(snap.Sections, board.Section{ID: s.ID, Y: s.Y, Height: s.H})
	}
	return snap, Settings{
		Title:       f.Title,
		GridSize:    f.GridSize,
		ColumnWidth: f.ColumnWidth,
		GridEnabled: f.GridEnabled,
	}
}

// truncateLabel enforces the connector label cap on imported edges, which
// enter the board through Restore rather than AddConnector.
func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) > board.MaxConnectorLabel {
		return string(r[:board.MaxConnectorLabel])
	}
	return s
}

// ApplySettings copies the file's canvas settings onto a board, leaving
// absent values alone.
func ApplySettings(b *board.Board, s Settings) {
	if s.Title != "" {
		b.Title = s.Title
	}
	if s.GridSize > 0 {
		b.GridSize = s.GridSize
	}
	if s.ColumnWidth > 0 {
		b.ColumnWidth = s.ColumnWidth
	}
	if s.GridEnabled != nil {
		b.GridEnabled = *s.GridEnabled
	}
}

// FromBoard converts a board into its file form. Size fields are written
// only for process nodes; decision and start sizes are fixed by kind and
// never persisted as overrides.
func FromBoard(b *board.Board) File {
	enabled := b.GridEnabled
	f := File{
		Title:       b.Title,
		Nodes:       make([]Node, 0, b.NodeCount()),
		Edges:       make([]Edge, 0, b.ConnectorCount()),
		GridSize:    b.GridSize,
		ColumnWidth: b.ColumnWidth,
		GridEnabled: &enabled,
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Version:     FormatVersion,
	}
	for _, n := range b.Nodes() {
		x, y := n.X, n.Y
		fn := Node{ID: n.ID, Kind: n.Kind, X: &x, Y: &y, Label: n.Label}
		if n.Kind == board.KindProcess {
			fn.W, fn.H = n.W, n.H
		}
		f.Nodes = append(f.Nodes, fn)
	}
	for _, c := range b.Connectors() {
		f.Edges = append(f.Edges, Edge{
			ID:       c.ID,
			From:     c.From,
			To:       c.To,
			FromPort: c.FromSide.Port(),
			ToPort:   c.ToSide.Port(),
			Label:    c.Label,
		})
	}
	for _, s := range b.Sections() {
		f.Sections = append(f.Sections, Section{ID: s.ID, Y: s.Y, H: s.Height})
	}
	return f
}

// Write encodes a board as an indented board file.
func Write(b *board.Board, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromBoard(b)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a board to a file at path.
func WriteFile(b *board.Board, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()
	return Write(b, fh)
}
