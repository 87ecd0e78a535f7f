// Package dot converts boards to Graphviz DOT text for debugging and for
// interop with graph tooling. The DOT output describes the logical graph
// (nodes, connectors, ports), not the editor's pixel layout; Graphviz does
// its own placement when rendering.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
)

// sideCompass maps connector sides to Graphviz compass ports.
var sideCompass = map[geom.Side]string{
	geom.SideTop:    "n",
	geom.SideRight:  "e",
	geom.SideBottom: "s",
	geom.SideLeft:   "w",
}

// kindShape maps node kinds to Graphviz shapes.
var kindShape = map[string]string{
	board.KindProcess:  "box",
	board.KindDecision: "diamond",
	board.KindStart:    "circle",
}

// ToDOT converts a board to Graphviz DOT format. Connector sides become
// compass ports so the rendered edges attach on the same sides as in the
// editor.
func ToDOT(b *board.Board) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", b.Title)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range b.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(n)),
			fmt.Sprintf("shape=%s", kindShape[n.Kind]),
		}
		if n.Kind == board.KindStart {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range b.Connectors() {
		attrs := ""
		if c.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", c.Label)
		}
		fmt.Fprintf(&buf, "  %q:%s -> %q:%s%s;\n",
			c.From, sideCompass[c.FromSide], c.To, sideCompass[c.ToSide], attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *board.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.Kind
}

// RenderSVG renders DOT text to SVG using Graphviz. Used by the export
// command's debug view; the editor's own SVG export draws the true board
// layout instead.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
