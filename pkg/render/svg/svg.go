// Package svg renders a board to a standalone SVG document. It implements
// the render.Surface interface, so it draws exactly what the interactive
// editor would: routed cubic connector paths, labels at the parametric
// curve midpoint, and kind-specific node shapes.
package svg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/render"
	"github.com/futurita/flowbox/pkg/route"
)

const docStyle = `
    .node { fill: #ffffff; stroke: #394b59; stroke-width: 1.5; }
    .node-label { font: 13px sans-serif; fill: #1c2833; text-anchor: middle; dominant-baseline: middle; }
    .edge { fill: none; stroke: #5b6b79; stroke-width: 1.5; }
    .edge-label { font: 11px sans-serif; fill: #5b6b79; text-anchor: middle; }
    .section { fill: #f2f5f7; stroke: #d8dee4; stroke-dasharray: 6 4; }
    .preview { fill: none; stroke: #2f80ed; stroke-width: 1.5; stroke-dasharray: 5 4; }`

// Renderer accumulates SVG fragments for one board. Create one per
// document with New, draw through it, then call WriteTo.
type Renderer struct {
	w, h float64
	body bytes.Buffer
}

// New creates a renderer with the given document size.
func New(width, height float64) *Renderer {
	return &Renderer{w: width, h: height}
}

// Export renders a session's board into a complete SVG document.
func Export(sess *gesture.Session, width, height float64, w io.Writer) error {
	r := New(width, height)
	render.Draw(sess, r)
	return r.WriteTo(w)
}

// DrawNode implements render.Surface.
func (r *Renderer) DrawNode(n *board.Node) {
	bounds := n.Bounds()
	switch n.Kind {
	case board.KindDecision:
		c := bounds.Center()
		fmt.Fprintf(&r.body, `  <polygon class="node" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n",
			c.X, bounds.Y, bounds.X+bounds.W, c.Y, c.X, bounds.Y+bounds.H, bounds.X, c.Y)
	case board.KindStart:
		c := bounds.Center()
		fmt.Fprintf(&r.body, `  <circle class="node" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
			c.X, c.Y, bounds.W/2)
	default:
		fmt.Fprintf(&r.body, `  <rect class="node" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6"/>`+"\n",
			bounds.X, bounds.Y, bounds.W, bounds.H)
	}
	if n.Label != "" {
		c := bounds.Center()
		fmt.Fprintf(&r.body, `  <text class="node-label" x="%.1f" y="%.1f">%s</text>`+"\n",
			c.X, c.Y, escape(n.Label))
	}
}

// DrawPath implements render.Surface.
func (r *Renderer) DrawPath(c *board.Connector, p route.Path) {
	fmt.Fprintf(&r.body, `  <path class="edge" d="%s"/>`+"\n", pathData(p))
	if c.Label != "" {
		fmt.Fprintf(&r.body, `  <text class="edge-label" x="%.1f" y="%.1f">%s</text>`+"\n",
			p.Label.X, p.Label.Y-4, escape(c.Label))
	}
}

// DrawSection implements render.Surface.
func (r *Renderer) DrawSection(s *board.Section) {
	fmt.Fprintf(&r.body, `  <rect class="section" x="0" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		s.Y, r.w, s.Height)
}

// DrawPreview implements render.Surface. Previews appear only in the
// interactive editor; exports of an idle session never contain one.
func (r *Renderer) DrawPreview(p route.Path, snapped bool) {
	fmt.Fprintf(&r.body, `  <path class="preview" d="%s"/>`+"\n", pathData(p))
	if snapped {
		end := p.End()
		fmt.Fprintf(&r.body, `  <circle class="preview" cx="%.1f" cy="%.1f" r="5"/>`+"\n", end.X, end.Y)
	}
}

// WriteTo writes the complete SVG document.
func (r *Renderer) WriteTo(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.w, r.h, r.w, r.h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", docStyle)
	buf.Write(r.body.Bytes())
	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// pathData converts a routed path to SVG path data: a line for straight
// paths, a single cubic segment for curved ones.
func pathData(p route.Path) string {
	pts := p.Points
	if p.Curved && len(pts) == 4 {
		return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
			pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
	}
	var buf bytes.Buffer
	for i, pt := range pts {
		if i == 0 {
			fmt.Fprintf(&buf, "M %.1f %.1f", pt.X, pt.Y)
		} else {
			fmt.Fprintf(&buf, " L %.1f %.1f", pt.X, pt.Y)
		}
	}
	return buf.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var _ render.Surface = (*Renderer)(nil)
