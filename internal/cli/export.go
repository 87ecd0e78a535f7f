package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/futurita/flowbox/pkg/boardfile"
	"github.com/futurita/flowbox/pkg/container"
	"github.com/futurita/flowbox/pkg/render/dot"
	"github.com/futurita/flowbox/pkg/render/svg"
)

// newExportCmd creates the export command. Boards export as the JSON board
// file format, a standalone SVG of the true layout, Graphviz DOT text, or a
// Graphviz-rendered SVG of the logical graph.
func newExportCmd(configPath *string) *cobra.Command {
	var (
		boardID string
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a board as JSON, SVG, or Graphviz DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			c, st, cfg, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			e, err := resolveBoard(c, boardID)
			if err != nil {
				return err
			}
			logger.Debug("exporting board", "id", e.Board.ID, "format", format)

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			switch strings.ToLower(format) {
			case "json":
				e.Session.Flush()
				if err := boardfile.Write(e.Board, w); err != nil {
					return err
				}
			case "svg":
				if err := svg.Export(e.Session, cfg.Canvas.Width, cfg.Canvas.Height, w); err != nil {
					return err
				}
			case "dot":
				e.Session.Flush()
				if _, err := fmt.Fprint(w, dot.ToDOT(e.Board)); err != nil {
					return err
				}
			case "graphviz":
				e.Session.Flush()
				data, err := dot.RenderSVG(cmd.Context(), dot.ToDOT(e.Board))
				if err != nil {
					return err
				}
				if _, err := w.Write(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want json, svg, dot, or graphviz)", format)
			}

			if out != "" {
				printSuccess("exported %s", StyleHighlight.Render(e.Board.Title))
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&boardID, "board", "b", "", "board ID (default: the active board)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, svg, dot, or graphviz")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

// resolveBoard returns the entry for id, or the active entry when id is
// empty.
func resolveBoard(c *container.Container, id string) (*container.Entry, error) {
	if id != "" {
		return c.Find(id)
	}
	e := c.ActiveEntry()
	if e == nil {
		return nil, fmt.Errorf("no boards in the project")
	}
	return e, nil
}
