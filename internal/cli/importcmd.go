package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/futurita/flowbox/pkg/boardfile"
)

// newImportCmd creates the import command. A board file becomes a new board
// by default; with --into it replaces an existing board's contents as a
// single undoable step, so a bad import is one undo away from recovery.
func newImportCmd(configPath *string) *cobra.Command {
	var into string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			f, err := boardfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, settings := boardfile.ToSnapshot(f)
			logger.Debug("board file parsed",
				"nodes", len(snap.Nodes), "edges", len(snap.Edges))

			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if into != "" {
				e, err := c.Find(into)
				if err != nil {
					return err
				}
				e.Session.ReplaceState(snap)
				boardfile.ApplySettings(e.Board, settings)
				e.Session.Flush()
				if err := c.Persist(); err != nil {
					return err
				}
				prog.done("Imported " + args[0])
				printSuccess("replaced contents of %s", StyleHighlight.Render(e.Board.Title))
				printStats(e.Board.NodeCount(), e.Board.ConnectorCount())
				printNextStep("undo the import", "flowbox edit")
				return nil
			}

			title := settings.Title
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			e := c.AddBoardFrom(title, snap)
			boardfile.ApplySettings(e.Board, settings)
			e.Session.Flush()
			if err := c.Persist(); err != nil {
				return err
			}
			prog.done("Imported " + args[0])
			printSuccess("created board %s", StyleHighlight.Render(e.Board.Title))
			printStats(e.Board.NodeCount(), e.Board.ConnectorCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "replace the contents of an existing board instead of creating one")
	return cmd
}
