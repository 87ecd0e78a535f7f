package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newEditCmd creates the edit command, which opens the interactive terminal
// editor on the board set.
func newEditCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive board editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			c, st, cfg, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			logger.Debug("editor starting", "boards", c.Len())
			p := tea.NewProgram(newEditorModel(c, cfg),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}
}
