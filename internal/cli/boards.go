package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newBoardCmd creates the board management command tree.
func newBoardCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "List and manage the boards in the project",
	}
	cmd.AddCommand(newBoardListCmd(configPath))
	cmd.AddCommand(newBoardAddCmd(configPath))
	cmd.AddCommand(newBoardCloneCmd(configPath))
	cmd.AddCommand(newBoardDeleteCmd(configPath))
	cmd.AddCommand(newBoardUseCmd(configPath))
	return cmd
}

func newBoardListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if c.Empty() {
				printInfo("no boards yet")
				printNextStep("create one", "flowbox board add")
				return nil
			}

			active := c.ActiveEntry()
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := [][]string{}
			for _, e := range c.Entries() {
				marker := " "
				if active != nil && e.Board.ID == active.Board.ID {
					marker = "●"
				}
				rows = append(rows, []string{
					marker,
					e.Board.ID[:8],
					e.Board.Title,
					fmt.Sprintf("%d", e.Board.NodeCount()),
					fmt.Sprintf("%d", e.Board.ConnectorCount()),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("", "ID", "Title", "Nodes", "Connectors").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if rows[row][0] == "●" {
						return lipgloss.NewStyle().Foreground(colorGreen)
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

func newBoardAddCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new empty board and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			e := c.AddBoard(title)
			printSuccess("created board %s", StyleHighlight.Render(e.Board.Title))
			printDetail("id: %s", e.Board.ID)
			return nil
		},
	}
}

func newBoardCloneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <id>",
		Short: "Deep-copy a board with fresh element identities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			e, err := c.CloneBoard(args[0])
			if err != nil {
				return err
			}
			printSuccess("cloned into %s", StyleHighlight.Render(e.Board.Title))
			printStats(e.Board.NodeCount(), e.Board.ConnectorCount())
			return nil
		},
	}
}

func newBoardDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := c.DeleteBoard(args[0]); err != nil {
				return err
			}
			printSuccess("deleted board %s", args[0])
			if c.Empty() {
				printInfo("the project has no boards now")
			}
			return nil
		},
	}
}

func newBoardUseCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a board the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, st, _, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := c.SetActive(args[0]); err != nil {
				return err
			}
			e := c.ActiveEntry()
			printSuccess("active board is now %s", StyleHighlight.Render(e.Board.Title))
			return nil
		},
	}
}
