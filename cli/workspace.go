package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/swipetools/gesturectl/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace <direction>",
	Short: "Move to an adjacent workspace on a virtual grid",
	Long: `Computes the target workspace from the current one over a virtual 2-D grid
and asks the desktop environment to switch to it. Meant to be used as a
gesture action, e.g.:

    gesture swipe up 4 gesturectl workspace up --wrap --cols 3

Directions: ` + strings.Join(workspace.Directions(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return workspace.Navigate(args[0], wsCols, wsWrap)
	},
}

func init() {
	rootCmd.AddCommand(workspaceCmd)

	workspaceCmd.Flags().BoolVarP(&wsWrap, "wrap", "w", false, "wrap around the edges of the grid")
	workspaceCmd.Flags().IntVar(&wsCols, "cols", 1, "number of columns in the workspace grid")
}
