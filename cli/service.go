package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipetools/gesturectl/daemon"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gesture engine in the background",
	Long:  `Detaches from the terminal and runs the gesture engine as a daemon.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return err
			}
			if child != nil {
				// parent: the child re-runs this command and falls through
				fmt.Printf("gesturectl daemon started (pid %d)\n", child.Pid)
				return nil
			}
		}

		if err := daemon.WritePid(); err != nil {
			return err
		}
		defer daemon.RemovePid()

		return runEngine(cmd.Context())
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background gesture engine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := daemon.Stop(); err != nil {
			return err
		}
		fmt.Println("gesturectl daemon stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)

	startCmd.Flags().StringVar(&listenAddr, "listen", "", "serve the status endpoint on this address")
	startCmd.Flags().BoolVarP(&raw, "raw", "r", false, "echo raw event lines without classification")
}
