package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the parsed configuration table",
	Long:  `Parses the configuration file and prints the full gesture table, grouped by gesture type in configured order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Print(cfg.Format())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
