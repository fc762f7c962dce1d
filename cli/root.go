package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/swipetools/gesturectl/utils"
)

const version = "dev"

// rootCmd represents the base command; running it with no subcommand starts
// the engine in the foreground.
var rootCmd = &cobra.Command{
	Use:   "gesturectl",
	Short: "Map touchpad gestures to commands",
	Long:  `Reads touchpad gesture events from libinput and runs the command configured for each swipe, pinch or hold.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEngine(cmd.Context())
	},
}

func initConfig() {
	// debug mode always traces, it is useless without the output
	utils.SetVerbose(verbose || debug)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (default: ~/.config/gesturectl.conf, /etc/gesturectl.conf)")
	rootCmd.PersistentFlags().StringVar(&deviceName, "device", "", "touchpad device name, overrides the configuration file")

	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "print classified gestures and resolved commands without executing them")
	rootCmd.Flags().BoolVarP(&raw, "raw", "r", false, "echo raw event lines without classification")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "serve the status endpoint on this address (e.g. 'localhost:12600')")
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.ExecuteContext(ctx)
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}
