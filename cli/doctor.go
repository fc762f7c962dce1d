package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/device"
)

// DoctorInfo is the diagnostics report printed by the doctor command.
type DoctorInfo struct {
	Version        string `json:"gesturectl_version"`
	LibinputPath   string `json:"libinput_path,omitempty"`
	Touchpad       string `json:"touchpad,omitempty"`
	TouchpadKernel string `json:"touchpad_kernel,omitempty"`
	WmctrlPath     string `json:"wmctrl_path,omitempty"`
	ConfigFile     string `json:"config_file,omitempty"`
	ConfigError    string `json:"config_error,omitempty"`
	Error          string `json:"error,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics",
	Long:  `Checks that the external tools and devices gesturectl depends on are usable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := DoctorInfo{Version: version}

		if path, err := exec.LookPath("libinput"); err == nil {
			info.LibinputPath = path
			if touchpad, err := device.Find(deviceName); err != nil {
				info.Error = err.Error()
			} else if touchpad != nil {
				info.Touchpad = touchpad.Name
				info.TouchpadKernel = touchpad.Kernel
			} else {
				info.Touchpad = "all devices"
			}
		} else {
			info.Error = "libinput tool not found, install the libinput-tools package"
		}

		// optional, only needed by the workspace helper
		if path, err := exec.LookPath("wmctrl"); err == nil {
			info.WmctrlPath = path
		}

		path := configFile
		if path == "" {
			path, _ = config.Find()
		}
		if path != "" {
			info.ConfigFile = path
			if _, err := config.Load(path); err != nil {
				info.ConfigError = err.Error()
			}
		} else {
			info.ConfigError = "no configuration file found"
		}

		printJson(info)
		if info.Error != "" {
			return fmt.Errorf("%s", info.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
