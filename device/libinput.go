// Package device discovers the touchpad and manages the libinput
// debug-events subprocess that produces the gesture event stream.
package device

import (
	"fmt"
	"os/exec"
	"strings"
)

// Touchpad describes one entry from `libinput list-devices`.
type Touchpad struct {
	Name         string
	Kernel       string // /dev/input/eventN node
	Capabilities []string
}

func (d Touchpad) hasGesture() bool {
	for _, c := range d.Capabilities {
		if c == "gesture" {
			return true
		}
	}
	return false
}

// CheckTool verifies the libinput binary is available. Its absence is fatal
// for the whole program.
func CheckTool() error {
	if _, err := exec.LookPath("libinput"); err != nil {
		return fmt.Errorf("libinput tool not found, install the libinput-tools package")
	}
	return nil
}

// ListDevices runs `libinput list-devices` and parses its stanzas.
func ListDevices() ([]Touchpad, error) {
	out, err := exec.Command("libinput", "list-devices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run libinput list-devices: %w", err)
	}
	return parseListDevices(string(out)), nil
}

func parseListDevices(out string) []Touchpad {
	var devices []Touchpad
	var current *Touchpad

	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if strings.TrimSpace(line) == "" && current != nil {
				devices = append(devices, *current)
				current = nil
			}
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Device":
			if current != nil {
				devices = append(devices, *current)
			}
			current = &Touchpad{Name: value}
		case "Kernel":
			if current != nil {
				current.Kernel = value
			}
		case "Capabilities":
			if current != nil {
				current.Capabilities = strings.Fields(value)
			}
		}
	}
	if current != nil {
		devices = append(devices, *current)
	}
	return devices
}

// Find selects the touchpad to listen on. name may be a configured device
// name ("all" or empty means no restriction: nil is returned and the event
// source listens on every device, which still requires at least one
// gesture-capable device to exist). With no name, the first device
// advertising the gesture capability wins.
func Find(name string) (*Touchpad, error) {
	devices, err := ListDevices()
	if err != nil {
		return nil, err
	}

	var gestural *Touchpad
	for i := range devices {
		if devices[i].hasGesture() {
			gestural = &devices[i]
			break
		}
	}

	switch {
	case strings.EqualFold(name, "all"):
		if gestural == nil {
			return nil, fmt.Errorf("no gesture-capable device found")
		}
		return nil, nil
	case name != "":
		for i := range devices {
			if strings.EqualFold(devices[i].Name, name) {
				return &devices[i], nil
			}
		}
		return nil, fmt.Errorf("configured device %q not found", name)
	default:
		if gestural == nil {
			return nil, fmt.Errorf("no touchpad with gesture capability found")
		}
		return gestural, nil
	}
}
