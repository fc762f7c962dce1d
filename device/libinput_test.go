package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listDevicesOutput = `Device:           Power Button
Kernel:           /dev/input/event0
Group:            1
Seat:             seat0, default
Capabilities:     keyboard
Tap-to-click:     n/a

Device:           DLL0665:01 06CB:76AD Touchpad
Kernel:           /dev/input/event4
Group:            9
Seat:             seat0, default
Size:             101x57mm
Capabilities:     pointer gesture
Tap-to-click:     disabled

Device:           AT Translated Set 2 keyboard
Kernel:           /dev/input/event3
Group:            10
Seat:             seat0, default
Capabilities:     keyboard
`

func TestParseListDevices(t *testing.T) {
	devices := parseListDevices(listDevicesOutput)
	require.Len(t, devices, 3)

	assert.Equal(t, "Power Button", devices[0].Name)
	assert.Equal(t, "/dev/input/event0", devices[0].Kernel)
	assert.False(t, devices[0].hasGesture())

	assert.Equal(t, "DLL0665:01 06CB:76AD Touchpad", devices[1].Name)
	assert.Equal(t, "/dev/input/event4", devices[1].Kernel)
	assert.Equal(t, []string{"pointer", "gesture"}, devices[1].Capabilities)
	assert.True(t, devices[1].hasGesture())
}

func TestParseListDevicesEmpty(t *testing.T) {
	assert.Empty(t, parseListDevices(""))
}
