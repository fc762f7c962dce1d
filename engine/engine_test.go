package engine

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/types"
)

type fakeExecutor struct {
	commands [][]string
}

func (f *fakeExecutor) Start(argv []string) {
	f.commands = append(f.commands, argv)
}

type fakeNotifier struct {
	events []types.GestureEvent
}

func (f *fakeNotifier) Publish(ev types.GestureEvent) {
	f.events = append(f.events, ev)
}

const testConf = `
gesture swipe left wildcard-left
gesture swipe left 3 exact-left arg1
gesture swipe right_up oblique-cmd
gesture pinch in pinch-in-cmd
gesture hold on hold-cmd
`

func runEngine(t *testing.T, conf string, locked *atomic.Bool, lines ...string) *fakeExecutor {
	t.Helper()
	cfg, err := config.Parse(strings.NewReader(conf), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(cfg, false)
	dispatcher.SetExecutor(executor)
	if locked == nil {
		locked = &atomic.Bool{}
	}

	eng := New(cfg, dispatcher, locked, false)
	stream := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, eng.Run(context.Background(), stream))
	return executor
}

func TestEngineFiresSwipeAction(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   4",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   4 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_UPDATE +2.07s   4  -8.00/ -0.70 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   4",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"wildcard-left"}, executor.commands[0])
}

func TestEngineExactFingerCountWins(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"exact-left", "arg1"}, executor.commands[0])
}

func TestEngineObliqueSwipe(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3  10.00/ -9.00 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"oblique-cmd"}, executor.commands[0])
}

func TestEngineCancelledGestureFiresNothing(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3 cancelled",
	)
	assert.Empty(t, executor.commands)
}

func TestEngineSessionLockDropsEverything(t *testing.T) {
	var locked atomic.Bool
	locked.Store(true)

	executor := runEngine(t, testConf, &locked,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
	)
	assert.Empty(t, executor.commands)
}

func TestEngineIgnoresStrayEvents(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		// update and end with no begin
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
		// unknown gesture type and unknown event kind
		"-event9   GESTURE_WOBBLE_BEGIN +2.30s   3",
		" event9   GESTURE_SWIPE_WIBBLE +2.31s   3",
		// non-gesture noise
		" event9   POINTER_MOTION  +2.40s	  2.32/  1.53",
	)
	assert.Empty(t, executor.commands)
}

func TestEngineMalformedUpdateDropped(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 garbage",
		" event9   GESTURE_SWIPE_UPDATE +2.07s   3 -12.00/  1.20 (unaccelerated)",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"exact-left", "arg1"}, executor.commands[0])
}

func TestEnginePinch(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_PINCH_BEGIN  +2.03s   2",
		" event9   GESTURE_PINCH_UPDATE +2.05s   2  0.12/ 0.01 ( 0.90/ 0.13 unaccelerated) 0.90 @  0.4",
		" event9   GESTURE_PINCH_END    +2.22s   2",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"pinch-in-cmd"}, executor.commands[0])
}

func TestEngineHold(t *testing.T) {
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_HOLD_BEGIN   +2.03s   4",
		" event9   GESTURE_HOLD_END     +2.53s   4",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"hold-cmd"}, executor.commands[0])
}

func TestEngineIndependentPerTypeState(t *testing.T) {
	// a hold beginning mid-swipe must not corrupt the swipe accumulation
	executor := runEngine(t, testConf, nil,
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3",
		" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)",
		"-event9   GESTURE_HOLD_BEGIN   +2.06s   4",
		" event9   GESTURE_SWIPE_END    +2.22s   3",
	)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, []string{"exact-left", "arg1"}, executor.commands[0])
}

func TestEngineRawModeNeverDispatches(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(testConf), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(cfg, false)
	dispatcher.SetExecutor(executor)

	eng := New(cfg, dispatcher, &atomic.Bool{}, true)
	stream := strings.NewReader(
		"-event9   GESTURE_SWIPE_BEGIN  +2.03s   3\n" +
			" event9   GESTURE_SWIPE_UPDATE +2.05s   3 -12.00/  1.20 (unaccelerated)\n" +
			" event9   GESTURE_SWIPE_END    +2.22s   3\n")
	require.NoError(t, eng.Run(context.Background(), stream))
	assert.Empty(t, executor.commands)
}

func TestDispatcherTimeoutSuppressesSwipe(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("gesture swipe left cmd\ntimeout 1.5"), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	notifier := &fakeNotifier{}
	dispatcher := NewDispatcher(cfg, false)
	dispatcher.SetExecutor(executor)
	dispatcher.SetNotifier(notifier)

	dispatcher.Dispatch("swipe", "left", "3", 2*time.Second)
	assert.Empty(t, executor.commands)

	require.Len(t, notifier.events, 1)
	assert.False(t, notifier.events[0].Fired)
	assert.Contains(t, notifier.events[0].Reason, "timed out")

	dispatcher.Dispatch("swipe", "left", "3", time.Second)
	require.Len(t, executor.commands, 1)
	require.Len(t, notifier.events, 2)
	assert.True(t, notifier.events[1].Fired)
}

func TestDispatcherHoldExemptFromTimeout(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("gesture hold on+5 cmd\ntimeout 1.5"), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(cfg, false)
	dispatcher.SetExecutor(executor)

	dispatcher.Dispatch("hold", "on+5", "3", 6*time.Second)
	require.Len(t, executor.commands, 1)
}

func TestDispatcherDebugModeNeverExecutes(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("gesture swipe left cmd"), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(cfg, true)
	dispatcher.SetExecutor(executor)

	dispatcher.Dispatch("swipe", "left", "3", time.Millisecond)
	assert.Empty(t, executor.commands)
}

func TestDispatcherUnmatchedMotionIsSilent(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("gesture swipe left cmd"), "test.conf")
	require.NoError(t, err)

	executor := &fakeExecutor{}
	notifier := &fakeNotifier{}
	dispatcher := NewDispatcher(cfg, false)
	dispatcher.SetExecutor(executor)
	dispatcher.SetNotifier(notifier)

	dispatcher.Dispatch("swipe", "right", "3", time.Millisecond)
	assert.Empty(t, executor.commands)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "no matching gesture configured", notifier.events[0].Reason)
}
