package gestures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endSwipe(t *testing.T, s *Swipe, updates ...[]string) (string, bool) {
	t.Helper()
	s.Begin("3")
	for _, u := range updates {
		s.Update(u)
	}
	return s.End()
}

func TestSwipeCardinalDirections(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  string
		want    string
	}{
		{"left", "-10.0", "1.0", "left"},
		{"right", "10.0", "-1.0", "right"},
		{"up", "1.0", "-10.0", "up"},
		{"down", "-1.0", "10.0", "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwipe(0, false)
			motion, ok := endSwipe(t, s, []string{tt.dx, tt.dy})
			require.True(t, ok)
			assert.Equal(t, tt.want, motion)
		})
	}
}

func TestSwipeAccumulatesAcrossUpdates(t *testing.T) {
	s := NewSwipe(0, false)
	motion, ok := endSwipe(t, s,
		[]string{"4.00/", "0.10"},
		[]string{"4.00/", "0.10"},
		[]string{"-1.00/", "0.10"},
	)
	require.True(t, ok)
	assert.Equal(t, "right", motion)
}

func TestSwipeBelowThresholdDiscarded(t *testing.T) {
	s := NewSwipe(100, false)
	_, ok := endSwipe(t, s, []string{"30.0", "30.0"}) // 30²+30² < 100²
	assert.False(t, ok)
}

func TestSwipeAtThresholdFires(t *testing.T) {
	s := NewSwipe(100, false)
	motion, ok := endSwipe(t, s, []string{"100.0", "0.0"})
	require.True(t, ok)
	assert.Equal(t, "right", motion)
}

func TestSwipeObliqueNeedsExtendedConfig(t *testing.T) {
	// 45° swipe: without oblique motions configured the larger axis wins
	s := NewSwipe(0, false)
	motion, ok := endSwipe(t, s, []string{"-10.0", "-9.0"})
	require.True(t, ok)
	assert.Equal(t, "left", motion)

	s = NewSwipe(0, true)
	motion, ok = endSwipe(t, s, []string{"-10.0", "-9.0"})
	require.True(t, ok)
	assert.Equal(t, "left_up", motion)
}

func TestSwipeObliqueRatioBoundary(t *testing.T) {
	// minor/major = 0.4 is below tan(22.5°) ≈ 0.414: still cardinal
	s := NewSwipe(0, true)
	motion, ok := endSwipe(t, s, []string{"10.0", "4.0"})
	require.True(t, ok)
	assert.Equal(t, "right", motion)

	// 0.42 is above it: oblique compound
	s = NewSwipe(0, true)
	motion, ok = endSwipe(t, s, []string{"10.0", "4.2"})
	require.True(t, ok)
	assert.Equal(t, "right_down", motion)
}

func TestSwipeObliqueCompoundsVerticalPrimary(t *testing.T) {
	// compound labels always lead with the horizontal part
	s := NewSwipe(0, true)
	motion, ok := endSwipe(t, s, []string{"5.0", "-10.0"})
	require.True(t, ok)
	assert.Equal(t, "right_up", motion)
}

func TestSwipeDropsMalformedUpdate(t *testing.T) {
	s := NewSwipe(0, false)
	s.Begin("3")
	assert.False(t, s.Update([]string{"bogus", "fields"}))
	assert.True(t, s.Update([]string{"-10.0", "0.0"}))
	assert.False(t, s.Update([]string{"1.0"})) // missing y field

	motion, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, "left", motion)
}

func TestSwipeBeginResetsAccumulators(t *testing.T) {
	s := NewSwipe(0, false)
	s.Begin("3")
	s.Update([]string{"100.0", "0.0"})

	// a second begin while active restarts with no carry-over
	s.Begin("4")
	s.Update([]string{"-10.0", "0.0"})
	motion, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, "left", motion)
	assert.Equal(t, "4", s.Fingers())
}

func TestSwipeParsesDecoratedFields(t *testing.T) {
	// libinput pads columns and glues a slash onto the x value
	s := NewSwipe(0, false)
	motion, ok := endSwipe(t, s, []string{"-4.51/", "0.12", "(unaccelerated)"})
	require.True(t, ok)
	assert.Equal(t, "left", motion)
}
