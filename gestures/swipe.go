package gestures

import "math"

// obliqueRatio is tan(22.5°): above it the minor axis contributes enough
// that the swipe counts as oblique rather than cardinal.
var obliqueRatio = math.Tan(22.5 * math.Pi / 180)

// Swipe accumulates per-frame x/y displacement and classifies the total
// vector into one of four cardinal directions, or one of four oblique
// compounds when oblique motions are configured.
type Swipe struct {
	gestureState

	// threshold is the minimum total distance (swipe_threshold); gestures
	// shorter than it are discarded. 0 disables the check.
	threshold float64

	// extended enables the oblique compound labels. Only set when the
	// configuration actually maps at least one oblique motion.
	extended bool
}

func NewSwipe(threshold int, extended bool) *Swipe {
	return &Swipe{threshold: float64(threshold), extended: extended}
}

// Update expects the frame's incremental x and y displacement as the first
// two payload fields.
func (s *Swipe) Update(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	dx, okx := parseNumeric(fields[0])
	dy, oky := parseNumeric(fields[1])
	if !okx || !oky {
		return false
	}
	s.accumA += dx
	s.accumB += dy
	return true
}

func (s *Swipe) End() (string, bool) {
	s.Reset()
	x, y := s.accumA, s.accumB

	if s.threshold > 0 && x*x+y*y < s.threshold*s.threshold {
		return "", false
	}

	absx, absy := math.Abs(x), math.Abs(y)
	if s.extended && ratio(absx, absy) > obliqueRatio {
		return horizontal(x) + "_" + vertical(y), true
	}
	if absx > absy {
		return horizontal(x), true
	}
	return vertical(y), true
}

// ratio is minor over major axis magnitude.
func ratio(absx, absy float64) float64 {
	major := math.Max(absx, absy)
	if major == 0 {
		return 0
	}
	return math.Min(absx, absy) / major
}

func horizontal(x float64) string {
	if x < 0 {
		return "left"
	}
	return "right"
}

func vertical(y float64) string {
	if y < 0 {
		return "up"
	}
	return "down"
}
