package gestures

// rotationThreshold is the accumulated rotation, in degrees, above which a
// pinch counts as a rotation gesture instead of an in/out pinch.
const rotationThreshold = 15.0

// Pinch accumulates scale-ratio drift (ratio − 1, so 0 means no change) and
// rotation angle across updates. At end it classifies as clockwise /
// anticlockwise when rotation motions are configured and the accumulated
// angle is large enough, otherwise as out / in from the sign of the ratio.
type Pinch struct {
	gestureState
	extended bool // rotation motions configured
}

func NewPinch(extended bool) *Pinch {
	return &Pinch{extended: extended}
}

// Update expects the libinput pinch payload tail `… <ratio> @ <angle>`: the
// scale ratio is the third-from-last field and the rotation angle the last.
func (p *Pinch) Update(fields []string) bool {
	if len(fields) < 3 {
		return false
	}
	ratio, okr := parseNumeric(fields[len(fields)-3])
	angle, oka := parseNumeric(fields[len(fields)-1])
	if !okr || !oka {
		return false
	}
	p.accumA += ratio - 1
	p.accumB += angle
	return true
}

func (p *Pinch) End() (string, bool) {
	p.Reset()
	ratio, angle := p.accumA, p.accumB

	if p.extended && (angle > rotationThreshold || angle < -rotationThreshold) {
		if angle >= 0 {
			return "clockwise", true
		}
		return "anticlockwise", true
	}
	if ratio > 0 {
		return "out", true
	}
	if ratio < 0 {
		return "in", true
	}
	return "", false
}
