package input

import "math"

// pivotEpsilon is the squared distance below which a pointer sits on the pivot.
const pivotEpsilon = 1e-12

// NormalizeDeg wraps an angle in degrees into (-180, 180].
func NormalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// ShortestDelta returns the signed shortest rotation from a to b in degrees.
// A raw difference of +190 is reported as -170.
func ShortestDelta(a, b float64) float64 {
	return NormalizeDeg(b - a)
}

// PointerAngle returns atan2(dy, dx) in degrees.
// ok is false when the offset is too small to define an angle.
func PointerAngle(dx, dy float64) (deg float64, ok bool) {
	if dx*dx+dy*dy < pivotEpsilon {
		return 0, false
	}
	return math.Atan2(dy, dx) * 180 / math.Pi, true
}
