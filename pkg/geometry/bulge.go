package geometry

import "math"

// ArcFromBulge converts a polyline edge with a bulge value into a circular arc.
//
// The bulge is tan(θ/4) where θ is the included angle; a positive bulge sweeps
// counter-clockwise from start to end, a negative one clockwise. The radius is
//
//	r = chord / (2·sin(2·atan(bulge)))
//
// and the center sits on the chord's perpendicular bisector at a signed
// distance chord·(1-bulge²)/(4·bulge) to the left of the chord direction.
// ok is false for a zero bulge or a degenerate chord; the edge is then straight.
func ArcFromBulge(start, end Vector2, bulge float64) (arc Arc, ok bool) {
	chord := start.Distance(end)
	if bulge == 0 || chord == 0 || math.IsNaN(bulge) || math.IsInf(bulge, 0) {
		return Arc{}, false
	}

	radius := math.Abs(chord / (2 * math.Sin(2*math.Atan(bulge))))
	direction := end.Sub(start).Mul(1 / chord)
	offset := chord * (1 - bulge*bulge) / (4 * bulge)
	center := start.Lerp(end, 0.5).Add(direction.Perp().Mul(offset))

	startAngle := start.Sub(center).Angle()
	endAngle := end.Sub(center).Angle()
	if bulge < 0 {
		startAngle, endAngle = endAngle, startAngle
	}

	return Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: NormalizeDegrees(startAngle),
		EndAngle:   NormalizeDegrees(endAngle),
	}, true
}
