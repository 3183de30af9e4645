package geo

import "math"

// SegmentDistance2D returns the XZ-plane distance from p to the segment ab.
// Degenerate (zero-length) segments collapse to a point distance.
func SegmentDistance2D(p, a, b Point3) float64 {
	ab := b.Sub(a)
	abLen2 := ab.Dot2D(ab)
	if abLen2 < 1e-12 {
		return p.Dist2D(a)
	}
	t := p.Sub(a).Dot2D(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.Dist2D(closest)
}

// PolylineLength2D returns the total XZ-plane arc length of the point list.
func PolylineLength2D(pts []Point3) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist2D(pts[i])
	}
	return total
}

// Circle returns a closed circular loop of segments evenly distributed by
// angle, discretized into the given segment count. The first point is
// repeated at the end to close the loop.
func Circle(center Point3, radius float64, segments int) []Point3 {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point3, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = center.PolarOffset(angle, radius)
	}
	return pts
}

// QuadraticBezier samples a quadratic Bezier curve through start, control and
// end at steps+1 evenly spaced parameter values.
func QuadraticBezier(start, control, end Point3, steps int) []Point3 {
	if steps < 1 {
		steps = 1
	}
	pts := make([]Point3, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pts[i] = Point3{
			X: u*u*start.X + 2*u*t*control.X + t*t*end.X,
			Y: u*u*start.Y + 2*u*t*control.Y + t*t*end.Y,
			Z: u*u*start.Z + 2*u*t*control.Z + t*t*end.Z,
		}
	}
	return pts
}
