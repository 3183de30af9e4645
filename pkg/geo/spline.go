package geo

// CatmullRomSpline evaluates a Catmull-Rom spline through the given control
// points in the XZ plane, generating samplesPerSegment intermediate points
// per segment. Tension controls tightness (0.5 = centripetal). Used for the
// sinuous spine paths of riverside villages.
func CatmullRomSpline(controlPoints []Point3, samplesPerSegment int, tension float64) []Point3 {
	n := len(controlPoints)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Point3{controlPoints[0]}
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	if n == 2 {
		// Degenerate: linear interpolation.
		pts := make([]Point3, samplesPerSegment+1)
		for i := 0; i <= samplesPerSegment; i++ {
			t := float64(i) / float64(samplesPerSegment)
			pts[i] = controlPoints[0].Lerp(controlPoints[1], t)
		}
		return pts
	}

	// Extend the control array with phantom endpoints reflecting the first
	// and last segments.
	extended := make([]Point3, n+2)
	extended[0] = controlPoints[0].Add(controlPoints[0].Sub(controlPoints[1]))
	copy(extended[1:], controlPoints)
	extended[n+1] = controlPoints[n-1].Add(controlPoints[n-1].Sub(controlPoints[n-2]))

	var pts []Point3
	for i := 1; i < n; i++ {
		p0 := extended[i-1]
		p1 := extended[i]
		p2 := extended[i+1]
		p3 := extended[i+2]

		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, catmullRomPoint(p0, p1, p2, p3, t, tension))
		}
	}
	pts = append(pts, controlPoints[n-1])
	return pts
}

// catmullRomPoint evaluates a single point on a Catmull-Rom segment.
func catmullRomPoint(p0, p1, p2, p3 Point3, t, tension float64) Point3 {
	t2 := t * t
	t3 := t2 * t
	s := tension

	// Cardinal spline basis; the segment interpolates a1 at t=0 and a2 at t=1.
	eval := func(a0, a1, a2, a3 float64) float64 {
		return (-s*a0+(2-s)*a1+(s-2)*a2+s*a3)*t3 +
			(2*s*a0+(s-3)*a1+(3-2*s)*a2-s*a3)*t2 +
			(-s*a0+s*a2)*t +
			a1
	}

	return Point3{
		X: eval(p0.X, p1.X, p2.X, p3.X),
		Y: eval(p0.Y, p1.Y, p2.Y, p3.Y),
		Z: eval(p0.Z, p1.Z, p2.Z, p3.Z),
	}
}
