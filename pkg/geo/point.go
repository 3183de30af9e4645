// Package geo provides the planar and 3D geometry primitives used by the
// generator. The world lives in the XZ plane with Y up; placement math works
// in the plane and elevation is applied afterwards from the heightfield.
package geo

import "math"

// Point3 is a point in world space (Y is up).
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the zero point.
var Origin = Point3{}

// Pt is a shorthand constructor for a ground-level point.
func Pt(x, z float64) Point3 {
	return Point3{X: x, Z: z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// WithY returns p with its elevation replaced.
func (p Point3) WithY(y float64) Point3 {
	return Point3{p.X, y, p.Z}
}

// Dist2D returns the Euclidean distance from p to q in the XZ plane.
func (p Point3) Dist2D(q Point3) float64 {
	return math.Hypot(p.X-q.X, p.Z-q.Z)
}

// Length2D returns the XZ-plane length of the vector.
func (p Point3) Length2D() float64 {
	return math.Hypot(p.X, p.Z)
}

// Normalize2D returns the XZ unit vector in the same direction, with Y zeroed.
// Returns the zero vector if the planar length is zero.
func (p Point3) Normalize2D() Point3 {
	l := p.Length2D()
	if l < 1e-12 {
		return Point3{}
	}
	return Point3{X: p.X / l, Z: p.Z / l}
}

// Dot2D returns the XZ dot product of p and q.
func (p Point3) Dot2D(q Point3) float64 {
	return p.X*q.X + p.Z*q.Z
}

// Perp2D returns the vector rotated 90 degrees counterclockwise in the XZ plane.
func (p Point3) Perp2D() Point3 {
	return Point3{X: -p.Z, Z: p.X}
}

// Lerp returns the linear interpolation between p and q at t in [0, 1].
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Angle2D returns the XZ-plane angle of the vector from the positive X axis.
func (p Point3) Angle2D() float64 {
	return math.Atan2(p.Z, p.X)
}

// PolarOffset returns p displaced by distance at the given XZ-plane angle.
func (p Point3) PolarOffset(angle, distance float64) Point3 {
	return Point3{
		X: p.X + math.Cos(angle)*distance,
		Y: p.Y,
		Z: p.Z + math.Sin(angle)*distance,
	}
}
