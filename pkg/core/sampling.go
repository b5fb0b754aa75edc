package core

import "math"

// goldenAngle is π(3 − √5), the angular step of a Vogel spiral
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// SampleUnitDisk returns the i-th of n points of a Vogel (golden-angle) spiral
// covering the unit disk. The pattern is fixed for a given n, and sample 0 is
// always the disk centre, so a single sample degenerates to a point light.
func SampleUnitDisk(i, n int) Vec2 {
	if n <= 1 || i <= 0 {
		return Vec2{}
	}
	r := math.Sqrt(float64(i) / float64(n))
	theta := float64(i) * goldenAngle
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// DiskBasis returns two orthonormal vectors spanning the plane perpendicular
// to axis. axis must be non-zero.
func DiskBasis(axis Vec3) (u, v Vec3) {
	n := axis.Normalize()
	u = n.Perpendicular().Normalize()
	v = n.Cross(u)
	return u, v
}

// SampleDisk maps the i-th of n unit disk samples onto a disk of the given
// radius centred at center and facing along axis.
func SampleDisk(center, axis Vec3, radius float64, i, n int) Vec3 {
	if radius <= 0 {
		return center
	}
	p := SampleUnitDisk(i, n)
	if p.X == 0 && p.Y == 0 {
		return center
	}
	u, v := DiskBasis(axis)
	return center.Add(u.Multiply(p.X * radius)).Add(v.Multiply(p.Y * radius))
}
