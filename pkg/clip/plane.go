package clip

import "github.com/taigrr/swr/pkg/math3d"

// Epsilon is the smallest w a vertex may have and stay visible. Vertices at
// or below zero (and just above it) would explode in the perspective divide.
// It is the float64 machine epsilon.
const Epsilon = 0x1p-52

// Plane is one of the half-spaces bounding the clip volume.
type Plane int

// The planes, in the order Triangle applies them.
const (
	PlaneW    Plane = iota // w >= Epsilon
	PlanePosX              // x <= w
	PlaneNegX              // x >= -w
	PlanePosY              // y <= w
	PlaneNegY              // y >= -w
	PlanePosZ              // z <= w
	PlaneNegZ              // z >= -w
)

// Planes lists every plane in chain order. Each plane clips the previous
// plane's output, so the order must not change between triangles.
var Planes = [...]Plane{PlaneW, PlanePosX, PlaneNegX, PlanePosY, PlaneNegY, PlanePosZ, PlaneNegZ}

var planeNames = [...]string{"w", "+x", "-x", "+y", "-y", "+z", "-z"}

func (p Plane) String() string {
	if p < 0 || int(p) >= len(planeNames) {
		return "invalid"
	}
	return planeNames[p]
}

// Inside reports whether v lies in the plane's half-space. Points on the
// plane are inside.
func (p Plane) Inside(v math3d.Vec4) bool {
	switch p {
	case PlaneW:
		return v.W >= Epsilon
	case PlanePosX:
		return v.X <= v.W
	case PlaneNegX:
		return v.X >= -v.W
	case PlanePosY:
		return v.Y <= v.W
	case PlaneNegY:
		return v.Y >= -v.W
	case PlanePosZ:
		return v.Z <= v.W
	case PlaneNegZ:
		return v.Z >= -v.W
	}
	panic("clip: invalid plane " + p.String())
}

// Distance returns the signed distance of v to the plane, scaled so it is
// linear in v: positive inside, zero on the plane, negative outside.
func (p Plane) Distance(v math3d.Vec4) float64 {
	switch p {
	case PlaneW:
		return v.W - Epsilon
	case PlanePosX:
		return v.W - v.X
	case PlaneNegX:
		return v.W + v.X
	case PlanePosY:
		return v.W - v.Y
	case PlaneNegY:
		return v.W + v.Y
	case PlanePosZ:
		return v.W - v.Z
	case PlaneNegZ:
		return v.W + v.Z
	}
	panic("clip: invalid plane " + p.String())
}

// IntersectRatio returns t in [0, 1] such that prev.Lerp(curr, t) lies on
// the plane. prev and curr must be on opposite sides.
func (p Plane) IntersectRatio(prev, curr math3d.Vec4) float64 {
	dp := p.Distance(prev)
	return dp / (dp - p.Distance(curr))
}
