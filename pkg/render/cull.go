package render

import (
	"github.com/taigrr/swr/pkg/clip"
	"github.com/taigrr/swr/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the 8 corners of the box.
func (b AABB) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Outside reports whether the box, transformed by mvp into clip space, lies
// entirely outside one of the clip planes. A false result does not mean the
// box is visible: boxes straddling a frustum corner are kept and left to the
// per-triangle clipper.
func (b AABB) Outside(mvp math3d.Mat4) bool {
	var corners [8]math3d.Vec4
	for i, c := range b.Corners() {
		corners[i] = mvp.MulVec4(math3d.V4FromV3(c, 1))
	}

	for _, p := range clip.Planes {
		out := 0
		for _, c := range corners {
			if !p.Inside(c) {
				out++
			}
		}
		if out == len(corners) {
			return true
		}
	}
	return false
}
