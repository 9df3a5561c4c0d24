package render

import (
	"math"

	"github.com/taigrr/swr/pkg/math3d"
)

// Viewport maps normalized device coordinates in [-1, 1] to pixel
// coordinates and a depth in [0, 1]. x and y are left unrounded. y grows
// upward: row 0 of a Frame is the bottom of the image.
func Viewport(width, height int, ndc math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{
		X: (ndc.X + 1) * 0.5 * float64(width),
		Y: (ndc.Y + 1) * 0.5 * float64(height),
		Z: (ndc.Z + 1) * 0.5,
	}
}

// IsBackFacing reports whether the projected triangle winds clockwise in
// NDC. Zero-area triangles count as back-facing.
func IsBackFacing(a, b, c math3d.Vec3) bool {
	area := (a.X*b.Y - b.X*a.Y) +
		(b.X*c.Y - c.X*b.Y) +
		(c.X*a.Y - a.X*c.Y)
	return area <= 0
}

// BBox is an inclusive pixel rectangle. It is empty when a min exceeds the
// matching max.
type BBox struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether the box covers no pixels.
func (b BBox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// BoundingBox returns the pixels a screen-space triangle can touch, clamped
// to a width x height framebuffer. Triangles off screen give an empty box.
func BoundingBox(a, b, c math3d.Vec2, width, height int) BBox {
	lo := a.Min(b).Min(c)
	hi := a.Max(b).Max(c)
	return BBox{
		MinX: max(int(math.Floor(lo.X)), 0),
		MinY: max(int(math.Floor(lo.Y)), 0),
		MaxX: min(int(math.Ceil(hi.X)), width-1),
		MaxY: min(int(math.Ceil(hi.Y)), height-1),
	}
}

// Weights returns the barycentric coordinates of p in triangle abc. They sum
// to one and go negative outside the triangle. A zero-area triangle divides
// by zero; the rasterizer filters those out before calling.
func Weights(a, b, c, p math3d.Vec2) math3d.Vec3 {
	ab, ac, ap := b.Sub(a), c.Sub(a), p.Sub(a)
	area := ab.Cross(ac)
	wb := ap.Cross(ac) / area
	wc := ab.Cross(ap) / area
	return math3d.Vec3{X: 1 - wb - wc, Y: wb, Z: wc}
}

// InterpolateDepth blends three screen-space depths. Depth is linear in
// screen space, so no 1/w correction applies.
func InterpolateDepth(z0, z1, z2 float64, w math3d.Vec3) float64 {
	return w.X*z0 + w.Y*z1 + w.Z*z2
}
