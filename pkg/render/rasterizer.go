// Package render turns clipped triangles into pixels: viewport mapping,
// facing and bounding-box setup, barycentric scan conversion, and the frame
// buffers the pixels land in.
package render

import (
	"math"

	"github.com/taigrr/swr/pkg/clip"
	"github.com/taigrr/swr/pkg/math3d"
)

// Shaded is a varying that can also report the color of its vertex.
type Shaded[V any] interface {
	clip.Varying[V]
	Fragment() Color
}

// Stats counts what happened to submitted geometry. Reset it once per frame.
type Stats struct {
	Triangles  int // submitted to DrawTriangle
	FastPath   int // accepted without clipping
	Clipped    int // rejected entirely by the clipper
	BackFacing int // culled by the facing test
	Degenerate int // zero screen area
	EmptyBoxes int // bounding box entirely off screen
	Fragments  int // pixels written

	MeshesTested int // meshes with bounds checked against the clip volume
	MeshesCulled int // meshes skipped without touching their triangles
}

// MeshRenderer is imported from models to avoid circular deps.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with a local bounding box, which
// lets whole meshes be culled before their triangles are clipped.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// ShadeFunc computes the varying of mesh vertex i.
type ShadeFunc[V any] func(i int, pos, normal math3d.Vec3, uv math3d.Vec2) V

// Rasterizer clips, sets up and fills triangles into a Frame.
// It owns its clip scratch space, so a Rasterizer must not be shared
// between goroutines; give each worker its own.
type Rasterizer[V Shaded[V]] struct {
	DoubleSided bool // draw back-facing triangles instead of culling them
	DepthTest   bool // test and write depth when the frame has a depth buffer
	Stats       Stats

	frame    *Frame
	src, dst clip.Polygon[V]
}

// NewRasterizer creates a rasterizer drawing into frame with depth testing on.
func NewRasterizer[V Shaded[V]](frame *Frame) *Rasterizer[V] {
	return &Rasterizer[V]{frame: frame, DepthTest: true}
}

// Frame returns the target frame.
func (r *Rasterizer[V]) Frame() *Frame {
	return r.frame
}

// SetFrame retargets the rasterizer, e.g. after a resize.
func (r *Rasterizer[V]) SetFrame(f *Frame) {
	r.frame = f
}

// ResetStats clears the statistics (call once per frame).
func (r *Rasterizer[V]) ResetStats() {
	r.Stats = Stats{}
}

// DrawTriangle clips a clip-space triangle and fills whatever survives.
func (r *Rasterizer[V]) DrawTriangle(coords [3]math3d.Vec4, vary [3]V) {
	r.Stats.Triangles++
	if clip.Visible(coords[0]) && clip.Visible(coords[1]) && clip.Visible(coords[2]) {
		r.Stats.FastPath++
	}

	r.src.SetTriangle(coords, vary)
	if clip.Triangle(&r.src, &r.dst) == 0 {
		r.Stats.Clipped++
		return
	}

	for i := range r.dst.Triangles() {
		a, b, c := r.dst.Fan(i)
		r.fill(a, b, c)
	}
}

// fill scan converts triangle (a, b, c) of the clipped polygon.
func (r *Rasterizer[V]) fill(a, b, c int) {
	f := r.frame
	qa, va := r.dst.Vertex(a)
	qb, vb := r.dst.Vertex(b)
	qc, vc := r.dst.Vertex(c)
	na, nb, nc := qa.PerspectiveDivide(), qb.PerspectiveDivide(), qc.PerspectiveDivide()

	if !r.DoubleSided && IsBackFacing(na, nb, nc) {
		r.Stats.BackFacing++
		return
	}

	sa := Viewport(f.Width, f.Height, na)
	sb := Viewport(f.Width, f.Height, nb)
	sc := Viewport(f.Width, f.Height, nc)
	pa, pb, pc := sa.XY(), sb.XY(), sc.XY()

	// Vertices cut within rounding of the eye can divide to an infinite
	// position and a NaN area.
	if area := pb.Sub(pa).Cross(pc.Sub(pa)); area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		r.Stats.Degenerate++
		return
	}

	box := BoundingBox(pa, pb, pc, f.Width, f.Height)
	if box.Empty() {
		r.Stats.EmptyBoxes++
		return
	}

	ca, cb, cc := va.Fragment(), vb.Fragment(), vc.Fragment()
	depth := r.DepthTest && f.HasDepth()

	for y := box.MinY; y <= box.MaxY; y++ {
		row := y * f.Width
		for x := box.MinX; x <= box.MaxX; x++ {
			w := Weights(pa, pb, pc, math3d.V2(float64(x)+0.5, float64(y)+0.5))
			if w.X < 0 || w.Y < 0 || w.Z < 0 {
				continue
			}

			if depth {
				z := float32(InterpolateDepth(sa.Z, sb.Z, sc.Z, w))
				if z >= f.Depth[row+x] {
					continue
				}
				f.Depth[row+x] = z
			}

			// Relative to ca, so flat triangles keep their exact color.
			col := ca.Add(cb.Sub(ca).Scale(float32(w.Y))).Add(cc.Sub(ca).Scale(float32(w.Z)))
			f.Color[row+x] = col.Pack()
			r.Stats.Fragments++
		}
	}
}

// DrawMesh transforms every face of mesh by mvp and draws it, asking shade
// for each vertex's varying. Meshes that report bounds are skipped outright
// when the bounds fall outside the clip volume.
func (r *Rasterizer[V]) DrawMesh(mesh MeshRenderer, mvp math3d.Mat4, shade ShadeFunc[V]) {
	if r.cullMesh(mesh, mvp) {
		return
	}

	before := r.Stats
	var coords [3]math3d.Vec4
	var vary [3]V
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		for k, vi := range face {
			pos, normal, uv := mesh.GetVertex(vi)
			coords[k] = mvp.MulVec4(math3d.V4FromV3(pos, 1))
			vary[k] = shade(vi, pos, normal, uv)
		}
		r.DrawTriangle(coords, vary)
	}

	Logger().Debug("mesh drawn",
		"triangles", r.Stats.Triangles-before.Triangles,
		"fast_path", r.Stats.FastPath-before.FastPath,
		"clipped", r.Stats.Clipped-before.Clipped,
		"back_facing", r.Stats.BackFacing-before.BackFacing,
		"fragments", r.Stats.Fragments-before.Fragments,
	)
}

// cullMesh reports whether mesh can be skipped entirely.
func (r *Rasterizer[V]) cullMesh(mesh MeshRenderer, mvp math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}

	r.Stats.MeshesTested++
	lo, hi := bounded.GetBounds()
	if NewAABB(lo, hi).Outside(mvp) {
		r.Stats.MeshesCulled++
		Logger().Debug("mesh culled", "min", lo, "max", hi)
		return true
	}
	return false
}

// Intensity is the ambient plus diffuse term used for per-vertex lighting.
func Intensity(normal, lightDir math3d.Vec3) float32 {
	d := math.Max(0, normal.Normalize().Dot(lightDir.Normalize()))
	return float32(0.3 + 0.7*d)
}
