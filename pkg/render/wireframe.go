package render

import (
	"math"

	"github.com/taigrr/swr/pkg/clip"
	"github.com/taigrr/swr/pkg/math3d"
)

// Wireframe draws the outlines of clipped polygons. Edges created by the
// clipper are drawn too, which makes it an x-ray view of the clip stage.
type Wireframe struct {
	frame    *Frame
	src, dst clip.Polygon[Color]
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(frame *Frame) *Wireframe {
	return &Wireframe{frame: frame}
}

// SetFrame retargets the renderer.
func (w *Wireframe) SetFrame(f *Frame) {
	w.frame = f
}

// guardBand bounds outline vertices in NDC.
const guardBand = 2

// DrawTriangle clips a clip-space triangle and outlines the result.
// It returns the number of polygon vertices drawn.
func (w *Wireframe) DrawTriangle(coords [3]math3d.Vec4, color Color) int {
	w.src.SetTriangle(coords, [3]Color{color, color, color})
	clip.Triangle(&w.src, &w.dst)
	n := w.dst.Len()

	var px, py [clip.MaxVertices]int
	var colors [clip.MaxVertices]Color
	for i := range n {
		coord, c := w.dst.Vertex(i)
		ndc := coord.PerspectiveDivide()
		if math.IsNaN(ndc.X) || math.IsNaN(ndc.Y) {
			return 0
		}
		// A point cut within rounding of the eye can divide to far outside
		// the volume. Clamping keeps its edges a bounded length.
		ndc.X = min(max(ndc.X, -guardBand), guardBand)
		ndc.Y = min(max(ndc.Y, -guardBand), guardBand)
		s := Viewport(w.frame.Width, w.frame.Height, ndc)
		px[i] = int(math.Floor(s.X))
		py[i] = int(math.Floor(s.Y))
		colors[i] = c
	}
	for i := range n {
		j := (i + 1) % n
		w.frame.DrawLine(px[i], py[i], px[j], py[j], colors[i])
	}
	return n
}

// DrawMesh outlines every face of mesh transformed by mvp.
func (w *Wireframe) DrawMesh(mesh MeshRenderer, mvp math3d.Mat4, color Color) {
	var coords [3]math3d.Vec4
	for i := range mesh.TriangleCount() {
		for k, vi := range mesh.GetFace(i) {
			pos, _, _ := mesh.GetVertex(vi)
			coords[k] = mvp.MulVec4(math3d.V4FromV3(pos, 1))
		}
		w.DrawTriangle(coords, color)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(mvp math3d.Mat4, length float64) {
	origin := math3d.Zero3()
	w.drawSegment(mvp, origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.drawSegment(mvp, origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.drawSegment(mvp, origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// drawSegment draws a 3D line as a degenerate triangle so it goes through
// the same clipper as everything else.
func (w *Wireframe) drawSegment(mvp math3d.Mat4, a, b math3d.Vec3, color Color) {
	ca := mvp.MulVec4(math3d.V4FromV3(a, 1))
	cb := mvp.MulVec4(math3d.V4FromV3(b, 1))
	w.DrawTriangle([3]math3d.Vec4{ca, cb, cb}, color)
}
