package clip

import (
	"fmt"

	"github.com/taigrr/swr/pkg/math3d"
)

// MaxVertices bounds the clipped polygon: the 3 input vertices plus at most
// one extra vertex for each of the 7 planes.
const MaxVertices = 10

// Polygon is a fixed-capacity convex polygon. Coords and Varyings are
// parallel: slot i of each belongs to vertex i. Only the first N slots are
// meaningful.
type Polygon[V Varying[V]] struct {
	Coords   [MaxVertices]math3d.Vec4
	Varyings [MaxVertices]V
	N        int
}

// SetTriangle loads a triangle into the first three slots.
func (p *Polygon[V]) SetTriangle(coords [3]math3d.Vec4, varyings [3]V) {
	p.Coords[0], p.Coords[1], p.Coords[2] = coords[0], coords[1], coords[2]
	p.Varyings[0], p.Varyings[1], p.Varyings[2] = varyings[0], varyings[1], varyings[2]
	p.N = 3
}

// Len returns the number of vertices.
func (p *Polygon[V]) Len() int {
	return p.N
}

// Vertex returns vertex i.
func (p *Polygon[V]) Vertex(i int) (math3d.Vec4, V) {
	return p.Coords[i], p.Varyings[i]
}

// Triangles returns how many triangles Fan yields for this polygon.
func (p *Polygon[V]) Triangles() int {
	if p.N < 3 {
		return 0
	}
	return p.N - 2
}

// Fan returns the vertex indices of triangle i of a fan around vertex 0.
// The polygon is convex, so the fan covers it exactly and keeps its winding.
func (p *Polygon[V]) Fan(i int) (a, b, c int) {
	return 0, i + 1, i + 2
}

// push appends a vertex. Overflowing is a bug in the clipper, not in the input.
func (p *Polygon[V]) push(coord math3d.Vec4, varying V) {
	if p.N >= MaxVertices {
		panic(fmt.Sprintf("clip: polygon overflow (%d vertices)", p.N+1))
	}
	p.Coords[p.N] = coord
	p.Varyings[p.N] = varying
	p.N++
}
