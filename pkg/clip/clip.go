package clip

import (
	"fmt"

	"github.com/taigrr/swr/pkg/math3d"
)

// ClipPlane clips src against a single plane and writes the result to dst,
// returning the new vertex count.
//
// Each edge prev->curr of src (the last vertex precedes vertex 0) emits the
// intersection point when the edge crosses the plane, then curr when curr is
// inside. Emission follows traversal order, so winding is preserved.
//
// Intersection points are lerped, so they sit on the plane only up to
// rounding. Points cut near the eye can therefore end up a few ulps below
// w = Epsilon, or even at w <= 0, after the w plane itself or a later plane
// cuts them. Callers dividing by w must tolerate a zero or tiny result.
//
// src must hold between 3 and MaxVertices vertices; anything else panics.
func ClipPlane[V Varying[V]](p Plane, src, dst *Polygon[V]) int {
	n := src.N
	if n < 3 || n > MaxVertices {
		panic(fmt.Sprintf("clip: plane %s: vertex count %d outside [3, %d]", p, n, MaxVertices))
	}

	dst.N = 0
	prev := n - 1
	prevInside := p.Inside(src.Coords[prev])

	for curr := range n {
		currInside := p.Inside(src.Coords[curr])

		if prevInside != currInside {
			t := p.IntersectRatio(src.Coords[prev], src.Coords[curr])
			dst.push(
				src.Coords[prev].Lerp(src.Coords[curr], t),
				src.Varyings[prev].Lerp(src.Varyings[curr], t),
			)
		}
		if currInside {
			dst.push(src.Coords[curr], src.Varyings[curr])
		}

		prev, prevInside = curr, currInside
	}

	return dst.N
}

// Visible reports whether v is inside the canonical view volume,
// |x|, |y|, |z| <= w, which makes it inside every plane at once. Boundary
// points are visible. The w >= Epsilon term only matters for points within
// Epsilon of the eye, which PlaneW rejects.
func Visible(v math3d.Vec4) bool {
	a := v.Abs()
	return a.X <= v.W && a.Y <= v.W && a.Z <= v.W && v.W >= Epsilon
}

// Triangle clips the triangle held in src against the whole view volume and
// returns the vertex count of the result, which is always left in dst.
//
// The result is 0 when nothing of the triangle is visible, otherwise 3 to
// MaxVertices. src is used as scratch and is clobbered.
//
// src must hold exactly 3 vertices; anything else panics.
func Triangle[V Varying[V]](src, dst *Polygon[V]) int {
	if src.N != 3 {
		panic(fmt.Sprintf("clip: triangle has %d vertices", src.N))
	}

	if Visible(src.Coords[0]) && Visible(src.Coords[1]) && Visible(src.Coords[2]) {
		*dst = *src
		return 3
	}

	return clipChain(src, dst)
}

// clipChain runs every plane in order, swapping the roles of the two buffers
// after each one. Planes has an odd length, so the last plane writes to dst.
func clipChain[V Varying[V]](src, dst *Polygon[V]) int {
	in, out := src, dst
	for _, p := range Planes {
		if ClipPlane(p, in, out) < 3 {
			dst.N = 0
			return 0
		}
		in, out = out, in
	}
	return dst.N
}
