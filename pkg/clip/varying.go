// Package clip clips clip-space triangles against the view volume.
//
// A triangle enters as three homogeneous vertices plus one varying per vertex
// and leaves as a convex polygon of 0 or 3..MaxVertices vertices. All work
// happens in two caller-owned fixed-size polygons, so clipping never
// allocates.
//
// Interpolation is done on the homogeneous coordinates before the perspective
// divide, which keeps varyings perspective-correct once the rasterizer divides
// by w.
package clip

// Varying is the per-vertex attribute bundle carried through clipping.
// Lerp must return from when t == 0 and to when t == 1.
//
// The math3d vector types satisfy it as-is.
type Varying[V any] interface {
	Lerp(to V, t float64) V
}
