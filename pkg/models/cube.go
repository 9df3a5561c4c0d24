package models

import "github.com/taigrr/swr/pkg/math3d"

// cubeSides lists each side's outward normal and two in-plane axes with
// u x v = n, so corners walked (-u-v, +u-v, +u+v, -u+v) wind
// counter-clockwise seen from outside.
var cubeSides = [6]struct{ n, u, v math3d.Vec3 }{
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
}

// Cube returns an axis-aligned cube of edge length size centered on the
// origin. Each side has its own four vertices so normals stay flat, and
// its own material so sides can be told apart.
func Cube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	m.Vertices = make([]MeshVertex, 0, 24)
	m.Faces = make([]Face, 0, 12)
	m.Materials = []Material{
		{Name: "+x", BaseColor: [4]float64{0.9, 0.3, 0.3, 1}, Roughness: 1},
		{Name: "-x", BaseColor: [4]float64{0.3, 0.9, 0.9, 1}, Roughness: 1},
		{Name: "+y", BaseColor: [4]float64{0.3, 0.9, 0.3, 1}, Roughness: 1},
		{Name: "-y", BaseColor: [4]float64{0.9, 0.3, 0.9, 1}, Roughness: 1},
		{Name: "+z", BaseColor: [4]float64{0.3, 0.3, 0.9, 1}, Roughness: 1},
		{Name: "-z", BaseColor: [4]float64{0.9, 0.9, 0.3, 1}, Roughness: 1},
	}

	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for side, s := range cubeSides {
		base := len(m.Vertices)
		for _, c := range corners {
			pos := s.n.Add(s.u.Scale(c[0])).Add(s.v.Scale(c[1])).Scale(h)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: pos,
				Normal:   s.n,
				UV:       math3d.V2((c[0]+1)/2, (c[1]+1)/2),
			})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}, Material: side},
			Face{V: [3]int{base, base + 2, base + 3}, Material: side},
		)
	}

	m.CalculateBounds()
	return m
}
