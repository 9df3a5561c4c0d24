package models

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/taigrr/swr/pkg/math3d"
)

func triangleMesh() *Mesh {
	m := NewMesh("tri")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(2, 0, 0)},
		{Position: math3d.V3(0, 4, 0)},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}, Material: -1}}
	m.CalculateBounds()
	return m
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		face    Face
		wantErr bool
	}{
		{"ok", Face{V: [3]int{0, 1, 2}, Material: -1}, false},
		{"vertex past end", Face{V: [3]int{0, 1, 3}, Material: -1}, true},
		{"negative vertex", Face{V: [3]int{-1, 1, 2}, Material: -1}, true},
		{"missing material", Face{V: [3]int{0, 1, 2}, Material: 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := triangleMesh()
			m.Faces[0] = tc.face
			if err := m.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestMeshNormals(t *testing.T) {
	m := triangleMesh()
	if m.HasNormals() {
		t.Fatal("fresh mesh reports normals")
	}

	m.CalculateNormals()
	for i := range m.Vertices {
		if n := m.Vertices[i].Normal; n != math3d.V3(0, 0, 1) {
			t.Errorf("vertex %d normal = %v, want (0, 0, 1)", i, n)
		}
	}

	m.CalculateSmoothNormals()
	if !m.HasNormals() {
		t.Error("HasNormals false after CalculateSmoothNormals")
	}
}

func TestMeshFit(t *testing.T) {
	m := triangleMesh()
	m.Fit(2)

	size := m.Size()
	if !scalar.EqualWithinAbs(size.Y, 2, 1e-12) || !scalar.EqualWithinAbs(size.X, 1, 1e-12) {
		t.Errorf("size = %v, want (1, 2, 0)", size)
	}
	c := m.Center()
	if c.Len() > 1e-12 {
		t.Errorf("center = %v, want origin", c)
	}
}

func TestMeshClone(t *testing.T) {
	m := triangleMesh()
	m.Materials = []Material{{Name: "mat"}}
	m.Faces[0].Material = 0

	clone := m.Clone()
	clone.Vertices[0].Position = math3d.V3(9, 9, 9)
	clone.Materials[0].Name = "modified"
	clone.Faces[0].Material = -1

	if m.Vertices[0].Position == clone.Vertices[0].Position {
		t.Error("clone shares vertices")
	}
	if m.Materials[0].Name != "mat" || m.Faces[0].Material != 0 {
		t.Error("clone shares materials or faces")
	}
}

func TestMeshMaterials(t *testing.T) {
	m := NewMesh("test")
	m.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	m.Vertices = make([]MeshVertex, 7)
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
	}

	if m.MaterialCount() != 2 {
		t.Errorf("MaterialCount = %d, want 2", m.MaterialCount())
	}
	if m.GetMaterial(-1) != nil || m.GetMaterial(2) != nil {
		t.Error("GetMaterial out of range returned a material")
	}
	if got := m.GetFaceMaterial(1); got != 1 {
		t.Errorf("GetFaceMaterial(1) = %d, want 1", got)
	}
	if got := m.GetMaterial(m.GetFaceMaterial(1)); got == nil || got.Name != "green" {
		t.Errorf("material of face 1 = %+v, want green", got)
	}

	m.Faces[1].Material = -1
	if got := m.GetMaterial(m.GetFaceMaterial(1)); got != nil {
		t.Errorf("material of face without one = %+v, want nil", got)
	}

	want := []int{0, 0, 0, -1, -1, -1, -1}
	got := m.VertexMaterials()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("VertexMaterials = %v, want %v", got, want)
		}
	}
}

func TestCube(t *testing.T) {
	m := Cube(2)

	if m.VertexCount() != 24 || m.TriangleCount() != 12 {
		t.Fatalf("cube has %d vertices, %d faces; want 24, 12", m.VertexCount(), m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.BoundsMin != math3d.V3(-1, -1, -1) || m.BoundsMax != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}

	// Every face winds counter-clockwise seen from outside: its geometric
	// normal points the same way as the stored vertex normal.
	for i, f := range m.Faces {
		geometric := m.faceNormal(f)
		stored := m.Vertices[f.V[0]].Normal
		if geometric.Dot(stored) <= 0 {
			t.Errorf("face %d winds inward", i)
		}
		if f.Material != i/2 {
			t.Errorf("face %d material = %d, want %d", i, f.Material, i/2)
		}
	}
}
