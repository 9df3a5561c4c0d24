package render

import (
	"testing"

	"github.com/taigrr/swr/pkg/clip"
	"github.com/taigrr/swr/pkg/math3d"
)

func TestWireframeDrawTriangle(t *testing.T) {
	tests := []struct {
		name     string
		coords   [3]math3d.Vec4
		vertices int
	}{
		{"inside", tri(0, -0.5, -0.5, 0.5, -0.5, 0, 0.5), 3},
		{"cut by +x", tri(0, -0.5, -0.5, 2, 0, -0.5, 0.5), 4},
		{"off screen", tri(0, 2, 2, 3, 2, 2, 3), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := AllocFrame(32, 32, false)
			w := NewWireframe(f)
			if n := w.DrawTriangle(tc.coords, ColorGreen); n != tc.vertices {
				t.Errorf("outlined %d vertices, want %d", n, tc.vertices)
			}

			drawn := countColor(f, ColorGreen)
			if tc.vertices == 0 && drawn != 0 {
				t.Errorf("%d pixels drawn for a clipped triangle", drawn)
			}
			if tc.vertices > 0 && drawn == 0 {
				t.Error("nothing drawn")
			}
		})
	}
}

func TestWireframeOutlineOnly(t *testing.T) {
	f := AllocFrame(32, 32, false)
	NewWireframe(f).DrawTriangle(tri(0, -0.8, -0.8, 0.8, -0.8, 0, 0.8), ColorWhite)

	// Interior stays empty.
	if f.Pixel(16, 12) != (Color{}) {
		t.Errorf("interior pixel = %v", f.Pixel(16, 12))
	}
	// Bottom edge runs along row 3.
	if f.Pixel(16, 3) != ColorWhite {
		t.Errorf("bottom edge pixel = %v", f.Pixel(16, 3))
	}
}

func TestWireframeDrawMeshAndAxes(t *testing.T) {
	f := AllocFrame(20, 20, false)
	w := NewWireframe(f)
	mesh := quadMesh(0)
	w.DrawMesh(&mesh, math3d.Identity(), ColorCyan)
	if countColor(f, ColorCyan) == 0 {
		t.Error("mesh outline not drawn")
	}

	g := AllocFrame(20, 20, false)
	w.SetFrame(g)
	w.DrawAxes(math3d.Identity(), 0.9)
	if countColor(g, ColorRed) == 0 || countColor(g, ColorGreen) == 0 {
		t.Error("x and y axes not drawn")
	}
}

func TestWireframeNearEye(t *testing.T) {
	f := AllocFrame(32, 32, false)
	w := NewWireframe(f)
	for i, coords := range nearEyeTriangles() {
		if n := w.DrawTriangle(coords, ColorWhite); n != 0 && (n < 3 || n > clip.MaxVertices) {
			t.Fatalf("triangle %d: outline with %d vertices", i, n)
		}
	}
}
