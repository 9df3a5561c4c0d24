package main

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/swr/pkg/math3d"
	"github.com/taigrr/swr/pkg/render"
)

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"30,30,40", render.RGB(30, 30, 40), false},
		{"255,0,0", render.ColorRed, false},
		{"1,2", render.Color{}, true},
		{"0,0,300", render.Color{}, true},
		{"red", render.Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseRGB(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseRGB(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errBadFlag) {
					t.Errorf("error %v does not wrap errBadFlag", err)
				}
				return
			}
			if got != tc.want {
				t.Errorf("parseRGB(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"640x480", 640, 480, false},
		{"1x1", 1, 1, false},
		{"0x480", 0, 0, true},
		{"640", 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			w, h, err := parseSize(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if w != tc.w || h != tc.h {
				t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tc.in, w, h, tc.w, tc.h)
			}
		})
	}
}

func TestLoadModel(t *testing.T) {
	mesh, tex, err := loadModel("")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.TriangleCount() != 12 || tex != nil {
		t.Errorf("default model: %d triangles, texture %v; want the cube", mesh.TriangleCount(), tex)
	}

	if _, _, err := loadModel("model.obj"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func newCubeScene() *Scene {
	mesh, _, _ := loadModel("")
	return NewScene("cube", mesh, 60, 0.1, render.ColorBlack)
}

func TestSceneRender(t *testing.T) {
	tests := []struct {
		name string
		mode RenderMode
	}{
		{"shaded", RenderModeShaded},
		{"wireframe", RenderModeWireframe},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newCubeScene()
			s.Mode = tc.mode
			s.Rotation.Pitch.Position = 0.5
			s.Rotation.Yaw.Position = 0.6

			f := render.AllocFrame(64, 48, true)
			s.Render(f)

			drawn := 0
			for y := range f.Height {
				for x := range f.Width {
					if f.Pixel(x, y) != render.ColorBlack {
						drawn++
					}
				}
			}
			if drawn == 0 {
				t.Fatal("nothing drawn")
			}
			if drawn == f.Width*f.Height {
				t.Fatal("background fully covered")
			}

			st := s.Stats()
			if tc.mode == RenderModeShaded {
				// A convex solid shows at most half its faces.
				if st.Triangles != 12 || st.BackFacing < 6 || st.Fragments == 0 {
					t.Errorf("stats = %+v", st)
				}
			}
		})
	}
}

func TestSceneNearPlaneClips(t *testing.T) {
	s := newCubeScene()
	// Camera inside the cube, past the zoom limit: the side faces cross the
	// near plane and the far face overflows the side planes.
	s.Camera.SetPosition(math3d.V3(0, 0, 0.2))
	s.raster.DoubleSided = true

	f := render.AllocFrame(32, 32, true)
	s.Render(f)

	st := s.Stats()
	if st.FastPath == st.Triangles {
		t.Errorf("every triangle took the fast path: %+v", st)
	}
	if st.Fragments == 0 {
		t.Errorf("nothing drawn from inside the cube: %+v", st)
	}
}

func TestSetCameraZClamps(t *testing.T) {
	s := newCubeScene()
	s.SetCameraZ(100)
	if s.CameraZ != maxCameraZ {
		t.Errorf("CameraZ = %v, want %v", s.CameraZ, maxCameraZ)
	}
	s.SetCameraZ(-1)
	if s.CameraZ != minCameraZ {
		t.Errorf("CameraZ = %v, want %v", s.CameraZ, minCameraZ)
	}
}

func TestSceneCameraControls(t *testing.T) {
	home := math3d.V3(0, 0, defaultCameraZ)
	tests := []struct {
		name    string
		move    func(s *Scene)
		wantPos math3d.Vec3
		wantYaw float64
	}{
		{"pan right", func(s *Scene) { s.Pan(1, 0) }, math3d.V3(1, 0, defaultCameraZ), 0},
		{"pan up", func(s *Scene) { s.Pan(0, 1) }, math3d.V3(0, 1, defaultCameraZ), 0},
		{"dolly in", func(s *Scene) { s.Dolly(1) }, math3d.V3(0, 0, defaultCameraZ-1), 0},
		{"look left", func(s *Scene) { s.Look(0, 0.25) }, home, 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newCubeScene()
			tc.move(s)

			got := s.Camera.Position
			if got.Sub(tc.wantPos).Len() > 1e-12 {
				t.Errorf("position = %v, want %v", got, tc.wantPos)
			}
			if math.Abs(s.Camera.Yaw-tc.wantYaw) > 1e-12 {
				t.Errorf("yaw = %v, want %v", s.Camera.Yaw, tc.wantYaw)
			}

			s.Reset()
			if s.Camera.Position != home || s.Camera.Yaw != 0 || s.Camera.Pitch != 0 {
				t.Errorf("after Reset camera at %v yaw %v pitch %v", s.Camera.Position, s.Camera.Yaw, s.Camera.Pitch)
			}
		})
	}
}

func TestScenePanMovesImage(t *testing.T) {
	s := newCubeScene()
	f := render.AllocFrame(64, 64, true)

	centroid := func() float64 {
		s.Render(f)
		sum, n := 0, 0
		for y := range f.Height {
			for x := range f.Width {
				if f.Pixel(x, y) != render.ColorBlack {
					sum += x
					n++
				}
			}
		}
		if n == 0 {
			t.Fatal("nothing drawn")
		}
		return float64(sum) / float64(n)
	}

	before := centroid()
	// Moving the camera right shifts the cube left on screen.
	s.Pan(0.5, 0)
	if after := centroid(); after >= before {
		t.Errorf("centroid x %v -> %v, want it to move left", before, after)
	}
}

func TestRenderSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.png")
	if err := renderSnapshot(newCubeScene(), 40, 30, path); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("snapshot is %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestRotationDecays(t *testing.T) {
	r := NewRotationState(60)
	r.ApplyImpulse(0, 1, 0)
	for range 600 {
		r.Update()
	}
	if r.Yaw.Velocity > 1e-3 || r.Yaw.Position <= 0 {
		t.Errorf("yaw = %+v, want settled with positive position", r.Yaw)
	}
}

func TestScreenToLightDir(t *testing.T) {
	if d := ScreenToLightDir(50, 50, 100, 100); d != math3d.V3(0, 0, 1) {
		t.Errorf("center = %v, want (0, 0, 1)", d)
	}
	// Top of the screen lights from above.
	if d := ScreenToLightDir(50, 0, 100, 100); d.Y <= 0.99 {
		t.Errorf("top = %v, want +y", d)
	}
}
