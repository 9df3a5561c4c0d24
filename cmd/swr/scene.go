package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/swr/pkg/math3d"
	"github.com/taigrr/swr/pkg/models"
	"github.com/taigrr/swr/pkg/render"
)

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewRotationAxis creates an axis whose velocity decays critically damped.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and springs velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds the model's pitch, yaw and roll.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	r := &RotationState{fps: fps}
	r.Reset()
	return r
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// Model returns the rotation as a model matrix.
func (r *RotationState) Model() math3d.Mat4 {
	return math3d.RotateX(r.Pitch.Position).
		Mul(math3d.RotateY(r.Yaw.Position)).
		Mul(math3d.RotateZ(r.Roll.Position))
}

// RenderMode controls how the mesh is drawn
type RenderMode int

const (
	RenderModeShaded    RenderMode = iota // Gouraud shaded vertex colors
	RenderModeWireframe                   // Clipped outlines only (x-ray)
)

const (
	minCameraZ     = 0.5
	maxCameraZ     = 20.0
	defaultCameraZ = 4.0
)

// Scene is everything needed to draw one frame: the mesh, its colors, the
// camera and the drawing state. The terminal, window and snapshot front ends
// all render through it.
type Scene struct {
	Name     string
	Mesh     *models.Mesh
	Texture  *render.Texture // nil draws material colors only
	Textured bool
	Mode     RenderMode
	LightDir math3d.Vec3
	ShowAxes bool
	Spin     float64 // yaw impulse per tick, for unattended rendering

	Camera   *render.Camera
	CameraZ  float64
	Rotation *RotationState

	bg         render.Color
	baseColors []render.Color // per vertex, from materials
	raster     *render.Rasterizer[render.Color]
	wire       *render.Wireframe
}

// NewScene frames mesh in front of a default camera. The mesh is moved to
// the origin and scaled to fit a 2 unit cube.
func NewScene(name string, mesh *models.Mesh, fps int, near float64, bg render.Color) *Scene {
	mesh.Fit(2)

	s := &Scene{
		Name:     name,
		Mesh:     mesh,
		Textured: true,
		LightDir: math3d.V3(0.5, 1, 0.3).Normalize(),
		Camera:   render.NewCamera(),
		CameraZ:  defaultCameraZ,
		Rotation: NewRotationState(fps),
		bg:       bg,
		raster:   render.NewRasterizer[render.Color](nil),
		wire:     render.NewWireframe(nil),
	}
	s.Camera.SetFOV(math.Pi / 3)
	s.Camera.SetClipPlanes(near, 100)
	s.SetCameraZ(defaultCameraZ)

	mats := mesh.VertexMaterials()
	s.baseColors = make([]render.Color, len(mats))
	for i, mi := range mats {
		c := models.DefaultMaterial.BaseColor
		if mat := mesh.GetMaterial(mi); mat != nil {
			c = mat.BaseColor
		}
		s.baseColors[i] = render.Color{R: float32(c[0]), G: float32(c[1]), B: float32(c[2]), A: float32(c[3])}
	}
	return s
}

// SetCameraZ moves the camera along z, looking at the origin. Any pan or
// look offset is dropped.
func (s *Scene) SetCameraZ(z float64) {
	s.CameraZ = min(max(z, minCameraZ), maxCameraZ)
	s.Camera.SetPosition(math3d.V3(0, 0, s.CameraZ))
	s.Camera.LookAt(math3d.Zero3())
}

// Pan slides the camera along its own right and up axes.
func (s *Scene) Pan(right, up float64) {
	s.Camera.MoveRight(right)
	s.Camera.MoveUp(up)
}

// Dolly moves the camera along its view direction. Unlike SetCameraZ it
// keeps the current pan and look direction.
func (s *Scene) Dolly(distance float64) {
	s.Camera.MoveForward(distance)
}

// Look turns the camera in place.
func (s *Scene) Look(pitch, yaw float64) {
	s.Camera.Rotate(pitch, yaw, 0)
}

// Reset restores the initial view.
func (s *Scene) Reset() {
	s.Rotation.Reset()
	s.SetCameraZ(defaultCameraZ)
}

// Stats returns the rasterizer statistics of the last frame.
func (s *Scene) Stats() render.Stats {
	return s.raster.Stats
}

// Update advances the spring animation by one tick. It implements
// window.Updater.
func (s *Scene) Update() error {
	if s.Spin != 0 {
		s.Rotation.ApplyImpulse(0, s.Spin, 0)
	}
	s.Rotation.Update()
	return nil
}

// Render draws the scene into f. It implements window.State.
func (s *Scene) Render(f *render.Frame) {
	if s.raster.Frame() != f {
		s.raster.SetFrame(f)
		s.wire.SetFrame(f)
		s.Camera.SetAspectRatio(float64(f.Width) / float64(f.Height))
	}

	f.Clear(s.bg, 1)
	s.raster.ResetStats()

	model := s.Rotation.Model()
	mvp := s.Camera.MVP(model)

	switch s.Mode {
	case RenderModeWireframe:
		s.wire.DrawMesh(s.Mesh, mvp, render.RGB(0, 255, 128))
	default:
		s.raster.DrawMesh(s.Mesh, mvp, s.shader(model))
	}
	if s.ShowAxes {
		s.wire.DrawAxes(s.Camera.ViewProjectionMatrix(), 1.5)
	}

	st := s.raster.Stats
	render.Logger().Debug("frame",
		"width", f.Width,
		"height", f.Height,
		"triangles", st.Triangles,
		"fast_path", st.FastPath,
		"clipped", st.Clipped,
		"back_facing", st.BackFacing,
		"degenerate", st.Degenerate,
		"fragments", st.Fragments,
		"meshes_culled", st.MeshesCulled,
	)
}

// shader lights each vertex with its world-space normal.
func (s *Scene) shader(model math3d.Mat4) render.ShadeFunc[render.Color] {
	textured := s.Textured && s.Texture != nil
	return func(i int, _, normal math3d.Vec3, uv math3d.Vec2) render.Color {
		base := s.baseColors[i]
		if textured {
			base = s.Texture.Sample(uv.X, uv.Y).Modulate(base)
		}
		return base.Shade(render.Intensity(model.MulVec3Dir(normal), s.LightDir))
	}
}

// ScreenToLightDir maps a cell position to a light direction on the
// hemisphere facing the viewer.
func ScreenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}
	nz := math.Sqrt(1 - lenSq)

	return math3d.V3(nx, -ny, nz).Normalize()
}
