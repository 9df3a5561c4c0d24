// Package window presents software-rendered frames in a desktop window.
//
// The window owns the frame. Every redraw it hands the frame to a State,
// copies the result into an ebiten image and draws that to the screen.
// Resizing the window reallocates the frame at the new size.
package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/swr/pkg/render"
)

// ErrInvalidConfig is returned by Run for configurations that cannot open a
// window.
var ErrInvalidConfig = errors.New("window: invalid config")

// ErrQuit can be returned from Updater.Update to close the window. Run then
// returns nil.
var ErrQuit = ebiten.Termination

// Config describes the window to open.
type Config struct {
	Title     string
	Width     int  // initial width in pixels
	Height    int  // initial height in pixels
	DepthTest bool // allocate a depth buffer alongside the color buffer
}

// DefaultConfig returns a 640x480 window with depth testing.
func DefaultConfig() Config {
	return Config{
		Title:     "SWR Window",
		Width:     640,
		Height:    480,
		DepthTest: true,
	}
}

// Validate reports whether c can open a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

// State draws one frame per redraw.
type State interface {
	Render(f *render.Frame)
}

// Updater is an optional State extension called once per tick before
// drawing. Returning ErrQuit closes the window; any other error aborts Run.
type Updater interface {
	Update() error
}

// StateFunc adapts a plain function to State.
type StateFunc func(f *render.Frame)

// Render calls fn(f).
func (fn StateFunc) Render(f *render.Frame) {
	fn(f)
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config, state State) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	g := newGame(cfg, state)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	render.Logger().Debug("window opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// game adapts a State to ebiten.Game.
type game struct {
	cfg    Config
	state  State
	frame  *render.Frame
	pixels []byte // top-down RGBA copy of frame
	img    *ebiten.Image
}

func newGame(cfg Config, state State) *game {
	g := &game{cfg: cfg, state: state}
	g.resize(cfg.Width, cfg.Height)
	return g
}

func (g *game) Update() error {
	if u, ok := g.state.(Updater); ok {
		return u.Update()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderPixels()
	if g.img == nil {
		g.img = ebiten.NewImage(g.frame.Width, g.frame.Height)
	}
	// Frames are cleared opaque, so straight and premultiplied alpha agree.
	g.img.WritePixels(g.pixels)
	screen.DrawImage(g.img, nil)
}

// Layout tracks the window size one to one, so a resize reallocates the
// frame instead of scaling it.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.frame.Width, g.frame.Height
}

// resize reallocates the frame when the size changes and reports whether it
// did. Sizes below one pixel are raised to one.
func (g *game) resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	if g.frame != nil && g.frame.Width == width && g.frame.Height == height {
		return false
	}

	g.frame = render.AllocFrame(width, height, g.cfg.DepthTest)
	g.pixels = make([]byte, 4*width*height)
	if g.img != nil {
		g.img.Deallocate()
		g.img = nil
	}
	render.Logger().Debug("window resized", "width", width, "height", height)
	return true
}

// renderPixels lets the state draw and copies the frame out top-down.
func (g *game) renderPixels() {
	g.state.Render(g.frame)
	g.frame.WriteRGBA(g.pixels)
}
