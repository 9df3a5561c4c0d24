// swr - software rasterizer viewer
// Draws a glTF/GLB model (or a built-in cube) with the CPU clipper and
// rasterizer, in the terminal, in a window, or into an image file.
//
// Controls (terminal):
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode (x-ray of the clipper output)
//	B           - Toggle back-face culling
//	G           - Toggle world axes
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	?           - Toggle HUD overlay (FPS, filename, poly count, clip stats)
//	+/-         - Adjust zoom (recenters the camera)
//	Shift+Arrows - Pan the camera
//	PgUp/PgDn   - Dolly the camera in/out
//	[ / ]       - Turn the camera left/right
//	Esc         - Quit (or cancel light mode)
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/swr/pkg/models"
	"github.com/taigrr/swr/pkg/render"
	"github.com/taigrr/swr/pkg/window"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	useWindow   = flag.Bool("window", false, "Draw in a desktop window instead of the terminal")
	snapshot    = flag.String("snapshot", "", "Render one frame to this .png or .bmp file and exit")
	size        = flag.String("size", "640x480", "Window and snapshot size (WxH)")
	nearPlane   = flag.Float64("near", 0.1, "Near clipping plane distance")
	verbose     = flag.Bool("v", false, "Log per-frame statistics to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "swr - software rasterizer viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: swr [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a cube is drawn.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom (recenters the camera)\n")
		fmt.Fprintf(os.Stderr, "  Shift+Arrow - Pan camera\n")
		fmt.Fprintf(os.Stderr, "  PgUp/PgDn   - Dolly camera\n")
		fmt.Fprintf(os.Stderr, "  [ / ]       - Turn camera\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle back-face culling\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle axes\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light (mouse to aim, click to set)\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errBadFlag = errors.New("bad flag value")

// parseRGB parses "R,G,B" with each channel in 0..255.
func parseRGB(s string) (render.Color, error) {
	var r, g, b int
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return render.Color{}, fmt.Errorf("%w: color %q, want R,G,B", errBadFlag, s)
	}
	for _, c := range []int{r, g, b} {
		if c < 0 || c > 255 {
			return render.Color{}, fmt.Errorf("%w: color %q, channels must be 0-255", errBadFlag, s)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}

// parseSize parses "WxH" with both sides positive.
func parseSize(s string) (width, height int, err error) {
	if n, err := fmt.Sscanf(s, "%dx%d", &width, &height); err != nil || n != 2 || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: size %q, want WxH", errBadFlag, s)
	}
	return width, height, nil
}

// loadModel reads path, or returns a cube when path is empty. The second
// result is the texture embedded in the model, if any.
func loadModel(path string) (*models.Mesh, *render.Texture, error) {
	if path == "" {
		return models.Cube(2), nil, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, img, err := models.LoadGLBWithTexture(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		if img == nil {
			return mesh, nil, nil
		}
		return mesh, render.TextureFromImage(img), nil
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
}

func run(modelPath string) error {
	bg, err := parseRGB(*bgColor)
	if err != nil {
		return err
	}
	width, height, err := parseSize(*size)
	if err != nil {
		return err
	}
	if *targetFPS <= 0 {
		return fmt.Errorf("%w: fps %d", errBadFlag, *targetFPS)
	}
	if *nearPlane <= 0 {
		return fmt.Errorf("%w: near %v", errBadFlag, *nearPlane)
	}

	mesh, texture, err := loadModel(modelPath)
	if err != nil {
		return err
	}
	if *texturePath != "" {
		texture, err = render.LoadTexture(*texturePath)
		if err != nil {
			return err
		}
	}
	if texture == nil && modelPath != "" {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	name := "cube"
	if modelPath != "" {
		name = filepath.Base(modelPath)
	}
	render.Logger().Info("model loaded", "name", name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	s := NewScene(name, mesh, *targetFPS, *nearPlane, bg)
	s.Texture = texture

	switch {
	case *snapshot != "":
		return renderSnapshot(s, width, height, *snapshot)
	case *useWindow:
		cfg := window.DefaultConfig()
		cfg.Title = "swr - " + name
		cfg.Width, cfg.Height = width, height
		s.Spin = 0.002
		return window.Run(cfg, s)
	default:
		return runTerminal(s, *targetFPS)
	}
}

// renderSnapshot draws one frame headless and saves it.
func renderSnapshot(s *Scene, width, height int, path string) error {
	s.Rotation.Pitch.Position = 0.5
	s.Rotation.Yaw.Position = 0.6

	f := render.AllocFrame(width, height, true)
	s.Render(f)
	if err := f.SaveImage(path); err != nil {
		return err
	}
	render.Logger().Info("snapshot saved", "path", path, "stats", StatusLine(s.Stats()))
	return nil
}
