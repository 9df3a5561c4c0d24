package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned by SaveImage for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Frame is a color buffer with an optional depth buffer of the same size.
// Pixels are row-major with row 0 at the bottom, matching the upward y of
// Viewport. Color holds packed pixels (see Color.Pack).
type Frame struct {
	Width  int
	Height int
	Color  []uint32
	Depth  []float32 // nil when depth testing is off
}

// NewFrame wraps caller-owned buffers. depth may be nil. Buffers shorter
// than width*height are a programming error and panic.
func NewFrame(width, height int, color []uint32, depth []float32) *Frame {
	n := width * height
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("render: negative frame size %dx%d", width, height))
	}
	if len(color) < n {
		panic(fmt.Sprintf("render: color buffer holds %d pixels, need %d", len(color), n))
	}
	if depth != nil && len(depth) < n {
		panic(fmt.Sprintf("render: depth buffer holds %d pixels, need %d", len(depth), n))
	}
	return &Frame{Width: width, Height: height, Color: color, Depth: depth}
}

// AllocFrame allocates a frame, with a depth buffer when withDepth is set.
func AllocFrame(width, height int, withDepth bool) *Frame {
	var depth []float32
	if withDepth {
		depth = make([]float32, width*height)
	}
	return NewFrame(width, height, make([]uint32, width*height), depth)
}

// HasDepth reports whether the frame carries a depth buffer.
func (f *Frame) HasDepth() bool {
	return f.Depth != nil
}

// ClearColor fills the color buffer.
func (f *Frame) ClearColor(c Color) {
	fill(f.Color[:f.Width*f.Height], c.Pack())
}

// ClearDepth fills the depth buffer. It does nothing without one.
func (f *Frame) ClearDepth(z float32) {
	if f.Depth == nil {
		return
	}
	fill(f.Depth[:f.Width*f.Height], z)
}

// Clear resets both buffers; 1 is the far plane for depth.
func (f *Frame) Clear(c Color, z float32) {
	f.ClearColor(c)
	f.ClearDepth(z)
}

// fill sets every element using copy-doubling.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// SetPixel sets a pixel at (x, y). Out of range writes are ignored.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Color[y*f.Width+x] = c.Pack()
}

// Pixel returns the color at (x, y), or transparent black out of range.
func (f *Frame) Pixel(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Color{}
	}
	return UnpackColor(f.Color[y*f.Width+x])
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (f *Frame) DrawLine(x0, y0, x1, y1 int, c Color) {
	p := c.Pack()
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < f.Width && y0 >= 0 && y0 < f.Height {
			f.Color[y0*f.Width+x0] = p
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// WriteRGBA writes the frame top row first as 8-bit RGBA into dst, which
// must hold 4*Width*Height bytes.
func (f *Frame) WriteRGBA(dst []byte) {
	if len(dst) < 4*f.Width*f.Height {
		panic(fmt.Sprintf("render: RGBA buffer holds %d bytes, need %d", len(dst), 4*f.Width*f.Height))
	}
	i := 0
	for y := f.Height - 1; y >= 0; y-- {
		for _, p := range f.Color[y*f.Width : (y+1)*f.Width] {
			dst[i+0] = uint8(p >> 16)
			dst[i+1] = uint8(p >> 8)
			dst[i+2] = uint8(p)
			dst[i+3] = uint8(p >> 24)
			i += 4
		}
	}
}

// ToImage converts the frame to a top-down image.RGBA.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.WriteRGBA(img.Pix)
	return img
}

// SaveImage writes the frame to path, choosing PNG or BMP by extension.
func (f *Frame) SaveImage(path string) error {
	fail := func(err error) error {
		Logger().Warn("frame not saved", "path", path, "err", err)
		return err
	}

	var encode func(*os.File, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = func(w *os.File, img image.Image) error { return png.Encode(w, img) }
	case ".bmp":
		encode = func(w *os.File, img image.Image) error { return bmp.Encode(w, img) }
	default:
		return fail(fmt.Errorf("save %s: %w %q", path, ErrUnsupportedFormat, ext))
	}

	out, err := os.Create(path)
	if err != nil {
		return fail(fmt.Errorf("create %s: %w", path, err))
	}
	if err := encode(out, f.ToImage()); err != nil {
		out.Close()
		return fail(fmt.Errorf("encode %s: %w", path, err))
	}
	if err := out.Close(); err != nil {
		return fail(fmt.Errorf("close %s: %w", path, err))
	}
	Logger().Debug("frame saved", "path", path, "width", f.Width, "height", f.Height)
	return nil
}
