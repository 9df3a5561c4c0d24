package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture is an image sampled once per vertex to seed vertex colors.
// There is no per-pixel filtering: colors reach the screen through the
// same screen-linear interpolation as any other vertex color.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major, row 0 at the top of the image
	Wrap   WrapMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewCheckerTexture creates a checkerboard of cell x cell squares
// alternating between a and b, starting with a in the bottom-left corner.
func NewCheckerTexture(width, height, cell int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	cell = max(cell, 1)
	for y := range height {
		// Pixels run top-down; count cells from the bottom row.
		row := (height - 1 - y) / cell
		for x := range width {
			c := a
			if (x/cell+row)%2 == 1 {
				c = b
			}
			tex.Pixels[y*width+x] = c
		}
	}
	return tex
}

// LoadTexture loads a texture from an image file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values
			tex.Pixels[y*tex.Width+x] = Color{
				R: float32(r) / 0xffff,
				G: float32(g) / 0xffff,
				B: float32(b) / 0xffff,
				A: float32(a) / 0xffff,
			}
		}
	}
	return tex
}

// Sample returns the texel nearest to (u, v). v = 0 is the bottom of the
// image.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return ColorWhite
	}
	u = t.wrapCoord(u)
	v = 1 - t.wrapCoord(v)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) wrapCoord(c float64) float64 {
	if t.Wrap == WrapClamp {
		return math.Max(0, math.Min(1, c))
	}
	return c - math.Floor(c)
}

// Modulate multiplies two colors channel by channel (texel * base color).
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}
