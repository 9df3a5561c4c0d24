package render

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a linear RGBA color with channels nominally in [0, 1].
// It interpolates like any other varying, so a bare Color can be fed
// through the clipper and rasterizer.
type Color struct {
	R, G, B, A float32
}

// Colors for convenience
var (
	ColorBlack   = Color{0, 0, 0, 1}
	ColorWhite   = Color{1, 1, 1, 1}
	ColorRed     = Color{1, 0, 0, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorBlue    = Color{0, 0, 1, 1}
	ColorYellow  = Color{1, 1, 0, 1}
	ColorCyan    = Color{0, 1, 1, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorGray    = Color{0.5, 0.5, 0.5, 1}
	ColorSky     = Color{0.53, 0.81, 0.92, 1}
)

// RGB creates an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{U8ToF32(r), U8ToF32(g), U8ToF32(b), 1}
}

// RGBA creates a color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{U8ToF32(r), U8ToF32(g), U8ToF32(b), U8ToF32(a)}
}

// Lerp interpolates every channel toward to.
func (c Color) Lerp(to Color, t float64) Color {
	f := float32(t)
	return Color{
		R: c.R + (to.R-c.R)*f,
		G: c.G + (to.G-c.G)*f,
		B: c.B + (to.B-c.B)*f,
		A: c.A + (to.A-c.A)*f,
	}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Sub returns the channel-wise difference.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Shade multiplies the color channels by intensity and leaves alpha alone.
func (c Color) Shade(intensity float32) Color {
	return Color{c.R * intensity, c.G * intensity, c.B * intensity, c.A}
}

// Fragment returns c, so a plain Color is a complete vertex payload.
func (c Color) Fragment() Color {
	return c
}

// Pack converts c to the 32-bit pixel format: a little-endian word whose
// bytes are B, G, R, A from low to high.
func (c Color) Pack() uint32 {
	return uint32(F32ToU8(c.B)) |
		uint32(F32ToU8(c.G))<<8 |
		uint32(F32ToU8(c.R))<<16 |
		uint32(F32ToU8(c.A))<<24
}

// UnpackColor is the inverse of Pack up to 8-bit quantization.
func UnpackColor(p uint32) Color {
	return Color{
		R: U8ToF32(uint8(p >> 16)),
		G: U8ToF32(uint8(p >> 8)),
		B: U8ToF32(uint8(p)),
		A: U8ToF32(uint8(p >> 24)),
	}
}

// RGBA8 converts c to a non-premultiplied 8-bit color.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{F32ToU8(c.R), F32ToU8(c.G), F32ToU8(c.B), F32ToU8(c.A)}
}

// pixelRGBA converts a packed pixel straight to color.RGBA.
func pixelRGBA(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// F32ToU8 maps [0, 1] to [0, 255], rounding toward zero. Out of range values
// saturate and NaN maps to 0.
func F32ToU8(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	v = math32.Trunc(v * 255)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// U8ToF32 maps [0, 255] to [0, 1].
func U8ToF32(v uint8) float32 {
	return float32(v) / 255
}
