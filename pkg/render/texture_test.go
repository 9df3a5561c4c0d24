package render

import (
	"image"
	"image/color"
	"testing"
)

func checker2x2() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255}) // top left
	img.Set(1, 0, color.RGBA{0, 255, 0, 255}) // top right
	img.Set(0, 1, color.RGBA{0, 0, 255, 255}) // bottom left
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return TextureFromImage(img)
}

func TestTextureSample(t *testing.T) {
	tests := []struct {
		name string
		wrap WrapMode
		u, v float64
		want Color
	}{
		{"bottom left", WrapRepeat, 0.25, 0.25, ColorBlue},
		{"bottom right", WrapRepeat, 0.75, 0.25, ColorWhite},
		{"top left", WrapRepeat, 0.25, 0.75, ColorRed},
		{"top right", WrapRepeat, 0.75, 0.75, ColorGreen},
		{"repeat wraps around", WrapRepeat, 1.25, 0.25, ColorBlue},
		{"clamp holds the edge", WrapClamp, 5, -3, ColorWhite},
		{"clamp at one", WrapClamp, 1, 1, ColorGreen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex := checker2x2()
			tex.Wrap = tc.wrap
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureSampleEmpty(t *testing.T) {
	var tex Texture
	if got := tex.Sample(0.5, 0.5); got != ColorWhite {
		t.Errorf("empty texture sampled %v, want white", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 2, ColorWhite, ColorBlack)

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"bottom left", 0.1, 0.1, ColorWhite},
		{"bottom right", 0.9, 0.1, ColorBlack},
		{"top left", 0.1, 0.9, ColorBlack},
		{"top right", 0.9, 0.9, ColorWhite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestLoadTextureMissing(t *testing.T) {
	if _, err := LoadTexture("/nonexistent/texture.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestModulate(t *testing.T) {
	got := Color{1, 0.5, 0.25, 1}.Modulate(Color{0.5, 0.5, 1, 0.5})
	want := Color{0.5, 0.25, 0.25, 0.5}
	if got != want {
		t.Errorf("Modulate = %v, want %v", got, want)
	}
}
