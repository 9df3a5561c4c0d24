package render

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFrameShortBuffers(t *testing.T) {
	tests := []struct {
		name  string
		color int
		depth int
	}{
		{"short color", 11, 12},
		{"short depth", 12, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewFrame(4, 3, make([]uint32, tc.color), make([]float32, tc.depth))
		})
	}

	// Longer buffers and a missing depth buffer are fine.
	f := NewFrame(4, 3, make([]uint32, 20), nil)
	if f.HasDepth() {
		t.Error("frame without depth reports HasDepth")
	}
}

func TestFrameClear(t *testing.T) {
	f := AllocFrame(7, 5, true)
	f.Clear(ColorRed, 1)

	for i, p := range f.Color {
		if p != ColorRed.Pack() {
			t.Fatalf("color[%d] = %#x", i, p)
		}
	}
	for i, z := range f.Depth {
		if z != 1 {
			t.Fatalf("depth[%d] = %v", i, z)
		}
	}

	// Only the color buffer without depth.
	g := AllocFrame(3, 3, false)
	g.ClearDepth(0.5)
	g.ClearColor(ColorBlue)
	if g.Pixel(2, 2) != UnpackColor(ColorBlue.Pack()) {
		t.Errorf("Pixel(2, 2) = %v", g.Pixel(2, 2))
	}
}

func TestFrameClearLeavesSpareCapacity(t *testing.T) {
	color := make([]uint32, 10)
	color[9] = 42
	f := NewFrame(3, 3, color, nil)
	f.ClearColor(ColorWhite)
	if color[9] != 42 {
		t.Errorf("clear wrote past width*height")
	}
}

func TestFramePixelBounds(t *testing.T) {
	f := AllocFrame(4, 4, false)
	f.SetPixel(-1, 0, ColorWhite)
	f.SetPixel(0, 4, ColorWhite)
	for _, p := range f.Color {
		if p != 0 {
			t.Fatal("out of range SetPixel wrote into the buffer")
		}
	}
	if f.Pixel(9, 9) != (Color{}) {
		t.Error("out of range Pixel should be transparent black")
	}
}

func TestFrameDrawLine(t *testing.T) {
	f := AllocFrame(8, 8, false)
	f.DrawLine(0, 0, 7, 7, ColorWhite)
	for i := range 8 {
		if f.Pixel(i, i) != ColorWhite {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}

	// Lines partly off screen are clipped per pixel.
	g := AllocFrame(4, 4, false)
	g.DrawLine(-5, 1, 10, 1, ColorGreen)
	for x := range 4 {
		if g.Pixel(x, 1) != ColorGreen {
			t.Errorf("pixel (%d, 1) not set", x)
		}
	}
}

func TestFrameToImageFlipsRows(t *testing.T) {
	f := AllocFrame(2, 3, false)
	f.SetPixel(0, 0, ColorRed)  // bottom left
	f.SetPixel(1, 2, ColorBlue) // top right

	img := f.ToImage()
	if got := img.RGBAAt(0, 2); got != ColorRed.RGBA8() {
		t.Errorf("image bottom left = %v, want red", got)
	}
	if got := img.RGBAAt(1, 0); got != ColorBlue.RGBA8() {
		t.Errorf("image top right = %v, want blue", got)
	}
}

func TestFrameWriteRGBAShortBuffer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	AllocFrame(2, 2, false).WriteRGBA(make([]byte, 15))
}

func TestFrameSaveImage(t *testing.T) {
	f := AllocFrame(5, 4, false)
	f.ClearColor(ColorGray)
	f.SetPixel(4, 3, ColorYellow)
	dir := t.TempDir()

	for _, name := range []string{"frame.png", "frame.BMP"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := f.SaveImage(path); err != nil {
				t.Fatalf("SaveImage: %v", err)
			}

			r, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()

			img, _, err := image.Decode(r)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			cr, cg, cb, _ := img.At(4, 0).RGBA()
			if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 0 {
				t.Errorf("top right = %d %d %d, want yellow", cr>>8, cg>>8, cb>>8)
			}
		})
	}

	if err := f.SaveImage(filepath.Join(dir, "frame.gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveImage(.gif) error = %v, want ErrUnsupportedFormat", err)
	}
}

func BenchmarkFrameClear(b *testing.B) {
	f := AllocFrame(320, 240, true)
	for b.Loop() {
		f.Clear(ColorSky, 1)
	}
}
