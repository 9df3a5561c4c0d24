package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the frame to terminal cells and draws them on the screen.
// Each cell shows two pixels with an upper half block (fg = upper pixel,
// bg = lower pixel), so the frame height should be 2x the area height.
// Frames are stored bottom-up; the top terminal row shows the last two
// frame rows.
func (f *Frame) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := f.Height - 1 - 2*(row-area.Min.Y)
		botY := topY - 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < f.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: f.cellColor(x, topY),
					Bg: f.cellColor(x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor returns the pixel as a color.Color, or nil (terminal default)
// for transparent or out of range pixels.
func (f *Frame) cellColor(x, y int) color.Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return nil
	}
	c := pixelRGBA(f.Color[y*f.Width+x])
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents frames on a terminal.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int // in cells
}

// NewTerminalRenderer creates a renderer for a width x height cell area.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the frame size that exactly fills the terminal.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render draws f into the terminal's cell buffer.
func (t *TerminalRenderer) Render(f *Frame) {
	f.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
