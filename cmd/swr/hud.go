package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/swr/pkg/render"
)

// ANSI sequences used by the HUD.
const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiBgBlack   = "\x1b[40m"
	ansiFgWhite   = "\x1b[97m"
	ansiFgGreen   = "\x1b[92m"
	ansiFgYellow  = "\x1b[93m"
	ansiFgCyan    = "\x1b[96m"
	ansiClearLine = "\x1b[2K"
)

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// HUD draws a two line overlay straight to the terminal after each frame.
type HUD struct {
	Visible bool

	out       io.Writer
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a hidden HUD writing to out.
func NewHUD(out io.Writer) *HUD {
	return &HUD{out: out, fpsTime: time.Now()}
}

// Tick counts a frame. FPS is recomputed once a second.
func (h *HUD) Tick() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// StatusLine summarizes what the clipper and rasterizer did last frame.
func StatusLine(st render.Stats) string {
	return fmt.Sprintf("%d tris  %d fast  %d clipped  %d back  %d px",
		st.Triangles, st.FastPath, st.Clipped, st.BackFacing, st.Fragments)
}

// Draw writes the overlay for a width x height cell terminal. The top and
// bottom rows are always cleared so hiding the HUD erases it.
func (h *HUD) Draw(width, height int, s *Scene, lightMode bool) {
	fmt.Fprint(h.out, moveTo(1, 1)+ansiClearLine)
	fmt.Fprint(h.out, moveTo(height, 1)+ansiClearLine)

	if lightMode {
		msg := fmt.Sprintf("%s%s%s LIGHT MODE - move the mouse, click to set, Esc to cancel %s",
			ansiBgBlack, ansiBold, ansiFgYellow, ansiReset)
		fmt.Fprint(h.out, moveTo(height, max((width-58)/2, 1))+msg)
		return
	}
	if !h.Visible {
		return
	}

	fmt.Fprintf(h.out, "%s%s%s %.0f FPS %s", moveTo(1, 1), ansiBgBlack, ansiFgGreen, h.fps, ansiReset)
	fmt.Fprintf(h.out, "%s%s%s%s %s %s",
		moveTo(1, max((width-len(s.Name)-2)/2, 1)), ansiBold, ansiBgBlack, ansiFgWhite, s.Name, ansiReset)

	polys := fmt.Sprintf(" %d polys ", s.Mesh.TriangleCount())
	fmt.Fprintf(h.out, "%s%s%s%s%s%s",
		moveTo(1, max(width-len(polys), 1)), ansiBgBlack, ansiFgCyan, ansiBold, polys, ansiReset)

	tex, wire := "[ ]", "[ ]"
	if s.Textured && s.Texture != nil && s.Mode != RenderModeWireframe {
		tex = "[x]"
	}
	if s.Mode == RenderModeWireframe {
		wire = "[x]"
	}
	fmt.Fprintf(h.out, "%s%s%s %s Texture  %s X-Ray  %s%s %s %s",
		moveTo(height, 1), ansiBgBlack, ansiFgWhite, tex, wire,
		ansiDim, ansiFgYellow, StatusLine(s.Stats()), ansiReset)
}
