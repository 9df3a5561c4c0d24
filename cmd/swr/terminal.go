package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/swr/pkg/render"
)

const (
	torqueStrength = 3.0
	panStep        = 0.25
	lookStep       = 0.05
)

// runTerminal draws the scene in the terminal until Esc or a signal.
func runTerminal(s *Scene, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	presenter := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := presenter.FramebufferSize()
	fb := render.AllocFrame(fbWidth, fbHeight, true)
	hud := NewHUD(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// mu guards the scene, the frame and the presenter against the event
	// goroutine.
	var mu sync.Mutex
	var torque struct{ pitch, yaw, roll float64 }
	var mouseDown, lightMode bool
	var lastMouseX, lastMouseY int
	pendingLight := s.LightDir

	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				presenter = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = presenter.FramebufferSize()
				fb = render.AllocFrame(fbWidth, fbHeight, true)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if lightMode {
						lightMode = false
					} else {
						cancel()
					}
				case ev.MatchString("ctrl+c"):
					cancel()
				case ev.MatchString("shift+left"):
					s.Pan(-panStep, 0)
				case ev.MatchString("shift+right"):
					s.Pan(panStep, 0)
				case ev.MatchString("shift+up"):
					s.Pan(0, panStep)
				case ev.MatchString("shift+down"):
					s.Pan(0, -panStep)
				case ev.MatchString("pgup"):
					s.Dolly(panStep)
				case ev.MatchString("pgdown"):
					s.Dolly(-panStep)
				case ev.MatchString("["):
					s.Look(0, lookStep)
				case ev.MatchString("]"):
					s.Look(0, -lookStep)
				case ev.MatchString("w", "up"):
					torque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					torque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					torque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					torque.yaw = torqueStrength
				case ev.MatchString("q"):
					torque.roll = -torqueStrength
				case ev.MatchString("e"):
					torque.roll = torqueStrength
				case ev.MatchString("space"):
					s.Rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("r"):
					s.Reset()
				case ev.MatchString("+", "="):
					s.SetCameraZ(s.CameraZ - 0.5)
				case ev.MatchString("-", "_"):
					s.SetCameraZ(s.CameraZ + 0.5)
				case ev.MatchString("t"):
					s.Textured = !s.Textured
				case ev.MatchString("x"):
					if s.Mode == RenderModeWireframe {
						s.Mode = RenderModeShaded
					} else {
						s.Mode = RenderModeWireframe
					}
				case ev.MatchString("b"):
					s.raster.DoubleSided = !s.raster.DoubleSided
				case ev.MatchString("g"):
					s.ShowAxes = !s.ShowAxes
				case ev.MatchString("l"):
					lightMode = true
					pendingLight = s.LightDir
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.Visible = !hud.Visible
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w", "up", "s", "down"):
					torque.pitch = 0
				case ev.MatchString("a", "left", "d", "right"):
					torque.yaw = 0
				case ev.MatchString("q", "e"):
					torque.roll = 0
				}

			case uv.MouseClickEvent:
				if lightMode {
					s.LightDir = pendingLight
					lightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if lightMode {
					pendingLight = ScreenToLightDir(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx, dy := ev.X-lastMouseX, ev.Y-lastMouseY
					s.Rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					s.SetCameraZ(s.CameraZ - 0.5)
				case uv.MouseWheelDown:
					s.SetCameraZ(s.CameraZ + 0.5)
				}
			}
			mu.Unlock()
		}
	}()

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		mu.Lock()
		// Key release events are unreliable, so held torque decays.
		s.Rotation.ApplyImpulse(torque.pitch*dt, torque.yaw*dt, torque.roll*dt)
		torque.pitch *= 0.9
		torque.yaw *= 0.9
		torque.roll *= 0.9
		s.Update()

		light := s.LightDir
		if lightMode {
			s.LightDir = pendingLight
		}
		s.Render(fb)
		s.LightDir = light

		presenter.Render(fb)
		err := presenter.Flush()
		hud.Tick()
		hud.Draw(width, height, s, lightMode)
		mu.Unlock()

		if err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
