package zen

import "fmt"

// FPSBehavior is the tag of the built-in frame counter overlay.
const FPSBehavior = "fps"

const fpsRefreshInterval = 0.5 // seconds

// FPSCounter is a behavior that measures frames per second and draws the
// result at its node's position. The reading refreshes every ~0.5 seconds.
type FPSCounter struct {
	Size  float64
	Color Color

	elapsed float64
	frames  int
	fps     float64
}

// FPS returns the last measured rate.
func (f *FPSCounter) FPS() float64 {
	return f.fps
}

func (f *FPSCounter) Update(_ *Context, dt float64) error {
	f.elapsed += dt
	f.frames++
	if f.elapsed < fpsRefreshInterval {
		return nil
	}
	f.fps = float64(f.frames) / f.elapsed
	f.elapsed = 0
	f.frames = 0
	return nil
}

func (f *FPSCounter) Draw(ctx *Context, r Renderer) error {
	size := f.Size
	if size == 0 {
		size = 16
	}
	c := f.Color
	if c == (Color{}) {
		c = White
	}
	r.DrawText(fmt.Sprintf("FPS: %.1f", f.fps), ctx.Self.X, ctx.Self.Y, size, c)
	return nil
}
