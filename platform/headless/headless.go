// Package headless provides an in-memory zen.Platform. Frames are rasterized
// into an RGBA image, events are queued by the caller, and nothing touches a
// display. It backs the engine's tests and offline screenshot runs.
package headless

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/zen"
)

const textShadowOffset = 2

// Canvas is a software Platform. The back buffer is drawn into during a
// frame and copied to the front buffer on Present; like a real window, the
// back buffer is not cleared between frames.
type Canvas struct {
	back  *image.RGBA
	front *image.RGBA

	queue    []zen.Event
	presents int

	// OnPoll, when set, is called at the start of every PollEvents with the
	// number of frames presented so far. Tests use it to script input.
	OnPoll func(presented int)
}

// New creates a width×height canvas filled with black.
func New(width, height int) *Canvas {
	r := image.Rect(0, 0, width, height)
	c := &Canvas{back: image.NewRGBA(r), front: image.NewRGBA(r)}
	c.Clear(zen.Black)
	draw.Draw(c.front, r, c.back, image.Point{}, draw.Src)
	return c
}

// Push queues events for the next PollEvents.
func (c *Canvas) Push(events ...zen.Event) {
	c.queue = append(c.queue, events...)
}

// PollEvents implements zen.Platform.
func (c *Canvas) PollEvents(buf []zen.Event) []zen.Event {
	if c.OnPoll != nil {
		c.OnPoll(c.presents)
	}
	buf = append(buf, c.queue...)
	c.queue = c.queue[:0]
	return buf
}

// DrawRect implements zen.Renderer. Coordinates are rounded to whole pixels
// and clipped to the canvas.
func (c *Canvas) DrawRect(x, y, w, h float64, col zen.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(round(x), round(y), round(x+w), round(y+h)).Intersect(c.back.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.back, r, image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// DrawText implements zen.Renderer with a fixed 7x13 bitmap face; size is
// ignored. A black shadow is drawn first, offset by two pixels.
func (c *Canvas) DrawText(text string, x, y, _ float64, col zen.Color) {
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	c.drawString(text, round(x)+textShadowOffset, round(y)+textShadowOffset+ascent, color.Black)
	c.drawString(text, round(x), round(y)+ascent, col.RGBA())
}

func (c *Canvas) drawString(text string, x, baseline int, col color.Color) {
	d := &font.Drawer{
		Dst:  c.back,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

// Clear implements zen.Renderer.
func (c *Canvas) Clear(col zen.Color) {
	draw.Draw(c.back, c.back.Bounds(), image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// Present implements zen.Platform.
func (c *Canvas) Present() error {
	draw.Draw(c.front, c.front.Bounds(), c.back, image.Point{}, draw.Src)
	c.presents++
	return nil
}

// Size implements zen.Platform.
func (c *Canvas) Size() (int, int) {
	b := c.back.Bounds()
	return b.Dx(), b.Dy()
}

// Snapshot implements zen.Snapshotter. The returned image is a copy.
func (c *Canvas) Snapshot() (image.Image, error) {
	out := image.NewRGBA(c.front.Bounds())
	draw.Draw(out, out.Bounds(), c.front, image.Point{}, draw.Src)
	return out, nil
}

// At returns the presented pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.front.RGBAAt(x, y)
}

// Presents returns how many frames have been presented.
func (c *Canvas) Presents() int {
	return c.presents
}

func round(v float64) int {
	return int(math.Round(v))
}
