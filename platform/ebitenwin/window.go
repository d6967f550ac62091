// Package ebitenwin runs a zen engine in a desktop window with Ebitengine.
//
// Ebitengine owns the main loop, so Window implements zen.Driver: the engine
// hands over its per-frame step, which runs inside ebiten's Update. Drawing
// happens on an offscreen canvas during the step and is copied to the screen
// in Draw.
package ebitenwin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/zen"
)

const textShadowOffset = 2

// Window is a zen.Platform and zen.Driver backed by an Ebitengine window.
type Window struct {
	width, height int

	canvas *ebiten.Image // drawn into during the frame
	frame  *ebiten.Image // last presented frame

	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace

	keys []ebiten.Key
}

// New configures the window and loads the default font. The window opens
// when the engine's MainLoop calls Drive.
func New(width, height int, title string) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ebitenwin: invalid window size %dx%d", width, height)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenwin: load font: %w", err)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)

	return &Window{
		width:      width,
		height:     height,
		canvas:     ebiten.NewImage(width, height),
		frame:      ebiten.NewImage(width, height),
		fontSource: src,
		faces:      make(map[float64]*text.GoTextFace),
	}, nil
}

// game adapts the engine step to ebiten.Game.
type game struct {
	w    *Window
	step func() bool
}

func (g *game) Update() error {
	if !g.step() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.w.frame, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w.width, g.w.height
}

// Drive implements zen.Driver. Blocks until step returns false or the
// window fails.
func (w *Window) Drive(step func() bool) error {
	err := ebiten.RunGame(&game{w: w, step: step})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// PollEvents implements zen.Platform.
func (w *Window) PollEvents(buf []zen.Event) []zen.Event {
	if ebiten.IsWindowBeingClosed() {
		buf = append(buf, zen.Event{Type: zen.EventQuit})
	}
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if id, ok := KeyName(k); ok {
			buf = append(buf, zen.Event{Type: zen.EventKeyDown, Key: id})
		}
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if id, ok := KeyName(k); ok {
			buf = append(buf, zen.Event{Type: zen.EventKeyUp, Key: id})
		}
	}
	return buf
}

// DrawRect implements zen.Renderer.
func (w *Window) DrawRect(x, y, width, height float64, c zen.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	vector.DrawFilledRect(w.canvas, float32(x), float32(y), float32(width), float32(height), c.RGBA(), false)
}

// DrawText implements zen.Renderer using Go Regular at the given pixel size,
// with a black shadow offset by two pixels.
func (w *Window) DrawText(s string, x, y, size float64, c zen.Color) {
	face := w.face(size)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+textShadowOffset, y+textShadowOffset)
	op.ColorScale.ScaleWithColor(color.Black)
	text.Draw(w.canvas, s, face, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(w.canvas, s, face, op)
}

func (w *Window) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 16
	}
	f, ok := w.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: w.fontSource, Size: size}
		w.faces[size] = f
	}
	return f
}

// Clear implements zen.Renderer.
func (w *Window) Clear(c zen.Color) {
	w.canvas.Fill(c.RGBA())
}

// Present implements zen.Platform.
func (w *Window) Present() error {
	w.frame.Clear()
	w.frame.DrawImage(w.canvas, nil)
	return nil
}

// Size implements zen.Platform.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Snapshot implements zen.Snapshotter. Only valid while the game runs.
func (w *Window) Snapshot() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	w.frame.ReadPixels(img.Pix)
	return img, nil
}
