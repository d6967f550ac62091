package zen

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"
)

// drawCall is one recorded Renderer call.
type drawCall struct {
	op         string // "rect", "text" or "clear"
	x, y, w, h float64
	text       string
	c          Color
}

// recordingPlatform is an in-memory Platform that records draw calls and
// serves queued events.
type recordingPlatform struct {
	width, height int

	calls    []drawCall
	queue    []Event
	polls    int
	presents int

	presentErr error
	onPoll     func(poll int)
}

func newRecordingPlatform() *recordingPlatform {
	return &recordingPlatform{width: 320, height: 240}
}

func (p *recordingPlatform) DrawRect(x, y, w, h float64, c Color) {
	p.calls = append(p.calls, drawCall{op: "rect", x: x, y: y, w: w, h: h, c: c})
}

func (p *recordingPlatform) DrawText(text string, x, y, size float64, c Color) {
	p.calls = append(p.calls, drawCall{op: "text", x: x, y: y, h: size, text: text, c: c})
}

func (p *recordingPlatform) Clear(c Color) {
	p.calls = append(p.calls, drawCall{op: "clear", c: c})
}

func (p *recordingPlatform) PollEvents(buf []Event) []Event {
	p.polls++
	if p.onPoll != nil {
		p.onPoll(p.polls)
	}
	buf = append(buf, p.queue...)
	p.queue = p.queue[:0]
	return buf
}

func (p *recordingPlatform) Present() error {
	p.presents++
	return p.presentErr
}

func (p *recordingPlatform) Size() (int, int) {
	return p.width, p.height
}

func (p *recordingPlatform) push(events ...Event) {
	p.queue = append(p.queue, events...)
}

func (p *recordingPlatform) rects() []drawCall {
	var out []drawCall
	for _, c := range p.calls {
		if c.op == "rect" {
			out = append(out, c)
		}
	}
	return out
}

// snapshotPlatform adds Snapshotter with a solid image.
type snapshotPlatform struct {
	*recordingPlatform
	fill color.RGBA
}

func (p *snapshotPlatform) Snapshot() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p.fill.R, p.fill.G, p.fill.B, p.fill.A
	}
	return img, nil
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEngine returns an engine on a recording platform whose fatal errors
// are collected instead of exiting.
func testEngine(t *testing.T, cfg Config) (*Engine, *recordingPlatform, *[]error) {
	t.Helper()
	p := newRecordingPlatform()
	var fatals []error
	if cfg.OnFatal == nil {
		cfg.OnFatal = func(err error) { fatals = append(fatals, err) }
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	return New(p, cfg), p, &fatals
}

// start puts e into the running state without entering the loop, so tests
// can call step directly.
func start(e *Engine) {
	e.state = StateRunning
	e.running = true
	e.lastTime = e.now()
}

// runFrames runs MainLoop for n frames.
func runFrames(t *testing.T, e *Engine, n int, fn func(dt float64)) {
	t.Helper()
	frames := 0
	e.SetGameLoop(func(dt float64) {
		frames++
		if fn != nil {
			fn(dt)
		}
		if frames >= n {
			e.Stop()
		}
	})
	if err := e.MainLoop(); err != nil {
		t.Fatalf("MainLoop: %v", err)
	}
}

// register adds a BehaviorFuncs behavior under tag.
func register(e *Engine, tag string, f BehaviorFuncs) {
	e.Behaviors().Register(tag, func() (Behavior, error) {
		b := f
		return &b, nil
	})
}
