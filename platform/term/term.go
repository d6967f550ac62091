// Package term runs a zen engine inside a terminal using tcell. Each
// terminal cell stands for a CellWidth×CellHeight block of engine pixels;
// rectangles become runs of colored cells.
//
// Terminals report key presses but not releases. A key is treated as held
// until no press (or auto-repeat) for it has arrived for KeyHold, at which
// point a synthetic key-up is emitted.
package term

import (
	"math"
	"sort"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/zen"
)

const (
	defaultKeyHold   = 150 * time.Millisecond
	eventBufferSize  = 100
	defaultCellScale = 1
)

// Options configures a terminal platform.
type Options struct {
	// CellWidth and CellHeight are the engine pixels covered by one cell.
	// Zero means 1, so engine coordinates are cell coordinates.
	CellWidth, CellHeight float64

	// KeyHold is how long a key stays pressed after its last press event.
	KeyHold time.Duration
}

// Screen is a zen.Platform backed by a tcell screen.
type Screen struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
	hold   time.Duration

	events chan tcell.Event
	done   chan struct{}
	held   map[string]time.Time
	now    func() time.Time
	closed bool
}

// New opens the controlling terminal.
func New(opts Options) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s, opts)
}

// NewWithScreen initializes s and wraps it. Tests pass a simulation screen.
func NewWithScreen(s tcell.Screen, opts Options) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	t := &Screen{
		screen: s,
		cellW:  opts.CellWidth,
		cellH:  opts.CellHeight,
		hold:   opts.KeyHold,
		events: make(chan tcell.Event, eventBufferSize),
		done:   make(chan struct{}),
		held:   make(map[string]time.Time),
		now:    time.Now,
	}
	if t.cellW <= 0 {
		t.cellW = defaultCellScale
	}
	if t.cellH <= 0 {
		t.cellH = defaultCellScale
	}
	if t.hold <= 0 {
		t.hold = defaultKeyHold
	}
	s.HideCursor()
	s.Clear()

	// PollEvent blocks; forward into a buffered channel so PollEvents can
	// drain without blocking the frame loop.
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()
	return t, nil
}

// Close restores the terminal.
func (t *Screen) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.done)
	t.screen.Fini()
	return nil
}

// PollEvents implements zen.Platform.
func (t *Screen) PollEvents(buf []zen.Event) []zen.Event {
	now := t.now()
drain:
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				break drain
			}
			buf = t.handle(buf, ev, now)
		default:
			break drain
		}
	}
	return t.releaseExpired(buf, now)
}

func (t *Screen) handle(buf []zen.Event, ev tcell.Event, now time.Time) []zen.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		zev, ok := translateKey(ev)
		if !ok {
			return buf
		}
		if zev.Type == zen.EventKeyDown {
			t.held[zev.Key] = now
		}
		return append(buf, zev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return buf
}

// releaseExpired emits key-ups, in key order, for keys not pressed within
// the hold window.
func (t *Screen) releaseExpired(buf []zen.Event, now time.Time) []zen.Event {
	var expired []string
	for k, at := range t.held {
		if now.Sub(at) >= t.hold {
			expired = append(expired, k)
		}
	}
	sort.Strings(expired)
	for _, k := range expired {
		delete(t.held, k)
		buf = append(buf, zen.Event{Type: zen.EventKeyUp, Key: k})
	}
	return buf
}

// translateKey maps a tcell key event to a zen event. Ctrl+C is a quit.
func translateKey(ev *tcell.EventKey) (zen.Event, bool) {
	down := func(k string) (zen.Event, bool) {
		return zen.Event{Type: zen.EventKeyDown, Key: k}, true
	}
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return zen.Event{Type: zen.EventQuit}, true
	case tcell.KeyRune:
		return down(string(unicode.ToLower(ev.Rune())))
	case tcell.KeyEscape:
		return down(zen.KeyEscape)
	case tcell.KeyEnter:
		return down(zen.KeyEnter)
	case tcell.KeyTab:
		return down(zen.KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return down(zen.KeyBackspace)
	case tcell.KeyUp:
		return down(zen.KeyUp)
	case tcell.KeyDown:
		return down(zen.KeyDown)
	case tcell.KeyLeft:
		return down(zen.KeyLeft)
	case tcell.KeyRight:
		return down(zen.KeyRight)
	}
	return zen.Event{}, false
}

// DrawRect implements zen.Renderer by painting cell backgrounds.
func (t *Screen) DrawRect(x, y, w, h float64, c zen.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := t.cell(x, y)
	x1, y1 := t.cell(x+w, y+h)
	sw, sh := t.screen.Size()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, sw), min(y1, sh)
	style := tcell.StyleDefault.Background(toColor(c))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			t.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// DrawText implements zen.Renderer. Size is ignored; terminals have one font.
func (t *Screen) DrawText(text string, x, y, _ float64, c zen.Color) {
	cx, cy := t.cell(x, y)
	sw, sh := t.screen.Size()
	if cy < 0 || cy >= sh {
		return
	}
	for _, r := range text {
		if cx >= sw {
			return
		}
		if cx >= 0 {
			_, _, st, _ := t.screen.GetContent(cx, cy)
			t.screen.SetContent(cx, cy, r, nil, st.Foreground(toColor(c)))
		}
		cx += max(runewidth.RuneWidth(r), 1)
	}
}

// Clear implements zen.Renderer.
func (t *Screen) Clear(c zen.Color) {
	t.screen.Fill(' ', tcell.StyleDefault.Background(toColor(c)))
}

// Present implements zen.Platform.
func (t *Screen) Present() error {
	t.screen.Show()
	return nil
}

// Size implements zen.Platform, in engine pixels.
func (t *Screen) Size() (int, int) {
	w, h := t.screen.Size()
	return int(float64(w) * t.cellW), int(float64(h) * t.cellH)
}

func (t *Screen) cell(x, y float64) (int, int) {
	return int(math.Round(x / t.cellW)), int(math.Round(y / t.cellH))
}

func toColor(c zen.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
