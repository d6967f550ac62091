package zen

import "image/color"

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

// RGB is shorthand for Color{r, g, b}.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA converts to the standard library color type (fully opaque).
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// State is the lifecycle state of an Engine's frame loop.
type State uint8

const (
	StateUninitialized State = iota // MainLoop has not started (or refused to)
	StateRunning                    // inside MainLoop
	StateStopped                    // MainLoop returned
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of platform event.
type EventType uint8

const (
	EventQuit    EventType = iota // window closed / interrupt
	EventKeyDown                  // a key was pressed
	EventKeyUp                    // a key was released
)

// Event is a single platform event drained during the poll phase.
type Event struct {
	Type EventType
	Key  string // key identifier; empty for EventQuit
}
