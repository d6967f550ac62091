package zen

import (
	"image"
	"time"
)

// Renderer performs the actual pixel drawing. The engine treats it as opaque.
type Renderer interface {
	DrawRect(x, y, w, h float64, c Color)
	DrawText(text string, x, y, size float64, c Color)
	Clear(c Color)
}

// Platform is the window the engine runs in: a Renderer plus an event source
// and a way to show the finished frame.
type Platform interface {
	Renderer

	// PollEvents appends every event queued since the last call to buf and
	// returns it. It must not block.
	PollEvents(buf []Event) []Event

	// Present shows the frame drawn since the previous Present.
	Present() error

	// Size returns the drawable area in pixels (cells for terminals).
	Size() (width, height int)
}

// Driver is implemented by platforms that must own the frame loop themselves
// (Ebitengine's RunGame, for instance). Drive calls step once per frame until
// step returns false, then returns.
type Driver interface {
	Drive(step func() bool) error
}

// Snapshotter is implemented by platforms that can return the last presented
// frame. Engine.Screenshot requires it.
type Snapshotter interface {
	Snapshot() (image.Image, error)
}

// Audio plays simple generated sounds. A nil Audio on the engine is replaced
// by a silent implementation.
type Audio interface {
	PlayTone(freq float64, d time.Duration)
}

type silentAudio struct{}

func (silentAudio) PlayTone(float64, time.Duration) {}

// EventSink receives engine events for optional ECS integration.
type EventSink interface {
	EmitKey(e KeyEvent)
	EmitNode(e NodeEvent)
}

// KeyEvent is forwarded to the EventSink for every key transition applied to
// the InputState.
type KeyEvent struct {
	Key     string
	Pressed bool
	Frame   uint64
}

// NodeEventType distinguishes node lifecycle events.
type NodeEventType uint8

const (
	NodeAdded NodeEventType = iota
	NodeRemoved
)

// NodeEvent is forwarded to the EventSink when a node enters or leaves the
// registry.
type NodeEvent struct {
	Type   NodeEventType
	NodeID uint32
	Name   string
	Frame  uint64
}
