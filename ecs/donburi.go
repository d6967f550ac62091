// Package ecs provides ECS adapters for zen.
package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/zen"
)

// KeyEventType is the Donburi event type for key transitions.
var KeyEventType = events.NewEventType[zen.KeyEvent]()

// NodeEventType is the Donburi event type for node registry changes.
var NodeEventType = events.NewEventType[zen.NodeEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on the world and delivered by events.ProcessAllEvents (or the
// per-type ProcessEvents), typically from the game loop callback.
func NewDonburiSink(world donburi.World) zen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitKey(e zen.KeyEvent) {
	KeyEventType.Publish(s.world, e)
}

func (s *donburiSink) EmitNode(e zen.NodeEvent) {
	NodeEventType.Publish(s.world, e)
}
