// Package ecs bridges zen engine events into an ECS world.
//
// The primary adapter is [NewDonburiSink], which publishes key transitions
// and node add/remove events into a [Donburi] world as typed events.
// Subscribe to [KeyEventType] or [NodeEventType] in your systems to receive
// them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	engine.SetEventSink(ecs.NewDonburiSink(world))
//	engine.SetGameLoop(func(dt float64) {
//		events.ProcessAllEvents(world)
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
