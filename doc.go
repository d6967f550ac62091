// Package zen is a small 2D engine scaffold: a frame loop that owns a window,
// keyboard state and a flat list of rectangular nodes, each of which may carry
// a behavior.
//
// # Quick start
//
// The simplest way to get started is desktop.NewEngine, which opens an
// Ebitengine window (and audio) for you:
//
//	e := desktop.NewEngine(640, 480, "My Game")
//	e.Behaviors().Register("player", newPlayer)
//	e.NewNode(zen.NodeConfig{X: 10, Y: 10, Width: 20, Height: 20,
//		Color: zen.Red, Behavior: "player", Name: "player"})
//	e.SetGameLoop(func(dt float64) { e.ClearBg(zen.Black) })
//	if err := e.MainLoop(); err != nil {
//		log.Fatal(err)
//	}
//
// For other targets, create a Platform (platform/term for terminals,
// platform/headless for tests) and call New.
//
// # Frame loop
//
// Each iteration of MainLoop runs, in order: poll events into the
// InputState, call the game loop callback with dt, update every node, draw
// every node, present. Nodes are updated and drawn in creation order, so a
// node created later is drawn on top of earlier ones.
//
// # Behaviors
//
// A behavior is any Go value implementing some of Initer, Updater and
// Drawer. Behaviors are registered on a Behaviors registry under a tag and
// attached to nodes by tag at creation time. Each node's behavior runs with a
// Context exposing dt, the node and the engine. Package script builds
// behaviors from Go source interpreted at runtime.
//
// Any error or panic in behavior code is fatal: the default handler writes a
// crash report and exits the process.
package zen
