package main

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/zen"
	"github.com/phanxgames/zen/ecs"
	"github.com/phanxgames/zen/script"
)

//go:embed scripts/pulse.go.txt
var pulseScript string

const (
	playerSpeed = 200.0
	boxSize     = 20.0
	spawnTone   = 660.0
)

var background = zen.RGB(30, 30, 40)

// demo holds the scene state shared by the game loop and behaviors.
type demo struct {
	e     *zen.Engine
	world donburi.World

	spawnHeld bool
	spawned   []*zen.Node
	live      int // maintained from node events
}

type bouncer struct {
	dx, dy float64
}

func (b *bouncer) Update(ctx *zen.Context, dt float64) error {
	n := ctx.Self
	w, h := ctx.Engine.Size()
	n.X += b.dx * dt
	n.Y += b.dy * dt
	if n.X < 0 || n.X+n.Width > float64(w) {
		b.dx = -b.dx
	}
	if n.Y < 0 || n.Y+n.Height > float64(h) {
		b.dy = -b.dy
	}
	return nil
}

func movePlayer(ctx *zen.Context, dt float64) error {
	e, n := ctx.Engine, ctx.Self
	var dx, dy float64
	if e.IsKeyPressed(zen.KeyLeft) || e.IsKeyPressed("a") {
		dx--
	}
	if e.IsKeyPressed(zen.KeyRight) || e.IsKeyPressed("d") {
		dx++
	}
	if e.IsKeyPressed(zen.KeyUp) || e.IsKeyPressed("w") {
		dy--
	}
	if e.IsKeyPressed(zen.KeyDown) || e.IsKeyPressed("s") {
		dy++
	}
	w, h := e.Size()
	n.X = clamp(n.X+dx*playerSpeed*dt, 0, float64(w)-n.Width)
	n.Y = clamp(n.Y+dy*playerSpeed*dt, 0, float64(h)-n.Height)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}

// setupScene registers the demo behaviors and creates the starting nodes.
func setupScene(e *zen.Engine) (*demo, error) {
	d := &demo{e: e, world: donburi.NewWorld()}

	b := e.Behaviors()
	b.Register("player", func() (zen.Behavior, error) {
		return &zen.BehaviorFuncs{UpdateFn: movePlayer}, nil
	})
	b.Register("bouncer", func() (zen.Behavior, error) {
		return &bouncer{dx: 120, dy: 90}, nil
	})
	b.Register("glider", zen.TweenMove(260, 40, 1.5, ease.InOutQuad, true))
	if err := script.Register(b, "pulse", pulseScript); err != nil {
		return nil, err
	}

	e.SetEventSink(ecs.NewDonburiSink(d.world))
	ecs.NodeEventType.Subscribe(d.world, func(_ donburi.World, ev zen.NodeEvent) {
		switch ev.Type {
		case zen.NodeAdded:
			d.live++
		case zen.NodeRemoved:
			d.live--
		}
	})

	nodes := []zen.NodeConfig{
		{Name: "player", X: 40, Y: 120, Width: boxSize, Height: boxSize, Color: zen.Green, Behavior: "player"},
		{Name: "glider", X: 20, Y: 40, Width: 16, Height: 16, Color: zen.Blue, Behavior: "glider"},
		{Name: "pulse", X: 200, Y: 160, Behavior: "pulse"},
	}
	for _, cfg := range nodes {
		if e.NewNode(cfg) == nil {
			return nil, fmt.Errorf("create node %q", cfg.Name)
		}
	}

	e.SetGameLoop(d.frame)
	return d, nil
}

// frame is the game loop callback: space spawns a bouncer, x removes the
// newest one.
func (d *demo) frame(dt float64) {
	e := d.e
	events.ProcessAllEvents(d.world)

	e.ClearBg(background)
	e.DrawText("arrows/wasd move, space spawns, x removes, esc quits", 8, 8, 14, zen.White)
	e.DrawText(fmt.Sprintf("nodes: %d", d.live), 8, 28, 14, zen.White)

	pressed := e.IsKeyPressed(zen.KeySpace)
	if pressed && !d.spawnHeld {
		d.spawn()
	}
	d.spawnHeld = pressed

	if e.IsKeyPressed("x") && len(d.spawned) > 0 {
		last := d.spawned[len(d.spawned)-1]
		d.spawned = d.spawned[:len(d.spawned)-1]
		e.RemoveNode(last)
	}
}

func (d *demo) spawn() {
	w, h := d.e.Size()
	n := d.e.NewNode(zen.NodeConfig{
		Name:     "bouncer",
		X:        float64(w) / 2,
		Y:        float64(h) / 2,
		Width:    boxSize / 2,
		Height:   boxSize / 2,
		Color:    zen.Red,
		Behavior: "bouncer",
	})
	if n == nil {
		return
	}
	d.spawned = append(d.spawned, n)
	d.e.Audio().PlayTone(spawnTone, 80*time.Millisecond)
}
