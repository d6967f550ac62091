package zen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float values on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenColor) and call Update(dt) each frame. If the target node has been
// removed from its engine, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	set    [4]func(float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsRemoved() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.set[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenPosition animates node.X and node.Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.set[0] = func(v float64) { node.X = v }
	g.set[1] = func(v float64) { node.Y = v }
	return g
}

// TweenSize animates node.Width and node.Height.
func TweenSize(node *Node, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(node.Height), float32(toH), duration, fn)
	g.set[0] = func(v float64) { node.Width = v }
	g.set[1] = func(v float64) { node.Height = v }
	return g
}

// TweenColor animates the three channels of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.set[0] = func(v float64) { node.Color.R = channel(v) }
	g.set[1] = func(v float64) { node.Color.G = channel(v) }
	g.set[2] = func(v float64) { node.Color.B = channel(v) }
	return g
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// TweenMove returns a factory for a behavior that slides its node from the
// position it was created at to (toX, toY). With yoyo set the node then slides
// back and forth forever.
func TweenMove(toX, toY float64, duration float32, fn ease.TweenFunc, yoyo bool) BehaviorFactory {
	return func() (Behavior, error) {
		return &tweenMove{toX: toX, toY: toY, duration: duration, fn: fn, yoyo: yoyo}, nil
	}
}

type tweenMove struct {
	toX, toY     float64
	fromX, fromY float64
	duration     float32
	fn           ease.TweenFunc
	yoyo         bool
	group        *TweenGroup
}

func (t *tweenMove) Init(ctx *Context) error {
	t.fromX, t.fromY = ctx.Self.X, ctx.Self.Y
	t.group = TweenPosition(ctx.Self, t.toX, t.toY, t.duration, t.fn)
	return nil
}

func (t *tweenMove) Update(ctx *Context, dt float64) error {
	t.group.Update(float32(dt))
	if t.group.Done && t.yoyo && !ctx.Self.IsRemoved() {
		t.fromX, t.fromY, t.toX, t.toY = t.toX, t.toY, t.fromX, t.fromY
		t.group = TweenPosition(ctx.Self, t.toX, t.toY, t.duration, t.fn)
	}
	return nil
}
