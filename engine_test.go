package zen

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// --- MainLoop lifecycle -----------------------------------------------------

func TestMainLoopWithoutGameLoop(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	if err := e.MainLoop(); !errors.Is(err, ErrNoGameLoop) {
		t.Fatalf("MainLoop err = %v, want ErrNoGameLoop", err)
	}
	if e.State() != StateUninitialized {
		t.Errorf("state = %v, want uninitialized", e.State())
	}
	if p.polls != 0 || p.presents != 0 {
		t.Errorf("no frame should run: polls=%d presents=%d", p.polls, p.presents)
	}

	// The engine stays usable once a game loop is set.
	runFrames(t, e, 1, nil)
	if e.State() != StateStopped {
		t.Errorf("state = %v, want stopped", e.State())
	}
}

func TestMainLoopAfterStop(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	runFrames(t, e, 2, nil)
	if err := e.MainLoop(); !errors.Is(err, ErrEngineStopped) {
		t.Errorf("second MainLoop err = %v, want ErrEngineStopped", err)
	}
}

func TestMainLoopReentry(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	var inner error
	runFrames(t, e, 1, func(float64) { inner = e.MainLoop() })
	if !errors.Is(inner, ErrEngineRunning) {
		t.Errorf("nested MainLoop err = %v, want ErrEngineRunning", inner)
	}
}

func TestGameLoopFromConfig(t *testing.T) {
	calls := 0
	var e *Engine
	e, _, _ = testEngine(t, Config{GameLoop: func(float64) {
		calls++
		e.Stop()
	}})
	if err := e.MainLoop(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFrameOrder(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	var order []string
	register(e, "rec", BehaviorFuncs{
		UpdateFn: func(*Context, float64) error { order = append(order, "update"); return nil },
		DrawFn:   func(*Context, Renderer) error { order = append(order, "draw"); return nil },
	})
	e.NewNode(NodeConfig{Behavior: "rec"})
	p.onPoll = func(int) { order = append(order, "poll") }

	runFrames(t, e, 1, func(float64) { order = append(order, "gameloop") })

	want := "poll gameloop update draw"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
	if p.presents != 1 {
		t.Errorf("presents = %d, want 1", p.presents)
	}
}

// --- Nodes ------------------------------------------------------------------

func TestStaticNodeDrawsRect(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	n := e.NewNode(NodeConfig{X: 1, Y: 2, Width: 3, Height: 4, Color: Red})
	if n.Behavior() != nil {
		t.Fatal("static node should have no behavior")
	}
	runFrames(t, e, 1, nil)

	rects := p.rects()
	if len(rects) != 1 {
		t.Fatalf("rects = %d, want 1", len(rects))
	}
	r := rects[0]
	if r.x != 1 || r.y != 2 || r.w != 3 || r.h != 4 || r.c != Red {
		t.Errorf("rect = %+v", r)
	}
	if n.X != 1 || n.Y != 2 {
		t.Error("static node must not move")
	}
}

func TestInitRunsOnceBeforeUpdate(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	var log []string
	register(e, "life", BehaviorFuncs{
		InitFn:   func(*Context) error { log = append(log, "init"); return nil },
		UpdateFn: func(*Context, float64) error { log = append(log, "update"); return nil },
	})
	e.NewNode(NodeConfig{Behavior: "life"})
	if len(log) != 1 || log[0] != "init" {
		t.Fatalf("after NewNode log = %v, want [init]", log)
	}
	runFrames(t, e, 3, nil)
	if got := strings.Join(log, ","); got != "init,update,update,update" {
		t.Errorf("log = %s", got)
	}
}

func TestRegistryOrder(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	var order []string
	register(e, "named", BehaviorFuncs{
		UpdateFn: func(ctx *Context, _ float64) error {
			order = append(order, ctx.Self.Name)
			return nil
		},
	})
	for _, name := range []string{"a", "b", "c"} {
		e.NewNode(NodeConfig{Name: name, Behavior: "named", Width: 1, Height: 1})
	}
	runFrames(t, e, 1, nil)

	if got := strings.Join(order, ""); got != "abc" {
		t.Errorf("update order = %q, want abc", got)
	}
	if rects := p.rects(); len(rects) != 3 {
		t.Errorf("rects = %d, want 3", len(rects))
	}
}

func TestNodeIDsAreUnique(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	a := e.NewNode(NodeConfig{})
	b := e.NewNode(NodeConfig{})
	if a.ID == b.ID {
		t.Fatalf("IDs collide: %d", a.ID)
	}
	if got, ok := e.NodeByID(b.ID); !ok || got != b {
		t.Error("NodeByID did not return b")
	}
}

func TestContextRefreshedBeforeUpdate(t *testing.T) {
	clk := newFakeClock()
	e, _, _ := testEngine(t, Config{})
	e.now = clk.now

	var seen []float64
	register(e, "dt", BehaviorFuncs{
		UpdateFn: func(ctx *Context, dt float64) error {
			if ctx.DT != dt {
				t.Errorf("ctx.DT = %v, dt = %v", ctx.DT, dt)
			}
			if ctx.Engine != e {
				t.Error("ctx.Engine not bound")
			}
			seen = append(seen, dt)
			return nil
		},
	})
	n := e.NewNode(NodeConfig{Behavior: "dt"})
	if n.Context().Self != n {
		t.Error("ctx.Self not bound")
	}

	e.SetGameLoop(func(float64) {})
	start(e)
	clk.advance(100 * time.Millisecond)
	e.step()
	clk.advance(250 * time.Millisecond)
	e.step()

	if len(seen) != 2 || seen[0] != 0.1 || seen[1] != 0.25 {
		t.Errorf("dt values = %v, want [0.1 0.25]", seen)
	}
}

func TestNodeByName(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	first := e.NewNode(NodeConfig{Name: "enemy"})
	e.NewNode(NodeConfig{Name: "enemy"})
	e.NewNode(NodeConfig{Name: "player"})

	got, err := e.NodeByName("enemy")
	if err != nil || got != first {
		t.Errorf("NodeByName(enemy) = %v, %v; want first", got, err)
	}
	if all := e.NodesByName("enemy"); len(all) != 2 {
		t.Errorf("NodesByName(enemy) = %d nodes, want 2", len(all))
	}

	_, err = e.NodeByName("ghost")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
	var nf *NodeNotFoundError
	if !errors.As(err, &nf) || nf.Name != "ghost" {
		t.Errorf("err = %#v, want *NodeNotFoundError{ghost}", err)
	}
	if all := e.NodesByName("ghost"); len(all) != 0 {
		t.Errorf("NodesByName(ghost) = %v, want empty", all)
	}
}

func TestRemoveNode(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	a := e.NewNode(NodeConfig{Name: "a"})
	b := e.NewNode(NodeConfig{Name: "b"})

	if !e.RemoveNode(a) {
		t.Fatal("RemoveNode(a) = false")
	}
	if e.RemoveNode(a) {
		t.Error("second RemoveNode(a) should be false")
	}
	if e.RemoveNode(nil) {
		t.Error("RemoveNode(nil) should be false")
	}
	if !a.IsRemoved() {
		t.Error("a should be marked removed")
	}
	if nodes := e.Nodes(); len(nodes) != 1 || nodes[0] != b {
		t.Errorf("Nodes() = %v, want [b]", nodes)
	}
	if _, ok := e.NodeByID(a.ID); ok {
		t.Error("NodeByID should miss a removed node")
	}
	if _, err := e.NodeByName("a"); err == nil {
		t.Error("NodeByName should miss a removed node")
	}

	other, _, _ := testEngine(t, Config{})
	if other.RemoveNode(b) {
		t.Error("RemoveNode from another engine should be false")
	}
}

func TestRemoveSelfDuringInit(t *testing.T) {
	e, _, fatals := testEngine(t, Config{})
	register(e, "ephemeral", BehaviorFuncs{
		InitFn: func(ctx *Context) error {
			ctx.Engine.RemoveNode(ctx.Self)
			return nil
		},
	})
	keep := e.NewNode(NodeConfig{Name: "keep"})
	n := e.NewNode(NodeConfig{Name: "gone", Behavior: "ephemeral"})

	if n == nil || !n.IsRemoved() {
		t.Fatalf("node = %v, want a removed node", n)
	}
	if _, ok := e.NodeByID(n.ID); ok {
		t.Error("NodeByID should miss a node removed during Init")
	}
	if nodes := e.Nodes(); len(nodes) != 1 || nodes[0] != keep {
		t.Errorf("Nodes() = %v, want [keep]", nodes)
	}
	if len(*fatals) != 0 {
		t.Errorf("fatals = %v", *fatals)
	}
}

func TestRemoveDuringUpdate(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	var victim *Node
	var updated []string
	register(e, "killer", BehaviorFuncs{
		UpdateFn: func(ctx *Context, _ float64) error {
			updated = append(updated, ctx.Self.Name)
			ctx.Engine.RemoveNode(victim)
			return nil
		},
	})
	register(e, "victim", BehaviorFuncs{
		UpdateFn: func(ctx *Context, _ float64) error {
			updated = append(updated, ctx.Self.Name)
			return nil
		},
	})
	e.NewNode(NodeConfig{Name: "killer", Behavior: "killer", Width: 1, Height: 1})
	victim = e.NewNode(NodeConfig{Name: "victim", Behavior: "victim", Width: 1, Height: 1})

	runFrames(t, e, 1, nil)

	if got := strings.Join(updated, ","); got != "killer" {
		t.Errorf("updated = %s, want killer only", got)
	}
	if rects := p.rects(); len(rects) != 1 {
		t.Errorf("rects = %d, want 1 (victim not drawn)", len(rects))
	}
	if len(e.nodes) != 1 {
		t.Errorf("registry len = %d after compaction, want 1", len(e.nodes))
	}
}

func TestSpawnDuringUpdate(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	childUpdates := 0
	register(e, "child", BehaviorFuncs{
		UpdateFn: func(*Context, float64) error { childUpdates++; return nil },
	})
	spawned := false
	register(e, "parent", BehaviorFuncs{
		UpdateFn: func(ctx *Context, _ float64) error {
			if !spawned {
				spawned = true
				ctx.Engine.NewNode(NodeConfig{Name: "child", Behavior: "child"})
			}
			return nil
		},
	})
	e.NewNode(NodeConfig{Name: "parent", Behavior: "parent"})

	runFrames(t, e, 1, nil)
	if childUpdates != 1 {
		t.Errorf("child updates = %d, want 1 (same frame)", childUpdates)
	}
	if len(e.Nodes()) != 2 {
		t.Errorf("nodes = %d, want 2", len(e.Nodes()))
	}
}

// --- Input ------------------------------------------------------------------

func TestKeyStateRoundTrip(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	p.onPoll = func(poll int) {
		switch poll {
		case 1:
			p.push(Event{Type: EventKeyDown, Key: "a"})
		case 2:
			p.push(Event{Type: EventKeyUp, Key: "a"})
		}
	}
	var states []bool
	runFrames(t, e, 3, func(float64) {
		states = append(states, e.IsKeyPressed("a"))
		if e.IsKeyPressed("z") {
			t.Error("z was never pressed")
		}
	})
	if len(states) != 3 || !states[0] || states[1] || states[2] {
		t.Errorf("states = %v, want [true false false]", states)
	}
}

func TestEscapeExits(t *testing.T) {
	e, p, _ := testEngine(t, Config{ExitOnEscape: true})
	p.onPoll = func(poll int) {
		if poll == 2 {
			p.push(Event{Type: EventKeyDown, Key: KeyEscape})
		}
	}
	calls := 0
	e.SetGameLoop(func(float64) { calls++ })
	if err := e.MainLoop(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("game loop calls = %d, want 1", calls)
	}
	if e.State() != StateStopped {
		t.Errorf("state = %v, want stopped", e.State())
	}
	if e.IsKeyPressed(KeyEscape) {
		t.Error("escape should not be recorded when it exits")
	}
}

func TestEscapeIgnoredWhenDisabled(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	p.push(Event{Type: EventKeyDown, Key: KeyEscape})
	var pressed bool
	runFrames(t, e, 2, func(float64) { pressed = e.IsKeyPressed(KeyEscape) })
	if !pressed {
		t.Error("escape should be an ordinary key when exit-on-escape is off")
	}

	e2, p2, _ := testEngine(t, Config{ExitOnEscape: true})
	e2.ExitOnEsc(false)
	p2.push(Event{Type: EventKeyDown, Key: KeyEscape})
	runFrames(t, e2, 2, nil)
}

func TestQuitEndsLoop(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	p.onPoll = func(poll int) {
		if poll == 3 {
			p.push(Event{Type: EventKeyDown, Key: "q"}, Event{Type: EventQuit})
		}
	}
	calls := 0
	e.SetGameLoop(func(float64) { calls++ })
	if err := e.MainLoop(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("game loop calls = %d, want 2", calls)
	}
	if p.presents != 2 {
		t.Errorf("presents = %d, want 2", p.presents)
	}
	if !e.IsKeyPressed("q") {
		t.Error("events in the quit frame are still drained")
	}
}

// --- Timing -----------------------------------------------------------------

func TestMaxDeltaClamp(t *testing.T) {
	clk := newFakeClock()
	e, _, _ := testEngine(t, Config{MaxDelta: 50 * time.Millisecond})
	e.now = clk.now
	var got float64
	e.SetGameLoop(func(dt float64) { got = dt })
	start(e)

	clk.advance(2 * time.Second)
	e.step()
	if got != 0.05 {
		t.Errorf("dt = %v, want 0.05", got)
	}
	clk.advance(10 * time.Millisecond)
	e.step()
	if got != 0.01 {
		t.Errorf("dt = %v, want 0.01", got)
	}
}

func TestMaxFPSPacing(t *testing.T) {
	clk := newFakeClock()
	e, _, _ := testEngine(t, Config{MaxFPS: 50})
	e.now = clk.now
	e.sleep = clk.sleep

	var dts []float64
	runFrames(t, e, 3, func(dt float64) { dts = append(dts, dt) })

	if len(clk.sleeps) != 2 {
		t.Fatalf("sleeps = %v, want 2", clk.sleeps)
	}
	for _, s := range clk.sleeps {
		if s != 20*time.Millisecond {
			t.Errorf("sleep = %v, want 20ms", s)
		}
	}
	if dts[0] != 0 || dts[1] != 0.02 || dts[2] != 0.02 {
		t.Errorf("dts = %v, want [0 0.02 0.02]", dts)
	}
}

func TestUncappedDoesNotSleep(t *testing.T) {
	clk := newFakeClock()
	e, _, _ := testEngine(t, Config{})
	e.sleep = clk.sleep
	runFrames(t, e, 3, nil)
	if len(clk.sleeps) != 0 {
		t.Errorf("sleeps = %v, want none", clk.sleeps)
	}
}

// --- Fatal errors -----------------------------------------------------------

func TestInitPanicIsFatal(t *testing.T) {
	e, _, fatals := testEngine(t, Config{})
	register(e, "bad", BehaviorFuncs{
		InitFn: func(*Context) error { panic("boom") },
	})
	if n := e.NewNode(NodeConfig{Name: "x", Behavior: "bad"}); n != nil {
		t.Error("NewNode should return nil when binding fails")
	}
	if len(*fatals) != 1 {
		t.Fatalf("fatals = %d, want 1", len(*fatals))
	}
	var be *BehaviorError
	if !errors.As((*fatals)[0], &be) {
		t.Fatalf("fatal = %T, want *BehaviorError", (*fatals)[0])
	}
	if be.Phase != PhaseInit || be.Behavior != "bad" || be.Node != "x" {
		t.Errorf("be = %+v", be)
	}
	if len(e.Nodes()) != 0 {
		t.Error("failed node must not be registered")
	}

	e.SetGameLoop(func(float64) {})
	if err := e.MainLoop(); !errors.Is(err, be) {
		t.Errorf("MainLoop err = %v, want the recorded fatal error", err)
	}
}

func TestUnknownBehaviorIsFatal(t *testing.T) {
	e, _, fatals := testEngine(t, Config{})
	if n := e.NewNode(NodeConfig{Behavior: "nope"}); n != nil {
		t.Error("NewNode should return nil")
	}
	if len(*fatals) != 1 || !errors.Is((*fatals)[0], ErrUnknownBehavior) {
		t.Errorf("fatals = %v, want ErrUnknownBehavior", *fatals)
	}
}

func TestUpdateErrorIsFatal(t *testing.T) {
	e, p, fatals := testEngine(t, Config{})
	sentinel := errors.New("broken")
	register(e, "bad", BehaviorFuncs{
		UpdateFn: func(*Context, float64) error { return sentinel },
	})
	e.NewNode(NodeConfig{Name: "n", Behavior: "bad"})
	e.SetGameLoop(func(float64) {})

	err := e.MainLoop()
	if !errors.Is(err, sentinel) {
		t.Fatalf("MainLoop err = %v, want sentinel", err)
	}
	var be *BehaviorError
	if !errors.As(err, &be) || be.Phase != PhaseUpdate {
		t.Errorf("err = %v, want update-phase BehaviorError", err)
	}
	if len(*fatals) != 1 {
		t.Errorf("fatals = %d, want 1", len(*fatals))
	}
	if p.presents != 0 {
		t.Errorf("presents = %d, want 0", p.presents)
	}
	if e.FatalError() != err {
		t.Error("FatalError should return the MainLoop error")
	}
}

func TestGameLoopPanicIsFatal(t *testing.T) {
	e, _, fatals := testEngine(t, Config{})
	e.SetGameLoop(func(float64) {
		var m map[string]int
		m["x"] = 1
	})
	err := e.MainLoop()
	var be *BehaviorError
	if !errors.As(err, &be) || be.Phase != PhaseGameLoop {
		t.Fatalf("err = %v, want game-loop BehaviorError", err)
	}
	if len(*fatals) != 1 {
		t.Errorf("fatals = %d, want 1", len(*fatals))
	}
	if _, ok := originFrame(err); !ok {
		t.Error("recovered panic should carry a stack")
	}
}

func TestDrawErrorIsFatal(t *testing.T) {
	e, _, _ := testEngine(t, Config{})
	register(e, "bad", BehaviorFuncs{
		DrawFn: func(*Context, Renderer) error { return errors.New("no ink") },
	})
	e.NewNode(NodeConfig{Behavior: "bad"})
	e.SetGameLoop(func(float64) {})
	var be *BehaviorError
	if err := e.MainLoop(); !errors.As(err, &be) || be.Phase != PhaseDraw {
		t.Errorf("err = %v, want draw-phase BehaviorError", err)
	}
}

func TestPresentErrorIsFatal(t *testing.T) {
	e, p, fatals := testEngine(t, Config{})
	p.presentErr = errors.New("device lost")
	e.SetGameLoop(func(float64) {})
	if err := e.MainLoop(); !errors.Is(err, p.presentErr) {
		t.Errorf("err = %v, want present error", err)
	}
	if len(*fatals) != 1 {
		t.Errorf("fatals = %d, want 1", len(*fatals))
	}
}

func TestFatalSpawnEndsFrame(t *testing.T) {
	e, p, fatals := testEngine(t, Config{})
	register(e, "spawner", BehaviorFuncs{
		UpdateFn: func(ctx *Context, _ float64) error {
			if ctx.Engine.NewNode(NodeConfig{Behavior: "missing"}) != nil {
				t.Error("NewNode with an unknown behavior should return nil")
			}
			return nil
		},
	})
	laterUpdates := 0
	register(e, "later", BehaviorFuncs{
		UpdateFn: func(*Context, float64) error { laterUpdates++; return nil },
	})
	e.NewNode(NodeConfig{Behavior: "spawner"})
	e.NewNode(NodeConfig{Behavior: "later"})
	e.SetGameLoop(func(float64) {})

	if err := e.MainLoop(); !errors.Is(err, ErrUnknownBehavior) {
		t.Errorf("err = %v, want ErrUnknownBehavior", err)
	}
	if len(*fatals) != 1 {
		t.Errorf("fatals = %d, want 1", len(*fatals))
	}
	if laterUpdates != 0 {
		t.Errorf("later node updated %d times after the fatal error", laterUpdates)
	}
	if p.presents != 0 || len(p.rects()) != 0 {
		t.Errorf("presents = %d, rects = %d, want no drawing", p.presents, len(p.rects()))
	}
}

func TestFatalSpawnInGameLoopSkipsUpdate(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	updates := 0
	register(e, "counter", BehaviorFuncs{
		UpdateFn: func(*Context, float64) error { updates++; return nil },
	})
	e.NewNode(NodeConfig{Behavior: "counter"})
	e.SetGameLoop(func(float64) { e.NewNode(NodeConfig{Behavior: "missing"}) })

	if err := e.MainLoop(); !errors.Is(err, ErrUnknownBehavior) {
		t.Errorf("err = %v, want ErrUnknownBehavior", err)
	}
	if updates != 0 || p.presents != 0 {
		t.Errorf("updates = %d, presents = %d, want 0", updates, p.presents)
	}
}

// --- Services ---------------------------------------------------------------

type recordingSink struct {
	keys  []KeyEvent
	nodes []NodeEvent
}

func (s *recordingSink) EmitKey(e KeyEvent)   { s.keys = append(s.keys, e) }
func (s *recordingSink) EmitNode(e NodeEvent) { s.nodes = append(s.nodes, e) }

func TestEventSink(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	sink := &recordingSink{}
	e.SetEventSink(sink)

	n := e.NewNode(NodeConfig{Name: "box"})
	p.push(Event{Type: EventKeyDown, Key: "k"})
	runFrames(t, e, 1, func(float64) { e.RemoveNode(n) })

	if len(sink.nodes) != 2 {
		t.Fatalf("node events = %+v", sink.nodes)
	}
	if sink.nodes[0].Type != NodeAdded || sink.nodes[0].NodeID != n.ID || sink.nodes[0].Name != "box" {
		t.Errorf("added = %+v", sink.nodes[0])
	}
	if sink.nodes[1].Type != NodeRemoved || sink.nodes[1].Frame != 1 {
		t.Errorf("removed = %+v", sink.nodes[1])
	}
	if len(sink.keys) != 1 || sink.keys[0].Key != "k" || !sink.keys[0].Pressed || sink.keys[0].Frame != 1 {
		t.Errorf("key events = %+v", sink.keys)
	}
}

func TestShowFPSAddsOverlay(t *testing.T) {
	e, p, _ := testEngine(t, Config{ShowFPS: true})
	runFrames(t, e, 1, nil)
	n, err := e.NodeByName(FPSBehavior)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := n.Behavior().(*FPSCounter); !ok {
		t.Errorf("behavior = %T, want *FPSCounter", n.Behavior())
	}
	var texts int
	for _, c := range p.calls {
		if c.op == "text" && strings.HasPrefix(c.text, "FPS:") {
			texts++
		}
	}
	if texts != 1 {
		t.Errorf("fps texts = %d, want 1", texts)
	}
}

func TestDefaults(t *testing.T) {
	e := New(newRecordingPlatform(), Config{})
	if e.Audio() == nil {
		t.Error("Audio should default to silence")
	}
	if e.Logger() == nil {
		t.Error("Logger should default")
	}
	if !e.Behaviors().Has(FPSBehavior) {
		t.Error("default registry should hold fps")
	}
	if e.ScreenshotDir != defaultScreenshotDir {
		t.Errorf("ScreenshotDir = %q", e.ScreenshotDir)
	}
	if w, h := e.Size(); w != 320 || h != 240 {
		t.Errorf("Size = %d,%d", w, h)
	}
	if e.RunID().String() == "" {
		t.Error("RunID should be set")
	}
}

func TestNewPanicsOnNilPlatform(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(nil, Config{})
}

func TestDrawHelpers(t *testing.T) {
	e, p, _ := testEngine(t, Config{})
	e.ClearBg(Blue)
	e.DrawRect(1, 1, 2, 2, Green)
	e.DrawText("hi", 3, 4, 12, White)
	if len(p.calls) != 3 || p.calls[0].op != "clear" || p.calls[1].op != "rect" || p.calls[2].text != "hi" {
		t.Errorf("calls = %+v", p.calls)
	}
}
