package zen

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
)

const defaultNodeCap = 64

// Overridden in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Engine owns the platform, the input state and the node registry, and runs
// the frame loop:
//
//	poll events → game loop callback → update nodes → draw nodes → present
//
// An Engine is single-threaded. Everything, including behavior hooks, runs on
// the goroutine that called MainLoop.
type Engine struct {
	platform  Platform
	title     string
	gameLoop  func(dt float64)
	running   bool
	exitOnEsc bool
	state     State

	input *InputState

	nodes     []*Node
	byID      *intmap.Map[uint32, *Node]
	nextID    uint32
	iterating bool
	dirty     bool // removed nodes awaiting compaction

	behaviors *Behaviors
	audio     Audio
	sink      EventSink
	log       *slog.Logger
	onFatal   func(error)
	fatalErr  error

	runID    uuid.UUID
	frame    uint64
	lastTime time.Time
	maxFPS   int
	maxDelta time.Duration
	showFPS  bool
	debug    bool

	now   func() time.Time
	sleep func(time.Duration)

	events          []Event
	injectQueue     []Event
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is the directory Screenshot writes into.
	ScreenshotDir string
}

// New creates an engine drawing to p. Panics if p is nil.
func New(p Platform, cfg Config) *Engine {
	if p == nil {
		panic("zen: nil platform")
	}
	e := &Engine{
		platform:      p,
		title:         cfg.Title,
		gameLoop:      cfg.GameLoop,
		exitOnEsc:     cfg.ExitOnEscape,
		input:         NewInputState(),
		nodes:         make([]*Node, 0, defaultNodeCap),
		byID:          intmap.New[uint32, *Node](defaultNodeCap),
		behaviors:     cfg.Behaviors,
		audio:         cfg.Audio,
		log:           cfg.Logger,
		onFatal:       cfg.OnFatal,
		runID:         uuid.New(),
		maxFPS:        cfg.MaxFPS,
		maxDelta:      cfg.MaxDelta,
		showFPS:       cfg.ShowFPS,
		debug:         cfg.Debug,
		now:           time.Now,
		sleep:         time.Sleep,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if e.behaviors == nil {
		e.behaviors = NewBehaviors()
	}
	if e.audio == nil {
		e.audio = silentAudio{}
	}
	if e.log == nil {
		e.log = newDefaultLogger(cfg.Debug)
	}
	if e.onFatal == nil {
		e.onFatal = e.crash
	}
	if e.ScreenshotDir == "" {
		e.ScreenshotDir = defaultScreenshotDir
	}
	return e
}

// --- Frame loop ---

// SetGameLoop sets the per-frame callback. It receives the frame's dt in
// seconds.
func (e *Engine) SetGameLoop(fn func(dt float64)) {
	e.gameLoop = fn
}

// ExitOnEsc enables or disables stopping the loop on an escape key press.
func (e *Engine) ExitOnEsc(enable bool) {
	e.exitOnEsc = enable
}

// MainLoop runs frames until a quit event, an escape press (when enabled),
// Stop, or a fatal error. Without a game loop callback it logs a diagnostic
// and returns ErrNoGameLoop, leaving the engine reusable.
func (e *Engine) MainLoop() error {
	switch e.state {
	case StateRunning:
		return ErrEngineRunning
	case StateStopped:
		return ErrEngineStopped
	}
	if e.fatalErr != nil {
		return e.fatalErr
	}
	if e.gameLoop == nil {
		e.log.Error("game loop function not set; call SetGameLoop before MainLoop")
		return ErrNoGameLoop
	}

	if e.showFPS {
		e.NewNode(NodeConfig{X: 4, Y: 4, Name: FPSBehavior, Behavior: FPSBehavior})
	}

	e.state = StateRunning
	e.running = true
	e.lastTime = e.now()
	e.log.Info("main loop started", "title", e.title, "run", e.runID, "nodes", len(e.nodes))

	var err error
	if d, ok := e.platform.(Driver); ok {
		err = d.Drive(e.step)
	} else {
		err = e.loop()
	}

	e.running = false
	e.state = StateStopped
	e.log.Info("main loop stopped", "run", e.runID, "frames", e.frame)
	if e.fatalErr != nil {
		return e.fatalErr
	}
	return err
}

func (e *Engine) loop() error {
	for {
		start := e.now()
		if !e.step() {
			return nil
		}
		e.pace(start)
	}
}

// pace sleeps off the rest of the frame budget when MaxFPS is set.
func (e *Engine) pace(start time.Time) {
	if e.maxFPS <= 0 {
		return
	}
	budget := time.Second / time.Duration(e.maxFPS)
	if elapsed := e.now().Sub(start); elapsed < budget {
		e.sleep(budget - elapsed)
	}
}

// step runs one frame. It returns false once the loop must end.
func (e *Engine) step() bool {
	if !e.running {
		return false
	}

	now := e.now()
	delta := now.Sub(e.lastTime)
	e.lastTime = now
	if e.maxDelta > 0 && delta > e.maxDelta {
		delta = e.maxDelta
	}
	dt := delta.Seconds()
	e.frame++

	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if !e.pollEvents() || !e.running {
		return false
	}

	if e.debug {
		stats.pollTime = time.Since(t0)
		t0 = time.Now()
	}

	if err := safeCall(func() error { e.gameLoop(dt); return nil }); err != nil {
		e.fail(&BehaviorError{Phase: PhaseGameLoop, Err: err})
		return false
	}
	if e.fatalErr != nil {
		return false
	}

	if e.debug {
		stats.gameLoopTime = time.Since(t0)
		t0 = time.Now()
	}

	if !e.updateNodes(dt) {
		return false
	}

	if e.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	if !e.drawNodes() {
		return false
	}

	if e.debug {
		stats.drawTime = time.Since(t0)
		t0 = time.Now()
	}

	if err := e.platform.Present(); err != nil {
		e.fail(fmt.Errorf("zen: present frame: %w", err))
		return false
	}
	e.flushScreenshots()

	if e.debug {
		stats.presentTime = time.Since(t0)
		stats.nodeCount = len(e.nodes)
		e.debugLog(stats)
	}

	e.compact()
	return e.running
}

// pollEvents drains injected and platform events into the input state. It
// returns false when an escape press must end the loop immediately.
func (e *Engine) pollEvents() bool {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.events = e.drainInjected(e.events[:0])
	e.events = e.platform.PollEvents(e.events)

	for _, ev := range e.events {
		switch ev.Type {
		case EventQuit:
			e.running = false
		case EventKeyDown:
			if ev.Key == KeyEscape && e.exitOnEsc {
				e.running = false
				return false
			}
			e.setKey(ev.Key, true)
		case EventKeyUp:
			e.setKey(ev.Key, false)
		}
	}
	return true
}

func (e *Engine) setKey(key string, pressed bool) {
	e.input.set(key, pressed)
	if e.sink != nil {
		e.sink.EmitKey(KeyEvent{Key: key, Pressed: pressed, Frame: e.frame})
	}
}

// updateNodes runs every live node's Update in registry order. Nodes spawned
// during the pass are appended to the registry and updated in the same pass.
func (e *Engine) updateNodes(dt float64) bool {
	e.iterating = true
	defer func() { e.iterating = false }()
	for i := 0; i < len(e.nodes); i++ {
		n := e.nodes[i]
		if n.removed {
			continue
		}
		if err := n.Update(dt); err != nil {
			e.fail(err)
			return false
		}
		if e.fatalErr != nil {
			return false
		}
	}
	return true
}

// drawNodes draws every live node in registry order; later nodes cover
// earlier ones.
func (e *Engine) drawNodes() bool {
	e.iterating = true
	defer func() { e.iterating = false }()
	for i := 0; i < len(e.nodes); i++ {
		n := e.nodes[i]
		if n.removed {
			continue
		}
		if err := n.Draw(e.platform); err != nil {
			e.fail(err)
			return false
		}
		if e.fatalErr != nil {
			return false
		}
	}
	return true
}

// Stop ends the loop at the next frame boundary.
func (e *Engine) Stop() {
	e.running = false
}

// State returns the loop state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether the loop will run another frame.
func (e *Engine) Running() bool {
	return e.running
}

// Frame returns the number of frames started so far.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// --- Failure handling ---

// fail records err as fatal, stops the loop and hands err to the fatal
// handler. The default handler does not return.
func (e *Engine) fail(err error) {
	if e.fatalErr == nil {
		e.fatalErr = err
	}
	e.running = false
	e.log.Error("fatal error", "run", e.runID, "frame", e.frame, "err", err)
	e.onFatal(err)
}

// crash is the default fatal handler.
func (e *Engine) crash(err error) {
	_, _ = fmt.Fprintf(stderr, "zen run %s crashed at frame %d\n", e.runID, e.frame)
	WriteCrashReport(stderr, err)
	exit(1)
}

// FatalError returns the first fatal error, if any.
func (e *Engine) FatalError() error {
	return e.fatalErr
}

// --- Nodes ---

// NewNode creates a node and appends it to the registry. If cfg.Behavior is
// set, the behavior is built and its Init hook run before the node is
// registered. A failing behavior is fatal; if the fatal handler returns,
// NewNode returns nil and nothing is registered.
func (e *Engine) NewNode(cfg NodeConfig) *Node {
	e.nextID++
	n := &Node{
		ID:     e.nextID,
		Name:   cfg.Name,
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
		Color:  cfg.Color,
		engine: e,
	}
	if cfg.Behavior != "" {
		if err := n.bind(cfg.Behavior, e.behaviors); err != nil {
			e.fail(err)
			return nil
		}
		// Init removed its own node.
		if n.removed {
			return n
		}
	}
	e.nodes = append(e.nodes, n)
	e.byID.Put(n.ID, n)
	if e.sink != nil {
		e.sink.EmitNode(NodeEvent{Type: NodeAdded, NodeID: n.ID, Name: n.Name, Frame: e.frame})
	}
	if e.debug {
		e.debugCheckNodeCount()
	}
	return n
}

// RemoveNode takes n out of the registry. It is skipped from the moment of
// the call; the registry slot is reclaimed at the end of the frame. Returns
// false if n is nil, already removed, or belongs to another engine.
func (e *Engine) RemoveNode(n *Node) bool {
	if n == nil || n.engine != e || n.removed {
		return false
	}
	n.removed = true
	e.byID.Del(n.ID)
	e.dirty = true
	if e.sink != nil {
		e.sink.EmitNode(NodeEvent{Type: NodeRemoved, NodeID: n.ID, Name: n.Name, Frame: e.frame})
	}
	if !e.iterating {
		e.compact()
	}
	return true
}

// compact drops removed nodes from the registry, keeping the order of the
// rest.
func (e *Engine) compact() {
	if !e.dirty {
		return
	}
	live := e.nodes[:0]
	for _, n := range e.nodes {
		if !n.removed {
			live = append(live, n)
		}
	}
	clear(e.nodes[len(live):])
	e.nodes = live
	e.dirty = false
}

// Nodes returns the live nodes in registry order. The returned slice MUST NOT
// be mutated.
func (e *Engine) Nodes() []*Node {
	if !e.dirty {
		return e.nodes
	}
	out := make([]*Node, 0, len(e.nodes))
	for _, n := range e.nodes {
		if !n.removed {
			out = append(out, n)
		}
	}
	return out
}

// NodeByID returns the live node with the given ID.
func (e *Engine) NodeByID(id uint32) (*Node, bool) {
	return e.byID.Get(id)
}

// NodeByName returns the first live node named name, or a
// *NodeNotFoundError.
func (e *Engine) NodeByName(name string) (*Node, error) {
	for _, n := range e.nodes {
		if !n.removed && n.Name == name {
			return n, nil
		}
	}
	return nil, &NodeNotFoundError{Name: name}
}

// NodesByName returns every live node named name in registry order. The
// result is empty, not an error, when nothing matches.
func (e *Engine) NodesByName(name string) []*Node {
	var out []*Node
	for _, n := range e.nodes {
		if !n.removed && n.Name == name {
			out = append(out, n)
		}
	}
	return out
}

// Behaviors returns the registry used to resolve behavior tags.
func (e *Engine) Behaviors() *Behaviors {
	return e.behaviors
}

// --- Input ---

// IsKeyPressed reports whether key is held.
func (e *Engine) IsKeyPressed(key string) bool {
	return e.input.IsPressed(key)
}

// Input returns the engine's input state.
func (e *Engine) Input() *InputState {
	return e.input
}

// --- Drawing ---

// DrawRect fills a rectangle on the current frame.
func (e *Engine) DrawRect(x, y, w, h float64, c Color) {
	e.platform.DrawRect(x, y, w, h, c)
}

// DrawText draws text with a drop shadow on the current frame.
func (e *Engine) DrawText(text string, x, y, size float64, c Color) {
	e.platform.DrawText(text, x, y, size, c)
}

// ClearBg fills the whole frame with c.
func (e *Engine) ClearBg(c Color) {
	e.platform.Clear(c)
}

// Size returns the platform's drawable size.
func (e *Engine) Size() (width, height int) {
	return e.platform.Size()
}

// Platform returns the platform the engine draws to.
func (e *Engine) Platform() Platform {
	return e.platform
}

// --- Services ---

// Audio returns the audio device; never nil.
func (e *Engine) Audio() Audio {
	return e.audio
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.log
}

// RunID identifies this engine instance in logs and crash reports.
func (e *Engine) RunID() uuid.UUID {
	return e.runID
}

// SetEventSink sets the optional ECS bridge.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables or disables per-frame timing logs.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}
