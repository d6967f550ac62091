package zen

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Context is the per-node environment a behavior runs in. The engine rebinds
// Self and Engine before every hook, and DT before every Update.
type Context struct {
	DT     float64
	Self   *Node
	Engine *Engine
}

// Behavior is any value implementing zero or more of Initer, Updater and
// Drawer. A hook the value does not implement is simply never called.
type Behavior any

// Initer runs once, when the node is created.
type Initer interface {
	Init(ctx *Context) error
}

// Updater runs once per frame, in registry order.
type Updater interface {
	Update(ctx *Context, dt float64) error
}

// Drawer runs after the node's rectangle is drawn.
type Drawer interface {
	Draw(ctx *Context, r Renderer) error
}

// BehaviorFactory builds a fresh behavior for one node.
type BehaviorFactory func() (Behavior, error)

// BehaviorFuncs adapts plain functions to the hook interfaces. Nil fields are
// skipped.
type BehaviorFuncs struct {
	InitFn   func(ctx *Context) error
	UpdateFn func(ctx *Context, dt float64) error
	DrawFn   func(ctx *Context, r Renderer) error
}

// Init calls InitFn if set.
func (f *BehaviorFuncs) Init(ctx *Context) error {
	if f.InitFn == nil {
		return nil
	}
	return f.InitFn(ctx)
}

// Update calls UpdateFn if set.
func (f *BehaviorFuncs) Update(ctx *Context, dt float64) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, dt)
}

// Draw calls DrawFn if set.
func (f *BehaviorFuncs) Draw(ctx *Context, r Renderer) error {
	if f.DrawFn == nil {
		return nil
	}
	return f.DrawFn(ctx, r)
}

// Behaviors maps tags to factories. Each Engine resolves node behavior tags
// through its own registry.
type Behaviors struct {
	factories map[string]BehaviorFactory
}

// NewBehaviors returns a registry holding the built-in behaviors ("fps").
func NewBehaviors() *Behaviors {
	b := &Behaviors{factories: make(map[string]BehaviorFactory)}
	b.Register(FPSBehavior, func() (Behavior, error) { return &FPSCounter{}, nil })
	return b
}

// Register binds tag to f. Panics on an empty tag, a nil factory or a tag
// that is already registered.
func (b *Behaviors) Register(tag string, f BehaviorFactory) {
	if tag == "" {
		panic("zen: behavior tag must not be empty")
	}
	if f == nil {
		panic("zen: nil behavior factory for " + tag)
	}
	if b.factories == nil {
		b.factories = make(map[string]BehaviorFactory)
	}
	if _, dup := b.factories[tag]; dup {
		panic("zen: behavior " + tag + " registered twice")
	}
	b.factories[tag] = f
}

// Has reports whether tag is registered.
func (b *Behaviors) Has(tag string) bool {
	_, ok := b.factories[tag]
	return ok
}

// Tags returns the registered tags in sorted order.
func (b *Behaviors) Tags() []string {
	tags := make([]string, 0, len(b.factories))
	for t := range b.factories {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// New builds the behavior registered under tag.
func (b *Behaviors) New(tag string) (Behavior, error) {
	f, ok := b.factories[tag]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBehavior, tag)
	}
	beh, err := f()
	if err != nil {
		return nil, fmt.Errorf("build behavior %q: %w", tag, err)
	}
	if beh == nil {
		return nil, fmt.Errorf("build behavior %q: factory returned nil", tag)
	}
	return beh, nil
}

// binding ties one behavior instance to its node.
type binding struct {
	tag      string
	behavior Behavior
	ctx      Context
}

// rebind points the context at the node and its current engine.
func (b *binding) rebind(n *Node) {
	b.ctx.Self = n
	b.ctx.Engine = n.engine
}

// safeCall runs fn, converting a panic into an error that carries the stack
// of the panicking goroutine.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.Errorf("panic: %v", r)
			}
		}
	}()
	return fn()
}
