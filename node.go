package zen

// NodeConfig describes a node for Engine.NewNode.
type NodeConfig struct {
	X, Y          float64
	Width, Height float64
	Color         Color

	// Behavior is the registry tag of the node's logic. Empty means a
	// static node.
	Behavior string

	// Name is a non-unique label for NodeByName / NodesByName.
	Name string
}

// Node is a rectangular scene entity with optional attached behavior. Nodes
// live in a flat registry on their Engine; registry order is update order and
// draw order.
type Node struct {
	ID   uint32
	Name string

	X, Y          float64
	Width, Height float64
	Color         Color

	// UserData is free for game code.
	UserData any

	engine  *Engine
	binding *binding
	removed bool
}

// Engine returns the engine that created the node.
func (n *Node) Engine() *Engine {
	return n.engine
}

// Behavior returns the attached behavior, or nil for a static node.
func (n *Node) Behavior() Behavior {
	if n.binding == nil {
		return nil
	}
	return n.binding.behavior
}

// BehaviorTag returns the tag the behavior was created from.
func (n *Node) BehaviorTag() string {
	if n.binding == nil {
		return ""
	}
	return n.binding.tag
}

// Context returns the behavior context, or nil for a static node.
func (n *Node) Context() *Context {
	if n.binding == nil {
		return nil
	}
	return &n.binding.ctx
}

// Bounds returns the node's rectangle.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// IsRemoved reports whether RemoveNode was called on this node.
func (n *Node) IsRemoved() bool {
	return n.removed
}

// bind builds the behavior for tag and runs its Init hook.
func (n *Node) bind(tag string, behaviors *Behaviors) error {
	b := &binding{tag: tag}
	err := safeCall(func() error {
		beh, err := behaviors.New(tag)
		if err != nil {
			return err
		}
		b.behavior = beh
		n.binding = b
		b.rebind(n)
		if i, ok := beh.(Initer); ok {
			return i.Init(&b.ctx)
		}
		return nil
	})
	if err != nil {
		n.binding = nil
		return n.behaviorError(PhaseInit, tag, err)
	}
	return nil
}

// Update refreshes the context and runs the behavior's Update hook. Static
// nodes do nothing.
func (n *Node) Update(dt float64) error {
	b := n.binding
	if b == nil {
		return nil
	}
	b.rebind(n)
	b.ctx.DT = dt
	u, ok := b.behavior.(Updater)
	if !ok {
		return nil
	}
	if err := safeCall(func() error { return u.Update(&b.ctx, dt) }); err != nil {
		return n.behaviorError(PhaseUpdate, b.tag, err)
	}
	return nil
}

// Draw renders the node's rectangle, then the behavior's Draw hook if any.
// The rectangle is drawn whether or not a behavior is attached.
func (n *Node) Draw(r Renderer) error {
	r.DrawRect(n.X, n.Y, n.Width, n.Height, n.Color)
	b := n.binding
	if b == nil {
		return nil
	}
	d, ok := b.behavior.(Drawer)
	if !ok {
		return nil
	}
	b.rebind(n)
	if err := safeCall(func() error { return d.Draw(&b.ctx, r) }); err != nil {
		return n.behaviorError(PhaseDraw, b.tag, err)
	}
	return nil
}

func (n *Node) behaviorError(phase Phase, tag string, err error) *BehaviorError {
	return &BehaviorError{Phase: phase, NodeID: n.ID, Node: n.Name, Behavior: tag, Err: err}
}
