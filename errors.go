package zen

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is matched by the error NodeByName returns on a miss.
	ErrNodeNotFound = errors.New("zen: node not found")

	// ErrNoGameLoop is returned by MainLoop when SetGameLoop was never called.
	ErrNoGameLoop = errors.New("zen: game loop function not set; call SetGameLoop before MainLoop")

	// ErrEngineRunning is returned by MainLoop when the loop is already active.
	ErrEngineRunning = errors.New("zen: main loop already running")

	// ErrEngineStopped is returned by MainLoop after the loop has finished.
	ErrEngineStopped = errors.New("zen: engine stopped")

	// ErrUnknownBehavior is wrapped when a node asks for an unregistered tag.
	ErrUnknownBehavior = errors.New("zen: unknown behavior")

	// ErrNoSnapshot is returned when the platform cannot capture frames.
	ErrNoSnapshot = errors.New("zen: platform does not support snapshots")
)

// NodeNotFoundError carries the name that had no match.
type NodeNotFoundError struct {
	Name string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("zen: unable to find node %q", e.Name)
}

// Is makes errors.Is(err, ErrNodeNotFound) succeed.
func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

// Phase names the lifecycle step in which a behavior failed.
type Phase uint8

const (
	PhaseInit     Phase = iota // factory lookup, construction or Init
	PhaseUpdate                // per-frame Update
	PhaseDraw                  // Drawer hook
	PhaseGameLoop              // the engine-wide frame callback
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseUpdate:
		return "update"
	case PhaseDraw:
		return "draw"
	case PhaseGameLoop:
		return "game loop"
	default:
		return "unknown"
	}
}

// BehaviorError reports a failure inside behavior code. Every BehaviorError
// is fatal to the engine.
type BehaviorError struct {
	Phase    Phase
	NodeID   uint32
	Node     string
	Behavior string
	Err      error
}

func (e *BehaviorError) Error() string {
	if e.Phase == PhaseGameLoop {
		return fmt.Sprintf("zen: error in game loop: %v", e.Err)
	}
	return fmt.Sprintf("zen: error in behavior %s (behavior %q, node %q id %d): %v",
		e.Phase, e.Behavior, e.Node, e.NodeID, e.Err)
}

func (e *BehaviorError) Unwrap() error {
	return e.Err
}
