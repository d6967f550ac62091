package zen

import "sort"

// Identifiers for keys that do not produce a printable character. Printable
// keys are identified by the character they produce ("a", "7", " ").
const (
	KeyEscape    = "escape"
	KeyEnter     = "enter"
	KeyTab       = "tab"
	KeyBackspace = "backspace"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeySpace     = " "
)

// InputState tracks which keys are currently held. It is written only by the
// Engine's poll phase; everything else reads it.
type InputState struct {
	keys map[string]bool
}

// NewInputState returns an empty input state.
func NewInputState() *InputState {
	return &InputState{keys: make(map[string]bool)}
}

// IsPressed reports whether key is held. Keys never seen are not pressed.
func (s *InputState) IsPressed(key string) bool {
	return s.keys[key]
}

// Pressed returns the held keys in sorted order.
func (s *InputState) Pressed() []string {
	var out []string
	for k, down := range s.keys {
		if down {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (s *InputState) set(key string, pressed bool) {
	s.keys[key] = pressed
}
