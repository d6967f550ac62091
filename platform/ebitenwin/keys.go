package ebitenwin

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/zen"
)

var namedKeys = map[ebiten.Key]string{
	ebiten.KeySpace:        zen.KeySpace,
	ebiten.KeyEscape:       zen.KeyEscape,
	ebiten.KeyEnter:        zen.KeyEnter,
	ebiten.KeyNumpadEnter:  zen.KeyEnter,
	ebiten.KeyTab:          zen.KeyTab,
	ebiten.KeyBackspace:    zen.KeyBackspace,
	ebiten.KeyArrowUp:      zen.KeyUp,
	ebiten.KeyArrowDown:    zen.KeyDown,
	ebiten.KeyArrowLeft:    zen.KeyLeft,
	ebiten.KeyArrowRight:   zen.KeyRight,
	ebiten.KeyMinus:        "-",
	ebiten.KeyEqual:        "=",
	ebiten.KeyComma:        ",",
	ebiten.KeyPeriod:       ".",
	ebiten.KeySlash:        "/",
	ebiten.KeySemicolon:    ";",
	ebiten.KeyQuote:        "'",
	ebiten.KeyBracketLeft:  "[",
	ebiten.KeyBracketRight: "]",
	ebiten.KeyBackslash:    "\\",
	ebiten.KeyBackquote:    "`",
}

func init() {
	// Letters and digits map to the (unshifted) character they type.
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		switch {
		case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
			namedKeys[k] = strings.ToLower(name)
		case len(name) == 6 && strings.HasPrefix(name, "Digit"):
			namedKeys[k] = name[5:]
		}
	}
}

// KeyName returns the zen key identifier for k. Modifier and function keys
// have none.
func KeyName(k ebiten.Key) (string, bool) {
	id, ok := namedKeys[k]
	return id, ok
}
