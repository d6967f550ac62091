package zen

import (
	"log/slog"
	"os"
	"time"
)

// Config holds engine settings. The zero value is usable: every field has a
// default applied by New.
type Config struct {
	// Title is used in log output; platforms set their own window caption.
	Title string

	// GameLoop is the frame callback. It can also be set later with
	// SetGameLoop, but MainLoop refuses to run without one.
	GameLoop func(dt float64)

	// ExitOnEscape makes an escape key press stop the loop at once.
	ExitOnEscape bool

	// Behaviors resolves node behavior tags. Defaults to NewBehaviors().
	Behaviors *Behaviors

	// MaxFPS caps the frame rate of engine-driven loops (0 = uncapped).
	// Platforms implementing Driver pace themselves and ignore it.
	MaxFPS int

	// MaxDelta clamps the per-frame dt (0 = no clamp).
	MaxDelta time.Duration

	// ShowFPS adds an "fps" overlay node when MainLoop starts.
	ShowFPS bool

	// Debug enables per-frame timing logs and registry size warnings.
	Debug bool

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string

	// Audio is exposed to behaviors through Engine.Audio. Defaults to silence.
	Audio Audio

	// Logger receives diagnostics. Defaults to a text handler on stderr.
	Logger *slog.Logger

	// OnFatal handles unrecoverable errors (behavior failures). The default
	// writes a crash report to stderr and exits with status 1. If a custom
	// handler returns, the engine stops and MainLoop returns the error.
	OnFatal func(err error)
}

const defaultScreenshotDir = "screenshots"

func newDefaultLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", "zen")
}
