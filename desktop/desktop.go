// Package desktop bootstraps a zen engine in an Ebitengine window with beep
// audio. Bootstrap failures are fatal: NewEngine reports them and exits.
package desktop

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phanxgames/zen"
	"github.com/phanxgames/zen/audio"
	"github.com/phanxgames/zen/platform/ebitenwin"
)

// exit is swapped out by tests.
var exit = os.Exit

// Option customizes NewEngine.
type Option func(*options)

type options struct {
	cfg   zen.Config
	audio bool
}

// WithAudio enables or disables opening the audio device (default on).
func WithAudio(enabled bool) Option {
	return func(o *options) { o.audio = enabled }
}

// WithExitOnEscape sets zen.Config.ExitOnEscape.
func WithExitOnEscape(enabled bool) Option {
	return func(o *options) { o.cfg.ExitOnEscape = enabled }
}

// WithShowFPS sets zen.Config.ShowFPS.
func WithShowFPS(enabled bool) Option {
	return func(o *options) { o.cfg.ShowFPS = enabled }
}

// WithBehaviors sets the behavior registry.
func WithBehaviors(b *zen.Behaviors) Option {
	return func(o *options) { o.cfg.Behaviors = b }
}

// WithGameLoop sets the frame callback up front.
func WithGameLoop(fn func(dt float64)) Option {
	return func(o *options) { o.cfg.GameLoop = fn }
}

// WithMaxDelta sets zen.Config.MaxDelta.
func WithMaxDelta(d time.Duration) Option {
	return func(o *options) { o.cfg.MaxDelta = d }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.cfg.Logger = l }
}

// WithDebug sets zen.Config.Debug.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.cfg.Debug = enabled }
}

func buildOptions(title string, opts []Option) options {
	o := options{audio: true}
	for _, opt := range opts {
		opt(&o)
	}
	o.cfg.Title = title
	return o
}

// NewEngine opens a width×height window titled title and returns an engine
// drawing into it. If the window or the audio device cannot be set up, the
// error is printed to stderr and the process exits with status 1.
func NewEngine(width, height int, title string, opts ...Option) *zen.Engine {
	e, err := Open(width, height, title, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "zen: an error occurred while initializing: %v\n", err)
		exit(1)
		return nil
	}
	return e
}

// Open is NewEngine returning the bootstrap error instead of exiting.
func Open(width, height int, title string, opts ...Option) (*zen.Engine, error) {
	o := buildOptions(title, opts)

	win, err := ebitenwin.New(width, height, title)
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}
	if o.audio {
		sp := audio.New()
		if err := sp.Init(); err != nil {
			return nil, fmt.Errorf("init audio: %w", err)
		}
		o.cfg.Audio = sp
	}
	return zen.New(win, o.cfg), nil
}
