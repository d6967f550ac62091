// zen-demo shows a small zen scene: a keyboard-driven player, a tweened
// glider, a scripted pulsing box and bouncers spawned with space.
//
// It runs in a desktop window, in the terminal, or headless:
//
//	zen-demo -backend window
//	zen-demo -backend term
//	zen-demo -backend headless -frames 120 -test run.json
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/zen"
	"github.com/phanxgames/zen/desktop"
	"github.com/phanxgames/zen/platform/headless"
	"github.com/phanxgames/zen/platform/term"
)

const (
	windowTitle = "zen demo"
	screenW     = 640
	screenH     = 480
)

var (
	backendFlag = flag.String("backend", "window", "Platform: window, term, headless")
	framesFlag  = flag.Int("frames", 0, "Stop after this many frames (0 = run until quit)")
	testFlag    = flag.String("test", "", "JSON test script to drive input")
	shotsFlag   = flag.String("screenshots", "", "Screenshot directory")
	debugFlag   = flag.Bool("debug", false, "Log per-frame timings")
	noAudioFlag = flag.Bool("noaudio", false, "Do not open the audio device")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "zen-demo")

	e, cleanup, err := newEngine(*backendFlag, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zen-demo: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	d, err := setupScene(e)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "zen-demo: %v\n", err)
		os.Exit(1)
	}
	if *shotsFlag != "" {
		e.ScreenshotDir = *shotsFlag
	}
	if *testFlag != "" {
		data, err := os.ReadFile(*testFlag)
		if err != nil {
			cleanup()
			fmt.Fprintf(os.Stderr, "zen-demo: %v\n", err)
			os.Exit(1)
		}
		runner, err := zen.LoadTestScript(data)
		if err != nil {
			cleanup()
			fmt.Fprintf(os.Stderr, "zen-demo: %v\n", err)
			os.Exit(1)
		}
		e.SetTestRunner(runner)
	}
	if *framesFlag > 0 {
		limitFrames(e, d, *framesFlag)
	}

	if err := e.MainLoop(); err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "zen-demo: %v\n", err)
		os.Exit(1)
	}
}

func newEngine(backend string, logger *slog.Logger) (*zen.Engine, func(), error) {
	cfg := zen.Config{
		Title:        windowTitle,
		ExitOnEscape: true,
		ShowFPS:      true,
		Debug:        *debugFlag,
		Logger:       logger,
	}
	switch backend {
	case "window":
		e := desktop.NewEngine(screenW, screenH, windowTitle,
			desktop.WithAudio(!*noAudioFlag),
			desktop.WithExitOnEscape(true),
			desktop.WithShowFPS(true),
			desktop.WithDebug(*debugFlag),
			desktop.WithLogger(logger),
		)
		return e, func() {}, nil
	case "term":
		s, err := term.New(term.Options{})
		if err != nil {
			return nil, nil, err
		}
		cfg.MaxFPS = 60
		cfg.ShowFPS = false
		return zen.New(s, cfg), func() { _ = s.Close() }, nil
	case "headless":
		return zen.New(headless.New(screenW, screenH), cfg), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// limitFrames wraps the scene's game loop so it stops after n frames.
func limitFrames(e *zen.Engine, d *demo, n int) {
	e.SetGameLoop(func(dt float64) {
		d.frame(dt)
		if e.Frame() >= uint64(n) {
			e.Stop()
		}
	})
}
