package zen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot to be captured right after the
// current frame is presented. The PNG is written to ScreenshotDir with a
// timestamped filename. Requires a platform implementing Snapshotter.
func (e *Engine) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots captures the presented frame once for every queued label.
func (e *Engine) flushScreenshots() {
	if len(e.screenshotQueue) == 0 {
		return
	}
	defer func() { e.screenshotQueue = e.screenshotQueue[:0] }()

	snap, ok := e.platform.(Snapshotter)
	if !ok {
		e.log.Warn("screenshot skipped", "err", ErrNoSnapshot, "count", len(e.screenshotQueue))
		return
	}
	img, err := snap.Snapshot()
	if err != nil {
		e.log.Warn("screenshot failed", "err", err)
		return
	}
	if err := os.MkdirAll(e.ScreenshotDir, 0o755); err != nil {
		e.log.Warn("screenshot failed", "err", fmt.Errorf("mkdir %s: %w", e.ScreenshotDir, err))
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range e.screenshotQueue {
		path := filepath.Join(e.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			e.log.Warn("screenshot failed", "err", err)
			continue
		}
		e.log.Debug("screenshot written", "path", path)
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
