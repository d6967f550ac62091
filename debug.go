package zen

import "time"

// debugStats holds per-frame timings. Only populated in debug mode.
type debugStats struct {
	pollTime     time.Duration
	gameLoopTime time.Duration
	updateTime   time.Duration
	drawTime     time.Duration
	presentTime  time.Duration
	nodeCount    int
}

func (s debugStats) total() time.Duration {
	return s.pollTime + s.gameLoopTime + s.updateTime + s.drawTime + s.presentTime
}

// debugLog logs frame timings at debug level.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	e.log.Debug("frame",
		"frame", e.frame,
		"poll", stats.pollTime,
		"gameloop", stats.gameLoopTime,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"present", stats.presentTime,
		"total", stats.total(),
		"nodes", stats.nodeCount,
	)
}

// debugCheckNodeCount warns when the registry grows past the point where the
// linear name lookups start to show up in frame times.
const debugMaxNodeCount = 1000

func (e *Engine) debugCheckNodeCount() {
	if n := len(e.nodes); n > debugMaxNodeCount {
		e.log.Warn("node registry is large", "nodes", n, "threshold", debugMaxNodeCount)
	}
}
