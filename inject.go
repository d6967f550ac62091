package zen

// InjectKeyDown queues a synthetic key press. Injected events are consumed
// one per frame, ahead of the platform's own events.
func (e *Engine) InjectKeyDown(key string) {
	e.injectQueue = append(e.injectQueue, Event{Type: EventKeyDown, Key: key})
}

// InjectKeyUp queues a synthetic key release.
func (e *Engine) InjectKeyUp(key string) {
	e.injectQueue = append(e.injectQueue, Event{Type: EventKeyUp, Key: key})
}

// InjectKeyTap is a convenience that queues a press followed by a release of
// the same key. Consumes two frames, so game code sees the key held for one.
func (e *Engine) InjectKeyTap(key string) {
	e.InjectKeyDown(key)
	e.InjectKeyUp(key)
}

// InjectQuit queues a quit event, as if the window had been closed.
func (e *Engine) InjectQuit() {
	e.injectQueue = append(e.injectQueue, Event{Type: EventQuit})
}

// drainInjected pops at most one injected event onto buf.
func (e *Engine) drainInjected(buf []Event) []Event {
	if len(e.injectQueue) == 0 {
		return buf
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	return append(buf, ev)
}
