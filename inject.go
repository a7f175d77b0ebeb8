package glide

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, converted to viewport space exactly like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's input pass.
func (v *ScrollView) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (v *ScrollView) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *ScrollView) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves, and release at (toX, toY). The sequence
// consumes frames frames; the minimum is 2.
func (v *ScrollView) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (v *ScrollView) PendingInjections() int {
	return len(v.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through
// processPointer. It reports whether an event was consumed, in which case
// real input is skipped for the frame.
func (v *ScrollView) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	v.processPointer(0, evt.screenX, evt.screenY, evt.pressed)
	return true
}
