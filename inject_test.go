package glide

import "testing"

func TestInjectDragQueue(t *testing.T) {
	v := newCarousel(5)
	var log dragLog
	log.attach(v)

	v.InjectDrag(250, 50, 50, 50, 6)
	if v.PendingInjections() != 6 {
		t.Fatalf("PendingInjections = %d, want 6", v.PendingInjections())
	}

	for i := 0; i < 6; i++ {
		v.processInput()
	}
	if v.PendingInjections() != 0 {
		t.Fatal("queue should be drained")
	}
	if len(log.events) == 0 || log.events[0] != "dragstart" || log.events[len(log.events)-1] != "dragend" {
		t.Fatalf("events = %v", log.events)
	}
	assertNear(t, "offset", v.ContentOffset().X, -200)
}

func TestInjectOneEventPerFrame(t *testing.T) {
	v := newCarousel(5)
	v.InjectPress(150, 50)
	v.InjectMove(100, 50)
	v.InjectRelease(100, 50)

	v.processInput()
	if v.PendingInjections() != 2 || v.IsDragging() {
		t.Fatal("frame 1 should only press")
	}
	v.processInput()
	if !v.IsDragging() {
		t.Fatal("frame 2 should start the drag")
	}
	v.processInput()
	if v.IsDragging() {
		t.Fatal("frame 3 should release")
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	v := newCarousel(5)
	v.InjectDrag(200, 50, 100, 50, 0)
	if v.PendingInjections() != 2 {
		t.Errorf("PendingInjections = %d, want 2", v.PendingInjections())
	}
	v.processInput()
	v.processInput()
	// Press then release with no move frame in between is a tap.
	assertNear(t, "offset", v.ContentOffset().X, 0)
}
