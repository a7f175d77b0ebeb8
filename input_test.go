package glide

import "testing"

type dragLog struct {
	events []string
	ctxs   []DragContext
}

func (l *dragLog) attach(v *ScrollView) {
	v.OnDragStart(func(ctx DragContext) { l.add("dragstart", ctx) })
	v.OnDrag(func(ctx DragContext) { l.add("drag", ctx) })
	v.OnDragEnd(func(ctx DragContext) { l.add("dragend", ctx) })
}

func (l *dragLog) add(name string, ctx DragContext) {
	l.events = append(l.events, name)
	l.ctxs = append(l.ctxs, ctx)
}

func (l *dragLog) reset() {
	l.events = l.events[:0]
	l.ctxs = l.ctxs[:0]
}

func TestDragDetection(t *testing.T) {
	v := newCarousel(5)
	var log dragLog
	log.attach(v)

	v.processPointer(0, 150, 50, true)

	// Within dead zone: no drag.
	v.processPointer(0, 152, 52, true)
	if len(log.events) != 0 {
		t.Fatalf("expected no events within dead zone, got %v", log.events)
	}

	v.processPointer(0, 140, 50, true)
	if len(log.events) != 2 || log.events[0] != "dragstart" || log.events[1] != "drag" {
		t.Fatalf("expected [dragstart drag], got %v", log.events)
	}
	if !v.IsDragging() {
		t.Error("view should be dragging")
	}
	assertNear(t, "offset after first drag", v.ContentOffset().X, -12)

	log.reset()
	v.processPointer(0, 120, 50, true)
	if len(log.events) != 1 || log.events[0] != "drag" {
		t.Fatalf("expected [drag], got %v", log.events)
	}
	assertNear(t, "delta", log.ctxs[0].DeltaX, -20)
	assertNear(t, "offset", v.ContentOffset().X, -32)

	log.reset()
	v.processPointer(0, 120, 50, false)
	if len(log.events) != 1 || log.events[0] != "dragend" {
		t.Fatalf("expected [dragend], got %v", log.events)
	}
	if v.IsDragging() {
		t.Error("view should stop dragging on release")
	}
}

func TestDragMasksOffAxis(t *testing.T) {
	v := newCarousel(5)
	v.processPointer(0, 150, 50, true)
	v.processPointer(0, 130, 90, true)
	if v.ContentOffset().Y != 0 {
		t.Errorf("vertical movement leaked into a horizontal view: %v", v.ContentOffset())
	}
	assertNear(t, "X", v.ContentOffset().X, -20)
}

func TestPressOutsideViewportIgnored(t *testing.T) {
	v := newCarousel(5)
	var log dragLog
	log.attach(v)
	v.processPointer(0, 400, 50, true)
	v.processPointer(0, 200, 50, true)
	v.processPointer(0, 200, 50, false)
	if len(log.events) != 0 {
		t.Errorf("press outside the viewport should be ignored, got %v", log.events)
	}
}

func TestDragDisabledIgnoresPress(t *testing.T) {
	v := newCarousel(5)
	v.SetDragEnabled(false)
	var log dragLog
	log.attach(v)
	v.processPointer(0, 150, 50, true)
	v.processPointer(0, 100, 50, true)
	if len(log.events) != 0 || v.ContentOffset().X != 0 {
		t.Error("disabled view should refuse drags")
	}
	v.processPointer(0, 100, 50, false)

	v.SetDragEnabled(true)
	v.processPointer(0, 150, 50, true)
	v.processPointer(0, 100, 50, true)
	if len(log.events) == 0 {
		t.Error("re-enabled view should accept drags")
	}
}

func TestViewportPlacementAndScale(t *testing.T) {
	v := newCarousel(5)
	v.Viewport().SetPosition(100, 200)
	v.Viewport().SetScale(2, 2)
	var log dragLog
	log.attach(v)

	// Viewport spans screen (100,200)-(700,400).
	v.processPointer(0, 90, 250, true)
	v.processPointer(0, 50, 250, true)
	if len(log.events) != 0 {
		t.Fatal("press left of the scaled viewport should be ignored")
	}
	v.processPointer(0, 50, 250, false)

	v.processPointer(0, 400, 300, true)
	v.processPointer(0, 360, 300, true)
	if len(log.ctxs) < 2 {
		t.Fatalf("expected a drag, got %v", log.events)
	}
	// 40 screen pixels are 20 viewport pixels.
	assertNear(t, "delta", log.ctxs[1].DeltaX, -20)
	assertNear(t, "start", log.ctxs[1].StartX, 150)
	assertNear(t, "global", log.ctxs[1].GlobalX, 360)
}

func TestReleaseAppliesFinalMove(t *testing.T) {
	v := newCarousel(5)
	v.processPointer(0, 200, 50, true)
	v.processPointer(0, 180, 50, true)
	v.processPointer(0, 150, 50, false)
	assertNear(t, "offset", v.ContentOffset().X, -50)
}

func TestCallbackHandleRemove(t *testing.T) {
	v := newCarousel(5)
	count := 0
	h := v.OnDragStart(func(DragContext) { count++ })
	other := 0
	v.OnDragStart(func(DragContext) { other++ })
	h.Remove()
	h.Remove() // idempotent

	v.processPointer(0, 150, 50, true)
	v.processPointer(0, 100, 50, true)
	if count != 0 {
		t.Error("removed callback fired")
	}
	if other != 1 {
		t.Errorf("remaining callback fired %d times, want 1", other)
	}
	CallbackHandle{}.Remove() // zero handle is safe
}

func TestSetDragDeadZone(t *testing.T) {
	v := newCarousel(5)
	v.SetDragDeadZone(30)
	var log dragLog
	log.attach(v)
	v.processPointer(0, 150, 50, true)
	v.processPointer(0, 130, 50, true)
	if len(log.events) != 0 {
		t.Fatal("movement within the custom dead zone should not drag")
	}
	v.processPointer(0, 110, 50, true)
	if len(log.events) != 2 {
		t.Fatalf("expected drag past the dead zone, got %v", log.events)
	}
	assertNear(t, "start delta", log.ctxs[0].DeltaX, -40)
}
