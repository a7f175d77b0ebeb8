package glide

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type recordSink struct {
	events []Event
}

func (r *recordSink) EmitEvent(e Event) { r.events = append(r.events, e) }

func (r *recordSink) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (r *recordSink) last(t EventType) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func (r *recordSink) reset() { r.events = nil }

type snapHarness struct {
	view   *ScrollView
	tweens *Tweens
	sched  *Scheduler
	snap   *SnapController
	binder *AnimationBinder
	sink   *recordSink
}

// newSnapHarness wires a controller to a newCarousel view. Every element has
// an animator with the binder's active, inactive, and settle clips.
func newSnapHarness(n int, opts SnapOptions) *snapHarness {
	h := &snapHarness{
		view:   newCarousel(n),
		tweens: NewTweens(),
		sched:  NewScheduler(),
		sink:   &recordSink{},
	}
	for _, e := range h.view.Elements() {
		NewAnimator(e, clipsFor("active", "inactive", "settle")...)
	}
	h.binder = NewAnimationBinder(BinderClips{Active: "active", Inactive: "inactive", Settle: "settle"})
	h.snap = NewSnapController(h.view, opts, h.tweens, h.sched)
	h.snap.Binder = h.binder
	h.snap.Sink = h.sink
	return h
}

const tickDT = float32(1.0 / 60)

// tick runs one engine frame in the same order Engine.Step does.
func (h *snapHarness) tick(dt float32) {
	h.view.update(dt)
	h.tweens.Update(dt)
	h.sched.Update(dt)
	h.snap.Update()
}

func (h *snapHarness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick(tickDT)
	}
}

func TestSnapOnRelease(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.SetContentOffset(Vec2{X: -130})
	h.tick(tickDT)

	h.snap.BeginDrag()
	if h.snap.State() != StateDragging {
		t.Fatalf("state = %v, want dragging", h.snap.State())
	}
	h.snap.EndDrag()
	if h.snap.State() != StateSettling {
		t.Fatalf("state = %v, want settling", h.snap.State())
	}
	if h.snap.Target() != h.view.ElementAt(1) {
		t.Fatal("should snap to element 1")
	}
	if h.view.InertiaEnabled() {
		t.Error("inertia should be off during the snap")
	}

	h.tick(0.125)
	h.tick(0.125)
	assertNear(t, "offset", h.view.ContentOffset().X, -100)
	if h.snap.State() != StateIdle {
		t.Errorf("state = %v, want idle", h.snap.State())
	}
	if !h.view.InertiaEnabled() {
		t.Error("inertia should be restored after the snap")
	}
	if h.sink.count(EventSnapStart) != 1 || h.sink.count(EventSnapComplete) != 1 {
		t.Errorf("events = %+v", h.sink.events)
	}
	if ev, _ := h.sink.last(EventSnapComplete); ev.Index != 1 {
		t.Errorf("SnapComplete index = %d, want 1", ev.Index)
	}
}

func TestDragCancelsSnapWithoutCompletion(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)
	if !h.snap.SnapTo(3) {
		t.Fatal("SnapTo(3) should start a snap")
	}
	h.tick(0.1)
	mid := h.view.ContentOffset()

	h.snap.BeginDrag()
	h.ticks(30)

	if h.sink.count(EventSnapComplete) != 0 {
		t.Error("cancelled snap must not complete")
	}
	if h.sink.count(EventSnapCancelled) != 1 {
		t.Errorf("SnapCancelled count = %d, want 1", h.sink.count(EventSnapCancelled))
	}
	if h.view.ContentOffset() != mid {
		t.Errorf("offset moved after cancel: %v -> %v", mid, h.view.ContentOffset())
	}
	if !h.view.InertiaEnabled() {
		t.Error("cancel should restore inertia")
	}
	if h.snap.State() != StateDragging {
		t.Errorf("state = %v, want dragging", h.snap.State())
	}
}

func TestSnapToIdempotent(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)

	if !h.snap.SnapTo(2) {
		t.Fatal("first SnapTo should start")
	}
	if h.snap.SnapTo(2) {
		t.Error("SnapTo for the current target should be a no-op")
	}
	if h.sink.count(EventSnapStart) != 1 {
		t.Errorf("SnapStart count = %d, want 1", h.sink.count(EventSnapStart))
	}
	h.ticks(30)
	if h.snap.SnapTo(2) {
		t.Error("SnapTo for the centered element should be a no-op")
	}
	if h.snap.SnapTo(42) {
		t.Error("SnapTo for a missing index should fail")
	}
	h.snap.BeginDrag()
	if h.snap.SnapTo(0) {
		t.Error("SnapTo while dragging should fail")
	}
}

func TestSnapToRetargets(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)
	h.snap.SnapTo(1)
	h.tick(0.05)
	h.snap.SnapTo(4)
	h.ticks(30)
	assertNear(t, "offset", h.view.ContentOffset().X, -400)
	if h.sink.count(EventSnapCancelled) != 1 || h.sink.count(EventSnapComplete) != 1 {
		t.Errorf("events = %+v", h.sink.events)
	}
}

func TestSnapTargetClamped(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.Layout.CenterCells = false
	h.view.RefreshLayout()
	// Cells at 0..500, viewport 300: element 0 would need +100.
	target, ok := h.snap.snapTarget(h.view.ElementAt(0))
	if !ok {
		t.Fatal("snapTarget failed")
	}
	assertNear(t, "first", target.X, 0)
	target, _ = h.snap.snapTarget(h.view.ElementAt(4))
	assertNear(t, "last", target.X, -200)
}

func TestSettleAfterVelocityDrops(t *testing.T) {
	opts := DefaultSnapOptions()
	h := newSnapHarness(5, opts)
	h.view.SetContentOffset(Vec2{X: -200})
	h.tick(tickDT) // establishes element 2 as center

	h.view.SetVelocity(Vec2{X: -50})
	scheduledAt, settledAt := -1, -1
	for i := 0; i < 300 && settledAt < 0; i++ {
		h.tick(tickDT)
		if scheduledAt < 0 && h.snap.Tracking().SnapConsumed {
			scheduledAt = i
			if s := AxisHorizontal.Speed(h.view.Velocity()); s >= opts.StopThreshold {
				t.Fatalf("settle scheduled at speed %v", s)
			}
			if i == 0 {
				t.Fatal("settle scheduled while the content was still fast")
			}
		}
		if scheduledAt < 0 && h.sched.Len() > 0 {
			t.Fatal("task pending before settle was scheduled")
		}
		if h.sink.count(EventSettled) > 0 {
			settledAt = i
		}
	}
	if scheduledAt < 0 || settledAt < 0 {
		t.Fatalf("scheduled=%d settled=%d", scheduledAt, settledAt)
	}
	if frames := settledAt - scheduledAt; frames < 9 || frames > 10 {
		t.Errorf("settle fired %d frames after scheduling, want ~%v s", frames, opts.SettleDelay)
	}
	ev, _ := h.sink.last(EventSettled)
	if ev.Index != 2 {
		t.Errorf("settled index = %d, want 2", ev.Index)
	}
	if h.binder.Owned(h.view.ElementAt(2)) != "settle" {
		t.Error("settle clip should play on the centered element")
	}
	if h.sink.count(EventSettled) != 1 {
		t.Error("settle should fire once per stop")
	}
}

func TestSettleNotScheduledWhileFast(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.SetContentOffset(Vec2{X: -200})
	h.snap.Update()

	h.view.SetVelocity(Vec2{X: 50})
	h.snap.Update()
	if h.snap.Tracking().SnapConsumed || h.sched.Len() != 0 {
		t.Fatal("no settle should be scheduled above the stop threshold")
	}
	h.view.SetVelocity(Vec2{X: 9.5})
	h.snap.Update()
	if !h.snap.Tracking().SnapConsumed || h.sched.Len() != 1 {
		t.Fatal("settle should be scheduled below the stop threshold")
	}
}

func TestCenterChangeCancelsSettle(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.SetContentOffset(Vec2{X: -200})
	h.ticks(2)
	if !h.snap.Tracking().SnapConsumed {
		t.Fatal("settle should be scheduled")
	}

	h.view.SetContentOffset(Vec2{X: -300})
	h.ticks(1)
	tr := h.snap.Tracking()
	if tr.Current != h.view.ElementAt(3) || tr.Previous != h.view.ElementAt(2) {
		t.Fatalf("tracking = %+v", tr)
	}
	h.ticks(30)

	ev, ok := h.sink.last(EventSettled)
	if !ok || ev.Index != 3 {
		t.Fatalf("settled = %+v, want index 3", ev)
	}
	if h.sink.count(EventSettled) != 1 {
		t.Errorf("stale settle fired: %d settles", h.sink.count(EventSettled))
	}
	if h.binder.Owned(h.view.ElementAt(2)) == "settle" {
		t.Error("old center must not settle")
	}
}

func TestDragBeforeSettleCancels(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.SetContentOffset(Vec2{X: -200})
	h.ticks(2)
	h.snap.BeginDrag()
	h.ticks(30)
	if h.sink.count(EventSettled) != 0 {
		t.Error("drag should invalidate the pending settle")
	}
}

func TestActiveInactiveReactions(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)
	if h.binder.Owned(h.view.ElementAt(0)) != "active" {
		t.Fatal("first center should play active")
	}
	h.view.SetContentOffset(Vec2{X: -100})
	h.snap.Update()
	if h.binder.Owned(h.view.ElementAt(0)) != "inactive" {
		t.Error("previous center should play inactive")
	}
	if h.binder.Owned(h.view.ElementAt(1)) != "active" {
		t.Error("new center should play active")
	}
	if h.sink.count(EventCenterChanged) != 2 {
		t.Errorf("CenterChanged count = %d, want 2", h.sink.count(EventCenterChanged))
	}
}

func TestDisposedCenterIsReplaced(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.view.SetContentOffset(Vec2{X: -200})
	h.tick(tickDT)
	h.view.ElementAt(2).Dispose()
	h.snap.Update()
	tr := h.snap.Tracking()
	if !isLive(tr.Current) {
		t.Fatal("disposed center should be replaced")
	}
	if tr.Previous != nil {
		t.Error("disposed element should not be kept as previous")
	}
}

func TestBoundaryLockDrag(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Boundary = BoundaryLockDrag
	h := newSnapHarness(5, opts)
	h.tick(tickDT)
	h.snap.SnapTo(4)
	h.ticks(30)

	if h.snap.State() != StateSnappedPaused || !h.snap.Locked() {
		t.Fatalf("state = %v locked = %v", h.snap.State(), h.snap.Locked())
	}
	if h.view.DragEnabled() {
		t.Error("view drag should be disabled")
	}
	if h.sink.count(EventBoundaryReached) != 1 {
		t.Error("BoundaryReached should be emitted")
	}
	h.snap.BeginDrag()
	if h.snap.State() == StateDragging {
		t.Error("BeginDrag should be ignored while locked")
	}

	if !h.snap.SnapTo(2) {
		t.Fatal("SnapTo should lift the lock")
	}
	if h.snap.Locked() || !h.view.DragEnabled() {
		t.Error("lock should be lifted")
	}
	h.ticks(30)
	if h.snap.State() != StateIdle {
		t.Errorf("state = %v, want idle after interior snap", h.snap.State())
	}
}

func TestBoundaryUnlock(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Boundary = BoundaryLockDrag
	opts.Duration = 0
	h := newSnapHarness(3, opts)
	h.tick(tickDT)
	h.snap.SnapTo(2)
	if !h.snap.Locked() {
		t.Fatal("instant snap onto the last element should lock")
	}
	h.snap.Unlock()
	if h.snap.Locked() || h.snap.State() != StateIdle || !h.view.DragEnabled() {
		t.Error("Unlock should restore dragging")
	}
}

func TestBoundarySuppressSettle(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Boundary = BoundarySuppressSettle
	h := newSnapHarness(5, opts)
	h.ticks(30) // resting on element 0

	if h.sink.count(EventSettled) != 0 {
		t.Error("settle should be suppressed on the first element")
	}
	if h.snap.State() != StateSnappedPaused {
		t.Errorf("state = %v, want snappedPaused", h.snap.State())
	}
	if h.sink.count(EventBoundaryReached) != 1 {
		t.Error("BoundaryReached should be emitted")
	}
	h.snap.BeginDrag()
	if h.snap.State() != StateDragging {
		t.Error("suppress-settle must keep dragging enabled")
	}
}

func TestBoundaryEdges(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Boundary = BoundarySuppressSettle
	opts.Edges = EdgeEnd
	h := newSnapHarness(5, opts)
	h.ticks(30)
	if h.sink.count(EventSettled) != 1 {
		t.Error("EdgeEnd should let the first element settle")
	}
	if !h.snap.atBoundary(h.view.ElementAt(4)) || h.snap.atBoundary(h.view.ElementAt(0)) {
		t.Error("EdgeEnd should only match the last element")
	}
	h.snap.Options.Edges = EdgeStart
	if !h.snap.atBoundary(h.view.ElementAt(0)) || h.snap.atBoundary(h.view.ElementAt(4)) {
		t.Error("EdgeStart should only match the first element")
	}
}

func TestStepModeUsesGridStep(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Mode = SnapStep
	opts.Duration = 0
	h := newSnapHarness(5, opts)
	h.view.Layout.Spacing = Vec2{X: 20}
	h.view.RefreshLayout()
	h.view.SetContentOffset(Vec2{X: -170})
	h.tick(tickDT)

	h.snap.BeginDrag()
	h.snap.EndDrag()
	// step 120: -170/120 = -1.42 -> -120
	assertNear(t, "offset", h.view.ContentOffset().X, -120)
}

func TestStepModeDefaultStepFallback(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	opts := DefaultSnapOptions()
	opts.Mode = SnapStep
	opts.Duration = 0
	opts.DefaultStep = 40
	h := newSnapHarness(5, opts)
	h.view.Layout = nil
	h.view.SetContentOffset(Vec2{X: -130})
	h.tick(tickDT)

	h.snap.BeginDrag()
	h.snap.EndDrag()
	assertNear(t, "offset", h.view.ContentOffset().X, -120)

	h.snap.BeginDrag()
	h.snap.EndDrag()
	if n := strings.Count(buf.String(), "default step"); n != 1 {
		t.Errorf("default step warning logged %d times, want 1", n)
	}
}

func TestReleaseWhenStopped(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Release = ReleaseWhenStopped
	h := newSnapHarness(5, opts)
	h.view.SetContentOffset(Vec2{X: -130})
	h.snap.Update()

	h.snap.BeginDrag()
	h.view.SetVelocity(Vec2{X: -50})
	h.snap.EndDrag()
	h.snap.Update()
	if h.sink.count(EventSnapStart) != 0 {
		t.Fatal("snap should wait for the content to slow down")
	}
	h.view.SetVelocity(Vec2{X: -5})
	h.snap.Update()
	if h.sink.count(EventSnapStart) != 1 || h.snap.State() != StateSettling {
		t.Fatalf("snap should start once stopped: state %v", h.snap.State())
	}
}

func TestIntroTweenBlocksSettle(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)
	h.tweens.Start(ChannelPosition, h.view.TweenIntro(Vec2{X: -20}, 1, LinearCurve))
	h.ticks(20)
	if h.snap.Tracking().SnapConsumed {
		t.Error("settle should wait for the intro to finish")
	}
	h.ticks(60)
	if h.sink.count(EventSettled) != 1 {
		t.Error("settle should fire after the intro")
	}
}

func TestStartCentersStartIndex(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.CenterOnStart = true
	opts.StartIndex = 3
	h := newSnapHarness(5, opts)
	h.snap.Start()
	h.tick(tickDT)
	if h.snap.State() == StateSettling {
		t.Fatal("start centering should wait two frames")
	}
	h.tick(tickDT)
	if h.snap.Target() != h.view.ElementAt(3) {
		t.Fatal("start centering should target StartIndex")
	}
	h.ticks(30)
	if idx, _ := h.snap.CurrentCenterIndex(); idx != 3 {
		t.Errorf("CurrentCenterIndex = %d, want 3", idx)
	}
}

func TestForceRefreshLayoutRetargets(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	h.tick(tickDT)
	h.snap.SnapTo(3)
	h.tick(0.05)

	h.view.Layout.Spacing = Vec2{X: 20}
	h.snap.ForceRefreshLayout()
	h.ticks(40)

	// Element 3 center = 100 + 3*120 + 50 = 510; 150 - 510 = -360.
	assertNear(t, "offset", h.view.ContentOffset().X, -360)
	if h.sink.count(EventSnapComplete) != 1 {
		t.Errorf("SnapComplete count = %d, want 1", h.sink.count(EventSnapComplete))
	}
}

func TestCurrentCenterIndexEmpty(t *testing.T) {
	h := newSnapHarness(0, DefaultSnapOptions())
	if _, ok := h.snap.CurrentCenterIndex(); ok {
		t.Error("empty view should report no center")
	}
	h.snap.BeginDrag()
	h.snap.EndDrag() // no elements: must not panic
	h.tick(tickDT)
}

func TestSnapStateString(t *testing.T) {
	for s, want := range map[SnapState]string{
		StateIdle:          "idle",
		StateDragging:      "dragging",
		StateSettling:      "settling",
		StateSnappedPaused: "snappedPaused",
	} {
		if s.String() != want {
			t.Errorf("String = %q, want %q", s.String(), want)
		}
	}
}

func TestDragCancelsIntroTween(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	content := h.view.Content()
	h.tweens.Start(ChannelPosition, h.view.TweenIntro(Vec2{X: -300}, 1, nil))
	h.tick(tickDT)
	before := h.view.ContentOffset()

	h.snap.BeginDrag()
	if h.tweens.Get(content, ChannelPosition) != nil {
		t.Fatal("drag should cancel the tween moving the content")
	}
	if h.sink.count(EventSnapCancelled) != 0 {
		t.Error("an intro is not a snap; no SnapCancelled expected")
	}
	h.view.SetContentOffset(before.Add(Vec2{X: -50}))
	h.tick(tickDT)
	assertNear(t, "offset follows drag", h.view.ContentOffset().X, before.X-50)
}

func TestCenterChangeStopsSettleClip(t *testing.T) {
	h := newSnapHarness(5, DefaultSnapOptions())
	// No Inactive clip, so only the center change can stop the settle clip.
	h.binder.Clips = BinderClips{Settle: "settle"}
	h.view.SetContentOffset(Vec2{X: -200})
	h.ticks(15)
	settled := h.view.ElementAt(2)
	if settled.Animator.Playing() != "settle" {
		t.Fatalf("playing = %q, want settle", settled.Animator.Playing())
	}

	h.view.SetContentOffset(Vec2{X: -300})
	h.tick(tickDT)
	if settled.Animator.Playing() != "" {
		t.Errorf("settle clip still playing on the old center: %q", settled.Animator.Playing())
	}
	if h.binder.Owned(settled) != "" {
		t.Error("binder should have released the old center")
	}
}
