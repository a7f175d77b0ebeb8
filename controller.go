package glide

import (
	"math"

	"github.com/tanema/gween/ease"
)

// SnapState is the SnapController's interaction state.
type SnapState uint8

const (
	StateIdle          SnapState = iota
	StateDragging                // a pointer drag is moving the content
	StateSettling                // a snap tween is centering Target()
	StateSnappedPaused           // snapped onto a boundary element under a BoundaryPolicy
)

func (s SnapState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	case StateSnappedPaused:
		return "snappedPaused"
	}
	return "unknown"
}

// SnapMode selects how the snap target offset is computed.
type SnapMode uint8

const (
	// SnapNearest centers the element nearest the viewport center.
	SnapNearest SnapMode = iota
	// SnapStep rounds the offset to a multiple of the grid step.
	SnapStep
)

// ReleaseMode selects when a snap starts after a drag ends.
type ReleaseMode uint8

const (
	// ReleaseImmediate snaps as soon as the pointer is released.
	ReleaseImmediate ReleaseMode = iota
	// ReleaseWhenStopped lets the content coast and snaps once its speed
	// drops below the stop threshold.
	ReleaseWhenStopped
)

// BoundaryPolicy controls what happens when scrolling comes to rest on the
// first or last element.
type BoundaryPolicy uint8

const (
	// BoundaryNone treats boundary elements like any other.
	BoundaryNone BoundaryPolicy = iota
	// BoundaryLockDrag refuses further drags after a snap onto a boundary
	// element until Unlock or SnapTo is called.
	BoundaryLockDrag
	// BoundarySuppressSettle skips the settle reaction on boundary elements.
	// Dragging stays enabled.
	BoundarySuppressSettle
)

// BoundaryEdges selects which extremes a BoundaryPolicy applies to.
type BoundaryEdges uint8

const (
	EdgeBoth BoundaryEdges = iota
	EdgeStart
	EdgeEnd
)

// SnapOptions configures a SnapController.
type SnapOptions struct {
	Axis ScrollAxis

	Mode     SnapMode
	Release  ReleaseMode
	Duration float32 // snap tween length in seconds; <= 0 snaps instantly
	Ease     ease.TweenFunc

	// StopThreshold is the speed (pixels/second) under which the content
	// counts as stopped.
	StopThreshold float64
	// SettleDelay is the quiet period before the settle reaction fires.
	SettleDelay float32

	// DefaultStep is used by SnapStep when the container has no grid step.
	DefaultStep float64

	Boundary BoundaryPolicy
	Edges    BoundaryEdges

	// CenterOnStart makes Start center the element at StartIndex.
	CenterOnStart bool
	StartIndex    int
}

// DefaultSnapOptions returns the options used when nothing is configured.
func DefaultSnapOptions() SnapOptions {
	return SnapOptions{
		Axis:          AxisHorizontal,
		Duration:      0.25,
		Ease:          ease.OutCubic,
		StopThreshold: 10,
		SettleDelay:   0.15,
		DefaultStep:   100,
	}
}

// CenterTracking records which element is centered. SnapConsumed is cleared
// whenever Current changes or a drag begins, and set once a settle reaction
// has been scheduled for the current stop.
type CenterTracking struct {
	Current      *Node
	Previous     *Node
	SnapConsumed bool
}

// snapEpsilon is the offset distance treated as already centered.
const snapEpsilon = 0.5

// settleToken captures what must still hold when a delayed settle fires.
type settleToken struct {
	element    *Node
	generation uint64
}

// SnapController coordinates drag state, settling, and snap animation for a
// Container. Drive it with BeginDrag/Drag/EndDrag from input and Update once
// per tick, after the Tweens and Scheduler it was built with have advanced.
type SnapController struct {
	View    Container
	Metrics ViewportMetrics
	Options SnapOptions

	// Binder receives element notifications. Optional.
	Binder *AnimationBinder
	// Sink receives engine events. Optional.
	Sink EventSink

	tweens *Tweens
	sched  *Scheduler

	state        SnapState
	tracking     CenterTracking
	target       *Node
	targetOffset Vec2
	snapTween    *Tween
	savedInertia bool
	settleTask   *Task
	generation   uint64
	pendingSnap  bool
	locked       bool
	settled      *Node

	diag diagnostics
}

// NewSnapController creates a controller for view. Snap tweens go through
// tweens and delayed settles through sched.
func NewSnapController(view Container, opts SnapOptions, tweens *Tweens, sched *Scheduler) *SnapController {
	return &SnapController{
		View:    view,
		Metrics: ViewportMetrics{View: view},
		Options: opts,
		tweens:  tweens,
		sched:   sched,
	}
}

// State returns the current interaction state.
func (c *SnapController) State() SnapState {
	return c.state
}

// Target returns the element being snapped to while settling, or nil.
func (c *SnapController) Target() *Node {
	if c.state != StateSettling {
		return nil
	}
	return c.target
}

// Tracking returns a copy of the center tracking record.
func (c *SnapController) Tracking() CenterTracking {
	return c.tracking
}

// Locked reports whether a BoundaryLockDrag lock is in effect.
func (c *SnapController) Locked() bool {
	return c.locked
}

// --- Drag ---

// BeginDrag cancels any in-flight snap (its completion never runs), any
// other tween moving the content such as an intro, and any pending settle,
// then enters StateDragging. Ignored while locked.
func (c *SnapController) BeginDrag() {
	if c.locked {
		return
	}
	c.cancelSnap()
	if c.tweens.Cancel(c.View.Content(), ChannelPosition) {
		debugLog("drag interrupted content tween")
	}
	c.cancelSettle()
	c.generation++
	c.tracking.SnapConsumed = false
	c.pendingSnap = false
	c.setState(StateDragging)
	if c.Binder != nil && c.settled != nil {
		c.Binder.Stop(c.settled)
	}
	c.settled = nil
	if c.Binder != nil {
		c.Binder.OnDragStarted(c.tracking.Current)
	}
	c.emit(EventDragBegin, c.tracking.Current)
}

// Drag reports the per-frame drag delta for directional reactions.
func (c *SnapController) Drag(delta Vec2) {
	if c.state != StateDragging {
		return
	}
	if c.Binder != nil {
		c.Binder.OnDragDirection(c.View.Elements(), c.Options.Axis.Mask(delta))
	}
}

// EndDrag leaves StateDragging and snaps to the nearest element, either at
// once or, with ReleaseWhenStopped, once the content slows down.
func (c *SnapController) EndDrag() {
	if c.state != StateDragging {
		return
	}
	c.setState(StateIdle)
	c.emit(EventDragEnd, c.tracking.Current)
	if c.Options.Release == ReleaseWhenStopped {
		c.pendingSnap = true
		return
	}
	c.snapNearest()
}

// --- Tick ---

// Update runs one scheduling tick: it re-resolves the centered element,
// fires active/inactive reactions on change, starts deferred snaps, and
// schedules the settle reaction once the content has come to rest.
func (c *SnapController) Update() {
	nearest := c.resolveNearest()
	if nearest != c.tracking.Current || (c.tracking.Current != nil && !isLive(c.tracking.Current)) {
		c.changeCenter(nearest)
		return
	}
	if nearest == nil || c.state == StateDragging || c.View.IsDragging() {
		return
	}
	// Content driven by some other tween (an intro motion) is not at rest.
	if c.state != StateSettling && c.tweens.Get(c.View.Content(), ChannelPosition) != nil {
		return
	}

	speed := c.Options.Axis.Speed(c.View.Velocity())
	if c.pendingSnap {
		if speed < c.Options.StopThreshold {
			c.pendingSnap = false
			c.snapNearest()
		}
		return
	}
	if c.state == StateSettling || c.tracking.SnapConsumed || speed >= c.Options.StopThreshold {
		return
	}
	c.scheduleSettle(nearest)
}

func (c *SnapController) resolveNearest() *Node {
	elements := c.View.Elements()
	if len(elements) == 0 {
		return nil
	}
	center, ok := c.Metrics.ViewportCenter()
	if !ok {
		return nil
	}
	return Resolve(elements, center, c.Options.Axis)
}

func (c *SnapController) changeCenter(nearest *Node) {
	prev := c.tracking.Current
	if !isLive(prev) {
		prev = nil
	}
	c.tracking = CenterTracking{Current: nearest, Previous: prev}
	c.generation++
	c.cancelSettle()
	if c.settled != nil && c.settled != nearest {
		if c.Binder != nil {
			c.Binder.Stop(c.settled)
		}
		c.settled = nil
	}
	if c.Binder != nil {
		if prev != nil {
			c.Binder.OnBecameInactive(prev)
		}
		if nearest != nil {
			c.Binder.OnBecameActive(nearest)
		}
	}
	c.emit(EventCenterChanged, nearest)
}

func (c *SnapController) scheduleSettle(e *Node) {
	tok := settleToken{element: e, generation: c.generation}
	c.settleTask = c.sched.After(c.Options.SettleDelay, func() { c.fireSettle(tok) })
	c.tracking.SnapConsumed = true
}

func (c *SnapController) fireSettle(tok settleToken) {
	if tok.generation != c.generation || tok.element != c.tracking.Current || !isLive(tok.element) {
		return
	}
	if c.state == StateDragging || c.View.IsDragging() {
		return
	}
	if c.Options.Boundary == BoundarySuppressSettle && c.atBoundary(tok.element) {
		c.setState(StateSnappedPaused)
		c.emit(EventBoundaryReached, tok.element)
		return
	}
	c.settled = tok.element
	if c.Binder != nil {
		c.Binder.OnSettled(tok.element)
	}
	c.emit(EventSettled, tok.element)
}

func (c *SnapController) cancelSettle() {
	if c.settleTask != nil {
		c.settleTask.Cancel()
		c.settleTask = nil
	}
}

// --- Snapping ---

// snapNearest snaps to the element nearest the viewport center. No-op when
// there are no elements.
func (c *SnapController) snapNearest() {
	e := c.resolveNearest()
	if e == nil {
		return
	}
	target, ok := c.snapTarget(e)
	if !ok {
		return
	}
	c.startSnap(e, target)
}

// snapTarget computes the clamped content offset for snapping onto e.
func (c *SnapController) snapTarget(e *Node) (Vec2, bool) {
	if c.Options.Mode == SnapStep {
		if t, ok := c.stepTarget(); ok {
			return c.View.ClampOffset(t), true
		}
	}
	t, ok := c.Metrics.OffsetToCenter(e, c.Options.Axis)
	if !ok {
		return Vec2{}, false
	}
	return c.View.ClampOffset(t), true
}

// stepTarget rounds the current offset to the nearest multiple of the grid
// step on each scrolling axis.
func (c *SnapController) stepTarget() (Vec2, bool) {
	off := c.View.ContentOffset()
	axis := c.Options.Axis
	round := func(v float64, a ScrollAxis) (float64, bool) {
		step, ok := c.View.GridStep(a)
		if !ok {
			c.diag.warnOnce("default-step", "no grid step on container; using default step",
				"axis", a.String(), "step", c.Options.DefaultStep)
			step = c.Options.DefaultStep
		}
		if step <= 0 {
			return v, false
		}
		return math.Round(v/step) * step, true
	}
	ok := true
	if axis.Horizontal() {
		var okX bool
		off.X, okX = round(off.X, AxisHorizontal)
		ok = ok && okX
	}
	if axis.Vertical() {
		var okY bool
		off.Y, okY = round(off.Y, AxisVertical)
		ok = ok && okY
	}
	return off, ok
}

func (c *SnapController) startSnap(e *Node, target Vec2) {
	c.cancelSnap()
	if c.settleTask.Pending() {
		c.cancelSettle()
		c.tracking.SnapConsumed = false
	}
	c.pendingSnap = false
	c.target = e
	c.targetOffset = target
	c.emit(EventSnapStart, e)

	content := c.View.Content()
	if c.Options.Duration <= 0 || c.View.ContentOffset().Sub(target).Len() < snapEpsilon {
		c.View.SetContentOffset(target)
		c.View.SetVelocity(Vec2{})
		c.finishSnap(e)
		return
	}

	c.savedInertia = c.View.InertiaEnabled()
	c.View.SetInertia(false)
	c.View.SetVelocity(Vec2{})
	tw := TweenPosition(content, target.X, target.Y, c.Options.Duration, easeOrLinear(c.Options.Ease))
	tw.OnComplete = func() {
		if c.snapTween != tw {
			return
		}
		c.snapTween = nil
		c.View.SetInertia(c.savedInertia)
		c.finishSnap(e)
	}
	c.snapTween = c.tweens.Start(ChannelPosition, tw)
	c.setState(StateSettling)
}

func (c *SnapController) finishSnap(e *Node) {
	c.target = nil
	if c.Options.Boundary != BoundaryNone && c.atBoundary(e) {
		if c.Options.Boundary == BoundaryLockDrag {
			c.locked = true
			c.View.SetDragEnabled(false)
		}
		c.setState(StateSnappedPaused)
		c.emit(EventSnapComplete, e)
		c.emit(EventBoundaryReached, e)
		return
	}
	c.setState(StateIdle)
	c.emit(EventSnapComplete, e)
}

// cancelSnap stops an in-flight snap tween without running its completion
// and restores the container's inertia.
func (c *SnapController) cancelSnap() {
	tw := c.snapTween
	if tw == nil {
		return
	}
	c.snapTween = nil
	target := c.target
	c.target = nil
	if tw.Active() {
		tw.Cancel()
		c.View.SetInertia(c.savedInertia)
		c.emit(EventSnapCancelled, target)
	}
	if c.state == StateSettling {
		c.setState(StateIdle)
	}
}

// atBoundary reports whether e is a first or last element per Edges.
func (c *SnapController) atBoundary(e *Node) bool {
	elements := c.View.Elements()
	if len(elements) == 0 || e == nil {
		return false
	}
	first, last := elements[0].Index, elements[0].Index
	for _, el := range elements[1:] {
		first = min(first, el.Index)
		last = max(last, el.Index)
	}
	switch c.Options.Edges {
	case EdgeStart:
		return e.Index == first
	case EdgeEnd:
		return e.Index == last
	}
	return e.Index == first || e.Index == last
}

// --- Exposed operations ---

// SnapTo animates the element with the given Index to the viewport center.
// Repeated calls for the element already being snapped to, or already
// centered, do nothing. SnapTo also lifts a boundary drag lock. Reports
// whether a snap was started.
func (c *SnapController) SnapTo(index int) bool {
	var e *Node
	for _, el := range c.View.Elements() {
		if el.Index == index {
			e = el
			break
		}
	}
	if e == nil || c.state == StateDragging {
		return false
	}
	if c.locked {
		c.Unlock()
	}
	if c.state == StateSettling && c.target == e {
		return false
	}
	target, ok := c.Metrics.OffsetToCenter(e, c.Options.Axis)
	if !ok {
		return false
	}
	target = c.View.ClampOffset(target)
	if c.snapTween == nil && c.View.ContentOffset().Sub(target).Len() < snapEpsilon {
		return false
	}
	c.startSnap(e, target)
	return true
}

// CurrentCenterIndex returns the Index of the element nearest the viewport
// center, resolved from the current layout.
func (c *SnapController) CurrentCenterIndex() (int, bool) {
	e := c.resolveNearest()
	if e == nil {
		return -1, false
	}
	return e.Index, true
}

// ForceRefreshLayout re-runs the container layout and revalidates tracked
// elements. An in-flight snap is retargeted to its element's new position.
func (c *SnapController) ForceRefreshLayout() {
	c.View.RefreshLayout()
	c.diag.reset()
	if c.tracking.Previous != nil && !isLive(c.tracking.Previous) {
		c.tracking.Previous = nil
	}
	if c.state != StateSettling {
		return
	}
	e := c.target
	if !isLive(e) {
		c.cancelSnap()
		return
	}
	if target, ok := c.snapTarget(e); ok && target != c.targetOffset {
		c.startSnap(e, target)
	}
}

// Start schedules centering of StartIndex when CenterOnStart is set. It waits
// two frames so a freshly built layout can settle first.
func (c *SnapController) Start() {
	if !c.Options.CenterOnStart {
		return
	}
	idx := c.Options.StartIndex
	c.sched.NextFrame(func() {
		c.sched.NextFrame(func() { c.SnapTo(idx) })
	})
}

// Unlock lifts a BoundaryLockDrag lock and leaves StateSnappedPaused.
func (c *SnapController) Unlock() {
	if c.locked {
		c.locked = false
		c.View.SetDragEnabled(true)
	}
	if c.state == StateSnappedPaused {
		c.setState(StateIdle)
	}
}

func (c *SnapController) setState(s SnapState) {
	if c.state == s {
		return
	}
	debugLog("snap state", "from", c.state.String(), "to", s.String())
	c.state = s
}

func (c *SnapController) emit(t EventType, e *Node) {
	if c.Sink == nil {
		return
	}
	ev := Event{Type: t, Index: -1, Offset: c.View.ContentOffset()}
	if e != nil {
		ev.Index = e.Index
		ev.EntityID = e.EntityID
	}
	c.Sink.EmitEvent(ev)
}
