package glide

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	defaultDecelerationRate = 0.135 // velocity multiplier per second of coasting
	minCoastSpeed           = 1.0   // pixels/second below which inertia stops
	dragVelocityLerp        = 10.0  // responsiveness of drag velocity smoothing
)

// Container is the layout collaborator the snap engine drives. It exposes
// scroll state, the viewport and content nodes, and setters for the offset
// and for native momentum. ScrollView is the stock implementation.
type Container interface {
	Viewport() *Node
	Content() *Node
	// Elements enumerates the content's live children afresh on every call.
	Elements() []*Node

	ContentOffset() Vec2
	SetContentOffset(offset Vec2)
	ClampOffset(offset Vec2) Vec2

	Velocity() Vec2
	SetVelocity(v Vec2)
	IsDragging() bool

	InertiaEnabled() bool
	SetInertia(enabled bool)
	// SetDragEnabled allows or refuses new pointer drags.
	SetDragEnabled(enabled bool)

	// NormalizedPosition reports the offset as fractions of the scrollable
	// range: X is 0 at the left edge, Y is 1 at the top edge.
	NormalizedPosition() Vec2

	// GridStep returns the cell step along axis when grid metadata exists.
	GridStep(axis ScrollAxis) (float64, bool)
	RefreshLayout()
}

// ScrollView is a clamped scroll rect: a viewport node clipping a content
// node whose position is the scroll offset. Children of the content are the
// scroll elements. The view tracks drag input, drag velocity, and coasting
// inertia.
type ScrollView struct {
	root    *Node
	content *Node

	// Axis restricts drag and inertia movement.
	Axis ScrollAxis
	// DecelerationRate is the fraction of velocity retained after one second
	// of coasting.
	DecelerationRate float64
	// Layout, when set, positions elements on RefreshLayout and supplies the
	// grid step for step snapping.
	Layout *GridLayout
	// Background fills the viewport when drawn. Transparent by default.
	Background Color

	inertia      bool
	dragDisabled bool
	velocity     Vec2
	dragging     bool
	prevOffset   Vec2

	// Input state
	handlers     handlerRegistry
	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	touchID      int
	touchActive  bool
}

// NewScrollView creates a scroll view whose viewport is width x height and
// scrolls along axis. Inertia is on.
func NewScrollView(name string, width, height float64, axis ScrollAxis) *ScrollView {
	root := NewContainer(name)
	root.SetSize(width, height)
	content := NewContainer(name + "/content")
	root.AddChild(content)
	return &ScrollView{
		root:             root,
		content:          content,
		Axis:             axis,
		DecelerationRate: defaultDecelerationRate,
		inertia:          true,
		dragDeadZone:     defaultDragDeadZone,
	}
}

// Viewport returns the viewport node. Position it to place the view on
// screen; its Width and Height are the visible area.
func (v *ScrollView) Viewport() *Node {
	return v.root
}

// Content returns the scrolling content node.
func (v *ScrollView) Content() *Node {
	return v.content
}

// AddElement appends e to the content and assigns the next Index.
func (v *ScrollView) AddElement(e *Node) {
	e.Index = v.content.NumChildren()
	v.content.AddChild(e)
}

// Elements returns the content's live children. The slice is freshly
// allocated on each call.
func (v *ScrollView) Elements() []*Node {
	out := make([]*Node, 0, len(v.content.children))
	for _, c := range v.content.children {
		if isLive(c) {
			out = append(out, c)
		}
	}
	return out
}

// ElementAt returns the live element with the given Index, or nil.
func (v *ScrollView) ElementAt(index int) *Node {
	for _, c := range v.content.children {
		if isLive(c) && c.Index == index {
			return c
		}
	}
	return nil
}

// ContentOffset returns the content node's position within the viewport.
func (v *ScrollView) ContentOffset() Vec2 {
	return Vec2{v.content.X, v.content.Y}
}

// SetContentOffset moves the content immediately, clamped to the valid range.
func (v *ScrollView) SetContentOffset(offset Vec2) {
	o := v.ClampOffset(offset)
	v.content.SetPosition(o.X, o.Y)
}

// contentExtent returns the content's scaled width and height. A content
// without an explicit size is measured from its children's bounds.
func (v *ScrollView) contentExtent() Vec2 {
	w, h := v.content.Width, v.content.Height
	if w == 0 && h == 0 {
		for _, c := range v.content.children {
			if !isLive(c) {
				continue
			}
			w = math.Max(w, c.X+c.Width*(1-c.PivotX))
			h = math.Max(h, c.Y+c.Height*(1-c.PivotY))
		}
	}
	return Vec2{w * v.content.ScaleX, h * v.content.ScaleY}
}

// OffsetRange returns the minimum and maximum valid content offsets. When the
// content is smaller than the viewport along an axis, both bounds are 0.
func (v *ScrollView) OffsetRange() (lo, hi Vec2) {
	ext := v.contentExtent()
	lo.X = math.Min(0, v.root.Width-ext.X)
	lo.Y = math.Min(0, v.root.Height-ext.Y)
	return lo, Vec2{}
}

// ClampOffset restricts offset to the valid range. Components off the scroll
// axis are pinned to the current offset.
func (v *ScrollView) ClampOffset(offset Vec2) Vec2 {
	lo, hi := v.OffsetRange()
	cur := v.ContentOffset()
	if !v.Axis.Horizontal() {
		offset.X = cur.X
	} else {
		offset.X = clamp(offset.X, lo.X, hi.X)
	}
	if !v.Axis.Vertical() {
		offset.Y = cur.Y
	} else {
		offset.Y = clamp(offset.Y, lo.Y, hi.Y)
	}
	return offset
}

// Velocity returns the current scroll velocity in pixels per second.
func (v *ScrollView) Velocity() Vec2 {
	return v.velocity
}

// SetVelocity overrides the scroll velocity, e.g. to stop coasting.
func (v *ScrollView) SetVelocity(vel Vec2) {
	v.velocity = v.Axis.Mask(vel)
}

// IsDragging reports whether a pointer drag is in progress.
func (v *ScrollView) IsDragging() bool {
	return v.dragging
}

// InertiaEnabled reports whether the content coasts after a drag.
func (v *ScrollView) InertiaEnabled() bool {
	return v.inertia
}

// SetInertia enables or disables coasting. Disabling zeroes the velocity on
// the next update.
func (v *ScrollView) SetInertia(enabled bool) {
	v.inertia = enabled
}

// SetDragEnabled allows or refuses new pointer drags. A drag already in
// progress is not interrupted.
func (v *ScrollView) SetDragEnabled(enabled bool) {
	v.dragDisabled = !enabled
}

// DragEnabled reports whether new pointer drags are accepted.
func (v *ScrollView) DragEnabled() bool {
	return !v.dragDisabled
}

// NormalizedPosition returns the offset as fractions of the scrollable range.
// X is 0 at the left edge and 1 at the right; Y is 1 at the top edge and 0 at
// the bottom. A zero range yields X = 0 and Y = 1.
func (v *ScrollView) NormalizedPosition() Vec2 {
	lo, _ := v.OffsetRange()
	off := v.ContentOffset()
	n := Vec2{X: 0, Y: 1}
	if lo.X < 0 {
		n.X = clamp01(off.X / lo.X)
	}
	if lo.Y < 0 {
		n.Y = 1 - clamp01(off.Y/lo.Y)
	}
	return n
}

// SetNormalizedPosition moves the content to the given normalized position
// (same conventions as NormalizedPosition).
func (v *ScrollView) SetNormalizedPosition(n Vec2) {
	lo, _ := v.OffsetRange()
	v.SetContentOffset(Vec2{X: clamp01(n.X) * lo.X, Y: (1 - clamp01(n.Y)) * lo.Y})
}

// GridStep returns the layout's cell step along axis.
func (v *ScrollView) GridStep(axis ScrollAxis) (float64, bool) {
	if v.Layout == nil {
		return 0, false
	}
	step := v.Layout.Step(axis)
	return step, step > 0
}

// RefreshLayout re-applies Layout (if any) and re-clamps the offset.
func (v *ScrollView) RefreshLayout() {
	if v.Layout != nil {
		v.Layout.Apply(v.content, v.root.Size())
	}
	v.SetContentOffset(v.ContentOffset())
}

// TweenIntro places the content at from and returns a tween (not yet
// registered) that carries it back to the current offset along curve.
func (v *ScrollView) TweenIntro(from Vec2, duration float32, curve Curve) *Tween {
	to := v.ContentOffset()
	v.content.SetPosition(from.X, from.Y)
	return TweenPosition(v.content, to.X, to.Y, duration, CurveEase(curve))
}

// TweenOffset returns a tween (not yet registered) carrying the content from
// its current offset to the clamped target.
func (v *ScrollView) TweenOffset(to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	t := v.ClampOffset(to)
	return TweenPosition(v.content, t.X, t.Y, duration, easeOrLinear(fn))
}

// --- Drag ---

// beginDrag marks the view as dragging and fires drag-start handlers.
func (v *ScrollView) beginDrag(ctx DragContext) {
	v.dragging = true
	v.velocity = Vec2{}
	v.prevOffset = v.ContentOffset()
	for _, h := range v.handlers.dragStart {
		h.fn(ctx)
	}
}

// drag moves the content by the per-frame pointer delta, in viewport space.
func (v *ScrollView) drag(ctx DragContext) {
	d := v.Axis.Mask(Vec2{ctx.DeltaX, ctx.DeltaY})
	v.SetContentOffset(v.ContentOffset().Add(d))
	for _, h := range v.handlers.drag {
		h.fn(ctx)
	}
}

// endDrag finishes the drag. Velocity measured during the drag is kept for
// coasting.
func (v *ScrollView) endDrag(ctx DragContext) {
	v.dragging = false
	for _, h := range v.handlers.dragEnd {
		h.fn(ctx)
	}
}

// update advances drag velocity tracking and coasting by dt seconds.
func (v *ScrollView) update(dt float32) {
	if dt <= 0 {
		return
	}
	sec := float64(dt)
	off := v.ContentOffset()

	switch {
	case v.dragging:
		inst := off.Sub(v.prevOffset).Scale(1 / sec)
		v.velocity = v.Axis.Mask(v.velocity.Lerp(inst, math.Min(1, sec*dragVelocityLerp)))
	case !v.inertia:
		v.velocity = Vec2{}
	case v.velocity != (Vec2{}):
		v.velocity = v.velocity.Scale(math.Pow(v.DecelerationRate, sec))
		if v.velocity.Len() < minCoastSpeed {
			v.velocity = Vec2{}
			break
		}
		want := off.Add(v.velocity.Scale(sec))
		got := v.ClampOffset(want)
		if got.X != want.X {
			v.velocity.X = 0
		}
		if got.Y != want.Y {
			v.velocity.Y = 0
		}
		v.content.SetPosition(got.X, got.Y)
	}
	v.prevOffset = v.ContentOffset()
}
