package glide

import "github.com/tanema/gween/ease"

// RelativeTransform derives a visual property of Target from the container's
// normalized scroll position, every tick, independent of snapping.
//
// Progress runs from 0 at the start of the scroll range to 1 at the end on
// both axes: the raw vertical position (1 at the top) is inverted. For
// AxisBoth the two progress values are averaged. The curved progress
// interpolates between From and To on Channel (scale, rotation, or alpha;
// scalar channels use X).
type RelativeTransform struct {
	Source  Container
	Axis    ScrollAxis
	Target  *Node
	Channel Channel
	From    Vec2
	To      Vec2
	Curve   Curve

	// Duration smooths changes of the derived value with a tween. Zero
	// applies each value immediately.
	Duration float32
	Ease     ease.TweenFunc

	tweens     *Tweens
	current    Vec2
	hasCurrent bool
}

// NewRelativeTransform creates a linear transform driving ch on target from
// src's scroll position. Transition tweens are registered with tweens, which
// may be nil when Duration stays zero.
func NewRelativeTransform(src Container, axis ScrollAxis, target *Node, ch Channel, from, to Vec2, tweens *Tweens) *RelativeTransform {
	return &RelativeTransform{
		Source:  src,
		Axis:    axis,
		Target:  target,
		Channel: ch,
		From:    from,
		To:      to,
		tweens:  tweens,
	}
}

// Progress returns the normalized scroll progress in [0, 1].
func (r *RelativeTransform) Progress() float64 {
	n := r.Source.NormalizedPosition()
	switch r.Axis {
	case AxisVertical:
		return clamp01(1 - n.Y)
	case AxisBoth:
		return clamp01((n.X + 1 - n.Y) / 2)
	}
	return clamp01(n.X)
}

// Value returns the property value at progress t.
func (r *RelativeTransform) Value(t float64) Vec2 {
	return r.From.Lerp(r.To, r.Curve.Evaluate(t))
}

// Current returns the most recently applied target value.
func (r *RelativeTransform) Current() (Vec2, bool) {
	return r.current, r.hasCurrent
}

// Update samples the scroll position and pushes the derived value. A
// transition is restarted only when the target value changes; the previous
// one is cancelled first.
func (r *RelativeTransform) Update() {
	if r.Source == nil || !isLive(r.Target) {
		return
	}
	v := r.Value(r.Progress())
	if r.hasCurrent && v == r.current {
		return
	}
	r.current, r.hasCurrent = v, true

	if r.Duration <= 0 || r.tweens == nil {
		if r.tweens != nil {
			r.tweens.Cancel(r.Target, r.Channel)
		}
		setChannelValue(r.Target, r.Channel, v)
		return
	}
	tw := TweenChannel(r.Target, r.Channel, v, r.Duration, easeOrLinear(r.Ease))
	r.tweens.Start(r.Channel, tw)
}
