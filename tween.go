package glide

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenAlpha, TweenColor) and either call Update(dt) yourself or
// hand it to a Tweens registry. The tween writes values directly into the
// node's fields and marks the node dirty.
//
// A cancelled tween never writes again and never calls OnComplete. If the
// target node is disposed the tween cancels itself on the next Update.
type Tween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node

	// OnComplete runs once, on the Update that finishes the tween.
	OnComplete func()

	Done      bool
	cancelled bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *Tween) Update(dt float32) {
	if g.Done || g.cancelled {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.cancelled = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

// Cancel stops the tween where it is. OnComplete will not run.
func (g *Tween) Cancel() {
	if g.Done {
		return
	}
	g.cancelled = true
	g.OnComplete = nil
}

// Cancelled reports whether the tween was cancelled before completing.
func (g *Tween) Cancelled() bool {
	return g.cancelled
}

// Active reports whether the tween still has work to do.
func (g *Tween) Active() bool {
	return !g.Done && !g.cancelled
}

// Target returns the node the tween writes to.
func (g *Tween) Target() *Node {
	return g.target
}

// TweenPosition creates a Tween that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	g := &Tween{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a Tween that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *Tween {
	g := &Tween{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenColor creates a Tween that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *Tween {
	g := &Tween{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// TweenAlpha creates a Tween that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	g := &Tween{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenRotation creates a Tween that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	g := &Tween{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation), float32(to), duration, fn)
	g.fields[0] = &node.Rotation
	return g
}

// TweenChannel creates a Tween for the given channel. Scalar channels
// (rotation, alpha) use to.X; ChannelColor is not supported and returns nil.
func TweenChannel(node *Node, ch Channel, to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	switch ch {
	case ChannelPosition:
		return TweenPosition(node, to.X, to.Y, duration, fn)
	case ChannelScale:
		return TweenScale(node, to.X, to.Y, duration, fn)
	case ChannelRotation:
		return TweenRotation(node, to.X, duration, fn)
	case ChannelAlpha:
		return TweenAlpha(node, to.X, duration, fn)
	default:
		return nil
	}
}

// channelValue reads the current value of a channel as a Vec2 (scalar
// channels in X).
func channelValue(node *Node, ch Channel) Vec2 {
	switch ch {
	case ChannelPosition:
		return Vec2{node.X, node.Y}
	case ChannelScale:
		return Vec2{node.ScaleX, node.ScaleY}
	case ChannelRotation:
		return Vec2{X: node.Rotation}
	case ChannelAlpha:
		return Vec2{X: node.Alpha}
	default:
		return Vec2{}
	}
}

// setChannelValue writes a channel value immediately.
func setChannelValue(node *Node, ch Channel, v Vec2) {
	switch ch {
	case ChannelPosition:
		node.SetPosition(v.X, v.Y)
	case ChannelScale:
		node.SetScale(v.X, v.Y)
	case ChannelRotation:
		node.SetRotation(v.X)
	case ChannelAlpha:
		node.SetAlpha(v.X)
	}
}

// --- Registry ---

type tweenKey struct {
	node *Node
	ch   Channel
}

// Tweens tracks engine-driven tweens and guarantees at most one active tween
// per (node, channel): starting a new one cancels its predecessor first.
//
// Tweens run in start order. Tweens started from an OnComplete callback are
// first advanced on the following Update.
type Tweens struct {
	active map[tweenKey]*Tween
	order  []*Tween
	keys   map[*Tween]tweenKey
}

// NewTweens creates an empty registry.
func NewTweens() *Tweens {
	return &Tweens{
		active: make(map[tweenKey]*Tween),
		keys:   make(map[*Tween]tweenKey),
	}
}

// Start registers tw on channel ch of its target node, cancelling any tween
// already running there. Returns tw for chaining. A nil tween is ignored.
func (ts *Tweens) Start(ch Channel, tw *Tween) *Tween {
	if tw == nil {
		return nil
	}
	key := tweenKey{node: tw.target, ch: ch}
	if prev, ok := ts.active[key]; ok && prev != tw {
		prev.Cancel()
		ts.forget(prev)
	}
	ts.active[key] = tw
	ts.keys[tw] = key
	ts.order = append(ts.order, tw)
	return tw
}

// Get returns the active tween on (node, ch), or nil.
func (ts *Tweens) Get(node *Node, ch Channel) *Tween {
	tw := ts.active[tweenKey{node: node, ch: ch}]
	if tw == nil || !tw.Active() {
		return nil
	}
	return tw
}

// Cancel cancels the active tween on (node, ch). Reports whether one was running.
func (ts *Tweens) Cancel(node *Node, ch Channel) bool {
	tw := ts.Get(node, ch)
	if tw == nil {
		return false
	}
	tw.Cancel()
	ts.forget(tw)
	return true
}

// CancelAll cancels every tween targeting node.
func (ts *Tweens) CancelAll(node *Node) {
	for key, tw := range ts.active {
		if key.node == node {
			tw.Cancel()
			ts.forget(tw)
		}
	}
}

// Len returns the number of active tweens.
func (ts *Tweens) Len() int {
	n := 0
	for _, tw := range ts.active {
		if tw.Active() {
			n++
		}
	}
	return n
}

// Update advances every active tween by dt seconds and drops finished ones.
func (ts *Tweens) Update(dt float32) {
	n := len(ts.order)
	for i := 0; i < n; i++ {
		tw := ts.order[i]
		if tw.Active() {
			tw.Update(dt)
		}
	}
	kept := ts.order[:0]
	for _, tw := range ts.order {
		if tw.Active() {
			kept = append(kept, tw)
		} else {
			ts.forget(tw)
		}
	}
	for i := len(kept); i < len(ts.order); i++ {
		ts.order[i] = nil
	}
	ts.order = kept
}

// forget drops tw from the key index. The order slice is compacted lazily by
// Update.
func (ts *Tweens) forget(tw *Tween) {
	key, ok := ts.keys[tw]
	if !ok {
		return
	}
	delete(ts.keys, tw)
	if ts.active[key] == tw {
		delete(ts.active, key)
	}
}
