package glide

import "github.com/tanema/gween/ease"

// Track animates one channel of the animator's node as part of a Clip.
type Track struct {
	Channel  Channel
	To       Vec2 // scalar channels use To.X
	Relative bool // To is added to the value at play time
	Duration float32
	Ease     ease.TweenFunc
	// Yoyo returns the channel to its play-time value after reaching To,
	// taking Duration again.
	Yoyo bool
}

// Clip is a named set of tracks played together.
type Clip struct {
	Name   string
	Tracks []Track
}

// PlaybackID identifies one Play call on an Animator. IDs are never reused,
// so a stale ID can be used to stop "my" playback without touching a newer one.
type PlaybackID uint64

type trackState struct {
	track   Track
	origin  Vec2
	tween   *Tween
	forward bool
	// registered tweens are advanced by the Tweens registry, not the animator.
	registered bool
}

type playback struct {
	id     PlaybackID
	clip   *Clip
	tracks []*trackState
}

// Animator plays named clips on a single node. Only one clip plays at a time;
// Play stops the current clip first. Stopping leaves channel values where
// they are.
//
// With a Tweens registry attached, track tweens are registered per channel,
// so a newer driver on the same node and channel (or a later clip) replaces
// them. A clip whose tracks were all replaced ends without OnFinish.
type Animator struct {
	node    *Node
	clips   map[string]*Clip
	current *playback
	nextID  PlaybackID
	tweens  *Tweens

	// OnFinish runs when a clip plays to the end (not when stopped).
	OnFinish func(clip string)
}

// NewAnimator creates an animator for node and attaches it as node.Animator.
func NewAnimator(node *Node, clips ...Clip) *Animator {
	a := &Animator{node: node, clips: make(map[string]*Clip)}
	for _, c := range clips {
		a.AddClip(c)
	}
	if node != nil {
		node.Animator = a
	}
	return a
}

// SetTweens attaches the registry that advances track tweens. Nil makes the
// animator drive its own tweens from Update.
func (a *Animator) SetTweens(ts *Tweens) {
	a.tweens = ts
}

// AddClip registers or replaces a clip by name.
func (a *Animator) AddClip(c Clip) {
	cc := c
	a.clips[c.Name] = &cc
}

// HasClip reports whether a clip with the given name is registered.
func (a *Animator) HasClip(name string) bool {
	_, ok := a.clips[name]
	return ok
}

// Play starts the named clip from the node's current values. Returns false
// if the clip does not exist or the node is disposed.
func (a *Animator) Play(name string) (PlaybackID, bool) {
	clip, ok := a.clips[name]
	if !ok || a.node == nil || a.node.IsDisposed() {
		return 0, false
	}
	a.Stop()
	a.nextID++
	pb := &playback{id: a.nextID, clip: clip}
	for _, tr := range clip.Tracks {
		origin := channelValue(a.node, tr.Channel)
		to := tr.To
		if tr.Relative {
			to = origin.Add(tr.To)
		}
		tw := TweenChannel(a.node, tr.Channel, to, tr.Duration, easeOrLinear(tr.Ease))
		if tw == nil {
			continue
		}
		ts := &trackState{track: tr, origin: origin, forward: true}
		a.startTrack(ts, tw)
		pb.tracks = append(pb.tracks, ts)
	}
	a.current = pb
	return pb.id, true
}

// Stop halts the current clip, if any.
func (a *Animator) Stop() {
	if a.current == nil {
		return
	}
	for _, ts := range a.current.tracks {
		ts.tween.Cancel()
	}
	a.current = nil
}

// StopPlayback stops the current clip only if it is the playback identified
// by id. Reports whether anything was stopped.
func (a *Animator) StopPlayback(id PlaybackID) bool {
	if a.current == nil || a.current.id != id {
		return false
	}
	a.Stop()
	return true
}

// IsPlaying reports whether a clip is playing.
func (a *Animator) IsPlaying() bool {
	return a.current != nil
}

// IsPlayingID reports whether the playback identified by id is still playing.
func (a *Animator) IsPlayingID(id PlaybackID) bool {
	return a.current != nil && a.current.id == id
}

// Playing returns the name of the playing clip, or "".
func (a *Animator) Playing() string {
	if a.current == nil {
		return ""
	}
	return a.current.clip.Name
}

// Update advances the current clip by dt seconds.
func (a *Animator) Update(dt float32) {
	pb := a.current
	if pb == nil {
		return
	}
	if a.node == nil || a.node.IsDisposed() {
		a.current = nil
		return
	}
	done, replaced := true, false
	for _, ts := range pb.tracks {
		if !ts.registered {
			ts.tween.Update(dt)
		}
		if ts.tween.Done && ts.forward && ts.track.Yoyo {
			ts.forward = false
			a.startTrack(ts, TweenChannel(a.node, ts.track.Channel, ts.origin, ts.track.Duration, easeOrLinear(ts.track.Ease)))
		}
		switch {
		case ts.tween.Active():
			done = false
		case ts.tween.Cancelled():
			replaced = true
		}
	}
	if done && a.current == pb {
		a.current = nil
		if a.OnFinish != nil && !replaced {
			a.OnFinish(pb.clip.Name)
		}
	}
}

func (a *Animator) startTrack(ts *trackState, tw *Tween) {
	ts.tween = tw
	ts.registered = a.tweens != nil
	if ts.registered {
		a.tweens.Start(ts.track.Channel, tw)
	}
}

func easeOrLinear(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.Linear
	}
	return fn
}

// attachAnimators hands ts to every animator in the subtree that has no
// registry yet.
func attachAnimators(n *Node, ts *Tweens) {
	if n.Animator != nil && n.Animator.tweens == nil {
		n.Animator.tweens = ts
	}
	for _, child := range n.children {
		attachAnimators(child, ts)
	}
}

// updateAnimators advances the animator of every node in the subtree.
func updateAnimators(n *Node, dt float32) {
	if n.Animator != nil {
		n.Animator.Update(dt)
	}
	for _, child := range n.children {
		updateAnimators(child, dt)
	}
}
