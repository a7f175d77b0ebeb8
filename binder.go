package glide

import "math"

// BinderClips names the clips an AnimationBinder plays. An empty name
// disables that reaction.
type BinderClips struct {
	Active    string // element became the centered one
	Inactive  string // element stopped being the centered one
	DragStart string // played on the centered element when a drag begins
	Settle    string // scrolling came to rest on the element

	// Directional clips played on every element while dragging.
	DragLeft, DragRight, DragUp, DragDown string

	// DragThreshold is the minimum per-frame drag distance that triggers a
	// directional clip when UseDragThreshold is set.
	DragThreshold    float64
	UseDragThreshold bool
}

type ownedPlayback struct {
	id   PlaybackID
	clip string
}

// AnimationBinder maps scroll engine notifications to named clips on element
// animators. It keeps at most one playback of its own per element: before
// playing, it stops the playback it previously started on that element.
// Playbacks started by other code are left alone.
//
// Elements without an Animator, or whose Animator lacks the clip, are skipped
// without error.
type AnimationBinder struct {
	Clips BinderClips

	owned map[*Node]ownedPlayback
}

// NewAnimationBinder creates a binder playing the given clips.
func NewAnimationBinder(clips BinderClips) *AnimationBinder {
	return &AnimationBinder{Clips: clips, owned: make(map[*Node]ownedPlayback)}
}

// OnBecameActive plays the Active clip on e.
func (b *AnimationBinder) OnBecameActive(e *Node) {
	b.play(e, b.Clips.Active)
}

// OnBecameInactive plays the Inactive clip on e.
func (b *AnimationBinder) OnBecameInactive(e *Node) {
	b.play(e, b.Clips.Inactive)
}

// OnDragStarted plays the DragStart clip on the element centered when the
// drag began.
func (b *AnimationBinder) OnDragStarted(center *Node) {
	b.play(center, b.Clips.DragStart)
}

// OnSettled stops this binder's playbacks on every other element, then plays
// the Settle clip on e.
func (b *AnimationBinder) OnSettled(e *Node) {
	for n := range b.owned {
		if n != e {
			b.Stop(n)
		}
	}
	b.play(e, b.Clips.Settle)
}

// OnDragDirection plays the directional clip matching the dominant component
// of the per-frame drag delta on every element. A clip already running from
// this binder is not restarted.
func (b *AnimationBinder) OnDragDirection(elements []*Node, delta Vec2) {
	if b.Clips.UseDragThreshold && delta.Len() < b.Clips.DragThreshold {
		return
	}
	if delta == (Vec2{}) {
		return
	}
	var clip string
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		clip = b.Clips.DragLeft
		if delta.X > 0 {
			clip = b.Clips.DragRight
		}
	} else {
		// Screen Y grows downward.
		clip = b.Clips.DragDown
		if delta.Y < 0 {
			clip = b.Clips.DragUp
		}
	}
	if clip == "" {
		return
	}
	for _, e := range elements {
		if own, ok := b.owned[e]; ok && own.clip == clip && isLive(e) &&
			e.Animator != nil && e.Animator.IsPlayingID(own.id) {
			continue
		}
		b.play(e, clip)
	}
}

// Stop stops the playback this binder started on e, if still running.
func (b *AnimationBinder) Stop(e *Node) {
	own, ok := b.owned[e]
	if !ok {
		return
	}
	delete(b.owned, e)
	if isLive(e) && e.Animator != nil {
		e.Animator.StopPlayback(own.id)
	}
}

// Owned returns the clip this binder is playing on e, or "".
func (b *AnimationBinder) Owned(e *Node) string {
	own, ok := b.owned[e]
	if !ok || !isLive(e) || e.Animator == nil || !e.Animator.IsPlayingID(own.id) {
		return ""
	}
	return own.clip
}

func (b *AnimationBinder) play(e *Node, clip string) {
	if clip == "" || !isLive(e) {
		return
	}
	if b.owned == nil {
		b.owned = make(map[*Node]ownedPlayback)
	}
	b.prune()
	a := e.Animator
	if a == nil || !a.HasClip(clip) {
		debugLog("binder skip", "element", e.Name, "clip", clip)
		return
	}
	b.Stop(e)
	id, ok := a.Play(clip)
	if !ok {
		return
	}
	b.owned[e] = ownedPlayback{id: id, clip: clip}
}

// prune forgets elements that were disposed since their clip started.
func (b *AnimationBinder) prune() {
	for n := range b.owned {
		if !isLive(n) {
			delete(b.owned, n)
		}
	}
}
