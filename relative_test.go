package glide

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestRelativeTransformScaleFollowsScroll(t *testing.T) {
	v := newCarousel(5)
	target := v.ElementAt(2)
	r := NewRelativeTransform(v, AxisHorizontal, target, ChannelScale, Vec2{1, 1}, Vec2{2, 2}, nil)

	tests := []struct {
		offset, want float64
	}{
		{0, 1},
		{-200, 1.5},
		{-400, 2},
	}
	for _, tt := range tests {
		v.SetContentOffset(Vec2{X: tt.offset})
		r.Update()
		assertNear(t, "ScaleX", target.ScaleX, tt.want)
		assertNear(t, "ScaleY", target.ScaleY, tt.want)
	}
}

func TestRelativeTransformCurve(t *testing.T) {
	v := newCarousel(5)
	r := NewRelativeTransform(v, AxisHorizontal, v.Content(), ChannelAlpha, Vec2{X: 0}, Vec2{X: 1}, nil)
	r.Curve = SmoothStepCurve
	v.SetContentOffset(Vec2{X: -100}) // progress 0.25
	r.Update()
	assertNear(t, "Alpha", v.Content().Alpha, SmoothStepCurve(0.25))
}

func TestRelativeTransformVerticalInverted(t *testing.T) {
	v := newColumn(5)
	target := v.ElementAt(0)
	r := NewRelativeTransform(v, AxisVertical, target, ChannelRotation, Vec2{X: 0}, Vec2{X: 1}, nil)

	r.Update() // top of the range
	assertNear(t, "top", target.Rotation, 0)
	if r.Progress() != 0 {
		t.Errorf("Progress at top = %v, want 0", r.Progress())
	}

	v.SetContentOffset(Vec2{Y: -400})
	r.Update()
	assertNear(t, "bottom", target.Rotation, 1)
}

func TestRelativeTransformBothAverages(t *testing.T) {
	v := NewScrollView("grid", 100, 100, AxisBoth)
	e := NewElement("big", 300, 500)
	e.SetPivot(0, 0)
	v.AddElement(e)
	r := NewRelativeTransform(v, AxisBoth, e, ChannelAlpha, Vec2{X: 0}, Vec2{X: 1}, nil)

	v.SetContentOffset(Vec2{X: -200, Y: 0}) // x progress 1, y progress 0
	assertNear(t, "Progress", r.Progress(), 0.5)
	v.SetContentOffset(Vec2{X: -200, Y: -400})
	assertNear(t, "Progress end", r.Progress(), 1)
}

func TestRelativeTransformTweensOnlyOnChange(t *testing.T) {
	v := newCarousel(5)
	ts := NewTweens()
	target := v.ElementAt(1)
	r := NewRelativeTransform(v, AxisHorizontal, target, ChannelScale, Vec2{1, 1}, Vec2{3, 3}, ts)
	r.Duration = 0.5
	r.Ease = ease.Linear

	v.SetContentOffset(Vec2{X: -200})
	r.Update()
	first := ts.Get(target, ChannelScale)
	if first == nil {
		t.Fatal("a transition tween should be running")
	}
	r.Update()
	if ts.Get(target, ChannelScale) != first {
		t.Error("unchanged value must not restart the transition")
	}

	v.SetContentOffset(Vec2{X: -400})
	r.Update()
	second := ts.Get(target, ChannelScale)
	if second == first || !first.Cancelled() {
		t.Error("changed value should replace the running transition")
	}
	ts.Update(0.5)
	if !approxEqual(target.ScaleX, 3, 1e-4) {
		t.Errorf("ScaleX = %v, want 3", target.ScaleX)
	}
	if cur, ok := r.Current(); !ok || cur != (Vec2{3, 3}) {
		t.Errorf("Current = %v, %v", cur, ok)
	}
}

func TestRelativeTransformSkipsDisposedTarget(t *testing.T) {
	v := newCarousel(3)
	target := v.ElementAt(0)
	r := NewRelativeTransform(v, AxisHorizontal, target, ChannelAlpha, Vec2{X: 1}, Vec2{X: 0}, nil)
	target.Dispose()
	r.Update()
	if _, ok := r.Current(); ok {
		t.Error("disposed target should not be updated")
	}
}

func TestRelativeTransformAndClipShareChannel(t *testing.T) {
	v := newCarousel(5)
	ts := NewTweens()
	e := v.ElementAt(2)
	a := NewAnimator(e, Clip{Name: "settle", Tracks: []Track{
		{Channel: ChannelScale, To: Vec2{1.5, 1.5}, Duration: 1},
	}})
	a.SetTweens(ts)
	finished := 0
	a.OnFinish = func(string) { finished++ }
	binder := NewAnimationBinder(BinderClips{Settle: "settle"})

	r := NewRelativeTransform(v, AxisHorizontal, e, ChannelScale, Vec2{1, 1}, Vec2{2, 2}, ts)
	r.Duration = 0.5
	v.SetContentOffset(Vec2{X: -200})
	r.Update()
	relTween := ts.Get(e, ChannelScale)
	if relTween == nil {
		t.Fatal("relative transition should be running")
	}

	// The settle clip is the newer driver and replaces the transition.
	binder.OnSettled(e)
	if !relTween.Cancelled() {
		t.Error("clip should supersede the relative transition")
	}
	if ts.Len() != 1 || ts.Get(e, ChannelScale) == relTween {
		t.Fatalf("want exactly the clip tween on scale, have %d", ts.Len())
	}

	// A changed relative value supersedes the clip in turn.
	v.SetContentOffset(Vec2{X: -400})
	r.Update()
	ts.Update(0.5)
	a.Update(0.5)
	if a.Playing() != "" {
		t.Errorf("clip should end once its track is replaced, playing %q", a.Playing())
	}
	if finished != 0 {
		t.Error("a replaced clip must not report OnFinish")
	}
	if !approxEqual(e.ScaleX, 2, 1e-4) {
		t.Errorf("ScaleX = %v, want 2 from the relative transform", e.ScaleX)
	}
}
