package glide

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Engine composes a ScrollView with its SnapController, AnimationBinder,
// viewport-relative transforms, tween registry, and scheduler, and drives them
// once per frame. It implements ebiten.Game.
//
// Per-frame order: scripted input, pointer input, scroll physics, tweens,
// scheduled tasks, the snap tick, relative transforms, then clip animators.
type Engine struct {
	View      *ScrollView
	Snap      *SnapController
	Binder    *AnimationBinder
	Tweens    *Tweens
	Scheduler *Scheduler
	Relatives []*RelativeTransform

	// ClearColor fills the screen before the view is drawn.
	ClearColor Color
	// ScreenWidth and ScreenHeight fix the logical screen size reported by
	// Layout. Zero uses the outside size.
	ScreenWidth, ScreenHeight int
	// ScreenshotDir receives PNGs queued with Screenshot. Empty means
	// "screenshots".
	ScreenshotDir string
	// ShowFPS draws an FPS/TPS readout over the view.
	ShowFPS bool

	intro    *IntroConfig
	started  bool
	runner   *TestRunner
	onUpdate func() error
	onDraw   func(*ebiten.Image)
	shots    []string
	fps      fpsCounter
}

// NewEngine builds an engine around view from cfg. The view's axis, physics,
// and layout are overwritten by the configuration.
func NewEngine(view *ScrollView, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.SnapOptions()
	if err != nil {
		return nil, err
	}

	view.Axis = cfg.Axis
	view.SetInertia(cfg.Scroll.Inertia)
	view.DecelerationRate = cfg.Scroll.DecelerationRate
	view.SetDragDeadZone(cfg.Scroll.DragDeadZone)
	if l := cfg.GridLayout(); l != nil {
		view.Layout = l
	}
	view.RefreshLayout()

	e := &Engine{
		View:      view,
		Binder:    NewAnimationBinder(cfg.BinderClips()),
		Tweens:    NewTweens(),
		Scheduler: NewScheduler(),
		intro:     cfg.Intro,
	}
	e.Snap = NewSnapController(view, opts, e.Tweens, e.Scheduler)
	e.Snap.Binder = e.Binder
	attachAnimators(view.Viewport(), e.Tweens)

	for _, rc := range cfg.Relative {
		e.addRelativeConfig(rc)
	}

	view.OnDragStart(func(DragContext) { e.Snap.BeginDrag() })
	view.OnDrag(func(ctx DragContext) { e.Snap.Drag(ctx.Delta()) })
	view.OnDragEnd(func(DragContext) { e.Snap.EndDrag() })
	return e, nil
}

func (e *Engine) addRelativeConfig(rc RelativeConfig) {
	ch, err := parseChannel(rc.Channel)
	if err != nil {
		return
	}
	target := e.View.Content()
	if rc.Target != "" {
		target = findNode(e.View.Viewport(), rc.Target)
		if target == nil {
			logger.Warn("relative transform target not found", "target", rc.Target)
			return
		}
	}
	from, to := Vec2{X: rc.From}, Vec2{X: rc.To}
	if ch == ChannelScale {
		from.Y, to.Y = rc.From, rc.To
	}
	r := NewRelativeTransform(e.View, e.View.Axis, target, ch, from, to, e.Tweens)
	r.Curve = configCurve(rc.Curve, rc.Ease)
	r.Duration = rc.Duration
	r.Ease = ease.OutQuad
	e.AddRelativeTransform(r)
}

// findNode returns the first node named name in root's subtree.
func findNode(root *Node, name string) *Node {
	if root.Name == name {
		return root
	}
	for _, c := range root.children {
		if n := findNode(c, name); n != nil {
			return n
		}
	}
	return nil
}

// AddRelativeTransform registers r to be updated every frame.
func (e *Engine) AddRelativeTransform(r *RelativeTransform) {
	e.Relatives = append(e.Relatives, r)
}

// SetEventSink forwards snap and drag events to sink. Nil disables forwarding.
func (e *Engine) SetEventSink(sink EventSink) {
	e.Snap.Sink = sink
}

// SetTestRunner attaches a scripted input runner, stepped at the start of
// every frame.
func (e *Engine) SetTestRunner(r *TestRunner) {
	e.runner = r
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (e *Engine) SetUpdateFunc(fn func() error) {
	e.onUpdate = fn
}

// SetDrawFunc registers a callback run after the view is drawn, e.g. for a HUD.
func (e *Engine) SetDrawFunc(fn func(*ebiten.Image)) {
	e.onDraw = fn
}

// SnapTo animates the element with the given Index to the viewport center.
func (e *Engine) SnapTo(index int) bool {
	return e.Snap.SnapTo(index)
}

// CurrentCenterIndex returns the Index of the element nearest the viewport
// center.
func (e *Engine) CurrentCenterIndex() (int, bool) {
	return e.Snap.CurrentCenterIndex()
}

// ForceRefreshLayout re-runs the view's layout and revalidates snap state.
func (e *Engine) ForceRefreshLayout() {
	e.Snap.ForceRefreshLayout()
}

// PlayIntro moves the content to from and animates it back to its current
// offset along curve. The snap controller's start centering follows once the
// intro completes.
func (e *Engine) PlayIntro(from Vec2, duration float32, curve Curve) {
	tw := e.View.TweenIntro(from, duration, curve)
	tw.OnComplete = e.Snap.Start
	e.Tweens.Start(ChannelPosition, tw)
}

func (e *Engine) start() {
	e.started = true
	if e.intro != nil && e.intro.Duration > 0 {
		e.PlayIntro(Vec2{e.intro.FromX, e.intro.FromY}, e.intro.Duration, configCurve(e.intro.Curve, e.intro.Ease))
		return
	}
	e.Snap.Start()
}

// Update implements ebiten.Game. It advances the engine by one tick.
func (e *Engine) Update() error {
	e.Step(float32(1.0 / float64(ebiten.TPS())))
	if e.onUpdate != nil {
		return e.onUpdate()
	}
	return nil
}

// Step advances the engine by dt seconds. Tests call it directly.
func (e *Engine) Step(dt float32) {
	if !e.started {
		e.start()
	}
	attachAnimators(e.View.Viewport(), e.Tweens)
	if e.runner != nil {
		e.runner.step(e)
	}
	e.View.processInput()
	e.View.update(dt)
	e.Tweens.Update(dt)
	e.Scheduler.Update(dt)
	e.Snap.Update()
	for _, r := range e.Relatives {
		r.Update()
	}
	updateAnimators(e.View.Viewport(), dt)
	if e.ShowFPS {
		e.fps.update(dt)
	}
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.ClearColor.A > 0 {
		screen.Fill(e.ClearColor.toRGBA())
	}
	e.View.Draw(screen)
	if e.onDraw != nil {
		e.onDraw(screen)
	}
	if e.ShowFPS {
		e.fps.draw(screen)
	}
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if e.ScreenWidth > 0 && e.ScreenHeight > 0 {
		return e.ScreenWidth, e.ScreenHeight
	}
	return outsideWidth, outsideHeight
}
