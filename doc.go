// Package glide is a scroll-snap and viewport-relative animation engine for
// [Ebitengine].
//
// A [ScrollView] clips a content node inside a viewport and scrolls it by
// pointer drag with coasting inertia. A [SnapController] watches the scroll
// state every tick, works out which element is nearest the viewport center,
// and animates the content so that element ends up centered. An
// [AnimationBinder] plays named clips on elements as they become centered,
// lose the center, or settle, and [RelativeTransform] derives scale, rotation,
// or alpha continuously from the normalized scroll position.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	view := glide.NewScrollView("cards", 480, 200, glide.AxisHorizontal)
//	for i := 0; i < 8; i++ {
//		view.AddElement(glide.NewElement(fmt.Sprint("card", i), 160, 160))
//	}
//	cfg := glide.DefaultConfig()
//	cfg.Layout = &glide.LayoutConfig{CellWidth: 160, CellHeight: 160, SpacingX: 20, CenterCells: true}
//	engine, err := glide.NewEngine(view, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	glide.Run(engine, glide.RunConfig{Title: "Cards", Width: 480, Height: 200})
//
// [Engine] implements [ebiten.Game], so it can also be embedded in an
// existing game by calling its Update and Draw.
//
// # Coordinates
//
// Y grows downward. A node's local rectangle spans (0,0) to (Width,Height);
// PivotX/PivotY are normalized (0.5 is the center) and X/Y place the pivot in
// the parent's space. The content offset is the content node's position.
//
// # Frame model
//
// Everything runs on the game goroutine. Delayed work is expressed as
// cancellable [Task]s on a [Scheduler] and animations as cancellable
// [Tween]s in a [Tweens] registry, which runs at most one tween per node and
// [Channel]. Delayed settle tasks carry a validity token and do nothing if the
// centered element changed or a drag began in the meantime.
//
// Configuration is read from YAML with [LoadConfig]. Engine events can be
// forwarded to a [Donburi] world with the adapter in glide/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package glide
