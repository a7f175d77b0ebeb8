// Package ecs provides ECS adapters for glide's engine events.
//
// The primary adapter is [NewDonburiStore], which bridges glide events
// (drag begin/end, center changes, snap start/complete/cancel, settle,
// boundary) into a [Donburi] world as typed events. Subscribe to
// [SnapEventType] in your ECS systems to receive them, or call
// [TrackSelection] to keep a [Selection] component up to date.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventSink(store)
//	sel := ecs.TrackSelection(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
