// Package ecs provides ECS adapters for glide.
package ecs

import (
	"github.com/phanxgames/glide"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SnapEventType is the Donburi event type for glide engine events.
// Subscribe to this in your ECS systems to receive drag, snap, and settle events.
var SnapEventType = events.NewEventType[glide.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Engine events are published to SnapEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) glide.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event glide.Event) {
	SnapEventType.Publish(s.world, event)
}

// Selection mirrors the engine's centered and settled elements.
type Selection struct {
	Centered         int // Index of the centered element, -1 if none
	CenteredEntityID uint32
	Settled          int // Index of the last settled element, -1 if none
	Settling         bool
}

// SelectionComponent stores a Selection on the entity created by TrackSelection.
var SelectionComponent = donburi.NewComponentType[Selection]()

// TrackSelection creates an entity holding a SelectionComponent and
// subscribes a handler that keeps it current. The component is updated when
// SnapEventType.ProcessEvents runs.
func TrackSelection(world donburi.World) donburi.Entity {
	entity := world.Create(SelectionComponent)
	SelectionComponent.SetValue(world.Entry(entity), Selection{Centered: -1, Settled: -1})

	SnapEventType.Subscribe(world, func(w donburi.World, e glide.Event) {
		if !w.Valid(entity) {
			return
		}
		sel := SelectionComponent.Get(w.Entry(entity))
		switch e.Type {
		case glide.EventCenterChanged:
			sel.Centered = e.Index
			sel.CenteredEntityID = e.EntityID
		case glide.EventSnapStart:
			sel.Settling = true
		case glide.EventSnapComplete, glide.EventSnapCancelled:
			sel.Settling = false
		case glide.EventSettled:
			sel.Settled = e.Index
		case glide.EventDragBegin:
			sel.Settled = -1
		}
	})
	return entity
}
