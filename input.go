package glide

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Pointer state ---

type pointerState struct {
	down     bool
	startX   float64 // viewport-local press position
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	id       int
}

// --- Handler registry ---

type handlerKind uint8

const (
	handlerDragStart handlerKind = iota
	handlerDrag
	handlerDragEnd
)

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered drag callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case handlerDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case handlerDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(kind handlerKind, fn func(DragContext)) CallbackHandle {
	r.nextID++
	h := dragHandler{id: r.nextID, fn: fn}
	switch kind {
	case handlerDragStart:
		r.dragStart = append(r.dragStart, h)
	case handlerDrag:
		r.drag = append(r.drag, h)
	case handlerDragEnd:
		r.dragEnd = append(r.dragEnd, h)
	}
	return CallbackHandle{id: h.id, reg: r, kind: kind}
}

// OnDragStart registers a callback fired when a drag on the view passes the
// dead zone.
func (v *ScrollView) OnDragStart(fn func(DragContext)) CallbackHandle {
	return v.handlers.add(handlerDragStart, fn)
}

// OnDrag registers a callback fired for every frame the dragging pointer
// moves. DeltaX/DeltaY carry the per-frame movement in viewport space.
func (v *ScrollView) OnDrag(fn func(DragContext)) CallbackHandle {
	return v.handlers.add(handlerDrag, fn)
}

// OnDragEnd registers a callback fired when the dragging pointer is released.
func (v *ScrollView) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return v.handlers.add(handlerDragEnd, fn)
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (v *ScrollView) SetDragDeadZone(pixels float64) {
	v.dragDeadZone = pixels
}

// --- Input processing ---

// screenToViewport converts a screen point to the viewport node's local space.
func (v *ScrollView) screenToViewport(sx, sy float64) (float64, float64) {
	world, _ := relativeTransform(v.root, nil)
	return transformPoint(invertAffine(world), sx, sy)
}

func (v *ScrollView) containsLocal(lx, ly float64) bool {
	return lx >= 0 && lx <= v.root.Width && ly >= 0 && ly <= v.root.Height
}

// processInput reads one frame of pointer input. Injected events take
// priority; otherwise the left mouse button drives the pointer, falling back
// to the first active touch.
func (v *ScrollView) processInput() {
	if v.processInjectedInput() {
		return
	}

	if v.touchActive || (!v.pointer.down && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)) {
		if v.processTouch() {
			return
		}
	}
	mx, my := ebiten.CursorPosition()
	v.processPointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouch follows the first touch that began inside the view. It
// reports whether a touch was handled this frame.
func (v *ScrollView) processTouch() bool {
	ids := ebiten.AppendTouchIDs(nil)
	if v.touchActive {
		for _, id := range ids {
			if int(id) == v.touchID {
				tx, ty := ebiten.TouchPosition(id)
				v.processPointer(v.touchID+1, float64(tx), float64(ty), true)
				return true
			}
		}
		// Lifted: release at the last known position.
		v.touchActive = false
		v.releasePointer(v.pointer.lastX, v.pointer.lastY)
		return true
	}
	if len(ids) == 0 {
		return false
	}
	v.touchActive = true
	v.touchID = int(ids[0])
	tx, ty := ebiten.TouchPosition(ids[0])
	v.processPointer(v.touchID+1, float64(tx), float64(ty), true)
	return true
}

// processPointer runs the press/drag/release state machine for one sample at
// screen point (sx, sy).
func (v *ScrollView) processPointer(pointerID int, sx, sy float64, pressed bool) {
	lx, ly := v.screenToViewport(sx, sy)
	ps := &v.pointer

	switch {
	case pressed && !ps.down:
		if v.dragDisabled || !v.containsLocal(lx, ly) {
			return
		}
		*ps = pointerState{down: true, startX: lx, startY: ly, lastX: lx, lastY: ly, id: pointerID}
	case pressed && ps.down:
		if lx == ps.lastX && ly == ps.lastY {
			return
		}
		if !ps.dragging && math.Hypot(lx-ps.startX, ly-ps.startY) > v.dragDeadZone {
			ps.dragging = true
			v.beginDrag(v.dragContext(sx, sy, lx-ps.startX, ly-ps.startY))
		}
		if ps.dragging {
			v.drag(v.dragContext(sx, sy, lx-ps.lastX, ly-ps.lastY))
		}
		ps.lastX, ps.lastY = lx, ly
	case !pressed && ps.down:
		if ps.dragging && (lx != ps.lastX || ly != ps.lastY) {
			v.drag(v.dragContext(sx, sy, lx-ps.lastX, ly-ps.lastY))
			ps.lastX, ps.lastY = lx, ly
		}
		v.releasePointer(lx, ly)
	}
}

func (v *ScrollView) releasePointer(lx, ly float64) {
	ps := &v.pointer
	if ps.dragging {
		world, _ := relativeTransform(v.root, nil)
		sx, sy := transformPoint(world, lx, ly)
		v.endDrag(v.dragContext(sx, sy, lx-ps.lastX, ly-ps.lastY))
	}
	*ps = pointerState{}
}

func (v *ScrollView) dragContext(sx, sy, dx, dy float64) DragContext {
	return DragContext{
		View:      v,
		GlobalX:   sx,
		GlobalY:   sy,
		StartX:    v.pointer.startX,
		StartY:    v.pointer.startY,
		DeltaX:    dx,
		DeltaY:    dy,
		PointerID: v.pointer.id,
	}
}
