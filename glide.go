package glide

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Lerp interpolates linearly between v and o. t is not clamped.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// WhitePixel is a 1x1 white image used to draw solid-color elements.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ScrollAxis selects which direction(s) a scroll view moves in. Distance and
// offset math is specialised per axis.
type ScrollAxis uint8

const (
	AxisHorizontal ScrollAxis = iota // scroll along X only
	AxisVertical                     // scroll along Y only
	AxisBoth                         // free 2D scrolling; distances are Euclidean
)

// String returns the configuration name of the axis.
func (a ScrollAxis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	case AxisBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the axis includes X movement.
func (a ScrollAxis) Horizontal() bool { return a == AxisHorizontal || a == AxisBoth }

// Vertical reports whether the axis includes Y movement.
func (a ScrollAxis) Vertical() bool { return a == AxisVertical || a == AxisBoth }

// Mask zeroes the components of v that the axis does not scroll along.
func (a ScrollAxis) Mask(v Vec2) Vec2 {
	switch a {
	case AxisHorizontal:
		return Vec2{X: v.X}
	case AxisVertical:
		return Vec2{Y: v.Y}
	default:
		return v
	}
}

// Distance returns the distance between p and q measured along the axis.
func (a ScrollAxis) Distance(p, q Vec2) float64 {
	switch a {
	case AxisHorizontal:
		return math.Abs(p.X - q.X)
	case AxisVertical:
		return math.Abs(p.Y - q.Y)
	default:
		return math.Hypot(p.X-q.X, p.Y-q.Y)
	}
}

// Speed returns the magnitude of v along the axis.
func (a ScrollAxis) Speed(v Vec2) float64 {
	return a.Distance(v, Vec2{})
}

// Channel identifies an animatable property group on a node. At most one
// engine-driven tween runs per (node, channel).
type Channel uint8

const (
	ChannelPosition Channel = iota // X, Y (content offset when the node is a scroll content)
	ChannelScale                   // ScaleX, ScaleY
	ChannelRotation                // Rotation
	ChannelAlpha                   // Alpha
	ChannelColor                   // Color R, G, B, A
)

// String returns the configuration name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelScale:
		return "scale"
	case ChannelRotation:
		return "rotation"
	case ChannelAlpha:
		return "alpha"
	case ChannelColor:
		return "color"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventDragBegin       EventType = iota // a drag began on the scroll view
	EventDragEnd                          // the drag was released
	EventCenterChanged                    // a different element became nearest the viewport center
	EventSnapStart                        // a snap tween started toward Event.Index
	EventSnapComplete                     // the snap tween reached its target
	EventSnapCancelled                    // the snap tween was superseded or interrupted
	EventSettled                          // scrolling stabilised and the settle trigger fired
	EventBoundaryReached                  // a snap finished on a boundary element under a boundary policy
)

// Event carries engine state changes to an EventSink.
type Event struct {
	Type     EventType
	Index    int    // element index, or -1 when no element applies
	EntityID uint32 // element's EntityID, 0 if unset
	Offset   Vec2   // content offset at the time of the event
}

// EventSink is the interface for optional event consumers such as an ECS.
// When set on an Engine, snap and drag events are forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
