package glide

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// worldAABB computes the axis-aligned bounding box for a rectangle of size (w, h)
// transformed by the given affine matrix. Zero allocations.
func worldAABB(transform [6]float64, w, h float64) Rect {
	a, b, cc, d, tx, ty := transform[0], transform[2], transform[1], transform[3], transform[4], transform[5]

	// Transform four corners: (0,0), (w,0), (w,h), (0,h)
	x0, y0 := tx, ty
	x1, y1 := a*w+tx, cc*w+ty
	x2, y2 := a*w+b*h+tx, cc*w+d*h+ty
	x3, y3 := b*h+tx, d*h+ty

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// geoM converts a [6]float64 affine matrix into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the view clipped to its viewport. Every visible node below the
// content with a non-zero size is drawn as a tinted rectangle; the viewport
// is filled with Background when its alpha is non-zero.
func (v *ScrollView) Draw(screen *ebiten.Image) {
	updateWorldTransform(v.root, identityTransform, 1.0, false)
	if !v.root.Visible {
		return
	}

	clip := worldAABB(v.root.worldTransform, v.root.Width, v.root.Height)
	r := image.Rect(
		int(math.Floor(clip.X)), int(math.Floor(clip.Y)),
		int(math.Ceil(clip.X+clip.Width)), int(math.Ceil(clip.Y+clip.Height)),
	).Intersect(screen.Bounds())
	if r.Empty() {
		return
	}
	target := screen.SubImage(r).(*ebiten.Image)

	if v.Background.A > 0 {
		drawRect(target, v.root, v.Background)
	}
	if v.content.Visible {
		for _, child := range v.content.children {
			drawSubtree(target, child)
		}
	}
}

func drawSubtree(target *ebiten.Image, n *Node) {
	if !n.Visible || n.disposed {
		return
	}
	if n.Width > 0 && n.Height > 0 && n.Color.A > 0 && n.worldAlpha > 0 {
		drawRect(target, n, n.Color)
	}
	for _, child := range n.children {
		drawSubtree(target, child)
	}
}

// drawRect fills n's local (0,0)-(Width,Height) rectangle with c, scaled by
// the node's world alpha.
func drawRect(target *ebiten.Image, n *Node, c Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Concat(geoM(n.worldTransform))
	a := float32(c.A * n.worldAlpha)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	target.DrawImage(WhitePixel, &op)
}
