package glide

// ViewportMetrics computes viewport-center and element-center positions in
// the content's local coordinate space. Every call reads live node fields;
// nothing is cached because layout can change between frames.
type ViewportMetrics struct {
	View Container
}

// ViewportCenter returns the center of the viewport rectangle expressed in
// the content node's local space. ok is false when the container has no
// viewport or content, or the content is not inside the viewport.
func (m ViewportMetrics) ViewportCenter() (Vec2, bool) {
	vp, content := m.nodes()
	if vp == nil || content == nil {
		return Vec2{}, false
	}
	rel, ok := relativeTransform(content, vp)
	if !ok {
		return Vec2{}, false
	}
	x, y := transformPoint(invertAffine(rel), vp.Width/2, vp.Height/2)
	return Vec2{x, y}, true
}

// ElementCenter returns e's visual center in its parent's space, accounting
// for the pivot: position + size*(0.5 - pivot) on each axis.
func (m ViewportMetrics) ElementCenter(e *Node) Vec2 {
	return ElementCenter(e)
}

// ElementCenter returns e's visual center in its parent's space.
func ElementCenter(e *Node) Vec2 {
	return Vec2{
		X: e.X + e.Width*(0.5-e.PivotX),
		Y: e.Y + e.Height*(0.5-e.PivotY),
	}
}

// OffsetToCenter returns the content offset that puts e's center on the
// viewport center, masked to axis (components off-axis keep the current
// offset). The result is not clamped.
func (m ViewportMetrics) OffsetToCenter(e *Node, axis ScrollAxis) (Vec2, bool) {
	vp, content := m.nodes()
	if vp == nil || content == nil || !isLive(e) {
		return Vec2{}, false
	}
	// Work in the content's parent space, where the offset lives.
	parentToVp, ok := relativeTransform(content.Parent, vp)
	if !ok {
		return Vec2{}, false
	}
	cx, cy := transformPoint(invertAffine(parentToVp), vp.Width/2, vp.Height/2)

	ec := ElementCenter(e)
	ex, ey := transformPoint(computeLocalTransform(content), ec.X, ec.Y)

	offset := m.View.ContentOffset()
	delta := axis.Mask(Vec2{cx - ex, cy - ey})
	return offset.Add(delta), true
}

func (m ViewportMetrics) nodes() (vp, content *Node) {
	if m.View == nil {
		return nil, nil
	}
	vp, content = m.View.Viewport(), m.View.Content()
	if !isLive(vp) || !isLive(content) {
		return nil, nil
	}
	return vp, content
}
