package glide

import "testing"

func TestElementCenterPivot(t *testing.T) {
	e := NewElement("e", 100, 40)
	e.SetPosition(200, 50)
	c := ElementCenter(e)
	assertNear(t, "centered.X", c.X, 200)
	assertNear(t, "centered.Y", c.Y, 50)

	e.SetPivot(0, 1)
	c = ElementCenter(e)
	assertNear(t, "left-bottom.X", c.X, 250)
	assertNear(t, "left-bottom.Y", c.Y, 30)
}

func TestViewportCenterInContentSpace(t *testing.T) {
	v := newCarousel(5)
	m := ViewportMetrics{View: v}

	c, ok := m.ViewportCenter()
	if !ok {
		t.Fatal("ViewportCenter should resolve")
	}
	assertNear(t, "at rest", c.X, 150)

	v.SetContentOffset(Vec2{X: -200})
	c, _ = m.ViewportCenter()
	assertNear(t, "scrolled", c.X, 350)
	assertNear(t, "scrolled.Y", c.Y, 50)
}

func TestViewportCenterScaledContent(t *testing.T) {
	v := newCarousel(5)
	v.Content().SetScale(2, 2)
	m := ViewportMetrics{View: v}
	c, _ := m.ViewportCenter()
	assertNear(t, "X", c.X, 75)
	assertNear(t, "Y", c.Y, 25)
}

func TestViewportCenterIgnoresViewportPlacement(t *testing.T) {
	v := newCarousel(5)
	v.Viewport().SetPosition(1000, 500)
	c, _ := ViewportMetrics{View: v}.ViewportCenter()
	assertNear(t, "X", c.X, 150)
}

func TestOffsetToCenter(t *testing.T) {
	v := newCarousel(5)
	m := ViewportMetrics{View: v}
	for i := 0; i < 5; i++ {
		off, ok := m.OffsetToCenter(v.ElementAt(i), AxisHorizontal)
		if !ok {
			t.Fatalf("OffsetToCenter(%d) failed", i)
		}
		assertNear(t, "offset.X", off.X, -100*float64(i))
		assertNear(t, "offset.Y", off.Y, 0)
	}
}

func TestOffsetToCenterUnclamped(t *testing.T) {
	v := NewScrollView("short", 300, 100, AxisHorizontal)
	e := NewElement("only", 100, 100)
	e.SetPosition(50, 50)
	v.AddElement(e)
	off, _ := ViewportMetrics{View: v}.OffsetToCenter(e, AxisHorizontal)
	assertNear(t, "offset.X", off.X, 100)
	if v.ClampOffset(off).X != 0 {
		t.Error("clamping should pull the offset back into range")
	}
}

func TestOffsetToCenterVertical(t *testing.T) {
	v := newColumn(4)
	off, ok := ViewportMetrics{View: v}.OffsetToCenter(v.ElementAt(2), AxisVertical)
	if !ok {
		t.Fatal("OffsetToCenter failed")
	}
	assertNear(t, "offset.Y", off.Y, -200)
}

func TestMetricsMissingNodes(t *testing.T) {
	if _, ok := (ViewportMetrics{}).ViewportCenter(); ok {
		t.Error("nil container should not resolve")
	}
	v := newCarousel(2)
	e := v.ElementAt(0)
	e.Dispose()
	if _, ok := (ViewportMetrics{View: v}).OffsetToCenter(e, AxisHorizontal); ok {
		t.Error("disposed element should not resolve")
	}
}
