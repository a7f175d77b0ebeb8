package glide

import "math"

// Resolve returns the element whose center is closest to center along axis
// (Euclidean for AxisBoth). Centers are taken in the elements' parent space,
// which must be the space center is expressed in. Ties go to the lowest
// Index. Nil or disposed entries are skipped; the result is nil iff no
// usable element remains.
func Resolve(elements []*Node, center Vec2, axis ScrollAxis) *Node {
	var best *Node
	bestDist := math.Inf(1)
	for _, e := range elements {
		if !isLive(e) {
			continue
		}
		d := axis.Distance(ElementCenter(e), center)
		if math.IsNaN(d) {
			continue
		}
		if d < bestDist || (d == bestDist && best != nil && e.Index < best.Index) {
			best = e
			bestDist = d
		}
	}
	return best
}
