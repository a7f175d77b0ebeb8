package glide

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// Curve maps a normalized input t in [0, 1] to an output value. Curves need
// not be monotonic and may overshoot.
type Curve func(t float64) float64

// Evaluate clamps t to [0, 1] and applies the curve. A nil curve is linear.
func (c Curve) Evaluate(t float64) float64 {
	t = clamp01(t)
	if c == nil {
		return t
	}
	return c(t)
}

// LinearCurve returns t unchanged.
func LinearCurve(t float64) float64 { return t }

// SmoothStepCurve is the cubic Hermite ease-in-out 3t²-2t³.
func SmoothStepCurve(t float64) float64 { return t * t * (3 - 2*t) }

// EaseCurve adapts a gween easing function to a Curve.
func EaseCurve(fn ease.TweenFunc) Curve {
	if fn == nil {
		return LinearCurve
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// CurveEase adapts a Curve to a gween easing function so it can drive a Tween.
func CurveEase(c Curve) ease.TweenFunc {
	return func(t, b, ch, d float32) float32 {
		if d <= 0 {
			return b + ch
		}
		return b + ch*float32(c.Evaluate(float64(t/d)))
	}
}

// Keyframe is a control point of a KeyframeCurve.
type Keyframe struct {
	T     float64 `yaml:"t"`
	Value float64 `yaml:"value"`
}

// KeyframeCurve builds a piecewise-linear curve through the given points.
// Inputs before the first key or after the last hold the end values. An empty
// key list yields a linear curve.
func KeyframeCurve(keys ...Keyframe) Curve {
	if len(keys) == 0 {
		return LinearCurve
	}
	ks := make([]Keyframe, len(keys))
	copy(ks, keys)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].T < ks[j].T })
	return func(t float64) float64 {
		if t <= ks[0].T {
			return ks[0].Value
		}
		last := ks[len(ks)-1]
		if t >= last.T {
			return last.Value
		}
		i := sort.Search(len(ks), func(i int) bool { return ks[i].T >= t })
		a, b := ks[i-1], ks[i]
		span := b.T - a.T
		if span <= 0 {
			return b.Value
		}
		return a.Value + (b.Value-a.Value)*(t-a.T)/span
	}
}
