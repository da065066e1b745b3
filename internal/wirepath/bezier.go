// Package wirepath computes the rendered geometry of cables: smooth cubic
// Bézier paths between connection points, approximate point-to-curve
// distances for hit testing, and waypoint routing around component bounds.
package wirepath

import (
	"math"

	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

const (
	// MaxControlOffset caps how far control points bow out along the
	// dominant axis, so long cables don't loop excessively.
	MaxControlOffset = 100.0

	// DistanceSamples is the number of parametric steps used when
	// approximating the distance from a point to a curve.
	DistanceSamples = 30
)

// CubicBezier is a single cubic Bézier segment.
type CubicBezier struct {
	P0 geometry.Point2D // start
	C1 geometry.Point2D // first control point
	C2 geometry.Point2D // second control point
	P3 geometry.Point2D // end
}

// NewSegment builds the segment between two points. Control points sit a
// quarter of the displacement in from each end along the dominant axis,
// capped at MaxControlOffset.
func NewSegment(p1, p2 geometry.Point2D) CubicBezier {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	if math.Abs(dx) > math.Abs(dy) {
		offset := math.Min(math.Abs(dx)*0.25, MaxControlOffset)
		offset = math.Copysign(offset, dx)
		return CubicBezier{
			P0: p1,
			C1: geometry.Point2D{X: p1.X + offset, Y: p1.Y},
			C2: geometry.Point2D{X: p2.X - offset, Y: p2.Y},
			P3: p2,
		}
	}

	offset := math.Min(math.Abs(dy)*0.25, MaxControlOffset)
	offset = math.Copysign(offset, dy)
	return CubicBezier{
		P0: p1,
		C1: geometry.Point2D{X: p1.X, Y: p1.Y + offset},
		C2: geometry.Point2D{X: p2.X, Y: p2.Y - offset},
		P3: p2,
	}
}

// Point evaluates the curve at parameter t in [0,1].
func (b CubicBezier) Point(t float64) geometry.Point2D {
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return geometry.Point2D{
		X: mt3*b.P0.X + 3*mt2*t*b.C1.X + 3*mt*t2*b.C2.X + t3*b.P3.X,
		Y: mt3*b.P0.Y + 3*mt2*t*b.C1.Y + 3*mt*t2*b.C2.Y + t3*b.P3.Y,
	}
}

// DistanceTo returns the approximate minimum distance from a point to the
// curve, found by sampling DistanceSamples parametric steps. This is not an
// exact nearest-point-on-Bézier solution; it is accurate enough for
// pixel-scale hit thresholds.
func (b CubicBezier) DistanceTo(p geometry.Point2D) float64 {
	best := math.MaxFloat64
	for i := 0; i <= DistanceSamples; i++ {
		t := float64(i) / DistanceSamples
		d := b.Point(t).Distance(p)
		if d < best {
			best = d
		}
	}
	return best
}
