package wirepath

import (
	"math"
	"sort"

	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

const (
	// ObstaclePadding is how far component bounds are expanded before the
	// straight path is tested against them.
	ObstaclePadding = 20.0

	// WaypointClearance is how far beyond an obstacle's expanded edge the
	// avoidance waypoint is placed.
	WaypointClearance = 10.0
)

// Path is the full rendered geometry of a cable: the endpoints, any
// avoidance waypoints in path order, and the Bézier segments joining them.
type Path struct {
	Start     geometry.Point2D
	End       geometry.Point2D
	Waypoints []geometry.Point2D
	Segments  []CubicBezier
}

// Route computes the path between two points, detouring around any obstacle
// whose padded bounds the straight line would cross. One waypoint is placed
// per intersecting obstacle; the legs introduced by a waypoint are not
// re-checked against other obstacles. This is a local visual heuristic, not
// a path planner.
func Route(p1, p2 geometry.Point2D, obstacles []geometry.Rect) Path {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	horizontal := math.Abs(dx) > math.Abs(dy)

	type hit struct {
		waypoint geometry.Point2D
		along    float64 // projection onto p1→p2, for ordering
	}
	var hits []hit

	for _, obstacle := range obstacles {
		box := obstacle.Expand(ObstaclePadding)
		if !geometry.SegmentIntersectsRect(p1, p2, box) {
			continue
		}

		center := box.Center()
		var wp geometry.Point2D
		if horizontal {
			// Step over the obstacle: above it when the path runs
			// downward, below it otherwise. An exactly level path
			// (dy == 0) detours above.
			wp.X = center.X
			if dy >= 0 {
				wp.Y = box.Y - WaypointClearance
			} else {
				wp.Y = box.Y + box.Height + WaypointClearance
			}
		} else {
			wp.Y = center.Y
			if dx >= 0 {
				wp.X = box.X - WaypointClearance
			} else {
				wp.X = box.X + box.Width + WaypointClearance
			}
		}

		hits = append(hits, hit{
			waypoint: wp,
			along:    (wp.X-p1.X)*dx + (wp.Y-p1.Y)*dy,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].along < hits[j].along
	})

	path := Path{Start: p1, End: p2}
	for _, h := range hits {
		path.Waypoints = append(path.Waypoints, h.waypoint)
	}

	prev := p1
	for _, wp := range path.Waypoints {
		path.Segments = append(path.Segments, NewSegment(prev, wp))
		prev = wp
	}
	path.Segments = append(path.Segments, NewSegment(prev, p2))

	return path
}

// Direct computes the path between two points with no obstacle avoidance.
func Direct(p1, p2 geometry.Point2D) Path {
	return Path{
		Start:    p1,
		End:      p2,
		Segments: []CubicBezier{NewSegment(p1, p2)},
	}
}

// DistanceTo returns the approximate minimum distance from a point to the
// path across all of its segments.
func (p Path) DistanceTo(q geometry.Point2D) float64 {
	best := math.MaxFloat64
	for _, seg := range p.Segments {
		d := seg.DistanceTo(q)
		if d < best {
			best = d
		}
	}
	return best
}

// Flatten samples every segment into a polyline with the given number of
// steps per segment. Renderers that cannot draw curves natively consume
// this form.
func (p Path) Flatten(stepsPerSegment int) []geometry.Point2D {
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	var points []geometry.Point2D
	for i, seg := range p.Segments {
		start := 0
		if i > 0 {
			start = 1 // segment start duplicates previous segment end
		}
		for s := start; s <= stepsPerSegment; s++ {
			t := float64(s) / float64(stepsPerSegment)
			points = append(points, seg.Point(t))
		}
	}
	return points
}
