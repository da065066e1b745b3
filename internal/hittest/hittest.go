// Package hittest resolves which diagram entity sits under a model-space
// point, applying the priority rules the canvas depends on.
package hittest

import (
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

const (
	// PointRadius is the detection radius around a connection point in
	// model units. Connection points are small targets inside larger
	// component bounds, so they are matched first and generously.
	PointRadius = 15.0

	// WireThreshold is the maximum point-to-curve distance for a wire hit.
	WireThreshold = 10.0
)

// Kind identifies what a hit resolved to.
type Kind int

const (
	HitNone Kind = iota
	HitConnectionPoint
	HitComponent
	HitWire
)

func (k Kind) String() string {
	switch k {
	case HitConnectionPoint:
		return "connection point"
	case HitComponent:
		return "component"
	case HitWire:
		return "wire"
	default:
		return "none"
	}
}

// Hit is the result of a hit test. HitNone means background: callers treat
// it as empty-space interaction (deselect, start panning), never an error.
type Hit struct {
	Kind        Kind
	ComponentID string
	ConnectorID string
	WireID      string
	Position    geometry.Point2D // world position of the matched point, if any
	Distance    float64
}

// Resolve classifies the entity under a model-space point.
//
// Priority order:
//  1. Connection points within PointRadius, closest wins (not first found).
//  2. Component bodies by bounding box, topmost (most recently added) first.
//  3. Wires whose path lies within WireThreshold, first found.
func Resolve(d *diagram.Diagram, p geometry.Point2D) Hit {
	best := Hit{Kind: HitNone}

	for _, inst := range d.Components() {
		for i := range inst.Points {
			point := &inst.Points[i]
			world := inst.PointWorldPosition(point)
			dist := world.Distance(p)
			if dist > PointRadius {
				continue
			}
			if best.Kind == HitNone || dist < best.Distance {
				best = Hit{
					Kind:        HitConnectionPoint,
					ComponentID: inst.ID,
					ConnectorID: point.ID,
					Position:    world,
					Distance:    dist,
				}
			}
		}
	}
	if best.Kind == HitConnectionPoint {
		return best
	}

	instances := d.Components()
	for i := len(instances) - 1; i >= 0; i-- {
		inst := instances[i]
		if inst.Bounds().Contains(p) {
			return Hit{
				Kind:        HitComponent,
				ComponentID: inst.ID,
			}
		}
	}

	for _, w := range d.Wires() {
		path, err := d.WirePath(w)
		if err != nil {
			continue
		}
		if dist := path.DistanceTo(p); dist <= WireThreshold {
			return Hit{
				Kind:     HitWire,
				WireID:   w.ID,
				Distance: dist,
			}
		}
	}

	return Hit{Kind: HitNone}
}
