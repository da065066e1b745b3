// Package diagram owns the authoritative diagram model: placed component
// instances, the cables connecting them, and every mutation the UI layer
// performs on them.
package diagram

import (
	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// ConnectionPoint is one attachment location on a component instance.
// The instance exclusively owns its points; wires only reference them by
// component id + point id.
type ConnectionPoint struct {
	ID     string           `json:"id"`
	Name   string           `json:"name,omitempty"`
	Kind   catalog.Kind     `json:"kind"`
	Offset geometry.Point2D `json:"offset"` // relative to the instance position
	Side   catalog.Side     `json:"side"`
}

// Instance is one placed device on the diagram, distinct from its catalog
// definition. Size and connection points are copied from the definition at
// creation time so mutating one instance never leaks into another.
type Instance struct {
	ID         string            `json:"id"`
	TypeID     string            `json:"type_id"`
	Name       string            `json:"name"`
	Position   geometry.Point2D  `json:"position"`
	Size       geometry.Size     `json:"size"`
	Mirrored   bool              `json:"mirrored"`
	Points     []ConnectionPoint `json:"points"`
	Properties map[string]any    `json:"properties,omitempty"`
}

// newInstance creates an instance from a definition with a deep copy of the
// definition's connector layout and default properties.
func newInstance(id string, def *catalog.Definition, pos geometry.Point2D) *Instance {
	inst := &Instance{
		ID:       id,
		TypeID:   def.ID,
		Name:     def.Name,
		Position: pos,
		Size:     geometry.NewSize(def.Width, def.Height),
		Points:   make([]ConnectionPoint, len(def.Connectors)),
	}
	for i, c := range def.Connectors {
		inst.Points[i] = ConnectionPoint{
			ID:     c.ID,
			Name:   c.Label,
			Kind:   c.Kind,
			Offset: c.Offset,
			Side:   c.Side,
		}
	}
	if len(def.Properties) > 0 {
		inst.Properties = make(map[string]any, len(def.Properties))
		for k, v := range def.Properties {
			inst.Properties[k] = v
		}
	}
	return inst
}

// Bounds returns the instance's axis-aligned bounding box in model space.
func (c *Instance) Bounds() geometry.Rect {
	return geometry.NewRect(c.Position.X, c.Position.Y, c.Size.Width, c.Size.Height)
}

// Point returns the connection point with the given id, or nil.
func (c *Instance) Point(id string) *ConnectionPoint {
	for i := range c.Points {
		if c.Points[i].ID == id {
			return &c.Points[i]
		}
	}
	return nil
}

// PointWorldPosition returns the model-space position of a connection point.
func (c *Instance) PointWorldPosition(p *ConnectionPoint) geometry.Point2D {
	return c.Position.Add(p.Offset)
}

// Mirror flips the instance left/right. Every left- or right-side point
// moves to the opposite side with its x offset reflected around the
// instance width; top and bottom points pass through unchanged. Mirroring
// twice restores the original layout.
func (c *Instance) Mirror() {
	for i := range c.Points {
		p := &c.Points[i]
		switch p.Side {
		case catalog.SideLeft, catalog.SideRight:
			p.Side = p.Side.Opposite()
			p.Offset.X = c.Size.Width - p.Offset.X
		}
	}
	c.Mirrored = !c.Mirrored
}
