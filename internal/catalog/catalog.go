// Package catalog provides the read-only library of component definitions
// that diagrams are built from.
package catalog

import (
	"fmt"

	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// Kind classifies a connector and governs which cables may attach to it.
type Kind string

const (
	KindPower    Kind = "power"
	KindGround   Kind = "ground"
	KindData     Kind = "data"
	KindEthernet Kind = "ethernet"
	KindAnalog   Kind = "analog"
	KindCustom   Kind = "custom"
)

// Valid returns true if the kind is one of the known connector kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPower, KindGround, KindData, KindEthernet, KindAnalog, KindCustom:
		return true
	}
	return false
}

// Side identifies which edge of a component a connector sits on.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Valid returns true if the side is one of the four component edges.
func (s Side) Valid() bool {
	switch s {
	case SideLeft, SideRight, SideTop, SideBottom:
		return true
	}
	return false
}

// Opposite returns the mirrored side. Top and bottom map to themselves.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return s
}

// ConnectorDef describes one attachment point on a component definition.
// The offset is relative to the component's top-left corner.
type ConnectorDef struct {
	ID     string           `json:"id" yaml:"id"`
	Kind   Kind             `json:"kind" yaml:"kind"`
	Offset geometry.Point2D `json:"offset" yaml:"offset"`
	Side   Side             `json:"side" yaml:"side"`
	Label  string           `json:"label,omitempty" yaml:"label,omitempty"`
}

// Definition is an immutable template for a placeable hardware device.
// Instances copy its layout at creation time; the definition itself is
// never mutated by the diagram.
type Definition struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Category   string         `json:"category,omitempty" yaml:"category,omitempty"`
	Width      float64        `json:"width" yaml:"width"`
	Height     float64        `json:"height" yaml:"height"`
	Connectors []ConnectorDef `json:"connectors" yaml:"connectors"`
	Asset      string         `json:"asset,omitempty" yaml:"asset,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks the definition for structural problems.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("definition has no id")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("definition %q: size must be positive, got %gx%g", d.ID, d.Width, d.Height)
	}
	seen := make(map[string]bool)
	for _, c := range d.Connectors {
		if c.ID == "" {
			return fmt.Errorf("definition %q: connector has no id", d.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("definition %q: duplicate connector id %q", d.ID, c.ID)
		}
		seen[c.ID] = true
		if !c.Kind.Valid() {
			return fmt.Errorf("definition %q: connector %q has unknown kind %q", d.ID, c.ID, c.Kind)
		}
		if !c.Side.Valid() {
			return fmt.Errorf("definition %q: connector %q has unknown side %q", d.ID, c.ID, c.Side)
		}
	}
	if err := ValidateProperties(d.Properties); err != nil {
		return fmt.Errorf("definition %q: %w", d.ID, err)
	}
	return nil
}

// ValidateProperties checks that every property value is a string, number,
// or boolean. Integers are accepted and normalized to float64 in place.
func ValidateProperties(props map[string]any) error {
	for key, val := range props {
		switch v := val.(type) {
		case string, bool, float64:
			// Allowed as-is.
		case int:
			props[key] = float64(v)
		case int64:
			props[key] = float64(v)
		default:
			return fmt.Errorf("property %q has unsupported type %T", key, val)
		}
	}
	return nil
}

// Catalog is an explicitly constructed, read-only collection of definitions.
type Catalog struct {
	defs []*Definition
	byID map[string]*Definition
}

// New creates a catalog from the given definitions.
// Duplicate definition ids are rejected.
func New(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[string]*Definition),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate definition id %q", d.ID)
		}
		c.defs = append(c.defs, d)
		c.byID[d.ID] = d
	}
	return c, nil
}

// Get returns the definition with the given id, or nil if not found.
func (c *Catalog) Get(id string) *Definition {
	return c.byID[id]
}

// Definitions returns all definitions in load order.
func (c *Catalog) Definitions() []*Definition {
	return c.defs
}

// Count returns the number of definitions.
func (c *Catalog) Count() int {
	return len(c.defs)
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range c.defs {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}
