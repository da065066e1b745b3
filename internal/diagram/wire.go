package diagram

import "github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"

// Endpoint identifies one end of a wire: a lookup pair, never an ownership
// link. If the referenced instance is deleted the wire is removed with it.
type Endpoint struct {
	ComponentID string `json:"component_id"`
	ConnectorID string `json:"connector_id"`
}

// Wire is one cable between two connection points on two distinct
// component instances. Its rendered geometry is always recomputed from the
// endpoints' current positions; no absolute coordinates are stored here.
type Wire struct {
	ID    string    `json:"id"`
	Start Endpoint  `json:"start"`
	End   Endpoint  `json:"end"`
	Type  CableType `json:"type"`

	// Selected is transient UI state and is not persisted.
	Selected bool `json:"-"`
}

// CableType classifies a wire by the kinds of its two endpoints.
type CableType string

const (
	CablePower    CableType = "power"
	CableGround   CableType = "ground"
	CableData     CableType = "data"
	CableEthernet CableType = "ethernet"
	CableAnalog   CableType = "analog"
	CableGeneric  CableType = "generic"
)

// CableTypeFor returns the cable type for a pair of connector kinds, or
// false when the pair has no matching rule. Matching kinds map to their own
// cable type; a custom connector matches anything and yields a generic
// cable.
func CableTypeFor(a, b catalog.Kind) (CableType, bool) {
	if a == catalog.KindCustom || b == catalog.KindCustom {
		return CableGeneric, true
	}
	if a != b {
		return "", false
	}
	switch a {
	case catalog.KindPower:
		return CablePower, true
	case catalog.KindGround:
		return CableGround, true
	case catalog.KindData:
		return CableData, true
	case catalog.KindEthernet:
		return CableEthernet, true
	case catalog.KindAnalog:
		return CableAnalog, true
	}
	return "", false
}
