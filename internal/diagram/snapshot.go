package diagram

import (
	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// ComponentRecord is the flat persisted form of an instance. Only the
// placement is stored; size and connector layout are rebuilt from the
// catalog on load.
type ComponentRecord struct {
	ID       string  `json:"id"`
	TypeID   string  `json:"type_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Mirrored bool    `json:"mirrored,omitempty"`
}

// CableRecord is the flat persisted form of a wire. Endpoints are id
// lookup pairs; no object identity crosses the serialization boundary.
type CableRecord struct {
	ID               string `json:"id"`
	StartComponentID string `json:"start_component_id"`
	StartConnectorID string `json:"start_connector_id"`
	EndComponentID   string `json:"end_component_id"`
	EndConnectorID   string `json:"end_connector_id"`
}

// Snapshot is the serialized diagram: flat records, ids only.
type Snapshot struct {
	Components []ComponentRecord `json:"components"`
	Cables     []CableRecord     `json:"cables"`
}

// Snapshot serializes the diagram to its flat record form.
func (d *Diagram) Snapshot() Snapshot {
	snap := Snapshot{
		Components: make([]ComponentRecord, 0, len(d.instances)),
		Cables:     make([]CableRecord, 0, len(d.wires)),
	}
	for _, inst := range d.instances {
		snap.Components = append(snap.Components, ComponentRecord{
			ID:       inst.ID,
			TypeID:   inst.TypeID,
			X:        inst.Position.X,
			Y:        inst.Position.Y,
			Mirrored: inst.Mirrored,
		})
	}
	for _, w := range d.wires {
		snap.Cables = append(snap.Cables, CableRecord{
			ID:               w.ID,
			StartComponentID: w.Start.ComponentID,
			StartConnectorID: w.Start.ConnectorID,
			EndComponentID:   w.End.ComponentID,
			EndConnectorID:   w.End.ConnectorID,
		})
	}
	return snap
}

// FromSnapshot rebuilds a diagram from its flat record form: instances
// first, then cables. Reconstruction is best-effort: a component whose
// type id is no longer in the catalog is dropped, and a cable whose
// references do not resolve (or whose connector kinds no longer have a
// rule) is skipped rather than failing the whole load, since catalogs and
// schemas may change between save and load.
func FromSnapshot(cat *catalog.Catalog, snap Snapshot) *Diagram {
	d := New()

	for _, rec := range snap.Components {
		def := cat.Get(rec.TypeID)
		if def == nil {
			continue
		}
		inst := newInstance(rec.ID, def, geometry.NewPoint2D(rec.X, rec.Y))
		if rec.Mirrored {
			inst.Mirror()
		}
		d.insertComponent(inst)
	}

	for _, rec := range snap.Cables {
		w, err := d.Connect(
			Endpoint{ComponentID: rec.StartComponentID, ConnectorID: rec.StartConnectorID},
			Endpoint{ComponentID: rec.EndComponentID, ConnectorID: rec.EndConnectorID},
		)
		if err != nil {
			continue
		}
		// Keep the persisted id instead of the freshly allocated one.
		delete(d.wireByID, w.ID)
		w.ID = rec.ID
		d.wireByID[w.ID] = w
		d.noteID(w.ID)
	}

	return d
}
