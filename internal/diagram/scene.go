package diagram

import (
	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/wirepath"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// Scene is the read-only rendering view of the diagram: components with
// resolved world geometry and wires with computed paths. Drawing layers and
// exporters consume this instead of reading the model directly, and every
// redraw rebuilds it from current model data so nothing can drift.
type Scene struct {
	Canvas     geometry.Size
	Components []SceneComponent
	Wires      []SceneWire
}

// SceneComponent is one instance resolved to world space.
type SceneComponent struct {
	ID       string
	TypeID   string
	Name     string
	Bounds   geometry.Rect
	Mirrored bool
	Points   []ScenePoint
}

// ScenePoint is one connection point resolved to world space.
type ScenePoint struct {
	ID       string
	Label    string
	Kind     catalog.Kind
	Side     catalog.Side
	Position geometry.Point2D
}

// SceneWire is one wire with its computed path geometry, including any
// avoidance waypoints. FromLabel and ToLabel are human-readable endpoint
// descriptions for schedules and exports.
type SceneWire struct {
	ID        string
	Type      CableType
	Selected  bool
	FromLabel string
	ToLabel   string
	Path      wirepath.Path
}

// Scene builds the rendering view from the current model state. Wires whose
// endpoints do not resolve are omitted; the graph's cascade delete makes
// that impossible in practice, but the renderer never observes a dangling
// reference either way.
func (d *Diagram) BuildScene() Scene {
	scene := Scene{
		Canvas:     d.canvas,
		Components: make([]SceneComponent, 0, len(d.instances)),
		Wires:      make([]SceneWire, 0, len(d.wires)),
	}

	for _, inst := range d.instances {
		sc := SceneComponent{
			ID:       inst.ID,
			TypeID:   inst.TypeID,
			Name:     inst.Name,
			Bounds:   inst.Bounds(),
			Mirrored: inst.Mirrored,
			Points:   make([]ScenePoint, 0, len(inst.Points)),
		}
		for i := range inst.Points {
			p := &inst.Points[i]
			sc.Points = append(sc.Points, ScenePoint{
				ID:       p.ID,
				Label:    p.Name,
				Kind:     p.Kind,
				Side:     p.Side,
				Position: inst.PointWorldPosition(p),
			})
		}
		scene.Components = append(scene.Components, sc)
	}

	for _, w := range d.wires {
		path, err := d.WirePath(w)
		if err != nil {
			continue
		}
		scene.Wires = append(scene.Wires, SceneWire{
			ID:        w.ID,
			Type:      w.Type,
			Selected:  w.Selected,
			FromLabel: d.endpointLabel(w.Start),
			ToLabel:   d.endpointLabel(w.End),
			Path:      path,
		})
	}

	return scene
}

// endpointLabel formats "<component> / <connector>" for schedules.
func (d *Diagram) endpointLabel(e Endpoint) string {
	inst := d.byID[e.ComponentID]
	if inst == nil {
		return e.ComponentID + " / " + e.ConnectorID
	}
	name := inst.Name
	if name == "" {
		name = inst.ID
	}
	if p := inst.Point(e.ConnectorID); p != nil && p.Name != "" {
		return name + " / " + p.Name
	}
	return name + " / " + e.ConnectorID
}

// Bounds returns the bounding box of everything in the scene, or a zero
// rect for an empty scene. Exporters use this to fit their page.
func (s Scene) Bounds() geometry.Rect {
	var points []geometry.Point2D
	for _, c := range s.Components {
		points = append(points, c.Bounds.TopLeft(), c.Bounds.BottomRight())
	}
	for _, w := range s.Wires {
		points = append(points, w.Path.Flatten(8)...)
	}
	return geometry.BoundingBox(points)
}
