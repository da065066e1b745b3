package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/wirepath"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// DefaultCanvasSize is the logical drawing surface in model units.
// Component positions are clamped so bounding boxes stay inside it.
var DefaultCanvasSize = geometry.NewSize(5000, 5000)

// Diagram is the single mutable source of truth: the set of component
// instances (in insertion order, topmost last) and the set of wires.
// All operations are synchronous; callers on the UI thread see every
// mutation run to completion.
type Diagram struct {
	instances []*Instance
	byID      map[string]*Instance

	wires    []*Wire
	wireByID map[string]*Wire

	canvas geometry.Size
	nextID map[string]int
}

// New creates an empty diagram with the default canvas size.
func New() *Diagram {
	return NewWithCanvas(DefaultCanvasSize)
}

// NewWithCanvas creates an empty diagram with an explicit canvas size.
func NewWithCanvas(canvas geometry.Size) *Diagram {
	return &Diagram{
		byID:     make(map[string]*Instance),
		wireByID: make(map[string]*Wire),
		canvas:   canvas,
		nextID:   make(map[string]int),
	}
}

// Canvas returns the logical canvas size.
func (d *Diagram) Canvas() geometry.Size {
	return d.canvas
}

// Components returns the instances in insertion order (topmost last).
func (d *Diagram) Components() []*Instance {
	return d.instances
}

// Component returns the instance with the given id, or nil.
func (d *Diagram) Component(id string) *Instance {
	return d.byID[id]
}

// Wires returns all wires in insertion order.
func (d *Diagram) Wires() []*Wire {
	return d.wires
}

// Wire returns the wire with the given id, or nil.
func (d *Diagram) Wire(id string) *Wire {
	return d.wireByID[id]
}

// generateID allocates the next id for a prefix, e.g. "comp-003".
func (d *Diagram) generateID(prefix string) string {
	d.nextID[prefix]++
	return fmt.Sprintf("%s-%03d", prefix, d.nextID[prefix])
}

// noteID bumps the id counter past an externally supplied id so later
// allocations cannot collide with loaded entities.
func (d *Diagram) noteID(id string) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return
	}
	prefix := id[:idx]
	if n > d.nextID[prefix] {
		d.nextID[prefix] = n
	}
}

// AddComponent places a new instance of the given catalog type. The
// instance gets a fresh id and a deep copy of the definition's connection
// points. Returns ErrNotFound for an unknown type id.
func (d *Diagram) AddComponent(cat *catalog.Catalog, typeID string, pos geometry.Point2D) (*Instance, error) {
	def := cat.Get(typeID)
	if def == nil {
		return nil, fmt.Errorf("component type %q: %w", typeID, ErrNotFound)
	}

	inst := newInstance(d.generateID("comp"), def, pos)
	inst.Position = d.clampPosition(inst.Position, inst.Size)
	d.instances = append(d.instances, inst)
	d.byID[inst.ID] = inst
	return inst, nil
}

// insertComponent adds a fully formed instance, used when restoring a
// persisted diagram.
func (d *Diagram) insertComponent(inst *Instance) {
	d.instances = append(d.instances, inst)
	d.byID[inst.ID] = inst
	d.noteID(inst.ID)
}

// MoveComponent repositions an instance, clamping so its bounding box stays
// within the canvas. Wire geometry needs no explicit update: it is always
// recomputed from live positions.
func (d *Diagram) MoveComponent(id string, pos geometry.Point2D) error {
	inst := d.byID[id]
	if inst == nil {
		return fmt.Errorf("component %q: %w", id, ErrNotFound)
	}
	inst.Position = d.clampPosition(pos, inst.Size)
	return nil
}

// clampPosition keeps a box of the given size inside the canvas.
func (d *Diagram) clampPosition(pos geometry.Point2D, size geometry.Size) geometry.Point2D {
	maxX := d.canvas.Width - size.Width
	maxY := d.canvas.Height - size.Height
	if pos.X > maxX {
		pos.X = maxX
	}
	if pos.Y > maxY {
		pos.Y = maxY
	}
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	return pos
}

// DeleteComponent removes an instance and cascades to every wire with
// either endpoint referencing it. No dangling wire survives.
func (d *Diagram) DeleteComponent(id string) error {
	inst := d.byID[id]
	if inst == nil {
		return fmt.Errorf("component %q: %w", id, ErrNotFound)
	}

	for i, c := range d.instances {
		if c.ID == id {
			d.instances = append(d.instances[:i], d.instances[i+1:]...)
			break
		}
	}
	delete(d.byID, id)

	kept := d.wires[:0]
	for _, w := range d.wires {
		if w.Start.ComponentID == id || w.End.ComponentID == id {
			delete(d.wireByID, w.ID)
			continue
		}
		kept = append(kept, w)
	}
	d.wires = kept
	return nil
}

// MirrorComponent flips an instance left/right. Wires are unaffected: they
// reference points by id, and the point keeps its id on the opposite side.
func (d *Diagram) MirrorComponent(id string) error {
	inst := d.byID[id]
	if inst == nil {
		return fmt.Errorf("component %q: %w", id, ErrNotFound)
	}
	inst.Mirror()
	return nil
}

// Connect creates a wire between two connection points. It fails with
// ErrSelfConnection when both points sit on one instance, ErrNotFound when
// either reference does not resolve, and ErrIncompatibleConnectors when the
// two kinds have no cable-type rule.
func (d *Diagram) Connect(a, b Endpoint) (*Wire, error) {
	if a.ComponentID == b.ComponentID {
		return nil, ErrSelfConnection
	}

	pa, err := d.resolve(a)
	if err != nil {
		return nil, err
	}
	pb, err := d.resolve(b)
	if err != nil {
		return nil, err
	}

	cableType, ok := CableTypeFor(pa.Kind, pb.Kind)
	if !ok {
		return nil, fmt.Errorf("%s and %s: %w", pa.Kind, pb.Kind, ErrIncompatibleConnectors)
	}

	w := &Wire{
		ID:    d.generateID("cable"),
		Start: a,
		End:   b,
		Type:  cableType,
	}
	d.wires = append(d.wires, w)
	d.wireByID[w.ID] = w
	return w, nil
}

// resolve looks an endpoint up to its live connection point.
func (d *Diagram) resolve(e Endpoint) (*ConnectionPoint, error) {
	inst := d.byID[e.ComponentID]
	if inst == nil {
		return nil, fmt.Errorf("component %q: %w", e.ComponentID, ErrNotFound)
	}
	p := inst.Point(e.ConnectorID)
	if p == nil {
		return nil, fmt.Errorf("connector %q on %q: %w", e.ConnectorID, e.ComponentID, ErrNotFound)
	}
	return p, nil
}

// EndpointPosition returns the current model-space position of an endpoint.
func (d *Diagram) EndpointPosition(e Endpoint) (geometry.Point2D, error) {
	inst := d.byID[e.ComponentID]
	if inst == nil {
		return geometry.Point2D{}, fmt.Errorf("component %q: %w", e.ComponentID, ErrNotFound)
	}
	p := inst.Point(e.ConnectorID)
	if p == nil {
		return geometry.Point2D{}, fmt.Errorf("connector %q on %q: %w", e.ConnectorID, e.ComponentID, ErrNotFound)
	}
	return inst.PointWorldPosition(p), nil
}

// DeleteWire removes a wire. No cascade.
func (d *Diagram) DeleteWire(id string) error {
	if _, ok := d.wireByID[id]; !ok {
		return fmt.Errorf("wire %q: %w", id, ErrNotFound)
	}
	delete(d.wireByID, id)
	for i, w := range d.wires {
		if w.ID == id {
			d.wires = append(d.wires[:i], d.wires[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveAllOfType bulk-deletes every instance of a catalog type along with
// every wire touching any of them. Returns the number of instances removed.
func (d *Diagram) RemoveAllOfType(typeID string) int {
	var ids []string
	for _, inst := range d.instances {
		if inst.TypeID == typeID {
			ids = append(ids, inst.ID)
		}
	}
	for _, id := range ids {
		// Instances were collected from the live set, so delete cannot fail.
		_ = d.DeleteComponent(id)
	}
	return len(ids)
}

// SelectWire marks one wire selected and clears selection on all others.
// An empty id clears the selection entirely.
func (d *Diagram) SelectWire(id string) {
	for _, w := range d.wires {
		w.Selected = w.ID == id
	}
}

// WirePath computes the rendered geometry of a wire from the current
// endpoint positions, routing around every other component whose padded
// bounds the straight path would cross. The two endpoint components are
// never treated as obstacles.
func (d *Diagram) WirePath(w *Wire) (wirepath.Path, error) {
	p1, err := d.EndpointPosition(w.Start)
	if err != nil {
		return wirepath.Path{}, err
	}
	p2, err := d.EndpointPosition(w.End)
	if err != nil {
		return wirepath.Path{}, err
	}

	var obstacles []geometry.Rect
	for _, inst := range d.instances {
		if inst.ID == w.Start.ComponentID || inst.ID == w.End.ComponentID {
			continue
		}
		obstacles = append(obstacles, inst.Bounds())
	}

	return wirepath.Route(p1, p2, obstacles), nil
}
