// Package interaction implements the pointer-input state machine for the
// diagram surface. Input arrives as abstract pointer events in screen
// space, so the machine is independent of any particular UI toolkit and
// testable on its own.
package interaction

import (
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/hittest"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/view"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// State is the current interaction mode.
type State int

const (
	Idle State = iota
	DraggingComponent
	DrawingWire
	Panning
	Pinching
)

func (s State) String() string {
	switch s {
	case DraggingComponent:
		return "dragging"
	case DrawingWire:
		return "drawing wire"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	default:
		return "idle"
	}
}

// Machine drives diagram mutations from pointer events. Every transition
// runs synchronously on the calling goroutine; a render after any event
// sees a fully applied mutation.
type Machine struct {
	diagram  *diagram.Diagram
	viewport *view.Viewport

	state State
	grid  float64

	// DraggingComponent
	dragID     string
	grabOffset geometry.Point2D

	// DrawingWire
	wireStart    diagram.Endpoint
	wireStartPos geometry.Point2D
	pointerModel geometry.Point2D

	// Panning
	lastScreen geometry.Point2D

	// Pinching
	secondScreen geometry.Point2D
	pinchZoom    float64
	pinchDist    float64

	onChange func()
	onError  func(error)
}

// New creates a machine over a diagram and viewport. The grid size is used
// to snap component drags; pass 0 to disable snapping. onChange fires after
// every model or view mutation; onError receives failures such as an
// incompatible connection attempt. Either callback may be nil.
func New(d *diagram.Diagram, v *view.Viewport, grid float64, onChange func(), onError func(error)) *Machine {
	return &Machine{
		diagram:  d,
		viewport: v,
		grid:     grid,
		onChange: onChange,
		onError:  onError,
	}
}

// State returns the current interaction state.
func (m *Machine) State() State {
	return m.state
}

// SetDiagram swaps the diagram being edited, e.g. after loading a project.
// Any in-flight gesture is abandoned.
func (m *Machine) SetDiagram(d *diagram.Diagram) {
	m.diagram = d
	m.state = Idle
}

// PendingWire reports the rubber-band line while a wire is being drawn.
func (m *Machine) PendingWire() (from, to geometry.Point2D, ok bool) {
	if m.state != DrawingWire {
		return geometry.Point2D{}, geometry.Point2D{}, false
	}
	return m.wireStartPos, m.pointerModel, true
}

// PointerDown begins a gesture. The target under the pointer decides the
// next state: a connection point starts a wire, a component body starts a
// drag, a wire toggles selection, and empty space starts panning.
func (m *Machine) PointerDown(screen geometry.Point2D) {
	model := m.viewport.ToModel(screen)

	hit := hittest.Resolve(m.diagram, model)
	switch hit.Kind {
	case hittest.HitConnectionPoint:
		m.state = DrawingWire
		m.wireStart = diagram.Endpoint{ComponentID: hit.ComponentID, ConnectorID: hit.ConnectorID}
		m.wireStartPos = hit.Position
		m.pointerModel = model

	case hittest.HitComponent:
		inst := m.diagram.Component(hit.ComponentID)
		m.state = DraggingComponent
		m.dragID = hit.ComponentID
		m.grabOffset = model.Sub(inst.Position)

	case hittest.HitWire:
		m.diagram.SelectWire(hit.WireID)
		m.notifyChange()

	default:
		m.diagram.SelectWire("")
		m.state = Panning
		m.lastScreen = screen
		m.notifyChange()
	}
}

// PointerMove advances the active gesture.
func (m *Machine) PointerMove(screen geometry.Point2D) {
	switch m.state {
	case DraggingComponent:
		model := m.viewport.ToModel(screen)
		pos := view.SnapToGrid(model.Sub(m.grabOffset), m.grid)
		if err := m.diagram.MoveComponent(m.dragID, pos); err != nil {
			m.notifyError(err)
			m.state = Idle
			return
		}
		m.notifyChange()

	case DrawingWire:
		m.pointerModel = m.viewport.ToModel(screen)
		m.notifyChange()

	case Panning:
		m.viewport.PanBy(screen.Sub(m.lastScreen))
		m.lastScreen = screen
		m.notifyChange()

	case Pinching:
		m.lastScreen = screen
		m.applyPinch()
	}
}

// PointerUp completes the gesture. Releasing a wire over a connection
// point attempts the connection; anywhere else discards it.
func (m *Machine) PointerUp(screen geometry.Point2D) {
	defer func() { m.state = Idle }()

	if m.state != DrawingWire {
		return
	}

	model := m.viewport.ToModel(screen)
	hit := hittest.Resolve(m.diagram, model)
	if hit.Kind != hittest.HitConnectionPoint {
		m.notifyChange() // erase the rubber band
		return
	}

	end := diagram.Endpoint{ComponentID: hit.ComponentID, ConnectorID: hit.ConnectorID}
	if _, err := m.diagram.Connect(m.wireStart, end); err != nil {
		m.notifyError(err)
	}
	m.notifyChange()
}

// SecondPointerDown starts a pinch zoom. Whatever gesture the first
// pointer was in is abandoned in favor of the pinch.
func (m *Machine) SecondPointerDown(first, second geometry.Point2D) {
	m.state = Pinching
	m.lastScreen = first
	m.secondScreen = second
	m.pinchZoom = m.viewport.Zoom()
	m.pinchDist = first.Distance(second)
}

// SecondPointerMove updates the second pinch finger.
func (m *Machine) SecondPointerMove(screen geometry.Point2D) {
	if m.state != Pinching {
		return
	}
	m.secondScreen = screen
	m.applyPinch()
}

// SecondPointerUp ends the pinch and falls back to panning with the
// remaining pointer.
func (m *Machine) SecondPointerUp() {
	if m.state != Pinching {
		return
	}
	m.state = Panning
}

// applyPinch scales zoom by the ratio of the current finger spread to the
// spread when the pinch began, anchored at the midpoint.
func (m *Machine) applyPinch() {
	if m.pinchDist <= 0 {
		return
	}
	dist := m.lastScreen.Distance(m.secondScreen)
	if dist <= 0 {
		return
	}
	mid := geometry.Point2D{
		X: (m.lastScreen.X + m.secondScreen.X) / 2,
		Y: (m.lastScreen.Y + m.secondScreen.Y) / 2,
	}
	anchor := m.viewport.ToModel(mid)
	m.viewport.SetZoom(m.pinchZoom * dist / m.pinchDist)
	// Re-anchor so the midpoint stays put.
	m.viewport.PanBy(mid.Sub(m.viewport.ToScreen(anchor)))
	m.notifyChange()
}

func (m *Machine) notifyChange() {
	if m.onChange != nil {
		m.onChange()
	}
}

func (m *Machine) notifyError(err error) {
	if m.onError != nil {
		m.onError(err)
	}
}
