// Package canvas provides the interactive diagram surface with pan, zoom,
// and pointer editing.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/app"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/hittest"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/interaction"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/view"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// DiagramCanvas renders the open diagram through a viewport and translates
// pointer input into model edits. The widget redraws from a fresh scene on
// every frame; no render state is cached between frames.
type DiagramCanvas struct {
	widget.BaseWidget

	state    *app.State
	viewport *view.Viewport
	machine  *interaction.Machine

	raster *fynecanvas.Raster

	// Grid snapping for drags and placements.
	snapEnabled bool
	gridSize    float64

	// Pending palette placement: the next tap places this catalog type.
	placeTypeID string

	dragging      bool
	wiresAtStroke int

	onStatus func(msg string)
	onError  func(err error)
}

// New creates the canvas bound to the application state.
func New(state *app.State) *DiagramCanvas {
	dc := &DiagramCanvas{
		state:       state,
		viewport:    view.New(800, 600),
		snapEnabled: true,
		gridSize:    view.DefaultGridSize,
	}

	dc.machine = interaction.New(state.Diagram, dc.viewport, dc.gridSize,
		dc.Refresh,
		func(err error) {
			if dc.onError != nil {
				dc.onError(err)
			}
		})

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.ExtendBaseWidget(dc)

	state.On(app.EventDiagramChanged, func(interface{}) {
		dc.machine.SetDiagram(state.Diagram)
		dc.Refresh()
	})
	state.On(app.EventProjectLoaded, func(interface{}) {
		dc.machine.SetDiagram(state.Diagram)
		dc.Refresh()
	})

	return dc
}

// CreateRenderer implements fyne.Widget.
func (dc *DiagramCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

// Viewport exposes the canvas viewport for toolbars and tests.
func (dc *DiagramCanvas) Viewport() *view.Viewport {
	return dc.viewport
}

// OnStatus sets the status-line callback.
func (dc *DiagramCanvas) OnStatus(fn func(string)) {
	dc.onStatus = fn
}

// OnError sets the error callback, e.g. for rejected connections.
func (dc *DiagramCanvas) OnError(fn func(error)) {
	dc.onError = fn
}

// SetSnap toggles grid snapping for drags and placements.
func (dc *DiagramCanvas) SetSnap(enabled bool) {
	dc.snapEnabled = enabled
	grid := 0.0
	if enabled {
		grid = dc.gridSize
	}
	dc.machine = interaction.New(dc.state.Diagram, dc.viewport, grid, dc.Refresh, dc.emitError)
}

// BeginPlacement arms the canvas so the next tap places an instance of the
// given catalog type.
func (dc *DiagramCanvas) BeginPlacement(typeID string) {
	dc.placeTypeID = typeID
	dc.status("click to place " + typeID)
}

// ZoomIn zooms toward the viewport center.
func (dc *DiagramCanvas) ZoomIn() {
	dc.zoomAtCenter(view.ZoomStep)
}

// ZoomOut zooms away from the viewport center.
func (dc *DiagramCanvas) ZoomOut() {
	dc.zoomAtCenter(1 / view.ZoomStep)
}

func (dc *DiagramCanvas) zoomAtCenter(factor float64) {
	size := dc.viewport.Size()
	dc.viewport.ZoomAt(geometry.Point2D{X: size.Width / 2, Y: size.Height / 2}, factor)
	dc.Refresh()
}

// Scrolled zooms at the cursor so the content under it stays put.
func (dc *DiagramCanvas) Scrolled(ev *fyne.ScrollEvent) {
	cursor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	if ev.Scrolled.DY > 0 {
		dc.viewport.ZoomAt(cursor, view.ZoomStep)
	} else if ev.Scrolled.DY < 0 {
		dc.viewport.ZoomAt(cursor, 1/view.ZoomStep)
	}
	dc.Refresh()
}

// Dragged feeds drag gestures into the interaction machine: component
// drags, wire rubber-bands, and background panning.
func (dc *DiagramCanvas) Dragged(ev *fyne.DragEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	if !dc.dragging {
		dc.dragging = true
		start := geometry.Point2D{
			X: pos.X - float64(ev.Dragged.DX),
			Y: pos.Y - float64(ev.Dragged.DY),
		}
		dc.wiresAtStroke = len(dc.state.Diagram.Wires())
		dc.machine.PointerDown(start)
		if dc.machine.State() == interaction.DraggingComponent {
			dc.state.Checkpoint()
		}
	}

	dc.machine.PointerMove(pos)
}

// DragEnd completes the gesture. A wire released over a compatible
// connection point becomes a cable. Fyne's DragEnd carries no position, so
// the machine's last tracked point stands in for the release point.
func (dc *DiagramCanvas) DragEnd() {
	if !dc.dragging {
		return
	}
	dc.dragging = false

	switch dc.machine.State() {
	case interaction.DraggingComponent:
		dc.machine.PointerUp(geometry.Point2D{})
		dc.state.SetModified(true)

	case interaction.DrawingWire:
		_, to, _ := dc.machine.PendingWire()
		dc.state.Checkpoint()
		dc.machine.PointerUp(dc.viewport.ToScreen(to))
		if len(dc.state.Diagram.Wires()) > dc.wiresAtStroke {
			dc.state.SetModified(true)
		} else {
			dc.state.DropCheckpoint()
		}

	default:
		dc.machine.PointerUp(geometry.Point2D{})
	}
	dc.Refresh()
}

// Tapped places a pending component, or selects whatever is under the
// cursor.
func (dc *DiagramCanvas) Tapped(ev *fyne.PointEvent) {
	screen := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	model := dc.viewport.ToModel(screen)

	if dc.placeTypeID != "" {
		pos := model
		if dc.snapEnabled {
			pos = view.SnapToGrid(pos, dc.gridSize)
		}
		if _, err := dc.state.AddComponent(dc.placeTypeID, pos); err != nil {
			dc.emitError(err)
		}
		dc.placeTypeID = ""
		dc.status("")
		return
	}

	hit := hittest.Resolve(dc.state.Diagram, model)
	switch hit.Kind {
	case hittest.HitWire:
		dc.state.Diagram.SelectWire(hit.WireID)
		dc.state.Emit(app.EventSelectionChanged, hit.WireID)
	default:
		dc.state.Diagram.SelectWire("")
		dc.state.Emit(app.EventSelectionChanged, "")
	}
	dc.Refresh()
}

// TappedSecondary deletes the entity under the cursor: a wire, or a
// component together with its cables.
func (dc *DiagramCanvas) TappedSecondary(ev *fyne.PointEvent) {
	screen := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	model := dc.viewport.ToModel(screen)

	hit := hittest.Resolve(dc.state.Diagram, model)
	switch hit.Kind {
	case hittest.HitWire:
		if err := dc.state.DeleteWire(hit.WireID); err != nil {
			dc.emitError(err)
		}
	case hittest.HitComponent, hittest.HitConnectionPoint:
		if err := dc.state.DeleteComponent(hit.ComponentID); err != nil {
			dc.emitError(err)
		}
	}
}

// MouseMoved updates the wire rubber-band while drawing without a button
// held. Implemented for desktop hover support.
func (dc *DiagramCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if dc.machine.State() == interaction.DrawingWire {
		dc.machine.PointerMove(geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
	}
}

// MouseIn implements desktop.Hoverable.
func (dc *DiagramCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (dc *DiagramCanvas) MouseOut() {}

// draw renders the current scene into the raster buffer.
func (dc *DiagramCanvas) draw(w, h int) image.Image {
	dc.viewport.Resize(float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scene := dc.state.Diagram.BuildScene()

	r := newSceneRenderer(img, dc.viewport)
	if dc.snapEnabled {
		r.drawGrid(dc.gridSize)
	}
	r.drawScene(scene)

	if from, to, ok := dc.machine.PendingWire(); ok {
		r.drawRubberBand(from, to)
	}

	return img
}

func (dc *DiagramCanvas) status(msg string) {
	if dc.onStatus != nil {
		dc.onStatus(msg)
	}
}

func (dc *DiagramCanvas) emitError(err error) {
	if dc.onError != nil {
		dc.onError(err)
	}
}

var _ fyne.Draggable = (*DiagramCanvas)(nil)
var _ fyne.Tappable = (*DiagramCanvas)(nil)
var _ fyne.SecondaryTappable = (*DiagramCanvas)(nil)
var _ desktop.Hoverable = (*DiagramCanvas)(nil)
