package interaction

import (
	"errors"
	"math"
	"testing"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/view"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// fixture wires a machine over a viewport at zoom 1 with no pan, so screen
// and model coordinates coincide and test positions stay readable.
type fixture struct {
	d       *diagram.Diagram
	v       *view.Viewport
	m       *Machine
	changes int
	errs    []error
}

func newFixture(t *testing.T, grid float64) *fixture {
	t.Helper()
	cat, err := catalog.New(
		&catalog.Definition{
			ID: "psu", Name: "Power Supply", Width: 120, Height: 60,
			Connectors: []catalog.ConnectorDef{
				{ID: "out", Kind: catalog.KindPower, Offset: geometry.NewPoint2D(120, 30), Side: catalog.SideRight},
			},
		},
		&catalog.Definition{
			ID: "board", Name: "Board", Width: 200, Height: 120,
			Connectors: []catalog.ConnectorDef{
				{ID: "pwr", Kind: catalog.KindPower, Offset: geometry.NewPoint2D(0, 30), Side: catalog.SideLeft},
				{ID: "d0", Kind: catalog.KindData, Offset: geometry.NewPoint2D(200, 60), Side: catalog.SideRight},
			},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	f := &fixture{
		d: diagram.New(),
		v: view.New(800, 600),
	}
	f.m = New(f.d, f.v, grid,
		func() { f.changes++ },
		func(err error) { f.errs = append(f.errs, err) },
	)

	// Standard scene: psu on the left, board on the right.
	if _, err := f.d.AddComponent(cat, "psu", geometry.NewPoint2D(100, 100)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.d.AddComponent(cat, "board", geometry.NewPoint2D(500, 100)); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestDragComponent(t *testing.T) {
	f := newFixture(t, 0)

	// Grab the psu body 10,20 inside its corner and drag it.
	f.m.PointerDown(geometry.NewPoint2D(110, 120))
	if f.m.State() != DraggingComponent {
		t.Fatalf("state = %v, want dragging", f.m.State())
	}

	f.m.PointerMove(geometry.NewPoint2D(310, 420))
	psu := f.d.Component("comp-001")
	if want := geometry.NewPoint2D(300, 400); psu.Position != want {
		t.Errorf("position = %+v, want %+v", psu.Position, want)
	}
	if f.changes == 0 {
		t.Error("drag produced no change notification")
	}

	f.m.PointerUp(geometry.NewPoint2D(310, 420))
	if f.m.State() != Idle {
		t.Errorf("state after release = %v, want idle", f.m.State())
	}
}

func TestDragSnapsToGrid(t *testing.T) {
	f := newFixture(t, 20)

	f.m.PointerDown(geometry.NewPoint2D(110, 120))
	f.m.PointerMove(geometry.NewPoint2D(317, 243))

	// Pointer minus grab offset is (307,223), which snaps to (300,220).
	psu := f.d.Component("comp-001")
	if want := geometry.NewPoint2D(300, 220); psu.Position != want {
		t.Errorf("position = %+v, want %+v", psu.Position, want)
	}
}

func TestDrawWireConnects(t *testing.T) {
	f := newFixture(t, 0)

	// Press on the psu "out" point at (220,130).
	f.m.PointerDown(geometry.NewPoint2D(220, 130))
	if f.m.State() != DrawingWire {
		t.Fatalf("state = %v, want drawing wire", f.m.State())
	}

	f.m.PointerMove(geometry.NewPoint2D(400, 130))
	from, to, ok := f.m.PendingWire()
	if !ok {
		t.Fatal("no pending wire during draw")
	}
	if from != geometry.NewPoint2D(220, 130) || to != geometry.NewPoint2D(400, 130) {
		t.Errorf("rubber band = %+v -> %+v", from, to)
	}

	// Release on the board "pwr" point at (500,130).
	f.m.PointerUp(geometry.NewPoint2D(500, 130))

	if len(f.d.Wires()) != 1 {
		t.Fatalf("wires = %d, want 1", len(f.d.Wires()))
	}
	w := f.d.Wires()[0]
	if w.Start.ComponentID != "comp-001" || w.End.ComponentID != "comp-002" {
		t.Errorf("wire = %+v", w)
	}
	if len(f.errs) != 0 {
		t.Errorf("errors = %v", f.errs)
	}
	if f.m.State() != Idle {
		t.Errorf("state = %v, want idle", f.m.State())
	}
}

func TestDrawWireReleasedOnNothing(t *testing.T) {
	f := newFixture(t, 0)

	f.m.PointerDown(geometry.NewPoint2D(220, 130))
	f.m.PointerUp(geometry.NewPoint2D(400, 400))

	if len(f.d.Wires()) != 0 {
		t.Errorf("wires = %d, want 0", len(f.d.Wires()))
	}
	if len(f.errs) != 0 {
		t.Errorf("discarding a wire is not an error, got %v", f.errs)
	}
	if _, _, ok := f.m.PendingWire(); ok {
		t.Error("pending wire survived release")
	}
}

func TestDrawWireIncompatibleReportsError(t *testing.T) {
	f := newFixture(t, 0)

	// psu "out" is power; the board "d0" point at (700,160) is data.
	f.m.PointerDown(geometry.NewPoint2D(220, 130))
	f.m.PointerUp(geometry.NewPoint2D(700, 160))

	if len(f.d.Wires()) != 0 {
		t.Errorf("wires = %d, want 0", len(f.d.Wires()))
	}
	if len(f.errs) != 1 || !errors.Is(f.errs[0], diagram.ErrIncompatibleConnectors) {
		t.Errorf("errors = %v, want ErrIncompatibleConnectors", f.errs)
	}
	if f.m.State() != Idle {
		t.Errorf("state = %v, want idle", f.m.State())
	}
}

func TestWireSelectionToggle(t *testing.T) {
	f := newFixture(t, 0)
	w, err := f.d.Connect(
		diagram.Endpoint{ComponentID: "comp-001", ConnectorID: "out"},
		diagram.Endpoint{ComponentID: "comp-002", ConnectorID: "pwr"},
	)
	if err != nil {
		t.Fatal(err)
	}

	// The cable runs level at y=130; click its midpoint.
	f.m.PointerDown(geometry.NewPoint2D(360, 130))
	if !w.Selected {
		t.Error("wire not selected by click")
	}
	f.m.PointerUp(geometry.NewPoint2D(360, 130))

	// Clicking empty space clears the selection and starts a pan.
	f.m.PointerDown(geometry.NewPoint2D(400, 500))
	if w.Selected {
		t.Error("selection survived empty-space click")
	}
	if f.m.State() != Panning {
		t.Errorf("state = %v, want panning", f.m.State())
	}
}

func TestPanOnEmptySpace(t *testing.T) {
	f := newFixture(t, 0)

	f.m.PointerDown(geometry.NewPoint2D(400, 500))
	f.m.PointerMove(geometry.NewPoint2D(430, 520))
	f.m.PointerMove(geometry.NewPoint2D(440, 510))

	if want := geometry.NewPoint2D(40, 10); f.v.Pan() != want {
		t.Errorf("pan = %+v, want %+v", f.v.Pan(), want)
	}

	f.m.PointerUp(geometry.NewPoint2D(440, 510))
	if f.m.State() != Idle {
		t.Errorf("state = %v, want idle", f.m.State())
	}
}

func TestPinchZoom(t *testing.T) {
	f := newFixture(t, 0)

	f.m.PointerDown(geometry.NewPoint2D(400, 500))
	f.m.SecondPointerDown(geometry.NewPoint2D(300, 300), geometry.NewPoint2D(500, 300))
	if f.m.State() != Pinching {
		t.Fatalf("state = %v, want pinching", f.m.State())
	}

	// Midpoint of (300,300) and (600,300): the pinch anchors here.
	mid := geometry.NewPoint2D(450, 300)
	anchorBefore := f.v.ToModel(mid)

	// Spread from 200 to 300 pixels: zoom scales by 1.5.
	f.m.SecondPointerMove(geometry.NewPoint2D(600, 300))

	if math.Abs(f.v.Zoom()-1.5) > 1e-9 {
		t.Errorf("zoom = %g, want 1.5", f.v.Zoom())
	}
	anchorAfter := f.v.ToModel(mid)
	if math.Abs(anchorAfter.X-anchorBefore.X) > 1e-9 || math.Abs(anchorAfter.Y-anchorBefore.Y) > 1e-9 {
		t.Errorf("anchor drifted: %+v -> %+v", anchorBefore, anchorAfter)
	}

	f.m.SecondPointerUp()
	if f.m.State() != Panning {
		t.Errorf("state after lift = %v, want panning", f.m.State())
	}
}

func TestSetDiagramAbandonsGesture(t *testing.T) {
	f := newFixture(t, 0)

	f.m.PointerDown(geometry.NewPoint2D(110, 120))
	if f.m.State() != DraggingComponent {
		t.Fatal("expected a drag in progress")
	}

	f.m.SetDiagram(diagram.New())
	if f.m.State() != Idle {
		t.Errorf("state = %v, want idle after diagram swap", f.m.State())
	}

	// Moves after the swap must not touch the new diagram.
	f.m.PointerMove(geometry.NewPoint2D(300, 300))
}
