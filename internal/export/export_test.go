package export

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// testScene builds a two-component scene with one power cable.
func testScene(t *testing.T) diagram.Scene {
	t.Helper()
	cat, err := catalog.New(
		&catalog.Definition{
			ID: "psu", Name: "Power Supply", Width: 120, Height: 60,
			Connectors: []catalog.ConnectorDef{
				{ID: "out", Kind: catalog.KindPower, Offset: geometry.NewPoint2D(120, 30), Side: catalog.SideRight, Label: "12V"},
			},
		},
		&catalog.Definition{
			ID: "board", Name: "Board", Width: 200, Height: 120,
			Connectors: []catalog.ConnectorDef{
				{ID: "pwr", Kind: catalog.KindPower, Offset: geometry.NewPoint2D(0, 30), Side: catalog.SideLeft, Label: "VIN"},
			},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	d := diagram.New()
	psu, _ := d.AddComponent(cat, "psu", geometry.NewPoint2D(100, 100))
	board, _ := d.AddComponent(cat, "board", geometry.NewPoint2D(500, 100))
	if _, err := d.Connect(
		diagram.Endpoint{ComponentID: psu.ID, ConnectorID: "out"},
		diagram.Endpoint{ComponentID: board.ID, ConnectorID: "pwr"},
	); err != nil {
		t.Fatal(err)
	}
	return d.BuildScene()
}

func TestFitScene(t *testing.T) {
	bounds := geometry.NewRect(100, 100, 600, 120)
	f := fitScene(bounds, 1200, 800, 40, 0)

	// Scale is capped even when the page has room to spare.
	if f.scale > 1.5 {
		t.Errorf("scale = %g, want <= 1.5", f.scale)
	}

	// Corners map inside the padded area.
	for _, p := range []geometry.Point2D{bounds.TopLeft(), bounds.BottomRight()} {
		m := f.apply(p)
		if m.X < 40-1e-9 || m.X > 1160+1e-9 || m.Y < 40-1e-9 || m.Y > 760+1e-9 {
			t.Errorf("corner %+v mapped to %+v, outside padded page", p, m)
		}
	}

	// A wide scene is limited by width.
	wide := fitScene(geometry.NewRect(0, 0, 10000, 100), 1200, 800, 40, 0)
	if want := 1120.0 / 10000.0; math.Abs(wide.scale-want) > 1e-9 {
		t.Errorf("wide scale = %g, want %g", wide.scale, want)
	}
}

func TestCableColorFallsBack(t *testing.T) {
	if cableColor(diagram.CablePower) == cableColor(diagram.CableData) {
		t.Error("distinct cable types share a color")
	}
	if cableColor(diagram.CableType("exotic")) != cableColor(diagram.CableGeneric) {
		t.Error("unknown type did not fall back to generic")
	}
}

func TestCableRows(t *testing.T) {
	scene := testScene(t)
	rows := cableRows(scene)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.id != "cable-001" || r.cableType != string(diagram.CablePower) {
		t.Errorf("row = %+v", r)
	}
	if r.from != "Power Supply / 12V" || r.to != "Board / VIN" {
		t.Errorf("endpoints = %q -> %q", r.from, r.to)
	}
}

func TestWritePNG(t *testing.T) {
	scene := testScene(t)
	opts := DefaultOptions()
	opts.Title = "Bench Rig"

	var buf bytes.Buffer
	if err := WritePNG(scene, &buf, opts); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != opts.Width || b.Dy() != opts.Height {
		t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), opts.Width, opts.Height)
	}
}

func TestWriteSVG(t *testing.T) {
	scene := testScene(t)

	var buf bytes.Buffer
	if err := WriteSVG(scene, &buf, DefaultOptions()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<svg", "</svg>", "<rect", "<path", "Power Supply", "Board"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWritePDF(t *testing.T) {
	scene := testScene(t)

	var buf bytes.Buffer
	if err := WritePDF(scene, &buf, "Bench Rig"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestWriteXLSX(t *testing.T) {
	scene := testScene(t)

	var buf bytes.Buffer
	if err := WriteXLSX(scene, &buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output is not a zip container")
	}
}
