package diagram

import (
	"testing"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	d := New()
	psu, _ := d.AddComponent(cat, "psu", geometry.NewPoint2D(40, 60))
	board, _ := d.AddComponent(cat, "board", geometry.NewPoint2D(400, 100))
	d.MirrorComponent(board.ID)
	w, _ := d.Connect(Endpoint{psu.ID, "out"}, Endpoint{board.ID, "pwr"})

	restored := FromSnapshot(cat, d.Snapshot())

	if len(restored.Components()) != 2 {
		t.Fatalf("components = %d, want 2", len(restored.Components()))
	}
	rb := restored.Component(board.ID)
	if rb == nil {
		t.Fatal("board missing after round trip")
	}
	if rb.Position != board.Position {
		t.Errorf("position = %+v, want %+v", rb.Position, board.Position)
	}
	if !rb.Mirrored {
		t.Error("mirrored flag lost")
	}
	// Mirrored layout is reconstructed, not stored: points must match.
	for i, p := range board.Points {
		if rb.Points[i] != p {
			t.Errorf("point %q = %+v, want %+v", p.ID, rb.Points[i], p)
		}
	}

	if len(restored.Wires()) != 1 {
		t.Fatalf("wires = %d, want 1", len(restored.Wires()))
	}
	rw := restored.Wire(w.ID)
	if rw == nil {
		t.Fatalf("wire %q missing after round trip", w.ID)
	}
	if rw.Start != w.Start || rw.End != w.End || rw.Type != w.Type {
		t.Errorf("wire = %+v, want %+v", rw, w)
	}
}

func TestFromSnapshotDropsUnknownType(t *testing.T) {
	cat := testCatalog(t)
	snap := Snapshot{
		Components: []ComponentRecord{
			{ID: "comp-001", TypeID: "psu", X: 0, Y: 0},
			{ID: "comp-002", TypeID: "discontinued", X: 100, Y: 100},
		},
	}

	d := FromSnapshot(cat, snap)

	if len(d.Components()) != 1 {
		t.Fatalf("components = %d, want 1", len(d.Components()))
	}
	if d.Component("comp-002") != nil {
		t.Error("unknown-type component survived the load")
	}
}

func TestFromSnapshotDropsDanglingCable(t *testing.T) {
	cat := testCatalog(t)
	snap := Snapshot{
		Components: []ComponentRecord{
			{ID: "comp-001", TypeID: "psu", X: 0, Y: 0},
			{ID: "comp-002", TypeID: "board", X: 400, Y: 0},
		},
		Cables: []CableRecord{
			{
				ID:               "cable-001",
				StartComponentID: "comp-001", StartConnectorID: "out",
				EndComponentID: "comp-999", EndConnectorID: "pwr",
			},
			{
				ID:               "cable-002",
				StartComponentID: "comp-001", StartConnectorID: "out",
				EndComponentID: "comp-002", EndConnectorID: "pwr",
			},
		},
	}

	d := FromSnapshot(cat, snap)

	if len(d.Wires()) != 1 {
		t.Fatalf("wires = %d, want 1", len(d.Wires()))
	}
	if d.Wire("cable-001") != nil {
		t.Error("dangling cable survived the load")
	}
	if d.Wire("cable-002") == nil {
		t.Error("valid cable dropped")
	}
}

func TestFromSnapshotAvoidsIDCollisions(t *testing.T) {
	cat := testCatalog(t)
	snap := Snapshot{
		Components: []ComponentRecord{
			{ID: "comp-007", TypeID: "psu", X: 0, Y: 0},
		},
	}

	d := FromSnapshot(cat, snap)

	inst, err := d.AddComponent(cat, "board", geometry.NewPoint2D(100, 100))
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if inst.ID != "comp-008" {
		t.Errorf("new id = %q, want comp-008", inst.ID)
	}
}

func TestCableTypeFor(t *testing.T) {
	tests := []struct {
		name string
		a, b catalog.Kind
		want CableType
		ok   bool
	}{
		{"power pair", catalog.KindPower, catalog.KindPower, CablePower, true},
		{"ground pair", catalog.KindGround, catalog.KindGround, CableGround, true},
		{"data pair", catalog.KindData, catalog.KindData, CableData, true},
		{"ethernet pair", catalog.KindEthernet, catalog.KindEthernet, CableEthernet, true},
		{"analog pair", catalog.KindAnalog, catalog.KindAnalog, CableAnalog, true},
		{"custom matches anything", catalog.KindCustom, catalog.KindPower, CableGeneric, true},
		{"anything matches custom", catalog.KindData, catalog.KindCustom, CableGeneric, true},
		{"custom pair", catalog.KindCustom, catalog.KindCustom, CableGeneric, true},
		{"mismatch rejected", catalog.KindPower, catalog.KindData, "", false},
		{"unknown kind rejected", catalog.Kind("hdmi"), catalog.Kind("hdmi"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CableTypeFor(tt.a, tt.b)
			if got != tt.want || ok != tt.ok {
				t.Errorf("CableTypeFor(%q, %q) = %q, %v; want %q, %v",
					tt.a, tt.b, got, ok, tt.want, tt.ok)
			}
		})
	}
}
