package topology

import (
	"reflect"
	"testing"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// hub has enough data ports to fan out to several nodes.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		&catalog.Definition{
			ID: "hub", Name: "Hub", Width: 200, Height: 120,
			Connectors: []catalog.ConnectorDef{
				{ID: "p1", Kind: catalog.KindData, Offset: geometry.NewPoint2D(200, 20), Side: catalog.SideRight},
				{ID: "p2", Kind: catalog.KindData, Offset: geometry.NewPoint2D(200, 60), Side: catalog.SideRight},
				{ID: "p3", Kind: catalog.KindData, Offset: geometry.NewPoint2D(200, 100), Side: catalog.SideRight},
			},
		},
		&catalog.Definition{
			ID: "node", Name: "Node", Width: 80, Height: 40,
			Connectors: []catalog.ConnectorDef{
				{ID: "in", Kind: catalog.KindData, Offset: geometry.NewPoint2D(0, 20), Side: catalog.SideLeft},
				{ID: "out", Kind: catalog.KindData, Offset: geometry.NewPoint2D(80, 20), Side: catalog.SideRight},
			},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func connect(t *testing.T, d *diagram.Diagram, aID, aConn, bID, bConn string) {
	t.Helper()
	if _, err := d.Connect(
		diagram.Endpoint{ComponentID: aID, ConnectorID: aConn},
		diagram.Endpoint{ComponentID: bID, ConnectorID: bConn},
	); err != nil {
		t.Fatalf("connect %s/%s to %s/%s: %v", aID, aConn, bID, bConn, err)
	}
}

func TestGroupsEmptyDiagram(t *testing.T) {
	if got := Groups(diagram.New()); got != nil {
		t.Errorf("Groups(empty) = %v, want nil", got)
	}
}

func TestGroupsSingletons(t *testing.T) {
	cat := testCatalog(t)
	d := diagram.New()
	a, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(0, 0))
	b, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(200, 0))

	got := Groups(d)
	want := [][]string{{a.ID}, {b.ID}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestGroupsPartition(t *testing.T) {
	cat := testCatalog(t)
	d := diagram.New()
	hub, _ := d.AddComponent(cat, "hub", geometry.NewPoint2D(0, 0))
	n1, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 0))
	n2, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 100))
	n3, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 200))
	lone, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 300))

	// hub-n1 and n2-n3 form two chains; lone stays isolated.
	connect(t, d, hub.ID, "p1", n1.ID, "in")
	connect(t, d, n2.ID, "out", n3.ID, "in")

	got := Groups(d)
	want := [][]string{
		{hub.ID, n1.ID},
		{n2.ID, n3.ID},
		{lone.ID},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestGroupsMergeThroughChain(t *testing.T) {
	cat := testCatalog(t)
	d := diagram.New()
	hub, _ := d.AddComponent(cat, "hub", geometry.NewPoint2D(0, 0))
	n1, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 0))
	n2, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(700, 0))

	connect(t, d, hub.ID, "p1", n1.ID, "in")
	connect(t, d, n1.ID, "out", n2.ID, "in")

	got := Groups(d)
	want := [][]string{{hub.ID, n1.ID, n2.ID}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestGroupsFollowDeletion(t *testing.T) {
	cat := testCatalog(t)
	d := diagram.New()
	hub, _ := d.AddComponent(cat, "hub", geometry.NewPoint2D(0, 0))
	n1, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 0))
	n2, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(700, 0))

	connect(t, d, hub.ID, "p1", n1.ID, "in")
	connect(t, d, n1.ID, "out", n2.ID, "in")

	// Removing the middle node cascades both cables and splits the group.
	if err := d.DeleteComponent(n1.ID); err != nil {
		t.Fatalf("DeleteComponent: %v", err)
	}

	got := Groups(d)
	want := [][]string{{hub.ID}, {n2.ID}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestConnectedTo(t *testing.T) {
	cat := testCatalog(t)
	d := diagram.New()
	hub, _ := d.AddComponent(cat, "hub", geometry.NewPoint2D(0, 0))
	n1, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 0))
	n2, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(700, 0))
	lone, _ := d.AddComponent(cat, "node", geometry.NewPoint2D(400, 300))

	connect(t, d, hub.ID, "p1", n1.ID, "in")
	connect(t, d, n1.ID, "out", n2.ID, "in")

	got := ConnectedTo(d, n1.ID)
	want := []string{hub.ID, n2.ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectedTo(%s) = %v, want %v", n1.ID, got, want)
	}

	if got := ConnectedTo(d, lone.ID); len(got) != 0 {
		t.Errorf("ConnectedTo(isolated) = %v, want empty", got)
	}
	if got := ConnectedTo(d, "comp-999"); got != nil {
		t.Errorf("ConnectedTo(unknown) = %v, want nil", got)
	}
}
