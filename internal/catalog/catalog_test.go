package catalog

import (
	"strings"
	"testing"

	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

func validDefinition(id string) *Definition {
	return &Definition{
		ID: id, Name: "Device " + id, Category: "misc",
		Width: 100, Height: 50,
		Connectors: []ConnectorDef{
			{ID: "in", Kind: KindData, Offset: geometry.NewPoint2D(0, 25), Side: SideLeft},
		},
	}
}

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{"valid", func(d *Definition) {}, ""},
		{"missing id", func(d *Definition) { d.ID = "" }, "no id"},
		{"zero width", func(d *Definition) { d.Width = 0 }, "size must be positive"},
		{"negative height", func(d *Definition) { d.Height = -5 }, "size must be positive"},
		{"connector without id", func(d *Definition) { d.Connectors[0].ID = "" }, "connector has no id"},
		{
			"duplicate connector id",
			func(d *Definition) { d.Connectors = append(d.Connectors, d.Connectors[0]) },
			"duplicate connector id",
		},
		{"bad kind", func(d *Definition) { d.Connectors[0].Kind = "hdmi" }, "unknown kind"},
		{"bad side", func(d *Definition) { d.Connectors[0].Side = "middle" }, "unknown side"},
		{
			"bad property type",
			func(d *Definition) { d.Properties = map[string]any{"pins": []int{1, 2}} },
			"unsupported type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition("dev")
			tt.mutate(def)
			err := def.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePropertiesNormalizesInts(t *testing.T) {
	props := map[string]any{
		"voltage": 12,
		"serial":  int64(99),
		"label":   "rev A",
		"active":  true,
		"gain":    1.5,
	}
	if err := ValidateProperties(props); err != nil {
		t.Fatalf("ValidateProperties: %v", err)
	}
	if v, ok := props["voltage"].(float64); !ok || v != 12 {
		t.Errorf("voltage = %v (%T), want float64 12", props["voltage"], props["voltage"])
	}
	if v, ok := props["serial"].(float64); !ok || v != 99 {
		t.Errorf("serial = %v (%T), want float64 99", props["serial"], props["serial"])
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	if _, err := New(validDefinition("dev"), validDefinition("dev")); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestCatalogLookups(t *testing.T) {
	a := validDefinition("a")
	a.Category = "power"
	b := validDefinition("b")
	b.Category = "network"
	c := validDefinition("c")
	c.Category = "power"

	cat, err := New(a, b, c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cat.Count() != 3 {
		t.Errorf("Count() = %d, want 3", cat.Count())
	}
	if cat.Get("b") != b {
		t.Error("Get(b) did not return the definition")
	}
	if cat.Get("z") != nil {
		t.Error("Get(z) returned a definition")
	}

	want := []string{"power", "network"}
	got := cat.Categories()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestKindAndSideHelpers(t *testing.T) {
	for _, k := range []Kind{KindPower, KindGround, KindData, KindEthernet, KindAnalog, KindCustom} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("usb").Valid() {
		t.Error("unknown kind accepted")
	}

	tests := []struct {
		in, want Side
	}{
		{SideLeft, SideRight},
		{SideRight, SideLeft},
		{SideTop, SideTop},
		{SideBottom, SideBottom},
	}
	for _, tt := range tests {
		if got := tt.in.Opposite(); got != tt.want {
			t.Errorf("%q.Opposite() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
