package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
)

type cableRow struct {
	id        string
	cableType string
	from      string
	to        string
}

func cableRows(scene diagram.Scene) []cableRow {
	rows := make([]cableRow, 0, len(scene.Wires))
	for _, w := range scene.Wires {
		rows = append(rows, cableRow{
			id:        w.ID,
			cableType: string(w.Type),
			from:      w.FromLabel,
			to:        w.ToLabel,
		})
	}
	return rows
}

// WriteXLSX renders the setup as a workbook: a Components sheet with
// placements and a Cables sheet listing every connection.
func WriteXLSX(scene diagram.Scene, w io.Writer) error {
	f := excelize.NewFile()
	componentsSheet := "Components"
	cablesSheet := "Cables"
	f.SetSheetName("Sheet1", componentsSheet)
	f.NewSheet(cablesSheet)

	_ = f.SetCellValue(componentsSheet, "A1", "ID")
	_ = f.SetCellValue(componentsSheet, "B1", "Type")
	_ = f.SetCellValue(componentsSheet, "C1", "Name")
	_ = f.SetCellValue(componentsSheet, "D1", "X")
	_ = f.SetCellValue(componentsSheet, "E1", "Y")
	_ = f.SetCellValue(componentsSheet, "F1", "Mirrored")
	_ = f.SetCellValue(componentsSheet, "G1", "Connection Points")
	for i, c := range scene.Components {
		row := i + 2
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("A%d", row), c.ID)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("B%d", row), c.TypeID)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("C%d", row), c.Name)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("D%d", row), c.Bounds.X)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("E%d", row), c.Bounds.Y)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("F%d", row), c.Mirrored)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("G%d", row), len(c.Points))
	}

	_ = f.SetCellValue(cablesSheet, "A1", "ID")
	_ = f.SetCellValue(cablesSheet, "B1", "Type")
	_ = f.SetCellValue(cablesSheet, "C1", "From")
	_ = f.SetCellValue(cablesSheet, "D1", "To")
	for i, row := range cableRows(scene) {
		r := i + 2
		_ = f.SetCellValue(cablesSheet, fmt.Sprintf("A%d", r), row.id)
		_ = f.SetCellValue(cablesSheet, fmt.Sprintf("B%d", r), row.cableType)
		_ = f.SetCellValue(cablesSheet, fmt.Sprintf("C%d", r), row.from)
		_ = f.SetCellValue(cablesSheet, fmt.Sprintf("D%d", r), row.to)
	}

	return f.Write(w)
}
