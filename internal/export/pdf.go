package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
)

// WritePDF renders the scene onto a landscape A4 page: the diagram drawing
// on top, a cable table underneath. Cables are drawn with the PDF's native
// cubic Bézier primitive so the curves match the other exports.
func WritePDF(scene diagram.Scene, w io.Writer, title string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 12)
	}

	// Drawing area: upper two thirds of the page.
	drawTop := pdf.GetY() + 2
	drawH := pageH*0.62 - drawTop
	f := fitScene(scene.Bounds(), int(pageW), int(drawTop+drawH), 10, drawTop)

	pdf.SetLineWidth(0.4)
	for _, wire := range scene.Wires {
		c := cableColor(wire.Type)
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		for _, seg := range wire.Path.Segments {
			p0 := f.apply(seg.P0)
			c1 := f.apply(seg.C1)
			c2 := f.apply(seg.C2)
			p3 := f.apply(seg.P3)
			pdf.MoveTo(p0.X, p0.Y)
			pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y)
			pdf.DrawPath("D")
		}
	}

	pdf.SetDrawColor(51, 51, 51)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetFont("Arial", "", 8)
	for _, comp := range scene.Components {
		tl := f.apply(comp.Bounds.TopLeft())
		pdf.Rect(tl.X, tl.Y, comp.Bounds.Width*f.scale, comp.Bounds.Height*f.scale, "FD")

		center := f.apply(comp.Bounds.Center())
		pdf.SetXY(tl.X, center.Y-2)
		pdf.CellFormat(comp.Bounds.Width*f.scale, 4, comp.Name, "", 0, "C", false, 0, "")

		for _, pt := range comp.Points {
			pos := f.apply(pt.Position)
			pdf.Circle(pos.X, pos.Y, 1.2, "D")
		}
	}

	// Cable table on the lower third.
	pdf.SetXY(10, pageH*0.65)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Cable", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "From", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "To", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range cableRows(scene) {
		pdf.CellFormat(35, 6, row.id, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, row.cableType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, row.from, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, row.to, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
