package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
)

// WriteSVG renders the scene as a standalone SVG document. Cables are
// emitted as cubic Bézier path elements so the exported geometry matches
// the on-screen curves exactly.
func WriteSVG(scene diagram.Scene, w io.Writer, opts Options) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .component { fill: #f5f5f5; stroke: #333; stroke-width: 2; }
  .component-label { font-family: sans-serif; font-size: 12px; fill: #333; text-anchor: middle; dominant-baseline: middle; }
  .point { fill: white; stroke-width: 1.5; }
  .cable { fill: none; stroke-width: 1.5; }
  .cable-selected { fill: none; stroke: #1565c0; stroke-width: 3; }
  .title { font-family: sans-serif; font-size: 16px; font-weight: bold; text-anchor: middle; }
</style>
<rect width="%d" height="%d" fill="white"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Width, opts.Height))

	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 30
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="22" class="title">%s</text>
`, opts.Width/2, html.EscapeString(opts.Title)))
	}

	f := fitScene(scene.Bounds(), opts.Width, opts.Height, opts.Padding, titleSpace)

	// Cables under components.
	for _, wire := range scene.Wires {
		class := "cable"
		style := fmt.Sprintf(` stroke="%s"`, hexColor(cableColor(wire.Type)))
		if wire.Selected {
			class = "cable-selected"
			style = ""
		}
		for _, seg := range wire.Path.Segments {
			p0 := f.apply(seg.P0)
			c1 := f.apply(seg.C1)
			c2 := f.apply(seg.C2)
			p3 := f.apply(seg.P3)
			sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f" class="%s"%s/>
`, p0.X, p0.Y, c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y, class, style))
		}
	}

	for _, comp := range scene.Components {
		tl := f.apply(comp.Bounds.TopLeft())
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="component"/>
`, tl.X, tl.Y, comp.Bounds.Width*f.scale, comp.Bounds.Height*f.scale))

		center := f.apply(comp.Bounds.Center())
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="component-label">%s</text>
`, center.X, center.Y, html.EscapeString(comp.Name)))

		for _, pt := range comp.Points {
			pos := f.apply(pt.Position)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" class="point" stroke="%s"/>
`, pos.X, pos.Y, hexColor(cableKindColor(pt))))
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func hexColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
