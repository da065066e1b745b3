// Package export renders a diagram scene to interchange formats: PNG and
// SVG images, PDF pages, and an XLSX cable schedule.
package export

import (
	"image/color"
	"math"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// Options configures image and page exports.
type Options struct {
	Width   int
	Height  int
	Padding int
	Title   string
}

// DefaultOptions returns sensible defaults for exports.
func DefaultOptions() Options {
	return Options{
		Width:   1200,
		Height:  800,
		Padding: 40,
	}
}

// fit maps scene coordinates onto a page: scale to fill the available area
// while preserving aspect ratio, then center.
type fit struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func fitScene(bounds geometry.Rect, width, height, padding int, titleSpace float64) fit {
	contentW := bounds.Width
	contentH := bounds.Height
	if contentW < 1 {
		contentW = 1
	}
	if contentH < 1 {
		contentH = 1
	}

	availW := float64(width - 2*padding)
	availH := float64(height-2*padding) - titleSpace

	scale := math.Min(availW/contentW, availH/contentH)
	if scale > 1.5 {
		scale = 1.5
	}

	return fit{
		scale:   scale,
		offsetX: float64(padding) + (availW-contentW*scale)/2 - bounds.X*scale,
		offsetY: float64(padding) + titleSpace + (availH-contentH*scale)/2 - bounds.Y*scale,
	}
}

func (f fit) apply(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*f.scale + f.offsetX,
		Y: p.Y*f.scale + f.offsetY,
	}
}

// Cable colors, shared by the PNG and SVG renderers.
var cableColors = map[diagram.CableType]color.RGBA{
	diagram.CablePower:    {198, 40, 40, 255},   // #c62828
	diagram.CableGround:   {66, 66, 66, 255},    // #424242
	diagram.CableData:     {21, 101, 192, 255},  // #1565c0
	diagram.CableEthernet: {46, 125, 50, 255},   // #2e7d32
	diagram.CableAnalog:   {230, 81, 0, 255},    // #e65100
	diagram.CableGeneric:  {102, 102, 102, 255}, // #666
}

func cableColor(t diagram.CableType) color.RGBA {
	if c, ok := cableColors[t]; ok {
		return c
	}
	return cableColors[diagram.CableGeneric]
}
