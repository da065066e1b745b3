// Scene rendering for the diagram canvas raster.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/hittest"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/view"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

var (
	colorBackground = color.RGBA{250, 250, 250, 255}
	colorGrid       = color.RGBA{230, 230, 230, 255}
	colorBody       = color.RGBA{245, 245, 245, 255}
	colorBorder     = color.RGBA{51, 51, 51, 255}
	colorLabel      = color.RGBA{51, 51, 51, 255}
	colorSelected   = color.RGBA{21, 101, 192, 255}
	colorRubber     = color.RGBA{120, 120, 120, 255}

	cableColors = map[diagram.CableType]color.RGBA{
		diagram.CablePower:    {198, 40, 40, 255},
		diagram.CableGround:   {66, 66, 66, 255},
		diagram.CableData:     {21, 101, 192, 255},
		diagram.CableEthernet: {46, 125, 50, 255},
		diagram.CableAnalog:   {230, 81, 0, 255},
		diagram.CableGeneric:  {102, 102, 102, 255},
	}
)

// labelFace is the shared face for component labels. Parsing the embedded
// font cannot fail, so initialization panics instead of returning an error.
var labelFace font.Face

func init() {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	labelFace, err = opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
}

// sceneRenderer draws one frame: model coordinates in, pixels out.
type sceneRenderer struct {
	img *image.RGBA
	vp  *view.Viewport
}

func newSceneRenderer(img *image.RGBA, vp *view.Viewport) *sceneRenderer {
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	return &sceneRenderer{img: img, vp: vp}
}

// drawGrid draws the snap grid at the current zoom. The grid fades out
// below quarter zoom where the lines would merge.
func (r *sceneRenderer) drawGrid(grid float64) {
	zoom := r.vp.Zoom()
	if grid <= 0 || zoom < 0.25 {
		return
	}
	size := r.vp.Size()
	step := grid * zoom

	origin := r.vp.ToScreen(geometry.Point2D{})
	startX := math.Mod(origin.X, step)
	startY := math.Mod(origin.Y, step)

	for x := startX; x < size.Width; x += step {
		r.vline(int(x), 0, int(size.Height), colorGrid)
	}
	for y := startY; y < size.Height; y += step {
		r.hline(0, int(size.Width), int(y), colorGrid)
	}
}

// drawScene renders wires under components, matching the z-order used by
// hit testing.
func (r *sceneRenderer) drawScene(scene diagram.Scene) {
	for _, w := range scene.Wires {
		c := cableColors[diagram.CableGeneric]
		if cc, ok := cableColors[w.Type]; ok {
			c = cc
		}
		width := 1.5
		if w.Selected {
			c = colorSelected
			width = 3
		}
		for _, seg := range w.Path.Segments {
			r.bezier(seg.P0, seg.C1, seg.C2, seg.P3, c, width)
		}
	}

	for _, comp := range scene.Components {
		tl := r.vp.ToScreen(comp.Bounds.TopLeft())
		br := r.vp.ToScreen(comp.Bounds.BottomRight())
		r.fillRect(tl, br, colorBody)
		r.strokeRect(tl, br, colorBorder)

		center := r.vp.ToScreen(comp.Bounds.Center())
		r.text(center, comp.Name, colorLabel)

		for _, pt := range comp.Points {
			pos := r.vp.ToScreen(pt.Position)
			radius := math.Max(3, 4*r.vp.Zoom())
			c := cableColors[diagram.CableGeneric]
			if t, ok := diagram.CableTypeFor(pt.Kind, pt.Kind); ok {
				c = cableColors[t]
			}
			r.fillCircle(pos, radius, color.RGBA{255, 255, 255, 255})
			r.strokeCircle(pos, radius, c)
		}
	}
}

// drawRubberBand draws the in-progress wire from its anchor point to the
// pointer, plus a hint ring of the snap radius around the anchor.
func (r *sceneRenderer) drawRubberBand(from, to geometry.Point2D) {
	a := r.vp.ToScreen(from)
	b := r.vp.ToScreen(to)
	r.dashedLine(a, b, colorRubber)
	r.strokeCircle(b, hittest.PointRadius*r.vp.Zoom(), colorRubber)
}

func (r *sceneRenderer) set(x, y int, c color.Color) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.Set(x, y, c)
	}
}

func (r *sceneRenderer) hline(x1, x2, y int, c color.Color) {
	for x := x1; x <= x2; x++ {
		r.set(x, y, c)
	}
}

func (r *sceneRenderer) vline(x, y1, y2 int, c color.Color) {
	for y := y1; y <= y2; y++ {
		r.set(x, y, c)
	}
}

func (r *sceneRenderer) line(p1, p2 geometry.Point2D, c color.Color, width float64) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		r.set(int(p1.X), int(p1.Y), c)
		return
	}

	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX := -dy / dist
	perpY := dx / dist
	half := width / 2

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		x := p1.X + dx*t
		y := p1.Y + dy*t
		for o := -half; o <= half; o += 0.5 {
			r.set(int(x+perpX*o), int(y+perpY*o), c)
		}
	}
}

func (r *sceneRenderer) dashedLine(p1, p2 geometry.Point2D, c color.Color) {
	const dash = 6.0
	dist := p1.Distance(p2)
	if dist < 1 {
		return
	}
	steps := int(dist / dash)
	for i := 0; i < steps; i += 2 {
		t1 := float64(i) * dash / dist
		t2 := math.Min(float64(i+1)*dash/dist, 1)
		a := geometry.Point2D{X: p1.X + (p2.X-p1.X)*t1, Y: p1.Y + (p2.Y-p1.Y)*t1}
		b := geometry.Point2D{X: p1.X + (p2.X-p1.X)*t2, Y: p1.Y + (p2.Y-p1.Y)*t2}
		r.line(a, b, c, 1)
	}
}

// bezier flattens a model-space cubic into screen-space line segments.
func (r *sceneRenderer) bezier(p0, c1, c2, p3 geometry.Point2D, c color.Color, width float64) {
	const steps = 40
	prev := r.vp.ToScreen(p0)
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		mt := 1 - t
		pt := geometry.Point2D{
			X: mt*mt*mt*p0.X + 3*mt*mt*t*c1.X + 3*mt*t*t*c2.X + t*t*t*p3.X,
			Y: mt*mt*mt*p0.Y + 3*mt*mt*t*c1.Y + 3*mt*t*t*c2.Y + t*t*t*p3.Y,
		}
		cur := r.vp.ToScreen(pt)
		r.line(prev, cur, c, width)
		prev = cur
	}
}

func (r *sceneRenderer) fillRect(tl, br geometry.Point2D, c color.Color) {
	rect := image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y)).Intersect(r.img.Bounds())
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *sceneRenderer) strokeRect(tl, br geometry.Point2D, c color.Color) {
	r.hline(int(tl.X), int(br.X), int(tl.Y), c)
	r.hline(int(tl.X), int(br.X), int(br.Y), c)
	r.vline(int(tl.X), int(tl.Y), int(br.Y), c)
	r.vline(int(br.X), int(tl.Y), int(br.Y), c)
}

func (r *sceneRenderer) fillCircle(center geometry.Point2D, radius float64, c color.Color) {
	for dy := -radius; dy <= radius; dy++ {
		extent := math.Sqrt(math.Max(radius*radius-dy*dy, 0))
		for dx := -extent; dx <= extent; dx++ {
			r.set(int(center.X+dx), int(center.Y+dy), c)
		}
	}
}

func (r *sceneRenderer) strokeCircle(center geometry.Point2D, radius float64, c color.Color) {
	for angle := 0.0; angle < 2*math.Pi; angle += 0.02 {
		r.set(int(center.X+radius*math.Cos(angle)), int(center.Y+radius*math.Sin(angle)), c)
	}
}

func (r *sceneRenderer) text(center geometry.Point2D, s string, c color.Color) {
	if s == "" {
		return
	}
	width := font.MeasureString(labelFace, s).Ceil()
	ascent := labelFace.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot: fixed.Point26_6{
			X: fixed.I(int(center.X) - width/2),
			Y: fixed.I(int(center.Y) + ascent/3),
		},
	}
	d.DrawString(s)
}
