package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

var (
	pngWhite     = color.RGBA{255, 255, 255, 255}
	pngBlack     = color.RGBA{51, 51, 51, 255}    // #333
	pngGray      = color.RGBA{102, 102, 102, 255} // #666
	pngBodyFill  = color.RGBA{245, 245, 245, 255} // #f5f5f5
	pngSelected  = color.RGBA{21, 101, 192, 255}  // #1565c0
	pngPointFill = color.RGBA{255, 255, 255, 255}
)

// pngContext carries the target image plus the supersampling scale so line
// widths and font sizes survive the downsample.
type pngContext struct {
	img   *image.RGBA
	scale float64
	face  font.Face
}

func newPNGContext(img *image.RGBA, scale int) (*pngContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(12 * scale),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &pngContext{img: img, scale: float64(scale), face: face}, nil
}

// WritePNG renders the scene to PNG. Rendering happens at 4x and is
// downsampled with Catmull-Rom interpolation for smooth curves.
func WritePNG(scene diagram.Scene, w io.Writer, opts Options) error {
	const scale = 4
	large := image.NewRGBA(image.Rect(0, 0, opts.Width*scale, opts.Height*scale))
	ctx, err := newPNGContext(large, scale)
	if err != nil {
		return err
	}

	draw.Draw(large, large.Bounds(), image.NewUniform(pngWhite), image.Point{}, draw.Src)

	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 30 * ctx.scale
		ctx.drawTextCentered(float64(opts.Width*scale)/2, 22*ctx.scale, opts.Title, pngBlack)
	}

	f := fitScene(scene.Bounds(), opts.Width*scale, opts.Height*scale, opts.Padding*scale, titleSpace)

	// Wires under components.
	for _, wire := range scene.Wires {
		c := cableColor(wire.Type)
		width := 1.5 * ctx.scale
		if wire.Selected {
			c = pngSelected
			width = 3 * ctx.scale
		}
		for _, seg := range wire.Path.Segments {
			ctx.drawBezier(f, seg.P0, seg.C1, seg.C2, seg.P3, c, width)
		}
	}

	for _, comp := range scene.Components {
		tl := f.apply(comp.Bounds.TopLeft())
		br := f.apply(comp.Bounds.BottomRight())
		ctx.fillRect(tl, br, pngBodyFill)
		ctx.strokeRect(tl, br, pngBlack, 2*ctx.scale)

		center := f.apply(comp.Bounds.Center())
		ctx.drawTextCentered(center.X, center.Y, comp.Name, pngBlack)

		for _, pt := range comp.Points {
			pos := f.apply(pt.Position)
			r := 4.0 * ctx.scale * math.Max(f.scale, 0.5)
			ctx.fillCircle(pos, r, pngPointFill)
			ctx.strokeCircle(pos, r, cableKindColor(pt), 1.5*ctx.scale)
		}
	}

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

func cableKindColor(pt diagram.ScenePoint) color.RGBA {
	if t, ok := diagram.CableTypeFor(pt.Kind, pt.Kind); ok {
		return cableColor(t)
	}
	return pngGray
}

func (c *pngContext) drawLine(p1, p2 geometry.Point2D, col color.Color, width float64) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		c.img.Set(int(p1.X), int(p1.Y), col)
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
			c.img.Set(int(x+perpX*o), int(y+perpY*o), col)
		}
	}
}

func (c *pngContext) drawBezier(f fit, p0, c1, c2, p3 geometry.Point2D, col color.Color, width float64) {
	const steps = 60
	prev := f.apply(p0)
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		mt := 1 - t
		pt := geometry.Point2D{
			X: mt*mt*mt*p0.X + 3*mt*mt*t*c1.X + 3*mt*t*t*c2.X + t*t*t*p3.X,
			Y: mt*mt*mt*p0.Y + 3*mt*mt*t*c1.Y + 3*mt*t*t*c2.Y + t*t*t*p3.Y,
		}
		cur := f.apply(pt)
		c.drawLine(prev, cur, col, width)
		prev = cur
	}
}

func (c *pngContext) fillRect(tl, br geometry.Point2D, col color.Color) {
	r := image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y))
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *pngContext) strokeRect(tl, br geometry.Point2D, col color.Color, width float64) {
	tr := geometry.Point2D{X: br.X, Y: tl.Y}
	bl := geometry.Point2D{X: tl.X, Y: br.Y}
	c.drawLine(tl, tr, col, width)
	c.drawLine(tr, br, col, width)
	c.drawLine(br, bl, col, width)
	c.drawLine(bl, tl, col, width)
}

func (c *pngContext) fillCircle(center geometry.Point2D, r float64, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		extent := math.Sqrt(math.Max(r*r-dy*dy, 0))
		for dx := -extent; dx <= extent; dx++ {
			c.img.Set(int(center.X+dx), int(center.Y+dy), col)
		}
	}
}

func (c *pngContext) strokeCircle(center geometry.Point2D, r float64, col color.Color, width float64) {
	for angle := 0.0; angle < 2*math.Pi; angle += 0.01 {
		nx := math.Cos(angle)
		ny := math.Sin(angle)
		for t := -width / 2; t <= width/2; t += 0.5 {
			c.img.Set(int(center.X+nx*(r+t)), int(center.Y+ny*(r+t)), col)
		}
	}
}

func (c *pngContext) drawTextCentered(x, y float64, text string, col color.Color) {
	if text == "" {
		return
	}
	width := font.MeasureString(c.face, text).Ceil()
	ascent := c.face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x) - width/2),
			Y: fixed.I(int(y) + int(float64(ascent)*0.3)),
		},
	}
	d.DrawString(text)
}
