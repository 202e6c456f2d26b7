package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"doodle/diagram"
	"doodle/render"
)

// PNGExporter exports a flat raster snapshot of the diagram.
type PNGExporter struct{}

// NewPNGExporter creates a new PNG exporter.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{}
}

var (
	pngBackground = color.RGBA{255, 255, 255, 255}
	pngStroke     = color.RGBA{51, 51, 51, 255}
	pngCurve      = color.RGBA{85, 85, 85, 255}
)

const pngPadding = 40

// Export rasterizes the diagram's scene. Curves are sampled into short
// segments; labels use the bundled Go Regular face so output needs no
// system fonts.
func (e *PNGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	scene := render.Build(d, "", nil)
	minX, minY, maxX, maxY := sceneBounds(scene)

	width := maxX - minX + 2*pngPadding
	height := maxY - minY + 2*pngPadding
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	offX, offY := pngPadding-minX, pngPadding-minY

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size: 14, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	defer face.Close()

	for _, c := range scene.Curves {
		drawCurve(img, c, offX, offY)
		if c.Label != "" {
			drawTextCentered(img, face, c.Label, int(c.LabelAt.X)+offX, int(c.LabelAt.Y)+offY-6)
		}
	}
	for _, s := range scene.Shapes {
		drawRect(img, s.X+offX, s.Y+offY, s.Width, s.Height)
		drawTextCentered(img, face, s.Label, s.X+s.Width/2+offX, s.Y+s.Height/2+offY+5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRect(img *image.RGBA, x, y, w, h int) {
	for i := 0; i <= w; i++ {
		img.Set(x+i, y, pngStroke)
		img.Set(x+i, y+h, pngStroke)
	}
	for i := 0; i <= h; i++ {
		img.Set(x, y+i, pngStroke)
		img.Set(x+w, y+i, pngStroke)
	}
}

func drawCurve(img *image.RGBA, c render.Curve, offX, offY int) {
	const steps = 64
	prev := c.PointAt(0)
	for i := 1; i <= steps; i++ {
		p := c.PointAt(float64(i) / steps)
		drawLine(img, int(prev.X)+offX, int(prev.Y)+offY, int(p.X)+offX, int(p.Y)+offY)
		prev = p
	}
}

// drawLine is a basic Bresenham segment; curve steps are short enough that
// anti-aliasing is not worth the dependency.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, pngCurve)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func drawTextCentered(img *image.RGBA, face font.Face, text string, cx, cy int) {
	if text == "" {
		return
	}
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(pngStroke),
		Face: face,
		Dot:  fixed.P(cx-width/2, cy),
	}
	d.DrawString(text)
}

// FileExtension returns the file extension for PNG.
func (e *PNGExporter) FileExtension() string {
	return ".png"
}

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string {
	return "PNG"
}
