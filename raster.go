package varstroke

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Rasterize fills p with the non-zero winding rule into a w x h coverage
// mask, with antialiasing. Path coordinates are pixel coordinates; parts
// outside the mask are clipped.
func Rasterize(p *Path, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if p == nil || w <= 0 || h <= 0 {
		return dst
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = xdraw.Src
	open := false
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(float32(e.Point.X), float32(e.Point.Y))
			open = true
		case LineTo:
			r.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case QuadTo:
			r.QuadTo(float32(e.Control.X), float32(e.Control.Y), float32(e.Point.X), float32(e.Point.Y))
		case CubicTo:
			r.CubeTo(float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case Close:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Coverage returns the sum of the mask's alpha values divided by 255, the
// filled area in pixels.
func Coverage(mask *image.Alpha) float64 {
	var sum int
	for _, a := range mask.Pix {
		sum += int(a)
	}
	return float64(sum) / 255
}

// Layer is a path filled with a solid color by Render.
type Layer struct {
	Path  *Path
	Color color.Color
}

// Render composites the layers in order over a background.
func Render(w, h int, background color.Color, layers ...Layer) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)
	for _, l := range layers {
		mask := Rasterize(l.Path, w, h)
		xdraw.DrawMask(dst, dst.Bounds(), image.NewUniform(l.Color), image.Point{}, mask, image.Point{}, xdraw.Over)
	}
	return dst
}

// RenderPNG renders the layers like Render and encodes the image as PNG.
func RenderPNG(out io.Writer, w, h int, background color.Color, layers ...Layer) error {
	if err := png.Encode(out, Render(w, h, background, layers...)); err != nil {
		return fmt.Errorf("varstroke: encode png: %w", err)
	}
	return nil
}
