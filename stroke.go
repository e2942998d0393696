package varstroke

import (
	"fmt"
	"strings"

	"github.com/gogpu/varstroke/internal/stroke"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap. Not implemented.
	LineCapRound
	// LineCapSquare specifies a square line cap. Not implemented.
	LineCapSquare
)

// String returns the SVG name of the cap.
func (c LineCap) String() string {
	return stroke.LineCap(c).String()
}

// ParseLineCap parses an SVG stroke-linecap name.
func ParseLineCap(s string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butt":
		return LineCapButt, nil
	case "round":
		return LineCapRound, nil
	case "square":
		return LineCapSquare, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCap, s)
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join. Not implemented.
	LineJoinRound
	// LineJoinBevel specifies a beveled join. Not implemented.
	LineJoinBevel
)

// String returns the SVG name of the join.
func (j LineJoin) String() string {
	return stroke.LineJoin(j).String()
}

// ParseLineJoin parses an SVG stroke-linejoin name.
func ParseLineJoin(s string) (LineJoin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "miter":
		return LineJoinMiter, nil
	case "round":
		return LineJoinRound, nil
	case "bevel":
		return LineJoinBevel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedJoin, s)
}

// Stroke defines the style for stroking paths.
type Stroke struct {
	// Width is the base line width. Width/2 is the half-width that width
	// profiles are scaled by, and the miter radius where the local offset
	// gives none. Default: 1.0
	Width float64

	// Cap is the shape of line endpoints. Only LineCapButt is drawn.
	Cap LineCap

	// Join is the shape of line joins. Only LineJoinMiter is drawn; miters
	// are not limited.
	Join LineJoin
}

// DefaultStroke returns a Stroke with default settings.
// This creates a 1-unit line with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width: 1.0,
		Cap:   LineCapButt,
		Join:  LineJoinMiter,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// Validate reports whether the stroke can be drawn without fallback.
// The error wraps ErrInvalidWidth, ErrUnsupportedCap or ErrUnsupportedJoin.
func (s Stroke) Validate() error {
	return s.internal().Validate()
}

// Radius returns half the stroke width.
func (s Stroke) Radius() float64 {
	return s.Width / 2
}

func (s Stroke) internal() stroke.Style {
	return stroke.Style{
		Width: s.Width,
		Cap:   stroke.LineCap(s.Cap),
		Join:  stroke.LineJoin(s.Join),
	}
}
