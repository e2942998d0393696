package stroke

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/varstroke/bezier"
)

var approxPoints = cmpopts.EquateApprox(0, 1e-9)

func newTestStroker(t *testing.T, style Style, opts Options) *Stroker {
	t.Helper()
	s, err := NewStroker(style, opts)
	if err != nil {
		t.Fatalf("NewStroker(%+v) error = %v", style, err)
	}
	return s
}

func countElements[T PathElement](elems []PathElement) int {
	n := 0
	for _, el := range elems {
		if _, ok := el.(T); ok {
			n++
		}
	}
	return n
}

func TestNewStroker(t *testing.T) {
	s := newTestStroker(t, Style{Width: 2}, Options{})

	if s.opts.ToleranceScale != DefaultToleranceScale {
		t.Errorf("ToleranceScale = %v, want %v", s.opts.ToleranceScale, DefaultToleranceScale)
	}
	if s.opts.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %v, want %v", s.opts.MaxIterations, DefaultMaxIterations)
	}
	if s.logger == nil {
		t.Error("logger should default to a discarding logger")
	}
}

func TestNewStroker_InvalidStyle(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		fallback bool
		want     error
	}{
		{"zero width", Style{Width: 0}, false, ErrInvalidWidth},
		{"negative width", Style{Width: -1}, false, ErrInvalidWidth},
		{"zero width with fallback", Style{Width: 0}, true, ErrInvalidWidth},
		{"round cap", Style{Width: 1, Cap: LineCapRound}, false, ErrUnsupportedCap},
		{"square cap", Style{Width: 1, Cap: LineCapSquare}, false, ErrUnsupportedCap},
		{"round join", Style{Width: 1, Join: LineJoinRound}, false, ErrUnsupportedJoin},
		{"bevel join", Style{Width: 1, Join: LineJoinBevel}, false, ErrUnsupportedJoin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStroker(tt.style, Options{Fallback: tt.fallback})
			if !errors.Is(err, tt.want) {
				t.Errorf("NewStroker() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewStroker_Fallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := newTestStroker(t, Style{Width: 4, Cap: LineCapRound, Join: LineJoinBevel}, Options{
		Fallback: true,
		Logger:   logger,
	})

	if got := s.Style(); got.Cap != LineCapButt || got.Join != LineJoinMiter {
		t.Errorf("Style() = %+v, want butt cap and miter join", got)
	}
	out := buf.String()
	if !strings.Contains(out, "cap not implemented") || !strings.Contains(out, "join not implemented") {
		t.Errorf("expected fallback warnings, got log:\n%s", out)
	}
}

func TestStroker_StraightLine(t *testing.T) {
	s := newTestStroker(t, Style{Width: 20}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
	}
	w := bezier.Constant(10)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	want := []PathElement{
		MoveTo{Point: Point{X: 0, Y: -10}},
		QuadTo{Control: Point{X: 50, Y: -10}, Point: Point{X: 100, Y: -10}},
		LineTo{Point: Point{X: 100, Y: 10}},
		QuadTo{Control: Point{X: 50, Y: 10}, Point: Point{X: 0, Y: 10}},
		Close{},
	}
	if diff := cmp.Diff(want, got, approxPoints); diff != "" {
		t.Errorf("StrokePath() mismatch (-want +got):\n%s", diff)
	}

	stats := s.Stats()
	if stats.Segments != 1 || stats.Pieces != 2 || stats.Iterations != 2 || stats.Truncated {
		t.Errorf("Stats() = %+v, want 1 segment, 2 pieces, 2 iterations", stats)
	}
}

func TestStroker_MiterJoinClockwise(t *testing.T) {
	s := newTestStroker(t, Style{Width: 20}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 100}},
	}
	w := bezier.Constant(10)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	want := []PathElement{
		// Outer side with the miter point at (110, -10).
		MoveTo{Point: Point{X: 0, Y: -10}},
		QuadTo{Control: Point{X: 50, Y: -10}, Point: Point{X: 100, Y: -10}},
		LineTo{Point: Point{X: 110, Y: -10}},
		LineTo{Point: Point{X: 110, Y: 0}},
		QuadTo{Control: Point{X: 110, Y: 50}, Point: Point{X: 110, Y: 100}},
		// Butt end cap.
		LineTo{Point: Point{X: 90, Y: 100}},
		// Inner side reversed, passing through the corner.
		QuadTo{Control: Point{X: 90, Y: 50}, Point: Point{X: 90, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 10}},
		QuadTo{Control: Point{X: 50, Y: 10}, Point: Point{X: 0, Y: 10}},
		Close{},
	}
	if diff := cmp.Diff(want, got, approxPoints); diff != "" {
		t.Errorf("StrokePath() mismatch (-want +got):\n%s", diff)
	}
}

func TestStroker_MiterRadiusFromPreviousSegment(t *testing.T) {
	// Each segment tapers from 0 to 10, so the next segment has no offset at
	// the corner and the miter follows the previous segment's end instead of
	// Width/2.
	s := newTestStroker(t, Style{Width: 2}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 100}},
	}
	w := bezier.New(0, 10)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	var miters []Point
	for _, el := range got {
		if l, ok := el.(LineTo); ok {
			miters = append(miters, l.Point)
		}
	}
	want := Point{X: 110, Y: -10}
	found := false
	for _, p := range miters {
		if p.Distance(want) < 1e-9 {
			found = true
		}
		if p.Distance(Point{X: 101, Y: -1}) < 1e-9 {
			t.Errorf("miter point %v uses the style radius", p)
		}
	}
	if !found {
		t.Errorf("line points = %v, want a miter at %v", miters, want)
	}
}

func TestStroker_HighDegreeDistance(t *testing.T) {
	for _, degree := range []int{30, 35, 40} {
		weights := make([]float64, degree+1)
		for i := range weights {
			weights[i] = 10
		}
		w := bezier.New(weights...)

		s := newTestStroker(t, Style{Width: 20}, Options{})
		input := []PathElement{
			MoveTo{Point: Point{X: 0, Y: 0}},
			LineTo{Point: Point{X: 100, Y: 0}},
		}
		if _, err := s.StrokePath(input, w, w); err != nil {
			t.Fatalf("deg %d: StrokePath() error = %v", degree, err)
		}
		want := Stats{Segments: 1, Pieces: 2, Iterations: 2}
		if got := s.Stats(); got != want {
			t.Errorf("deg %d: Stats() = %+v, want %+v", degree, got, want)
		}
	}
}

func TestStroker_MiterJoinCounterClockwise(t *testing.T) {
	s := newTestStroker(t, Style{Width: 20}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: -100}},
	}
	w := bezier.Constant(10)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	// The miter lands on the inner accumulator, the outer one passes
	// through the corner.
	wantMiter := LineTo{Point: Point{X: 110, Y: 10}}
	wantCorner := LineTo{Point: Point{X: 100, Y: 0}}
	var foundMiter, foundCorner bool
	for _, el := range got {
		if cmp.Equal(el, PathElement(wantMiter), approxPoints) {
			foundMiter = true
		}
		if cmp.Equal(el, PathElement(wantCorner), approxPoints) {
			foundCorner = true
		}
	}
	if !foundMiter {
		t.Errorf("outline has no miter point %v:\n%v", wantMiter.Point, got)
	}
	if !foundCorner {
		t.Errorf("outline does not pass through the corner:\n%v", got)
	}
}

func TestStroker_CollinearSegmentsNoMiter(t *testing.T) {
	s := newTestStroker(t, Style{Width: 2}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 50, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
	}
	w := bezier.Constant(1)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}
	// Two quads per side, one cap line, no join lines.
	if n := countElements[LineTo](got); n != 1 {
		t.Errorf("LineTo count = %d, want 1:\n%v", n, got)
	}
	if n := countElements[QuadTo](got); n != 4 {
		t.Errorf("QuadTo count = %d, want 4", n)
	}
}

func TestStroker_ClosedContour(t *testing.T) {
	s := newTestStroker(t, Style{Width: 10}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 100}},
		Close{},
	}
	w := bezier.Constant(5)

	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	if n := countElements[Close](got); n != 2 {
		t.Errorf("Close count = %d, want 2", n)
	}
	if n := countElements[MoveTo](got); n != 2 {
		t.Errorf("MoveTo count = %d, want 2", n)
	}
	if s.Stats().Segments != 3 {
		t.Errorf("Segments = %d, want 3 (closing line included)", s.Stats().Segments)
	}
	if _, ok := got[len(got)-1].(Close); !ok {
		t.Errorf("last element = %T, want Close", got[len(got)-1])
	}
}

func TestStroker_ClosedContourEndingAtStart(t *testing.T) {
	s := newTestStroker(t, Style{Width: 10}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 100}},
		LineTo{Point: Point{X: 0, Y: 0}},
		Close{},
	}
	w := bezier.Constant(5)

	if _, err := s.StrokePath(input, w, w); err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}
	// No extra closing line when the contour already returns to its start.
	if s.Stats().Segments != 3 {
		t.Errorf("Segments = %d, want 3", s.Stats().Segments)
	}
}

func TestStroker_Errors(t *testing.T) {
	w := bezier.Constant(1)
	tests := []struct {
		name  string
		input []PathElement
		outer bezier.Curve
		want  error
	}{
		{
			name: "cubic",
			input: []PathElement{
				MoveTo{Point: Point{X: 0, Y: 0}},
				CubicTo{Control1: Point{X: 10, Y: 10}, Control2: Point{X: 20, Y: 10}, Point: Point{X: 30, Y: 0}},
			},
			outer: w,
			want:  ErrUnsupportedVerb,
		},
		{
			name: "second move",
			input: []PathElement{
				MoveTo{Point: Point{X: 0, Y: 0}},
				LineTo{Point: Point{X: 10, Y: 0}},
				MoveTo{Point: Point{X: 20, Y: 0}},
				LineTo{Point: Point{X: 30, Y: 0}},
			},
			outer: w,
			want:  ErrMultipleContours,
		},
		{
			name: "segment after close",
			input: []PathElement{
				MoveTo{Point: Point{X: 0, Y: 0}},
				LineTo{Point: Point{X: 10, Y: 0}},
				LineTo{Point: Point{X: 10, Y: 10}},
				Close{},
				LineTo{Point: Point{X: 30, Y: 0}},
			},
			outer: w,
			want:  ErrMultipleContours,
		},
		{
			name: "uninitialized distance",
			input: []PathElement{
				MoveTo{Point: Point{X: 0, Y: 0}},
				LineTo{Point: Point{X: 10, Y: 0}},
			},
			outer: bezier.Curve{},
			want:  ErrInvalidDistance,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStroker(t, Style{Width: 2}, Options{})
			got, err := s.StrokePath(tt.input, tt.outer, w)
			if !errors.Is(err, tt.want) {
				t.Errorf("StrokePath() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("StrokePath() returned %d elements on error", len(got))
			}
		})
	}
}

func TestStroker_EmptyAndDegenerate(t *testing.T) {
	w := bezier.Constant(1)
	tests := []struct {
		name  string
		input []PathElement
	}{
		{"empty", nil},
		{"single move", []PathElement{MoveTo{Point: Point{X: 5, Y: 5}}}},
		{"zero length line", []PathElement{
			MoveTo{Point: Point{X: 5, Y: 5}},
			LineTo{Point: Point{X: 5, Y: 5}},
		}},
		{"collapsed quad", []PathElement{
			MoveTo{Point: Point{X: 5, Y: 5}},
			QuadTo{Control: Point{X: 5, Y: 5}, Point: Point{X: 5, Y: 5}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStroker(t, Style{Width: 2}, Options{})
			got, err := s.StrokePath(tt.input, w, w)
			if err != nil {
				t.Fatalf("StrokePath() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("StrokePath() = %v, want empty", got)
			}
		})
	}
}

func TestStroker_DegenerateSegmentSkipped(t *testing.T) {
	s := newTestStroker(t, Style{Width: 2}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	}
	w := bezier.Constant(1)

	if _, err := s.StrokePath(input, w, w); err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}
	if s.Stats().Segments != 1 {
		t.Errorf("Segments = %d, want 1", s.Stats().Segments)
	}
}

func TestStroker_ZeroDistance(t *testing.T) {
	s := newTestStroker(t, Style{Width: 1}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		QuadTo{Control: Point{X: 50, Y: 50}, Point: Point{X: 100, Y: 0}},
	}
	zero := bezier.Constant(0)

	got, err := s.StrokePath(input, zero, zero)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("StrokePath() returned no outline")
	}
	if s.Stats().Truncated {
		t.Error("zero distance should converge without truncation")
	}
}

// varyingPath is a straight quad stroked with a strongly varying cubic
// width, which needs several refinement steps.
func varyingPath() ([]PathElement, bezier.Curve) {
	return []PathElement{
		MoveTo{Point: Point{X: 300, Y: 400}},
		QuadTo{Control: Point{X: 500, Y: 400}, Point: Point{X: 700, Y: 400}},
	}, bezier.New(5, 40, 5, 40)
}

func TestStroker_RefinementConvergence(t *testing.T) {
	input, w := varyingPath()

	prevPieces := 0
	for _, scale := range []float64{0.5, 0.1, 0.01} {
		var candidates []Candidate
		s := newTestStroker(t, Style{Width: 80}, Options{
			ToleranceScale: scale,
			Observer:       func(c Candidate) { candidates = append(candidates, c) },
		})
		if _, err := s.StrokePath(input, w, w); err != nil {
			t.Fatalf("scale %v: StrokePath() error = %v", scale, err)
		}
		stats := s.Stats()

		if stats.Truncated {
			t.Errorf("scale %v: refinement truncated", scale)
		}
		if len(candidates) != stats.Iterations {
			t.Errorf("scale %v: observed %d candidates, want %d", scale, len(candidates), stats.Iterations)
		}
		if stats.Pieces < prevPieces {
			t.Errorf("scale %v: %d pieces, fewer than %d at a looser tolerance", scale, stats.Pieces, prevPieces)
		}
		prevPieces = stats.Pieces

		if candidates[0].Accepted || candidates[0].Depth != 0 {
			t.Errorf("scale %v: first candidate should be the rejected whole segment, got depth %d accepted %v",
				scale, candidates[0].Depth, candidates[0].Accepted)
		}

		accepted := 0
		for _, c := range candidates {
			if !c.Accepted {
				continue
			}
			accepted++
			e := OffsetError(c.Segment, c.Approx, bezier.Mul(c.Dist, c.Dist))
			if m := math.Abs(e.ExtremumWeight()); m > c.Tolerance {
				t.Errorf("scale %v: accepted candidate at depth %d has error %v > tolerance %v",
					scale, c.Depth, m, c.Tolerance)
			}
		}
		if accepted != stats.Pieces {
			t.Errorf("scale %v: %d accepted candidates, want %d pieces", scale, accepted, stats.Pieces)
		}
	}
}

func TestStroker_IterationCap(t *testing.T) {
	input, w := varyingPath()

	var buf bytes.Buffer
	s := newTestStroker(t, Style{Width: 80}, Options{
		MaxIterations: 1,
		Logger:        slog.New(slog.NewTextHandler(&buf, nil)),
	})
	got, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatalf("StrokePath() error = %v", err)
	}

	stats := s.Stats()
	if !stats.Truncated {
		t.Error("Truncated = false, want true")
	}
	// One rejected candidate per side, each leaving two unrefined halves.
	if stats.Iterations != 2 || stats.Pieces != 4 {
		t.Errorf("Stats() = %+v, want 2 iterations and 4 pieces", stats)
	}
	if _, ok := got[len(got)-1].(Close); !ok {
		t.Error("truncated outline should still be closed")
	}
	if !strings.Contains(buf.String(), "iteration cap") {
		t.Errorf("expected truncation warning, got log:\n%s", buf.String())
	}
}

func TestStroker_Reuse(t *testing.T) {
	s := newTestStroker(t, Style{Width: 2}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 10, Y: 0}},
	}
	w := bezier.Constant(1)

	first, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.StrokePath(input, w, w)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second StrokePath() differs (-first +second):\n%s", diff)
	}
	if s.Stats().Segments != 1 {
		t.Errorf("Stats not reset between calls: %+v", s.Stats())
	}
}

func TestPathBuilder(t *testing.T) {
	pb := newPathBuilder()

	if len(pb.elements) != 0 {
		t.Error("new pathBuilder should be empty")
	}

	pb.moveTo(Point{X: 0, Y: 0})
	if len(pb.elements) == 0 {
		t.Error("pathBuilder should not be empty after moveTo")
	}

	pb.lineTo(Point{X: 10, Y: 0})
	pb.bridgeTo(Point{X: 10, Y: 0})
	pb.quadTo(Point{X: 15, Y: 5}, Point{X: 20, Y: 0})
	pb.close()

	elements := pb.build()
	if len(elements) != 4 {
		t.Errorf("expected 4 elements (bridge to current point is a no-op), got %d", len(elements))
	}
}

func TestPathBuilder_AppendReversed(t *testing.T) {
	src := newPathBuilder()
	src.moveTo(Point{X: 0, Y: 0})
	src.lineTo(Point{X: 10, Y: 0})
	src.quadTo(Point{X: 15, Y: 5}, Point{X: 20, Y: 0})

	dst := newPathBuilder()
	dst.moveTo(Point{X: 20, Y: 0})
	dst.appendReversed(src)

	want := []PathElement{
		MoveTo{Point: Point{X: 20, Y: 0}},
		QuadTo{Control: Point{X: 15, Y: 5}, Point: Point{X: 10, Y: 0}},
		LineTo{Point: Point{X: 0, Y: 0}},
	}
	if diff := cmp.Diff(want, dst.build()); diff != "" {
		t.Errorf("appendReversed mismatch (-want +got):\n%s", diff)
	}
	if dst.current != (Point{X: 0, Y: 0}) {
		t.Errorf("current = %v, want origin", dst.current)
	}
}

func BenchmarkStroker_SimpleLine(b *testing.B) {
	s, _ := NewStroker(Style{Width: 2}, Options{})
	input := []PathElement{
		MoveTo{Point: Point{X: 0, Y: 0}},
		LineTo{Point: Point{X: 100, Y: 0}},
	}
	w := bezier.Constant(1)

	for b.Loop() {
		_, _ = s.StrokePath(input, w, w)
	}
}

func BenchmarkStroker_VaryingWidth(b *testing.B) {
	s, _ := NewStroker(Style{Width: 80}, Options{})
	input, w := varyingPath()

	b.ReportAllocs()
	for b.Loop() {
		_, _ = s.StrokePath(input, w, w)
	}
}

func BenchmarkStroker_Zigzag(b *testing.B) {
	s, _ := NewStroker(Style{Width: 4}, Options{})
	input := []PathElement{MoveTo{Point: Point{X: 0, Y: 0}}}
	for i := 1; i <= 100; i++ {
		x := float64(i * 10)
		y := float64((i % 2) * 10)
		input = append(input, LineTo{Point: Point{X: x, Y: y}})
	}
	w := bezier.New(1, 3)

	for b.Loop() {
		_, _ = s.StrokePath(input, w, w)
	}
}
