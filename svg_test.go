package varstroke

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSVG(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []PathElement
	}{
		{
			name: "absolute",
			data: "M0 0 L100 0 Q150 50 100 100 Z",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				LineTo{Point: Pt(100, 0)},
				QuadTo{Control: Pt(150, 50), Point: Pt(100, 100)},
				Close{},
			},
		},
		{
			name: "relative",
			data: "m10 10 l20 0 q10 10 0 20 h-20 v-20",
			want: []PathElement{
				MoveTo{Point: Pt(10, 10)},
				LineTo{Point: Pt(30, 10)},
				QuadTo{Control: Pt(40, 20), Point: Pt(30, 30)},
				LineTo{Point: Pt(10, 30)},
				LineTo{Point: Pt(10, 10)},
			},
		},
		{
			name: "implicit lines after move",
			data: "M0,0 10,0 10,10",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				LineTo{Point: Pt(10, 0)},
				LineTo{Point: Pt(10, 10)},
			},
		},
		{
			name: "implicit repeat and compact numbers",
			data: "M0 0L10-5 20-10.5",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				LineTo{Point: Pt(10, -5)},
				LineTo{Point: Pt(20, -10.5)},
			},
		},
		{
			name: "smooth quadratic reflects control",
			data: "M0 0 Q10 20 20 0 T40 0",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				QuadTo{Control: Pt(10, 20), Point: Pt(20, 0)},
				QuadTo{Control: Pt(30, -20), Point: Pt(40, 0)},
			},
		},
		{
			name: "smooth quadratic without predecessor",
			data: "M0 0 T40 0",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				QuadTo{Control: Pt(0, 0), Point: Pt(40, 0)},
			},
		},
		{
			name: "smooth cubic reflects control",
			data: "M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			want: []PathElement{
				MoveTo{Point: Pt(0, 0)},
				CubicTo{Control1: Pt(0, 10), Control2: Pt(10, 10), Point: Pt(10, 0)},
				CubicTo{Control1: Pt(10, -10), Control2: Pt(20, -10), Point: Pt(20, 0)},
			},
		},
		{
			name: "exponent",
			data: "M1e2 0 L2.5E1 -1e1",
			want: []PathElement{
				MoveTo{Point: Pt(100, 0)},
				LineTo{Point: Pt(25, -10)},
			},
		},
		{
			name: "empty",
			data: "  ",
			want: []PathElement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSVG(tt.data)
			if err != nil {
				t.Fatalf("ParseSVG(%q) error = %v", tt.data, err)
			}
			if diff := cmp.Diff(tt.want, p.Elements()); diff != "" {
				t.Errorf("ParseSVG(%q) mismatch (-want +got):\n%s", tt.data, diff)
			}
		})
	}
}

func TestParseSVGErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"number first", "10 10"},
		{"arc", "M0 0 A5 5 0 0 1 10 10"},
		{"unknown command", "M0 0 X10"},
		{"missing coordinate", "M0 0 L10"},
		{"number after close", "M0 0 L10 0 Z 5 5"},
		{"dangling number", "M0 0 L10 0 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSVG(tt.data)
			if !errors.Is(err, ErrPathData) {
				t.Errorf("ParseSVG(%q) error = %v, want ErrPathData", tt.data, err)
			}
		})
	}
}

func TestMustParseSVGPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseSVG should panic on malformed data")
		}
	}()
	_ = MustParseSVG("M0")
}

func TestPathString(t *testing.T) {
	p := BuildPath().
		MoveTo(0, 0).
		LineTo(100, 0).
		QuadTo(50, 80, 100, 0).
		CubicTo(1, 2, 3, 4, 5.5, 6).
		Close().
		Build()

	want := "M0 0 L100 0 Q50 80 100 0 C1 2 3 4 5.5 6 Z"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	data := "M10 20 L30.25 40 Q50 60 70 80 Z"
	p := MustParseSVG(data)
	if got := p.String(); got != data {
		t.Errorf("String() = %q, want %q", got, data)
	}

	again := MustParseSVG(p.String())
	if diff := cmp.Diff(p.Elements(), again.Elements()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
