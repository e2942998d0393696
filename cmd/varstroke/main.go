// Command varstroke strokes a path with a variable width and renders the
// outline.
//
// Usage:
//
//	varstroke [flags]
//	varstroke -job job.yaml -o out.png
//	varstroke -path "M100 300 Q400 50 700 300" -outer 5,40,5 -svg out.txt
//
// The job file, if any, is read first; flags given explicitly override its
// fields.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/varstroke"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "varstroke: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, strokes the job and writes the requested outputs.
func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("varstroke", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := defaultJob()
	var (
		jobFile   = fs.String("job", "", "YAML or TOML job file")
		pathData  = fs.String("path", def.Path, "SVG path data, one contour of lines and quadratics")
		width     = fs.Float64("width", def.Width, "stroke width")
		outer     = fs.String("outer", "", "outer half-width weights, comma separated")
		inner     = fs.String("inner", "", "inner half-width weights, comma separated (default: outer)")
		lineCap   = fs.String("cap", def.Cap, "line cap: butt, round or square")
		lineJoin  = fs.String("join", def.Join, "line join: miter, round or bevel")
		tolerance = fs.Float64("tolerance", 0, "tolerance scale (0 selects the default)")
		maxIter   = fs.Int("max-iter", 0, "refinement iteration bound per segment side (0 selects the default)")
		scale     = fs.Float64("scale", def.Scale, "uniform scale applied to the path and the stroke")
		size      = fs.String("size", def.Size, "image size as WxH")
		output    = fs.String("o", def.Output, "output PNG file, empty to skip")
		svgOut    = fs.String("svg", "", "write the outline as SVG path data to this file")
		dumpError = fs.String("dump-error", "", "write every refinement candidate and its error curve to this file")
		fallback  = fs.Bool("fallback", false, "use butt caps and miter joins for unsupported styles")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	varstroke.SetLogger(logger)
	defer varstroke.SetLogger(nil)

	job := def
	if *jobFile != "" {
		var err error
		if job, err = loadJob(*jobFile); err != nil {
			return err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			job.Path = *pathData
		case "width":
			job.Width = *width
		case "outer":
			w, err := parseWeights(*outer)
			if err != nil && flagErr == nil {
				flagErr = fmt.Errorf("-outer: %w", err)
			}
			job.Outer = w
		case "inner":
			w, err := parseWeights(*inner)
			if err != nil && flagErr == nil {
				flagErr = fmt.Errorf("-inner: %w", err)
			}
			job.Inner = w
		case "cap":
			job.Cap = *lineCap
		case "join":
			job.Join = *lineJoin
		case "tolerance":
			job.Tolerance = *tolerance
		case "max-iter":
			job.MaxIterations = *maxIter
		case "scale":
			job.Scale = *scale
		case "size":
			job.Size = *size
		case "o":
			job.Output = *output
		case "svg":
			job.SVG = *svgOut
		case "dump-error":
			job.DumpError = *dumpError
		case "fallback":
			job.Fallback = *fallback
		}
	})
	if flagErr != nil {
		return flagErr
	}

	return execute(job, logger)
}

// execute strokes the job and writes its outputs.
func execute(job Job, logger *slog.Logger) error {
	w, h, err := parseSize(job.Size)
	if err != nil {
		return err
	}
	path, err := varstroke.ParseSVG(job.Path)
	if err != nil {
		return err
	}

	m := varstroke.Identity()
	if job.Scale != 1 {
		m = varstroke.Scale(job.Scale, job.Scale)
		path = path.Transform(m)
	}
	factor := m.ScaleFactor()

	style, err := job.style(factor)
	if err != nil {
		return err
	}
	outerDist, innerDist := job.distances(factor)

	opts := job.options()
	var dump *errorDump
	if job.DumpError != "" {
		f, err := os.Create(job.DumpError)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = newErrorDump(f)
		opts = append(opts, varstroke.WithObserver(dump.observe))
	}

	stroker, err := varstroke.NewStroker(style, opts...)
	if err != nil {
		return err
	}
	outline, err := stroker.StrokePath(path, outerDist, innerDist)
	if err != nil {
		return err
	}
	st := stroker.Stats()
	logger.Info("stroked",
		"segments", st.Segments,
		"pieces", st.Pieces,
		"iterations", st.Iterations,
		"truncated", st.Truncated)

	if dump != nil {
		if err := dump.flush(); err != nil {
			return fmt.Errorf("dump error curves: %w", err)
		}
	}

	if job.SVG != "" {
		if err := os.WriteFile(job.SVG, []byte(outline.String()+"\n"), 0o644); err != nil {
			return err
		}
		logger.Info("wrote outline", "file", job.SVG)
	}

	if job.Output != "" {
		if err := writePNG(job.Output, w, h, path, outline); err != nil {
			return err
		}
		logger.Info("wrote image", "file", job.Output, "width", w, "height", h)
	}
	return nil
}

var (
	backgroundColor = color.RGBA{0xfa, 0xfa, 0xf7, 0xff}
	outlineColor    = color.RGBA{0x3a, 0x6e, 0xa5, 0xff}
	skeletonColor   = color.RGBA{0x20, 0x20, 0x20, 0xff}
	onCurveColor    = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	offCurveColor   = color.RGBA{0x90, 0x90, 0x90, 0xff}
)

// writePNG renders the outline, the input path as a thin skeleton and its
// control points.
func writePNG(name string, w, h int, path, outline *varstroke.Path) error {
	layers := []varstroke.Layer{{Path: outline, Color: outlineColor}}

	skeleton, err := varstroke.StrokeConstant(path, varstroke.DefaultStroke())
	if err != nil {
		return err
	}
	layers = append(layers, varstroke.Layer{Path: skeleton, Color: skeletonColor})

	on, off := varstroke.BuildPath(), varstroke.BuildPath()
	for _, cp := range path.ControlPoints() {
		if cp.OnCurve {
			on.Polygon(cp.X, cp.Y, 4, 4)
		} else {
			off.Polygon(cp.X, cp.Y, 3, 4)
		}
	}
	layers = append(layers,
		varstroke.Layer{Path: off.Build(), Color: offCurveColor},
		varstroke.Layer{Path: on.Build(), Color: onCurveColor})

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := varstroke.RenderPNG(f, w, h, backgroundColor, layers...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// errorDump writes refinement candidates as text, one block per candidate.
type errorDump struct {
	w *bufio.Writer
	n int
}

// errorSamples is the number of samples written per error curve.
const errorSamples = 9

func newErrorDump(w io.Writer) *errorDump {
	return &errorDump{w: bufio.NewWriter(w)}
}

func (d *errorDump) observe(c varstroke.Candidate) {
	d.n++
	fmt.Fprintf(d.w, "# candidate %d depth=%d accepted=%t max=%g tolerance=%g\n",
		d.n, c.Depth, c.Accepted, c.MaxError, c.Tolerance)
	fmt.Fprintf(d.w, "source M%g %g Q%g %g %g %g\n",
		c.Source.P0.X, c.Source.P0.Y, c.Source.P1.X, c.Source.P1.Y, c.Source.P2.X, c.Source.P2.Y)
	fmt.Fprintf(d.w, "approx M%g %g Q%g %g %g %g\n",
		c.Approx.P0.X, c.Approx.P0.Y, c.Approx.P1.X, c.Approx.P1.Y, c.Approx.P2.X, c.Approx.P2.Y)

	samples := make([]string, errorSamples)
	for i := range samples {
		t := float64(i) / (errorSamples - 1)
		samples[i] = fmt.Sprintf("%.4g", c.Error.Eval(t))
	}
	fmt.Fprintf(d.w, "error %s\n", strings.Join(samples, " "))

	if !c.Accepted {
		// Hull bounds of the two halves the range is split into next.
		left := c.Error.Subrange(0, 0.5).ExtremumWeight()
		right := c.Error.Subrange(0.5, 1).ExtremumWeight()
		fmt.Fprintf(d.w, "halves %g %g\n", left, right)
	}
}

func (d *errorDump) flush() error {
	return d.w.Flush()
}
