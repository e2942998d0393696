package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	parsestrconv "github.com/tdewolff/parse/v2/strconv"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/varstroke"
	"github.com/gogpu/varstroke/bezier"
)

// Job describes one stroking run. It is read from a YAML or TOML file and
// overridden by command line flags.
type Job struct {
	// Path is SVG path data with a single contour of lines and quadratics.
	Path string `yaml:"path" toml:"path"`
	// Width is the nominal stroke width. It is the constant width when no
	// distance weights are given.
	Width float64 `yaml:"width" toml:"width"`
	// Outer and Inner are half-width weights per segment. Inner defaults
	// to Outer.
	Outer []float64 `yaml:"outer" toml:"outer"`
	Inner []float64 `yaml:"inner" toml:"inner"`

	Cap           string  `yaml:"cap" toml:"cap"`
	Join          string  `yaml:"join" toml:"join"`
	Tolerance     float64 `yaml:"tolerance" toml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" toml:"max_iterations"`
	Fallback      bool    `yaml:"fallback" toml:"fallback"`

	// Scale uniformly scales the path and the stroke before stroking.
	Scale float64 `yaml:"scale" toml:"scale"`

	// Size is the image size as WxH.
	Size      string `yaml:"size" toml:"size"`
	Output    string `yaml:"output" toml:"output"`
	SVG       string `yaml:"svg" toml:"svg"`
	DumpError string `yaml:"dump_error" toml:"dump_error"`
}

// errJobFormat is returned for job files that are neither YAML nor TOML.
var errJobFormat = errors.New("unknown job file format")

func defaultJob() Job {
	return Job{
		Path:   "M100 300 Q400 50 700 300",
		Width:  20,
		Cap:    "butt",
		Join:   "miter",
		Scale:  1,
		Size:   "800x600",
		Output: "stroke.png",
	}
}

// loadJob reads a job file over the defaults. The format is chosen by
// extension.
func loadJob(name string) (Job, error) {
	job := defaultJob()
	data, err := os.ReadFile(name)
	if err != nil {
		return job, err
	}
	if err := decodeJob(data, filepath.Ext(name), &job); err != nil {
		return job, fmt.Errorf("%s: %w", name, err)
	}
	return job, nil
}

func decodeJob(data []byte, ext string, job *Job) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, job)
	case ".toml":
		return toml.Unmarshal(data, job)
	default:
		return fmt.Errorf("%w %q", errJobFormat, ext)
	}
}

// parseWeights parses a comma or space separated list of numbers.
func parseWeights(s string) ([]float64, error) {
	var out []float64
	b := []byte(s)
	for i := 0; i < len(b); {
		if b[i] == ',' || b[i] == ' ' {
			i++
			continue
		}
		v, n := parsestrconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("bad weight at position %d in %q", i+1, s)
		}
		out = append(out, v)
		i += n
	}
	return out, nil
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("bad size %q, want WxH", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("bad size %q, want positive dimensions", s)
	}
	return w, h, nil
}

// style returns the stroke style of the job with its width multiplied by
// factor.
func (j Job) style(factor float64) (varstroke.Stroke, error) {
	lc, err := varstroke.ParseLineCap(j.Cap)
	if err != nil {
		return varstroke.Stroke{}, err
	}
	lj, err := varstroke.ParseLineJoin(j.Join)
	if err != nil {
		return varstroke.Stroke{}, err
	}
	return varstroke.Stroke{Width: j.Width * factor, Cap: lc, Join: lj}, nil
}

// distances returns the outer and inner distance functions multiplied by
// factor.
func (j Job) distances(factor float64) (outer, inner bezier.Curve) {
	if len(j.Outer) == 0 {
		outer = varstroke.ConstantWidth(j.Width)
	} else {
		outer = bezier.New(j.Outer...)
	}
	switch {
	case len(j.Inner) > 0:
		inner = bezier.New(j.Inner...)
	case len(j.Outer) > 0:
		inner = outer.Clone()
	default:
		inner = varstroke.ConstantWidth(j.Width)
	}
	return outer.Scale(factor), inner.Scale(factor)
}

func (j Job) options() []varstroke.StrokerOption {
	opts := []varstroke.StrokerOption{
		varstroke.WithToleranceScale(j.Tolerance),
		varstroke.WithMaxIterations(j.MaxIterations),
	}
	if j.Fallback {
		opts = append(opts, varstroke.WithStyleFallback())
	}
	return opts
}
