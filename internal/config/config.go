// Package config loads vision pipeline definitions from TOML or YAML files.
//
// A file describes one main pipeline and, optionally, an ambient pipeline
// that runs every few frames in its place. Example (TOML):
//
//	name = "cone"
//	target_amount = 1
//	directing = "x_center"
//	sorter = "area"
//
//	[detector]
//	kind = "blob"
//	target_color = "#FF8000"
//	min_area = 40
//
//	[[monitors]]
//	kind = "stop_when_close"
//	threshold = 5000
//	stop = "stop"
//
//	[[monitors]]
//	kind = "pid"
//	kp = 0.8
//	min = -1
//	max = 1
//
// The target amount is decoded loosely and validated with
// director.ParseTargetAmount, so a non-integer such as "two" is rejected with
// director.ErrInvalidConfiguration when the file is loaded.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/vision-director/internal/director"
)

// Format selects the file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Detector kinds.
const (
	DetectorBlob = "blob"
	DetectorText = "text"
)

// Monitor kinds.
const (
	MonitorPID           = "pid"
	MonitorClamp         = "clamp"
	MonitorSmooth        = "smooth"
	MonitorHold          = "hold"
	MonitorStopWhenClose = "stop_when_close"
	MonitorStopper       = "stopper"
)

// File is the top-level configuration document.
type File struct {
	Pipeline `toml:",inline" yaml:",inline"`

	// Ambient, when set, alternates the main pipeline with a second one.
	Ambient *Ambient `toml:"ambient" yaml:"ambient"`
}

// Ambient configures the ambient pipeline switch.
type Ambient struct {
	// MainAmount is how many frames the main pipeline handles between two
	// ambient frames.
	MainAmount   int      `toml:"main_amount" yaml:"main_amount"`
	StartAmbient bool     `toml:"start_ambient" yaml:"start_ambient"`
	Vision       Pipeline `toml:"vision" yaml:"vision"`
}

// Pipeline describes one vision: detection, selection, direction, monitors.
type Pipeline struct {
	Name string `toml:"name" yaml:"name"`

	// TargetAmount is an integer; 0 means unbounded.
	TargetAmount any `toml:"target_amount" yaml:"target_amount"`

	// FailureValue is returned when too few regions were detected.
	FailureValue any `toml:"failure_value" yaml:"failure_value"`

	Directing string `toml:"directing" yaml:"directing"`
	Sorter    string `toml:"sorter" yaml:"sorter"`
	SortColor string `toml:"sort_color" yaml:"sort_color"`

	Camera     Camera     `toml:"camera" yaml:"camera"`
	Preprocess Preprocess `toml:"preprocess" yaml:"preprocess"`
	Detector   Detector   `toml:"detector" yaml:"detector"`
	Monitors   []Monitor  `toml:"monitors" yaml:"monitors"`
}

// Camera is passed through to monitors untouched.
type Camera struct {
	HorizontalFOV float64 `toml:"horizontal_fov" yaml:"horizontal_fov"`
	VerticalFOV   float64 `toml:"vertical_fov" yaml:"vertical_fov"`
	Position      string  `toml:"position" yaml:"position"`
}

// Preprocess configures frame preparation before detection.
type Preprocess struct {
	// ROI is [x1, y1, x2, y2] in source pixels; empty means the whole frame.
	ROI       []int `toml:"roi" yaml:"roi"`
	Width     int   `toml:"width" yaml:"width"`
	Grayscale bool  `toml:"grayscale" yaml:"grayscale"`
}

// Detector configures region detection.
type Detector struct {
	Kind           string  `toml:"kind" yaml:"kind"`
	Threshold      int     `toml:"threshold" yaml:"threshold"`
	Invert         bool    `toml:"invert" yaml:"invert"`
	BlurRadius     float64 `toml:"blur_radius" yaml:"blur_radius"`
	TargetColor    string  `toml:"target_color" yaml:"target_color"`
	ColorTolerance float64 `toml:"color_tolerance" yaml:"color_tolerance"`
	MinArea        int     `toml:"min_area" yaml:"min_area"`
	Language       string  `toml:"language" yaml:"language"`
	MinConfidence  float64 `toml:"min_confidence" yaml:"min_confidence"`
}

// Monitor configures one monitor. Only the fields of its kind are used.
type Monitor struct {
	Kind string `toml:"kind" yaml:"kind"`

	// pid
	Kp       float64 `toml:"kp" yaml:"kp"`
	Ki       float64 `toml:"ki" yaml:"ki"`
	Kd       float64 `toml:"kd" yaml:"kd"`
	Setpoint float64 `toml:"setpoint" yaml:"setpoint"`

	// pid, clamp
	Min float64 `toml:"min" yaml:"min"`
	Max float64 `toml:"max" yaml:"max"`

	// smooth
	Alpha float64 `toml:"alpha" yaml:"alpha"`

	// hold
	Frames int `toml:"frames" yaml:"frames"`

	// stop_when_close
	Threshold float64 `toml:"threshold" yaml:"threshold"`

	// stop_when_close, stopper
	Stop any `toml:"stop" yaml:"stop"`
}

// Default returns a pipeline that steers toward the largest bright blob.
func Default() *File {
	return &File{Pipeline: DefaultPipeline()}
}

// DefaultPipeline returns the defaults applied before a pipeline is decoded.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Name:         "main",
		TargetAmount: 1,
		Directing:    "x_center",
		Detector: Detector{
			Kind:      DetectorBlob,
			Threshold: 200,
			MinArea:   10,
		},
	}
}

// Load reads the configuration at path. The format is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (*File, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte, format Format) (*File, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
		if cfg.Ambient != nil && !meta.IsDefined("ambient", "vision", "target_amount") {
			cfg.Ambient.Vision.TargetAmount = 1
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		if cfg.Ambient != nil && cfg.Ambient.Vision.TargetAmount == nil {
			cfg.Ambient.Vision.TargetAmount = 1
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if cfg.Ambient != nil {
		cfg.Ambient.Vision.applyDefaults("ambient")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (expected .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// applyDefaults fills fields that a nested pipeline leaves empty. The main
// pipeline gets its defaults from Default before decoding.
func (p *Pipeline) applyDefaults(name string) {
	def := DefaultPipeline()
	if p.Name == "" {
		p.Name = name
	}
	if p.Directing == "" {
		p.Directing = def.Directing
	}
	if p.Detector.Kind == "" {
		p.Detector.Kind = def.Detector.Kind
	}
	if p.Detector.MinArea == 0 {
		p.Detector.MinArea = def.Detector.MinArea
	}
	if p.Detector.Kind == DetectorBlob && p.Detector.Threshold == 0 && p.Detector.TargetColor == "" {
		p.Detector.Threshold = def.Detector.Threshold
	}
}

// Validate checks the whole document.
func (f *File) Validate() error {
	if err := f.Pipeline.Validate(); err != nil {
		return err
	}
	if f.Ambient == nil {
		return nil
	}
	if f.Ambient.MainAmount < 0 {
		return fmt.Errorf("ambient: main_amount must not be negative, got %d", f.Ambient.MainAmount)
	}
	if err := f.Ambient.Vision.Validate(); err != nil {
		return fmt.Errorf("ambient: %w", err)
	}
	return nil
}

// Target returns the parsed target amount.
func (p *Pipeline) Target() (director.TargetAmount, error) {
	return director.ParseTargetAmount(p.TargetAmount)
}

// Validate checks a single pipeline.
func (p *Pipeline) Validate() error {
	if _, err := p.Target(); err != nil {
		return fmt.Errorf("pipeline %q: %w", p.Name, err)
	}
	if strings.TrimSpace(p.Directing) == "" {
		return fmt.Errorf("pipeline %q: directing function is required", p.Name)
	}
	if r := p.Preprocess.ROI; len(r) != 0 && (len(r) != 4 || r[0] >= r[2] || r[1] >= r[3]) {
		return fmt.Errorf("pipeline %q: roi must be [x1, y1, x2, y2] with x1 < x2 and y1 < y2, got %v", p.Name, r)
	}
	if p.Preprocess.Width < 0 {
		return fmt.Errorf("pipeline %q: preprocess width must not be negative", p.Name)
	}

	switch p.Detector.Kind {
	case DetectorBlob:
		if p.Detector.Threshold < 0 || p.Detector.Threshold > 255 {
			return fmt.Errorf("pipeline %q: detector threshold must be 0-255, got %d", p.Name, p.Detector.Threshold)
		}
	case DetectorText:
		if p.Detector.MinConfidence < 0 || p.Detector.MinConfidence > 1 {
			return fmt.Errorf("pipeline %q: min_confidence must be 0-1, got %g", p.Name, p.Detector.MinConfidence)
		}
	default:
		return fmt.Errorf("pipeline %q: unknown detector kind %q", p.Name, p.Detector.Kind)
	}

	for i, m := range p.Monitors {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("pipeline %q: monitor %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// Validate checks the fields used by the monitor's kind.
func (m Monitor) Validate() error {
	switch m.Kind {
	case MonitorPID:
		if m.Min > m.Max {
			return fmt.Errorf("pid: min %g greater than max %g", m.Min, m.Max)
		}
	case MonitorClamp:
		if m.Min > m.Max {
			return fmt.Errorf("clamp: min %g greater than max %g", m.Min, m.Max)
		}
	case MonitorSmooth:
		if m.Alpha <= 0 || m.Alpha > 1 {
			return fmt.Errorf("smooth: alpha must be in (0, 1], got %g", m.Alpha)
		}
	case MonitorHold:
		if m.Frames < 0 {
			return fmt.Errorf("hold: frames must not be negative, got %d", m.Frames)
		}
	case MonitorStopWhenClose:
		if m.Threshold <= 0 {
			return fmt.Errorf("stop_when_close: threshold must be positive, got %g", m.Threshold)
		}
	case MonitorStopper:
	default:
		return fmt.Errorf("unknown monitor kind %q", m.Kind)
	}
	return nil
}
