// Package vision runs frames through a complete pipeline: preprocessing,
// region detection, selection, direction and monitoring.
package vision

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/detection"
	"github.com/ironsheep/vision-director/internal/director"
	"github.com/ironsheep/vision-director/internal/imaging"
	"github.com/ironsheep/vision-director/internal/logging"
	"github.com/ironsheep/vision-director/internal/monitor"
)

// CameraSettings describes the camera a frame came from. The pipeline never
// reads it; it is handed to every monitor.
type CameraSettings struct {
	HorizontalFOV float64 `json:"horizontal_fov,omitempty"`
	VerticalFOV   float64 `json:"vertical_fov,omitempty"`
	Position      string  `json:"position,omitempty"`
}

type (
	// Director is the director instantiation used by every vision.
	Director = director.Director[detection.Region, image.Image, CameraSettings, any]

	// Monitor is a monitor usable in a vision's chain.
	Monitor = director.Monitor[detection.Region, image.Image, CameraSettings, any]

	// Stopper is the monitor that halts a vision on request.
	Stopper = monitor.Stopper[detection.Region, image.Image, CameraSettings]
)

// Outcome is the result of one processed frame.
type Outcome struct {
	Vision    string `json:"vision"`
	Directive any    `json:"directive"`

	// Regions are the regions the directive was computed from: sorted and
	// trimmed when enough were found, every detected region otherwise.
	Regions []detection.Region `json:"regions"`

	// Detected is the number of regions found before selection.
	Detected int `json:"detected"`

	// Directed reports whether the gate passed and the directing function ran.
	Directed bool `json:"directed"`

	// Ambient is set when the frame was handled by an ambient vision.
	Ambient bool `json:"ambient,omitempty"`
}

// Processor is implemented by Vision and Ambient.
type Processor interface {
	Process(img image.Image) (Outcome, error)
	Reset()
	Halt(engaged bool)
	Halted() bool
}

var (
	_ Processor = (*Vision)(nil)
	_ Processor = (*Ambient)(nil)
)

// Vision is one detection pipeline. It is not safe for concurrent use:
// monitors keep per-frame state.
type Vision struct {
	Name       string
	Preprocess imaging.PreprocessOptions
	Detector   detection.Detector
	Director   *Director

	// Sorter orders regions before trimming. Nil keeps detection order.
	Sorter detection.SorterFactory

	Camera CameraSettings

	// Stopper is engaged by Halt. It must be part of the director's chain.
	Stopper *Stopper

	logger *zap.Logger
}

// Process preprocesses img, detects regions in it and returns the monitored
// directive.
func (v *Vision) Process(img image.Image) (Outcome, error) {
	if v.Detector == nil || v.Director == nil {
		return Outcome{}, errors.New("vision is missing a detector or director")
	}
	logger := logging.OrNop(v.logger)

	frame, err := imaging.Preprocess(img, v.Preprocess)
	if err != nil {
		return Outcome{}, fmt.Errorf("vision %s: %w", v.Name, err)
	}
	regions, err := v.Detector.Detect(frame)
	if err != nil {
		return Outcome{}, fmt.Errorf("vision %s: detect: %w", v.Name, err)
	}

	var sorter director.Sorter[detection.Region]
	if v.Sorter != nil {
		sorter = director.Sorter[detection.Region](v.Sorter(frame.Bounds()))
	}
	selected, ok := v.Director.Select(regions, sorter)

	// Selection already happened, so Direct sees a satisfied, trimmed set.
	directive, err := v.Director.Direct(selected, frame, v.Camera, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("vision %s: %w", v.Name, err)
	}

	logger.Debug("frame directed",
		zap.String("vision", v.Name),
		zap.Int("detected", len(regions)),
		zap.Int("selected", len(selected)),
		zap.Bool("directed", ok),
		zap.Any("directive", directive),
	)

	return Outcome{
		Vision:    v.Name,
		Directive: directive,
		Regions:   selected,
		Detected:  len(regions),
		Directed:  ok,
	}, nil
}

// Reset clears the state of every stateful monitor.
func (v *Vision) Reset() {
	if v.Director != nil {
		monitor.ResetAll(v.Director.Monitors())
	}
}

// Halt engages or releases the vision's stopper.
func (v *Vision) Halt(engaged bool) {
	if v.Stopper == nil {
		return
	}
	if engaged {
		v.Stopper.Engage()
	} else {
		v.Stopper.Release()
	}
}

// Halted reports whether the stopper is engaged.
func (v *Vision) Halted() bool {
	return v.Stopper != nil && v.Stopper.Engaged()
}
