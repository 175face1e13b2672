package vision

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/config"
	"github.com/ironsheep/vision-director/internal/detection"
	"github.com/ironsheep/vision-director/internal/directions"
	"github.com/ironsheep/vision-director/internal/director"
	"github.com/ironsheep/vision-director/internal/imaging"
	"github.com/ironsheep/vision-director/internal/logging"
	"github.com/ironsheep/vision-director/internal/monitor"
	"github.com/ironsheep/vision-director/internal/ocr"
)

// Build returns the processor described by cfg: a Vision, or an Ambient when
// cfg has an ambient section.
func Build(cfg *config.File, logger *zap.Logger) (Processor, error) {
	main, err := FromConfig(cfg.Pipeline, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Ambient == nil {
		return main, nil
	}
	ambient, err := FromConfig(cfg.Ambient.Vision, logger)
	if err != nil {
		return nil, fmt.Errorf("ambient: %w", err)
	}
	return NewAmbient(main, ambient, cfg.Ambient.MainAmount, cfg.Ambient.StartAmbient), nil
}

// FromConfig builds a single Vision.
//
// Every vision gets a Stopper for Halt. It is placed where the configuration
// lists a "stopper" monitor, or at the front of the chain otherwise.
func FromConfig(p config.Pipeline, logger *zap.Logger) (*Vision, error) {
	logger = logging.OrNop(logger).With(zap.String("vision", p.Name))

	target, err := p.Target()
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}
	directing, err := directions.Lookup(p.Directing)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}
	sorter, err := detection.LookupSorter(p.Sorter, p.SortColor)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}
	detector, err := buildDetector(p.Detector, logger)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}

	stopper := &Stopper{Stop: p.FailureValue}
	monitors, err := buildMonitors(p, stopper)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}

	d, err := director.New(director.Config[detection.Region, image.Image, CameraSettings, any]{
		Directing:    director.DirectingFunc[detection.Region, image.Image, any](directing),
		FailureValue: p.FailureValue,
		TargetAmount: target,
		Monitors:     monitors,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
	}

	var roi image.Rectangle
	if r := p.Preprocess.ROI; len(r) == 4 {
		roi = image.Rect(r[0], r[1], r[2], r[3])
	}

	logger.Debug("vision built",
		zap.Stringer("target_amount", target),
		zap.String("directing", p.Directing),
		zap.String("detector", p.Detector.Kind),
		zap.Int("monitors", len(monitors)),
	)

	return &Vision{
		Name: p.Name,
		Preprocess: imaging.PreprocessOptions{
			ROI:       roi,
			Width:     p.Preprocess.Width,
			Grayscale: p.Preprocess.Grayscale,
		},
		Detector: detector,
		Director: d,
		Sorter:   sorter,
		Camera: CameraSettings{
			HorizontalFOV: p.Camera.HorizontalFOV,
			VerticalFOV:   p.Camera.VerticalFOV,
			Position:      p.Camera.Position,
		},
		Stopper: stopper,
		logger:  logger,
	}, nil
}

func buildDetector(c config.Detector, logger *zap.Logger) (detection.Detector, error) {
	switch c.Kind {
	case config.DetectorBlob, "":
		tolerance := c.ColorTolerance
		if tolerance == 0 {
			tolerance = detection.DefaultColorTolerance
		}
		return detection.BlobDetector{
			BlurRadius:     c.BlurRadius,
			Threshold:      uint8(c.Threshold),
			Invert:         c.Invert,
			TargetColor:    c.TargetColor,
			ColorTolerance: tolerance,
			MinArea:        c.MinArea,
		}, nil
	case config.DetectorText:
		if !ocr.Available() {
			logger.Warn("text detector configured but OCR support is not compiled in; every frame will fail")
		}
		return ocr.TextDetector{Language: c.Language, MinConfidence: c.MinConfidence}, nil
	default:
		return nil, fmt.Errorf("unknown detector kind %q", c.Kind)
	}
}

func buildMonitors(p config.Pipeline, stopper *Stopper) ([]Monitor, error) {
	var chain []Monitor
	placed := false
	for i, m := range p.Monitors {
		switch m.Kind {
		case config.MonitorPID:
			chain = append(chain, &monitor.PID[detection.Region, image.Image, CameraSettings]{
				Kp: m.Kp, Ki: m.Ki, Kd: m.Kd,
				Setpoint:  m.Setpoint,
				OutputMin: m.Min,
				OutputMax: m.Max,
			})
		case config.MonitorClamp:
			chain = append(chain, &monitor.Clamp[detection.Region, image.Image, CameraSettings]{Min: m.Min, Max: m.Max})
		case config.MonitorSmooth:
			chain = append(chain, &monitor.Smooth[detection.Region, image.Image, CameraSettings]{Alpha: m.Alpha})
		case config.MonitorHold:
			chain = append(chain, &monitor.HoldLast[detection.Region, image.Image, CameraSettings]{
				Failure:   p.FailureValue,
				MaxFrames: m.Frames,
			})
		case config.MonitorStopWhenClose:
			chain = append(chain, &monitor.StopWhenClose[detection.Region, image.Image, CameraSettings]{
				Area:      regionArea,
				Threshold: m.Threshold,
				Stop:      m.Stop,
			})
		case config.MonitorStopper:
			if placed {
				return nil, fmt.Errorf("monitor %d: only one stopper is allowed", i)
			}
			if m.Stop != nil {
				stopper.Stop = m.Stop
			}
			chain = append(chain, stopper)
			placed = true
		default:
			return nil, fmt.Errorf("monitor %d: unknown kind %q", i, m.Kind)
		}
	}
	if !placed {
		chain = append([]Monitor{stopper}, chain...)
	}
	return chain, nil
}

func regionArea(r detection.Region) float64 { return float64(r.Area()) }
