package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ironsheep/vision-director/internal/config"
)

// twoBlobFrame returns a black 100x80 frame with a small blob on the left
// (100 px, center (10,10)) and a large one on the right (900 px, center (75,35)).
func twoBlobFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	fill := func(x1, y1, x2, y2 int, c color.Color) {
		for y := y1; y < y2; y++ {
			for x := x1; x < x2; x++ {
				img.Set(x, y, c)
			}
		}
	}
	fill(0, 0, 100, 80, color.Black)
	fill(5, 5, 15, 15, color.White)
	fill(60, 20, 90, 50, color.White)
	return img
}

func buildVision(t *testing.T, doc string) *Vision {
	t.Helper()
	cfg, err := config.Parse([]byte(doc), config.FormatTOML)
	require.NoError(t, err)
	v, err := FromConfig(cfg.Pipeline, zaptest.NewLogger(t))
	require.NoError(t, err)
	return v
}

func TestProcess_SortsAndTrims(t *testing.T) {
	v := buildVision(t, `
name = "blobs"
target_amount = 1
sorter = "area"
failure_value = "lost"
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)

	assert.Equal(t, "blobs", out.Vision)
	assert.True(t, out.Directed)
	assert.Equal(t, 2, out.Detected)
	require.Len(t, out.Regions, 1)
	assert.Equal(t, 900, out.Regions[0].Pixels)
	assert.InDelta(t, 0.5, out.Directive, 1e-9)
}

func TestProcess_DetectionOrderWithoutSorter(t *testing.T) {
	v := buildVision(t, `target_amount = 1`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)

	require.Len(t, out.Regions, 1)
	assert.Equal(t, 100, out.Regions[0].Pixels, "raster order finds the top-left blob first")
	assert.InDelta(t, -0.8, out.Directive, 1e-9)
}

func TestProcess_GateFailureUsesFailureValue(t *testing.T) {
	v := buildVision(t, `
target_amount = 3
failure_value = "lost"
sorter = "area"
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)

	assert.False(t, out.Directed)
	assert.Equal(t, "lost", out.Directive)
	assert.Len(t, out.Regions, 2)
	assert.Equal(t, 2, out.Detected)
}

func TestProcess_UnboundedCount(t *testing.T) {
	v := buildVision(t, `
target_amount = 0
directing = "count"
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.Equal(t, 2, out.Directive)
}

func TestProcess_PreprocessROI(t *testing.T) {
	v := buildVision(t, `
target_amount = 0
directing = "count"

[preprocess]
roi = [50, 0, 100, 80]
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Directive, "the left blob is cropped away")
}

func TestProcess_StopWhenCloseEndsChain(t *testing.T) {
	v := buildVision(t, `
target_amount = 1
sorter = "area"

[[monitors]]
kind = "stop_when_close"
threshold = 500
stop = "stop"

[[monitors]]
kind = "clamp"
min = -0.1
max = 0.1
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.Equal(t, "stop", out.Directive)
}

func TestProcess_MonitorsApplyInOrder(t *testing.T) {
	v := buildVision(t, `
target_amount = 1
sorter = "area"

[[monitors]]
kind = "clamp"
min = -0.1
max = 0.1

[[monitors]]
kind = "pid"
kp = 2
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.InDelta(t, 0.2, out.Directive, 1e-9)
}

func TestHalt(t *testing.T) {
	v := buildVision(t, `
target_amount = 1
failure_value = "lost"
`)
	assert.False(t, v.Halted())

	v.Halt(true)
	assert.True(t, v.Halted())
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.Equal(t, "lost", out.Directive)

	v.Halt(false)
	out, err = v.Process(twoBlobFrame())
	require.NoError(t, err)
	assert.InDelta(t, -0.8, out.Directive, 1e-9)
}

func TestFromConfig_StopperPlacement(t *testing.T) {
	v := buildVision(t, `
target_amount = 1

[[monitors]]
kind = "clamp"
min = -1
max = 1

[[monitors]]
kind = "stopper"
stop = "halted"
`)
	chain := v.Director.Monitors()
	require.Len(t, chain, 2)
	assert.Same(t, v.Stopper, chain[1])
	assert.Equal(t, "halted", v.Stopper.Stop)

	v = buildVision(t, `target_amount = 1`)
	chain = v.Director.Monitors()
	require.Len(t, chain, 1)
	assert.Same(t, v.Stopper, chain[0])
}

func TestFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit func(p *config.Pipeline)
	}{
		{"unknown directing", func(p *config.Pipeline) { p.Directing = "spiral" }},
		{"unknown sorter", func(p *config.Pipeline) { p.Sorter = "random" }},
		{"bad sort color", func(p *config.Pipeline) { p.Sorter, p.SortColor = "color", "orange" }},
		{"bad target", func(p *config.Pipeline) { p.TargetAmount = "two" }},
		{"unknown detector", func(p *config.Pipeline) { p.Detector.Kind = "sonar" }},
		{"two stoppers", func(p *config.Pipeline) {
			p.Monitors = []config.Monitor{{Kind: config.MonitorStopper}, {Kind: config.MonitorStopper}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := config.DefaultPipeline()
			tt.edit(&p)
			_, err := FromConfig(p, nil)
			assert.Error(t, err)
		})
	}
}

func TestReset_ClearsMonitorState(t *testing.T) {
	v := buildVision(t, `
target_amount = 1
failure_value = "lost"

[[monitors]]
kind = "hold"
frames = 5
`)
	out, err := v.Process(twoBlobFrame())
	require.NoError(t, err)
	held := out.Directive

	empty := image.NewRGBA(image.Rect(0, 0, 100, 80))
	out, err = v.Process(empty)
	require.NoError(t, err)
	assert.Equal(t, held, out.Directive, "hold bridges the dropout")

	v.Reset()
	out, err = v.Process(empty)
	require.NoError(t, err)
	assert.Equal(t, "lost", out.Directive)
}

func TestProcess_NilImage(t *testing.T) {
	v := buildVision(t, ``)
	_, err := v.Process(nil)
	assert.Error(t, err)
}

func TestProcess_UnboundedEmptyFrameReachesMonitors(t *testing.T) {
	v := buildVision(t, `
target_amount = 0
failure_value = "lost"

[[monitors]]
kind = "pid"
kp = 2
`)
	dark := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := 3; i < len(dark.Pix); i += 4 {
		dark.Pix[i] = 0xff
	}

	out, err := v.Process(dark)
	require.NoError(t, err)
	assert.True(t, out.Directed)
	assert.Zero(t, out.Detected)
	assert.Nil(t, out.Directive, "nothing to steer toward; the PID passes nil through")

	v.Halt(true)
	out, err = v.Process(dark)
	require.NoError(t, err)
	assert.Equal(t, "lost", out.Directive, "the stopper still runs on empty frames")
}
