package directions

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/vision-director/internal/detection"
)

func at(x, y int) detection.Region {
	return detection.Region{Center: detection.Point{X: x, Y: y}}
}

func TestHorizontalOffset(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))

	tests := []struct {
		name    string
		regions []detection.Region
		want    float64
	}{
		{"center", []detection.Region{at(100, 50)}, 0},
		{"left edge", []detection.Region{at(0, 50)}, -1},
		{"right quarter", []detection.Region{at(150, 50)}, 0.5},
		{"mean of two", []detection.Region{at(50, 0), at(150, 0)}, 0},
		{"beyond frame clamps", []detection.Region{at(400, 0)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HorizontalOffset(tt.regions, frame)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	got, err := HorizontalOffset(nil, frame)
	require.NoError(t, err)
	assert.Nil(t, got, "no regions means no steering value")

	got, err = VerticalOffset([]detection.Region{}, frame)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVerticalOffset_OffsetFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 100, 10, 200))
	got, err := VerticalOffset([]detection.Region{at(5, 125)}, frame)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, got, 1e-9)
}

func TestCountAndTextToken(t *testing.T) {
	got, err := Count([]detection.Region{at(0, 0), at(1, 1)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = TextToken([]detection.Region{{Text: " STOP "}, {Text: "go"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stop", got)

	got, err = TextToken(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"x_center", "y_center", "count", "text_token", "Horizontal"} {
		fn, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn, name)
	}
	_, err := Lookup("telepathy")
	assert.Error(t, err)
}
