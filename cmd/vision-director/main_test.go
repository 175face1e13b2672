package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, dir, name string, blobs ...image.Rectangle) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for _, b := range blobs {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				img.Set(x, y, color.White)
			}
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vision-director dev")
	assert.Contains(t, out, "Git commit: unknown")
}

func TestDirect(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "steer.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
name = "steer"
target_amount = 1
failure_value = "lost"

[[monitors]]
kind = "hold"
frames = 1
`), 0o644))

	right := writeFrame(t, dir, "a.png", image.Rect(60, 20, 90, 50))
	empty := writeFrame(t, dir, "b.png")

	out, err := execute(t, "direct", "--config", cfgPath, right, empty, empty)
	require.NoError(t, err)

	var directives []interface{}
	scanner := bufio.NewScanner(bytes.NewBufferString(out))
	for scanner.Scan() {
		var line struct {
			Frame     string      `json:"frame"`
			Vision    string      `json:"vision"`
			Directive interface{} `json:"directive"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		assert.Equal(t, "steer", line.Vision)
		directives = append(directives, line.Directive)
	}
	require.Len(t, directives, 3)
	assert.InDelta(t, 0.5, directives[0], 1e-9)
	assert.InDelta(t, 0.5, directives[1], 1e-9, "hold bridges one dropout")
	assert.Equal(t, "lost", directives[2])
}

func TestDirect_Errors(t *testing.T) {
	_, err := execute(t, "direct")
	assert.Error(t, err, "at least one frame is required")

	_, err = execute(t, "direct", "--config", "/nonexistent/steer.toml", "frame.png")
	assert.Error(t, err)

	_, err = execute(t, "direct", "/nonexistent/frame.png")
	assert.Error(t, err)
}
