package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"
)

// FrameCache provides thread-safe caching of decoded frames keyed by path.
//
// Cached frames remain in memory until removed via Evict() or Clear().
type FrameCache struct {
	mu     sync.RWMutex
	frames map[string]image.Image
}

// NewFrameCache creates an empty frame cache.
func NewFrameCache() *FrameCache {
	return &FrameCache{
		frames: make(map[string]image.Image),
	}
}

// Load returns the frame stored at path, decoding it on first use.
//
// The frame is cached using the exact path string provided. Different paths
// to the same file (relative vs absolute) result in separate entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func (c *FrameCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.frames[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.frames[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}

// Clear removes all cached frames.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the frame cached for path, if any.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	delete(c.frames, path)
	c.mu.Unlock()
}

// LoadFile decodes the frame at path without caching it. Use it for files a
// camera overwrites in place.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a PNG, JPEG or GIF frame from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
