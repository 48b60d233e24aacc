package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded images keyed by their file path. Once an image is
// loaded, subsequent Load() calls for the same path return the cached copy
// without disk I/O. The command-line tool loads a single image and does not
// need a cache; the MCP server keeps one for the lifetime of the process so
// that repeated chart requests against the same picture decode it once.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*image.NRGBA
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*image.NRGBA),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// The image is decoded by Open and cached using the exact path string
// provided. Different paths to the same file (e.g., relative vs absolute)
// result in separate cache entries.
func (c *ImageCache) Load(path string) (*image.NRGBA, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*image.NRGBA)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Open reads and decodes the image at path.
//
// Any format registered with the standard library or disintegration/imaging
// is accepted (PNG, JPEG, GIF, BMP and TIFF). JPEG files are rotated according
// to their EXIF orientation tag so that the chart matches what an image viewer
// shows. The result is converted to non-premultiplied RGBA with its origin at
// (0,0), which lets the sampler read 8-bit components directly.
//
// # Errors
//
//   - Returns *InputNotFoundError if the file does not exist or cannot be read
//   - Returns a wrapped decode error if the file is not a supported image
func Open(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return imaging.Clone(img), nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format, based on the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
//
// The format is determined by file extension using imaging.FormatFromFilename;
// unrecognized extensions report "unknown".
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// ChartPath derives the default chart output path for an input image by
// replacing its extension with ".svg".
func ChartPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
}
