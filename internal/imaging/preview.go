package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultPreviewGridColor is the gridline color used when none is given.
const DefaultPreviewGridColor = "#B5B5B5"

// PreviewOptions controls the raster preview of a sampled grid.
type PreviewOptions struct {
	// CellWidth and CellHeight are the size of one stitch in pixels.
	CellWidth  int
	CellHeight int

	// GridColor is a "#RRGGBB" or "#RRGGBBAA" gridline color. An empty or
	// invalid value falls back to DefaultPreviewGridColor. Set NoGrid to
	// omit gridlines entirely.
	GridColor string
	NoGrid    bool
}

// DefaultPreviewOptions returns 20 pixel wide cells whose height follows the
// default gauge.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		CellWidth:  20,
		CellHeight: 20 * DefaultGaugeStitches / DefaultGaugeRows,
		GridColor:  DefaultPreviewGridColor,
	}
}

// PreviewResult contains a base64 encoded PNG preview.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders a row-major cell sequence as a raster image.
//
// Missing cells are left fully transparent. Every cell becomes a CellWidth x CellHeight block. The cells are first
// written one pixel each and then upscaled with nearest-neighbor resampling,
// so block interiors are exactly the cell color. Gridlines one pixel wide are
// drawn on the left and top edge of every block and along the right and
// bottom edge of the image.
func Preview(cells []CellColor, columns, rows int, opts PreviewOptions) (*image.NRGBA, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", columns, rows)
	}
	if len(cells) != columns*rows {
		return nil, fmt.Errorf("expected %d cells, got %d", columns*rows, len(cells))
	}
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", opts.CellWidth, opts.CellHeight)
	}

	small := image.NewNRGBA(image.Rect(0, 0, columns, rows))
	for i, c := range cells {
		if c.Missing {
			continue
		}
		r, g, b := c.Color.RGB255()
		small.SetNRGBA(i%columns, i/columns, color.NRGBA{R: r, G: g, B: b, A: 255})
	}

	width := columns * opts.CellWidth
	height := rows * opts.CellHeight
	result := imaging.Resize(small, width, height, imaging.NearestNeighbor)

	if opts.NoGrid {
		return result, nil
	}

	gridColor, err := parseHexColor(opts.GridColor)
	if err != nil {
		gridColor, _ = parseHexColor(DefaultPreviewGridColor)
	}
	grid := color.NRGBA{R: gridColor.R, G: gridColor.G, B: gridColor.B, A: gridColor.A}

	// Vertical lines
	for x := 0; x <= width; x += opts.CellWidth {
		px := min(x, width-1)
		for y := 0; y < height; y++ {
			result.SetNRGBA(px, y, grid)
		}
	}

	// Horizontal lines
	for y := 0; y <= height; y += opts.CellHeight {
		py := min(y, height-1)
		for x := 0; x < width; x++ {
			result.SetNRGBA(x, py, grid)
		}
	}

	return result, nil
}

// EncodePreview writes img to w as PNG.
func EncodePreview(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// PreviewBase64 renders a preview and returns it base64 encoded.
func PreviewBase64(cells []CellColor, columns, rows int, opts PreviewOptions) (*PreviewResult, error) {
	img, err := Preview(cells, columns, rows, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodePreview(&buf, img); err != nil {
		return nil, err
	}

	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
