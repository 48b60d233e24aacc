package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Default chart dimensions: 22 stitches across at a gauge of 22 stitches by
// 30 rows.
const (
	DefaultStitches      = 22
	DefaultGaugeStitches = 22
	DefaultGaugeRows     = 30
)

// Dimensions describes how an image is divided into stitches.
type Dimensions struct {
	// Stitches is the number of columns in the chart.
	Stitches int `json:"stitches"`

	// GaugeStitches and GaugeRows give the fabric gauge. Only their ratio
	// matters; both are commonly quoted per 10 cm.
	GaugeStitches float64 `json:"gauge_stitches"`
	GaugeRows     float64 `json:"gauge_rows"`
}

// DefaultDimensions returns the standard 22 stitch, 22x30 gauge dimensions.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Stitches:      DefaultStitches,
		GaugeStitches: DefaultGaugeStitches,
		GaugeRows:     DefaultGaugeRows,
	}
}

// Validate checks that every dimension is positive and finite.
func (d Dimensions) Validate() error {
	if d.Stitches <= 0 {
		return fmt.Errorf("stitch count must be positive, got %d", d.Stitches)
	}
	if !(d.GaugeStitches > 0) || math.IsInf(d.GaugeStitches, 0) {
		return fmt.Errorf("invalid gauge stitches: %v", d.GaugeStitches)
	}
	if !(d.GaugeRows > 0) || math.IsInf(d.GaugeRows, 0) {
		return fmt.Errorf("invalid gauge rows: %v", d.GaugeRows)
	}
	return nil
}

// Grid maps chart cells to source pixel regions.
type Grid struct {
	Width        int     `json:"width"`  // Source image width in pixels
	Height       int     `json:"height"` // Source image height in pixels
	Columns      int     `json:"columns"`
	Rows         int     `json:"rows"`
	SampleWidth  float64 `json:"sample_width"`
	SampleHeight float64 `json:"sample_height"`
}

// NewGrid computes the grid for an image of the given size.
//
//	SampleWidth  = width / Stitches
//	SampleHeight = SampleWidth * GaugeStitches / GaugeRows
//	Rows         = floor(height / SampleHeight)
//
// Every cell must cover at least one source pixel in each direction, so the
// grid never has more columns than the image is wide or more rows than it is
// tall.
//
// # Errors
//
//   - Returns an error if the dimensions are invalid or the image is empty
//   - Returns *EmptyRegionError for the first empty column when Stitches
//     exceeds the image width
//   - Returns ErrNoRows if the image is shorter than one sample row
//   - Returns an error wrapping ErrRowsTooThin if the gauge makes rows
//     shorter than one pixel
func NewGrid(width, height int, d Dimensions) (*Grid, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", width, height)
	}

	sampleWidth := float64(width) / float64(d.Stitches)
	sampleHeight := sampleWidth * d.GaugeStitches / d.GaugeRows

	if d.Stitches > width {
		return nil, &EmptyRegionError{Region: firstEmptyColumn(sampleWidth, sampleHeight, width, height)}
	}

	rows := math.Floor(float64(height) / sampleHeight)
	if rows > float64(height) {
		return nil, fmt.Errorf("%w: %v rows from %d pixels", ErrRowsTooThin, rows, height)
	}
	if rows < 1 {
		return nil, ErrNoRows
	}

	return &Grid{
		Width:        width,
		Height:       height,
		Columns:      d.Stitches,
		Rows:         int(rows),
		SampleWidth:  sampleWidth,
		SampleHeight: sampleHeight,
	}, nil
}

// firstEmptyColumn finds the first column of the top row whose rounded edges
// coincide. One always exists within width+1 columns once there are more
// columns than pixels.
func firstEmptyColumn(sampleWidth, sampleHeight float64, width, height int) Region {
	g := Grid{Width: width, Height: height, SampleWidth: sampleWidth, SampleHeight: sampleHeight}
	for x := 0; ; x++ {
		if r := g.Region(x, 0); r.X2 <= r.X1 {
			return r
		}
	}
}

// Region returns the source pixels covered by cell (x, y), relative to the
// image origin.
//
// Edges are rounded half-to-even, then clamped to the image bounds.
func (g *Grid) Region(x, y int) Region {
	return Region{
		X1: int(math.RoundToEven(g.SampleWidth * float64(x))),
		Y1: int(math.RoundToEven(g.SampleHeight * float64(y))),
		X2: min(int(math.RoundToEven(g.SampleWidth*float64(x+1))), g.Width),
		Y2: min(int(math.RoundToEven(g.SampleHeight*float64(y+1))), g.Height),
	}
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int {
	return g.Columns * g.Rows
}

// Sample partitions img into a grid and returns the sampled content of every
// cell in row-major order. Images whose bounds do not start at (0, 0), such
// as sub-images, are sampled relative to their own origin.
//
// Sampling is a pure function of the pixel data: calling Sample twice on the
// same image returns identical sequences.
//
// # Errors
//
//   - Returns the NewGrid errors for invalid dimensions or a grid finer than
//     the image
//   - Returns *EmptyRegionError if a cell maps to zero pixels
func Sample(img *image.NRGBA, d Dimensions) (*Grid, []CellColor, error) {
	bounds := img.Bounds()
	grid, err := NewGrid(bounds.Dx(), bounds.Dy(), d)
	if err != nil {
		return nil, nil, err
	}

	sampler := NewSampler(img)
	cells := make([]CellColor, 0, grid.Len())

	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Columns; x++ {
			cell, err := sampler.Cell(grid.Region(x, y).Add(bounds.Min))
			if err != nil {
				return nil, nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			cells = append(cells, cell)
		}
	}

	return grid, cells, nil
}

// Colors returns the colors of cells, with missing cells left as the zero
// color.
func Colors(cells []CellColor) []colorful.Color {
	colors := make([]colorful.Color, len(cells))
	for i, c := range cells {
		colors[i] = c.Color
	}
	return colors
}
