// Package imaging loads source images and samples them into a stitch grid.
//
// This package is the raster half of the chart pipeline. It decodes an input
// image, partitions it into a grid of cells sized for the target knitting or
// cross-stitch gauge, and reduces every cell to the single color that occurs
// most often within it. It also renders a small raster preview of a sampled
// grid for quick inspection.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (X1,Y1) is inclusive (top-left), (X2,Y2) is exclusive (bottom-right)
//
// Grid cells use the same orientation: cell (0,0) is the top-left cell and the
// cell sequence returned by Sample is row-major.
//
// # Gauge
//
// A stitch is not square. With a gauge of 22 stitches by 30 rows per 10 cm, a
// cell covers a source region that is wider than it is tall, so the sample
// height is derived from the sample width as:
//
//	sampleHeight = sampleWidth * GaugeStitches / GaugeRows
//
// The number of rows is truncated, so a partial final row of source pixels is
// dropped.
//
// # Color Representation
//
// Sampled colors are go-colorful values with each channel normalized to
// 0.0-1.0 by dividing the 8-bit component by 255. Two cells compare equal
// exactly when their 8-bit source colors are equal.
//
// # Error Handling
//
// Functions return typed errors that callers can match with errors.As:
//   - *InputNotFoundError: the input path is missing or unreadable
//   - *EmptyRegionError: a sampling region contains no pixels
//
// Decode failures and invalid dimensions are wrapped with fmt.Errorf.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. A Sampler reuses an internal
// counting buffer and must not be shared between goroutines.
package imaging
