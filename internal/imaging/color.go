package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Normalized converts the color to go-colorful's 0.0-1.0 representation by
// dividing each component by 255.
func (c RGBColor) Normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Add returns the region translated by p.
func (r Region) Add(p image.Point) Region {
	return Region{X1: r.X1 + p.X, Y1: r.Y1 + p.Y, X2: r.X2 + p.X, Y2: r.Y2 + p.Y}
}

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// AlphaThreshold is the lowest alpha value counted as a visible pixel.
// Pixels below it are treated as holes in the image.
const AlphaThreshold = 128

// CellColor is the sampled content of one chart cell. Missing is set when
// transparent pixels outnumber every visible color in the cell; Color is then
// the zero value.
type CellColor struct {
	Color   colorful.Color
	Missing bool
}

// sampleKey is one counting bucket. All transparent pixels share a bucket
// regardless of their RGB values.
type sampleKey struct {
	c           RGBColor
	transparent bool
}

// Sampler finds the most frequent color in regions of a single image.
//
// The counting buffers are kept between calls to avoid reallocating them for
// every cell; their contents are not reused between samples.
type Sampler struct {
	img    *image.NRGBA
	counts map[sampleKey]int
	order  []sampleKey
}

// NewSampler creates a sampler over img.
func NewSampler(img *image.NRGBA) *Sampler {
	return &Sampler{
		img:    img,
		counts: make(map[sampleKey]int),
	}
}

// MostFrequent returns the 8-bit color with the highest pixel count in
// region. Region coordinates are in the image's own coordinate space, so an
// image whose bounds do not start at (0, 0) must be addressed accordingly.
//
// Pixels are scanned top-to-bottom, left-to-right. When several colors share
// the highest count, the one whose first pixel appears earliest in that scan
// wins, so the result is deterministic for a given image.
//
// Pixels with alpha below AlphaThreshold all count towards a single
// transparent bucket. If that bucket wins, visible is false and the returned
// color is zero.
//
// # Errors
//
// Returns *EmptyRegionError if the region, after clipping to the image
// bounds, contains no pixels.
func (s *Sampler) MostFrequent(region Region) (c RGBColor, visible bool, err error) {
	clipped := image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(s.img.Bounds())
	if clipped.Empty() || region.Empty() {
		return RGBColor{}, false, &EmptyRegionError{Region: region}
	}

	clear(s.counts)
	s.order = s.order[:0]

	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		i := s.img.PixOffset(clipped.Min.X, y)
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			var k sampleKey
			if s.img.Pix[i+3] < AlphaThreshold {
				k.transparent = true
			} else {
				k.c = RGBColor{R: s.img.Pix[i], G: s.img.Pix[i+1], B: s.img.Pix[i+2]}
			}
			if s.counts[k] == 0 {
				s.order = append(s.order, k)
			}
			s.counts[k]++
			i += 4
		}
	}

	best := s.order[0]
	for _, k := range s.order[1:] {
		if s.counts[k] > s.counts[best] {
			best = k
		}
	}

	return best.c, !best.transparent, nil
}

// Cell samples region and returns it as a normalized chart cell.
func (s *Sampler) Cell(region Region) (CellColor, error) {
	c, visible, err := s.MostFrequent(region)
	if err != nil {
		return CellColor{}, err
	}
	if !visible {
		return CellColor{Missing: true}, nil
	}
	return CellColor{Color: c.Normalized()}, nil
}

// MostFrequentColor returns the most frequent color in region of img,
// normalized to 0.0-1.0 per channel. See Sampler.MostFrequent for the
// tie-breaking rule. A region dominated by transparent pixels yields black.
func MostFrequentColor(img *image.NRGBA, region Region) (colorful.Color, error) {
	cell, err := NewSampler(img).Cell(region)
	if err != nil {
		return colorful.Color{}, err
	}
	return cell.Color, nil
}
