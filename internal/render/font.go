package render

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the font-family written on SVG text. Widths are measured with
// Go Regular, so viewers that have it installed place labels exactly.
const FontFamily = "Go, sans-serif"

// TextMeasurer measures string advance widths with Go Regular.
//
// Faces are created lazily for each font size and kept for reuse. A
// TextMeasurer is safe for concurrent use.
type TextMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

var (
	defaultMeasurer     *TextMeasurer
	defaultMeasurerOnce sync.Once
)

// DefaultTextMeasurer returns the shared Go Regular measurer.
func DefaultTextMeasurer() *TextMeasurer {
	defaultMeasurerOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			panic(err) // embedded font
		}
		defaultMeasurer = &TextMeasurer{
			font:  f,
			faces: make(map[float64]font.Face),
		}
	})
	return defaultMeasurer
}

// Advance returns the advance width of s at size, in the same units as size.
func (m *TextMeasurer) Advance(s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}

	// Faces keep glyph caches, so measuring holds the lock too.
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		// Fall back to an average glyph width.
		return float64(len(s)) * size * 0.6
	}

	return float64(font.MeasureString(face, s)) / 64
}

// face must be called with m.mu held.
func (m *TextMeasurer) face(size float64) (font.Face, error) {
	if face, ok := m.faces[size]; ok {
		return face, nil
	}

	// At 72 DPI one point is one user unit.
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	m.faces[size] = face
	return face, nil
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
