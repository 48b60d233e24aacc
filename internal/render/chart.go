package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/stitchify/internal/threads"
)

// TextMode selects what is written inside each chart cell.
type TextMode int

const (
	// TextThreads writes each cell's thread label.
	TextThreads TextMode = iota
	// TextRuns writes the length of each same-colored run at its first cell.
	TextRuns
	// TextNone leaves the cells blank.
	TextNone
	// TextRuler writes the row number in every cell that differs from the
	// cell to its left, so the row can be followed across the chart.
	TextRuler
)

func (m TextMode) String() string {
	switch m {
	case TextRuns:
		return "runs"
	case TextNone:
		return "none"
	case TextRuler:
		return "ruler"
	default:
		return "threads"
	}
}

// ParseTextMode parses "threads", "runs", "ruler" or "none".
func ParseTextMode(s string) (TextMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "threads":
		return TextThreads, nil
	case "runs":
		return TextRuns, nil
	case "none":
		return TextNone, nil
	case "ruler":
		return TextRuler, nil
	default:
		return TextThreads, fmt.Errorf("unknown text mode %q (want threads, runs, ruler or none)", s)
	}
}

// Default layout values.
const (
	DefaultBoxWidth      = 20.0
	DefaultGaugeStitches = 22.0
	DefaultGaugeRows     = 30.0
)

var (
	gridColor  = colorful.Color{R: 0.71, G: 0.71, B: 0.71}
	labelColor = colorful.Color{}
	lightText  = colorful.Color{R: 1, G: 1, B: 1}
)

// Options controls chart layout.
type Options struct {
	BoxWidth      float64
	GaugeStitches float64
	GaugeRows     float64
	Text          TextMode

	// ThreadCounts and ColorCounts add legends below the chart listing the
	// stitches and estimated yarn of every thread and every color.
	ThreadCounts bool
	ColorCounts  bool
	// CmPerStitch is the yarn used by one stitch. Zero estimates it from
	// GaugeStitches.
	CmPerStitch float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		BoxWidth:      DefaultBoxWidth,
		GaugeStitches: DefaultGaugeStitches,
		GaugeRows:     DefaultGaugeRows,
		Text:          TextThreads,
	}
}

// Validate reports whether the options describe a drawable chart.
func (o Options) Validate() error {
	if o.BoxWidth <= 0 {
		return fmt.Errorf("box width must be positive, got %v", o.BoxWidth)
	}
	if o.GaugeStitches <= 0 || o.GaugeRows <= 0 {
		return fmt.Errorf("gauge must be positive, got %v stitches and %v rows", o.GaugeStitches, o.GaugeRows)
	}
	if !(o.CmPerStitch >= 0) || math.IsInf(o.CmPerStitch, 0) {
		return fmt.Errorf("yarn per stitch must be zero or positive, got %v cm", o.CmPerStitch)
	}
	return nil
}

// Layout holds the derived sizes of a chart in user units.
type Layout struct {
	BoxWidth  float64
	BoxHeight float64
	LineWidth float64
	FontSize  float64
	Width     float64
	Height    float64
}

// NewLayout computes the layout of a columns x rows chart.
func NewLayout(columns, rows int, opts Options) Layout {
	bw := opts.BoxWidth
	bh := bw * opts.GaugeStitches / opts.GaugeRows
	lw := bw / 6

	return Layout{
		BoxWidth:  bw,
		BoxHeight: bh,
		LineWidth: lw,
		FontSize:  bh * 0.6,
		Width:     float64(columns+1)*bw + lw/2,
		Height:    float64(rows+1)*bh + lw/2,
	}
}

// Render draws p on a new SVG canvas sized to fit the chart and any legends.
func Render(p *threads.Pattern, opts Options) (*SVGCanvas, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	l := NewLayout(p.Columns, p.Rows, opts)
	width, height := l.Width, l.Height

	if ls := legends(p, opts); len(ls) > 0 {
		m := DefaultTextMeasurer()
		n := 0
		for _, lg := range ls {
			n = max(n, len(lg.rows))
			for _, r := range lg.rows {
				right := (float64(lg.column)+1.5)*l.BoxWidth + m.Advance(r.count, l.FontSize)
				width = max(width, right+l.LineWidth/2)
			}
		}
		height = float64(p.Rows+2+n)*l.BoxHeight + l.LineWidth/2
	}

	c := NewSVGCanvas(width, height)
	c.Translate(l.LineWidth/2, l.LineWidth/2)

	if err := Chart(c, p, opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Chart draws p on c: cell fills, gridlines, column and row numbers, crosses
// over missing cells, the text overlay selected by opts.Text and finally the
// legends.
func Chart(c Canvas, p *threads.Pattern, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if len(p.Cells) != p.Columns*p.Rows {
		return fmt.Errorf("pattern has %d cells, expected %d", len(p.Cells), p.Columns*p.Rows)
	}

	l := NewLayout(p.Columns, p.Rows, opts)

	drawCells(c, p, l)

	c.BeginGroup("grid")
	drawGrid(c, 0, 0, p.Columns, p.Rows, l)
	c.EndGroup()

	drawNumbers(c, p.Columns, p.Rows, l)
	drawMissing(c, p, l)

	switch opts.Text {
	case TextThreads:
		drawThreadLabels(c, p, l)
	case TextRuns:
		drawRunLengths(c, p, l)
	case TextRuler:
		drawRulers(c, p, l)
	}

	for _, lg := range legends(p, opts) {
		drawLegend(c, lg, p.Rows+2, l)
	}
	return nil
}

func drawCells(c Canvas, p *threads.Pattern, l Layout) {
	c.BeginGroup("boxes")
	for y := 0; y < p.Rows; y++ {
		for x := 0; x < p.Columns; x++ {
			cell := p.Cell(x, y)
			if cell.Missing {
				continue
			}
			c.SetSourceRGB(cell.Color)
			c.Rectangle(float64(x)*l.BoxWidth, float64(y)*l.BoxHeight, l.BoxWidth, l.BoxHeight)
		}
	}
	c.EndGroup()
}

// drawGrid strokes the lines of a columns x rows block of boxes whose top
// left box is (x0, y0).
func drawGrid(c Canvas, x0, y0, columns, rows int, l Layout) {
	c.SetSourceRGB(gridColor)
	c.SetLineWidth(l.LineWidth)
	c.SetLineCap(LineCapSquare)

	left := float64(x0) * l.BoxWidth
	top := float64(y0) * l.BoxHeight

	for x := 0; x <= columns; x++ {
		c.MoveTo(left+float64(x)*l.BoxWidth, top)
		c.RelLineTo(0, float64(rows)*l.BoxHeight)
	}
	for y := 0; y <= rows; y++ {
		c.MoveTo(left, top+float64(y)*l.BoxHeight)
		c.RelLineTo(float64(columns)*l.BoxWidth, 0)
	}
	c.Stroke()
}

// drawNumbers labels columns from the right and rows from the bottom.
func drawNumbers(c Canvas, columns, rows int, l Layout) {
	c.BeginGroup("numbers")
	c.SetSourceRGB(labelColor)
	c.SetFontSize(l.FontSize)

	for x := 0; x < columns; x++ {
		showCentred(c, strconv.Itoa(x+1), columns-1-x, rows, l)
	}
	for y := 0; y < rows; y++ {
		showCentred(c, strconv.Itoa(y+1), columns, rows-1-y, l)
	}
	c.EndGroup()
}

// drawMissing crosses out every missing cell with thin gridline colored
// diagonals.
func drawMissing(c Canvas, p *threads.Pattern, l Layout) {
	started := false
	for y := 0; y < p.Rows; y++ {
		for x := 0; x < p.Columns; x++ {
			if !p.Cell(x, y).Missing {
				continue
			}
			if !started {
				c.BeginGroup("missing-stitches")
				c.SetSourceRGB(gridColor)
				c.SetLineWidth(l.LineWidth / 2)
				c.SetLineCap(LineCapButt)
				started = true
			}
			left, top := float64(x)*l.BoxWidth, float64(y)*l.BoxHeight
			c.MoveTo(left, top)
			c.RelLineTo(l.BoxWidth, l.BoxHeight)
			c.MoveTo(left+l.BoxWidth, top)
			c.RelLineTo(-l.BoxWidth, l.BoxHeight)
		}
	}
	if started {
		c.Stroke()
		c.EndGroup()
	}
}

func drawThreadLabels(c Canvas, p *threads.Pattern, l Layout) {
	c.BeginGroup("thread-labels")
	for y := 0; y < p.Rows; y++ {
		for x := 0; x < p.Columns; x++ {
			cell := p.Cell(x, y)
			if cell.Missing {
				continue
			}
			c.SetSourceRGB(TextColor(cell.Color))
			showCentred(c, p.Threads[cell.Thread].Label, x, y, l)
		}
	}
	c.EndGroup()
}

func drawRunLengths(c Canvas, p *threads.Pattern, l Layout) {
	c.BeginGroup("run-counts")
	for _, r := range threads.Runs(p) {
		c.SetSourceRGB(cellTextColor(r.Color, r.Missing))
		showCentred(c, strconv.Itoa(r.Length), r.Start.X, r.Start.Y, l)
	}
	c.EndGroup()
}

// drawRulers writes the row number wherever a cell differs from its left
// neighbour in color, thread or presence.
func drawRulers(c Canvas, p *threads.Pattern, l Layout) {
	c.BeginGroup("midline-rulers")
	for y := 0; y < p.Rows; y++ {
		for x := 1; x < p.Columns; x++ {
			cell := p.Cell(x, y)
			if cell == p.Cell(x-1, y) {
				continue
			}
			c.SetSourceRGB(cellTextColor(cell.Color, cell.Missing))
			showCentred(c, strconv.Itoa(p.Rows-y), x, y, l)
		}
	}
	c.EndGroup()
}

// showCentred writes s horizontally centred in box (x, y).
func showCentred(c Canvas, s string, x, y int, l Layout) {
	adv := c.TextAdvance(s)
	c.ShowText(
		(float64(x)+0.5)*l.BoxWidth-adv/2,
		(float64(y)+0.7)*l.BoxHeight,
		s,
	)
}

// TextColor returns white for dark backgrounds and black otherwise.
func TextColor(bg colorful.Color) colorful.Color {
	if bg.R+bg.G+bg.B < 1.5 {
		return lightText
	}
	return labelColor
}

// cellTextColor is TextColor for a cell that may have no fill.
func cellTextColor(bg colorful.Color, missing bool) colorful.Color {
	if missing {
		return labelColor
	}
	return TextColor(bg)
}
