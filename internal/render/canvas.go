package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"
)

// LineCap is the shape drawn at the ends of stroked lines.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

func (c LineCap) String() string {
	switch c {
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

// Canvas is the drawing surface used by the chart renderer.
//
// The current source color applies to fills, strokes and text alike.
type Canvas interface {
	// BeginGroup opens a named group; EndGroup closes the innermost one.
	BeginGroup(id string)
	EndGroup()

	SetSourceRGB(c colorful.Color)
	// Rectangle fills the rectangle with the source color.
	Rectangle(x, y, width, height float64)

	MoveTo(x, y float64)
	RelLineTo(dx, dy float64)
	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)
	// Stroke draws the current path and clears it.
	Stroke()

	SetFontSize(size float64)
	// TextAdvance returns the advance width of s at the current font size.
	TextAdvance(s string) float64
	// ShowText draws s with its baseline starting at (x, y).
	ShowText(x, y float64, s string)
}

// SVGCanvas is a Canvas that records drawing operations as SVG.
//
// Elements are written with svgo as they are drawn; the document header,
// which needs the final size and offset, is added by WriteTo. svgo takes
// integer positions, so fractional coordinates are carried in path data and
// text transforms.
type SVGCanvas struct {
	width, height float64
	tx, ty        float64

	source    colorful.Color
	lineWidth float64
	lineCap   LineCap
	fontSize  float64

	path strings.Builder

	measure *TextMeasurer
	body    bytes.Buffer
	doc     *svg.SVG
}

// NewSVGCanvas creates an empty canvas of the given size in user units.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	c := &SVGCanvas{
		width:     width,
		height:    height,
		lineWidth: 2,
		fontSize:  10,
		measure:   DefaultTextMeasurer(),
	}
	c.doc = svg.New(&c.body)
	return c
}

// Size returns the canvas width and height.
func (c *SVGCanvas) Size() (float64, float64) {
	return c.width, c.height
}

// Translate offsets everything drawn on the canvas.
func (c *SVGCanvas) Translate(dx, dy float64) {
	c.tx += dx
	c.ty += dy
}

func (c *SVGCanvas) BeginGroup(id string) {
	c.doc.Gid(id)
}

func (c *SVGCanvas) EndGroup() {
	c.doc.Gend()
}

func (c *SVGCanvas) SetSourceRGB(col colorful.Color) {
	c.source = col.Clamped()
}

func (c *SVGCanvas) Rectangle(x, y, width, height float64) {
	d := fmt.Sprintf("M %s %s h %s v %s h %s z", num(x), num(y), num(width), num(height), num(-width))
	c.doc.Path(d, attr("fill", c.source.Hex()))
}

func (c *SVGCanvas) MoveTo(x, y float64) {
	if c.path.Len() > 0 {
		c.path.WriteByte(' ')
	}
	fmt.Fprintf(&c.path, "M %s %s", num(x), num(y))
}

func (c *SVGCanvas) RelLineTo(dx, dy float64) {
	if c.path.Len() > 0 {
		c.path.WriteByte(' ')
	}
	fmt.Fprintf(&c.path, "l %s %s", num(dx), num(dy))
}

func (c *SVGCanvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

func (c *SVGCanvas) SetLineCap(lineCap LineCap) {
	c.lineCap = lineCap
}

func (c *SVGCanvas) Stroke() {
	if c.path.Len() == 0 {
		return
	}
	c.doc.Path(c.path.String(),
		attr("fill", "none"),
		attr("stroke", c.source.Hex()),
		attr("stroke-width", num(c.lineWidth)),
		attr("stroke-linecap", c.lineCap.String()),
	)
	c.path.Reset()
}

func (c *SVGCanvas) SetFontSize(size float64) {
	c.fontSize = size
}

func (c *SVGCanvas) TextAdvance(s string) float64 {
	return c.measure.Advance(s, c.fontSize)
}

func (c *SVGCanvas) ShowText(x, y float64, s string) {
	c.doc.Text(0, 0, s,
		attr("transform", translate(x, y)),
		attr("font-family", FontFamily),
		attr("font-size", num(c.fontSize)),
		attr("fill", c.source.Hex()),
	)
}

// WriteTo writes the complete SVG document to w.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	doc := svg.New(&buf)

	doc.Startraw(
		attr("width", num(c.width)),
		attr("height", num(c.height)),
		attr("viewBox", "0 0 "+num(c.width)+" "+num(c.height)),
	)
	translated := c.tx != 0 || c.ty != 0
	if translated {
		doc.Gtransform(translate(c.tx, c.ty))
	}
	buf.Write(c.body.Bytes())
	if translated {
		doc.Gend()
	}
	doc.End()

	return buf.WriteTo(w)
}

func attr(name, value string) string {
	return name + `="` + value + `"`
}

func translate(x, y float64) string {
	return "translate(" + num(x) + " " + num(y) + ")"
}

// num formats a coordinate with at most four decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(roundTo(v, 4), 'f', -1, 64)
}
