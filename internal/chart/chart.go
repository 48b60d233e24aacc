// Package chart runs the full image to stitch chart pipeline.
//
// Build samples an image into a grid of cells and groups the cells into
// threads. Cells where the image is mostly transparent are missing: they
// belong to no thread and are crossed out on the chart. The resulting Chart can then be written as an SVG chart, as
// a PNG preview of the sampled colors, or listed as a thread table.
package chart

import (
	"fmt"
	"image"
	"io"
	"math"
	"text/tabwriter"

	"github.com/ironsheep/stitchify/internal/imaging"
	"github.com/ironsheep/stitchify/internal/render"
	"github.com/ironsheep/stitchify/internal/threads"
)

// Options configures a chart.
type Options struct {
	Dimensions imaging.Dimensions
	Text       render.TextMode

	// ThreadCounts and ColorCounts add the thread and color legends to the
	// SVG chart.
	ThreadCounts bool
	ColorCounts  bool
	// CmPerStitch is the yarn used by one stitch in the legends. Zero
	// estimates it from the gauge.
	CmPerStitch float64
}

// DefaultOptions returns 22 stitches at a 22x30 gauge with thread labels.
func DefaultOptions() Options {
	return Options{
		Dimensions: imaging.DefaultDimensions(),
		Text:       render.TextThreads,
	}
}

// RenderOptions returns the layout options matching o.
func (o Options) RenderOptions() render.Options {
	ro := render.DefaultOptions()
	ro.GaugeStitches = o.Dimensions.GaugeStitches
	ro.GaugeRows = o.Dimensions.GaugeRows
	ro.Text = o.Text
	ro.ThreadCounts = o.ThreadCounts
	ro.ColorCounts = o.ColorCounts
	ro.CmPerStitch = o.CmPerStitch
	return ro
}

// PreviewOptions returns preview options whose cells have the same aspect
// ratio as the chart boxes.
func (o Options) PreviewOptions() imaging.PreviewOptions {
	po := imaging.DefaultPreviewOptions()
	h := math.Round(float64(po.CellWidth) * o.Dimensions.GaugeStitches / o.Dimensions.GaugeRows)
	if h >= 1 && !math.IsInf(h, 0) {
		po.CellHeight = int(h)
	}
	return po
}

// Chart is a sampled image with its thread assignment.
type Chart struct {
	Grid    *imaging.Grid
	Cells   []imaging.CellColor
	Pattern *threads.Pattern
	Options Options
}

// Build samples img and assigns threads to the resulting cells.
func Build(img *image.NRGBA, opts Options) (*Chart, error) {
	grid, sampled, err := imaging.Sample(img, opts.Dimensions)
	if err != nil {
		return nil, err
	}

	cells := make([]threads.Cell, len(sampled))
	for i, c := range sampled {
		cells[i] = threads.Cell{Color: c.Color, Missing: c.Missing}
	}

	p, err := threads.AssignCells(grid.Columns, grid.Rows, cells)
	if err != nil {
		return nil, err
	}

	return &Chart{
		Grid:    grid,
		Cells:   sampled,
		Pattern: p,
		Options: opts,
	}, nil
}

// Missing returns the number of cells without a stitch.
func (c *Chart) Missing() int {
	return len(c.Pattern.Cells) - c.Pattern.Stitches()
}

// Load opens the image at path and builds its chart.
func Load(path string, opts Options) (*Chart, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return Build(img, opts)
}

// SVG renders the chart.
func (c *Chart) SVG() (*render.SVGCanvas, error) {
	return render.Render(c.Pattern, c.Options.RenderOptions())
}

// WriteSVG renders the chart and writes it to path.
func (c *Chart) WriteSVG(path string) error {
	canvas, err := c.SVG()
	if err != nil {
		return err
	}
	return render.WriteSVG(path, canvas)
}

// Preview renders the sampled colors as a raster image.
func (c *Chart) Preview(opts imaging.PreviewOptions) (*image.NRGBA, error) {
	return imaging.Preview(c.Cells, c.Grid.Columns, c.Grid.Rows, opts)
}

// WritePreview writes the PNG preview to path.
func (c *Chart) WritePreview(path string, opts imaging.PreviewOptions) error {
	img, err := c.Preview(opts)
	if err != nil {
		return err
	}
	return render.WriteFile(path, func(w io.Writer) error {
		return imaging.EncodePreview(w, img)
	})
}

// ThreadInfo summarizes one thread for listings.
type ThreadInfo struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Stitches int    `json:"stitches"`
	// Column and Row locate the last stitch, numbered the way the chart
	// margins are: columns from the right and rows from the bottom, from 1.
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Threads lists the chart's threads in creation order.
func (c *Chart) Threads() []ThreadInfo {
	p := c.Pattern
	infos := make([]ThreadInfo, len(p.Threads))
	for i, t := range p.Threads {
		infos[i] = ThreadInfo{
			Label:    t.Label,
			Color:    t.Hex(),
			Stitches: t.Stitches,
			Column:   p.Columns - t.Column,
			Row:      p.Rows - t.Row,
		}
	}
	return infos
}

// ColorCount is the thread and stitch total for one color.
type ColorCount struct {
	Color    string `json:"color"`
	Threads  int    `json:"threads"`
	Stitches int    `json:"stitches"`
}

// ColorCounts totals threads and stitches for each color, in order of each
// color's first thread.
func (c *Chart) ColorCounts() []ColorCount {
	totals := threads.CountColors(c.Pattern)
	counts := make([]ColorCount, len(totals))
	for i, t := range totals {
		counts[i] = ColorCount{
			Color:    t.Color.Hex(),
			Threads:  t.Threads,
			Stitches: t.Stitches,
		}
	}
	return counts
}

// WriteThreadTable writes a tab aligned table of threads to w.
func (c *Chart) WriteThreadTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "THREAD\tCOLOR\tSTITCHES\tENDS AT")
	for _, t := range c.Threads() {
		fmt.Fprintf(tw, "%s\t%s\t%d\tcolumn %d, row %d\n", t.Label, t.Color, t.Stitches, t.Column, t.Row)
	}
	fmt.Fprintf(tw, "\n%d threads, %d stitches, %dx%d grid",
		len(c.Pattern.Threads), c.Pattern.Stitches(), c.Grid.Columns, c.Grid.Rows)
	if n := c.Missing(); n > 0 {
		fmt.Fprintf(tw, ", %d missing", n)
	}
	fmt.Fprintln(tw)

	return tw.Flush()
}
