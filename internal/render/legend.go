package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/stitchify/internal/threads"
)

// legend is a one column table drawn below the chart.
type legend struct {
	id     string
	column int // box column of the swatches
	rows   []legendRow
}

type legendRow struct {
	color colorful.Color
	label string // written inside the swatch, may be empty
	count string
}

// legends returns the legends selected by opts, in drawing order. Legends
// with no rows are left out.
func legends(p *threads.Pattern, opts Options) []legend {
	var ls []legend

	if opts.ThreadCounts && len(p.Threads) > 0 {
		lg := legend{id: "thread-counts", column: 1}
		for _, t := range p.Threads {
			lg.rows = append(lg.rows, legendRow{
				color: t.Color,
				label: t.Label,
				count: StitchCountText(t.Stitches, opts),
			})
		}
		ls = append(ls, lg)
	}

	if opts.ColorCounts && len(p.Threads) > 0 {
		lg := legend{id: "color-counts", column: 0}
		if opts.ThreadCounts {
			lg.column = 6
		}
		for _, cc := range colorsByStitches(p) {
			lg.rows = append(lg.rows, legendRow{
				color: cc.Color,
				count: StitchCountText(cc.Stitches, opts),
			})
		}
		ls = append(ls, lg)
	}

	return ls
}

// colorsByStitches returns the color totals of p, most stitches first. Equal
// totals keep the order of each color's first thread.
func colorsByStitches(p *threads.Pattern) []threads.ColorCount {
	counts := threads.CountColors(p)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Stitches > counts[j].Stitches
	})
	return counts
}

// drawLegend draws lg with its first row at box row top: a colored swatch per
// row, a grid around the swatches and the count to the right of each.
func drawLegend(c Canvas, lg legend, top int, l Layout) {
	c.BeginGroup(lg.id)

	for i, r := range lg.rows {
		c.SetSourceRGB(r.color)
		c.Rectangle(float64(lg.column)*l.BoxWidth, float64(top+i)*l.BoxHeight, l.BoxWidth, l.BoxHeight)
	}

	drawGrid(c, lg.column, top, 1, len(lg.rows), l)

	c.SetFontSize(l.FontSize)
	for i, r := range lg.rows {
		if r.label != "" {
			c.SetSourceRGB(TextColor(r.color))
			showCentred(c, r.label, lg.column, top+i, l)
		}
		c.SetSourceRGB(labelColor)
		c.ShowText(
			(float64(lg.column)+1.5)*l.BoxWidth,
			(float64(top+i)+0.7)*l.BoxHeight,
			r.count,
		)
	}

	c.EndGroup()
}

// StitchCountText formats a stitch count with the yarn it needs, for example
// "31 (30cm)".
func StitchCountText(stitches int, opts Options) string {
	return fmt.Sprintf("%d (%s)", stitches, LengthText(YarnLength(stitches, opts)))
}

// YarnLength returns the yarn needed for the given number of stitches, in
// millimetres.
//
// With CmPerStitch set the length is exact. Otherwise a stitch is taken to use
// three times its own width of yarn, the width following from GaugeStitches
// per 10 cm.
func YarnLength(stitches int, opts Options) int {
	n := float64(stitches)
	if opts.CmPerStitch > 0 {
		return int(math.Round(n * opts.CmPerStitch * 10))
	}
	gs := opts.GaugeStitches
	return int(math.Round((n*300 + gs/2) / gs))
}

// LengthText formats a length in millimetres: whole millimetres below 1 cm,
// whole centimetres below 1 m and metres with up to two decimals above that.
func LengthText(mm int) string {
	if mm < 10 {
		return strconv.Itoa(mm) + "mm"
	}

	cm := (mm + 5) / 10
	if cm < 100 {
		return strconv.Itoa(cm) + "cm"
	}

	s := strconv.Itoa(cm / 100)
	if rem := cm % 100; rem > 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%02d", rem), "0")
	}
	return s + "m"
}
