package threads

import "github.com/lucasb-eyer/go-colorful"

// Run is a maximal sequence of same-colored cells within one row, in
// stitching order. Start is the first cell worked. A run of missing cells
// has Missing set and a zero Color.
type Run struct {
	Start   Point          `json:"start"`
	Length  int            `json:"length"`
	Color   colorful.Color `json:"-"`
	Missing bool           `json:"missing,omitempty"`
}

// Runs splits every row of p into same-colored runs, following the stitching
// direction of each row. Rows are reported bottom row first.
func Runs(p *Pattern) []Run {
	var runs []Run
	if p.Columns == 0 {
		return runs
	}

	Serpentine(p.Columns, p.Rows, func(x, y int) {
		cell := p.Cell(x, y)
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Start.Y == y && last.Missing == cell.Missing && last.Color == cell.Color {
				last.Length++
				return
			}
		}
		runs = append(runs, Run{
			Start:   Point{X: x, Y: y},
			Length:  1,
			Color:   cell.Color,
			Missing: cell.Missing,
		})
	})

	return runs
}

// ColorCount is the thread and stitch total for one color.
type ColorCount struct {
	Color    colorful.Color
	Threads  int
	Stitches int
}

// CountColors totals the threads and stitches of every color in p, in order
// of each color's first thread.
func CountColors(p *Pattern) []ColorCount {
	var counts []ColorCount
	index := make(map[colorful.Color]int)

	for _, t := range p.Threads {
		i, ok := index[t.Color]
		if !ok {
			i = len(counts)
			index[t.Color] = i
			counts = append(counts, ColorCount{Color: t.Color})
		}
		counts[i].Threads++
		counts[i].Stitches += t.Stitches
	}
	return counts
}
