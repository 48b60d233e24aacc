package threads

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// maxRowGap is how far below the current row the backward scan may
	// reach before giving up.
	maxRowGap = 2
	// maxColumnGap is the largest column distance a thread may jump.
	maxColumnGap = 1
)

// Thread is one continuous length of thread on the chart.
type Thread struct {
	ID       int            `json:"id"`     // Creation index
	Label    string         `json:"label"`  // Chart label derived from ID
	Column   int            `json:"column"` // Column of the most recent stitch
	Row      int            `json:"row"`    // Row of the most recent stitch
	Color    colorful.Color `json:"-"`
	Stitches int            `json:"stitches"`
}

// Hex returns the thread color as "#rrggbb".
func (t Thread) Hex() string {
	return t.Color.Hex()
}

// Cell is one stitch of the chart. Thread is an index into Pattern.Threads,
// or -1 for a missing cell.
type Cell struct {
	Color   colorful.Color
	Missing bool
	Thread  int
}

// Pattern is a chart whose cells have been assigned to threads.
type Pattern struct {
	Columns int
	Rows    int
	// Cells is row-major: cell (x, y) is Cells[x+y*Columns].
	Cells []Cell
	// Threads is in creation order, so Threads[i].ID == i.
	Threads []Thread
}

// Cell returns the cell at column x, row y.
func (p *Pattern) Cell(x, y int) Cell {
	return p.Cells[x+y*p.Columns]
}

// ThreadAt returns the thread assigned to the cell at column x, row y, or
// nil if the cell is missing.
func (p *Pattern) ThreadAt(x, y int) *Thread {
	cell := p.Cell(x, y)
	if cell.Missing {
		return nil
	}
	return &p.Threads[cell.Thread]
}

// Stitches returns the number of cells that are not missing.
func (p *Pattern) Stitches() int {
	n := 0
	for _, c := range p.Cells {
		if !c.Missing {
			n++
		}
	}
	return n
}

// registry owns the threads of one assignment pass.
type registry struct {
	threads []Thread // creation order
	recent  []int    // thread IDs, least recently used first
}

// find returns the ID of the thread that should continue to (x, y), or -1.
func (r *registry) find(c colorful.Color, x, y int) int {
	for i := len(r.recent) - 1; i >= 0; i-- {
		t := &r.threads[r.recent[i]]

		if t.Row-y > maxRowGap {
			break
		}
		if t.Color != c {
			continue
		}
		if abs(t.Column-x) <= maxColumnGap {
			return i
		}
	}
	return -1
}

// extend moves the thread at recency position i to the most recent end and
// records a stitch at (x, y).
func (r *registry) extend(i, x, y int) int {
	id := r.recent[i]
	copy(r.recent[i:], r.recent[i+1:])
	r.recent[len(r.recent)-1] = id

	t := &r.threads[id]
	t.Column = x
	t.Row = y
	t.Stitches++
	return id
}

func (r *registry) create(c colorful.Color, x, y int) int {
	id := len(r.threads)
	r.threads = append(r.threads, Thread{
		ID:       id,
		Label:    Label(id),
		Column:   x,
		Row:      y,
		Color:    c,
		Stitches: 1,
	})
	r.recent = append(r.recent, id)
	return id
}

// Assign groups a row-major grid of cell colors into threads.
//
// Cells are visited in Serpentine order. Each cell either extends the most
// recently used thread of the same color whose last stitch is within one
// column, scanning back no further than two rows, or starts a new thread.
// Every cell ends up with exactly one thread and the stitch counts of all
// threads sum to the number of cells.
//
// # Errors
//
// Returns an error if len(colors) != columns*rows or a dimension is negative.
// An empty grid produces an empty pattern.
func Assign(columns, rows int, colors []colorful.Color) (*Pattern, error) {
	if len(colors) != columns*rows {
		return nil, fmt.Errorf("expected %d cell colors for a %dx%d grid, got %d",
			columns*rows, columns, rows, len(colors))
	}

	cells := make([]Cell, len(colors))
	for i, c := range colors {
		cells[i] = Cell{Color: c}
	}
	return AssignCells(columns, rows, cells)
}

// AssignCells is Assign for grids with missing cells. Missing cells are
// skipped: they get thread -1, are not counted and never end a thread. A
// thread may continue across a missing cell when the next stitch of its
// color is still within reach.
//
// The Thread field of every input cell is ignored and overwritten in the
// returned pattern; cells is not modified.
func AssignCells(columns, rows int, cells []Cell) (*Pattern, error) {
	if columns < 0 || rows < 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", columns, rows)
	}
	if len(cells) != columns*rows {
		return nil, fmt.Errorf("expected %d cells for a %dx%d grid, got %d",
			columns*rows, columns, rows, len(cells))
	}

	p := &Pattern{
		Columns: columns,
		Rows:    rows,
		Cells:   make([]Cell, len(cells)),
	}
	for i, c := range cells {
		if c.Missing {
			c.Color = colorful.Color{}
		}
		c.Thread = -1
		p.Cells[i] = c
	}

	var reg registry
	Serpentine(columns, rows, func(x, y int) {
		cell := &p.Cells[x+y*columns]
		if cell.Missing {
			return
		}
		if i := reg.find(cell.Color, x, y); i >= 0 {
			cell.Thread = reg.extend(i, x, y)
		} else {
			cell.Thread = reg.create(cell.Color, x, y)
		}
	})

	p.Threads = reg.threads
	return p, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
