package threads

// Serpentine calls fn for every cell of a columns x rows grid in stitching
// order: rows from the bottom (y = rows-1) up to the top, with the bottom row
// and every second row above it visited right-to-left.
func Serpentine(columns, rows int, fn func(x, y int)) {
	for y := rows - 1; y >= 0; y-- {
		reversed := (rows-1-y)%2 == 0
		for i := 0; i < columns; i++ {
			x := i
			if reversed {
				x = columns - 1 - i
			}
			fn(x, y)
		}
	}
}

// Point is a cell position in the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Order returns the cells of a columns x rows grid in stitching order.
func Order(columns, rows int) []Point {
	if columns <= 0 || rows <= 0 {
		return nil
	}

	points := make([]Point, 0, columns*rows)
	Serpentine(columns, rows, func(x, y int) {
		points = append(points, Point{X: x, Y: y})
	})
	return points
}
