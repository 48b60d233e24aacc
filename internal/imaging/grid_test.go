package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestDefaultDimensions(t *testing.T) {
	d := DefaultDimensions()
	if d.Stitches != 22 || d.GaugeStitches != 22 || d.GaugeRows != 30 {
		t.Errorf("got %+v, want 22 stitches at 22x30", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("default dimensions invalid: %v", err)
	}
}

func TestDimensions_Validate(t *testing.T) {
	tests := []struct {
		name string
		d    Dimensions
	}{
		{"zero stitches", Dimensions{0, 22, 30}},
		{"negative stitches", Dimensions{-1, 22, 30}},
		{"zero gauge stitches", Dimensions{22, 0, 30}},
		{"zero gauge rows", Dimensions{22, 22, 0}},
		{"NaN gauge", Dimensions{22, math.NaN(), 30}},
		{"infinite gauge", Dimensions{22, 22, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.d.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	// 220 wide / 22 stitches = 10 px, height 10*22/30 = 7.333 px
	grid, err := NewGrid(220, 100, DefaultDimensions())
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if grid.Columns != 22 {
		t.Errorf("Columns: got %d, want 22", grid.Columns)
	}
	if grid.SampleWidth != 10 {
		t.Errorf("SampleWidth: got %v, want 10", grid.SampleWidth)
	}
	if math.Abs(grid.SampleHeight-10.0*22/30) > 1e-9 {
		t.Errorf("SampleHeight: got %v, want %v", grid.SampleHeight, 10.0*22/30)
	}
	// 100 / 7.333 = 13.6, truncated
	if grid.Rows != 13 {
		t.Errorf("Rows: got %d, want 13", grid.Rows)
	}
	if grid.Len() != 22*13 {
		t.Errorf("Len: got %d, want %d", grid.Len(), 22*13)
	}
}

func TestNewGrid_Errors(t *testing.T) {
	if _, err := NewGrid(220, 5, DefaultDimensions()); !errors.Is(err, ErrNoRows) {
		t.Errorf("short image: got %v, want ErrNoRows", err)
	}
	if _, err := NewGrid(0, 100, DefaultDimensions()); err == nil {
		t.Error("empty image: expected error")
	}
	if _, err := NewGrid(100, 100, Dimensions{}); err == nil {
		t.Error("zero dimensions: expected error")
	}
}

func TestNewGrid_FinerThanImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		d             Dimensions
		wantThin      bool
	}{
		{"huge row gauge", 22, 100, Dimensions{Stitches: 22, GaugeStitches: 22, GaugeRows: 1e12}, true},
		{"rows just under a pixel", 10, 10, Dimensions{Stitches: 10, GaugeStitches: 1, GaugeRows: 1.5}, true},
		{"more stitches than pixels", 10, 100, Dimensions{Stitches: 1e9, GaugeStitches: 1e9, GaugeRows: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := NewGrid(tt.width, tt.height, tt.d)
			if err == nil {
				t.Fatalf("expected error, got %dx%d grid", grid.Columns, grid.Rows)
			}
			if tt.wantThin && !errors.Is(err, ErrRowsTooThin) {
				t.Errorf("got %v, want ErrRowsTooThin", err)
			}
			var emptyErr *EmptyRegionError
			if !tt.wantThin && !errors.As(err, &emptyErr) {
				t.Errorf("got %v, want *EmptyRegionError", err)
			}
		})
	}
}

func TestNewGrid_OnePixelCells(t *testing.T) {
	grid, err := NewGrid(10, 10, Dimensions{Stitches: 10, GaugeStitches: 1, GaugeRows: 1})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if grid.Columns != 10 || grid.Rows != 10 {
		t.Errorf("grid: got %dx%d, want 10x10", grid.Columns, grid.Rows)
	}
}

func TestGrid_Region(t *testing.T) {
	grid := &Grid{Width: 5, Height: 5, Columns: 2, Rows: 2, SampleWidth: 2.5, SampleHeight: 2.5}

	tests := []struct {
		x, y int
		want Region
	}{
		// 2.5 rounds half to even: 2
		{0, 0, Region{0, 0, 2, 2}},
		{1, 0, Region{2, 0, 5, 2}},
		{0, 1, Region{0, 2, 2, 5}},
		{1, 1, Region{2, 2, 5, 5}},
	}

	for _, tt := range tests {
		if got := grid.Region(tt.x, tt.y); got != tt.want {
			t.Errorf("Region(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGrid_Region_Clamped(t *testing.T) {
	grid := &Grid{Width: 10, Height: 10, Columns: 3, Rows: 3, SampleWidth: 3.4, SampleHeight: 3.4}

	r := grid.Region(2, 2)
	if r.X2 != 10 || r.Y2 != 10 {
		t.Errorf("last cell: got %v, want edges clamped to 10", r)
	}
}

func TestSample_CellColors(t *testing.T) {
	img := createPatternImage(100, 100)
	d := Dimensions{Stitches: 2, GaugeStitches: 1, GaugeRows: 1}

	grid, cells, err := Sample(img, d)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	if grid.Rows != 2 || grid.Columns != 2 {
		t.Fatalf("grid: got %dx%d, want 2x2", grid.Columns, grid.Rows)
	}

	want := []colorful.Color{
		{R: 1, G: 0, B: 0},
		{R: 0, G: 1, B: 0},
		{R: 0, G: 0, B: 1},
		{R: 1, G: 1, B: 1},
	}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i].Missing || cells[i].Color != want[i] {
			t.Errorf("cell %d: got %+v, want %v", i, cells[i], want[i])
		}
	}
}

func TestSample_DropsPartialRow(t *testing.T) {
	// 2 columns of 5 px, square gauge: 12 px tall gives 2 full rows.
	img := createInMemoryImage(10, 12, color.RGBA{0, 0, 0, 255})
	d := Dimensions{Stitches: 2, GaugeStitches: 1, GaugeRows: 1}

	grid, cells, err := Sample(img, d)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if grid.Rows != 2 {
		t.Errorf("Rows: got %d, want 2", grid.Rows)
	}
	if len(cells) != 4 {
		t.Errorf("got %d cells, want 4", len(cells))
	}
}

func TestSample_Idempotent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 44, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 44; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 5), uint8(y * 4), uint8((x + y) % 3 * 100), 255})
		}
	}

	_, first, err := Sample(img, DefaultDimensions())
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	_, second, err := Sample(img, DefaultDimensions())
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSample_TooNarrow(t *testing.T) {
	// 10 px across 22 stitches leaves some cells with no pixels.
	img := createInMemoryImage(10, 100, color.RGBA{0, 0, 0, 255})

	_, _, err := Sample(img, DefaultDimensions())
	var emptyErr *EmptyRegionError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected *EmptyRegionError, got %v", err)
	}
}

func TestSample_HugeGaugeReturnsError(t *testing.T) {
	img := createInMemoryImage(22, 100, color.RGBA{0, 0, 0, 255})
	d := Dimensions{Stitches: 22, GaugeStitches: 22, GaugeRows: 1e12}

	_, _, err := Sample(img, d)
	if !errors.Is(err, ErrRowsTooThin) {
		t.Fatalf("got %v, want ErrRowsTooThin", err)
	}
}

func TestSample_SubImage(t *testing.T) {
	full := createPatternImage(100, 100)
	// The bottom-right quadrant is solid white and starts at (50, 50).
	sub := full.SubImage(image.Rect(50, 50, 100, 100)).(*image.NRGBA)
	d := Dimensions{Stitches: 2, GaugeStitches: 1, GaugeRows: 1}

	grid, cells, err := Sample(sub, d)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if grid.Width != 50 || grid.Height != 50 || grid.Rows != 2 {
		t.Fatalf("grid: got %+v", grid)
	}

	white := colorful.Color{R: 1, G: 1, B: 1}
	for i, c := range cells {
		if c.Color != white {
			t.Errorf("cell %d: got %v, want white", i, c.Color)
		}
	}
}

func TestSample_TransparentCells(t *testing.T) {
	// Left half opaque red, right half fully transparent.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	d := Dimensions{Stitches: 2, GaugeStitches: 1, GaugeRows: 1}

	_, cells, err := Sample(img, d)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	want := []CellColor{{Color: colorful.Color{R: 1}}, {Missing: true}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d: got %+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestColors(t *testing.T) {
	red := colorful.Color{R: 1}
	got := Colors([]CellColor{{Color: red}, {Missing: true}})
	if len(got) != 2 || got[0] != red || got[1] != (colorful.Color{}) {
		t.Errorf("got %v", got)
	}
}
