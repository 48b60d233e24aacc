package gauge

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12.0", 12},
		{" 22 ", 22},
		{"5/10cm", 5},
		{"5/20cm", 2.5},
		{"10cm/5", 5},
		{"1/0.1cm", 100},
		{"1/1mm", 100},
		{"1/0.5mm", 200},
		{"30/4\"", 29.52755905511811},
		{"30/4in", 29.52755905511811},
		{"22 / 10 cm", 22},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) >= 0.0001 {
				t.Errorf("Parse(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantMsg string
	}{
		{"12in/6cm", "both parts of the gauge are a length"},
		{"12/6", "both parts of the gauge are stitches or rows"},
		{"-1", "gauge -1 is too small"},
		{"-1/1.0cm", "gauge -1 is too small"},
		{"0", "gauge 0 is too small"},
		{"inf", "invalid gauge: +Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.in)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Parse(%q): got %q, want %q", tt.in, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_SentinelErrors(t *testing.T) {
	if _, err := Parse("1cm/2mm"); !errors.Is(err, ErrBothLengths) {
		t.Errorf("got %v, want ErrBothLengths", err)
	}
	if _, err := Parse("1/2"); !errors.Is(err, ErrBothItems) {
		t.Errorf("got %v, want ErrBothItems", err)
	}
}

func TestParse_BadFloat(t *testing.T) {
	_, err := Parse("12/foocm")

	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("expected *strconv.NumError, got %v", err)
	}
}
