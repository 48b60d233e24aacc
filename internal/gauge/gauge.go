// Package gauge parses knitting and cross-stitch gauge strings.
//
// A gauge is a count of stitches or rows per 10 cm. It can be written as a
// bare number ("22") or as a count over a length, in either order:
//
//	22/10cm   10cm/22   5.5/25mm   30/4in   30/4"
//
// Parse normalizes every form to items per 10 cm.
package gauge

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const cmPerInch = 2.54

var (
	// ErrBothLengths reports a gauge where both sides carry a unit.
	ErrBothLengths = errors.New("both parts of the gauge are a length")
	// ErrBothItems reports a gauge where neither side carries a unit.
	ErrBothItems = errors.New("both parts of the gauge are stitches or rows")
)

// suffixes maps length units to centimetres. Order matters: "mm" must not be
// shadowed by a shorter suffix.
var suffixes = []struct {
	suffix string
	cm     float64
}{
	{"cm", 1.0},
	{"mm", 0.1},
	{"\"", cmPerInch},
	{"in", cmPerInch},
}

// part is one side of a "a/b" gauge.
type part struct {
	length bool
	value  float64
}

// Parse returns the gauge described by s as items per 10 cm.
func Parse(s string) (float64, error) {
	left, right, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return parseValue(left)
	}

	l, err := parsePart(left)
	if err != nil {
		return 0, err
	}
	r, err := parsePart(right)
	if err != nil {
		return 0, err
	}

	switch {
	case l.length && !r.length:
		return r.value / l.value * 10, nil
	case !l.length && r.length:
		return l.value / r.value * 10, nil
	case l.length:
		return 0, ErrBothLengths
	default:
		return 0, ErrBothItems
	}
}

func parsePart(s string) (part, error) {
	s = strings.TrimSpace(s)
	for _, u := range suffixes {
		if v, ok := strings.CutSuffix(s, u.suffix); ok {
			value, err := parseValue(v)
			if err != nil {
				return part{}, err
			}
			return part{length: true, value: value * u.cm}, nil
		}
	}

	value, err := parseValue(s)
	if err != nil {
		return part{}, err
	}
	return part{value: value}, nil
}

func parseValue(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid gauge value %q: %w", s, err)
	}

	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return 0, fmt.Errorf("invalid gauge: %v", value)
	case value <= 0:
		return 0, fmt.Errorf("gauge %v is too small", value)
	}
	return value, nil
}
