// Package render draws stitch charts as SVG.
//
// Drawing goes through the Canvas interface, a small cairo-like API with a
// current source color, line settings, a path and text. SVGCanvas implements
// it by emitting SVG elements through svgo; text widths are measured with the
// Go Regular font so that labels can be centred without a browser.
//
// # Chart Layout
//
// Each stitch is a BoxWidth x BoxHeight box, where BoxHeight follows the
// fabric gauge. The chart has one extra column on the right for row numbers
// and one extra row at the bottom for column numbers:
//
//	+---+---+---+
//	| A | A | B | 2
//	+---+---+---+
//	| A | B | B | 1
//	+---+---+---+
//	  3   2   1
//
// Columns are numbered from the right, matching the direction the first row
// is worked; rows are numbered from the bottom. Missing cells, where the
// source image was transparent, are left unfilled and crossed out.
//
// With Options.ThreadCounts or Options.ColorCounts set, legends follow one
// blank row below the column numbers. Each legend row shows a swatch and the
// stitch count with an estimate of the yarn it takes, such as "31 (30cm)".
//
// # Output
//
// WriteFile writes the finished document through renameio: the data goes to a
// pending file next to the destination and is renamed into place only once
// complete, so a failed run never leaves a truncated chart behind.
package render
