// Package main provides the stitchify command, which turns an image into a
// cross-stitch chart.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/stitchify/internal/chart"
	"github.com/ironsheep/stitchify/internal/gauge"
	"github.com/ironsheep/stitchify/internal/imaging"
	"github.com/ironsheep/stitchify/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type flags struct {
	output        string
	stitches      int
	gaugeStitches string
	gaugeRows     string
	text          string
	preview       string
	list          bool
	threadCounts  bool
	colorCounts   bool
	cmPerStitch   float64
}

func main() {
	// Logging goes to stderr so that --list output stays clean on stdout.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "stitchify [flags] <image>",
		Short: "Convert an image into a cross-stitch chart",
		Long: `stitchify samples an image into a grid of stitches, groups neighbouring
stitches of the same color into threads and writes the chart as SVG.

Gauges are stitches or rows per 10 cm, given as a number ("22") or as a
count over a length ("22/10cm", "5.5/25mm", "30/4in").

Transparent areas of the image become missing stitches, crossed out on the
chart. The legends list each thread or color with its stitch count and an
estimate of the yarn it needs.

Environment variables:
  STITCHIFY_LOG_LEVEL=debug    Enable debug logging`,
		Args:          cobra.ExactArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(stdout, args[0], f); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("stitchify %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit))

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Chart output path (default: input with .svg extension)")
	cmd.Flags().IntVarP(&f.stitches, "stitches", "s", imaging.DefaultStitches, "Number of stitches across the chart")
	cmd.Flags().StringVar(&f.gaugeStitches, "gauge-stitches", "22", "Stitches per 10 cm")
	cmd.Flags().StringVar(&f.gaugeRows, "gauge-rows", "30", "Rows per 10 cm")
	cmd.Flags().StringVar(&f.text, "text", "threads", "Cell text: threads, runs, ruler or none")
	cmd.Flags().StringVar(&f.preview, "preview", "", "Also write a PNG preview of the sampled colors")
	cmd.Flags().BoolVar(&f.list, "list", false, "Print the thread table")
	cmd.Flags().BoolVar(&f.threadCounts, "thread-counts", false, "Add a legend of stitches per thread")
	cmd.Flags().BoolVar(&f.colorCounts, "color-counts", false, "Add a legend of stitches per color")
	cmd.Flags().Float64Var(&f.cmPerStitch, "cm-per-stitch", 0, "Yarn per stitch in the legends (default: estimated from the gauge)")

	return cmd
}

func debugEnabled() bool {
	return os.Getenv("STITCHIFY_LOG_LEVEL") == "debug"
}

func options(f flags) (chart.Options, error) {
	gs, err := gauge.Parse(f.gaugeStitches)
	if err != nil {
		return chart.Options{}, fmt.Errorf("--gauge-stitches: %w", err)
	}
	gr, err := gauge.Parse(f.gaugeRows)
	if err != nil {
		return chart.Options{}, fmt.Errorf("--gauge-rows: %w", err)
	}
	text, err := render.ParseTextMode(f.text)
	if err != nil {
		return chart.Options{}, fmt.Errorf("--text: %w", err)
	}

	opts := chart.Options{
		Dimensions: imaging.Dimensions{
			Stitches:      f.stitches,
			GaugeStitches: gs,
			GaugeRows:     gr,
		},
		Text:         text,
		ThreadCounts: f.threadCounts,
		ColorCounts:  f.colorCounts,
		CmPerStitch:  f.cmPerStitch,
	}
	if err := opts.Dimensions.Validate(); err != nil {
		return chart.Options{}, err
	}
	if err := opts.RenderOptions().Validate(); err != nil {
		return chart.Options{}, fmt.Errorf("--cm-per-stitch: %w", err)
	}
	return opts, nil
}

func run(stdout io.Writer, input string, f flags) error {
	debug := debugEnabled()
	if debug {
		log.Printf("stitchify v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	opts, err := options(f)
	if err != nil {
		return err
	}

	img, err := imaging.Open(input)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("Loaded %s (%dx%d)", input, img.Bounds().Dx(), img.Bounds().Dy())
	}

	c, err := chart.Build(img, opts)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("Grid %dx%d, cells %.2fx%.2f px, %d threads",
			c.Grid.Columns, c.Grid.Rows, c.Grid.SampleWidth, c.Grid.SampleHeight, len(c.Pattern.Threads))
	}

	output := f.output
	if output == "" {
		output = imaging.ChartPath(input)
	}
	if err := c.WriteSVG(output); err != nil {
		return err
	}
	if debug {
		log.Printf("Wrote chart to %s", output)
	}

	if f.preview != "" {
		if err := c.WritePreview(f.preview, opts.PreviewOptions()); err != nil {
			return err
		}
		if debug {
			log.Printf("Wrote preview to %s", f.preview)
		}
	}

	if f.list {
		return c.WriteThreadTable(stdout)
	}
	return nil
}
