package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/stitchify/internal/chart"
	"github.com/ironsheep/stitchify/internal/gauge"
	"github.com/ironsheep/stitchify/internal/imaging"
	"github.com/ironsheep/stitchify/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stitch_chart").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	out, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(out)},
		},
	})
}

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	// Omitted arguments decode as an empty object, so each tool reports the
	// argument it is missing.
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	switch name {
	case "stitch_load":
		return s.handleStitchLoad(args)
	case "stitch_chart":
		return s.handleStitchChart(args)
	case "stitch_threads":
		return s.handleStitchThreads(args)
	case "stitch_preview":
		return s.handleStitchPreview(args)
	case "stitch_parse_gauge":
		return s.handleParseGauge(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

var errPathRequired = errors.New("path is required")

// chartArgs are shared by every tool that builds a chart. Zero values take
// the command line defaults.
type chartArgs struct {
	Path          string  `json:"path"`
	Stitches      int     `json:"stitches"`
	GaugeStitches string  `json:"gauge_stitches"`
	GaugeRows     string  `json:"gauge_rows"`
	Text          string  `json:"text"`
	ThreadCounts  bool    `json:"thread_counts"`
	ColorCounts   bool    `json:"color_counts"`
	CmPerStitch   float64 `json:"cm_per_stitch"`
}

func (a chartArgs) options() (chart.Options, error) {
	if strings.TrimSpace(a.Path) == "" {
		return chart.Options{}, errPathRequired
	}

	opts := chart.DefaultOptions()

	if a.Stitches != 0 {
		opts.Dimensions.Stitches = a.Stitches
	}
	if a.GaugeStitches != "" {
		gs, err := gauge.Parse(a.GaugeStitches)
		if err != nil {
			return chart.Options{}, fmt.Errorf("gauge_stitches: %w", err)
		}
		opts.Dimensions.GaugeStitches = gs
	}
	if a.GaugeRows != "" {
		gr, err := gauge.Parse(a.GaugeRows)
		if err != nil {
			return chart.Options{}, fmt.Errorf("gauge_rows: %w", err)
		}
		opts.Dimensions.GaugeRows = gr
	}

	text, err := render.ParseTextMode(a.Text)
	if err != nil {
		return chart.Options{}, err
	}
	opts.Text = text
	opts.ThreadCounts = a.ThreadCounts
	opts.ColorCounts = a.ColorCounts
	opts.CmPerStitch = a.CmPerStitch

	if err := opts.Dimensions.Validate(); err != nil {
		return chart.Options{}, err
	}
	if err := opts.RenderOptions().Validate(); err != nil {
		return chart.Options{}, fmt.Errorf("cm_per_stitch: %w", err)
	}
	return opts, nil
}

func (s *Server) buildChart(a chartArgs) (*chart.Chart, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return chart.Build(img, opts)
}

type loadResult struct {
	Image *imaging.ImageInfo `json:"image"`
	Grid  *imaging.Grid      `json:"grid"`
}

func (s *Server) handleStitchLoad(args json.RawMessage) (interface{}, error) {
	var a chartArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	grid, err := imaging.NewGrid(info.Width, info.Height, opts.Dimensions)
	if err != nil {
		return nil, err
	}
	return &loadResult{Image: info, Grid: grid}, nil
}

type stitchChartArgs struct {
	chartArgs
	Output string `json:"output"`
}

type chartResult struct {
	Output   string             `json:"output"`
	Columns  int                `json:"columns"`
	Rows     int                `json:"rows"`
	Threads  int                `json:"threads"`
	Stitches int                `json:"stitches"`
	Missing  int                `json:"missing"`
	Colors   []chart.ColorCount `json:"colors"`
}

func (s *Server) handleStitchChart(args json.RawMessage) (interface{}, error) {
	var a stitchChartArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := s.buildChart(a.chartArgs)
	if err != nil {
		return nil, err
	}

	output := a.Output
	if output == "" {
		output = imaging.ChartPath(a.Path)
	}
	if err := c.WriteSVG(output); err != nil {
		return nil, err
	}

	return &chartResult{
		Output:   output,
		Columns:  c.Grid.Columns,
		Rows:     c.Grid.Rows,
		Threads:  len(c.Pattern.Threads),
		Stitches: c.Pattern.Stitches(),
		Missing:  c.Missing(),
		Colors:   c.ColorCounts(),
	}, nil
}

type threadsResult struct {
	Columns int                `json:"columns"`
	Rows    int                `json:"rows"`
	Threads []chart.ThreadInfo `json:"threads"`
}

func (s *Server) handleStitchThreads(args json.RawMessage) (interface{}, error) {
	var a chartArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := s.buildChart(a)
	if err != nil {
		return nil, err
	}
	return &threadsResult{
		Columns: c.Grid.Columns,
		Rows:    c.Grid.Rows,
		Threads: c.Threads(),
	}, nil
}

type stitchPreviewArgs struct {
	chartArgs
	CellWidth int    `json:"cell_width"`
	GridColor string `json:"grid_color"`
	NoGrid    bool   `json:"no_grid"`
}

func (s *Server) handleStitchPreview(args json.RawMessage) (interface{}, error) {
	var a stitchPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CellWidth < 0 {
		return nil, fmt.Errorf("cell_width must be positive, got %d", a.CellWidth)
	}
	c, err := s.buildChart(a.chartArgs)
	if err != nil {
		return nil, err
	}

	po := c.Options.PreviewOptions()
	if a.CellWidth > 0 {
		d := c.Options.Dimensions
		po.CellWidth = a.CellWidth
		po.CellHeight = max(1, int(math.Round(float64(a.CellWidth)*d.GaugeStitches/d.GaugeRows)))
	}
	if a.GridColor != "" {
		po.GridColor = a.GridColor
	}
	po.NoGrid = a.NoGrid

	return imaging.PreviewBase64(c.Cells, c.Grid.Columns, c.Grid.Rows, po)
}

type parseGaugeArgs struct {
	Gauge string `json:"gauge"`
}

type parseGaugeResult struct {
	Gauge   string  `json:"gauge"`
	Per10cm float64 `json:"per_10cm"`
}

func (s *Server) handleParseGauge(args json.RawMessage) (interface{}, error) {
	var a parseGaugeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Gauge) == "" {
		return nil, errors.New("gauge is required")
	}
	v, err := gauge.Parse(a.Gauge)
	if err != nil {
		return nil, err
	}
	return &parseGaugeResult{Gauge: a.Gauge, Per10cm: v}, nil
}
