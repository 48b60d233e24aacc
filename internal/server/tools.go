package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// chartProperties are accepted by every tool that builds a chart.
func chartProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"stitches": map[string]interface{}{
			"type":        "integer",
			"description": "Number of stitches across the chart. Default 22",
			"default":     22,
		},
		"gauge_stitches": map[string]interface{}{
			"type":        "string",
			"description": `Stitches per 10 cm, as a number ("22") or a count over a length ("22/10cm", "30/4in"). Default "22"`,
			"default":     "22",
		},
		"gauge_rows": map[string]interface{}{
			"type":        "string",
			"description": `Rows per 10 cm, in the same forms as gauge_stitches. Default "30"`,
			"default":     "30",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "stitch_load",
			Description: "Load an image and report its dimensions, format and the stitch grid it would produce. Loaded images are cached for later calls.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": chartProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "stitch_chart",
			Description: "Generate a cross-stitch chart from an image and write it as SVG. Transparent areas become crossed-out missing stitches. Returns the output path, grid size and per-color totals.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(chartProperties(), map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Chart output path. Defaults to the image path with a .svg extension",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"threads", "runs", "ruler", "none"},
						"description": "Text in each cell: thread labels, run lengths, row numbers where the stitch changes (ruler) or nothing. Default threads",
						"default":     "threads",
					},
					"thread_counts": map[string]interface{}{
						"type":        "boolean",
						"description": "Add a legend with the stitch count and yarn length of every thread. Default false",
						"default":     false,
					},
					"color_counts": map[string]interface{}{
						"type":        "boolean",
						"description": "Add a legend with the stitch count and yarn length of every color, most used first. Default false",
						"default":     false,
					},
					"cm_per_stitch": map[string]interface{}{
						"type":        "number",
						"description": "Yarn used by one stitch in centimetres. Default 0 estimates it from gauge_stitches",
						"default":     0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "stitch_threads",
			Description: "List the threads of the chart for an image: label, color, stitch count and where each thread ends.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": chartProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "stitch_preview",
			Description: "Render the sampled stitch colors as a base64-encoded PNG, one block per stitch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(chartProperties(), map[string]interface{}{
					"cell_width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of one stitch in pixels. Default 20; the height follows the gauge",
						"default":     20,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Gridline color as hex. Default #B5B5B5",
						"default":     "#B5B5B5",
					},
					"no_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit gridlines. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "stitch_parse_gauge",
			Description: "Normalize a gauge string to stitches or rows per 10 cm.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"gauge": map[string]interface{}{
						"type":        "string",
						"description": `Gauge such as "22", "5.5/25mm" or "10cm/22"`,
					},
				},
				"required": []string{"gauge"},
			},
		},
	}
}
