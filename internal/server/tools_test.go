package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"stitch_load",
		"stitch_chart",
		"stitch_threads",
		"stitch_preview",
		"stitch_parse_gauge",
	}

	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema properties missing")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) == 0 {
				t.Fatal("InputSchema required missing")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %q is not defined", r)
				}
			}
		})
	}
}

func TestToolDefinitions_ChartProperties(t *testing.T) {
	chartTools := []string{"stitch_load", "stitch_chart", "stitch_threads", "stitch_preview"}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range chartTools {
		t.Run(name, func(t *testing.T) {
			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, p := range []string{"path", "stitches", "gauge_stitches", "gauge_rows"} {
				if _, ok := props[p]; !ok {
					t.Errorf("missing property %q", p)
				}
			}
		})
	}

	// Extra properties must not leak between tools.
	threadProps := toolMap["stitch_threads"].InputSchema["properties"].(map[string]interface{})
	if _, ok := threadProps["output"]; ok {
		t.Error("stitch_threads should not accept output")
	}
}
