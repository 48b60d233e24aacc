// Package server implements an MCP (Model Context Protocol) server that
// exposes stitch chart generation as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - stitch_load: Image metadata and the stitch grid it would produce
//   - stitch_chart: Write an SVG chart
//   - stitch_threads: List thread labels, colors and stitch counts
//   - stitch_preview: Base64 PNG of the sampled stitch colors
//   - stitch_parse_gauge: Normalize a gauge string to items per 10 cm
//
// Chart tools accept stitches, gauge_stitches and gauge_rows with the same
// meaning and defaults as the stitchify command.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process, so
// repeated calls with different chart settings decode the file once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
