package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/stitchify/internal/imaging"
)

// ServerName is reported to clients during initialize.
const ServerName = "stitchify-mcp"

const (
	jsonRPCVersion  = "2.0"
	protocolVersion = "2024-11-05"

	// maxLineBytes bounds a single request line.
	maxLineBytes = 1 << 20
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server answers MCP requests for stitch charts. Decoded images are kept in
// a cache shared by all tool calls.
type Server struct {
	cache   *imaging.ImageCache
	version string
}

// MCPRequest is an incoming JSON-RPC request. Requests without an ID are
// notifications and get no response.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is an outgoing JSON-RPC response. Exactly one of Result and
// Error is set.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the error member of a response.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that reports version to clients.
func New(version string) *Server {
	return &Server{
		cache:   imaging.NewImageCache(),
		version: version,
	}
}

// Run serves requests from stdin, writing responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes each response
// as one line to w. It returns when r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	enc := json.NewEncoder(w)
	for scanner.Scan() {
		resp := s.handleLine(scanner.Bytes())
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

func (s *Server) handleLine(line []byte) *MCPResponse {
	if len(line) == 0 {
		return nil
	}

	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		log.Printf("Failed to parse request: %v", err)
		return s.errorResponse(nil, codeParseError, "Parse error", err.Error())
	}
	return s.handleRequest(&req)
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return result(req.ID, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		})
	case "notifications/initialized":
		return nil
	case "tools/list":
		return result(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return result(req.ID, map[string]interface{}{})
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func result(id interface{}, v interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonRPCVersion, ID: id, Result: v}
}

// errorResponse builds an error response. An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: jsonRPCVersion, ID: id, Error: e}
}
