package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/imaging"
	"github.com/ironsheep/vision-director/internal/logging"
)

// maxRequestSize bounds a single request line.
const maxRequestSize = 1024 * 1024

// Server hosts vision pipelines behind the MCP tool interface.
type Server struct {
	frames  *imaging.FrameCache
	logger  *zap.Logger
	version string

	mu        sync.RWMutex
	pipelines map[string]*pipeline
}

// New returns a server with no pipelines. A nil logger discards logs.
func New(logger *zap.Logger, version string) *Server {
	if version == "" {
		version = "dev"
	}
	return &Server{
		frames:    imaging.NewFrameCache(),
		logger:    logging.OrNop(logger),
		version:   version,
		pipelines: make(map[string]*pipeline),
	}
}

// Run serves stdin and stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w. Notifications get no response; a line that is not JSON gets
// a parse error with a null ID. Serve returns when r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	enc := json.NewEncoder(w)

	send := func(resp *MCPResponse) {
		if resp == nil {
			return
		}
		if err := enc.Encode(resp); err != nil {
			s.logger.Error("failed to write response", zap.Error(err))
		}
	}

	for lines.Scan() {
		line := lines.Bytes()
		if len(line) == 0 {
			continue
		}
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("malformed request", zap.Error(err))
			send(errorResponse(nil, codeParseError, "Parse error", err.Error()))
			continue
		}
		send(s.handleRequest(&req))
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

// handleRequest answers one request, or returns nil for notifications.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", zap.String("method", req.Method), zap.Any("id", req.ID))

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "vision-director",
				"version": s.version,
			},
		})
	case "notifications/initialized":
		return nil
	case "ping":
		return resultResponse(req.ID, map[string]interface{}{})
	case "tools/list":
		return resultResponse(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
	case "tools/call":
		return s.handleToolsCall(req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}
