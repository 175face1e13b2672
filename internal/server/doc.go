// Package server implements the MCP (Model Context Protocol) server that
// exposes vision pipelines to MCP clients.
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
// Pipeline lifecycle:
//   - pipeline_create: Build a pipeline from a TOML or YAML configuration
//   - pipeline_direct: Run a frame through a pipeline and return its directive
//   - pipeline_reset: Clear stateful monitors
//   - pipeline_halt: Engage or release the pipeline's stopper
//   - pipeline_list: List pipelines
//   - pipeline_delete: Remove a pipeline
//
// One-off detection:
//   - image_detect_regions: Find blobs by luminance or colour
//   - image_detect_text: Find words with OCR
//
// # Pipelines
//
// Each pipeline is identified by a random UUID. Frames sent to the same
// pipeline are processed one at a time because monitors keep state between
// frames; different pipelines run independently.
//
// # Frame Caching
//
// The one-off detection tools cache decoded frames by path for the lifetime
// of the server. pipeline_direct always reads the file again, so a camera can
// overwrite the same snapshot every tick.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
