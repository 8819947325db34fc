// Package server implements the MCP (Model Context Protocol) server for wall take-off.
//
// This package provides a JSON-RPC 2.0 server that exposes floor plan wall
// detection through the MCP protocol, so an assistant can produce wall
// quantities for tender documents from scanned or exported plans.
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
//   - plan_load: Load a plan and get its metadata
//   - plan_calibrate_scale: Explicit or estimated pixels-per-meter
//   - plan_detect_walls: Walls with type, length, thickness and area
//   - plan_wall_statistics: Per-type totals only
//   - plan_detect_walls_batch: Several plans analyzed concurrently
//   - plan_wall_types: Legend and thresholds in force
//   - plan_unload: Release cached plans
//
// Analysis tools accept an optional region to crop away title blocks and a
// despeckle radius for noisy scans.
//
// # Image Caching
//
// Decoded plans are cached by path for the lifetime of the process, so
// calibrating and then detecting on the same plan decodes it once.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32601: unknown method
//   - -32602: malformed or missing tool arguments
//   - -32000: tool execution failure, with the Go error string as data
//
// # Usage
//
//	srv := server.New(pipeline)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
