// Package server implements the MCP (Model Context Protocol) server for crypt
// counting tools.
//
// This package provides a JSON-RPC 2.0 server that exposes crypt separation
// and counting over the MCP protocol, so an assistant can count the crypts in
// a segmentation mask, inspect where touching crypts were cut, and look at
// individual crypts.
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
// Mask Files:
//   - mask_load: Load a mask and report its size and gray levels
//   - mask_evict: Drop a file from the cache, or clear it
//
// Counting:
//   - crypt_count: Count and outline the crypts in one mask
//   - crypt_count_dir: Count every PNG mask in a directory
//
// Contour Geometry:
//   - crypt_separate: Separate a caller-supplied outline
//   - crypt_defects: Convex hull and convexity defects of an outline
//
// Rendering:
//   - crypt_overlay: Draw the separated outlines over the mask or a slide
//   - crypt_crop: Crop the region around one crypt
//
// # Defaults
//
// Arguments left at zero take the server's [Config], which main fills from
// the environment. A tool call can override the level, min_crypt_size,
// defect_threshold and workers for that call only.
//
// # Mask Caching
//
// Decoded images and their binary masks are cached by path (and level), so
// counting, overlaying and cropping the same file decode it once. The cache
// persists for the lifetime of the server process unless mask_evict is called.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or -32602 (malformed tools/call params)
//   - message: Human-readable error description
//   - data: The Go error string
//
// A blob that fails to separate does not fail the tool; its error is listed in
// the count's errors field.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(server.DefaultConfig())
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
