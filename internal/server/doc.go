// Package server implements the MCP (Model Context Protocol) server for
// background removal and basic image editing.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Diagnostics: structured logs on stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Background Removal:
//   - image_segment: GrabCut segmentation from a subject rectangle
//   - image_remove_color: Make a color transparent, with optional feathering
//   - image_magic_wand: Select similar colors around a seed pixel
//
// Transforms:
//   - image_crop, image_rotate, image_flip, image_resize
//   - image_compress: JPEG/PNG encoding, optionally to a target size
//
// Optional tool arguments default to the values in config.Config.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. The cache
// holds at most cache.max_images entries and evicts the oldest first.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	srv := server.New(cfg, logger.New(cfg.Log, os.Stderr))
//	return srv.Run()
package server
