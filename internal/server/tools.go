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

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate. Useful for picking the background color to remove.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x":    intProperty("X coordinate (0-based, from left)"),
					"y":    intProperty("Y coordinate (0-based, from top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Background Removal
		{
			Name: "image_segment",
			Description: "Separate the subject inside a rectangle from its background using GrabCut. " +
				"Returns a PNG mask (white = subject) and optionally the cut-out subject on a transparent background. " +
				"Draw the rectangle loosely around the subject; everything outside it is treated as background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty,
					"x":      intProperty("Left edge of the subject rectangle (0-based)"),
					"y":      intProperty("Top edge of the subject rectangle (0-based)"),
					"width":  intProperty("Rectangle width in pixels"),
					"height": intProperty("Rectangle height in pixels"),
					"iterations": map[string]interface{}{
						"type":        "integer",
						"description": "Refinement rounds, 1-5. Defaults to the server configuration (3)",
						"minimum":     1,
						"maximum":     5,
					},
					"cutout": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the subject with the background made transparent",
						"default":     false,
					},
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_remove_color",
			Description: "Make every pixel close to a color transparent, optionally feathering the cut edge. Returns a PNG with alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Color to remove as hex (#RRGGBB)",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Largest color distance still removed. Defaults to the server configuration",
					},
					"feather": intProperty("Edge softening amount, 0 disables. Radius is capped at 5"),
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "lab"},
						"description": "Color distance: Euclidean RGB or CIE76 Lab",
					},
				},
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "image_magic_wand",
			Description: "Select pixels similar in color to a seed pixel, either the connected region around it or the whole image. Returns a PNG mask.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x":    intProperty("Seed X coordinate (0-based)"),
					"y":    intProperty("Seed Y coordinate (0-based)"),
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Largest color distance from the seed still selected",
					},
					"connected": map[string]interface{}{
						"type":        "boolean",
						"description": "Only select pixels connected to the seed. Default true",
						"default":     true,
					},
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgb", "lab"},
						"description": "Color distance: Euclidean RGB or CIE76 Lab",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Transforms
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty,
					"x":      intProperty("Left edge X coordinate (0-based)"),
					"y":      intProperty("Top edge Y coordinate (0-based)"),
					"width":  intProperty("Region width in pixels"),
					"height": intProperty("Region height in pixels"),
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image clockwise by a multiple of 90 degrees.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"degrees": map[string]interface{}{
						"type":        "integer",
						"enum":        []int{0, 90, 180, 270},
						"description": "Clockwise rotation",
					},
				},
				"required": []string{"path", "degrees"},
			},
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally or vertically.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"direction": map[string]interface{}{
						"type": "string",
						"enum": []string{"horizontal", "vertical"},
					},
				},
				"required": []string{"path", "direction"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image to exact dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty,
					"width":  intProperty("Target width in pixels"),
					"height": intProperty("Target height in pixels"),
					"quality": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "medium", "high", "maximum"},
						"description": "Resampling filter: nearest, bilinear, Catmull-Rom or Lanczos. Default high",
					},
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name: "image_compress",
			Description: "Encode an image as JPEG or PNG. With target_size, search for the highest JPEG quality " +
				"whose output fits the target (within 5%).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "png"},
						"description": "Output format. Defaults to the server configuration",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "Quality 1-100. Ignored when target_size is set",
						"minimum":     1,
						"maximum":     100,
					},
					"target_size": intProperty("Target output size in bytes (JPEG only)"),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
