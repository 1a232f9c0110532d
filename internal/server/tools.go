package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// separationProperties returns the schema of the arguments shared by every
// tool that counts a mask, merged with extra.
func separationProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"level": map[string]interface{}{
			"type":        "integer",
			"description": "Gray level (1-255) at or above which a pixel is crypt. Default 1, which suits label maps with crypt = 1",
			"minimum":     0,
			"maximum":     255,
		},
		"min_crypt_size": map[string]interface{}{
			"type":        "integer",
			"description": "Smallest crypt area in square pixels; smaller outlines are never cut and are dropped. Default 2000",
		},
		"defect_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Depth in pixels a concavity must exceed to be a possible cut site. Default 10",
		},
		"workers": map[string]interface{}{
			"type":        "integer",
			"description": "Blobs separated concurrently. Default one per CPU",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var pointsSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "integer"},
			"y": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x", "y"},
	},
	"description": "Closed outline as pixel vertices in traversal order, first vertex not repeated",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Mask Files
		{
			Name:        "mask_load",
			Description: "Load a crypt mask image and report its dimensions, format, foreground pixel count and the gray levels it contains.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the mask file",
					},
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Binarisation level for the foreground count. Default 1",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mask_evict",
			Description: "Drop a mask and its decoded image from the server's cache, or clear the whole cache when no path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to evict. Omit to clear everything",
					},
				},
			},
		},

		// Counting
		{
			Name:        "crypt_count",
			Description: "Count the crypts in a mask. Touching crypts are separated along their waists. Returns each crypt's outline and area, ordered top to bottom, with size statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": separationProperties(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the mask file",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "crypt_count_dir",
			Description: "Count the crypts in every PNG mask in a directory, in natural file name order. A file that fails is reported and the rest are still counted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": separationProperties(map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory of masks",
					},
				}),
				"required": []string{"dir"},
			},
		},

		// Contour Geometry
		{
			Name:        "crypt_separate",
			Description: "Separate one traced outline into crypt outlines without reading a file. The points must be a full-resolution pixel boundary, each point an 8-neighbour of the next, spanning at most 4096 pixels each way.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsSchema,
					"min_crypt_size": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest crypt area in square pixels. Default 2000",
					},
					"defect_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum concavity depth in pixels. Default 10",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "crypt_defects",
			Description: "Compute the convex hull and convexity defects of an outline. Use this to see where the separator would consider cutting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsSchema,
					"defect_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum defect depth in pixels. Default 10",
					},
				},
				"required": []string{"points"},
			},
		},

		// Rendering
		{
			Name:        "crypt_overlay",
			Description: "Count the crypts in a mask and draw their outlines over the mask or a source image. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": separationProperties(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the mask file",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Optional image to draw on, with the mask's dimensions. Default is the mask itself",
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw each crypt's index. Default false",
						"default":     false,
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline width in pixels. Default 2",
						"default":     2,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (e.g. '#89FC00'). Default gives each crypt its own color",
					},
					"dim": map[string]interface{}{
						"type":        "number",
						"description": "Percentage to darken the background by. Default 40",
						"default":     40,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "crypt_crop",
			Description: "Count the crypts in a mask and crop the region around one of them. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": separationProperties(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the mask file",
					},
					"image": map[string]interface{}{
						"type":        "string",
						"description": "Optional image to crop from, with the mask's dimensions. Default is the mask itself",
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Crypt index as reported by crypt_count (0 = topmost)",
					},
					"pad": map[string]interface{}{
						"type":        "integer",
						"description": "Margin around the crypt in pixels. Default 10",
						"default":     10,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path", "index"},
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
