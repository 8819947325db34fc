package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the plan image (PNG, JPEG, GIF, BMP, TIFF or WebP)",
	}
}

func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Drawing scale such as \"1:100\". Omit to estimate it from wall thickness.",
	}
}

func regionProperty() map[string]interface{} {
	coord := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "integer", "description": desc}
	}
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional area to analyze, e.g. to exclude the title block. Wall coordinates are relative to its top-left corner.",
		"properties": map[string]interface{}{
			"x1": coord("Left edge X coordinate (0-based)"),
			"y1": coord("Top edge Y coordinate (0-based)"),
			"x2": coord("Right edge X coordinate (exclusive)"),
			"y2": coord("Bottom edge Y coordinate (exclusive)"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "plan_load",
			Description: "Load a floor plan image and return its dimensions, format and file size. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_calibrate_scale",
			Description: "Determine the pixels-per-meter of a plan. An explicit scale from the scale table is used as is; otherwise it is estimated from typical wall thickness and flagged as approximate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"scale":  scaleProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_detect_walls",
			Description: "Detect walls in a floor plan, classify them (exterior, load_bearing, insulated, partition, drywall) and measure length, thickness and area in meters. Returns per-wall results, per-type statistics and a legend.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"scale":  scaleProperty(),
					"region": regionProperty(),
					"despeckle_radius": map[string]interface{}{
						"type":        "number",
						"description": "Median filter radius in pixels applied before detection to remove scan noise. 0 disables it.",
						"default":     0,
					},
					"include_segments": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the raw wall segments (pixel coordinates) of each wall",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_wall_statistics",
			Description: "Return only the per-type wall statistics and overall totals for a plan, suitable for a tender quantity table.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"scale":  scaleProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_detect_walls_batch",
			Description: "Analyze several plans concurrently. Returns one result per path in the given order plus combined totals. A plan that fails to load is reported in its entry without failing the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the plan images",
					},
					"scale": scaleProperty(),
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "plan_wall_types",
			Description: "List the wall types with their labels and legend colors, and the detection thresholds and scale table currently in force.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "plan_unload",
			Description: "Release a cached plan image. Omit path to release every cached plan. Returns the number of plans still cached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path of the plan to release, as given to plan_load",
					},
				},
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
