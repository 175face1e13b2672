package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pipelineIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Pipeline ID returned by pipeline_create",
	}
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Pipeline lifecycle
		{
			Name:        "pipeline_create",
			Description: "Create a vision pipeline from a TOML or YAML configuration. Either config_path or config must be given. Returns the pipeline ID used by the other pipeline tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"config_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a .toml, .yaml or .yml pipeline configuration",
					},
					"config": map[string]interface{}{
						"type":        "string",
						"description": "Inline pipeline configuration",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"toml", "yaml"},
						"description": "Syntax of the inline configuration. Default toml",
						"default":     "toml",
					},
				},
			},
		},
		{
			Name:        "pipeline_direct",
			Description: "Run one frame through a pipeline: read the file fresh, detect regions, select the target amount, compute the directive and apply the monitors. Returns the directive and the regions it was computed from.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pipeline_id": pipelineIDProperty(),
					"path":        pathProperty(),
				},
				"required": []string{"pipeline_id", "path"},
			},
		},
		{
			Name:        "pipeline_reset",
			Description: "Clear the state of a pipeline's stateful monitors (PID, smoothing, hold).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pipeline_id": pipelineIDProperty(),
				},
				"required": []string{"pipeline_id"},
			},
		},
		{
			Name:        "pipeline_halt",
			Description: "Engage or release a pipeline's stopper. While engaged every frame yields the stop directive and later monitors are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pipeline_id": pipelineIDProperty(),
					"engaged": map[string]interface{}{
						"type":        "boolean",
						"description": "true to halt, false to resume. Default true",
						"default":     true,
					},
				},
				"required": []string{"pipeline_id"},
			},
		},
		{
			Name:        "pipeline_list",
			Description: "List the pipelines created on this server.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pipeline_delete",
			Description: "Delete a pipeline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pipeline_id": pipelineIDProperty(),
				},
				"required": []string{"pipeline_id"},
			},
		},

		// One-off detection
		{
			Name:        "image_detect_regions",
			Description: "Find bright, dark or coloured blobs in an image. Returns bounding boxes, centers, pixel counts and mean colours in raster order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance threshold 0-255. Default 200",
						"default":     200,
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Select pixels darker than the threshold",
						"default":     false,
					},
					"target_color": map[string]interface{}{
						"type":        "string",
						"description": "Select pixels close to this hex colour (#RRGGBB) instead of thresholding",
					},
					"color_tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum CIE-Lab distance to target_color. Default 0.15",
						"default":     0.15,
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied first. Default 0 (off)",
						"default":     0,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest blob in pixels. Default 10",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_text",
			Description: "Find words in an image with OCR. Returns each word with its bounding box and confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum confidence 0.0-1.0. Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
