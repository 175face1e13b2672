package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"pipeline_create",
		"pipeline_direct",
		"pipeline_reset",
		"pipeline_halt",
		"pipeline_list",
		"pipeline_delete",
		"image_detect_regions",
		"image_detect_text",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("missing description")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties map")
			}
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required property %s is not defined", name)
				}
			}
		})
	}
}

func TestToolsAreDispatched(t *testing.T) {
	s := New(nil, "")
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, nil)
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("tool %s is listed but not dispatched", tool.Name)
		}
	}
}
