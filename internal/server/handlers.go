package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/config"
	"github.com/ironsheep/vision-director/internal/detection"
	"github.com/ironsheep/vision-director/internal/imaging"
	"github.com/ironsheep/vision-director/internal/ocr"
	"github.com/ironsheep/vision-director/internal/vision"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pipeline_create", "pipeline_direct").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall runs the named tool. Bad params answer -32602, a failing
// tool -32000 with the error text as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	return resultResponse(req.ID, textContent(result))
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Pipeline lifecycle
	case "pipeline_create":
		return s.handlePipelineCreate(args)
	case "pipeline_direct":
		return s.handlePipelineDirect(args)
	case "pipeline_reset":
		return s.handlePipelineReset(args)
	case "pipeline_halt":
		return s.handlePipelineHalt(args)
	case "pipeline_list":
		return s.handlePipelineList(args)
	case "pipeline_delete":
		return s.handlePipelineDelete(args)

	// One-off detection
	case "image_detect_regions":
		return s.handleImageDetectRegions(args)
	case "image_detect_text":
		return s.handleImageDetectText(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// === Pipeline Handlers ===

type pipelineCreateArgs struct {
	ConfigPath string `json:"config_path"`
	Config     string `json:"config"`
	Format     string `json:"format"`
}

func (s *Server) handlePipelineCreate(args json.RawMessage) (interface{}, error) {
	var a pipelineCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		cfg    *config.File
		source string
		err    error
	)
	switch {
	case a.ConfigPath != "" && a.Config != "":
		return nil, errors.New("give either config_path or config, not both")
	case a.ConfigPath != "":
		cfg, err = config.Load(a.ConfigPath)
		source = a.ConfigPath
	case a.Config != "":
		if a.Format == "" {
			a.Format = string(config.FormatTOML)
		}
		cfg, err = config.Parse([]byte(a.Config), config.Format(a.Format))
		source = "inline"
	default:
		return nil, errors.New("config_path or config is required")
	}
	if err != nil {
		return nil, err
	}
	return s.AddPipeline(cfg, source)
}

type pipelineIDArgs struct {
	PipelineID string `json:"pipeline_id"`
}

type pipelineDirectArgs struct {
	PipelineID string `json:"pipeline_id"`
	Path       string `json:"path"`
}

// DirectResult is the pipeline_direct response.
type DirectResult struct {
	PipelineID string `json:"pipeline_id"`
	Frame      int    `json:"frame"`
	vision.Outcome
}

func (s *Server) handlePipelineDirect(args json.RawMessage) (interface{}, error) {
	var a pipelineDirectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.lookupPipeline(a.PipelineID)
	if err != nil {
		return nil, err
	}

	// Not cached: cameras overwrite the same snapshot path every tick.
	img, err := imaging.LoadFile(a.Path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	out, err := p.proc.Process(img)
	if err != nil {
		return nil, err
	}
	p.frames++
	return DirectResult{PipelineID: p.id, Frame: p.frames, Outcome: out}, nil
}

func (s *Server) handlePipelineReset(args json.RawMessage) (interface{}, error) {
	var a pipelineIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.lookupPipeline(a.PipelineID)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.proc.Reset()
	p.mu.Unlock()
	return p.info(), nil
}

type pipelineHaltArgs struct {
	PipelineID string `json:"pipeline_id"`
	Engaged    *bool  `json:"engaged"`
}

func (s *Server) handlePipelineHalt(args json.RawMessage) (interface{}, error) {
	var a pipelineHaltArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	engaged := true
	if a.Engaged != nil {
		engaged = *a.Engaged
	}
	p, err := s.lookupPipeline(a.PipelineID)
	if err != nil {
		return nil, err
	}
	// Halt does not take p.mu: a frame already running finishes unhalted,
	// the next one sees the stopper. The info below waits for that frame.
	p.proc.Halt(engaged)
	s.logger.Info("pipeline halt", zap.String("pipeline_id", p.id), zap.Bool("engaged", engaged))
	return p.info(), nil
}

func (s *Server) handlePipelineList(json.RawMessage) (interface{}, error) {
	list := s.Pipelines()
	return map[string]interface{}{
		"count":     len(list),
		"pipelines": list,
	}, nil
}

func (s *Server) handlePipelineDelete(args json.RawMessage) (interface{}, error) {
	var a pipelineIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.removePipeline(a.PipelineID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.PipelineID}, nil
}

// === Detection Handlers ===

type imageDetectRegionsArgs struct {
	Path           string  `json:"path"`
	Threshold      *int    `json:"threshold"`
	Invert         bool    `json:"invert"`
	TargetColor    string  `json:"target_color"`
	ColorTolerance float64 `json:"color_tolerance"`
	BlurRadius     float64 `json:"blur_radius"`
	MinArea        int     `json:"min_area"`
}

// RegionsResult lists detected regions.
type RegionsResult struct {
	Count   int                `json:"count"`
	Regions []detection.Region `json:"regions"`
}

func (s *Server) handleImageDetectRegions(args json.RawMessage) (interface{}, error) {
	var a imageDetectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold := 200
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be 0-255, got %d", threshold)
	}
	if a.ColorTolerance == 0 {
		a.ColorTolerance = detection.DefaultColorTolerance
	}
	if a.MinArea == 0 {
		a.MinArea = detection.DefaultMinArea
	}

	img, err := s.frames.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := detection.BlobDetector{
		BlurRadius:     a.BlurRadius,
		Threshold:      uint8(threshold),
		Invert:         a.Invert,
		TargetColor:    a.TargetColor,
		ColorTolerance: a.ColorTolerance,
		MinArea:        a.MinArea,
	}.Detect(img)
	if err != nil {
		return nil, err
	}
	return regionsResult(regions), nil
}

type imageDetectTextArgs struct {
	Path          string  `json:"path"`
	Language      string  `json:"language"`
	MinConfidence float64 `json:"min_confidence"`
}

func (s *Server) handleImageDetectText(args json.RawMessage) (interface{}, error) {
	var a imageDetectTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinConfidence == 0 {
		a.MinConfidence = 0.5
	}
	img, err := s.frames.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := ocr.TextDetector{Language: a.Language, MinConfidence: a.MinConfidence}.Detect(img)
	if err != nil {
		return nil, err
	}
	return regionsResult(regions), nil
}

func regionsResult(regions []detection.Region) RegionsResult {
	if regions == nil {
		regions = []detection.Region{}
	}
	return RegionsResult{Count: len(regions), Regions: regions}
}
