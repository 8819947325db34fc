package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/wall-takeoff-mcp/internal/detection"
	"github.com/ironsheep/wall-takeoff-mcp/internal/imaging"
)

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// errInvalidParams marks tool argument problems so they map to -32602.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plan_load", "plan_detect_walls").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602; any other tool failure returns -32000
// with the Go error string as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "plan_load":
		return s.handlePlanLoad(args)
	case "plan_calibrate_scale":
		return s.handlePlanCalibrateScale(args)
	case "plan_detect_walls":
		return s.handlePlanDetectWalls(args)
	case "plan_wall_statistics":
		return s.handlePlanWallStatistics(args)
	case "plan_detect_walls_batch":
		return s.handlePlanDetectWallsBatch(ctx, args)
	case "plan_wall_types":
		return s.handlePlanWallTypes()
	case "plan_unload":
		return s.handlePlanUnload(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

// === Plan Information ===

type planLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePlanLoad(args json.RawMessage) (interface{}, error) {
	var a planLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidParams)
	}
	return imaging.LoadPlanInfo(s.cache, a.Path)
}

type planUnloadArgs struct {
	Path string `json:"path"`
}

type unloadReport struct {
	Unloaded string `json:"unloaded"`
	Cached   int    `json:"cached"`
}

// handlePlanUnload drops one plan from the cache, or all of them when no path
// is given.
func (s *Server) handlePlanUnload(args json.RawMessage) (interface{}, error) {
	var a planUnloadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	report := &unloadReport{Unloaded: a.Path}
	if a.Path == "" {
		s.cache.Clear()
		report.Unloaded = "all"
	} else {
		s.cache.Evict(a.Path)
	}
	report.Cached = s.cache.Len()
	return report, nil
}

// === Wall Analysis ===

type planAnalysisArgs struct {
	Path            string          `json:"path"`
	Scale           string          `json:"scale"`
	Region          *imaging.Region `json:"region"`
	DespeckleRadius float64         `json:"despeckle_radius"`
	IncludeSegments bool            `json:"include_segments"`
}

func (a *planAnalysisArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("%w: path is required", errInvalidParams)
	}
	if a.DespeckleRadius < 0 {
		return fmt.Errorf("%w: despeckle_radius must not be negative", errInvalidParams)
	}
	return nil
}

// preparePlan loads a plan from the cache and applies the optional crop and
// despeckle pre-passes.
func (s *Server) preparePlan(a planAnalysisArgs) (image.Image, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != nil {
		img, err = imaging.CropRegion(img, *a.Region)
		if err != nil {
			return nil, err
		}
	}
	return imaging.Despeckle(img, a.DespeckleRadius), nil
}

// wallEntry is the tool-facing view of a measured wall.
type wallEntry struct {
	ID               int                     `json:"id"`
	Type             detection.WallType      `json:"wall_type"`
	LengthPx         int                     `json:"length_px"`
	LengthMeters     float64                 `json:"length_m"`
	ThicknessMeters  float64                 `json:"thickness_m"`
	AreaSquareMeters float64                 `json:"area_m2"`
	AvgThicknessPx   float64                 `json:"avg_thickness_px"`
	OnPerimeter      bool                    `json:"on_perimeter"`
	SegmentCount     int                     `json:"segment_count"`
	Segments         []detection.WallSegment `json:"segments,omitempty"`
}

func newWallEntries(walls []detection.MeasuredWall, includeSegments bool) []wallEntry {
	out := make([]wallEntry, 0, len(walls))
	for _, w := range walls {
		e := wallEntry{
			ID:               w.ID,
			Type:             w.Type,
			LengthPx:         w.LengthPx,
			LengthMeters:     w.LengthMeters,
			ThicknessMeters:  w.ThicknessMeters,
			AreaSquareMeters: w.AreaSquareMeters,
			AvgThicknessPx:   w.AvgThicknessPx,
			OnPerimeter:      w.OnPerimeter,
			SegmentCount:     len(w.Segments),
		}
		if includeSegments {
			e.Segments = w.Segments
		}
		out = append(out, e)
	}
	return out
}

// wallReport is the result of plan_detect_walls.
type wallReport struct {
	AnalysisID  string                   `json:"analysis_id"`
	Path        string                   `json:"path"`
	Region      *imaging.Region          `json:"region,omitempty"`
	ImageWidth  int                      `json:"image_width"`
	ImageHeight int                      `json:"image_height"`
	Scale       detection.ScaleInfo      `json:"scale"`
	Walls       []wallEntry              `json:"walls"`
	Statistics  detection.Statistics     `json:"statistics"`
	Summary     detection.Summary        `json:"summary"`
	Legend      []detection.WallTypeInfo `json:"legend"`
}

func (s *Server) handlePlanDetectWalls(args json.RawMessage) (interface{}, error) {
	var a planAnalysisArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.preparePlan(a)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.AnalyzeImage(img, a.Scale)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", a.Path, err)
	}
	legend, err := detection.Legend()
	if err != nil {
		return nil, err
	}

	return &wallReport{
		AnalysisID:  uuid.NewString(),
		Path:        a.Path,
		Region:      a.Region,
		ImageWidth:  res.ImageWidth,
		ImageHeight: res.ImageHeight,
		Scale:       res.Scale,
		Walls:       newWallEntries(res.Walls, a.IncludeSegments),
		Statistics:  res.Statistics,
		Summary:     res.Summary,
		Legend:      legend,
	}, nil
}

type statisticsReport struct {
	Path       string               `json:"path"`
	Scale      detection.ScaleInfo  `json:"scale"`
	Statistics detection.Statistics `json:"statistics"`
	Summary    detection.Summary    `json:"summary"`
}

func (s *Server) handlePlanWallStatistics(args json.RawMessage) (interface{}, error) {
	var a planAnalysisArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.preparePlan(a)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.AnalyzeImage(img, a.Scale)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", a.Path, err)
	}
	return &statisticsReport{
		Path:       a.Path,
		Scale:      res.Scale,
		Statistics: res.Statistics,
		Summary:    res.Summary,
	}, nil
}

type calibrationReport struct {
	Path        string              `json:"path"`
	ImageWidth  int                 `json:"image_width"`
	ImageHeight int                 `json:"image_height"`
	Scale       detection.ScaleInfo `json:"scale"`
}

func (s *Server) handlePlanCalibrateScale(args json.RawMessage) (interface{}, error) {
	var a planAnalysisArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.preparePlan(a)
	if err != nil {
		return nil, err
	}
	scale, err := s.pipeline.CalibrateImage(img, a.Scale)
	if err != nil {
		return nil, fmt.Errorf("calibrate %s: %w", a.Path, err)
	}
	b := img.Bounds()
	return &calibrationReport{
		Path:        a.Path,
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		Scale:       scale,
	}, nil
}

// === Batch Analysis ===

type planBatchArgs struct {
	Paths []string `json:"paths"`
	Scale string   `json:"scale"`
}

// batchEntry is one plan's outcome in a batch. Per-plan failures are
// reported in Error and do not abort the batch.
type batchEntry struct {
	Path       string               `json:"path"`
	AnalysisID string               `json:"analysis_id,omitempty"`
	Scale      *detection.ScaleInfo `json:"scale,omitempty"`
	Statistics detection.Statistics `json:"statistics,omitempty"`
	Summary    *detection.Summary   `json:"summary,omitempty"`
	Error      string               `json:"error,omitempty"`
}

type batchReport struct {
	Results []batchEntry      `json:"results"`
	Total   detection.Summary `json:"total"`
	Failed  int               `json:"failed"`
}

func (s *Server) handlePlanDetectWallsBatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a planBatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("%w: paths must not be empty", errInvalidParams)
	}

	results := make([]batchEntry, len(a.Paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, path := range a.Paths {
		i, path := i, path
		g.Go(func() error {
			// Cancellation is only observed between plans.
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.analyzeBatchEntry(path, a.Scale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	report := &batchReport{Results: results}
	for _, r := range results {
		if r.Error != "" {
			report.Failed++
			continue
		}
		report.Total.WallCount += r.Summary.WallCount
		report.Total.SegmentCount += r.Summary.SegmentCount
		report.Total.TotalLengthMeters += r.Summary.TotalLengthMeters
		report.Total.TotalAreaSquareMeters += r.Summary.TotalAreaSquareMeters
	}
	return report, nil
}

// analyzeBatchEntry analyzes one plan of a batch. Plans the batch had to load
// are evicted afterwards; plans already cached by plan_load stay cached.
func (s *Server) analyzeBatchEntry(path, scale string) batchEntry {
	entry := batchEntry{Path: path}
	if !s.cache.Contains(path) {
		defer s.cache.Evict(path)
	}
	img, err := s.cache.Load(path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	res, err := s.pipeline.AnalyzeImage(img, scale)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.AnalysisID = uuid.NewString()
	entry.Scale = &res.Scale
	entry.Statistics = res.Statistics
	entry.Summary = &res.Summary
	return entry
}

// === Reference ===

type wallTypesReport struct {
	Legend []detection.WallTypeInfo `json:"legend"`
	Config detection.Config         `json:"config"`
}

func (s *Server) handlePlanWallTypes() (interface{}, error) {
	legend, err := detection.Legend()
	if err != nil {
		return nil, err
	}
	return &wallTypesReport{
		Legend: legend,
		Config: s.pipeline.Config(),
	}, nil
}
