package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
	"github.com/ironsheep/crypt-count-mcp/internal/count"
	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
	"github.com/ironsheep/crypt-count-mcp/internal/imaging"
	"github.com/ironsheep/crypt-count-mcp/internal/separation"
)

// Tool argument defaults.
const (
	defaultOverlayDim = 40
	defaultCropPad    = 10
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crypt_count", "mask_load").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies the server's defaults to arguments left at zero
//  3. Loads masks and images through the cache as needed
//  4. Calls the appropriate count/separation/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Mask Files
	case "mask_load":
		return s.handleMaskLoad(args)
	case "mask_evict":
		return s.handleMaskEvict(args)

	// Counting
	case "crypt_count":
		return s.handleCryptCount(ctx, args)
	case "crypt_count_dir":
		return s.handleCryptCountDir(ctx, args)

	// Contour Geometry
	case "crypt_separate":
		return s.handleCryptSeparate(ctx, args)
	case "crypt_defects":
		return s.handleCryptDefects(args)

	// Rendering
	case "crypt_overlay":
		return s.handleCryptOverlay(ctx, args)
	case "crypt_crop":
		return s.handleCryptCrop(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared Arguments ===

// countArgs are the separation settings every counting tool accepts.
type countArgs struct {
	Level           int     `json:"level"`
	MinCryptSize    int     `json:"min_crypt_size"`
	DefectThreshold float64 `json:"defect_threshold"`
	Workers         int     `json:"workers"`
}

func (s *Server) level(v int) (uint8, error) {
	switch {
	case v == 0:
		return s.cfg.Level, nil
	case v < 0 || v > 255:
		return 0, fmt.Errorf("level must be between 1 and 255, got %d", v)
	}
	return uint8(v), nil
}

func (s *Server) params(minSize int, threshold float64) separation.Params {
	p := s.cfg.Params
	if minSize != 0 {
		p.MinCryptSize = minSize
	}
	if threshold != 0 {
		p.DefectThreshold = threshold
	}
	return p
}

func (s *Server) options(a countArgs) count.Options {
	opts := count.Options{
		Params:  s.params(a.MinCryptSize, a.DefectThreshold),
		Workers: s.cfg.Workers,
	}
	if a.Workers != 0 {
		opts.Workers = a.Workers
	}
	return opts
}

// countPath loads the mask at path and counts it.
func (s *Server) countPath(ctx context.Context, path string, a countArgs) (*contour.Mask, *count.CryptData, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("path is required")
	}
	level, err := s.level(a.Level)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.cache.Mask(path, level)
	if err != nil {
		return nil, nil, err
	}
	data, err := count.CountMask(ctx, m, s.options(a))
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

// === Mask File Handlers ===

type maskLoadArgs struct {
	Path  string `json:"path"`
	Level int    `json:"level"`
}

func (s *Server) handleMaskLoad(args json.RawMessage) (interface{}, error) {
	var a maskLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	level, err := s.level(a.Level)
	if err != nil {
		return nil, err
	}
	return imaging.LoadMaskInfo(s.cache, a.Path, level)
}

type maskEvictArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleMaskEvict(args json.RawMessage) (interface{}, error) {
	var a maskEvictArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	msg := "cache cleared"
	if a.Path == "" {
		s.cache.Clear()
	} else {
		s.cache.Evict(a.Path)
		msg = "evicted " + a.Path
	}
	images, masks := s.cache.Len()
	return map[string]interface{}{
		"message": msg,
		"images":  images,
		"masks":   masks,
	}, nil
}

// === Counting Handlers ===

type cryptCountArgs struct {
	Path string `json:"path"`
	countArgs
}

func (s *Server) handleCryptCount(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cryptCountArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, data, err := s.countPath(ctx, a.Path, a.countArgs)
	return data, err
}

type cryptCountDirArgs struct {
	Dir string `json:"dir"`
	countArgs
}

func (s *Server) handleCryptCountDir(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cryptCountDirArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	level, err := s.level(a.Level)
	if err != nil {
		return nil, err
	}
	return count.ProcessDir(ctx, a.Dir, s.cache.Loader(level), s.options(a.countArgs))
}

// === Contour Geometry Handlers ===

// maxOutlineSpan bounds the width and height of a caller-supplied outline.
// Cutting fills each half into a raster the size of its bounding box.
const maxOutlineSpan = 4096

type contourResult struct {
	Points []geometry.Point `json:"points"`
	Area   float64          `json:"area"`
	Top    geometry.Point   `json:"top"`
}

type separateResult struct {
	Count    int             `json:"count"`
	Contours []contourResult `json:"contours"`
}

type cryptSeparateArgs struct {
	Points          []geometry.Point `json:"points"`
	MinCryptSize    int              `json:"min_crypt_size"`
	DefectThreshold float64          `json:"defect_threshold"`
}

func (s *Server) handleCryptSeparate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cryptSeparateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	c := contour.New(a.Points)
	if !c.Connected() {
		return nil, fmt.Errorf("points must be a traced boundary: each point, and the last with the first, must be 8-neighbours")
	}
	if b := c.Bounds(); b.Dx() > maxOutlineSpan || b.Dy() > maxOutlineSpan {
		return nil, fmt.Errorf("outline spans %dx%d pixels, limit is %d", b.Dx(), b.Dy(), maxOutlineSpan)
	}
	p := s.params(a.MinCryptSize, a.DefectThreshold)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := separation.SeparateAll(ctx, []contour.Contour{c}, p, 1)[0]
	if r.Err != nil {
		return nil, r.Err
	}
	leaves := r.Crypts

	res := &separateResult{Count: len(leaves), Contours: make([]contourResult, len(leaves))}
	for i, c := range leaves {
		res.Contours[i] = contourResult{Points: c.Points(), Area: c.Area(), Top: c.Top()}
	}
	return res, nil
}

type defectsResult struct {
	Area       float64          `json:"area"`
	Degenerate bool             `json:"degenerate"` // No hull: fewer than three distinct or only collinear points
	Hull       []geometry.Point `json:"hull"`
	Defects    []contour.Defect `json:"defects"`
}

type cryptDefectsArgs struct {
	Points          []geometry.Point `json:"points"`
	DefectThreshold float64          `json:"defect_threshold"`
}

func (s *Server) handleCryptDefects(args json.RawMessage) (interface{}, error) {
	var a cryptDefectsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p := s.params(0, a.DefectThreshold)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := contour.New(a.Points)
	hull, defects := contour.FindDefects(c, p.DefectThreshold)
	res := &defectsResult{
		Area:       c.Area(),
		Degenerate: hull == nil,
		Hull:       hull.Points(c),
		Defects:    defects,
	}
	if res.Defects == nil {
		res.Defects = []contour.Defect{}
	}
	return res, nil
}

// === Rendering Handlers ===

type cryptOverlayArgs struct {
	Path       string  `json:"path"`
	Background string  `json:"background"`
	Labels     bool    `json:"labels"`
	Thickness  int     `json:"thickness"`
	Color      string  `json:"color"`
	Dim        float64 `json:"dim"`
	countArgs
}

func (s *Server) handleCryptOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cryptOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dim == 0 {
		a.Dim = defaultOverlayDim
	}

	opts := imaging.OverlayOptions{Thickness: a.Thickness, Labels: a.Labels, Dim: a.Dim}
	if a.Color != "" {
		c, err := imaging.ParseHexColor(a.Color)
		if err != nil {
			return nil, err
		}
		opts.Colors = append(opts.Colors, c)
	}

	m, data, err := s.countPath(ctx, a.Path, a.countArgs)
	if err != nil {
		return nil, err
	}
	base, err := s.background(m, a.Background)
	if err != nil {
		return nil, err
	}

	outlines := make([][]geometry.Point, len(data.Crypts))
	for i, c := range data.Crypts {
		outlines[i] = c.Points
	}
	return imaging.RenderOverlay(base, outlines, opts)
}

type cryptCropArgs struct {
	Path  string  `json:"path"`
	Image string  `json:"image"`
	Index int     `json:"index"`
	Pad   int     `json:"pad"`
	Scale float64 `json:"scale"`
	countArgs
}

type cropResult struct {
	Index int     `json:"index"`
	Count int     `json:"count"`
	Area  float64 `json:"area"`
	*imaging.CropResult
}

func (s *Server) handleCryptCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cryptCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Pad == 0 {
		a.Pad = defaultCropPad
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	m, data, err := s.countPath(ctx, a.Path, a.countArgs)
	if err != nil {
		return nil, err
	}
	if a.Index < 0 || a.Index >= data.Count {
		return nil, fmt.Errorf("crypt index %d out of range (found %d crypts)", a.Index, data.Count)
	}
	base, err := s.background(m, a.Image)
	if err != nil {
		return nil, err
	}

	crypt := data.Crypts[a.Index]
	crop, err := imaging.CropBlob(base, geometry.BoundingRect(crypt.Points), a.Pad, a.Scale)
	if err != nil {
		return nil, err
	}
	return &cropResult{Index: crypt.Index, Count: data.Count, Area: crypt.Area, CropResult: crop}, nil
}

// background returns the image at path, or the mask itself when path is
// empty. The image must have the mask's dimensions so outlines line up.
func (s *Server) background(m *contour.Mask, path string) (image.Image, error) {
	if path == "" {
		return m.Gray(), nil
	}
	img, err := s.cache.Image(path)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() != m.Rect.Dx() || b.Dy() != m.Rect.Dy() {
		return nil, fmt.Errorf("background is %dx%d but mask is %dx%d",
			b.Dx(), b.Dy(), m.Rect.Dx(), m.Rect.Dy())
	}
	return img, nil
}
