package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/cutout-mcp/internal/compress"
	"github.com/ironsheep/cutout-mcp/internal/imaging"
	"github.com/ironsheep/cutout-mcp/internal/segment"
	"github.com/ironsheep/cutout-mcp/internal/selection"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.log.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool completed")

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Background Removal
	case "image_segment":
		return s.handleImageSegment(args)
	case "image_remove_color":
		return s.handleImageRemoveColor(args)
	case "image_magic_wand":
		return s.handleImageMagicWand(args)

	// Transforms
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_compress":
		return s.handleImageCompress(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

// === Background Removal Handlers ===

type imageSegmentArgs struct {
	Path       string `json:"path"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Iterations *int   `json:"iterations"`
	Cutout     bool   `json:"cutout"`
}

// SegmentResult is returned by image_segment.
type SegmentResult struct {
	segment.Result
	Mask   *imaging.EncodedImage `json:"mask"`
	Cutout *imaging.EncodedImage `json:"cutout,omitempty"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	iterations := s.cfg.Segment.Iterations
	if a.Iterations != nil {
		iterations = *a.Iterations
	}

	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}

	mask := make([]byte, buf.Width*buf.Height)
	rect := segment.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	res, err := s.segmenter.Segment(buf.Pix, buf.Width, buf.Height, rect, iterations, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to segment %s: %w", a.Path, err)
	}

	maskImg, err := imaging.MaskImage(mask, buf.Width, buf.Height)
	if err != nil {
		return nil, err
	}
	encMask, err := imaging.EncodePNGBase64(maskImg)
	if err != nil {
		return nil, err
	}
	out := &SegmentResult{Result: *res, Mask: encMask}

	if a.Cutout {
		cut, err := imaging.ApplyMask(buf, mask)
		if err != nil {
			return nil, err
		}
		if out.Cutout, err = imaging.EncodePNGBase64(cut.Image()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type imageRemoveColorArgs struct {
	Path      string   `json:"path"`
	Color     string   `json:"color"`
	Tolerance *float64 `json:"tolerance"`
	Feather   *int     `json:"feather"`
	Metric    string   `json:"metric"`
}

// RemoveColorResult is returned by image_remove_color.
type RemoveColorResult struct {
	TransparentPixels int                   `json:"transparent_pixels"`
	Image             *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleImageRemoveColor(args json.RawMessage) (interface{}, error) {
	var a imageRemoveColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	target, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}
	metric, err := s.metric(a.Metric)
	if err != nil {
		return nil, err
	}
	opts := selection.ThresholdOptions{
		Tolerance: s.cfg.Selection.Tolerance,
		Feather:   s.cfg.Selection.Feather,
		Metric:    metric,
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.Feather != nil {
		opts.Feather = *a.Feather
	}

	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	out := &imaging.Buffer{Pix: make([]byte, len(buf.Pix)), Width: buf.Width, Height: buf.Height}
	color := selection.Color{R: target.R, G: target.G, B: target.B}
	if _, err := selection.RemoveColor(buf.Pix, buf.Width, buf.Height, color, opts, out.Pix); err != nil {
		return nil, fmt.Errorf("failed to remove color: %w", err)
	}

	transparent := 0
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 0 {
			transparent++
		}
	}
	enc, err := imaging.EncodePNGBase64(out.Image())
	if err != nil {
		return nil, err
	}
	return &RemoveColorResult{TransparentPixels: transparent, Image: enc}, nil
}

type imageMagicWandArgs struct {
	Path      string   `json:"path"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Tolerance *float64 `json:"tolerance"`
	Connected *bool    `json:"connected"`
	Metric    string   `json:"metric"`
}

// MagicWandResult is returned by image_magic_wand.
type MagicWandResult struct {
	SelectedPixels int                   `json:"selected_pixels"`
	Mask           *imaging.EncodedImage `json:"mask"`
}

func (s *Server) handleImageMagicWand(args json.RawMessage) (interface{}, error) {
	var a imageMagicWandArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	metric, err := s.metric(a.Metric)
	if err != nil {
		return nil, err
	}
	opts := selection.WandOptions{
		Tolerance: s.cfg.Selection.Tolerance,
		Connected: true,
		Metric:    metric,
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.Connected != nil {
		opts.Connected = *a.Connected
	}

	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	mask := make([]byte, buf.Width*buf.Height)
	n, err := selection.MagicWand(buf.Pix, buf.Width, buf.Height, a.X, a.Y, opts, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to select: %w", err)
	}

	maskImg, err := imaging.MaskImage(mask, buf.Width, buf.Height)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNGBase64(maskImg)
	if err != nil {
		return nil, err
	}
	return &MagicWandResult{SelectedPixels: n, Mask: enc}, nil
}

// metric resolves a per-call metric name, falling back to the configured one.
func (s *Server) metric(name string) (selection.Metric, error) {
	if name == "" {
		name = s.cfg.Selection.Metric
	}
	return selection.ParseMetric(name)
}

// === Transform Handlers ===

type imageCropArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Crop(buf, imaging.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height})
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(out.Image())
}

type imageRotateArgs struct {
	Path    string `json:"path"`
	Degrees int    `json:"degrees"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Rotate(buf, a.Degrees)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(out.Image())
}

type imageFlipArgs struct {
	Path      string `json:"path"`
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	dir, err := imaging.ParseFlipDirection(a.Direction)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Flip(buf, dir)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(out.Image())
}

type imageResizeArgs struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality string `json:"quality"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	quality, err := imaging.ParseResizeQuality(a.Quality)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Resize(buf, a.Width, a.Height, quality)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(out.Image())
}

type imageCompressArgs struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Quality    *int   `json:"quality"`
	TargetSize int    `json:"target_size"`
}

// CompressResult is returned by image_compress.
type CompressResult struct {
	Format      string `json:"format"`
	MimeType    string `json:"mime_type"`
	Quality     int    `json:"quality"`
	Size        int    `json:"size"`
	TargetSize  int    `json:"target_size,omitempty"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleImageCompress(args json.RawMessage) (interface{}, error) {
	var a imageCompressArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = s.cfg.Compress.Format
	}
	format, err := compress.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	quality := s.cfg.Compress.Quality
	if a.Quality != nil {
		quality = *a.Quality
	}

	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}

	var res *compress.Result
	if a.TargetSize > 0 {
		res, err = s.searcher.ToSize(buf, a.TargetSize, format)
	} else {
		res, err = compress.Encode(buf, format, quality)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compress %s: %w", a.Path, err)
	}

	return &CompressResult{
		Format:      res.Format,
		MimeType:    format.MimeType(),
		Quality:     res.Quality,
		Size:        res.Size,
		TargetSize:  a.TargetSize,
		ImageBase64: base64.StdEncoding.EncodeToString(res.Data),
	}, nil
}
