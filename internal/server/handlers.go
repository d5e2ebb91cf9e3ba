package server

import (
	"encoding/json"
	"net/http"

	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/pipeline"
	"github.com/strandlab/strandplot/pkg/theme"
)

// drawRequest is the POST /api/v1/draw body. Options are decoded over
// the default style, so omitted keys keep their defaults.
type drawRequest struct {
	Structure string       `json:"structure"`
	Sequence  string       `json:"sequence,omitempty"`
	Format    string       `json:"format,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`
	Options   *svg.Options `json:"options,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req drawRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "invalid request body: %s", err))
		return
	}

	style := theme.Default()
	if req.Options != nil {
		style = *req.Options
		fillStyleDefaults(&style)
	}

	opts := pipeline.Options{
		Structure: req.Structure,
		Sequence:  req.Sequence,
		Format:    req.Format,
		Style:     style,
		Refresh:   req.Refresh,
		Logger:    s.cfg.Logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(result.Format))
	if result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifact)
}

// fillStyleDefaults backfills zero-valued style knobs that a partial
// options object would otherwise wipe out.
func fillStyleDefaults(style *svg.Options) {
	def := svg.DefaultOptions()
	if style.Scale == 0 {
		style.Scale = def.Scale
	}
	if style.BackboneWidth == 0 {
		style.BackboneWidth = def.BackboneWidth
	}
	if style.BackboneColor == "" {
		style.BackboneColor = def.BackboneColor
	}
	if style.PairWidth == 0 {
		style.PairWidth = def.PairWidth
	}
	if style.PairColor == "" {
		style.PairColor = def.PairColor
	}
	if style.BaseRadius == 0 {
		style.BaseRadius = def.BaseRadius
	}
	if style.BaseFill == "" {
		style.BaseFill = def.BaseFill
	}
	if style.BaseStrokeWidth == 0 {
		style.BaseStrokeWidth = def.BaseStrokeWidth
	}
	if style.FontSize == 0 {
		style.FontSize = def.FontSize
	}
	if style.Legend == "" {
		style.Legend = def.Legend
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// writeError maps an error code to an HTTP status and writes the JSON
// error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	s.cfg.Logger.Warn("request failed",
		"code", code,
		"error", err,
		"request_id", RequestID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:     errorBody{Code: string(code), Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidNotation,
		errors.ErrCodeUnmatchedOpen,
		errors.ErrCodeUnmatchedClose,
		errors.ErrCodeInvalidSequence,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTheme,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
