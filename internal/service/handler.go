// internal/service/handler.go
package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"aso-keyword-service/internal/common/correlation"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/validation"
)

// analyzeRequestSchema is the contract for POST /analyze bodies.
var analyzeRequestSchema = []byte(`{
	"type": "object",
	"required": ["keywords"],
	"additionalProperties": false,
	"properties": {
		"keywords": {
			"type": "array",
			"minItems": 1,
			"maxItems": 50,
			"items": {"type": "string", "minLength": 1}
		}
	}
}`)

type analyzeRequest struct {
	Keywords []string `json:"keywords"`
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Code    string                       `json:"code,omitempty"`
	Details []validation.ValidationError `json:"details,omitempty"`
}

// Pinger reports backing-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes the analysis pipeline over HTTP.
type Handler struct {
	analyzer *Analyzer
	redis    Pinger
	logger   logger.Logger
}

// NewHandler builds the HTTP handler. redis may be nil when the
// service runs without a cache.
func NewHandler(analyzer *Analyzer, redis Pinger, log logger.Logger) *Handler {
	return &Handler{analyzer: analyzer, redis: redis, logger: log}
}

// Routes mounts the API onto a fresh mux with correlation IDs applied
// to every request.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", h.Analyze)
	mux.HandleFunc("/health", h.Health)
	return correlation.Middleware(mux)
}

// Analyze handles POST /analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errorResponse{
			Error: "unable to read request body",
			Code:  string(commonerrors.ErrCodeRequestInvalid),
		})
		return
	}

	result, err := validation.ValidateJSON(analyzeRequestSchema, body)
	if err != nil || !result.Valid {
		resp := errorResponse{
			Error: "request body failed validation",
			Code:  string(commonerrors.ErrCodeRequestInvalid),
		}
		if result != nil {
			resp.Details = result.Errors
		}
		h.writeError(w, http.StatusBadRequest, resp)
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, errorResponse{
			Error: "request body is not valid JSON",
			Code:  string(commonerrors.ErrCodeRequestInvalid),
		})
		return
	}

	h.logger.Info("analyze request received", map[string]interface{}{
		"correlation_id": correlation.FromContext(r.Context()),
		"keywords":       len(req.Keywords),
	})

	analysis, err := h.analyzer.Analyze(r.Context(), req.Keywords)
	if err != nil {
		status := http.StatusInternalServerError
		if commonerrors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		h.writeError(w, status, errorResponse{
			Error: err.Error(),
			Code:  string(commonerrors.CodeOf(err)),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// Health handles GET /health. Degraded cache connectivity reports 200
// with a degraded flag since analysis still works without Redis.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	payload := map[string]interface{}{"status": "ok"}
	if h.redis != nil {
		if err := h.redis.Ping(r.Context()); err != nil {
			payload["status"] = "degraded"
			payload["cache"] = "unavailable"
		} else {
			payload["cache"] = "ok"
		}
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, resp errorResponse) {
	h.writeJSON(w, status, resp)
}
