// Package server exposes the mortgage engine over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/internal/optimizer"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/iwvelando/mortgage-forecast/pkg/optimization"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the mortgage API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Route("/mortgage", func(r chi.Router) {
			r.Post("/schedule", h.handleSchedule)
			r.Post("/export/spreadsheet", h.handleExportSpreadsheet)
			r.Post("/export/analysis", h.handleExportAnalysis)
			r.Post("/optimize", h.handleOptimize)
		})
	})

	return r
}

type scheduleResponse struct {
	RunID      string                   `json:"runId"`
	Parameters config.MortgageConfig    `json:"parameters"`
	Records    []mortgage.MonthlyRecord `json:"records"`
	Summary    mortgage.SummaryResult   `json:"summary"`
	CSV        string                   `json:"csv"`
	Warnings   []string                 `json:"warnings,omitempty"`
	StartDate  string                   `json:"startDate,omitempty"`
	PayoffDate string                   `json:"payoffDate,omitempty"`
	Duration   string                   `json:"duration"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	start := time.Now()
	result, warnings, ok := h.runForecast(w, r, op)
	if !ok {
		return
	}

	csvText, err := output.SpreadsheetString(result.Records)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render schedule: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		RunID:      result.RunID,
		Parameters: config.FromParameters(result.Params),
		Records:    result.Records,
		Summary:    result.Summary,
		CSV:        csvText,
		Warnings:   warnings,
		StartDate:  result.StartDate,
		PayoffDate: result.PayoffDate,
		Duration:   time.Since(start).String(),
	})
}

func (h *handler) handleExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportSpreadsheet"

	result, _, ok := h.runForecast(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.WriteSpreadsheetCSV(&buf, result.Records); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to write spreadsheet: %v", err), op)
		return
	}
	h.writeCSV(w, constants.SpreadsheetFileName, buf.Bytes(), op)
}

func (h *handler) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportAnalysis"

	result, _, ok := h.runForecast(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.WriteAnalysisCSV(&buf, result.Params, result.Summary); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to write analysis: %v", err), op)
		return
	}
	h.writeCSV(w, constants.AnalysisFileName, buf.Bytes(), op)
}

type optimizeResponse struct {
	Parameters config.MortgageConfig `json:"parameters"`
	Result     optimization.Summary  `json:"result"`
	Duration   string                `json:"duration"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"

	start := time.Now()
	query := r.URL.Query()
	target, err := strconv.ParseFloat(query.Get("target"), 64)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid target %q", query.Get("target")), op)
		return
	}
	directive := optimizer.Directive{Field: query.Get("field"), Target: target}

	m, status, err := h.decodeMortgage(w, r)
	if err != nil {
		h.respondError(w, r, status, err.Error(), op)
		return
	}
	params, err := m.ToParameters()
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	runner, err := optimizer.NewRunner(h.logger, params)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	summary, err := runner.Run(directive)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, mortgage.ErrNonConverging) {
			status = http.StatusUnprocessableEntity
		}
		h.respondError(w, r, status, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Parameters: config.FromParameters(params),
		Result:     summary,
		Duration:   time.Since(start).String(),
	})
}

// runForecast decodes the request body and computes its forecast. When ok is
// false the error response has already been written.
func (h *handler) runForecast(w http.ResponseWriter, r *http.Request, op string) (result *forecast.Forecast, warnings []string, ok bool) {
	m, status, err := h.decodeMortgage(w, r)
	if err != nil {
		h.respondError(w, r, status, err.Error(), op)
		return nil, nil, false
	}

	warnings = (&config.Configuration{Mortgage: m}).ValidateConfiguration()

	result, err = forecast.FromConfig(h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context()))), m)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, mortgage.ErrNonConverging) {
			status = http.StatusUnprocessableEntity
		}
		h.respondError(w, r, status, err.Error(), op)
		return nil, nil, false
	}

	h.logger.Info("computed mortgage schedule",
		zap.String("op", op),
		zap.String("run_id", result.RunID),
		zap.Int("months", result.Summary.MonthsToPayoff),
		zap.Duration("duration", result.Duration),
	)
	return result, warnings, true
}

// decodeMortgage reads a mortgage configuration encoded as JSON, or as YAML
// when the request says so.
func (h *handler) decodeMortgage(w http.ResponseWriter, r *http.Request) (config.MortgageConfig, int, error) {
	var m config.MortgageConfig

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return m, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		return m, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return m, http.StatusBadRequest, errors.New("missing mortgage configuration")
	}

	if isYAML(r.Header.Get("Content-Type")) {
		if err := yaml.Unmarshal(body, &m); err != nil {
			return m, http.StatusBadRequest, fmt.Errorf("failed to decode configuration: %w", err)
		}
		return m, http.StatusOK, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return m, http.StatusBadRequest, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return m, http.StatusOK, nil
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("mortgage request failed",
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeCSV(w http.ResponseWriter, filename string, data []byte, op string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
