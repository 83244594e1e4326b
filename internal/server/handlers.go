package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/graph"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/metrics"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/sysmon"
)

// GraphResponse is the body of a successful /graph request.
type GraphResponse struct {
	Graph string `json:"graph"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime"`
	Providers []string               `json:"providers"`
	Memory    metrics.MemorySnapshot `json:"memory"`
	System    *sysmon.Stats          `json:"system,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// requireGET answers 405 for anything but GET.
func (s *Server) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// param returns the trimmed query parameter, or a 400 when it is too long.
func (s *Server) param(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if limit := s.cfg.Security.MaxQueryLength; limit > 0 && len(v) > limit {
		writeError(w, http.StatusBadRequest, name+" is too long")
		return "", false
	}
	return v, true
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	query, ok := s.param(w, r, "query")
	if !ok {
		return
	}
	if query == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrEmptyQuery.Message)
		return
	}

	ctx := r.Context()
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	report, err := s.solver.Solve(ctx, query, orchestration.NullProgressReporter{}, io.Discard)
	if err != nil {
		var verr apperrors.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		if apperrors.IsContextError(err) {
			s.logger.Info("search timed out",
				logging.String("request_id", RequestID(r.Context())),
				logging.Err(err))
			writeError(w, http.StatusGatewayTimeout, "query timed out")
			return
		}
		s.logger.Error("search failed", err, logging.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info("search",
		logging.String("request_id", RequestID(r.Context())),
		logging.Duration("elapsed", report.Elapsed),
		logging.String("fallback", strconv.FormatBool(report.Fallback)))
	writeJSON(w, http.StatusOK, answer.NewResponse(report.Result))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	equation, ok := s.param(w, r, "equation")
	if !ok {
		return
	}
	if equation == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrEmptyEquation.Message)
		return
	}
	if s.renderer == nil {
		writeError(w, http.StatusUnprocessableEntity, "graph rendering is disabled")
		return
	}

	png, err := s.renderer.Render(r.Context(), equation)
	if err != nil {
		s.logger.Debug("graph failed",
			logging.String("equation", equation),
			logging.String("request_id", RequestID(r.Context())),
			logging.Err(err))
		writeError(w, http.StatusUnprocessableEntity, "Failed to generate graph: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, GraphResponse{Graph: graph.EncodeBase64(png)})
}

// handlePoints returns the sampled curve of an equation as JSON, for
// clients that draw it themselves. It does not need the renderer.
func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	equation, ok := s.param(w, r, "equation")
	if !ok {
		return
	}
	if equation == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrEmptyEquation.Message)
		return
	}

	series, err := graph.Points(r.Context(), equation)
	if err != nil {
		s.logger.Debug("points failed",
			logging.String("equation", equation),
			logging.String("request_id", RequestID(r.Context())),
			logging.Err(err))
		writeError(w, http.StatusBadRequest, "Invalid expression: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	resp := HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Providers: s.cfg.Providers,
		Memory:    s.memory.Snapshot(),
	}
	if resp.Providers == nil {
		resp.Providers = []string{}
	}
	if s.monitor != nil {
		if st := s.monitor.Latest(); !st.SampledAt.IsZero() {
			resp.System = &st
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}
