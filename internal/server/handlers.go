package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/starroute/pkg/buildinfo"
	"github.com/matzehuels/starroute/pkg/config"
	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/observability"
	"github.com/matzehuels/starroute/pkg/route"
)

// RouteRequest is the body of POST /v1/routes.
type RouteRequest struct {
	Config  *config.Config `json:"config"`
	Options route.Options  `json:"options"`
	Refresh bool           `json:"refresh,omitempty"`
}

// GraphRequest is the body of POST /v1/graph.
type GraphRequest struct {
	Config   *config.Config `json:"config"`
	Selected []string       `json:"selected,omitempty"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Config == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig, "request has no config"))
		return
	}
	req.Options.Refresh = req.Refresh

	rt, err := s.runner.Run(r.Context(), route.Input{
		Config:  req.Config,
		Catalog: s.catalog,
		Options: req.Options,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = route.FormatSVG
	}
	var req GraphRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Config == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig, "request has no config"))
		return
	}

	data, _, err := s.runner.Graph(r.Context(), req.Config, s.catalog, format, req.Selected)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ct := "text/vnd.graphviz; charset=utf-8"
	if format == route.FormatSVG {
		ct = "image/svg+xml"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(err error) int {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if stderrors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	code := errors.GetCode(err)
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeConfigNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeNoValidRoute:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// observe reports each request to the registered HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
