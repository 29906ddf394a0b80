package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/roadgraph/pkg/buildinfo"
	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/export"
	"github.com/matzehuels/roadgraph/pkg/graph"
	"github.com/matzehuels/roadgraph/pkg/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type formatInfo struct {
	Name      string `json:"name"`
	MIMEType  string `json:"mime_type"`
	Extension string `json:"extension"`
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	out := make([]formatInfo, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		out = append(out, formatInfo{Name: f.String(), MIMEType: f.MIMEType(), Extension: f.Extension()})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{"id": sess.ID, "expires_at": sess.ExpiresAt})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	resp := s.svc.Build(r.Context(), sessionFrom(r), json.RawMessage(body))
	s.respondJSON(w, statusFor(resp.Response), resp)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	g := sessionFrom(r).Graph()
	if g == nil {
		s.respondError(w, errors.New(errors.ErrCodeNoGraph, "no graph has been built yet"))
		return
	}
	s.respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resp := s.svc.Export(sessionFrom(r), chi.URLParam(r, "format"))
	s.respondArtifact(w, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	g, err := graph.ReadJSON(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid graph"))
		return
	}
	s.respondArtifact(w, session.ExportGraph(g, f))
}

// =============================================================================
// Responses
// =============================================================================

func (s *Server) respondArtifact(w http.ResponseWriter, resp session.ExportResponse) {
	if !resp.Success {
		s.respondJSON(w, statusFor(resp.Response), resp.Response)
		return
	}
	w.Header().Set("Content-Type", resp.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Artifact.Content); err != nil {
		s.logger.Warn("write export", "err", err)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	resp := session.Response{Success: false, Message: errors.UserMessage(err), Code: string(code)}
	s.respondJSON(w, statusFor(resp), resp)
}

// statusFor maps a service response to an HTTP status.
func statusFor(resp session.Response) int {
	if resp.Success {
		return http.StatusOK
	}
	switch errors.Code(resp.Code) {
	case errors.ErrCodeInvalidBounds, errors.ErrCodeInvalidInput, errors.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNoGraph, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
