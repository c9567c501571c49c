package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/customs/internal/core"
	"github.com/JonMunkholm/customs/internal/customsdoc"
	"github.com/JonMunkholm/customs/internal/logging"
)

// DocumentRequest is the body of a document generation request.
// An empty DeclarationIDs selects every stored declaration.
type DocumentRequest struct {
	MasterBill     core.MasterBillInput `json:"masterBill"`
	DeclarationIDs []string             `json:"declarationIds"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status    string                     `json:"status"`
	Store     string                     `json:"store"`
	Documents core.DocumentLimiterStatus `json:"documents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Store:     "ok",
		Documents: s.service.Limiter().Status(),
	}
	status := http.StatusOK

	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			logging.FromContext(r.Context()).Error("store ping failed", "error", err)
			resp.Status = "degraded"
			resp.Store = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, r, status, resp)
}

func (s *Server) handleGetMasterBill(w http.ResponseWriter, r *http.Request) {
	mb, err := s.service.CurrentMasterBill(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mb)
}

// handleGenerateDocument stores the submitted master bill and returns the
// customs XML as an attachment.
func (s *Server) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	limiter := s.service.Limiter()
	if err := limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer limiter.Release()

	ctx := withRequestMetadata(r.Context(), r)
	job, err := s.service.PrepareDocument(ctx, req.MasterBill, req.DeclarationIDs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeDocument(w, r, job)
}

// handleCurrentDocument re-renders the stored master bill. The optional ids
// query parameter is a comma separated declaration subset.
func (s *Server) handleCurrentDocument(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	limiter := s.service.Limiter()
	if err := limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer limiter.Release()

	job, err := s.service.CurrentDocument(r.Context(), ids)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeDocument(w, r, job)
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, job *core.DocumentJob) {
	body, err := customsdoc.Render(job)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filename := customsdoc.Filename(s.cfg.Document.FilenamePrefix, job.MasterBill)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.FromContext(r.Context()).Error("document write error", "error", err)
	}

	logging.FromContext(r.Context()).Info("document generated",
		"filename", filename,
		"declarations", len(job.Declarations),
		"bytes", len(body),
	)
}
