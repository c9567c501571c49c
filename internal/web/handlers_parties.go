package web

import (
	"net/http"

	"github.com/JonMunkholm/customs/internal/core"
)

func (s *Server) handleListImporters(w http.ResponseWriter, r *http.Request) {
	importers, err := s.service.ListImporters(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, importers)
}

// handleListExporters lists exporters, narrowed to one importer when the
// importerId query parameter is set.
func (s *Server) handleListExporters(w http.ResponseWriter, r *http.Request) {
	exporters, err := s.service.ListExporters(r.Context(), r.URL.Query().Get("importerId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, exporters)
}

func (s *Server) handleListTariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := s.service.ListTariffs(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if tariffs == nil {
		tariffs = []core.TariffDefinition{}
	}
	writeJSON(w, r, http.StatusOK, tariffs)
}

// handleImportTariffs merges a CSV tariff table sent as the raw request body.
func (s *Server) handleImportTariffs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	ctx := withRequestMetadata(r.Context(), r)
	result, err := s.service.ImportTariffs(ctx, r.Body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
