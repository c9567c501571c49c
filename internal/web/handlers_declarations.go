package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/customs/internal/core"
	"github.com/go-chi/chi/v5"
)

// decodeJSON reads a size-limited JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// decodeList decodes a raw JSON value that must be an array. A missing or
// null value yields a nil slice so the service can reject it.
func decodeList[T any](raw json.RawMessage, field string) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &core.ValidationError{Field: field, Reason: "must be an array"}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *Server) handleListDeclarations(w http.ResponseWriter, r *http.Request) {
	decls, err := s.service.ListDeclarations(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decls)
}

func (s *Server) handleGetDeclaration(w http.ResponseWriter, r *http.Request) {
	decl, err := s.service.GetDeclaration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decl)
}

func (s *Server) handleCreateDeclaration(w http.ResponseWriter, r *http.Request) {
	var in core.DeclarationInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := withRequestMetadata(r.Context(), r)
	decl, err := s.service.CreateDeclaration(ctx, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, decl)
}

func (s *Server) handleUpdateDeclaration(w http.ResponseWriter, r *http.Request) {
	var in core.DeclarationInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := withRequestMetadata(r.Context(), r)
	decl, err := s.service.UpdateDeclaration(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decl)
}

// handleReplaceItems accepts either a bare array or {"items": [...]}.
func (s *Server) handleReplaceItems(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := s.decodeJSON(w, r, &raw); err != nil {
		s.respondError(w, r, err)
		return
	}

	var wrapped struct {
		Items json.RawMessage `json:"items"`
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			s.respondError(w, r, fmt.Errorf("%w: %v", errInvalidBody, err))
			return
		}
		raw = wrapped.Items
	}

	items, err := decodeList[core.ItemInput](raw, "items")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := withRequestMetadata(r.Context(), r)
	decl, err := s.service.ReplaceItems(ctx, chi.URLParam(r, "id"), items)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decl)
}

func (s *Server) handleDeleteDeclaration(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r.Context(), r)
	if err := s.service.DeleteDeclaration(ctx, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// BulkDeleteResponse reports how many declarations a bulk delete removed.
type BulkDeleteResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs json.RawMessage `json:"ids"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	ids, err := decodeList[string](req.IDs, "ids")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := withRequestMetadata(r.Context(), r)
	deleted, err := s.service.DeleteDeclarations(ctx, ids)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, BulkDeleteResponse{Success: true, DeletedCount: deleted})
}
