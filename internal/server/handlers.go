package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trusteehq/formscan/internal/compliance"
)

type analyzeDocumentRequest struct {
	DocumentID    string         `json:"documentId"`
	DocumentText  string         `json:"documentText,omitempty"`
	DocumentPath  string         `json:"documentPath,omitempty"`
	FormNumber    string         `json:"formNumber,omitempty"`
	FormType      string         `json:"formType,omitempty"`
	ExtractedInfo map[string]any `json:"extractedInfo,omitempty"`
}

type mapFormRequest struct {
	FormType string            `json:"formType"`
	Data     map[string]string `json:"data"`
}

type formSummary struct {
	FormNumber string `json:"formNumber"`
	Name       string `json:"name"`
	FieldCount int    `json:"fieldCount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyzeDocument runs the full pipeline for one document. Any
// failure answers 500 with the error message so callers never mistake a
// broken analysis for a compliant one.
func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req analyzeDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}

	text := req.DocumentText
	if text == "" && req.DocumentPath != "" {
		if s.documents == nil {
			s.writeError(w, http.StatusInternalServerError, "document path given but no document directory is configured")
			return
		}
		extracted, err := s.documents.ExtractText(req.DocumentPath)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		text = extracted
	}

	info := req.ExtractedInfo
	formNumber := req.FormNumber
	formType := req.FormType
	if info == nil {
		result := s.extractor.Extract(text)
		info = make(map[string]any, len(result.Fields))
		for k, v := range result.Fields {
			info[k] = v
		}
		if formNumber == "" {
			formNumber = result.FormNumber
		}
		if formType == "" {
			formType = result.FormType
		}
	}

	report, err := s.analyzer.Analyze(r.Context(), compliance.AnalyzeRequest{
		DocumentID:    req.DocumentID,
		ExtractedInfo: info,
		FormNumber:    formNumber,
		FormType:      formType,
	})
	if err != nil {
		s.logger.Error("compliance analysis failed", "documentId", req.DocumentID, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleGetCompliance returns the stored analysis for a document. A
// document without a stored analysis is a failure, not an empty result.
func (s *Server) handleGetCompliance(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	result, err := s.store.GetComplianceResult(r.Context(), documentID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMapForm(w http.ResponseWriter, r *http.Request) {
	var req mapFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := s.mapper.MapFormFields(req.FormType, req.Data)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidateForm(w http.ResponseWriter, r *http.Request) {
	var req mapFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := s.mapper.ValidateForm(req.FormType, req.Data)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListForms(w http.ResponseWriter, _ *http.Request) {
	defs := s.registry.Definitions()

	summaries := make([]formSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, formSummary{
			FormNumber: def.FormNumber,
			Name:       def.Title,
			FieldCount: def.FieldCount(),
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"forms": summaries})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
