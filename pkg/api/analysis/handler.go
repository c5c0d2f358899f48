package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"finsight/pkg/core/analyze"
	"finsight/pkg/core/dashboard"
	"finsight/pkg/core/extract"
	"finsight/pkg/core/ratelimit"
	"finsight/pkg/core/store"
)

// Upload and rate-limit bounds for the generate endpoint.
const (
	maxUploadBytes     = 32 << 20 // 32 MiB
	generateRateMax    = 10
	generateRateWindow = time.Minute
)

// Handler provides HTTP handlers for analysis generation.
type Handler struct {
	svc     *analyze.Service
	repo    *store.AnalysisRepo
	limiter ratelimit.Store
}

// NewHandler creates a new analysis handler.
func NewHandler(svc *analyze.Service, repo *store.AnalysisRepo, limiter ratelimit.Store) *Handler {
	return &Handler{svc: svc, repo: repo, limiter: limiter}
}

type generateResponse struct {
	FileID     string                  `json:"fileId"`
	AnalysisID string                  `json:"analysisId"`
	Metadata   extract.FileMetadata    `json:"metadata"`
	Analysis   *analyze.AnalysisResult `json:"analysis"`
	Dashboard  *dashboard.Dashboard    `json:"dashboard"`
}

type regenerateRequest struct {
	FileID       string `json:"file_id"`
	CustomPrompt string `json:"custom_prompt"`
}

type deleteRequest struct {
	FileID string `json:"file_id"`
}

// HandleGenerate accepts a multipart upload, extracts the document text,
// runs the analysis pipeline and stores the result.
// POST /api/analysis/generate, form fields: file, type (pdf|excel|csv).
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.checkRate(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	declaredType := r.FormValue("type")
	if declaredType == "" {
		declaredType = typeFromName(header.Filename)
	}

	parsed, err := extract.Parse(data, header.Filename, declaredType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	if err := analyze.ValidateContent(parsed.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Analyze(r.Context(), parsed.Text, header.Filename, "")
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	record := &store.AnalysisRecord{
		FileID:     uuid.New().String(),
		AnalysisID: uuid.New().String(),
		SourceText: parsed.Text,
		Metadata:   parsed.Metadata,
		Analysis:   result,
		Dashboard:  dashboard.Generate(result),
	}
	if err := h.repo.Save(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist analysis: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		FileID:     record.FileID,
		AnalysisID: record.AnalysisID,
		Metadata:   record.Metadata,
		Analysis:   record.Analysis,
		Dashboard:  record.Dashboard,
	})
}

// HandleRegenerate re-runs the analysis over the stored transcript with a
// caller-supplied prompt. Produces a fresh analysis id; the previous result
// is replaced, never mutated in place.
// POST /api/analysis/regenerate
func (h *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.checkRate(w, r) {
		return
	}

	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, "file_id is required")
		return
	}

	record, err := h.repo.LoadByFile(r.Context(), req.FileID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := h.svc.Analyze(r.Context(), record.SourceText, record.Metadata.FileName, req.CustomPrompt)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	record.AnalysisID = uuid.New().String()
	record.Analysis = result
	record.Dashboard = dashboard.Generate(result)
	if err := h.repo.Save(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist analysis: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		FileID:     record.FileID,
		AnalysisID: record.AnalysisID,
		Metadata:   record.Metadata,
		Analysis:   record.Analysis,
		Dashboard:  record.Dashboard,
	})
}

// HandleDelete removes the stored analysis for a file. Idempotent: deleting
// an unknown file id succeeds.
// POST /api/analysis/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, "file_id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), req.FileID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete analysis: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleDashboard returns the derived dashboard for an analysis.
// GET /api/dashboard?analysis_id=...
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	analysisID := r.URL.Query().Get("analysis_id")
	if analysisID == "" {
		writeError(w, http.StatusBadRequest, "analysis_id is required")
		return
	}

	record, err := h.repo.LoadByAnalysis(r.Context(), analysisID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record.Dashboard)
}

func (h *Handler) checkRate(w http.ResponseWriter, r *http.Request) bool {
	result := h.limiter.Check("analysis:"+ClientKey(r), generateRateMax, generateRateWindow)
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
	if !result.Allowed {
		w.Header().Set("Retry-After", result.ResetTime.UTC().Format(http.TimeFormat))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}

// ClientKey identifies the caller for rate limiting: first hop of
// X-Forwarded-For when present, else the remote address.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func typeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extract.TypePDF
	case ".xlsx", ".xls", ".xlsm":
		return extract.TypeExcel
	case ".csv":
		return extract.TypeCSV
	}
	return ""
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
