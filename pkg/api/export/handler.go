package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finsight/pkg/core/export"
	"finsight/pkg/core/store"
)

// Handler renders stored analyses into downloadable artifacts.
type Handler struct {
	repo *store.AnalysisRepo
}

// NewHandler creates a new export handler.
func NewHandler(repo *store.AnalysisRepo) *Handler {
	return &Handler{repo: repo}
}

type exportRequest struct {
	AnalysisID string `json:"analysis_id"`
	Format     string `json:"format"` // pdf | word | notion
	Title      string `json:"title,omitempty"`
}

// HandleExport renders the requested format and streams the bytes back with
// the suggested filename.
// POST /api/export
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AnalysisID == "" {
		writeError(w, http.StatusBadRequest, "analysis_id is required")
		return
	}

	record, err := h.repo.LoadByAnalysis(r.Context(), req.AnalysisID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	title := req.Title
	if title == "" {
		title = "Financial Analysis: " + record.Metadata.FileName
	}

	data := &export.ExportData{
		Title:           title,
		Summary:         record.Analysis.Summary,
		KPIs:            record.Analysis.KPIs,
		Insights:        record.Dashboard.Insights,
		Risks:           record.Analysis.Risks,
		Opportunities:   record.Analysis.Opportunities,
		Recommendations: record.Analysis.Recommendations,
		GeneratedAt:     time.Now().UTC(),
	}

	artifact, err := export.Render(data, req.Format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Bytes)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
