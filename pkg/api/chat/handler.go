package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"finsight/pkg/api/analysis"
	"finsight/pkg/core/analyze"
	"finsight/pkg/core/ratelimit"
	"finsight/pkg/core/store"
)

const (
	chatRateMax    = 30
	chatRateWindow = time.Minute
)

// apologyMessage is what users see when the model call fails. The core
// propagates *AIServiceError; the user-facing substitution happens here.
const apologyMessage = "Sorry, I could not answer that right now. Please try again in a moment."

// Handler provides the document Q&A endpoint.
type Handler struct {
	svc     *analyze.Service
	repo    *store.AnalysisRepo
	limiter ratelimit.Store
}

// NewHandler creates a new chat handler.
func NewHandler(svc *analyze.Service, repo *store.AnalysisRepo, limiter ratelimit.Store) *Handler {
	return &Handler{svc: svc, repo: repo, limiter: limiter}
}

type chatRequest struct {
	AnalysisID string `json:"analysis_id"`
	Message    string `json:"message"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Degraded bool   `json:"degraded,omitempty"`
}

// HandleChat answers a question about a previously analyzed document.
// POST /api/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
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

	result := h.limiter.Check("chat:"+analysis.ClientKey(r), chatRateMax, chatRateWindow)
	if !result.Allowed {
		w.Header().Set("Retry-After", result.ResetTime.UTC().Format(http.TimeFormat))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	var analysisCtx *analyze.AnalysisResult
	var excerpt string
	if req.AnalysisID != "" {
		record, err := h.repo.LoadByAnalysis(r.Context(), req.AnalysisID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		analysisCtx = record.Analysis
		excerpt = record.SourceText
	}

	reply, err := h.svc.RespondToQuery(r.Context(), req.Message, analysisCtx, excerpt)
	if err != nil {
		// Substitute the apology instead of failing the chat turn
		json.NewEncoder(w).Encode(chatResponse{Reply: apologyMessage, Degraded: true})
		return
	}

	json.NewEncoder(w).Encode(chatResponse{Reply: reply})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
