package analysis

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finsight/pkg/core/analyze"
	"finsight/pkg/core/ratelimit"
	"finsight/pkg/core/store"
)

func newTestHandler() *Handler {
	return NewHandler(analyze.NewService(nil), store.NewAnalysisRepo(), ratelimit.NewMemoryStore())
}

func TestHandleDelete_Validation(t *testing.T) {
	h := newTestHandler()

	t.Run("method not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleDelete(w, httptest.NewRequest("GET", "/api/analysis/delete", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleDelete(w, httptest.NewRequest("POST", "/api/analysis/delete", strings.NewReader("not json")))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("missing file_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleDelete(w, httptest.NewRequest("POST", "/api/analysis/delete", strings.NewReader(`{}`)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.RemoteAddr = "10.0.0.5:51234"
	if got := ClientKey(r); got != "10.0.0.5" {
		t.Errorf("ClientKey = %q, want 10.0.0.5", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientKey(r); got != "203.0.113.7" {
		t.Errorf("ClientKey = %q, want first forwarded hop", got)
	}
}
