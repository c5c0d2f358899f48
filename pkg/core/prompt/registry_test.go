package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := Get()
	r.Clear()

	err := r.Register(&PromptTemplate{
		ID:           "analysis.test",
		Category:     "analysis",
		SystemPrompt: "You are a financial analyst.",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pt, err := r.GetPrompt("analysis.test")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if pt.SystemPrompt != "You are a financial analyst." {
		t.Errorf("system prompt = %q", pt.SystemPrompt)
	}

	sys, err := r.GetSystemPrompt("analysis.test")
	if err != nil || sys != pt.SystemPrompt {
		t.Errorf("GetSystemPrompt = %q, %v", sys, err)
	}

	if _, err := r.GetPrompt("analysis.missing"); err == nil {
		t.Error("expected error for unknown prompt ID")
	}
}

func TestRegistry_RejectsEmptyID(t *testing.T) {
	r := Get()
	r.Clear()

	if err := r.Register(&PromptTemplate{SystemPrompt: "no id"}); err == nil {
		t.Error("expected error for empty prompt ID")
	}
}

func TestRegistry_ListByCategory(t *testing.T) {
	r := Get()
	r.Clear()

	r.Register(&PromptTemplate{ID: "analysis.a", Category: "analysis"})
	r.Register(&PromptTemplate{ID: "analysis.b", Category: "analysis"})
	r.Register(&PromptTemplate{ID: "chat.a", Category: "chat"})

	if got := len(r.ListByCategory("analysis")); got != 2 {
		t.Errorf("analysis category has %d prompts, want 2", got)
	}
	if got := len(r.ListByCategory("chat")); got != 1 {
		t.Errorf("chat category has %d prompts, want 1", got)
	}
	if r.Count() != 3 {
		t.Errorf("count = %d, want 3", r.Count())
	}
}

func TestLoadFromDirectory(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "prompts", "analysis")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"name": "Test Analysis", "system_prompt": "You are an analyst."}`
	if err := os.WriteFile(filepath.Join(dir, "financial_documents.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	Get().Clear()
	if err := LoadFromDirectory(base); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// ID and category are derived from the file path when omitted.
	pt, err := Get().GetPrompt("analysis.financial_documents")
	if err != nil {
		t.Fatalf("loaded prompt not found: %v", err)
	}
	if pt.Category != "analysis" {
		t.Errorf("category = %q, want analysis", pt.Category)
	}
	if pt.SystemPrompt != "You are an analyst." {
		t.Errorf("system prompt = %q", pt.SystemPrompt)
	}
}

func TestLoadFromDirectory_MissingDir(t *testing.T) {
	Get().Clear()
	if err := LoadFromDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing prompts directory")
	}
}
