package agent

import (
	"context"
	"strings"
	"testing"

	"finsight/pkg/core/llm"
)

// fakeProvider records the prompts it receives and tags adapted instructions.
type fakeProvider struct {
	name       string
	lastPrompt string
	lastSystem string
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	f.lastPrompt = prompt
	f.lastSystem = systemPrompt
	return "reply from " + f.name, nil
}

func (f *fakeProvider) AdaptInstructions(raw string) string {
	return "[" + f.name + "] " + raw
}

func newTestManager(cfg Config) (*Manager, map[string]*fakeProvider) {
	fakes := map[string]*fakeProvider{
		"gemini":      {name: "gemini"},
		"gemini-chat": {name: "gemini-chat"},
		"deepseek":    {name: "deepseek"},
	}
	providers := make(map[string]llm.Provider, len(fakes))
	for id, p := range fakes {
		providers[id] = p
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = "gemini"
	}
	return &Manager{config: cfg, providers: providers}, fakes
}

func TestManager_GetProvider(t *testing.T) {
	mgr, fakes := newTestManager(Config{
		ActiveProvider: "deepseek",
		Agents: map[string]AgentConfig{
			"chat": {Provider: "gemini-chat"},
		},
	})

	// Agent-specific override wins
	if got := mgr.GetProvider("chat"); got != fakes["gemini-chat"] {
		t.Error("chat role should resolve to its configured override")
	}
	// No override falls through to the active provider
	if got := mgr.GetProvider("analysis"); got != fakes["deepseek"] {
		t.Error("analysis role should resolve to the active provider")
	}
}

func TestManager_GetProvider_UnknownActiveFallsBack(t *testing.T) {
	mgr, fakes := newTestManager(Config{ActiveProvider: "nonexistent"})
	if got := mgr.GetProvider("analysis"); got != fakes["gemini"] {
		t.Error("unknown active provider should fall back to gemini")
	}
}

func TestManager_ExecutePrompt_AdaptsInstructions(t *testing.T) {
	mgr, fakes := newTestManager(Config{})

	reply, err := mgr.ExecutePrompt(context.Background(), "analysis", "the prompt", "the instructions", nil)
	if err != nil {
		t.Fatalf("ExecutePrompt failed: %v", err)
	}
	if reply != "reply from gemini" {
		t.Errorf("reply = %q", reply)
	}
	gemini := fakes["gemini"]
	if gemini.lastPrompt != "the prompt" {
		t.Errorf("prompt = %q", gemini.lastPrompt)
	}
	// The system prompt must pass through the provider's adaptation hook
	if !strings.HasPrefix(gemini.lastSystem, "[gemini] ") {
		t.Errorf("system prompt was not adapted: %q", gemini.lastSystem)
	}
}

func TestManager_SetGlobalProvider(t *testing.T) {
	mgr, fakes := newTestManager(Config{})

	if err := mgr.SetGlobalProvider("unknown"); err == nil {
		t.Error("expected error for unknown provider")
	}
	if err := mgr.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if mgr.GetActiveProvider() != "deepseek" {
		t.Errorf("active provider = %q, want deepseek", mgr.GetActiveProvider())
	}
	if got := mgr.GetProvider("analysis"); got != fakes["deepseek"] {
		t.Error("switched active provider should serve subsequent roles")
	}
}
