package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// fakeExecutor returns a canned response or error and records the last call.
type fakeExecutor struct {
	response   string
	err        error
	lastRole   string
	lastPrompt string
	lastSystem string
}

func (f *fakeExecutor) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	f.lastRole = agentType
	f.lastPrompt = rawPrompt
	f.lastSystem = rawSystemPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestService_Analyze(t *testing.T) {
	exec := &fakeExecutor{response: wellFormedResponse}
	svc := NewService(exec)

	result, err := svc.Analyze(context.Background(), "document text here", "q3.pdf", "")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Summary != "S" {
		t.Errorf("expected summary S, got %q", result.Summary)
	}

	if exec.lastRole != RoleAnalysis {
		t.Errorf("expected analysis role, got %q", exec.lastRole)
	}
	// The prompt must carry the file name, the text and the schema contract
	for _, want := range []string{"q3.pdf", "document text here", `"kpis"`, `"N/A"`} {
		if !strings.Contains(exec.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if exec.lastSystem == "" {
		t.Error("analyst persona should travel as the system prompt")
	}
}

func TestService_Analyze_CustomPromptReplacesPersona(t *testing.T) {
	exec := &fakeExecutor{response: wellFormedResponse}
	svc := NewService(exec)

	_, err := svc.Analyze(context.Background(), "text", "f.csv", "Focus only on liquidity.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if exec.lastSystem != "Focus only on liquidity." {
		t.Errorf("custom prompt should replace the persona, got %q", exec.lastSystem)
	}
}

func TestService_Analyze_ServiceFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("quota exhausted")}
	svc := NewService(exec)

	_, err := svc.Analyze(context.Background(), "text", "f.csv", "")
	if err == nil {
		t.Fatal("expected error for provider failure")
	}
	var svcErr *AIServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("expected *AIServiceError, got %T", err)
	}
}

func TestService_Analyze_MalformedResponseFallsBack(t *testing.T) {
	exec := &fakeExecutor{response: "no json here at all"}
	svc := NewService(exec)

	result, err := svc.Analyze(context.Background(), "text", "f.csv", "")
	if err != nil {
		t.Fatalf("malformed output must not fail the pipeline, got %v", err)
	}
	if result.Summary != fallbackSummary {
		t.Errorf("expected fallback summary, got %q", result.Summary)
	}
	if result.KPIs.Revenue != KPIUnavailable {
		t.Errorf("expected N/A revenue in fallback, got %q", result.KPIs.Revenue)
	}
}

func TestService_RespondToQuery(t *testing.T) {
	exec := &fakeExecutor{response: "Net profit rose 20% year over year."}
	svc := NewService(exec)

	analysisCtx := &AnalysisResult{
		Summary: "Solid quarter.",
		KPIs: KPIs{
			Revenue: "$2M", NetProfit: "$400K", GrowthRate: "20%", CashFlow: "$100K",
		},
		Risks:         []string{"customer concentration"},
		Opportunities: []string{"new markets"},
	}

	excerpt := strings.Repeat("z", 5000)
	reply, err := svc.RespondToQuery(context.Background(), "How is profitability?", analysisCtx, excerpt)
	if err != nil {
		t.Fatalf("RespondToQuery failed: %v", err)
	}
	if reply != "Net profit rose 20% year over year." {
		t.Errorf("expected raw model reply, got %q", reply)
	}

	if exec.lastRole != RoleChat {
		t.Errorf("expected chat role, got %q", exec.lastRole)
	}
	for _, want := range []string{"Solid quarter.", "$400K", "customer concentration", "How is profitability?"} {
		if !strings.Contains(exec.lastPrompt, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
	// Excerpt is bounded to ~2000 chars
	if strings.Contains(exec.lastPrompt, strings.Repeat("z", 2001)) {
		t.Error("document excerpt should be truncated")
	}
}

func TestService_RespondToQuery_ExcerptKeepsValidUTF8(t *testing.T) {
	exec := &fakeExecutor{response: "ok"}
	svc := NewService(exec)

	// Each rune is 3 bytes, so a naive byte cut at 2000 would land mid-rune.
	excerpt := strings.Repeat("€", 1500)
	if _, err := svc.RespondToQuery(context.Background(), "hello", nil, excerpt); err != nil {
		t.Fatalf("RespondToQuery failed: %v", err)
	}
	if !utf8.ValidString(exec.lastPrompt) {
		t.Error("truncated excerpt produced invalid UTF-8 in the prompt")
	}
}

func TestService_RespondToQuery_PropagatesFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("timeout")}
	svc := NewService(exec)

	_, err := svc.RespondToQuery(context.Background(), "hello", nil, "")
	if err == nil {
		t.Fatal("expected error to propagate on chat path")
	}
	var svcErr *AIServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("expected *AIServiceError, got %T", err)
	}
}
