package analyze

import (
	"context"
)

// Agent roles the service executes under. The executor resolves each role to
// a configured provider.
const (
	RoleAnalysis = "analysis"
	RoleChat     = "chat"
)

// Executor runs a prompt under a named agent role, adapting the system
// instructions to whatever the resolved provider expects. agent.Manager is
// the production implementation.
type Executor interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

// Service wraps the two LLM entry points. The executor is injected at
// construction so tests can substitute fakes.
type Service struct {
	exec Executor
}

// NewService builds a service around the given executor.
func NewService(exec Executor) *Service {
	return &Service{exec: exec}
}

// Analyze runs the fixed prompt contract over the extracted document text and
// returns a normalized AnalysisResult. Callers must run ValidateContent
// first. Service-level failures surface as *AIServiceError; malformed model
// output is recovered with the fallback result instead of propagating.
func (s *Service) Analyze(ctx context.Context, text, fileName, customPrompt string) (*AnalysisResult, error) {
	systemPrompt, userPrompt := buildAnalysisPrompt(text, fileName, customPrompt)

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	response, err := s.exec.ExecutePrompt(ctx, RoleAnalysis, userPrompt, systemPrompt, options)
	if err != nil {
		return nil, &AIServiceError{Err: err}
	}

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		// Degrade gracefully: a malformed reply must never crash the pipeline
		return FallbackResult(), nil
	}
	return result, nil
}

// RespondToQuery answers a conversational question about a previously
// analyzed document. Failures are NOT masked here; the chat handler is
// responsible for the user-facing apology.
func (s *Service) RespondToQuery(ctx context.Context, message string, analysisCtx *AnalysisResult, reportExcerpt string) (string, error) {
	systemPrompt, userPrompt := buildChatPrompt(message, analysisCtx, reportExcerpt)

	response, err := s.exec.ExecutePrompt(ctx, RoleChat, userPrompt, systemPrompt, nil)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}

	return response, nil
}
