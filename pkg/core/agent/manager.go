package agent

import (
	"context"
	"fmt"

	"finsight/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager owns the provider instances and resolves which provider serves a
// given agent role ("analysis", "chat"). Providers are constructed once here
// and injected into services, never created per request.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(ctx context.Context, config Config) (*Manager, error) {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}

	gemini, err := llm.NewGeminiProvider(ctx, modelFor(config, "analysis"))
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini provider: %w", err)
	}
	chat, err := llm.NewGeminiChatProvider(ctx, modelFor(config, "chat"))
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini chat provider: %w", err)
	}

	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":      gemini,
			"gemini-chat": chat,
			"deepseek":    llm.NewDeepSeekProvider(),
		},
	}, nil
}

func modelFor(config Config, agentType string) string {
	if agentConfig, ok := config.Agents[agentType]; ok {
		return agentConfig.Model
	}
	return ""
}

// GetProvider resolves the provider for an agent role.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	// 1. Check for agent-specific override
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}

	// 2. Use global active provider
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	// 3. Fallback
	return m.providers["gemini"]
}

// ExecutePrompt handles instruction adaptation before sending to the model.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)

	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)

	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
