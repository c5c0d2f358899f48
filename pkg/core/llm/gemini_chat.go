package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChatProvider serves the conversational path. It uses the
// generative-ai-go SDK with a persistent client and a slightly higher
// temperature than the extraction provider, since chat answers are prose
// rather than structured JSON.
type GeminiChatProvider struct {
	ModelName string
	client    *genai.Client
}

var _ Provider = (*GeminiChatProvider)(nil)

// NewGeminiChatProvider creates the chat client once at startup.
func NewGeminiChatProvider(ctx context.Context, modelName string) (*GeminiChatProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash-exp"
	}

	return &GeminiChatProvider{ModelName: modelName, client: client}, nil
}

// GenerateResponse sends the prompt and returns the concatenated text parts of
// the first candidate.
func (p *GeminiChatProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	model := p.client.GenerativeModel(p.ModelName)
	model.SetTemperature(0.7)

	fullPrompt := prompt
	if systemPrompt != "" {
		fullPrompt = fmt.Sprintf("%s\n\nTask: %s", systemPrompt, prompt)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini chat generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini chat returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying client. Call on shutdown.
func (p *GeminiChatProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiChatProvider) AdaptInstructions(raw string) string {
	return raw
}
