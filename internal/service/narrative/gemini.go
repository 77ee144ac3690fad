package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ayizan-labs/mythos/backend/internal/config"
)

// geminiModel adapts the Gemini SDK to the textModel interface.
type geminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func newGeminiModel(ctx context.Context, cfg config.GeminiConfig) (*geminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiModel{
		client: client,
		model:  client.GenerativeModel(cfg.Model),
	}, nil
}

func (g *geminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in model response")
	}

	part, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected part type %T in model response", resp.Candidates[0].Content.Parts[0])
	}

	return strings.TrimSpace(string(part)), nil
}

func (g *geminiModel) Close() error {
	return g.client.Close()
}
