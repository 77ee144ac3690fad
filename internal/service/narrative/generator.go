package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayizan-labs/mythos/backend/internal/config"
	"github.com/ayizan-labs/mythos/backend/internal/model/story"
)

// ErrEmptyNarrative signals that the model answered but produced no usable
// text. It propagates to the orchestrator like any other generation failure.
var ErrEmptyNarrative = errors.New("model returned no usable text")

// The image-prompt derivation always runs in English regardless of the
// narrative language, matching what the image endpoint understands best.
const imagePromptTemplate = `Based on this text: "%s", create a vivid, artistic, visual description (max 15 words) suitable for an AI image generator.
Focus on colors, atmosphere, and haitian artistic style (vibrant, surreal).
Output ONLY the description.`

const repairPromptTemplate = `Create a highly detailed, artistic image prompt (max 20 words) based on this story segment: "%s".
Style: Vibrant, Haitian Art, Surrealism.`

// Narrative bundles the two outputs of one generation pass.
type Narrative struct {
	Text        string
	ImagePrompt string
}

// textModel is the single-call surface of the underlying language model.
type textModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator wraps the remote text model behind the Mythos persona. It keeps
// no local state; every Generate issues exactly two outbound calls.
type Generator struct {
	model           textModel
	defaultLanguage string
	close           func() error
}

// NewGenerator builds a Generator backed by the configured Gemini model.
func NewGenerator(ctx context.Context, cfg config.GeminiConfig, defaultLanguage string) (*Generator, error) {
	model, err := newGeminiModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{
		model:           model,
		defaultLanguage: defaultLanguage,
		close:           model.Close,
	}, nil
}

// Close releases the underlying model client.
func (g *Generator) Close() error {
	if g.close == nil {
		return nil
	}
	return g.close()
}

// Generate produces the narrative text and a derived visual prompt for the
// request. A failure of either remote call propagates unmodified; no partial
// narrative is ever returned.
func (g *Generator) Generate(ctx context.Context, req story.Request) (Narrative, error) {
	language := req.Language
	if strings.TrimSpace(language) == "" {
		language = g.defaultLanguage
	}

	prompt := fmt.Sprintf("%s\n\nUser: %s\nMythos:", directiveFor(language), buildUserPrompt(req))
	text, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		return Narrative{}, fmt.Errorf("narrative generation failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Narrative{}, ErrEmptyNarrative
	}

	imagePrompt, err := g.model.GenerateText(ctx, fmt.Sprintf(imagePromptTemplate, text))
	if err != nil {
		return Narrative{}, fmt.Errorf("image prompt derivation failed: %w", err)
	}
	imagePrompt = strings.TrimSpace(imagePrompt)
	if imagePrompt == "" {
		return Narrative{}, ErrEmptyNarrative
	}

	return Narrative{Text: text, ImagePrompt: imagePrompt}, nil
}

// PromptFromContext asks the model for a fresh short visual prompt based on
// free-text story context. Used by the image repair path.
func (g *Generator) PromptFromContext(ctx context.Context, contextText string) (string, error) {
	prompt, err := g.model.GenerateText(ctx, fmt.Sprintf(repairPromptTemplate, contextText))
	if err != nil {
		return "", fmt.Errorf("repair prompt generation failed: %w", err)
	}
	return strings.TrimSpace(prompt), nil
}

// buildUserPrompt composes the subject line the persona responds to. The
// form labels stay in French, as the original product wrote them.
func buildUserPrompt(req story.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sujet: %s.\nStyle: %s.\nPublic: %s.", req.Topic, req.Genre, req.AgeGroup)
	if req.HaitianSoul {
		b.WriteString("\nIMPORTANT: Intègre des références culturelles Haïtiennes (proverbes, lieux, sagesse des anciens).")
	}
	return b.String()
}
