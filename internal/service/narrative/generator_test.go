package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ayizan-labs/mythos/backend/internal/model/story"
)

type stubModel struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubModel) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func newTestGenerator(model *stubModel) *Generator {
	return &Generator{model: model, defaultLanguage: "Français"}
}

func TestGenerateIssuesTwoCalls(t *testing.T) {
	model := &stubModel{responses: []string{"Yon ti istwa.", "a vivid citadel in vibrant colors"}}
	gen := newTestGenerator(model)

	narr, err := gen.Generate(context.Background(), story.Request{
		Topic:    "La Citadelle Laferrière",
		Genre:    story.GenreEducational,
		AgeGroup: story.AgeGroupChild,
		Language: "Français",
	})
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}

	if len(model.prompts) != 2 {
		t.Fatalf("expected exactly 2 model calls, got %d", len(model.prompts))
	}
	if narr.Text != "Yon ti istwa." {
		t.Fatalf("unexpected narrative text: %q", narr.Text)
	}
	if narr.ImagePrompt != "a vivid citadel in vibrant colors" {
		t.Fatalf("unexpected image prompt: %q", narr.ImagePrompt)
	}

	// The derivation call always runs in English and embeds the narrative.
	if !strings.Contains(model.prompts[1], `Based on this text: "Yon ti istwa."`) {
		t.Fatalf("image prompt call does not embed the narrative: %q", model.prompts[1])
	}
	if !strings.Contains(model.prompts[1], "max 15 words") {
		t.Fatalf("image prompt call missing the length cap: %q", model.prompts[1])
	}
}

func TestGenerateDirectiveSelection(t *testing.T) {
	cases := []struct {
		language string
		marker   string
	}{
		{"Kreyòl Ayisyen", "Reponn an kreyòl ayisyen dabò"},
		{"Français", "Réponds en français"},
		{"English", "Mix English with short Haitian Creole phrases"},
		{"Deutsch", "Mix English with short Haitian Creole phrases"},
	}

	for _, tc := range cases {
		model := &stubModel{responses: []string{"text", "prompt"}}
		gen := newTestGenerator(model)

		_, err := gen.Generate(context.Background(), story.Request{
			Topic:    "Lakou",
			Language: tc.language,
		})
		if err != nil {
			t.Fatalf("%s: Generate err: %v", tc.language, err)
		}
		if !strings.Contains(model.prompts[0], tc.marker) {
			t.Fatalf("%s: directive marker %q missing from prompt:\n%s", tc.language, tc.marker, model.prompts[0])
		}
		if !strings.Contains(model.prompts[0], "3") {
			t.Fatalf("%s: three-sentence cap missing from directive", tc.language)
		}
	}
}

func TestGenerateDefaultsLanguage(t *testing.T) {
	model := &stubModel{responses: []string{"text", "prompt"}}
	gen := newTestGenerator(model)

	if _, err := gen.Generate(context.Background(), story.Request{Topic: "Lakou"}); err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if !strings.Contains(model.prompts[0], "Réponds en français") {
		t.Fatalf("empty language should fall back to the configured default:\n%s", model.prompts[0])
	}
}

func TestGenerateHaitianSoulInstruction(t *testing.T) {
	model := &stubModel{responses: []string{"text", "prompt"}}
	gen := newTestGenerator(model)

	_, err := gen.Generate(context.Background(), story.Request{Topic: "Lakou", HaitianSoul: true})
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if !strings.Contains(model.prompts[0], "références culturelles Haïtiennes") {
		t.Fatalf("cultural instruction missing from prompt:\n%s", model.prompts[0])
	}

	plain := &stubModel{responses: []string{"text", "prompt"}}
	gen = newTestGenerator(plain)
	if _, err := gen.Generate(context.Background(), story.Request{Topic: "Lakou"}); err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if strings.Contains(plain.prompts[0], "références culturelles Haïtiennes") {
		t.Fatal("cultural instruction must only appear when the flag is set")
	}
}

func TestGenerateModelErrorPropagates(t *testing.T) {
	model := &stubModel{err: errors.New("quota exhausted")}
	gen := newTestGenerator(model)

	if _, err := gen.Generate(context.Background(), story.Request{Topic: "Lakou"}); err == nil {
		t.Fatal("expected error from failing model")
	}
	if len(model.prompts) != 1 {
		t.Fatalf("no second call should follow a failed first call, got %d calls", len(model.prompts))
	}
}

func TestGenerateEmptyNarrativeFails(t *testing.T) {
	model := &stubModel{responses: []string{"   "}}
	gen := newTestGenerator(model)

	_, err := gen.Generate(context.Background(), story.Request{Topic: "Lakou"})
	if !errors.Is(err, ErrEmptyNarrative) {
		t.Fatalf("expected ErrEmptyNarrative, got %v", err)
	}
}

func TestPromptFromContext(t *testing.T) {
	model := &stubModel{responses: []string{"  surreal drums over Port-au-Prince  "}}
	gen := newTestGenerator(model)

	prompt, err := gen.PromptFromContext(context.Background(), "a story segment")
	if err != nil {
		t.Fatalf("PromptFromContext err: %v", err)
	}
	if prompt != "surreal drums over Port-au-Prince" {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
	if !strings.Contains(model.prompts[0], "max 20 words") {
		t.Fatalf("repair call missing the length cap: %q", model.prompts[0])
	}
}
