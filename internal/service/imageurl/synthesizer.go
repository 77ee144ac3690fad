package imageurl

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
)

const endpoint = "https://image.pollinations.ai/prompt/"

// FallbackURL is served when the repair path cannot obtain a fresh prompt.
// It is the one place in the system where an error is swallowed instead of
// surfaced.
const FallbackURL = "https://image.pollinations.ai/prompt/mystic%20haitian%20art?width=1024&height=600"

// Seeder supplies the per-call seed in [0, 1000). Production draws randomly;
// tests inject a fixed source to pin the URL down.
type Seeder func() int

// Prompter yields a short visual prompt for a piece of story text.
type Prompter interface {
	PromptFromContext(ctx context.Context, contextText string) (string, error)
}

// Synthesizer builds fetchable image URLs against the pollinations prompt
// endpoint. It performs no network calls itself; the UI fetches the URL.
type Synthesizer struct {
	seed Seeder
}

// NewSynthesizer returns a Synthesizer using the given seeder, or the
// default random one when nil.
func NewSynthesizer(seed Seeder) *Synthesizer {
	if seed == nil {
		seed = func() int { return rand.Intn(1000) }
	}
	return &Synthesizer{seed: seed}
}

// Build composes the image URL for a prompt and style tag. The seed is
// redrawn on every call, so identical inputs intentionally yield different
// URLs: repeated generations should vary.
func (s *Synthesizer) Build(prompt, style string) string {
	combined := strings.TrimSpace(prompt)
	if style != "" {
		combined = combined + " " + style
	}
	return fmt.Sprintf("%s%s?seed=%d&width=1024&height=600&nologo=true",
		endpoint, url.PathEscape(combined), s.seed())
}

// Regenerate asks the prompter for a fresh prompt derived from story context
// and synthesizes a new URL from it. Any failure falls back to FallbackURL;
// this path never returns an error.
func (s *Synthesizer) Regenerate(ctx context.Context, prompter Prompter, contextText string) string {
	if prompter == nil {
		log.Printf("[imageurl] no prompter available, serving fallback image")
		return FallbackURL
	}

	prompt, err := prompter.PromptFromContext(ctx, contextText)
	if err != nil || strings.TrimSpace(prompt) == "" {
		log.Printf("[imageurl] regeneration failed, serving fallback image: %v", err)
		return FallbackURL
	}

	return s.Build(prompt, "")
}
