package imageurl_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/ayizan-labs/mythos/backend/internal/service/imageurl"
)

var urlPattern = regexp.MustCompile(`^https://image\.pollinations\.ai/prompt/[^?]+\?seed=(\d+)&width=1024&height=600&nologo=true$`)

type stubPrompter struct {
	prompt string
	err    error
	calls  int
}

func (s *stubPrompter) PromptFromContext(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.prompt, s.err
}

func TestBuildURLShape(t *testing.T) {
	synth := imageurl.NewSynthesizer(nil)

	got := synth.Build("a glowing citadel at dusk", "cartoon")
	m := urlPattern.FindStringSubmatch(got)
	if m == nil {
		t.Fatalf("URL does not match expected shape: %s", got)
	}

	seed, err := strconv.Atoi(m[1])
	if err != nil {
		t.Fatalf("seed not an integer: %v", err)
	}
	if seed < 0 || seed > 999 {
		t.Fatalf("seed out of range: %d", seed)
	}

	if !strings.Contains(got, "a%20glowing%20citadel%20at%20dusk%20cartoon") {
		t.Fatalf("prompt and style not percent-encoded as expected: %s", got)
	}
}

func TestBuildFixedSeedIsDeterministic(t *testing.T) {
	synth := imageurl.NewSynthesizer(func() int { return 42 })

	first := synth.Build("drums at midnight", "surreal")
	second := synth.Build("drums at midnight", "surreal")
	if first != second {
		t.Fatalf("same prompt, style and seed must give the same URL:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, "seed=42") {
		t.Fatalf("injected seed missing from URL: %s", first)
	}
}

func TestRegenerateUsesFreshPrompt(t *testing.T) {
	synth := imageurl.NewSynthesizer(func() int { return 7 })
	prompter := &stubPrompter{prompt: "vibrant market under banyan trees"}

	got := synth.Regenerate(context.Background(), prompter, "the story so far")
	if prompter.calls != 1 {
		t.Fatalf("expected one prompter call, got %d", prompter.calls)
	}
	if !strings.Contains(got, "vibrant%20market%20under%20banyan%20trees") {
		t.Fatalf("regenerated URL does not carry the fresh prompt: %s", got)
	}
}

func TestRegenerateFallsBackOnError(t *testing.T) {
	synth := imageurl.NewSynthesizer(nil)
	prompter := &stubPrompter{err: errors.New("model unavailable")}

	got := synth.Regenerate(context.Background(), prompter, "the story so far")
	if got != imageurl.FallbackURL {
		t.Fatalf("expected fallback URL, got %s", got)
	}
}

func TestRegenerateFallsBackOnEmptyPrompt(t *testing.T) {
	synth := imageurl.NewSynthesizer(nil)
	prompter := &stubPrompter{prompt: "   "}

	if got := synth.Regenerate(context.Background(), prompter, "ctx"); got != imageurl.FallbackURL {
		t.Fatalf("expected fallback URL for empty prompt, got %s", got)
	}
}

func TestRegenerateFallsBackWithoutPrompter(t *testing.T) {
	synth := imageurl.NewSynthesizer(nil)

	if got := synth.Regenerate(context.Background(), nil, "ctx"); got != imageurl.FallbackURL {
		t.Fatalf("expected fallback URL without prompter, got %s", got)
	}
}
