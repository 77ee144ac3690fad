package generation

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/ayizan-labs/mythos/backend/internal/model/story"
	"github.com/ayizan-labs/mythos/backend/internal/service/history"
	"github.com/ayizan-labs/mythos/backend/internal/service/narrative"
	"github.com/ayizan-labs/mythos/backend/internal/service/speech"
)

// Phase tracks where the orchestrator sits in its lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseSuccess    Phase = "success"
	PhaseFailed     Phase = "failed"
)

// Stage identifies a pipeline step for progress reporting.
type Stage string

const (
	StageNarrative Stage = "narrative"
	StageImage     Stage = "image"
	StageAudio     Stage = "audio"
	StageDone      Stage = "done"
)

var (
	// ErrTopicRequired rejects requests with an empty topic before any
	// external service is contacted.
	ErrTopicRequired = errors.New("topic is required")
	// ErrSuperseded marks a pipeline whose result was discarded because a
	// newer request started while it was in flight.
	ErrSuperseded = errors.New("generation superseded by a newer request")
)

// ValidationMessage is the user-facing text for an empty topic.
const ValidationMessage = "Veuillez entrer un sujet ou un concept."

// GenericFailureMessage is shown when a generation failure carries no
// message of its own.
const GenericFailureMessage = "Une erreur est survenue lors de la création."

// NarrativeGenerator produces the story text and a derived image prompt.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req story.Request) (narrative.Narrative, error)
}

// AudioSynthesizer converts text to a playable clip; nil means no audio.
type AudioSynthesizer interface {
	Synthesize(ctx context.Context, text string) *speech.Clip
}

// ImageBuilder synthesizes a fetchable image URL for a prompt and style tag.
type ImageBuilder interface {
	Build(prompt, style string) string
}

// ProgressFunc observes pipeline stages as they begin.
type ProgressFunc func(stage Stage)

// Snapshot is the externally visible orchestrator state: the phase plus, on
// a terminal phase, either the story or the single user-visible error.
type Snapshot struct {
	Phase Phase        `json:"phase"`
	Story *story.Story `json:"story,omitempty"`
	Error string       `json:"error,omitempty"`
}

// Orchestrator sequences narrative, image and audio generation for one
// request at a time and owns the user-visible error state of the flow.
//
// Each pipeline carries a monotonically increasing token. When a new request
// starts while an older one is still in flight, the older pipeline finishes
// its remote calls but discards its result: no snapshot update and no
// history write. That closes the lost-update window overlapping requests
// would otherwise race on.
type Orchestrator struct {
	narrative NarrativeGenerator
	images    ImageBuilder
	audio     AudioSynthesizer
	history   *history.Store

	mu      sync.Mutex
	token   uint64
	current Snapshot
}

// NewOrchestrator wires the pipeline. All collaborators are required.
func NewOrchestrator(n NarrativeGenerator, images ImageBuilder, audio AudioSynthesizer, hist *history.Store) *Orchestrator {
	return &Orchestrator{
		narrative: n,
		images:    images,
		audio:     audio,
		history:   hist,
		current:   Snapshot{Phase: PhaseIdle},
	}
}

// Generate runs one pipeline: narrative, image URL, then audio when the
// media type asks for it. On success the artifact is appended to history.
// There are no retries and no cancellation once a stage has begun beyond
// context propagation to the underlying clients.
func (o *Orchestrator) Generate(ctx context.Context, req story.Request, progress ProgressFunc) (story.Story, error) {
	token := o.begin()

	if strings.TrimSpace(req.Topic) == "" {
		o.finish(token, Snapshot{Phase: PhaseFailed, Error: ValidationMessage})
		return story.Story{}, ErrTopicRequired
	}

	report := func(stage Stage) {
		if progress != nil {
			progress(stage)
		}
	}

	report(StageNarrative)
	narr, err := o.narrative.Generate(ctx, req)
	if err != nil {
		if !o.finish(token, Snapshot{Phase: PhaseFailed, Error: failureMessage(err)}) {
			return story.Story{}, ErrSuperseded
		}
		log.Printf("[generation] narrative failed for topic %q: %v", req.Topic, err)
		return story.Story{}, err
	}

	report(StageImage)
	imageURL := o.images.Build(narr.ImagePrompt, string(req.ImageStyle))

	var audioURL string
	if req.MediaType.RequestsAudio() {
		report(StageAudio)
		if clip := o.audio.Synthesize(ctx, narr.Text); clip != nil {
			audioURL = clip.URL()
		}
	}

	result := story.Story{
		Title:    req.Topic,
		Content:  narr.Text,
		ImageURL: imageURL,
		AudioURL: audioURL,
		Tags:     []string{string(req.Genre), string(req.AgeGroup)},
	}

	if !o.finish(token, Snapshot{Phase: PhaseSuccess, Story: &result}) {
		log.Printf("[generation] discarding superseded result for topic %q", req.Topic)
		return story.Story{}, ErrSuperseded
	}

	o.history.Append(ctx, result, req)
	report(StageDone)

	log.Printf("[generation] completed story for topic %q, audio=%t", req.Topic, audioURL != "")
	return result, nil
}

// Snapshot returns the current externally visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Reset returns the orchestrator to Idle, dropping the last terminal state.
// An in-flight pipeline keeps running but its result will be discarded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.token++
	o.current = Snapshot{Phase: PhaseIdle}
}

// begin claims a fresh pipeline token and publishes the Generating phase.
func (o *Orchestrator) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.token++
	o.current = Snapshot{Phase: PhaseGenerating}
	return o.token
}

// finish publishes a terminal snapshot unless a newer pipeline has started.
func (o *Orchestrator) finish(token uint64, snap Snapshot) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if token != o.token {
		return false
	}
	o.current = snap
	return true
}

func failureMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return GenericFailureMessage
	}
	return err.Error()
}
