package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ayizan-labs/mythos/backend/internal/config"
)

const ttsModelID = "eleven_multilingual_v2"

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesizer converts narrative text to spoken audio through the ElevenLabs
// API. Audio is strictly best-effort: every failure, including a missing
// credential, degrades to a nil clip and is never surfaced as an error.
type Synthesizer struct {
	cfg    config.SpeechConfig
	client *http.Client
	clips  *ClipStore
}

// NewSynthesizer builds a Synthesizer storing successful payloads in clips.
func NewSynthesizer(cfg config.SpeechConfig, clips *ClipStore) *Synthesizer {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Synthesizer{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		clips:  clips,
	}
}

// Synthesize returns a playable clip for the text, or nil when audio is
// unavailable. Callers must treat nil as "no audio", not as a failure.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) *Clip {
	if !s.cfg.Enabled() {
		log.Printf("[speech] clé API ElevenLabs manquante, audio désactivé")
		return nil
	}

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: ttsModelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		log.Printf("[speech] failed to encode synthesis request: %v", err)
		return nil
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[speech] failed to build synthesis request: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[speech] synthesis request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[speech] synthesis returned status %d", resp.StatusCode)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[speech] failed to read synthesis response: %v", err)
		return nil
	}
	if len(data) == 0 {
		log.Printf("[speech] synthesis returned an empty payload")
		return nil
	}

	clip := newClip(data)
	s.clips.Put(clip)
	return clip
}
