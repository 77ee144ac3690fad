package speech

import (
	"sync"

	"github.com/google/uuid"
)

// Clip is an opaque handle to one synthesized audio payload. Clips live in
// memory for the lifetime of the process; no server-side durability is
// promised beyond the current session.
type Clip struct {
	ID   string
	Data []byte
	MIME string
}

func newClip(data []byte) *Clip {
	return &Clip{
		ID:   uuid.NewString(),
		Data: data,
		MIME: "audio/mpeg",
	}
}

// URL is the locally resolvable address the audio handler serves this clip
// under. This is what lands in a story's AudioURL field.
func (c *Clip) URL() string {
	return "/api/audio/" + c.ID
}

// ClipStore holds synthesized clips keyed by ID.
type ClipStore struct {
	mu    sync.RWMutex
	clips map[string]*Clip
}

func NewClipStore() *ClipStore {
	return &ClipStore{clips: make(map[string]*Clip)}
}

func (s *ClipStore) Put(clip *Clip) {
	s.mu.Lock()
	s.clips[clip.ID] = clip
	s.mu.Unlock()
}

func (s *ClipStore) Get(id string) (*Clip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clip, ok := s.clips[id]
	return clip, ok
}
