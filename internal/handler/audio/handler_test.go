package audio

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ayizan-labs/mythos/backend/internal/service/speech"
)

func setupRouter(clips *speech.ClipStore) *chi.Mux {
	r := chi.NewRouter()
	New(clips).RegisterRoutes(r)
	return r
}

func TestServeClip(t *testing.T) {
	clips := speech.NewClipStore()
	clips.Put(&speech.Clip{ID: "clip-1", Data: []byte("mp3-bytes"), MIME: "audio/mpeg"})
	r := setupRouter(clips)

	req := httptest.NewRequest(http.MethodGet, "/audio/clip-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("expected audio/mpeg, got %q", got)
	}
	if resp.Body.String() != "mp3-bytes" {
		t.Fatalf("unexpected body: %q", resp.Body.String())
	}
}

func TestUnknownClip(t *testing.T) {
	r := setupRouter(speech.NewClipStore())

	req := httptest.NewRequest(http.MethodGet, "/audio/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
