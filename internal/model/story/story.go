package story

import "time"

// Story is the generated artifact handed back to the UI: narrative text, a
// fetchable image URL and, when synthesis succeeded, a playable audio URL.
type Story struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"imageUrl"`
	AudioURL string   `json:"audioUrl,omitempty"`
	Tags     []string `json:"tags"`
}

// HistoryItem wraps a Story with save-time metadata for the bounded history
// window. Items are immutable once stored, except that the history store may
// strip AudioURL once when shrinking a payload that exceeded the storage
// quota.
type HistoryItem struct {
	Story
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	OriginalTopic string    `json:"originalTopic"`
	MediaType     MediaType `json:"mediaType"`
	Genre         Genre     `json:"genre"`
}
