package story

import "fmt"

// Genre classifies the kind of lesson or tale the user asked for.
type Genre string

const (
	GenreEducational Genre = "educational"
	GenreFolklore    Genre = "folklore"
	GenreAdventure   Genre = "adventure"
	GenreMystery     Genre = "mystery"
)

// Valid reports whether the genre is one of the supported values.
func (g Genre) Valid() bool {
	switch g {
	case GenreEducational, GenreFolklore, GenreAdventure, GenreMystery:
		return true
	}
	return false
}

// AgeGroup is the audience level the narrative should target.
type AgeGroup string

const (
	AgeGroupChild AgeGroup = "child"
	AgeGroupTeen  AgeGroup = "teen"
	AgeGroupAdult AgeGroup = "adult"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroupChild, AgeGroupTeen, AgeGroupAdult:
		return true
	}
	return false
}

// ImageStyle is the visual style tag appended to the image prompt.
type ImageStyle string

const (
	ImageStyleCartoon    ImageStyle = "cartoon"
	ImageStyleRealistic  ImageStyle = "realistic"
	ImageStyleWatercolor ImageStyle = "watercolor"
	ImageStyleSurreal    ImageStyle = "surreal"
)

func (s ImageStyle) Valid() bool {
	switch s {
	case ImageStyleCartoon, ImageStyleRealistic, ImageStyleWatercolor, ImageStyleSurreal:
		return true
	}
	return false
}

// MediaType selects which parts of the artifact the UI will present.
type MediaType string

const (
	MediaTypeTextOnly      MediaType = "text_only"
	MediaTypeTextWithImage MediaType = "text_with_image"
	MediaTypeVideo         MediaType = "video"
)

func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeTextOnly, MediaTypeTextWithImage, MediaTypeVideo:
		return true
	}
	return false
}

// RequestsAudio reports whether narration audio should be synthesized for
// this media type.
func (m MediaType) RequestsAudio() bool {
	return m != MediaTypeTextOnly
}

// VideoFormat is only meaningful when the media type is video.
type VideoFormat string

const (
	VideoFormatMP4  VideoFormat = "mp4"
	VideoFormatWebM VideoFormat = "webm"
)

func (v VideoFormat) Valid() bool {
	switch v {
	case VideoFormatMP4, VideoFormatWebM:
		return true
	}
	return false
}

// Request carries one generation order from the UI. It is treated as
// immutable once handed to the orchestrator.
type Request struct {
	Topic       string      `json:"topic"`
	Genre       Genre       `json:"genre"`
	AgeGroup    AgeGroup    `json:"ageGroup"`
	ImageStyle  ImageStyle  `json:"imageStyle"`
	Language    string      `json:"language"`
	MediaType   MediaType   `json:"mediaType"`
	VideoFormat VideoFormat `json:"videoFormat,omitempty"`
	HaitianSoul bool        `json:"haitianSoul"`
}

// Normalize fills unset preference fields with the form defaults and drops
// the video format when no video was requested.
func (r *Request) Normalize() {
	if r.Genre == "" {
		r.Genre = GenreEducational
	}
	if r.AgeGroup == "" {
		r.AgeGroup = AgeGroupChild
	}
	if r.ImageStyle == "" {
		r.ImageStyle = ImageStyleCartoon
	}
	if r.MediaType == "" {
		r.MediaType = MediaTypeTextWithImage
	}
	if r.MediaType != MediaTypeVideo {
		r.VideoFormat = ""
	} else if r.VideoFormat == "" {
		r.VideoFormat = VideoFormatMP4
	}
}

// Validate reports the first preference field carrying an unsupported value.
// The topic itself is validated by the orchestrator, which owns the
// user-facing message for it.
func (r Request) Validate() error {
	if !r.Genre.Valid() {
		return fmt.Errorf("unsupported genre %q", r.Genre)
	}
	if !r.AgeGroup.Valid() {
		return fmt.Errorf("unsupported age group %q", r.AgeGroup)
	}
	if !r.ImageStyle.Valid() {
		return fmt.Errorf("unsupported image style %q", r.ImageStyle)
	}
	if !r.MediaType.Valid() {
		return fmt.Errorf("unsupported media type %q", r.MediaType)
	}
	if r.MediaType == MediaTypeVideo && !r.VideoFormat.Valid() {
		return fmt.Errorf("unsupported video format %q", r.VideoFormat)
	}
	return nil
}
