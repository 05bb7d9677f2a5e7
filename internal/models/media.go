package models

import (
	"path"
	"slices"
	"strings"
)

// MediaKind represents the kind of a scene attachment
type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaKinds lists every attachment kind in projection order
var MediaKinds = []MediaKind{MediaKindAudio, MediaKindImage, MediaKindVideo}

// AllowedExtensions maps attachment kinds to the file extensions they accept (lower case, without dot)
var AllowedExtensions = map[MediaKind][]string{
	MediaKindAudio: {"mp3", "wav", "ogg", "m4a", "aac"},
	MediaKindImage: {"jpg", "jpeg", "png", "gif", "webp", "svg"},
	MediaKindVideo: {"mp4", "webm", "mov", "mkv"},
}

// IsValid reports whether k is one of the known attachment kinds
func (k MediaKind) IsValid() bool {
	return slices.Contains(MediaKinds, k)
}

// AllowsFile reports whether the file reference has an extension accepted for k
func (k MediaKind) AllowsFile(file string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(file)), ".")
	if ext == "" {
		return false
	}
	return slices.Contains(AllowedExtensions[k], ext)
}

// Media represents a row of one of the audio_files, images or videos tables.
// SceneID and File are nil when the attachment is unassigned or has no file.
type Media struct {
	ID      int
	SceneID *int
	File    *string
}

// AudioResponse represents an audio attachment in API responses
type AudioResponse struct {
	Audio *string `json:"audio"`
}

// ImageResponse represents an image attachment in API responses
type ImageResponse struct {
	Image *string `json:"image"`
}

// VideoResponse represents a video attachment in API responses
type VideoResponse struct {
	Video *string `json:"video"`
}

// CreateMediaRequest represents a request to create an attachment.
// SceneID is nil for attachments not yet assigned to a scene.
type CreateMediaRequest struct {
	Kind    MediaKind `yaml:"kind"`
	SceneID *int      `yaml:"-"`
	File    string    `yaml:"file"`
}
