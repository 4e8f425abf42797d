package platform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMediaType is used when neither the extension nor the content identify a file
const DefaultMediaType = "application/octet-stream"

// AudioTags carries the display metadata of an audio file
type AudioTags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Format string `json:"format,omitempty"`
}

// DisplayName returns the trailing path segment of path
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// DetectMediaType returns the media type for a file, preferring its extension
// and sniffing content when the extension is unknown.
func DetectMediaType(path string, data []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if t := stripParams(mime.TypeByExtension(strings.ToLower(ext))); t != "" {
			return t
		}
	}

	if len(data) > 0 {
		if t := stripParams(mimetype.Detect(data).String()); t != "" {
			return t
		}
	}

	return DefaultMediaType
}

// DataURI embeds data base64-encoded with the given media type
func DataURI(mediaType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mediaType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// DecodeDataURI splits a base64 data URI built by DataURI into its media
// type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI without payload")
	}
	mediaType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data URI payload: %w", err)
	}
	return mediaType, data, nil
}

// IsAudio reports whether mediaType is an audio type
func IsAudio(mediaType string) bool {
	return strings.HasPrefix(mediaType, "audio/")
}

// ReadAudioTags reads ID3/MP4/FLAC/OGG tags from in-memory content.
// It returns nil when the content carries no recognizable tags.
func ReadAudioTags(data []byte) *AudioTags {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	tags := &AudioTags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Format: string(m.FileType()),
	}
	if tags.Title == "" && tags.Artist == "" && tags.Album == "" {
		return nil
	}
	return tags
}

func stripParams(mediaType string) string {
	if mediaType == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	return parsed
}
