package model

import (
	"regexp"
	"strings"
)

// SourceKind represents the platform category inferred from a URL
type SourceKind string

const (
	// SourceYouTube offers a format and quality choice before downloading
	SourceYouTube SourceKind = "YouTube"

	// SourceSoundCloud always resolves to an audio extract
	SourceSoundCloud SourceKind = "SoundCloud"

	// SourceTikTok always resolves to the best combined video
	SourceTikTok SourceKind = "TikTok"

	// SourceUnknown matches no supported platform
	SourceUnknown SourceKind = "Unknown"
)

// urlPattern matches the first http/https URL in a message text
var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// String returns the string representation of SourceKind
func (sk SourceKind) String() string {
	return string(sk)
}

// NeedsSelection returns true if the kind requires a user format choice
// before a profile can be resolved
func (sk SourceKind) NeedsSelection() bool {
	return sk == SourceYouTube
}

// DetectSourceKind identifies the source platform from the URL
func DetectSourceKind(url string) SourceKind {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return SourceYouTube
	case strings.Contains(lower, "soundcloud.com"):
		return SourceSoundCloud
	case strings.Contains(lower, "tiktok.com"):
		return SourceTikTok
	default:
		return SourceUnknown
	}
}

// FindURL extracts the first URL from a message text, or an empty string
// when the text contains none
func FindURL(text string) string {
	return urlPattern.FindString(text)
}
