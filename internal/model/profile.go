package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Post-processing parameters
const (
	AudioCodecMP3    = "mp3"
	AudioBitrate128K = "128K"
	MergeFormatMP4   = "mp4"
)

// OutputExtPlaceholder is the engine's extension placeholder in output templates
const OutputExtPlaceholder = "%(ext)s"

// Quality ceilings offered for video downloads
var QualityCeilings = []int{360, 480, 720, 1080}

// Profile is the resolved set of instructions handed to the download engine:
// format selection, post-processing directives, and the unique output naming
// template. Immutable once bound to an output; consumed by the engine adapter.
type Profile struct {
	FormatSpec     string
	ExtractAudio   bool
	AudioCodec     string
	AudioBitrate   string
	MergeFormat    string
	Token          string
	OutputTemplate string
}

// AudioProfile resolves to the best available audio, extracted to mp3
func AudioProfile() Profile {
	return Profile{
		FormatSpec:   "bestaudio/best",
		ExtractAudio: true,
		AudioCodec:   AudioCodecMP3,
		AudioBitrate: AudioBitrate128K,
	}
}

// ShortVideoProfile resolves to the best combined video+audio, no prompting
func ShortVideoProfile() Profile {
	return Profile{
		FormatSpec: "bestvideo+bestaudio/best",
	}
}

// QualityProfile resolves to an mp4 capped at the given height ceiling. The
// format spec is an ordered preference list: exact mp4/m4a pair at or below
// the ceiling, then any codec pair at or below it, then a capped single
// format, then unrestricted best.
func QualityProfile(ceiling int) Profile {
	return Profile{
		FormatSpec: fmt.Sprintf(
			"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d]/best",
			ceiling, ceiling, ceiling),
		MergeFormat: MergeFormatMP4,
	}
}

// ResolveImmediate returns the profile for source kinds that need no user
// selection. ok is false when the kind requires a format choice first or is
// not supported at all.
func ResolveImmediate(kind SourceKind) (Profile, bool) {
	switch kind {
	case SourceSoundCloud:
		return AudioProfile(), true
	case SourceTikTok:
		return ShortVideoProfile(), true
	default:
		return Profile{}, false
	}
}

// WithOutput returns a copy bound to a unique output template under dir
func (p Profile) WithOutput(dir, token string) Profile {
	p.Token = token
	p.OutputTemplate = filepath.Join(dir, token+"."+OutputExtPlaceholder)
	return p
}

// MediaKind infers the delivery kind from the format spec: video-prefixed
// specs are video, everything else audio. The file extension is never
// consulted because audio extraction rewrites it after the fact.
func (p Profile) MediaKind() MediaKind {
	for _, prefix := range []string{"bv", "bestvideo", "mp4"} {
		if strings.HasPrefix(p.FormatSpec, prefix) {
			return MediaVideo
		}
	}
	return MediaAudio
}
