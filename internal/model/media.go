package model

// DefaultMediaTitle is used when the engine reports no title
const DefaultMediaTitle = "Downloaded Media"

// MediaKind selects the transport verb used for delivery
type MediaKind string

const (
	// MediaAudio is delivered via the audio verb with title and duration
	MediaAudio MediaKind = "audio"

	// MediaVideo is delivered via the video verb with caption and streaming hint
	MediaVideo MediaKind = "video"
)

// String returns the string representation of MediaKind
func (mk MediaKind) String() string {
	return string(mk)
}

// DownloadEntry is a single item of the engine's download manifest
type DownloadEntry struct {
	Filepath string
}

// AcquisitionResult is the engine's report for a finished acquisition.
// Produced by an external process, so any field may be absent.
type AcquisitionResult struct {
	Title     string
	Duration  int // seconds
	Width     int
	Height    int
	Ext       string
	Filepath  string
	Filename  string // legacy underscore-filename field
	Downloads []DownloadEntry
}

// DisplayTitle returns the reported title or a generic fallback
func (ar AcquisitionResult) DisplayTitle() string {
	if ar.Title != "" {
		return ar.Title
	}
	return DefaultMediaTitle
}

// Meta collects the delivery metadata, applying the title fallback
func (ar AcquisitionResult) Meta() MediaMeta {
	return MediaMeta{
		Title:    ar.DisplayTitle(),
		Duration: ar.Duration,
		Width:    ar.Width,
		Height:   ar.Height,
	}
}

// LocatedFile is the single verified path produced by an acquisition plus
// the delivery kind inferred from the profile. Owned by the current request
// and removed exactly once during cleanup.
type LocatedFile struct {
	Path string
	Kind MediaKind
}

// MediaMeta carries the metadata attached to an outgoing audio or video
// message. Width and Height are advisory; a transport applies the fields its
// API supports.
type MediaMeta struct {
	Title    string
	Duration int
	Width    int
	Height   int
}
