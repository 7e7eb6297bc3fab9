package bot

import (
	"fmt"

	"github.com/tgfetch/tgfetch/internal/model"
)

// Callback data tags and separator
const (
	callbackFormat  = "format-choice"
	callbackQuality = "quality-choice"
	callbackSep     = "|"

	formatAudio = "mp3"
	formatVideo = "mp4"
)

// Status and prompt texts
const (
	msgProcessing   = "⏳ Processing link..."
	msgDownloading  = "⏳ Downloading..."
	msgUploadingFmt = "⬆️ Uploading %s..."

	msgPrepareAudio    = "⬇️ Preparing MP3 (~128kbps)..."
	msgPrepareVideoFmt = "⬇️ Preparing %dp MP4..."

	msgChooseFormat  = "Choose download format:"
	msgChooseQuality = "Choose video quality:"
)

// Keyboard labels
const (
	labelAudio = "🎵 MP3 (~128kbps)"
	labelVideo = "🎬 MP4 (Video)"
)

// Command replies
const (
	msgWelcomeFmt = "👋 Welcome %s!\nSend link (YouTube, SoundCloud, TikTok). /help for info."

	msgHelp = "ℹ️ **How to use:**\n" +
		"1. Send direct link (YouTube, SoundCloud, TikTok).\n" +
		"2. **YouTube:** Choose MP3/MP4, then quality if MP4.\n" +
		"3. **SoundCloud:** Downloads MP3 .\n" +
		"4. **TikTok:** Downloads video.\n\n" +
		"✅ Original message deleted after successful send.\n" +
		"⚠️ Large files may fail due to Telegram limits."
)

// User-facing error texts by failure kind
var errorMessages = map[model.ErrorKind]string{
	model.ErrorKindUnsupportedSource: "⚠️ Unsupported link source.",
	model.ErrorKindSelectionExpired:  "❌ Error: Request expired. Send link again.",
	model.ErrorKindUnsupportedURL:    "❌ Download failed: Unsupported URL.",
	model.ErrorKindExtractionFailed:  "❌ Download failed: Invalid link.",
	model.ErrorKindSourceUnavailable: "❌ Download failed: Video unavailable.",
	model.ErrorKindEngine:            "❌ Download failed.",
	model.ErrorKindFileNotFound:      "❌ Error: Could not find downloaded file.",
	model.ErrorKindFileTooLarge:      "❌ Error: File is too large for Telegram.",
	model.ErrorKindUploadTimeout:     "❌ Error: Upload timed out.",
	model.ErrorKindSendFailed:        "❌ Error sending file.",
	model.ErrorKindUnexpected:        "❌ An unexpected server error occurred.",
}

// userMessageFor returns the text shown to the user for a classified
// failure. Unknown kinds fall back to the generic server error.
func userMessageFor(err error) string {
	if msg, ok := errorMessages[model.KindOf(err)]; ok {
		return msg
	}
	return errorMessages[model.ErrorKindUnexpected]
}

// formatKeyboard offers the MP3/MP4 choice on one row
func formatKeyboard() [][]Button {
	return [][]Button{{
		{Label: labelAudio, Data: callbackFormat + callbackSep + formatAudio},
		{Label: labelVideo, Data: callbackFormat + callbackSep + formatVideo},
	}}
}

// qualityKeyboard offers the quality ceilings two per row
func qualityKeyboard() [][]Button {
	var rows [][]Button
	row := make([]Button, 0, 2)
	for _, ceiling := range model.QualityCeilings {
		row = append(row, Button{
			Label: fmt.Sprintf("%dp", ceiling),
			Data:  fmt.Sprintf("%s%s%d", callbackQuality, callbackSep, ceiling),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = make([]Button, 0, 2)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
