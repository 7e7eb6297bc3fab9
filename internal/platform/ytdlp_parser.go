package platform

import (
	"encoding/json"
	"strings"

	"github.com/tgfetch/tgfetch/internal/model"
)

// infoPayload mirrors the engine's print-json report. Numeric fields are
// wire-typed as float64 because the engine emits fractional durations for
// some sources.
type infoPayload struct {
	Title              string  `json:"title"`
	Duration           float64 `json:"duration"`
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	Ext                string  `json:"ext"`
	Filepath           string  `json:"filepath"`
	Filename           string  `json:"_filename"`
	RequestedDownloads []struct {
		Filepath string `json:"filepath"`
	} `json:"requested_downloads"`
}

// ParseInfoJSON extracts the acquisition metadata from the engine's stdout.
// The stream may carry progress noise around the JSON report, so the first
// line that decodes as an object wins. When nothing decodes an empty result
// is returned; every field is optional to callers and the file locator has
// its own fallbacks.
func ParseInfoJSON(output string) model.AcquisitionResult {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var payload infoPayload
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			continue
		}

		result := model.AcquisitionResult{
			Title:    payload.Title,
			Duration: int(payload.Duration),
			Width:    int(payload.Width),
			Height:   int(payload.Height),
			Ext:      payload.Ext,
			Filepath: payload.Filepath,
			Filename: payload.Filename,
		}
		for _, download := range payload.RequestedDownloads {
			result.Downloads = append(result.Downloads, model.DownloadEntry{Filepath: download.Filepath})
		}
		return result
	}
	return model.AcquisitionResult{}
}
