package model

import "time"

// SelectionStage is the position of an unfinished multi-step choice
type SelectionStage string

const (
	// StageAwaitingFormat means the mp3/mp4 prompt is outstanding
	StageAwaitingFormat SelectionStage = "AwaitingFormat"

	// StageAwaitingQuality means the quality prompt is outstanding
	StageAwaitingQuality SelectionStage = "AwaitingQuality"
)

// String returns the string representation of SelectionStage
func (ss SelectionStage) String() string {
	return string(ss)
}

// PendingSelection tracks a user's unfinished format/quality choice for a
// single URL. At most one exists per session and it is consumed exactly once;
// a choice event that finds none is recoverable, not a crash.
type PendingSelection struct {
	URL       string
	Stage     SelectionStage
	CreatedAt time.Time
}
