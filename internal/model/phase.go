package model

// ActivityPhase represents the long-running stage a session is in, driving
// the periodic chat indicator
type ActivityPhase string

const (
	// PhaseIdle means no long-running work is active for the session
	PhaseIdle ActivityPhase = "Idle"

	// PhaseProcessing covers the blocking acquisition call
	PhaseProcessing ActivityPhase = "Processing"

	// PhaseUploading covers the delivery upload
	PhaseUploading ActivityPhase = "Uploading"
)

// String returns the string representation of ActivityPhase
func (ap ActivityPhase) String() string {
	return string(ap)
}

// IsActive returns true if the phase represents in-flight work
func (ap ActivityPhase) IsActive() bool {
	return ap == PhaseProcessing || ap == PhaseUploading
}
