package model

import "fmt"

// Request carries the per-request identity the pipeline needs: the chat to
// talk to, the user who asked, and the original message to thread replies to
// and delete on success. Built once at entry from an inbound message or
// callback, never reconstructed ad hoc.
type Request struct {
	ChatID    int64
	UserID    int64
	MessageID int // original user message; 0 when unknown
	URL       string
	Kind      SourceKind
}

// SessionKey returns the store key isolating this chat and user pair
func (r Request) SessionKey() string {
	return fmt.Sprintf("%d:%d", r.ChatID, r.UserID)
}
