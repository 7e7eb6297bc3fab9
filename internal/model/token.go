package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewToken generates the unique output naming token for one request. The
// chat id prefix plus a random component keeps concurrent requests from ever
// targeting the same path under the shared storage root.
func NewToken(chatID int64) string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%d_%d", chatID, time.Now().UnixNano())
	}
	return fmt.Sprintf("%d_%s", chatID, id.String())
}
