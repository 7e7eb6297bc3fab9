package download

import (
	"context"

	"github.com/tgfetch/tgfetch/internal/model"
)

// Acquirer defines the interface for the acquisition engine.
type Acquirer interface {
	// Acquire downloads the media behind url according to profile and
	// reports the metadata the engine printed. The call blocks until the
	// download finishes, fails, or ctx ends.
	Acquire(ctx context.Context, url string, profile model.Profile) (model.AcquisitionResult, error)
}
