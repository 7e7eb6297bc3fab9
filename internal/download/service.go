package download

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/model"
	"github.com/tgfetch/tgfetch/internal/platform"
)

// Retry and progress constants
const (
	maxRetries       = 1
	retryBackoff     = 2 * time.Second
	progressInterval = 5 * time.Second
)

// Service handles media acquisition through yt-dlp
type Service struct {
	log *zap.Logger
}

// NewService creates a new acquisition service
func NewService(log *zap.Logger) *Service {
	return &Service{log: log}
}

// EnsureEngine installs the yt-dlp binary when the host has none. Called
// once at startup so the first request never pays the install cost.
func EnsureEngine(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("engine install: %w", err)
	}
	return nil
}

// Acquire downloads the media behind url according to profile. Blocks until
// done; the returned error carries a classified kind for user messaging.
func (s *Service) Acquire(ctx context.Context, url string, profile model.Profile) (model.AcquisitionResult, error) {
	dl := s.buildCommand(profile)

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			s.log.Debug("download progress",
				zap.String("url", url),
				zap.String("downloaded", humanize.Bytes(uint64(update.DownloadedBytes))),
				zap.String("total", humanize.Bytes(uint64(update.TotalBytes))))
		}
	})

	result, err := s.downloadWithRetry(ctx, dl, url)
	if err != nil {
		return model.AcquisitionResult{}, classifyEngineError(err, result)
	}

	return platform.ParseInfoJSON(result.Stdout), nil
}

// buildCommand configures yt-dlp from the format profile
func (s *Service) buildCommand(profile model.Profile) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		PrintJSON().
		RestrictFilenames().
		ForceOverwrites().
		Format(profile.FormatSpec).
		Output(profile.OutputTemplate)

	if profile.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(profile.AudioCodec).
			AudioQuality(profile.AudioBitrate)
	}
	if profile.MergeFormat != "" {
		dl = dl.MergeOutputFormat(profile.MergeFormat)
	}
	return dl
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
	var lastErr error
	var result *ytdlp.Result

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return result, ctx.Err()
			}

			s.log.Info("retrying download",
				zap.String("url", url),
				zap.Int("attempt", attempt+1))
		}

		res, err := dl.Run(ctx, url)
		if err == nil {
			return res, nil
		}

		lastErr = err
		result = res // Keep last result even if there was an error
		s.log.Warn("download attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, lastErr
}

// classifyEngineError maps engine failures onto the error taxonomy by
// inspecting the message and stderr. The engine reports all failures as a
// generic exit error, so substring matching is the only signal available.
func classifyEngineError(err error, result *ytdlp.Result) error {
	if err == nil {
		return nil
	}

	detail := err.Error()
	if result != nil && result.Stderr != "" {
		detail += "\n" + result.Stderr
	}

	switch {
	case strings.Contains(detail, "Unsupported URL"):
		return model.WrapError(model.ErrorKindUnsupportedURL, err)
	case strings.Contains(detail, "Unable to extract"):
		return model.WrapError(model.ErrorKindExtractionFailed, err)
	case strings.Contains(detail, "Video unavailable"):
		return model.WrapError(model.ErrorKindSourceUnavailable, err)
	default:
		return model.WrapError(model.ErrorKindEngine, err)
	}
}
