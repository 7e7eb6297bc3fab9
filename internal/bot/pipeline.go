package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/model"
	"github.com/tgfetch/tgfetch/internal/platform"
)

// startFlow binds a unique output location to the request and launches the
// pipeline on its own goroutine.
func (b *Bot) startFlow(ctx context.Context, req model.Request, profile model.Profile) {
	bound := profile.WithOutput(b.cfg.DownloadDir, model.NewToken(req.ChatID))

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.runPipeline(ctx, req, bound)
	}()
}

// runPipeline carries one request from acquisition to delivery. Whatever the
// outcome, the downloaded file is removed and the session phase returns to
// idle before the goroutine exits.
func (b *Bot) runPipeline(ctx context.Context, req model.Request, profile model.Profile) {
	log := b.log.With(zap.Int64("chat_id", req.ChatID), zap.String("token", profile.Token))

	statusID, err := b.transport.SendMessage(req.ChatID, msgProcessing, req.MessageID)
	if err != nil {
		log.Error("status message failed", zap.Error(err))
		return
	}

	key := req.SessionKey()
	var located model.LocatedFile

	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline panic", zap.Any("panic", r))
			b.editStatus(req.ChatID, statusID, errorMessages[model.ErrorKindUnexpected])
		}
		b.sessions.SetPhase(key, model.PhaseIdle)
		if err := platform.RemoveFile(located.Path); err != nil {
			log.Error("cleanup failed", zap.String("path", located.Path), zap.Error(err))
		}
		if removed, err := platform.RemoveByPrefix(b.cfg.DownloadDir, profile.Token); err != nil {
			log.Warn("leftover sweep failed", zap.Error(err))
		} else if removed > 0 {
			log.Info("removed leftover files", zap.Int("count", removed))
		}
	}()

	b.sessions.SetPhase(key, model.PhaseProcessing)
	processingCtx, stopProcessing := context.WithCancel(ctx)
	defer stopProcessing()
	go b.runIndicator(processingCtx, req.ChatID, key, model.PhaseProcessing, tgbotapi.ChatTyping)

	b.editStatus(req.ChatID, statusID, msgDownloading)

	acquireCtx, cancelAcquire := context.WithTimeout(ctx, b.cfg.DownloadTimeout)
	result, err := b.engine.Acquire(acquireCtx, req.URL, profile)
	cancelAcquire()

	b.sessions.SetPhase(key, model.PhaseIdle)
	stopProcessing()

	if err != nil {
		log.Warn("acquisition failed", zap.Error(err))
		b.editStatus(req.ChatID, statusID, userMessageFor(err))
		return
	}

	located, err = platform.LocateOutput(result, profile)
	if err != nil {
		log.Error("downloaded file missing", zap.Error(err))
		b.editStatus(req.ChatID, statusID, userMessageFor(err))
		return
	}
	log.Info("download complete", zap.String("path", located.Path), zap.String("kind", located.Kind.String()))

	b.editStatus(req.ChatID, statusID, fmt.Sprintf(msgUploadingFmt, located.Kind))

	b.sessions.SetPhase(key, model.PhaseUploading)
	uploadCtx, stopUpload := context.WithCancel(ctx)
	defer stopUpload()
	go b.runIndicator(uploadCtx, req.ChatID, key, model.PhaseUploading, uploadAction(located.Kind))

	err = b.deliver(req, located, result.Meta())

	b.sessions.SetPhase(key, model.PhaseIdle)
	stopUpload()

	if err != nil {
		log.Error("delivery failed", zap.Error(err))
		b.editStatus(req.ChatID, statusID, userMessageFor(err))
		return
	}

	// Success: retire the status message, then the original link after a
	// short delay so clients render the delivered media first
	if err := b.transport.DeleteMessage(req.ChatID, statusID); err != nil {
		log.Debug("status delete failed", zap.Error(err))
	}
	if req.MessageID != 0 {
		time.Sleep(b.deleteDelay)
		if err := b.transport.DeleteMessage(req.ChatID, req.MessageID); err != nil {
			log.Warn("could not delete original message",
				zap.Int("message_id", req.MessageID),
				zap.Error(err))
		}
	} else {
		log.Warn("no original message to delete")
	}
	log.Info("delivered", zap.String("kind", located.Kind.String()))
}
