package bot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/model"
)

// maxUploadBytes is the bot API ceiling for outgoing files, checked before
// the upload starts.
const maxUploadBytes = 50 * 1024 * 1024

// deliver hands the located file to Telegram using the verb matching its
// kind. Failures come back classified for user messaging.
func (b *Bot) deliver(req model.Request, file model.LocatedFile, meta model.MediaMeta) error {
	info, err := os.Stat(file.Path)
	if err != nil {
		return model.WrapError(model.ErrorKindFileNotFound, err)
	}
	if info.Size() > maxUploadBytes {
		b.log.Warn("file exceeds upload limit",
			zap.Int64("chat_id", req.ChatID),
			zap.String("path", file.Path),
			zap.String("size", humanize.Bytes(uint64(info.Size()))))
		return model.WrapError(model.ErrorKindFileTooLarge,
			fmt.Errorf("%s over the %s limit", humanize.Bytes(uint64(info.Size())), humanize.Bytes(maxUploadBytes)))
	}

	var sendErr error
	if file.Kind == model.MediaAudio {
		sendErr = b.transport.SendAudio(req.ChatID, file.Path, meta, req.MessageID)
	} else {
		sendErr = b.transport.SendVideo(req.ChatID, file.Path, meta, req.MessageID)
	}
	if sendErr != nil {
		return classifySendError(sendErr)
	}
	return nil
}

// classifySendError maps bot API send failures onto the error taxonomy. The
// API reports the size ceiling as an HTTP 413 with this reason phrase.
func classifySendError(err error) error {
	switch {
	case strings.Contains(err.Error(), "Request Entity Too Large"):
		return model.WrapError(model.ErrorKindFileTooLarge, err)
	case isTimeout(err):
		return model.WrapError(model.ErrorKindUploadTimeout, err)
	default:
		return model.WrapError(model.ErrorKindSendFailed, err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	detail := strings.ToLower(err.Error())
	return strings.Contains(detail, "timed out") || strings.Contains(detail, "deadline exceeded")
}
