package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/model"
)

// runIndicator re-sends the chat action for as long as the session stays in
// phase. Clients drop a chat action after about five seconds, so the
// refresh period must stay under that. The loop also ends when ctx ends or
// when a send fails.
func (b *Bot) runIndicator(ctx context.Context, chatID int64, key string, phase model.ActivityPhase, action string) {
	ticker := time.NewTicker(b.indicatorEvery)
	defer ticker.Stop()

	for {
		if b.sessions.Phase(key) != phase {
			return
		}
		if err := b.transport.SendChatAction(chatID, action); err != nil {
			b.log.Warn("chat action failed",
				zap.Int64("chat_id", chatID),
				zap.String("action", action),
				zap.Error(err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// uploadAction picks the indicator for the media kind. The audio upload
// action is deprecated upstream, voice is its replacement.
func uploadAction(kind model.MediaKind) string {
	if kind == model.MediaVideo {
		return tgbotapi.ChatUploadVideo
	}
	return tgbotapi.ChatUploadVoice
}
