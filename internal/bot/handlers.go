package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/model"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		var name string
		if message.From != nil {
			name = message.From.FirstName
		}
		if _, err := b.transport.SendMessage(chatID, fmt.Sprintf(msgWelcomeFmt, name), 0); err != nil {
			b.log.Warn("start reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	case "help":
		if _, err := b.transport.SendMarkdown(chatID, msgHelp, 0); err != nil {
			b.log.Warn("help reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	url := model.FindURL(message.Text)
	if url == "" {
		return
	}

	req := model.Request{
		ChatID:    message.Chat.ID,
		UserID:    senderID(message),
		MessageID: message.MessageID,
		URL:       url,
		Kind:      model.DetectSourceKind(url),
	}
	log := b.log.With(zap.Int64("chat_id", req.ChatID), zap.String("source", req.Kind.String()))
	log.Info("link received", zap.String("url", url))

	if req.Kind == model.SourceUnknown {
		if _, err := b.transport.SendMessage(req.ChatID, errorMessages[model.ErrorKindUnsupportedSource], req.MessageID); err != nil {
			log.Warn("unsupported source reply failed", zap.Error(err))
		}
		return
	}

	// Sources with a fixed format start downloading immediately
	if profile, ok := model.ResolveImmediate(req.Kind); ok {
		if err := b.transport.SendChatAction(req.ChatID, tgbotapi.ChatTyping); err != nil {
			log.Debug("chat action failed", zap.Error(err))
		}
		b.startFlow(ctx, req, profile)
		return
	}

	// Selection required: stash the URL and offer the format keyboard
	b.sessions.PutSelection(req.SessionKey(), model.PendingSelection{
		URL:       url,
		Stage:     model.StageAwaitingFormat,
		CreatedAt: time.Now(),
	})
	if _, err := b.transport.SendKeyboard(req.ChatID, msgChooseFormat, req.MessageID, formatKeyboard()); err != nil {
		log.Error("format keyboard failed", zap.Error(err))
		b.sessions.ClearSelection(req.SessionKey())
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if err := b.transport.AnswerCallback(query.ID); err != nil {
		b.log.Debug("callback ack failed", zap.Error(err))
	}
	if query.Message == nil {
		return
	}

	tag, value := splitCallback(query.Data)
	key := model.Request{ChatID: query.Message.Chat.ID, UserID: query.From.ID}.SessionKey()
	b.log.Info("selection tapped",
		zap.Int64("chat_id", query.Message.Chat.ID),
		zap.String("tag", tag),
		zap.String("value", value))

	switch tag {
	case callbackFormat:
		b.handleFormatChoice(ctx, query, key, value)
	case callbackQuality:
		b.handleQualityChoice(ctx, query, key, value)
	default:
		b.log.Warn("unknown callback tag", zap.String("data", query.Data))
	}
}

func (b *Bot) handleFormatChoice(ctx context.Context, query *tgbotapi.CallbackQuery, key, choice string) {
	chatID := query.Message.Chat.ID
	promptID := query.Message.MessageID

	switch choice {
	case formatAudio:
		sel, ok := b.sessions.TakeSelection(key)
		if !ok {
			b.editExpired(chatID, promptID)
			return
		}
		b.editStatus(chatID, promptID, msgPrepareAudio)
		b.startFlow(ctx, callbackRequest(query, sel.URL), model.AudioProfile())

	case formatVideo:
		if _, ok := b.sessions.AdvanceSelection(key, model.StageAwaitingQuality); !ok {
			b.editExpired(chatID, promptID)
			return
		}
		if err := b.transport.EditKeyboard(chatID, promptID, msgChooseQuality, qualityKeyboard()); err != nil {
			b.log.Error("quality keyboard failed", zap.Int64("chat_id", chatID), zap.Error(err))
			b.sessions.ClearSelection(key)
		}

	default:
		b.log.Warn("unknown format choice", zap.String("choice", choice))
	}
}

func (b *Bot) handleQualityChoice(ctx context.Context, query *tgbotapi.CallbackQuery, key, choice string) {
	chatID := query.Message.Chat.ID
	promptID := query.Message.MessageID

	ceiling, err := strconv.Atoi(choice)
	if err != nil {
		b.log.Warn("unparseable quality choice", zap.String("choice", choice))
		return
	}

	sel, ok := b.sessions.TakeSelection(key)
	if !ok || sel.Stage != model.StageAwaitingQuality {
		b.editExpired(chatID, promptID)
		return
	}

	b.editStatus(chatID, promptID, fmt.Sprintf(msgPrepareVideoFmt, ceiling))
	b.startFlow(ctx, callbackRequest(query, sel.URL), model.QualityProfile(ceiling))
}

// callbackRequest rebuilds the request a keyboard tap refers to. The prompt
// replied to the original link message, so that reference is the only way
// back to the message worth deleting after delivery.
func callbackRequest(query *tgbotapi.CallbackQuery, url string) model.Request {
	req := model.Request{
		ChatID: query.Message.Chat.ID,
		UserID: query.From.ID,
		URL:    url,
		Kind:   model.DetectSourceKind(url),
	}
	if query.Message.ReplyToMessage != nil {
		req.MessageID = query.Message.ReplyToMessage.MessageID
	}
	return req
}

func senderID(message *tgbotapi.Message) int64 {
	if message.From != nil {
		return message.From.ID
	}
	return message.Chat.ID
}

func splitCallback(data string) (tag, value string) {
	parts := strings.SplitN(data, callbackSep, 2)
	if len(parts) != 2 {
		return data, ""
	}
	return parts[0], parts[1]
}

// editStatus applies a status text edit, logging instead of failing: the
// pipeline outcome never depends on a cosmetic edit landing.
func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	if err := b.transport.EditMessage(chatID, messageID, text); err != nil {
		b.log.Debug("status edit failed",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}

func (b *Bot) editExpired(chatID int64, messageID int) {
	b.editStatus(chatID, messageID, errorMessages[model.ErrorKindSelectionExpired])
}
