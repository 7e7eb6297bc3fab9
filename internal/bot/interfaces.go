package bot

import "github.com/tgfetch/tgfetch/internal/model"

// Button is one inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// Transport defines the Telegram API surface the bot uses. The production
// implementation wraps the bot API client; tests substitute a fake.
//
// Sends return the created message ID so status messages can be edited and
// deleted later. A replyTo of zero sends without a reply reference.
type Transport interface {
	SendMessage(chatID int64, text string, replyTo int) (int, error)
	SendMarkdown(chatID int64, text string, replyTo int) (int, error)
	SendKeyboard(chatID int64, text string, replyTo int, rows [][]Button) (int, error)
	EditMessage(chatID int64, messageID int, text string) error
	EditKeyboard(chatID int64, messageID int, text string, rows [][]Button) error
	DeleteMessage(chatID int64, messageID int) error
	SendChatAction(chatID int64, action string) error
	AnswerCallback(callbackID string) error
	SendAudio(chatID int64, path string, meta model.MediaMeta, replyTo int) error
	SendVideo(chatID int64, path string, meta model.MediaMeta, replyTo int) error
}
