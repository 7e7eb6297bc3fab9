package bot

import (
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgfetch/tgfetch/internal/model"
)

// Client implements Transport over the Telegram bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

var _ Transport = (*Client)(nil)

// NewClient authorizes against the bot API. The HTTP timeout has to cover
// the slowest expected media upload, not just API round trips.
func NewClient(token string, uploadTimeout time.Duration) (*Client, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{
		Timeout: uploadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Username returns the authorized bot account name
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Updates opens the long poll update channel
func (c *Client) Updates(offset, timeoutSec int) tgbotapi.UpdatesChannel {
	cfg := tgbotapi.NewUpdate(offset)
	cfg.Timeout = timeoutSec
	return c.api.GetUpdatesChan(cfg)
}

// Stop ends long polling; the update channel closes shortly after
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

func (c *Client) SendMessage(chatID int64, text string, replyTo int) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendMarkdown(chatID int64, text string, replyTo int) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendKeyboard(chatID int64, text string, replyTo int, rows [][]Button) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.ReplyMarkup = inlineMarkup(rows)
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) EditMessage(chatID int64, messageID int, text string) error {
	_, err := c.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (c *Client) EditKeyboard(chatID int64, messageID int, text string, rows [][]Button) error {
	_, err := c.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineMarkup(rows)))
	return err
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (c *Client) SendChatAction(chatID int64, action string) error {
	_, err := c.api.Request(tgbotapi.NewChatAction(chatID, action))
	return err
}

func (c *Client) AnswerCallback(callbackID string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (c *Client) SendAudio(chatID int64, path string, meta model.MediaMeta, replyTo int) error {
	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	audio.ReplyToMessageID = replyTo
	audio.Title = meta.Title
	audio.Duration = meta.Duration
	_, err := c.api.Send(audio)
	return err
}

func (c *Client) SendVideo(chatID int64, path string, meta model.MediaMeta, replyTo int) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.ReplyToMessageID = replyTo
	video.Caption = meta.Title
	video.Duration = meta.Duration
	video.SupportsStreaming = true
	_, err := c.api.Send(video)
	return err
}

func inlineMarkup(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data))
		}
		keyboardRows = append(keyboardRows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
}
