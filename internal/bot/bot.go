package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/config"
	"github.com/tgfetch/tgfetch/internal/download"
	"github.com/tgfetch/tgfetch/internal/session"
)

// Pipeline pacing constants
const (
	// indicatorInterval refreshes the chat action before Telegram's roughly
	// five second display window lapses.
	indicatorInterval = 4 * time.Second

	// originalDeleteDelay lets clients render the delivered media before
	// the source message disappears.
	originalDeleteDelay = 500 * time.Millisecond
)

// Bot routes updates to handlers and runs download pipelines.
type Bot struct {
	transport Transport
	engine    download.Acquirer
	sessions  *session.Store
	cfg       *config.Settings
	log       *zap.Logger

	wg sync.WaitGroup

	indicatorEvery time.Duration
	deleteDelay    time.Duration
}

// New assembles a bot from its collaborators.
func New(transport Transport, engine download.Acquirer, sessions *session.Store, cfg *config.Settings, log *zap.Logger) *Bot {
	return &Bot{
		transport:      transport,
		engine:         engine,
		sessions:       sessions,
		cfg:            cfg,
		log:            log,
		indicatorEvery: indicatorInterval,
		deleteDelay:    originalDeleteDelay,
	}
}

// Run consumes updates until the channel closes, then waits for running
// pipelines to finish. Handlers return quickly; every download runs on its
// own goroutine so one slow acquisition never stalls the update loop.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		b.handleUpdate(ctx, update)
	}
	b.wg.Wait()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}
