package bot

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/config"
	"github.com/tgfetch/tgfetch/internal/model"
	"github.com/tgfetch/tgfetch/internal/session"
)

type sentMessage struct {
	chatID   int64
	text     string
	replyTo  int
	markdown bool
}

type editRecord struct {
	messageID int
	text      string
}

type sentMedia struct {
	chatID  int64
	path    string
	meta    model.MediaMeta
	replyTo int
}

// fakeTransport records every outgoing interaction. Pipelines run on their
// own goroutines, so all access is mutex-guarded.
type fakeTransport struct {
	mu sync.Mutex

	nextID    int
	messages  []sentMessage
	keyboards [][][]Button
	edits     []editRecord
	deleted   []int
	actions   []string
	callbacks []string
	audio     []sentMedia
	video     []sentMedia

	failMessage  bool
	failKeyboard bool
	mediaErr     error
	actionErr    error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{nextID: 1000}
}

func (f *fakeTransport) SendMessage(chatID int64, text string, replyTo int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMessage {
		return 0, errATest
	}
	f.nextID++
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, replyTo: replyTo})
	return f.nextID, nil
}

func (f *fakeTransport) SendMarkdown(chatID int64, text string, replyTo int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, replyTo: replyTo, markdown: true})
	return f.nextID, nil
}

func (f *fakeTransport) SendKeyboard(chatID int64, text string, replyTo int, rows [][]Button) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKeyboard {
		return 0, errATest
	}
	f.nextID++
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, replyTo: replyTo})
	f.keyboards = append(f.keyboards, rows)
	return f.nextID, nil
}

func (f *fakeTransport) EditMessage(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, editRecord{messageID: messageID, text: text})
	return nil
}

func (f *fakeTransport) EditKeyboard(chatID int64, messageID int, text string, rows [][]Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, editRecord{messageID: messageID, text: text})
	f.keyboards = append(f.keyboards, rows)
	return nil
}

func (f *fakeTransport) DeleteMessage(chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTransport) SendChatAction(chatID int64, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return f.actionErr
}

func (f *fakeTransport) AnswerCallback(callbackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, callbackID)
	return nil
}

func (f *fakeTransport) SendAudio(chatID int64, path string, meta model.MediaMeta, replyTo int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.audio = append(f.audio, sentMedia{chatID: chatID, path: path, meta: meta, replyTo: replyTo})
	return nil
}

func (f *fakeTransport) SendVideo(chatID int64, path string, meta model.MediaMeta, replyTo int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.video = append(f.video, sentMedia{chatID: chatID, path: path, meta: meta, replyTo: replyTo})
	return nil
}

func (f *fakeTransport) lastEdit() (editRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return editRecord{}, false
	}
	return f.edits[len(f.edits)-1], true
}

func (f *fakeTransport) editTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	texts := make([]string, len(f.edits))
	for i, edit := range f.edits {
		texts[i] = edit.text
	}
	return texts
}

func (f *fakeTransport) snapshot() fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeTransport{
		messages:  append([]sentMessage(nil), f.messages...),
		keyboards: append([][][]Button(nil), f.keyboards...),
		edits:     append([]editRecord(nil), f.edits...),
		deleted:   append([]int(nil), f.deleted...),
		actions:   append([]string(nil), f.actions...),
		callbacks: append([]string(nil), f.callbacks...),
		audio:     append([]sentMedia(nil), f.audio...),
		video:     append([]sentMedia(nil), f.video...),
	}
}

var errATest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "transport unavailable" }

type engineCall struct {
	url     string
	profile model.Profile
}

// fakeEngine answers Acquire with a canned result. When produceExt is set
// it writes a real file where the profile's output template points, with
// the placeholder replaced by produceExt. When manifestPath is set it
// writes the file there instead and reports it through the download
// manifest.
type fakeEngine struct {
	mu           sync.Mutex
	calls        []engineCall
	result       model.AcquisitionResult
	err          error
	produceExt   string
	manifestPath string
}

func (f *fakeEngine) Acquire(_ context.Context, url string, profile model.Profile) (model.AcquisitionResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, engineCall{url: url, profile: profile})
	f.mu.Unlock()

	if f.err != nil {
		return model.AcquisitionResult{}, f.err
	}
	if f.manifestPath != "" {
		if err := os.WriteFile(f.manifestPath, []byte("media-bytes"), 0644); err != nil {
			return model.AcquisitionResult{}, err
		}
		result := f.result
		result.Downloads = []model.DownloadEntry{{Filepath: f.manifestPath}}
		return result, nil
	}
	if f.produceExt != "" {
		path := strings.Replace(profile.OutputTemplate, model.OutputExtPlaceholder, f.produceExt, 1)
		if err := os.WriteFile(path, []byte("media-bytes"), 0644); err != nil {
			return model.AcquisitionResult{}, err
		}
	}
	return f.result, nil
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeEngine) lastCall() (engineCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return engineCall{}, false
	}
	return f.calls[len(f.calls)-1], true
}

func newTestBot(t *testing.T, transport *fakeTransport, engine *fakeEngine) *Bot {
	t.Helper()
	cfg := &config.Settings{
		BotToken:        "test-token",
		DownloadDir:     t.TempDir(),
		DownloadTimeout: 5 * time.Second,
		UploadTimeout:   5 * time.Second,
	}
	b := New(transport, engine, session.NewStore(), cfg, zap.NewNop())
	b.indicatorEvery = 10 * time.Millisecond
	b.deleteDelay = time.Millisecond
	return b
}

func textUpdate(chatID, userID int64, messageID int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{ID: userID, FirstName: "Alex"},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
		},
	}
}

func commandUpdate(chatID, userID int64, text string) tgbotapi.Update {
	update := textUpdate(chatID, userID, 1, text)
	command := text
	if i := strings.Index(command, " "); i != -1 {
		command = command[:i]
	}
	update.Message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command)},
	}
	return update
}

func callbackUpdate(chatID, userID int64, promptID, originalID int, data string) tgbotapi.Update {
	var replyTo *tgbotapi.Message
	if originalID != 0 {
		replyTo = &tgbotapi.Message{MessageID: originalID, Chat: &tgbotapi.Chat{ID: chatID}}
	}
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-test",
			From: &tgbotapi.User{ID: userID},
			Message: &tgbotapi.Message{
				MessageID:      promptID,
				Chat:           &tgbotapi.Chat{ID: chatID},
				ReplyToMessage: replyTo,
			},
			Data: data,
		},
	}
}

func dirEntryCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir %s: %v", dir, err)
	}
	return len(entries)
}

func TestHandleCommand_Start(t *testing.T) {
	transport := newFakeTransport()
	b := newTestBot(t, transport, &fakeEngine{})

	b.handleUpdate(context.Background(), commandUpdate(100, 200, "/start"))

	snap := transport.snapshot()
	if len(snap.messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(snap.messages))
	}
	expected := "👋 Welcome Alex!\nSend link (YouTube, SoundCloud, TikTok). /help for info."
	if snap.messages[0].text != expected {
		t.Errorf("Expected welcome text %q, got %q", expected, snap.messages[0].text)
	}
}

func TestHandleCommand_Help(t *testing.T) {
	transport := newFakeTransport()
	b := newTestBot(t, transport, &fakeEngine{})

	b.handleUpdate(context.Background(), commandUpdate(100, 200, "/help"))

	snap := transport.snapshot()
	if len(snap.messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(snap.messages))
	}
	if !snap.messages[0].markdown {
		t.Error("Expected help reply to use Markdown")
	}
	if !strings.Contains(snap.messages[0].text, "How to use") {
		t.Errorf("Expected usage text, got %q", snap.messages[0].text)
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	transport := newFakeTransport()
	b := newTestBot(t, transport, &fakeEngine{})

	b.handleUpdate(context.Background(), commandUpdate(100, 200, "/settings"))

	if snap := transport.snapshot(); len(snap.messages) != 0 {
		t.Errorf("Expected no reply to unknown command, got %d messages", len(snap.messages))
	}
}
