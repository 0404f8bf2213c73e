// Package bot is the Telegram front-end. It recognizes catalog links in
// incoming messages, walks users through quality selection with inline
// keyboards, and streams download progress and results back into the chat.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"melodygram/internal/catalog"
	"melodygram/internal/config"
	"melodygram/internal/entity"
	"melodygram/internal/observability"
	"melodygram/internal/service"
)

// chatAPI is the slice of the Telegram client the bot uses. Narrowed to an
// interface so handler tests can run against a recording fake.
type chatAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// downloads is the download orchestration surface the bot drives.
type downloads interface {
	DownloadTrack(ctx context.Context, track entity.Track, quality entity.Quality, notifier service.Notifier) error
	DownloadCollection(ctx context.Context, coll entity.Collection, quality entity.Quality, notifier service.Notifier) entity.Summary
}

// session is a pending quality selection for one chat. A chat holds at most
// one: pasting a new link replaces the previous pending selection.
type session struct {
	isCollection bool
	track        entity.Track
	coll         entity.Collection
}

// Bot owns the Telegram update loop.
type Bot struct {
	log     *slog.Logger
	cfg     *config.Config
	api     chatAPI
	catalog catalog.Provider
	svc     downloads
	metrics *observability.Metrics

	mu       sync.Mutex
	sessions map[int64]*session

	wg sync.WaitGroup
}

// New connects to the Telegram API and creates the bot.
func New(log *slog.Logger, cfg *config.Config, provider catalog.Provider, svc downloads, metrics *observability.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}

	api.Debug = cfg.Telegram.Debug

	return newWithAPI(log, cfg, api, provider, svc, metrics), nil
}

func newWithAPI(log *slog.Logger, cfg *config.Config, api chatAPI, provider catalog.Provider, svc downloads, metrics *observability.Metrics) *Bot {
	return &Bot{
		log:      log.With(slog.String("package", "bot")),
		cfg:      cfg,
		api:      api,
		catalog:  provider,
		svc:      svc,
		metrics:  metrics,
		sessions: make(map[int64]*session),
	}
}

// Run consumes Telegram updates until ctx is canceled, then waits for
// in-flight downloads to finish.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.Telegram.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	b.log.Info("update loop started")

	for update := range updates {
		switch {
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		case update.CallbackQuery != nil:
			b.handleCallback(ctx, update.CallbackQuery)
		}
	}

	b.log.Info("update loop stopped, waiting for downloads")
	b.wg.Wait()
}

func (b *Bot) putSession(chatID int64, s *session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions[chatID] = s
}

// takeSession returns and clears the chat's pending selection. Once a
// download starts there is nothing left to cancel.
func (b *Bot) takeSession(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.sessions[chatID]
	delete(b.sessions, chatID)

	return s
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.send(msg, "message")
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.send(msg, "message")
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	b.send(edit, "edit")
}

func (b *Bot) send(c tgbotapi.Chattable, opType string) {
	_, err := b.api.Send(c)
	if err != nil {
		b.log.Warn("telegram send failed", slog.String("type", opType), slog.Any("error", err))
		b.metrics.RecordTelegramSend(opType, "error")

		return
	}

	b.metrics.RecordTelegramSend(opType, "ok")
}
