package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"melodygram/internal/entity"
	"melodygram/internal/errs"
	"melodygram/pkg/musiclink"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sendWithKeyboard(chatID, welcomeText, menuKeyboard())
		case "help":
			b.sendText(chatID, helpText)
		default:
			b.sendText(chatID, helpText)
		}

		return
	}

	b.handleLink(ctx, chatID, msg.Text)
}

// handleLink recognizes a catalog link, resolves its metadata, and offers
// the quality keyboard. Demo links go through here too.
func (b *Bot) handleLink(ctx context.Context, chatID int64, text string) {
	id, kind, ok := musiclink.Extract(text)
	if !ok {
		b.log.Debug("unrecognized input", slog.Int64("chat_id", chatID))
		b.sendText(chatID, failureText(errs.ErrUnrecognizedLink))

		return
	}

	log := b.log.With(slog.Int64("chat_id", chatID), slog.String("kind", string(kind)), slog.String("id", id))

	switch kind {
	case musiclink.KindTrack:
		track, err := b.catalog.GetTrack(ctx, id)
		if err != nil {
			log.Warn("catalog lookup failed", slog.Any("error", err))
			b.sendText(chatID, failureText(err))

			return
		}

		b.putSession(chatID, &session{track: track})
		b.sendWithKeyboard(chatID, trackPromptText(track), qualityKeyboard(trackQualityPrefix))

	case musiclink.KindPlaylist, musiclink.KindAlbum:
		coll, err := b.lookupCollection(ctx, id, kind)
		if err != nil {
			log.Warn("catalog lookup failed", slog.Any("error", err))
			b.sendText(chatID, failureText(err))

			return
		}

		b.putSession(chatID, &session{isCollection: true, coll: coll})
		b.sendWithKeyboard(chatID, collectionPromptText(coll), qualityKeyboard(collectionQualityPrefix))
	}
}

func (b *Bot) lookupCollection(ctx context.Context, id string, kind musiclink.Kind) (entity.Collection, error) {
	if kind == musiclink.KindAlbum {
		return b.catalog.GetAlbum(ctx, id)
	}

	return b.catalog.GetPlaylist(ctx, id)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Ack immediately so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn("callback ack failed", slog.Any("error", err))
	}

	if cq.Message == nil {
		return
	}

	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	act := parseAction(cq.Data)

	switch act.kind {
	case actionMenu:
		b.sendWithKeyboard(chatID, welcomeText, menuKeyboard())

	case actionHelp:
		b.sendText(chatID, helpText)

	case actionDemo:
		b.handleLink(ctx, chatID, randomDemoLink())

	case actionCancel:
		b.takeSession(chatID)
		b.editText(chatID, messageID, "Canceled.")

	case actionTrackQuality:
		s := b.takeSession(chatID)
		if s == nil || s.isCollection {
			b.editText(chatID, messageID, failureText(errs.ErrSessionExpired))

			return
		}

		b.editText(chatID, messageID, downloadingText(s.track))
		b.startTrackDownload(ctx, chatID, messageID, s.track, act.quality)

	case actionCollectionQuality:
		s := b.takeSession(chatID)
		if s == nil || !s.isCollection {
			b.editText(chatID, messageID, failureText(errs.ErrSessionExpired))

			return
		}

		b.editText(chatID, messageID, progressText(entity.Progress{Total: len(s.coll.Tracks)}))
		b.startCollectionDownload(ctx, chatID, messageID, s.coll, act.quality)

	case actionUnknown:
		b.log.Debug("unknown callback data", slog.String("data", cq.Data))
	}
}

func (b *Bot) startTrackDownload(ctx context.Context, chatID int64, messageID int, track entity.Track, quality entity.Quality) {
	notifier := &messageNotifier{
		log:         b.log,
		api:         b.api,
		metrics:     b.metrics,
		chatID:      chatID,
		statusMsgID: messageID,
	}

	b.wg.Add(1)

	go func() {
		defer b.wg.Done()

		err := b.svc.DownloadTrack(ctx, track, quality, notifier)
		if err != nil {
			b.editText(chatID, messageID, failureText(err))

			return
		}

		// The audio message carries everything; the status message has
		// served its purpose.
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
			b.log.Debug("status message delete failed", slog.Any("error", err))
		}
	}()
}

func (b *Bot) startCollectionDownload(ctx context.Context, chatID int64, messageID int, coll entity.Collection, quality entity.Quality) {
	notifier := &messageNotifier{
		log:         b.log,
		api:         b.api,
		metrics:     b.metrics,
		chatID:      chatID,
		statusMsgID: messageID,
	}

	b.wg.Add(1)

	go func() {
		defer b.wg.Done()

		summary := b.svc.DownloadCollection(ctx, coll, quality, notifier)
		b.editText(chatID, messageID, summaryText(coll, summary))
	}()
}
