package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"melodygram/internal/entity"
	"melodygram/internal/observability"
	"melodygram/internal/service"
)

// messageNotifier delivers download callbacks into one chat. Progress
// updates edit a single status message in place rather than flooding the
// chat with one message per track.
type messageNotifier struct {
	log         *slog.Logger
	api         chatAPI
	metrics     *observability.Metrics
	chatID      int64
	statusMsgID int
}

var _ service.Notifier = (*messageNotifier)(nil)

// Progress rewrites the status message. Edit failures are logged and
// dropped; a stale progress bar must never fail a download.
func (n *messageNotifier) Progress(_ context.Context, p entity.Progress) {
	edit := tgbotapi.NewEditMessageText(n.chatID, n.statusMsgID, progressText(p))

	_, err := n.api.Send(edit)
	if err != nil {
		n.log.Warn("progress edit failed", slog.Any("error", err))
		n.metrics.RecordTelegramSend("edit", "error")

		return
	}

	n.metrics.RecordTelegramSend("edit", "ok")
}

// Deliver uploads the finished audio file into the chat with its catalog
// metadata attached, so the player shows title and artist even for formats
// the tagger does not cover.
func (n *messageNotifier) Deliver(_ context.Context, path string, track entity.Track) error {
	audio := tgbotapi.NewAudio(n.chatID, tgbotapi.FilePath(path))
	audio.Title = track.Name
	audio.Performer = track.Artist
	audio.Duration = track.DurationSeconds()

	_, err := n.api.Send(audio)
	if err != nil {
		n.metrics.RecordTelegramSend("audio", "error")

		return fmt.Errorf("send audio: %w", err)
	}

	n.metrics.RecordTelegramSend("audio", "ok")

	return nil
}
