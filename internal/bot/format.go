package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"melodygram/internal/consts"
	"melodygram/internal/entity"
	"melodygram/internal/errs"
	"melodygram/pkg/calc"
)

const welcomeText = `Hi! Send me a track, album, or playlist link and I will fetch the audio for you.

Tap Demo to try it on a sample track.`

const helpText = `Paste a link to a track, album, or playlist and pick the audio quality you want.

Albums and playlists are downloaded track by track; a track that cannot be found is skipped and the rest keep going.`

var unrecognizedText = "I could not find a track, album, or playlist link in that message. " +
	"Send a link like open.spotify.com/track/... and I will take it from there."

// menuKeyboard is attached to the welcome message.
func menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Demo", dataDemo),
			tgbotapi.NewInlineKeyboardButtonData("Help", dataHelp),
		),
	)
}

// qualityKeyboard offers the three tiers plus cancel. The prefix decides
// whether the choice starts a track or a collection download.
func qualityKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(entity.QualityLow.Label(), prefix+string(entity.QualityLow)),
			tgbotapi.NewInlineKeyboardButtonData(entity.QualityMedium.Label(), prefix+string(entity.QualityMedium)),
			tgbotapi.NewInlineKeyboardButtonData(entity.QualityHigh.Label(), prefix+string(entity.QualityHigh)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", dataCancel),
		),
	)
}

func trackPromptText(track entity.Track) string {
	return fmt.Sprintf("%s — %s (%s)\n\nPick the audio quality:",
		track.Name, track.Artist, track.DurationString())
}

func collectionPromptText(coll entity.Collection) string {
	return fmt.Sprintf("%s %q by %s, %d tracks\n\nPick the audio quality for all of them:",
		coll.Kind, coll.Name, coll.Owner, len(coll.Tracks))
}

func downloadingText(track entity.Track) string {
	return fmt.Sprintf("Downloading %s — %s...", track.Name, track.Artist)
}

func progressText(p entity.Progress) string {
	return fmt.Sprintf("%s\n%d/%d %s — %s (%d done)",
		calc.Bar(p.Current, p.Total, consts.ProgressBarWidth),
		p.Current, p.Total, p.Track.Name, p.Track.Artist, p.Succeeded)
}

func summaryText(coll entity.Collection, s entity.Summary) string {
	if s.Succeeded == s.Total {
		return fmt.Sprintf("Done! All %d tracks of %q delivered.", s.Total, coll.Name)
	}

	return fmt.Sprintf("Done. %d of %d tracks of %q delivered; the rest could not be downloaded.",
		s.Succeeded, s.Total, coll.Name)
}

// failureText maps an error onto a user-facing explanation. Each failure
// class gets its own wording so users can tell a missing track from a slow
// network.
func failureText(err error) string {
	switch {
	case errors.Is(err, errs.ErrNoResults):
		return "I could not find that track anywhere, sorry."
	case errors.Is(err, errs.ErrTimeout):
		return "That download took too long and was dropped. Try again in a bit."
	case errors.Is(err, errs.ErrFileNotFound):
		return "The download finished but the file went missing. Try again."
	case errors.Is(err, errs.ErrNotFound):
		return "The catalog has no entry for that link. Check the link and try again."
	case errors.Is(err, errs.ErrCatalogUnavailable):
		return "The music catalog is not answering right now. Try again in a minute."
	case errors.Is(err, errs.ErrSessionExpired):
		return "That selection has expired. Send the link again."
	case errors.Is(err, errs.ErrUnrecognizedLink):
		return unrecognizedText
	default:
		return "Something went wrong with that download. Try again."
	}
}
