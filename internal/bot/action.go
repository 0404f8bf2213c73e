package bot

import (
	"strings"

	"melodygram/internal/entity"
)

// actionKind enumerates the callback actions the inline keyboards emit.
type actionKind int

const (
	actionUnknown actionKind = iota
	actionMenu
	actionHelp
	actionDemo
	actionCancel
	actionTrackQuality
	actionCollectionQuality
)

// Callback data values. Quality choices are tagged with a prefix so a track
// keyboard and a collection keyboard can never trigger each other's flow.
const (
	dataMenu   = "menu"
	dataHelp   = "help"
	dataDemo   = "demo"
	dataCancel = "cancel"

	trackQualityPrefix      = "q|"
	collectionQualityPrefix = "dlc|"
)

type action struct {
	kind    actionKind
	quality entity.Quality
}

// parseAction decodes inline keyboard callback data. Unknown data maps to
// actionUnknown; stale keyboards from older bot versions should be ignored,
// not crash the update loop.
func parseAction(data string) action {
	switch data {
	case dataMenu:
		return action{kind: actionMenu}
	case dataHelp:
		return action{kind: actionHelp}
	case dataDemo:
		return action{kind: actionDemo}
	case dataCancel:
		return action{kind: actionCancel}
	}

	if tier, ok := strings.CutPrefix(data, trackQualityPrefix); ok {
		return action{kind: actionTrackQuality, quality: entity.ParseQuality(tier)}
	}

	if tier, ok := strings.CutPrefix(data, collectionQualityPrefix); ok {
		return action{kind: actionCollectionQuality, quality: entity.ParseQuality(tier)}
	}

	return action{kind: actionUnknown}
}
