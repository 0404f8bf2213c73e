// Package fsname produces filesystem-safe file names.
package fsname

import "strings"

// MaxLen caps base names to stay under common filesystem limits.
const MaxLen = 200

const (
	replacement = '_'
	trimCutset  = " ."
)

// Sanitize maps a display name to a name safe on common filesystems.
// Illegal characters are replaced, not dropped, so that two names differing
// only in their illegal characters stay distinct. Leading and trailing
// spaces and dots are trimmed and the result is capped at MaxLen runes.
func Sanitize(name string) string {
	return SanitizeN(name, MaxLen)
}

// SanitizeN is Sanitize with a caller-chosen rune cap, for callers that
// append a mandatory suffix after capping.
func SanitizeN(name string, maxLen int) string {
	runes := []rune(name)

	for i, r := range runes {
		if isIllegal(r) {
			runes[i] = replacement
		}
	}

	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	return strings.Trim(string(runes), trimCutset)
}

func isIllegal(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}

	return r < 0x20
}
