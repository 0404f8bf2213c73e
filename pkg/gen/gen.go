// Package gen provides utility functions for generating values.
package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fingerprintLen = 8

// Normalize collapses whitespace runs in a search query to single spaces and
// trims the edges.
func Normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// Fingerprint derives a short deterministic token from a search query.
// The same query always yields the same token; distinct queries collide
// only with negligible probability at this width.
func Fingerprint(query string) string {
	sum := sha256.Sum256([]byte(Normalize(query)))

	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
