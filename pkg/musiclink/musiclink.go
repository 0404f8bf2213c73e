// Package musiclink identifies catalog links in free-form user input.
package musiclink

import "regexp"

// Kind is the type of catalog entity a link points at.
type Kind string

// Recognized link kinds.
const (
	KindTrack    Kind = "track"
	KindPlaylist Kind = "playlist"
	KindAlbum    Kind = "album"
)

// Two accepted shapes: a web URL path segment pair "/<kind>/<id>" and a URI
// form "<scheme>:<kind>:<id>". First matching pattern wins.
var (
	reWeb = regexp.MustCompile(`/(track|playlist|album)/([a-zA-Z0-9]+)`)
	reURI = regexp.MustCompile(`\b[a-z][a-z0-9]*:(track|playlist|album):([a-zA-Z0-9]+)`)
)

// Extract pulls the catalog ID and kind out of an input string.
// It reports ok=false for anything it does not recognize.
func Extract(input string) (id string, kind Kind, ok bool) {
	if m := reWeb.FindStringSubmatch(input); m != nil {
		return m[2], Kind(m[1]), true
	}

	if m := reURI.FindStringSubmatch(input); m != nil {
		return m[2], Kind(m[1]), true
	}

	return "", "", false
}
