package catalog

// Wire models for the catalog API. Only the fields the core consumes are
// declared; everything else in the payload is ignored on decode.

type apiArtist struct {
	Name string `json:"name"`
}

type apiAlbumRef struct {
	Name string `json:"name"`
}

type apiTrack struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMS int64       `json:"duration_ms"`
	Artists    []apiArtist `json:"artists"`
	Album      apiAlbumRef `json:"album"`
}

type apiPlaylistItem struct {
	Track *apiTrack `json:"track"`
}

type apiPlaylistPage struct {
	Items []apiPlaylistItem `json:"items"`
	Next  string            `json:"next"`
}

type apiPlaylist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Tracks apiPlaylistPage `json:"tracks"`
}

type apiAlbumTrackPage struct {
	Items []apiTrack `json:"items"`
	Next  string     `json:"next"`
}

type apiAlbum struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Artists []apiArtist       `json:"artists"`
	Tracks  apiAlbumTrackPage `json:"tracks"`
}
