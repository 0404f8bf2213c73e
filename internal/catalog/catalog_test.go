package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"melodygram/internal/config"
	"melodygram/internal/errs"
	"melodygram/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Spotify.ClientID = "test-client"
	cfg.Spotify.ClientSecret = "test-secret"
	cfg.Spotify.TokenURL = srv.URL + "/api/token"
	cfg.Spotify.APIBaseURL = srv.URL + "/v1"

	return New(logger.New("error"), cfg, nil)
}

func tokenHandler(mux *http.ServeMux) {
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
}

func TestGetTrack(t *testing.T) {
	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/tracks/4iV5W9uYEdYUVa79Axb7Rh", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization header = %q", got)
		}

		fmt.Fprint(w, `{
			"id": "4iV5W9uYEdYUVa79Axb7Rh",
			"name": "Karma Police",
			"duration_ms": 261000,
			"artists": [{"name": "Radiohead"}],
			"album": {"name": "OK Computer"}
		}`)
	})

	c := newTestClient(t, mux)

	track, err := c.GetTrack(context.Background(), "4iV5W9uYEdYUVa79Axb7Rh")
	if err != nil {
		t.Fatalf("GetTrack() error = %v", err)
	}

	if track.Name != "Karma Police" {
		t.Errorf("Name = %q, want %q", track.Name, "Karma Police")
	}

	if track.Artist != "Radiohead" {
		t.Errorf("Artist = %q, want %q", track.Artist, "Radiohead")
	}

	if track.Album != "OK Computer" {
		t.Errorf("Album = %q, want %q", track.Album, "OK Computer")
	}

	if track.DurationMillis != 261000 {
		t.Errorf("DurationMillis = %d, want 261000", track.DurationMillis)
	}
}

func TestGetTrackJoinsArtists(t *testing.T) {
	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/tracks/t1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"id": "t1",
			"name": "Under Pressure",
			"duration_ms": 248000,
			"artists": [{"name": "Queen"}, {"name": "David Bowie"}],
			"album": {"name": "Hot Space"}
		}`)
	})

	c := newTestClient(t, mux)

	track, err := c.GetTrack(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTrack() error = %v", err)
	}

	if want := "Queen, David Bowie"; track.Artist != want {
		t.Errorf("Artist = %q, want %q", track.Artist, want)
	}
}

func TestGetTrackNotFound(t *testing.T) {
	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/tracks/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := newTestClient(t, mux)

	_, err := c.GetTrack(context.Background(), "nope")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("GetTrack() error = %v, want ErrNotFound", err)
	}
}

func TestGetTrackServerError(t *testing.T) {
	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/tracks/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := newTestClient(t, mux)

	_, err := c.GetTrack(context.Background(), "t1")
	if !errors.Is(err, errs.ErrCatalogUnavailable) {
		t.Errorf("GetTrack() error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestGetPlaylistPagination(t *testing.T) {
	var base string

	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/playlists/pl1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"id": "pl1",
			"name": "Road Trip",
			"owner": {"display_name": "alice"},
			"tracks": {
				"items": [
					{"track": {"id": "t1", "name": "One", "duration_ms": 1000, "artists": [{"name": "A"}], "album": {"name": "X"}}},
					{"track": null},
					{"track": {"id": "t2", "name": "Two", "duration_ms": 2000, "artists": [{"name": "B"}], "album": {"name": "Y"}}}
				],
				"next": "%s/v1/playlists/pl1/tracks?offset=2"
			}
		}`, base)
	})
	mux.HandleFunc("/v1/playlists/pl1/tracks", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"items": [
				{"track": {"id": "t3", "name": "Three", "duration_ms": 3000, "artists": [{"name": "C"}], "album": {"name": "Z"}}}
			],
			"next": ""
		}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	base = srv.URL

	cfg := &config.Config{}
	cfg.Spotify.ClientID = "test-client"
	cfg.Spotify.ClientSecret = "test-secret"
	cfg.Spotify.TokenURL = srv.URL + "/api/token"
	cfg.Spotify.APIBaseURL = srv.URL + "/v1"

	c := New(logger.New("error"), cfg, nil)

	coll, err := c.GetPlaylist(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}

	if coll.Name != "Road Trip" {
		t.Errorf("Name = %q, want %q", coll.Name, "Road Trip")
	}

	if coll.Owner != "alice" {
		t.Errorf("Owner = %q, want %q", coll.Owner, "alice")
	}

	if coll.Kind != "playlist" {
		t.Errorf("Kind = %q, want %q", coll.Kind, "playlist")
	}

	// Null track entries are skipped, pages are stitched in order.
	want := []string{"One", "Two", "Three"}
	if len(coll.Tracks) != len(want) {
		t.Fatalf("len(Tracks) = %d, want %d", len(coll.Tracks), len(want))
	}

	for i, name := range want {
		if coll.Tracks[i].Name != name {
			t.Errorf("Tracks[%d].Name = %q, want %q", i, coll.Tracks[i].Name, name)
		}
	}
}

func TestGetAlbum(t *testing.T) {
	mux := http.NewServeMux()
	tokenHandler(mux)
	mux.HandleFunc("/v1/albums/al1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"id": "al1",
			"name": "OK Computer",
			"artists": [{"name": "Radiohead"}],
			"tracks": {
				"items": [
					{"id": "t1", "name": "Airbag", "duration_ms": 284000, "artists": [{"name": "Radiohead"}]},
					{"id": "t2", "name": "Paranoid Android", "duration_ms": 383000, "artists": [{"name": "Radiohead"}]}
				],
				"next": ""
			}
		}`)
	})

	c := newTestClient(t, mux)

	coll, err := c.GetAlbum(context.Background(), "al1")
	if err != nil {
		t.Fatalf("GetAlbum() error = %v", err)
	}

	if coll.Owner != "Radiohead" {
		t.Errorf("Owner = %q, want %q", coll.Owner, "Radiohead")
	}

	if coll.Kind != "album" {
		t.Errorf("Kind = %q, want %q", coll.Kind, "album")
	}

	if len(coll.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want 2", len(coll.Tracks))
	}

	// Album tracks carry no album object; the album name comes from the
	// enclosing payload.
	if coll.Tracks[0].Album != "OK Computer" {
		t.Errorf("Tracks[0].Album = %q, want %q", coll.Tracks[0].Album, "OK Computer")
	}
}
