// Package catalog retrieves track, playlist, and album metadata from the
// streaming catalog's web API and maps it onto the core entities. The API
// is a read-only black box here; pagination is followed internally and no
// retries are layered on top of what the HTTP client already does.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"melodygram/internal/config"
	"melodygram/internal/entity"
	"melodygram/internal/errs"
	"melodygram/internal/observability"
	"melodygram/pkg/musiclink"
)

// Provider is the read-only metadata surface the orchestration layer needs.
type Provider interface {
	GetTrack(ctx context.Context, id string) (entity.Track, error)
	GetPlaylist(ctx context.Context, id string) (entity.Collection, error)
	GetAlbum(ctx context.Context, id string) (entity.Collection, error)
}

// Client is a catalog client using the client-credentials grant.
type Client struct {
	log     *slog.Logger
	metrics *observability.Metrics
	baseURL string
	httpc   *http.Client
}

var _ Provider = (*Client)(nil)

// New creates a catalog client. Token acquisition and refresh are handled
// by the oauth2 transport.
func New(log *slog.Logger, cfg *config.Config, metrics *observability.Metrics) *Client {
	creds := clientcredentials.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     cfg.Spotify.TokenURL,
	}

	return &Client{
		log:     log.With(slog.String("package", "catalog")),
		metrics: metrics,
		baseURL: strings.TrimRight(cfg.Spotify.APIBaseURL, "/"),
		httpc:   creds.Client(context.Background()),
	}
}

// GetTrack returns the descriptor for one track.
func (c *Client) GetTrack(ctx context.Context, id string) (entity.Track, error) {
	var raw apiTrack

	err := c.getJSON(ctx, c.baseURL+"/tracks/"+id, &raw)
	c.metrics.RecordCatalogRequest(string(musiclink.KindTrack), statusLabel(err))

	if err != nil {
		return entity.Track{}, err
	}

	return toTrack(raw, raw.Album.Name), nil
}

// GetPlaylist returns the playlist descriptor with its full ordered track
// list, following pagination until exhausted.
func (c *Client) GetPlaylist(ctx context.Context, id string) (entity.Collection, error) {
	var raw apiPlaylist

	err := c.getJSON(ctx, c.baseURL+"/playlists/"+id, &raw)
	c.metrics.RecordCatalogRequest(string(musiclink.KindPlaylist), statusLabel(err))

	if err != nil {
		return entity.Collection{}, err
	}

	coll := entity.Collection{
		ID:    raw.ID,
		Name:  raw.Name,
		Owner: raw.Owner.DisplayName,
		Kind:  string(musiclink.KindPlaylist),
	}

	page := raw.Tracks
	for {
		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}

			coll.Tracks = append(coll.Tracks, toTrack(*item.Track, item.Track.Album.Name))
		}

		if page.Next == "" {
			break
		}

		next := page.Next
		page = apiPlaylistPage{}

		if err := c.getJSON(ctx, next, &page); err != nil {
			return entity.Collection{}, fmt.Errorf("playlist page: %w", err)
		}
	}

	return coll, nil
}

// GetAlbum returns the album descriptor with its full ordered track list.
func (c *Client) GetAlbum(ctx context.Context, id string) (entity.Collection, error) {
	var raw apiAlbum

	err := c.getJSON(ctx, c.baseURL+"/albums/"+id, &raw)
	c.metrics.RecordCatalogRequest(string(musiclink.KindAlbum), statusLabel(err))

	if err != nil {
		return entity.Collection{}, err
	}

	coll := entity.Collection{
		ID:    raw.ID,
		Name:  raw.Name,
		Owner: joinArtists(raw.Artists),
		Kind:  string(musiclink.KindAlbum),
	}

	page := raw.Tracks
	for {
		for _, tr := range page.Items {
			coll.Tracks = append(coll.Tracks, toTrack(tr, raw.Name))
		}

		if page.Next == "" {
			break
		}

		next := page.Next
		page = apiAlbumTrackPage{}

		if err := c.getJSON(ctx, next, &page); err != nil {
			return entity.Collection{}, fmt.Errorf("album page: %w", err)
		}
	}

	return coll, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", errs.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode: %v", errs.ErrCatalogUnavailable, err)
	}

	return nil
}

func toTrack(raw apiTrack, album string) entity.Track {
	return entity.Track{
		ID:             raw.ID,
		Name:           raw.Name,
		Artist:         joinArtists(raw.Artists),
		Album:          album,
		DurationMillis: raw.DurationMS,
	}
}

func joinArtists(artists []apiArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}

	return strings.Join(names, ", ")
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
