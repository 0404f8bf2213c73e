// Package id3 writes metadata frames into downloaded mp3 files.
package id3

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	"melodygram/internal/entity"
)

// Taggable reports whether the file at path is a format this package can tag.
func Taggable(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// Tag writes title, artist, and album frames into the mp3 at path. The
// caller decides whether a failure matters; a track without tags is still
// playable.
func Tag(path string, track entity.Track) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(track.Name)
	tag.SetArtist(track.Artist)
	tag.SetAlbum(track.Album)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}

	return nil
}
