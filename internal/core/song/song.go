// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package song stores the audio catalogue: binary audio data, optional
// synchronized lyrics, and the metadata the search engine's FTS index scans.
package song

import "time"

// Song is one content.song row.
type Song struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Artist            string    `json:"artist"`
	Album             string    `json:"album,omitempty"`
	AlbumID           string    `json:"album_id,omitempty"`
	CoverImage        string    `json:"cover_image,omitempty"`
	DurationMs        int       `json:"duration_ms"`
	Format            string    `json:"format"`
	Bitrate           int       `json:"bitrate"`
	LyricsLRC         string    `json:"lyrics_lrc,omitempty"`
	LyricsTranslation string    `json:"lyrics_translation,omitempty"`
	AudioData         []byte    `json:"-"`
	Source            string    `json:"source"`
	SourceID          string    `json:"source_id,omitempty"`
	Tags              []string  `json:"tags"`
	SearchableText    string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BuildSearchableText derives the text the FTS index is generated from —
// title, artist, and album concatenated — so callers never need to remember
// to keep it in sync by hand.
func (s *Song) BuildSearchableText() {
	s.SearchableText = s.Title + " " + s.Artist + " " + s.Album
}
