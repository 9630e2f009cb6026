package schema

// SongTable represents the 'content.song' table.
type SongTable struct {
	Table             string
	ID                string
	Title             string
	Artist            string
	Album             string
	AlbumID           string
	CoverImage        string
	DurationMs        string
	Format            string
	Bitrate           string
	LyricsLRC         string
	LyricsTranslation string
	AudioData         string
	Source            string
	SourceID          string
	Tags              string
	SearchableText    string
	SearchVector      string
	CreatedAt         string
	UpdatedAt         string
}

// Song is the schema definition for content.song.
var Song = SongTable{
	Table:             "content.song",
	ID:                "id",
	Title:             "title",
	Artist:            "artist",
	Album:             "album",
	AlbumID:           "album_id",
	CoverImage:        "cover_image",
	DurationMs:        "duration_ms",
	Format:            "format",
	Bitrate:           "bitrate",
	LyricsLRC:         "lyrics_lrc",
	LyricsTranslation: "lyrics_translation",
	AudioData:         "audio_data",
	Source:            "source",
	SourceID:          "source_id",
	Tags:              "tags",
	SearchableText:    "searchable_text",
	SearchVector:      "search_vector",
	CreatedAt:         "created_at",
	UpdatedAt:         "updated_at",
}

func (t SongTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Artist, t.Album, t.AlbumID, t.CoverImage, t.DurationMs,
		t.Format, t.Bitrate, t.LyricsLRC, t.LyricsTranslation, t.AudioData,
		t.Source, t.SourceID, t.Tags, t.SearchableText, t.CreatedAt, t.UpdatedAt,
	}
}
