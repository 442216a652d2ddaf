package models

import "time"

// SavedTrack is a track in the user's library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// SavedAlbum is an album in the user's library.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// SavedShow is a show the user follows.
type SavedShow struct {
	AddedAt string         `json:"added_at"`
	Show    SimplifiedShow `json:"show"`
}

// SavedEpisode is an episode in the user's library.
type SavedEpisode struct {
	AddedAt string  `json:"added_at"`
	Episode Episode `json:"episode"`
}

// AddedTime parses AddedAt.
func (s SavedTrack) AddedTime() time.Time { return parseTimestamp(&s.AddedAt) }

// AddedTime parses AddedAt.
func (s SavedAlbum) AddedTime() time.Time { return parseTimestamp(&s.AddedAt) }

func parseTimestamp(s *string) time.Time {
	if s == nil || *s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}
