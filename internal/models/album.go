package models

// SimplifiedAlbum is the album object embedded in tracks, search results and artist discographies.
type SimplifiedAlbum struct {
	AlbumType            string             `json:"album_type"`
	AlbumGroup           string             `json:"album_group,omitempty"`
	TotalTracks          int                `json:"total_tracks"`
	AvailableMarkets     []string           `json:"available_markets"`
	ExternalURLs         ExternalURLs       `json:"external_urls"`
	Href                 string             `json:"href"`
	ID                   string             `json:"id"`
	Images               []Image            `json:"images"`
	Name                 string             `json:"name"`
	ReleaseDate          string             `json:"release_date"`
	ReleaseDatePrecision string             `json:"release_date_precision"`
	Restrictions         *AlbumRestriction  `json:"restrictions,omitempty"`
	Type                 string             `json:"type"`
	URI                  string             `json:"uri"`
	Artists              []SimplifiedArtist `json:"artists"`
}

// Album is a full album object. Tracks is the first page of the album's tracks.
type Album struct {
	AlbumType            string                  `json:"album_type"`
	TotalTracks          int                     `json:"total_tracks"`
	AvailableMarkets     []string                `json:"available_markets"`
	Copyrights           []Copyright             `json:"copyrights"`
	ExternalIDs          ExternalIDs             `json:"external_ids"`
	ExternalURLs         ExternalURLs            `json:"external_urls"`
	Genres               []string                `json:"genres"`
	Href                 string                  `json:"href"`
	ID                   string                  `json:"id"`
	Images               []Image                 `json:"images"`
	Label                string                  `json:"label"`
	Name                 string                  `json:"name"`
	Popularity           int                     `json:"popularity"`
	ReleaseDate          string                  `json:"release_date"`
	ReleaseDatePrecision string                  `json:"release_date_precision"`
	Restrictions         *AlbumRestriction       `json:"restrictions,omitempty"`
	Tracks               Paging[SimplifiedTrack] `json:"tracks"`
	Type                 string                  `json:"type"`
	URI                  string                  `json:"uri"`
	Artists              []SimplifiedArtist      `json:"artists"`
}

// Albums wraps the several-albums response.
type Albums struct {
	Albums []Album `json:"albums"`
}

// NewReleases wraps the browse new-releases response.
type NewReleases struct {
	Albums Paging[SimplifiedAlbum] `json:"albums"`
}
