package models

// Category is a browse category.
type Category struct {
	Href  string  `json:"href"`
	Icons []Image `json:"icons"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
}

// Categories wraps the browse categories response.
type Categories struct {
	Categories Paging[Category] `json:"categories"`
}

// SearchResult holds one page per requested search type; types not requested are nil.
type SearchResult struct {
	Tracks    *Paging[Track]              `json:"tracks,omitempty"`
	Artists   *Paging[Artist]             `json:"artists,omitempty"`
	Albums    *Paging[SimplifiedAlbum]    `json:"albums,omitempty"`
	Playlists *Paging[SimplifiedPlaylist] `json:"playlists,omitempty"`
	Shows     *Paging[SimplifiedShow]     `json:"shows,omitempty"`
	Episodes  *Paging[SimplifiedEpisode]  `json:"episodes,omitempty"`
}

// FollowedArtists wraps /me/following?type=artist.
type FollowedArtists struct {
	Artists CursorPaging[Artist] `json:"artists"`
}
