package models

// SimplifiedShow is the show object embedded in episodes and search results.
type SimplifiedShow struct {
	AvailableMarkets   []string     `json:"available_markets"`
	Copyrights         []Copyright  `json:"copyrights"`
	Description        string       `json:"description"`
	HTMLDescription    string       `json:"html_description"`
	Explicit           bool         `json:"explicit"`
	ExternalURLs       ExternalURLs `json:"external_urls"`
	Href               string       `json:"href"`
	ID                 string       `json:"id"`
	Images             []Image      `json:"images"`
	IsExternallyHosted bool         `json:"is_externally_hosted"`
	Languages          []string     `json:"languages"`
	MediaType          string       `json:"media_type"`
	Name               string       `json:"name"`
	Publisher          string       `json:"publisher"`
	Type               string       `json:"type"`
	URI                string       `json:"uri"`
	TotalEpisodes      int          `json:"total_episodes"`
}

// Show is a full show object. Episodes is the first page of the show's episodes.
type Show struct {
	AvailableMarkets   []string                  `json:"available_markets"`
	Copyrights         []Copyright               `json:"copyrights"`
	Description        string                    `json:"description"`
	HTMLDescription    string                    `json:"html_description"`
	Explicit           bool                      `json:"explicit"`
	ExternalURLs       ExternalURLs              `json:"external_urls"`
	Href               string                    `json:"href"`
	ID                 string                    `json:"id"`
	Images             []Image                   `json:"images"`
	IsExternallyHosted bool                      `json:"is_externally_hosted"`
	Languages          []string                  `json:"languages"`
	MediaType          string                    `json:"media_type"`
	Name               string                    `json:"name"`
	Publisher          string                    `json:"publisher"`
	Type               string                    `json:"type"`
	URI                string                    `json:"uri"`
	TotalEpisodes      int                       `json:"total_episodes"`
	Episodes           Paging[SimplifiedEpisode] `json:"episodes"`
}

// SimplifiedEpisode is the episode object embedded in show listings.
type SimplifiedEpisode struct {
	AudioPreviewURL      *string             `json:"audio_preview_url"`
	Description          string              `json:"description"`
	HTMLDescription      string              `json:"html_description"`
	DurationMs           int                 `json:"duration_ms"`
	Explicit             bool                `json:"explicit"`
	ExternalURLs         ExternalURLs        `json:"external_urls"`
	Href                 string              `json:"href"`
	ID                   string              `json:"id"`
	Images               []Image             `json:"images"`
	IsExternallyHosted   bool                `json:"is_externally_hosted"`
	IsPlayable           bool                `json:"is_playable"`
	Languages            []string            `json:"languages"`
	Name                 string              `json:"name"`
	ReleaseDate          string              `json:"release_date"`
	ReleaseDatePrecision string              `json:"release_date_precision"`
	ResumePoint          *ResumePoint        `json:"resume_point,omitempty"`
	Type                 string              `json:"type"`
	URI                  string              `json:"uri"`
	Restrictions         *EpisodeRestriction `json:"restrictions,omitempty"`
}

// Episode is a full episode object, the episode variant of an [Item].
type Episode struct {
	AudioPreviewURL      *string             `json:"audio_preview_url"`
	Description          string              `json:"description"`
	HTMLDescription      string              `json:"html_description"`
	DurationMs           int                 `json:"duration_ms"`
	Explicit             bool                `json:"explicit"`
	ExternalURLs         ExternalURLs        `json:"external_urls"`
	Href                 string              `json:"href"`
	ID                   string              `json:"id"`
	Images               []Image             `json:"images"`
	IsExternallyHosted   bool                `json:"is_externally_hosted"`
	IsPlayable           bool                `json:"is_playable"`
	Languages            []string            `json:"languages"`
	Name                 string              `json:"name"`
	ReleaseDate          string              `json:"release_date"`
	ReleaseDatePrecision string              `json:"release_date_precision"`
	ResumePoint          *ResumePoint        `json:"resume_point,omitempty"`
	Type                 string              `json:"type"`
	URI                  string              `json:"uri"`
	Restrictions         *EpisodeRestriction `json:"restrictions,omitempty"`
	Show                 SimplifiedShow      `json:"show"`
}

// Episodes wraps the several-episodes response.
type Episodes struct {
	Episodes []Episode `json:"episodes"`
}
