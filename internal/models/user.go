package models

// ExplicitContentSettings is the current user's explicit content filter.
type ExplicitContentSettings struct {
	FilterEnabled bool `json:"filter_enabled"`
	FilterLocked  bool `json:"filter_locked"`
}

// PublicUser is the publicly visible part of a user profile, also used for playlist owners.
type PublicUser struct {
	DisplayName  *string      `json:"display_name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    *Followers   `json:"followers,omitempty"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Images       []Image      `json:"images,omitempty"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// PrivateUser is the current user's profile as returned by /me.
// Country, Email, ExplicitContent and Product require additional scopes.
type PrivateUser struct {
	Country         string                   `json:"country,omitempty"`
	DisplayName     *string                  `json:"display_name"`
	Email           string                   `json:"email,omitempty"`
	ExplicitContent *ExplicitContentSettings `json:"explicit_content,omitempty"`
	ExternalURLs    ExternalURLs             `json:"external_urls"`
	Followers       Followers                `json:"followers"`
	Href            string                   `json:"href"`
	ID              string                   `json:"id"`
	Images          []Image                  `json:"images"`
	Product         string                   `json:"product,omitempty"`
	Type            string                   `json:"type"`
	URI             string                   `json:"uri"`
}
