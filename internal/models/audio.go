package models

// AudioFeatures holds the acoustic attributes of a track. Confidence-style values range 0.0 to 1.0.
type AudioFeatures struct {
	Acousticness     float64 `json:"acousticness"`
	AnalysisURL      string  `json:"analysis_url"`
	Danceability     float64 `json:"danceability"`
	DurationMs       int     `json:"duration_ms"`
	Energy           float64 `json:"energy"`
	ID               string  `json:"id"`
	Instrumentalness float64 `json:"instrumentalness"`
	Key              int     `json:"key"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Mode             int     `json:"mode"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	TimeSignature    int     `json:"time_signature"`
	TrackHref        string  `json:"track_href"`
	Type             string  `json:"type"`
	URI              string  `json:"uri"`
	Valence          float64 `json:"valence"`
}

// AudioFeaturesList wraps the several-audio-features response; unknown IDs yield null entries.
type AudioFeaturesList struct {
	AudioFeatures []*AudioFeatures `json:"audio_features"`
}

// TuneableTrack carries min_/max_/target_ attribute values for recommendations.
// Only set fields are sent.
type TuneableTrack struct {
	Acousticness     *float64 `json:"acousticness,omitempty"`
	Danceability     *float64 `json:"danceability,omitempty"`
	DurationMs       *int     `json:"duration_ms,omitempty"`
	Energy           *float64 `json:"energy,omitempty"`
	Instrumentalness *float64 `json:"instrumentalness,omitempty"`
	Key              *int     `json:"key,omitempty"`
	Liveness         *float64 `json:"liveness,omitempty"`
	Loudness         *float64 `json:"loudness,omitempty"`
	Mode             *int     `json:"mode,omitempty"`
	Popularity       *int     `json:"popularity,omitempty"`
	Speechiness      *float64 `json:"speechiness,omitempty"`
	Tempo            *float64 `json:"tempo,omitempty"`
	TimeSignature    *int     `json:"time_signature,omitempty"`
	Valence          *float64 `json:"valence,omitempty"`
}

// RecommendationSeed describes one seed of a recommendations response.
type RecommendationSeed struct {
	AfterFilteringSize int     `json:"afterFilteringSize"`
	AfterRelinkingSize int     `json:"afterRelinkingSize"`
	Href               *string `json:"href"`
	ID                 string  `json:"id"`
	InitialPoolSize    int     `json:"initialPoolSize"`
	Type               string  `json:"type"`
}

// Recommendations is the response of /recommendations.
type Recommendations struct {
	Seeds  []RecommendationSeed `json:"seeds"`
	Tracks []Track              `json:"tracks"`
}
