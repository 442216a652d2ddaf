package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// Album retrieves an album by ID.
func (s *SpotifyService) Album(ctx context.Context, albumID string) (*models.Album, error) {
	id, err := segment("album", albumID)
	if err != nil {
		return nil, err
	}

	var album models.Album
	if err := s.get(ctx, "albums/"+id, s.marketQuery(), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Albums retrieves up to 20 albums. Unknown IDs come back as zero values.
func (s *SpotifyService) Albums(ctx context.Context, albumIDs []string) ([]models.Album, error) {
	ids, err := joinIDs(albumIDs, 20)
	if err != nil {
		return nil, err
	}

	q := PageOpts{}.query(s.market)
	q["ids"] = ids

	var resp models.Albums
	if err := s.get(ctx, "albums", q, &resp); err != nil {
		return nil, err
	}
	return resp.Albums, nil
}

// AlbumTracks retrieves one page of an album's tracks.
func (s *SpotifyService) AlbumTracks(ctx context.Context, albumID string, opts PageOpts) (*models.Paging[models.SimplifiedTrack], error) {
	id, err := segment("album", albumID)
	if err != nil {
		return nil, err
	}

	var page models.Paging[models.SimplifiedTrack]
	if err := s.get(ctx, "albums/"+id+"/tracks", opts.query(s.market), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Artist retrieves an artist by ID.
func (s *SpotifyService) Artist(ctx context.Context, artistID string) (*models.Artist, error) {
	id, err := segment("artist", artistID)
	if err != nil {
		return nil, err
	}

	var artist models.Artist
	if err := s.get(ctx, "artists/"+id, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Artists retrieves up to 50 artists.
func (s *SpotifyService) Artists(ctx context.Context, artistIDs []string) ([]models.Artist, error) {
	ids, err := joinIDs(artistIDs, 50)
	if err != nil {
		return nil, err
	}

	var resp models.Artists
	if err := s.get(ctx, "artists", map[string]string{"ids": ids}, &resp); err != nil {
		return nil, err
	}
	return resp.Artists, nil
}

// ArtistAlbums retrieves one page of an artist's discography, optionally filtered by groups
// (album, single, appears_on, compilation).
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string, groups []string, opts PageOpts) (*models.Paging[models.SimplifiedAlbum], error) {
	id, err := segment("artist", artistID)
	if err != nil {
		return nil, err
	}

	q := opts.query(s.market)
	if len(groups) > 0 {
		q["include_groups"] = strings.Join(groups, ",")
	}

	var page models.Paging[models.SimplifiedAlbum]
	if err := s.get(ctx, "artists/"+id+"/albums", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArtistTopTracks retrieves an artist's top tracks. The market defaults to the token's country.
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	id, err := segment("artist", artistID)
	if err != nil {
		return nil, err
	}

	market := s.market
	if market == "" {
		market = "from_token"
	}

	var resp models.Tracks
	if err := s.get(ctx, "artists/"+id+"/top-tracks", map[string]string{"market": market}, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// RelatedArtists retrieves artists similar to the given one.
func (s *SpotifyService) RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error) {
	id, err := segment("artist", artistID)
	if err != nil {
		return nil, err
	}

	var resp models.Artists
	if err := s.get(ctx, "artists/"+id+"/related-artists", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Artists, nil
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, trackID string) (*models.Track, error) {
	id, err := segment("track", trackID)
	if err != nil {
		return nil, err
	}

	var track models.Track
	if err := s.get(ctx, "tracks/"+id, s.marketQuery(), &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Tracks retrieves up to 50 tracks.
func (s *SpotifyService) Tracks(ctx context.Context, trackIDs []string) ([]models.Track, error) {
	ids, err := joinIDs(trackIDs, 50)
	if err != nil {
		return nil, err
	}

	q := PageOpts{}.query(s.market)
	q["ids"] = ids

	var resp models.Tracks
	if err := s.get(ctx, "tracks", q, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// AudioFeatures retrieves the audio features of one track.
func (s *SpotifyService) AudioFeatures(ctx context.Context, trackID string) (*models.AudioFeatures, error) {
	id, err := segment("track", trackID)
	if err != nil {
		return nil, err
	}

	var features models.AudioFeatures
	if err := s.get(ctx, "audio-features/"+id, nil, &features); err != nil {
		return nil, err
	}
	return &features, nil
}

// SeveralAudioFeatures retrieves audio features for up to 100 tracks. Entries are nil for unknown IDs.
func (s *SpotifyService) SeveralAudioFeatures(ctx context.Context, trackIDs []string) ([]*models.AudioFeatures, error) {
	ids, err := joinIDs(trackIDs, 100)
	if err != nil {
		return nil, err
	}

	var resp models.AudioFeaturesList
	if err := s.get(ctx, "audio-features", map[string]string{"ids": ids}, &resp); err != nil {
		return nil, err
	}
	return resp.AudioFeatures, nil
}

// RecommendationOpts seeds and tunes a recommendations request. Up to five seeds in total are allowed.
type RecommendationOpts struct {
	SeedArtists []string
	SeedGenres  []string
	SeedTracks  []string
	Limit       int // 1-100
	Market      string
	Min         *models.TuneableTrack
	Max         *models.TuneableTrack
	Target      *models.TuneableTrack
}

func (o RecommendationOpts) query(defaultMarket string) (map[string]string, error) {
	seeds := len(o.SeedArtists) + len(o.SeedGenres) + len(o.SeedTracks)
	if seeds == 0 {
		return nil, fmt.Errorf("%w: at least one seed", shared.ErrMissingArgument)
	}
	if seeds > 5 {
		return nil, fmt.Errorf("%w: maximum 5 seeds allowed, got %d", shared.ErrInvalidArgument, seeds)
	}

	q := map[string]string{}
	if len(o.SeedArtists) > 0 {
		q["seed_artists"] = strings.Join(o.SeedArtists, ",")
	}
	if len(o.SeedGenres) > 0 {
		q["seed_genres"] = strings.Join(o.SeedGenres, ",")
	}
	if len(o.SeedTracks) > 0 {
		q["seed_tracks"] = strings.Join(o.SeedTracks, ",")
	}
	if o.Limit > 0 {
		q["limit"] = strconv.Itoa(min(o.Limit, 100))
	}

	market := o.Market
	if market == "" {
		market = defaultMarket
	}
	if market != "" {
		q["market"] = market
	}

	for prefix, t := range map[string]*models.TuneableTrack{"min_": o.Min, "max_": o.Max, "target_": o.Target} {
		if err := tuneableQuery(q, prefix, t); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// tuneableQuery flattens the set fields of t into q as prefix+name.
func tuneableQuery(q map[string]string, prefix string, t *models.TuneableTrack) error {
	if t == nil {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tuneable attributes: %w", err)
	}

	var attrs map[string]float64
	if err := json.Unmarshal(data, &attrs); err != nil {
		return fmt.Errorf("failed to encode tuneable attributes: %w", err)
	}

	for name, v := range attrs {
		q[prefix+name] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return nil
}

// Recommendations retrieves tracks generated from the seeds in opts.
func (s *SpotifyService) Recommendations(ctx context.Context, opts RecommendationOpts) (*models.Recommendations, error) {
	q, err := opts.query(s.market)
	if err != nil {
		return nil, err
	}

	var recs models.Recommendations
	if err := s.get(ctx, "recommendations", q, &recs); err != nil {
		return nil, err
	}
	return &recs, nil
}

// Show retrieves a show by ID.
func (s *SpotifyService) Show(ctx context.Context, showID string) (*models.Show, error) {
	id, err := segment("show", showID)
	if err != nil {
		return nil, err
	}

	var show models.Show
	if err := s.get(ctx, "shows/"+id, s.marketQuery(), &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// ShowEpisodes retrieves one page of a show's episodes.
func (s *SpotifyService) ShowEpisodes(ctx context.Context, showID string, opts PageOpts) (*models.Paging[models.SimplifiedEpisode], error) {
	id, err := segment("show", showID)
	if err != nil {
		return nil, err
	}

	var page models.Paging[models.SimplifiedEpisode]
	if err := s.get(ctx, "shows/"+id+"/episodes", opts.query(s.market), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Episode retrieves an episode by ID.
func (s *SpotifyService) Episode(ctx context.Context, episodeID string) (*models.Episode, error) {
	id, err := segment("episode", episodeID)
	if err != nil {
		return nil, err
	}

	var episode models.Episode
	if err := s.get(ctx, "episodes/"+id, s.marketQuery(), &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// Episodes retrieves up to 50 episodes.
func (s *SpotifyService) Episodes(ctx context.Context, episodeIDs []string) ([]models.Episode, error) {
	ids, err := joinIDs(episodeIDs, 50)
	if err != nil {
		return nil, err
	}

	q := PageOpts{}.query(s.market)
	q["ids"] = ids

	var resp models.Episodes
	if err := s.get(ctx, "episodes", q, &resp); err != nil {
		return nil, err
	}
	return resp.Episodes, nil
}

// SearchTypes lists the values accepted by [SpotifyService.Search].
var SearchTypes = []string{"album", "artist", "playlist", "track", "show", "episode"}

// Search runs a catalog search over the given types and returns one page per type.
func (s *SpotifyService) Search(ctx context.Context, query string, types []string, opts PageOpts) (*models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if len(types) == 0 {
		types = []string{"track"}
	}
	for _, t := range types {
		if !slices.Contains(SearchTypes, t) {
			return nil, fmt.Errorf("%w: search type %q", shared.ErrInvalidArgument, t)
		}
	}

	q := opts.query(s.market)
	q["q"] = query
	q["type"] = strings.Join(types, ",")

	var result models.SearchResult
	if err := s.get(ctx, "search", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Categories retrieves one page of browse categories.
func (s *SpotifyService) Categories(ctx context.Context, opts PageOpts) (*models.Paging[models.Category], error) {
	q := opts.query("")
	if opts.Market != "" {
		delete(q, "market")
		q["country"] = opts.Market
	}

	var resp models.Categories
	if err := s.get(ctx, "browse/categories", q, &resp); err != nil {
		return nil, err
	}
	return &resp.Categories, nil
}

// NewReleases retrieves one page of newly released albums.
func (s *SpotifyService) NewReleases(ctx context.Context, opts PageOpts) (*models.Paging[models.SimplifiedAlbum], error) {
	q := opts.query("")
	if opts.Market != "" {
		delete(q, "market")
		q["country"] = opts.Market
	}

	var resp models.NewReleases
	if err := s.get(ctx, "browse/new-releases", q, &resp); err != nil {
		return nil, err
	}
	return &resp.Albums, nil
}

// FeaturedPlaylists retrieves one page of Spotify's featured playlists and their headline.
func (s *SpotifyService) FeaturedPlaylists(ctx context.Context, opts PageOpts) (*models.FeaturedPlaylists, error) {
	q := opts.query("")
	if opts.Market != "" {
		delete(q, "market")
		q["country"] = opts.Market
	}

	var resp models.FeaturedPlaylists
	if err := s.get(ctx, "browse/featured-playlists", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
