package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemKind selects the populated variant of an [Item].
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemTrack
	ItemEpisode
)

func (k ItemKind) String() string {
	switch k {
	case ItemTrack:
		return "track"
	case ItemEpisode:
		return "episode"
	default:
		return "none"
	}
}

// Item is the track-or-episode slot of playlist entries, the queue and player state.
//
// Exactly one of Track or Episode is non-nil unless Kind is [ItemNone], which encodes as null.
type Item struct {
	Kind    ItemKind
	Track   *Track
	Episode *Episode
}

// TrackItem wraps t as an [Item].
func TrackItem(t Track) Item {
	return Item{Kind: ItemTrack, Track: &t}
}

// EpisodeItem wraps e as an [Item].
func EpisodeItem(e Episode) Item {
	return Item{Kind: ItemEpisode, Episode: &e}
}

// IsZero reports whether the slot is empty.
func (i Item) IsZero() bool { return i.Kind == ItemNone }

// ID returns the Spotify ID of the populated variant.
func (i Item) ID() string {
	switch i.Kind {
	case ItemTrack:
		return i.Track.ID
	case ItemEpisode:
		return i.Episode.ID
	}
	return ""
}

// Name returns the display name of the populated variant.
func (i Item) Name() string {
	switch i.Kind {
	case ItemTrack:
		return i.Track.Name
	case ItemEpisode:
		return i.Episode.Name
	}
	return ""
}

// URI returns the Spotify URI of the populated variant.
func (i Item) URI() string {
	switch i.Kind {
	case ItemTrack:
		return i.Track.URI
	case ItemEpisode:
		return i.Episode.URI
	}
	return ""
}

// DurationMs returns the duration of the populated variant.
func (i Item) DurationMs() int {
	switch i.Kind {
	case ItemTrack:
		return i.Track.DurationMs
	case ItemEpisode:
		return i.Episode.DurationMs
	}
	return 0
}

// MarshalJSON encodes the populated variant as its own object.
func (i Item) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case ItemTrack:
		if i.Track == nil {
			return nil, fmt.Errorf("item kind %s has no track", i.Kind)
		}
		return json.Marshal(i.Track)
	case ItemEpisode:
		if i.Episode == nil {
			return nil, fmt.Errorf("item kind %s has no episode", i.Kind)
		}
		return json.Marshal(i.Episode)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON picks the variant from the object's "type" field.
//
// A missing type is read as a track, which is how local files and older payloads arrive.
func (i *Item) UnmarshalJSON(data []byte) error {
	*i = Item{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to decode item: %w", err)
	}

	switch probe.Type {
	case "track", "":
		var t Track
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to decode track item: %w", err)
		}
		*i = Item{Kind: ItemTrack, Track: &t}
	case "episode":
		var e Episode
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("failed to decode episode item: %w", err)
		}
		*i = Item{Kind: ItemEpisode, Episode: &e}
	default:
		return fmt.Errorf("unknown item type %q", probe.Type)
	}

	return nil
}
