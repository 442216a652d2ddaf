// Package models defines the Spotify Web API data model and the persisted entities of spotx.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): field-for-field mirrors of Spotify JSON objects
//   - Catalog: [Album], [Artist], [Track], [Show], [Episode] and their Simplified variants
//   - Library and playlists: [Playlist], [PlaylistItem], [SavedTrack], [SavedAlbum], ...
//   - Player: [Device], [CurrentlyPlaying], [CurrentlyPlayingContext], [Queue], [PlayHistory]
//   - Envelopes: [Paging], [CursorPaging], [ErrorResponse], [PlayerErrorResponse]
//
// JSON tags always carry the wire name; the wire key "type" maps to the Type field.
// Documented-nullable values are pointers so that null survives a round trip.
//
// The track-or-episode slot used by playlist entries, the queue and the currently playing
// state is the [Item] tagged union: exactly one of Track or Episode is set, selected by [ItemKind].
//
// 2. Persistent Entities: database-backed models
//   - [RequestLog] : one row per dispatched Web API call
//
// Persistent entities implement the [Model] interface; [Repository] defines standard CRUD operations for database access.
package models
