// Package tasks runs playlist operations that span several Web API requests, with real-time progress reporting.
//
// # Core Operations
//
// [PlaylistEngine] builds on the one-page-per-call Spotify client:
//
//  1. [PlaylistEngine.FetchPlaylist] : Export one playlist
//     - Fetches the playlist and its first page of items
//     - Optionally follows the remaining item pages by offset
//
//  2. [PlaylistEngine.ListPlaylists] : Page through the current user's playlists
//
//  3. [PlaylistEngine.BulkExport] : Export many playlists to disk
//     - Worker pool capped at 10 goroutines
//     - Fetches throttled with a token bucket limiter
//     - Per-playlist failures are recorded, never fatal
//     - Writes export_manifest.json summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
