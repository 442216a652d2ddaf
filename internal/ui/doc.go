// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and playback:
//  1. [PlaylistListView] : Browse the current user's playlists
//  2. [TrackListView] : Preview a playlist's items, start playback at the selected item
//  3. [ConfirmView] : Confirm exporting the playlist to disk
//  4. [ExportView] : Monitor progress while the playlist is fetched and written
//  5. [ResultView] : Display the files written or the error that stopped the export
//  6. [DevicesView] : Pick a Spotify Connect device to transfer playback to
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during exports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
