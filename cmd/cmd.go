// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/urfave/cli/v3"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a table"}
}

func deviceFlag() cli.Flag {
	return &cli.StringFlag{Name: "device", Aliases: []string{"d"}, Usage: "Target device ID (defaults to the active device)"}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
		Sources: cli.EnvVars("SPOTX_CONFIG"),
	}
}

func pageFlags(limit int) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of items to return (1-50)", Value: limit},
		&cli.IntFlag{Name: "offset", Usage: "Index of the first item to return"},
	}
}

func idArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id", UsageText: "Spotify ID"}}
}

// setupCommand handles local configuration and database initialization
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file or initialize the request history database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "token", Usage: "Access token to store in the config"},
					&cli.StringFlag{Name: "market", Usage: "Default market (ISO 3166-1 alpha-2)"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config file"},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "rollback", Usage: "Roll back the most recent migration instead"},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// requestCommand handles direct Web API calls
func requestCommand(r *Runner) *cli.Command {
	flags := func(withBody bool) []cli.Flag {
		f := []cli.Flag{
			&cli.StringSliceFlag{Name: "query", Aliases: []string{"q"}, Usage: "Query parameter as key=value (repeatable)"},
			&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print JSON responses"},
		}
		if withBody {
			f = append(f, &cli.StringFlag{Name: "data", Usage: "JSON request body"})
		}
		return f
	}
	args := []cli.Argument{&cli.StringArg{Name: "path", UsageText: "Path relative to the API base, e.g. me/player"}}

	return &cli.Command{
		Name:    "request",
		Aliases: []string{"req"},
		Usage:   "Direct calls to the Web API, prints the raw response body",
		Commands: []*cli.Command{
			{Name: "get", Usage: "Send a GET request", Arguments: args, Flags: flags(false), Action: r.RequestGet},
			{Name: "post", Usage: "Send a POST request", Arguments: args, Flags: flags(true), Action: r.RequestPost},
			{Name: "put", Usage: "Send a PUT request", Arguments: args, Flags: flags(true), Action: r.RequestPut},
			{Name: "delete", Usage: "Send a DELETE request", Arguments: args, Flags: flags(true), Action: r.RequestDelete},
		},
	}
}

func meCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "me",
		Usage:  "Show the current user's profile",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Me,
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Show a catalog track",
		Arguments: idArg(),
		Flags:     []cli.Flag{jsonFlag()},
		Action:    r.Track,
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Show an album and its tracks",
		Arguments: idArg(),
		Flags:     []cli.Flag{jsonFlag()},
		Action:    r.Album,
	}
}

func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "Show an artist",
		Arguments: idArg(),
		Flags: []cli.Flag{
			jsonFlag(),
			&cli.BoolFlag{Name: "top", Usage: "Include the artist's top tracks"},
		},
		Action: r.Artist,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: append([]cli.Flag{
			jsonFlag(),
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Item types to search: album, artist, playlist, track, show, episode",
				Value:   []string{"track"},
			},
		}, pageFlags(10)...),
		Action: r.Search,
	}
}

// playlistCommand handles playlist reads, edits and exports
func playlistCommand(r *Runner) *cli.Command {
	uriArgs := []cli.Argument{
		&cli.StringArg{Name: "id", UsageText: "Playlist ID"},
		&cli.StringArgs{Name: "uris", UsageText: "Track or episode URIs", Min: 1, Max: -1},
	}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a playlist and its first page of items",
				Arguments: idArg(),
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.PlaylistShow,
			},
			{
				Name:      "items",
				Usage:     "List a playlist's items",
				Arguments: idArg(),
				Flags: append([]cli.Flag{
					jsonFlag(),
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Follow every page of items"},
				}, pageFlags(50)...),
				Action: r.PlaylistItems,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist to disk",
				Arguments: idArg(),
				Flags: []cli.Flag{
					exportFormatFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory", Value: "."},
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Follow every page of items"},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:  "list",
				Usage: "List the current user's playlists",
				Flags: append([]cli.Flag{
					jsonFlag(),
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Follow every page"},
				}, pageFlags(50)...),
				Action: r.PlaylistList,
			},
			{
				Name:      "create",
				Usage:     "Create a playlist for the current user",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Usage: "Playlist description"},
					&cli.BoolFlag{Name: "public", Usage: "Make the playlist public"},
					&cli.BoolFlag{Name: "collaborative", Usage: "Make the playlist collaborative"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:      "add",
				Usage:     "Add items to a playlist",
				Arguments: uriArgs,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "position", Usage: "Zero-based insert position (appends when unset)"},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove every occurrence of items from a playlist",
				Arguments: uriArgs,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Usage: "Snapshot ID the removal applies to"},
				},
				Action: r.PlaylistRemove,
			},
		},
	}
}

// playerCommand handles playback control
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Playback control",
		Commands: []*cli.Command{
			{Name: "status", Usage: "Show the current playback state", Flags: []cli.Flag{jsonFlag()}, Action: r.PlayerStatus},
			{Name: "devices", Usage: "List available devices", Flags: []cli.Flag{jsonFlag()}, Action: r.PlayerDevices},
			{
				Name:      "play",
				Usage:     "Start or resume playback",
				Arguments: []cli.Argument{&cli.StringArgs{Name: "uris", UsageText: "Track or episode URIs", Min: 0, Max: -1}},
				Flags: []cli.Flag{
					deviceFlag(),
					&cli.StringFlag{Name: "context", Usage: "Album, artist or playlist URI to play"},
				},
				Action: r.PlayerPlay,
			},
			{Name: "pause", Usage: "Pause playback", Flags: []cli.Flag{deviceFlag()}, Action: r.PlayerPause},
			{Name: "next", Usage: "Skip to the next item", Flags: []cli.Flag{deviceFlag()}, Action: r.PlayerNext},
			{Name: "previous", Aliases: []string{"prev"}, Usage: "Skip to the previous item", Flags: []cli.Flag{deviceFlag()}, Action: r.PlayerPrevious},
			{
				Name:      "volume",
				Usage:     "Set the volume (0-100)",
				Arguments: []cli.Argument{&cli.IntArg{Name: "percent"}},
				Flags:     []cli.Flag{deviceFlag()},
				Action:    r.PlayerVolume,
			},
			{
				Name:      "shuffle",
				Usage:     "Turn shuffle on or off",
				Arguments: []cli.Argument{&cli.StringArg{Name: "state", UsageText: "on|off"}},
				Flags:     []cli.Flag{deviceFlag()},
				Action:    r.PlayerShuffle,
			},
			{
				Name:      "repeat",
				Usage:     "Set the repeat mode",
				Arguments: []cli.Argument{&cli.StringArg{Name: "state", UsageText: "track|context|off"}},
				Flags:     []cli.Flag{deviceFlag()},
				Action:    r.PlayerRepeat,
			},
			{
				Name:      "transfer",
				Usage:     "Move playback to another device",
				Arguments: []cli.Argument{&cli.StringArg{Name: "device", UsageText: "Device ID"}},
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "play", Usage: "Start playing on the new device"}},
				Action:    r.PlayerTransfer,
			},
			{
				Name:      "queue",
				Usage:     "Show the queue, or add a URI to it",
				Arguments: []cli.Argument{&cli.StringArg{Name: "uri"}},
				Flags:     []cli.Flag{jsonFlag(), deviceFlag()},
				Action:    r.PlayerQueue,
			},
			{
				Name:   "recent",
				Usage:  "Show recently played tracks",
				Flags:  []cli.Flag{jsonFlag(), &cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Number of tracks (1-50)", Value: 20}},
				Action: r.PlayerRecent,
			},
		},
	}
}

func exportFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: json, csv, markdown, txt",
		Value:   formatter.Formats[0],
	}
}

// exportCommand handles bulk exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export playlists to disk",
		Commands: []*cli.Command{
			{
				Name:  "bulk",
				Usage: "Export many playlists concurrently and write a manifest",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "id", Usage: "Playlist ID to export (repeatable)"},
					&cli.BoolFlag{Name: "all", Usage: "Export every playlist of the current user"},
					exportFormatFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory (default: spotify_export_{epoch})"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent workers (max 10)", Value: 5},
					&cli.FloatFlag{Name: "rate", Usage: "Playlist fetches per second", Value: 5},
					&cli.BoolFlag{Name: "all-items", Usage: "Follow every page of each playlist's items"},
				},
				Action: r.ExportBulk,
			},
		},
	}
}

// historyCommand handles the local request journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect the local request journal",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent requests",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of entries", Value: 25},
					&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Usage: "Only show this HTTP method"},
					&cli.BoolFlag{Name: "failed", Usage: "Only show failed requests"},
					&cli.DurationFlag{Name: "since", Usage: "Only show requests newer than this, e.g. 1h"},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "prune",
				Usage: "Delete old entries",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "older-than", Usage: "Delete entries older than this", Value: 30 * 24 * time.Hour},
				},
				Action: r.HistoryPrune,
			},
			{
				Name:   "stats",
				Usage:  "Show aggregate counts",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.HistoryStats,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse playlists, play tracks and switch devices interactively",
		Flags: []cli.Flag{
			exportFormatFlag(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Export directory", Value: "."},
			&cli.StringFlag{Name: "log-file", Usage: "Where logs go while the TUI is running", Value: "./tmp/spotx-tui.log"},
		},
		Action: r.TUI,
	}
}
