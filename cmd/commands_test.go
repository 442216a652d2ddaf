package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/repositories"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	tu "github.com/desertthunder/spotx/internal/testing"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

type testEnv struct {
	runner *Runner
	output *bytes.Buffer
	server *tu.APIServer
}

func newTestEnv(t *testing.T, routes map[string]tu.Route, history *repositories.RequestLogRepository) *testEnv {
	t.Helper()

	server := tu.NewAPIServer(t, routes)
	logger := log.New(io.Discard)
	opts := services.APIServiceOpts{BaseURL: server.URL + "/v1", Token: "test-token", Logger: logger}
	if history != nil {
		opts.Recorder = history
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		API:     services.NewAPIService(opts),
		History: history,
		Logger:  logger,
		Output:  output,
	})
	return &testEnv{runner: runner, output: output, server: server}
}

func (e *testEnv) run(args ...string) error {
	app := &cli.Command{
		Name:      "spotx",
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Commands:  e.runner.register(),
	}
	return app.Run(context.Background(), append([]string{"spotx"}, args...))
}

func newTestHistory(t *testing.T) *repositories.RequestLogRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return repositories.NewRequestLogRepository(db)
}

func trackBody(id, name string) map[string]any {
	return map[string]any{
		"type":        "track",
		"id":          id,
		"name":        name,
		"uri":         "spotify:track:" + id,
		"duration_ms": 185000,
		"artists":     []any{map[string]any{"id": "a1", "name": "Band", "type": "artist"}},
		"album":       map[string]any{"id": "al1", "name": "Record", "type": "album"},
	}
}

func playlistBody(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"name":        "Road Trip",
		"description": "for the road",
		"owner":       map[string]any{"id": "owner", "display_name": "Owner"},
		"public":      true,
		"snapshot_id": "snap-1",
		"tracks": map[string]any{
			"items":  []any{map[string]any{"added_at": "2024-01-01T00:00:00Z", "track": trackBody("t1", "Drive")}},
			"offset": 0,
			"limit":  100,
			"total":  1,
			"next":   nil,
		},
	}
}

func TestRequestCommand(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/me":                  {Body: map[string]any{"id": "user1", "type": "user"}},
		"PUT /v1/me/player/pause":     {Status: http.StatusNoContent},
		"POST /v1/users/u1/playlists": {Status: http.StatusCreated, Body: map[string]any{"id": "new"}},
	}

	t.Run("Get Prints Body", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("request", "get", "me"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(env.output.String()) != `{"id":"user1","type":"user"}` {
			t.Errorf("unexpected output %q", env.output.String())
		}

		req := env.server.Last(t)
		if req.Method != http.MethodGet || req.Path != "/v1/me" {
			t.Errorf("unexpected request %s %s", req.Method, req.Path)
		}
		if req.Authorization != "Bearer test-token" {
			t.Errorf("unexpected authorization %q", req.Authorization)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("request", "get", "--pretty", "me"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), `  "id": "user1"`) {
			t.Errorf("expected indented JSON, got %q", env.output.String())
		}
	})

	t.Run("Query Flags", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		env.run("request", "get", "--query", "q=hello world", "--query", "type=track", "search")

		if got := env.server.Last(t).Query; got != "q=hello+world&type=track" {
			t.Errorf("unexpected query %q", got)
		}
	})

	t.Run("Post With Data", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("request", "post", "--data", `{"name":"Mix"}`, "users/u1/playlists"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := env.server.Last(t)
		if string(req.Body) != `{"name":"Mix"}` {
			t.Errorf("unexpected body %q", req.Body)
		}
		if req.ContentType != "application/json" {
			t.Errorf("unexpected content type %q", req.ContentType)
		}
	})

	t.Run("Empty Response", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("request", "put", "me/player/pause"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.output.Len() != 0 {
			t.Errorf("expected no output, got %q", env.output.String())
		}
	})

	t.Run("Non Success Status", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		err := env.run("request", "get", "albums/missing")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected not found error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "Service not found") {
			t.Errorf("expected error body to be printed, got %q", env.output.String())
		}
	})

	t.Run("Invalid Data", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		err := env.run("request", "post", "--data", "{oops", "users/u1/playlists")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected invalid input error, got %v", err)
		}
		if len(env.server.Requests()) != 0 {
			t.Error("no request should be sent")
		}
	})

	t.Run("Missing Path", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("request", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected missing argument error, got %v", err)
		}
	})
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{name: "Empty", pairs: nil, want: nil},
		{name: "Single", pairs: []string{"limit=5"}, want: map[string]string{"limit": "5"}},
		{name: "Value With Equals", pairs: []string{"q=a=b"}, want: map[string]string{"q": "a=b"}},
		{name: "Empty Value", pairs: []string{"market="}, want: map[string]string{"market": ""}},
		{name: "Later Wins", pairs: []string{"limit=5", "limit=10"}, want: map[string]string{"limit": "10"}},
		{name: "Missing Separator", pairs: []string{"limit"}, wantErr: true},
		{name: "Missing Key", pairs: []string{"=5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuery(tt.pairs)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Fatalf("expected invalid argument error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestCatalogCommands(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/me": {Body: map[string]any{
			"id": "user1", "display_name": "Listener", "email": "l@example.com", "product": "premium",
			"followers": map[string]any{"total": 7},
		}},
		"GET /v1/tracks/t1": {Body: trackBody("t1", "Drive")},
		"GET /v1/search": {Body: map[string]any{
			"tracks": map[string]any{"items": []any{trackBody("t1", "Drive")}, "total": 1, "limit": 10, "offset": 0},
		}},
	}

	t.Run("Me", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("me"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := env.output.String()
		for _, want := range []string{"Listener", "ID: user1", "Email: l@example.com", "Product: premium", "Followers: 7"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("Track JSON", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("track", "--json", "t1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(env.output.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if got["name"] != "Drive" {
			t.Errorf("unexpected track %v", got["name"])
		}
	})

	t.Run("Search", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("search", "--type", "track", "drive"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Drive") {
			t.Errorf("expected track in output:\n%s", env.output.String())
		}

		query := env.server.Last(t).Query
		if !strings.Contains(query, "q=drive") || !strings.Contains(query, "type=track") || !strings.Contains(query, "limit=10") {
			t.Errorf("unexpected query %q", query)
		}
	})

	t.Run("Search Invalid Type", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("search", "--type", "podcast", "drive"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument error, got %v", err)
		}
	})

	t.Run("Without Service", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard), Output: io.Discard})
		app := &cli.Command{Name: "spotx", Writer: io.Discard, ErrWriter: io.Discard, Commands: runner.register()}

		err := app.Run(context.Background(), []string{"spotx", "me"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected service unavailable error, got %v", err)
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/playlists/pl1":          {Body: playlistBody("pl1")},
		"GET /v1/me":                     {Body: map[string]any{"id": "user1"}},
		"POST /v1/users/user1/playlists": {Status: http.StatusCreated, Body: map[string]any{"id": "new1", "name": "Mix"}},
		"POST /v1/playlists/pl1/tracks":  {Status: http.StatusCreated, Body: map[string]any{"snapshot_id": "snap-2"}},
		"GET /v1/me/playlists": {Body: map[string]any{
			"items": []any{map[string]any{"id": "pl1", "name": "Road Trip", "owner": map[string]any{"id": "owner"}, "tracks": map[string]any{"total": 1}}},
			"total": 1, "limit": 50, "offset": 0,
		}},
	}

	t.Run("Show", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("playlist", "show", "pl1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := env.output.String()
		for _, want := range []string{"Road Trip", "Owner: Owner", "Visibility: Public", "Drive"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("Export", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)
		dir := t.TempDir()

		if err := env.run("playlist", "export", "--format", "json", "--output", dir, "pl1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(dir, "pl1.json")
		tu.AssertFileExists(t, path)
		if !strings.Contains(tu.MustReadFile(t, path), `"Drive"`) {
			t.Error("export should contain the track title")
		}
		if !strings.Contains(env.output.String(), "Exported Road Trip") {
			t.Errorf("unexpected output:\n%s", env.output.String())
		}
	})

	t.Run("Export Unknown Format", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("playlist", "export", "--format", "xml", "pl1"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument error, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("playlist", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Road Trip") {
			t.Errorf("expected playlist in output:\n%s", env.output.String())
		}
	})

	t.Run("Create", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("playlist", "create", "--description", "mixed", "Mix"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var body map[string]any
		if err := json.Unmarshal(env.server.Last(t).Body, &body); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if body["name"] != "Mix" || body["description"] != "mixed" || body["public"] != false {
			t.Errorf("unexpected body %v", body)
		}
		if !strings.Contains(env.output.String(), "new1") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("Add", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("playlist", "add", "pl1", "spotify:track:t1", "spotify:track:t2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var body map[string]any
		json.Unmarshal(env.server.Last(t).Body, &body)
		if uris, _ := body["uris"].([]any); len(uris) != 2 {
			t.Errorf("expected 2 uris, got %v", body["uris"])
		}
		if !strings.Contains(env.output.String(), "snap-2") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})
}

func TestPlayerCommands(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/me/player": {Status: http.StatusNoContent},
		"GET /v1/me/player/devices": {Body: map[string]any{"devices": []any{
			map[string]any{"id": "dev1", "name": "Kitchen", "type": "Speaker", "is_active": true, "volume_percent": 40},
		}}},
		"PUT /v1/me/player/volume":  {Status: http.StatusNoContent},
		"PUT /v1/me/player/shuffle": {Status: http.StatusNoContent},
		"PUT /v1/me/player":         {Status: http.StatusNoContent},
		"PUT /v1/me/player/play":    {Status: http.StatusNoContent},
	}

	t.Run("Status Nothing Playing", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "status"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Nothing is playing") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("Devices", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "devices"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Kitchen") {
			t.Errorf("expected device in output:\n%s", env.output.String())
		}
	})

	t.Run("Volume", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "volume", "--device", "dev1", "55"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		query := env.server.Last(t).Query
		if !strings.Contains(query, "volume_percent=55") || !strings.Contains(query, "device_id=dev1") {
			t.Errorf("unexpected query %q", query)
		}
	})

	t.Run("Shuffle", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "shuffle", "on"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := env.server.Last(t).Query; got != "state=true" {
			t.Errorf("unexpected query %q", got)
		}
	})

	t.Run("Shuffle Invalid State", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "shuffle", "sometimes"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument error, got %v", err)
		}
	})

	t.Run("Transfer", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "transfer", "--play", "dev1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := string(env.server.Last(t).Body); got != `{"device_ids":["dev1"],"play":true}` {
			t.Errorf("unexpected body %s", got)
		}
	})

	t.Run("Play Context", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("player", "play", "--context", "spotify:playlist:pl1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := string(env.server.Last(t).Body); got != `{"context_uri":"spotify:playlist:pl1"}` {
			t.Errorf("unexpected body %s", got)
		}
	})

	t.Run("Play Context And URIs", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		err := env.run("player", "play", "--context", "spotify:playlist:pl1", "spotify:track:t1")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument error, got %v", err)
		}
	})
}

func TestExportBulkCommand(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/playlists/pl1": {Body: playlistBody("pl1")},
	}

	t.Run("Writes Files And Manifest", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)
		dir := t.TempDir()

		err := env.run("export", "bulk", "--id", "pl1", "--id", "missing", "--format", "json", "--output", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "pl1.json"))
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))

		out := env.output.String()
		if !strings.Contains(out, "1 succeeded") || !strings.Contains(out, "1 failed") {
			t.Errorf("unexpected summary:\n%s", out)
		}
	})

	t.Run("All Fail", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("export", "bulk", "--id", "missing", "--output", t.TempDir()); err == nil {
			t.Fatal("expected an error when every export fails")
		}
	})

	t.Run("No IDs", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("export", "bulk"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected missing argument error, got %v", err)
		}
	})
}

func TestHistoryCommands(t *testing.T) {
	routes := map[string]tu.Route{
		"GET /v1/me": {Body: map[string]any{"id": "user1"}},
	}

	t.Run("Records And Lists", func(t *testing.T) {
		env := newTestEnv(t, routes, newTestHistory(t))

		env.run("request", "get", "me")
		env.run("request", "get", "albums/missing")
		env.output.Reset()

		if err := env.run("history", "list", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var entries []map[string]any
		if err := json.Unmarshal(env.output.Bytes(), &entries); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, env.output.String())
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("Failed Filter", func(t *testing.T) {
		env := newTestEnv(t, routes, newTestHistory(t))

		env.run("request", "get", "me")
		env.run("request", "get", "albums/missing")
		env.output.Reset()

		if err := env.run("history", "list", "--failed"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := env.output.String()
		if !strings.Contains(out, "albums/missing") || strings.Contains(out, "/v1/me") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		env := newTestEnv(t, routes, newTestHistory(t))

		env.run("request", "get", "me")
		env.run("request", "get", "albums/missing")
		env.output.Reset()

		if err := env.run("history", "stats"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := env.output.String()
		if !strings.Contains(out, "Total: 2") || !strings.Contains(out, "Failed: 1") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("Prune", func(t *testing.T) {
		env := newTestEnv(t, routes, newTestHistory(t))

		env.run("request", "get", "me")
		env.output.Reset()

		if err := env.run("history", "prune", "--older-than", "1h"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Removed 0 entries") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		env := newTestEnv(t, routes, nil)

		if err := env.run("history", "list"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected service unavailable error, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("Config", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := env.run("setup", "config", "--config", path, "--token", "abc", "--market", "SE"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load written config: %v", err)
		}
		if config.Spotify.AccessToken != "abc" || config.Spotify.Market != "SE" {
			t.Errorf("unexpected config %+v", config.Spotify)
		}

		if err := env.run("setup", "config", "--config", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected existing config to be refused, got %v", err)
		}
		if err := env.run("setup", "config", "--config", path, "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}
	})

	t.Run("Database", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(dir, "spotx.db")
		if err := shared.SaveConfig(path, config); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := env.run("setup", "database", "--config", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)
		if !strings.Contains(env.output.String(), "Database ready") {
			t.Errorf("unexpected output %q", env.output.String())
		}

		if err := env.run("setup", "database", "--config", path, "--rollback"); err != nil {
			t.Fatalf("unexpected rollback error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Rolled back to schema version") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}
