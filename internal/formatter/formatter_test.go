package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	th "github.com/desertthunder/spotx/internal/testing"
)

func sampleExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		ID:          "test123",
		Name:        "Test Playlist",
		Description: "A test playlist",
		Owner:       "Tester",
		Public:      true,
		Total:       3,
		SnapshotID:  "snap",
		URL:         "https://open.spotify.com/playlist/test123",
		Items: []models.ExportRow{
			{
				Kind:       "track",
				ID:         "track1",
				Title:      "Song One",
				Artist:     "Artist One",
				Album:      "Album One",
				DurationMs: 180000,
				ISRC:       "USRC12345678",
				URI:        "spotify:track:track1",
			},
			{
				Kind:       "track",
				ID:         "track2",
				Title:      "Song Two",
				Artist:     "Artist Two, Guest",
				Album:      "Album Two",
				DurationMs: 240500,
				ISRC:       "USRC87654321",
				URI:        "spotify:track:track2",
			},
			{
				Kind:       "episode",
				ID:         "ep1",
				Title:      "Episode One",
				Artist:     "Some Show",
				DurationMs: 3723000,
				URI:        "spotify:episode:ep1",
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
		}

		if lines[0] != "Kind,ID,Title,Artist,Album,Duration,ISRC,URI" {
			t.Errorf("CSV headers mismatch, got: %s", lines[0])
		}
		if lines[1] != "track,track1,Song One,Artist One,Album One,180,USRC12345678,spotify:track:track1" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if !strings.Contains(lines[2], `"Artist Two, Guest"`) {
			t.Errorf("artist list with comma should be quoted, got: %s", lines[2])
		}
		if !strings.HasPrefix(lines[3], "episode,ep1,Episode One,Some Show,,3723,") {
			t.Errorf("unexpected episode row: %s", lines[3])
		}
	})

	t.Run("ExportToCSV Empty", func(t *testing.T) {
		data, err := ExportToCSV(&models.PlaylistExport{ID: "empty"})
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected only the header row, got: %q", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Test Playlist",
				"**Description**: A test playlist",
				"**Owner**: Tester",
				"**Tracks**: 3",
				"**Visibility**: Public",
				"## Tracks",
				"1. Artist One - Song One (Album One) [3:00]",
				"2. Artist Two, Guest - Song Two (Album Two) [4:00]",
				"3. Some Show - Episode One [1:02:03]",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got:\n%s", want, output)
				}
			}
			if strings.Contains(output, "![Cover]") {
				t.Error("Markdown should not reference a cover image")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), "cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "![Cover](cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"Playlist: Test Playlist",
			"Description: A test playlist",
			"Tracks: 3",
			"1. Artist One - Song One",
			"3. Some Show - Episode One",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Text missing %q", want)
			}
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		export := sampleExport()
		export.Total = 10

		data, err := ToMetadataJSON(export)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("metadata is not valid JSON: %v", err)
		}
		if got["name"] != "Test Playlist" {
			t.Errorf("expected name, got %v", got["name"])
		}
		if _, ok := got["items"]; ok {
			t.Error("metadata should not include items")
		}
		if got["exported"] != float64(3) {
			t.Errorf("expected exported 3, got %v", got["exported"])
		}
		if got["truncated"] != true {
			t.Errorf("expected truncated when total exceeds exported items")
		}
		if len(export.Items) != 3 {
			t.Error("ToMetadataJSON should not modify the export")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var got models.PlaylistExport
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if got.ID != "test123" || got.Name != "Test Playlist" {
			t.Errorf("unexpected metadata: %+v", got)
		}
		if len(got.Items) != 3 || got.Items[0].ISRC != "USRC12345678" {
			t.Errorf("unexpected items: %+v", got.Items)
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpegdata"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL + "/cover.jpg")
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "jpegdata" {
			t.Errorf("expected image bytes, got %q", data)
		}
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("expected status error, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "test123_tracks.csv" {
				t.Errorf("Expected 'test123_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "test123_metadata.json" {
				t.Errorf("Expected 'test123_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)

			csvContent := th.MustReadFile(t, result.TracksFile)
			if !strings.Contains(csvContent, "Song One") {
				t.Errorf("CSV file missing track data")
			}

			metadataContent := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(metadataContent, `"Test Playlist"`) {
				t.Errorf("metadata file missing playlist name")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()

			result, err := WriteCSVExport(sampleExport(), filepath.Join(tempDir, "my_export"))
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})

		t.Run("MissingDirectory", func(t *testing.T) {
			_, err := WriteCSVExport(sampleExport(), filepath.Join(t.TempDir(), "nope", "base"))
			if err == nil {
				t.Error("expected error writing into a missing directory")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(sampleExport(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "test123" {
				t.Errorf("Expected directory 'test123', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)

			readmePath := filepath.Join(result.Directory, "README.md")
			th.AssertFileExists(t, readmePath)

			content := th.MustReadFile(t, readmePath)
			if !strings.Contains(content, "# Test Playlist") {
				t.Errorf("README missing title")
			}
			if result.CoverImage != "" {
				t.Errorf("expected no cover image, got %s", result.CoverImage)
			}
		})

		t.Run("WithCoverImage", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("jpegdata"))
			}))
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "md")
			result, err := WriteMarkdownExport(sampleExport(), dir, server.URL)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertFileExists(t, result.CoverImage)
			if len(result.Files) != 2 {
				t.Errorf("expected cover and README, got %v", result.Files)
			}
			if !strings.Contains(th.MustReadFile(t, filepath.Join(dir, "README.md")), "![Cover](cover.jpg)") {
				t.Error("README should reference the downloaded cover")
			}
		})

		t.Run("CoverImageFailure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			result, err := WriteMarkdownExport(sampleExport(), filepath.Join(t.TempDir(), "md"), server.URL)
			if err != nil {
				t.Fatalf("cover failures should not fail the export: %v", err)
			}
			if len(result.Warnings) != 1 {
				t.Errorf("expected one warning, got %v", result.Warnings)
			}
			if len(result.Files) != 1 {
				t.Errorf("expected only README, got %v", result.Files)
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			path, err := WriteTextExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if path != "test123_tracks.txt" {
				t.Errorf("Expected 'test123_tracks.txt', got '%s'", path)
			}

			th.AssertFileExists(t, path)
			if !strings.Contains(th.MustReadFile(t, path), "Playlist: Test Playlist") {
				t.Errorf("Text file missing playlist name")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.txt")

			got, err := WriteTextExport(sampleExport(), path)
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}
			if got != path {
				t.Errorf("Expected '%s', got '%s'", path, got)
			}
			th.AssertFileExists(t, path)
		})
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			path, err := WriteJSONExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteJSONExport failed: %v", err)
			}

			if path != "test123.json" {
				t.Errorf("Expected 'test123.json', got '%s'", path)
			}

			content := th.MustReadFile(t, path)
			if !strings.Contains(content, `"track1"`) {
				t.Errorf("JSON missing track data")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "my_export.json")

			got, err := WriteJSONExport(sampleExport(), path)
			if err != nil {
				t.Fatalf("WriteJSONExport failed: %v", err)
			}
			if got != path {
				t.Errorf("Expected '%s', got '%s'", path, got)
			}
			th.AssertFileExists(t, path)
		})
	})

	t.Run("WriteExport", func(t *testing.T) {
		tests := []struct {
			format   string
			expected []string
		}{
			{format: "json", expected: []string{"test123.json"}},
			{format: "csv", expected: []string{"test123_tracks.csv", "test123_metadata.json"}},
			{format: "txt", expected: []string{"test123_tracks.txt"}},
			{format: "markdown", expected: []string{filepath.Join("test123", "README.md")}},
		}

		for _, tt := range tests {
			t.Run(tt.format, func(t *testing.T) {
				dir := t.TempDir()

				files, err := WriteExport(sampleExport(), tt.format, dir)
				if err != nil {
					t.Fatalf("WriteExport failed: %v", err)
				}
				if len(files) != len(tt.expected) {
					t.Fatalf("expected %v, got %v", tt.expected, files)
				}
				for i, want := range tt.expected {
					if files[i] != filepath.Join(dir, want) {
						t.Errorf("expected %s, got %s", filepath.Join(dir, want), files[i])
					}
					th.AssertFileExists(t, files[i])
				}
			})
		}

		t.Run("UnknownFormat", func(t *testing.T) {
			_, err := WriteExport(sampleExport(), "xml", t.TempDir())
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("WriteBulkExportManifest", func(t *testing.T) {
		t.Run("SuccessfulExport", func(t *testing.T) {
			dir := t.TempDir()

			bulkResult := &BulkExportResult{
				TotalPlaylists:    2,
				SuccessfulExports: 2,
				Results: []PlaylistExportResult{
					{
						PlaylistID:   "playlist1",
						PlaylistName: "My Playlist 1",
						Success:      true,
						Files:        []string{filepath.Join(dir, "playlist1_tracks.csv"), filepath.Join(dir, "playlist1_metadata.json")},
					},
					{
						PlaylistID:   "playlist2",
						PlaylistName: "My Playlist 2",
						Success:      true,
						Files:        []string{filepath.Join(dir, "playlist2_tracks.csv")},
					},
				},
				OutputDirectory: dir,
			}

			manifestPath := filepath.Join(dir, "manifest.json")
			if err := WriteBulkExportManifest(bulkResult, "csv", manifestPath); err != nil {
				t.Fatalf("WriteBulkExportManifest failed: %v", err)
			}

			th.AssertFileExists(t, manifestPath)

			var got manifest
			if err := json.Unmarshal([]byte(th.MustReadFile(t, manifestPath)), &got); err != nil {
				t.Fatalf("manifest is not valid JSON: %v", err)
			}
			if got.Format != "csv" {
				t.Errorf("expected format csv, got %s", got.Format)
			}
			if got.TotalPlaylists != 2 || got.SuccessfulExports != 2 || got.FailedExports != 0 {
				t.Errorf("unexpected counts: %+v", got)
			}
			if got.Playlists[0].Status != "success" {
				t.Errorf("expected success status, got %s", got.Playlists[0].Status)
			}
			if got.Playlists[0].Files[0] != "playlist1_tracks.csv" {
				t.Errorf("expected files relative to the output directory, got %s", got.Playlists[0].Files[0])
			}
			if time.Since(got.ExportedAt) > time.Minute {
				t.Errorf("unexpected exported_at %v", got.ExportedAt)
			}
		})

		t.Run("WithFailedExports", func(t *testing.T) {
			dir := t.TempDir()

			bulkResult := &BulkExportResult{
				TotalPlaylists:    3,
				SuccessfulExports: 1,
				FailedExports:     2,
				Results: []PlaylistExportResult{
					{PlaylistID: "playlist1", PlaylistName: "Success Playlist", Success: true, Files: []string{"playlist1.json"}},
					{PlaylistID: "playlist2", PlaylistName: "Failed Playlist", Error: errors.New("authentication failed")},
					{PlaylistID: "playlist3", PlaylistName: "Another Failed", Error: errors.New("network timeout")},
				},
			}

			manifestPath := filepath.Join(dir, "manifest_with_failures.json")
			if err := WriteBulkExportManifest(bulkResult, "markdown", manifestPath); err != nil {
				t.Fatalf("WriteBulkExportManifest failed: %v", err)
			}

			content := th.MustReadFile(t, manifestPath)
			for _, want := range []string{
				`"format": "markdown"`,
				`"failed_exports": 2`,
				`"status": "failed"`,
				`"authentication failed"`,
				`"network timeout"`,
			} {
				if !strings.Contains(content, want) {
					t.Errorf("manifest missing %s", want)
				}
			}
		})

		t.Run("UnwritablePath", func(t *testing.T) {
			err := WriteBulkExportManifest(&BulkExportResult{}, "json", filepath.Join(t.TempDir(), "missing", "manifest.json"))
			if err == nil {
				t.Error("expected error writing manifest into a missing directory")
			}
		})
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{in: "", expected: "json"},
		{in: "JSON", expected: "json"},
		{in: " csv ", expected: "csv"},
		{in: "md", expected: "markdown"},
		{in: "text", expected: "txt"},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTables(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("Devices", func(t *testing.T) {
		var buf bytes.Buffer
		DevicesTable(&buf, []models.Device{
			{ID: strPtr("dev1"), Name: "Kitchen", Type: "Speaker", IsActive: true, VolumePercent: intPtr(40)},
			{ID: nil, Name: "Car", Type: "Automobile", IsRestricted: true},
		})

		output := buf.String()
		for _, want := range []string{"Kitchen", "● Active", "40%", "dev1", "Car", "Restricted"} {
			if !strings.Contains(output, want) {
				t.Errorf("devices table missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Tracks", func(t *testing.T) {
		var buf bytes.Buffer
		TracksTable(&buf, sampleExport().Items)

		output := buf.String()
		for _, want := range []string{"Song One", "Artist Two, Guest", "1:02:03"} {
			if !strings.Contains(output, want) {
				t.Errorf("tracks table missing %q", want)
			}
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		var buf bytes.Buffer
		PlaylistsTable(&buf, []models.SimplifiedPlaylist{
			{ID: "pl1", Name: "Road Trip", Owner: models.PublicUser{ID: "u1", DisplayName: strPtr("Dana")}, Public: boolPtr(false), Tracks: models.PlaylistTracksRef{Total: 12}},
		})

		output := buf.String()
		for _, want := range []string{"Road Trip", "Dana", "12", "Private", "pl1"} {
			if !strings.Contains(output, want) {
				t.Errorf("playlists table missing %q", want)
			}
		}
	})

	t.Run("RequestLogs", func(t *testing.T) {
		var buf bytes.Buffer
		RequestLogTable(&buf, []*models.RequestLog{
			models.NewRequestLog(http.MethodGet, "https://api.spotify.com/v1/me", 200, 150*time.Millisecond, 42, nil),
			models.NewRequestLog(http.MethodPut, "https://api.spotify.com/v1/me/player/play", 0, 0, 0, os.ErrDeadlineExceeded),
		})

		output := buf.String()
		for _, want := range []string{"GET", "200", "150ms", "/v1/me", "PUT", "error"} {
			if !strings.Contains(output, want) {
				t.Errorf("request log table missing %q", want)
			}
		}
	})
}
