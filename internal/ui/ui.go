package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
	ConfirmView
	ExportView
	ResultView
	DevicesView
)

// Player is the playback surface the TUI drives. [services.SpotifyService] implements it.
type Player interface {
	Devices(ctx context.Context) ([]models.Device, error)
	TransferPlayback(ctx context.Context, deviceID string, play bool) error
	Play(ctx context.Context, deviceID string, req *models.PlayRequest) error
}

// Options configures where the export view writes files.
type Options struct {
	ExportDir    string
	ExportFormat string
}

// Model represents the TUI application state.
type Model struct {
	ctx              context.Context
	view             ViewState
	returnTo         ViewState
	player           Player
	engine           *tasks.PlaylistEngine
	opts             Options
	width            int
	height           int
	playlistList     list.Model
	trackList        list.Model
	deviceList       list.Model
	selectedPlaylist *models.PlaylistExport
	progressChan     chan tasks.ProgressUpdate
	done             chan exportCompleteMsg
	progress         tasks.ProgressUpdate
	files            []string
	status           string
	err              error
	help             help.Model
	keys             keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, player Player, engine *tasks.PlaylistEngine, opts Options) *Model {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = formatter.Formats[0]
	}
	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		player:       player,
		engine:       engine,
		opts:         opts,
		playlistList: newList(nil, "Spotify Playlists"),
		trackList:    newList(nil, "Tracks"),
		deviceList:   newList(nil, "Devices"),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// Init initializes the TUI by fetching playlists from Spotify.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case DevicesView:
			return m.handleDeviceKeys(msg)
		case ExportView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList.SetItems(items)
		m.playlistList.Title = fmt.Sprintf("Spotify Playlists (%d)", len(items))
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.status, m.err = "", msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.err = nil
		m.selectedPlaylist = msg.playlist
		items := make([]list.Item, len(msg.playlist.Items))
		for i, row := range msg.playlist.Items {
			items[i] = trackItem{row: row}
		}
		m.trackList.SetItems(items)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.playlist.Name)
		m.view = TrackListView
		return m, nil

	case devicesFetchedMsg:
		if msg.err != nil {
			m.status, m.err = "", msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.devices))
		for i, d := range msg.devices {
			items[i] = deviceItem{device: d}
		}
		m.deviceList.SetItems(items)
		m.deviceList.Title = fmt.Sprintf("Devices (%d)", len(items))
		return m, nil

	case playbackMsg:
		m.status, m.err = msg.status, msg.err
		if msg.err == nil && m.view == DevicesView {
			return m, m.fetchDevices()
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case exportCompleteMsg:
		m.files = msg.files
		m.err = msg.err
		m.view = ResultView
		m.progressChan, m.done = nil, nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == PlaylistListView && len(m.playlistList.Items()) == 0 {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case ExportView:
		return m.renderExport()
	case ResultView:
		return m.renderResult()
	case DevicesView:
		return m.renderDevices()
	default:
		return ""
	}
}

func (m *Model) resize() {
	w, h := max(m.width-4, 0), max(m.height-8, 0)
	m.playlistList.SetSize(w, h)
	m.trackList.SetSize(w, h)
	m.deviceList.SetSize(w, h)
}

func (m *Model) openDevices() tea.Cmd {
	m.returnTo = m.view
	m.view = DevicesView
	m.status, m.err = "", nil
	return m.fetchDevices()
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			m.err = nil
			return m, m.fetchPlaylists()
		case key.Matches(msg, m.keys.devices):
			return m, m.openDevices()
		case key.Matches(msg, m.keys.enter):
			if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				m.status = fmt.Sprintf("Loading %s...", pl.playlist.Name)
				return m, m.fetchTracks(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			m.view = PlaylistListView
			m.status, m.err = "", nil
			return m, nil
		case key.Matches(msg, m.keys.export):
			m.view = ConfirmView
			return m, nil
		case key.Matches(msg, m.keys.devices):
			return m, m.openDevices()
		case key.Matches(msg, m.keys.enter):
			if tr, ok := m.trackList.SelectedItem().(trackItem); ok {
				return m, m.playItem(tr.row)
			}
		}
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = TrackListView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		m.view = ExportView
		return m, m.startExport()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = TrackListView
		m.files = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDeviceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = m.returnTo
		m.status, m.err = "", nil
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchDevices()
	case key.Matches(msg, m.keys.enter):
		if d, ok := m.deviceList.SelectedItem().(deviceItem); ok {
			return m, m.transferTo(d.device)
		}
	}

	var cmd tea.Cmd
	m.deviceList, cmd = m.deviceList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	case DevicesView:
		m.deviceList, cmd = m.deviceList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.engine.ListPlaylists(m.ctx, nil)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchTracks(playlistID string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.engine.FetchPlaylist(m.ctx, playlistID, false, nil)
		return tracksFetchedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) fetchDevices() tea.Cmd {
	return func() tea.Msg {
		devices, err := m.player.Devices(m.ctx)
		return devicesFetchedMsg{devices: devices, err: err}
	}
}

func (m *Model) playItem(row models.ExportRow) tea.Cmd {
	req := &models.PlayRequest{Offset: &models.Offset{URI: row.URI}}
	if m.selectedPlaylist != nil {
		req.ContextURI = "spotify:playlist:" + m.selectedPlaylist.ID
	}
	return func() tea.Msg {
		if err := m.player.Play(m.ctx, "", req); err != nil {
			return playbackMsg{err: err}
		}
		return playbackMsg{status: fmt.Sprintf("▶ %s - %s", row.Artist, row.Title)}
	}
}

func (m *Model) transferTo(d models.Device) tea.Cmd {
	return func() tea.Msg {
		if d.ID == nil {
			return playbackMsg{err: fmt.Errorf("device %s has no ID", d.Name)}
		}
		if err := m.player.TransferPlayback(m.ctx, *d.ID, true); err != nil {
			return playbackMsg{err: err}
		}
		return playbackMsg{status: fmt.Sprintf("Playback transferred to %s", d.Name)}
	}
}

func (m *Model) startExport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.done = make(chan exportCompleteMsg, 1)

	id := m.selectedPlaylist.ID
	progress, done := m.progressChan, m.done
	go func() {
		defer close(progress)

		export, err := m.engine.FetchPlaylist(m.ctx, id, true, progress)
		if err != nil {
			done <- exportCompleteMsg{err: err}
			return
		}
		files, err := formatter.WriteExport(export, m.opts.ExportFormat, m.opts.ExportDir)
		done <- exportCompleteMsg{files: files, err: err}
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return exportCompleteMsg{}
		}

		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.status != "" {
		return styles.ok.Render(m.status)
	}
	return ""
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.devices, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.playlistList.View(), m.statusLine(), helpView)
}

func (m *Model) renderTrackList() string {
	playKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play"))
	helpKeys := []key.Binding{playKey, m.keys.export, m.keys.devices, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.trackList.View(), m.statusLine(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Export '%s'?", m.selectedPlaylist.Name))
	info := fmt.Sprintf(
		"\nPlaylist: %s\nItems: %d\nFormat: %s\nDirectory: %s\n",
		m.selectedPlaylist.Name,
		m.selectedPlaylist.Total,
		m.opts.ExportFormat,
		m.opts.ExportDir,
	)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchPlaylist:
		phase = "Fetching playlist..."
	case tasks.FetchItems:
		phase = fmt.Sprintf("Fetching items (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Export failed: %v", m.err)), helpView)
	}

	title := styles.ok.Render("✓ Export Complete!")
	var b strings.Builder
	for _, f := range m.files {
		fmt.Fprintf(&b, "\n  • %s", f)
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, b.String(), helpView)
}

func (m *Model) renderDevices() string {
	transferKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "transfer"))
	helpKeys := []key.Binding{transferKey, m.keys.refresh, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if len(m.deviceList.Items()) == 0 && m.err == nil {
		return fmt.Sprintf("%s\n\n%s\n\n%s", styles.title.Render("Devices"), styles.warn.Render("No devices found. Open Spotify on a device and press r."), helpView)
	}
	return fmt.Sprintf("%s\n%s\n%s", m.deviceList.View(), m.statusLine(), helpView)
}
