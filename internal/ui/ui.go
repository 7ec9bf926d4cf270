package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/source"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultListView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	src        source.Plugin
	query      string
	searchType models.SearchType
	limit      int
	width      int
	height     int
	resultList list.Model
	selected   *models.Song
	streamURL  string
	streamErr  error
	resolving  bool
	err        error
	help       help.Model
	keys       keyMap
}

type songsFetchedMsg struct {
	songs []models.Song
}

type streamResolvedMsg struct {
	url string
	err error
}

// NewModel creates a new TUI model that searches via the provided source.
func NewModel(ctx context.Context, src source.Plugin, query string, searchType models.SearchType, limit int) *Model {
	return &Model{
		ctx:        ctx,
		view:       ResultListView,
		src:        src,
		query:      query,
		searchType: searchType,
		limit:      limit,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by running the search.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResultListView:
			return m.handleResultListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case songsFetchedMsg:
		if len(msg.songs) == 0 {
			m.err = fmt.Errorf("no results for %q", m.query)
			return m, nil
		}
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for '%s'", m.query)
		m.resultList.SetSize(m.width-4, m.height-8)
		return m, nil

	case streamResolvedMsg:
		m.resolving = false
		m.streamURL = msg.url
		m.streamErr = msg.err
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ResultListView:
		return m.renderResultList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

// Selected returns the song the user picked, or nil when the TUI exited
// without a selection.
func (m *Model) Selected() *models.Song { return m.selected }

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(songItem); ok {
				song := item.song
				m.selected = &song
				m.view = DetailView
				m.streamURL = ""
				m.streamErr = nil
				m.resolving = true
				return m, m.resolveStream(&song)
			}
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResultListView
		return m, nil
	case "o":
		if m.selected != nil && m.selected.URL != "" {
			_ = shared.OpenBrowser(m.selected.URL)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ResultListView {
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		songs := m.src.Search(m.ctx, m.query, source.SearchOptions{Type: m.searchType, Limit: m.limit})
		return songsFetchedMsg{songs: songs}
	}
}

func (m *Model) resolveStream(song *models.Song) tea.Cmd {
	return func() tea.Msg {
		url, err := m.src.StreamURL(m.ctx, song)
		return streamResolvedMsg{url: url, err: err}
	}
}

func (m *Model) renderResultList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.resultList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("Nothing selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.Title)
	info := fmt.Sprintf("Artist: %s\n", m.selected.Artist)
	if m.selected.Album != "" {
		info += fmt.Sprintf("Album: %s\n", m.selected.Album)
	}
	if m.selected.Duration > 0 {
		info += fmt.Sprintf("Duration: %s\n", shared.FormatDuration(m.selected.Duration))
	}
	info += fmt.Sprintf("Link: %s\n", m.selected.URL)

	var stream string
	switch {
	case m.resolving:
		stream = "\nResolving stream URL..."
	case m.streamErr != nil:
		stream = "\n" + styles.warn.Render(fmt.Sprintf("Stream unavailable: %v", m.streamErr))
	case m.streamURL != "":
		stream = fmt.Sprintf("\n%s\n%s", styles.ok.Render("Stream URL"), m.streamURL)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.open, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, stream, helpView)
}
