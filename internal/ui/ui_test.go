package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/source"
)

// fakeSource implements source.Plugin with canned results.
type fakeSource struct {
	songs     []models.Song
	streamURL string
	streamErr error
}

func (f *fakeSource) Name() string               { return "fake" }
func (f *fakeSource) Validate(string) bool       { return false }
func (f *fakeSource) Init(context.Context) error { return nil }

func (f *fakeSource) Resolve(context.Context, string) (*models.Resolved, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSource) SearchSong(context.Context, string) *models.Song { return nil }

func (f *fakeSource) Search(context.Context, string, source.SearchOptions) []models.Song {
	return f.songs
}

func (f *fakeSource) StreamURL(context.Context, *models.Song) (string, error) {
	return f.streamURL, f.streamErr
}

func (f *fakeSource) RelatedSongs(context.Context, *models.Song) []models.Song { return nil }

func testModel(src source.Plugin) *Model {
	m := NewModel(context.Background(), src, "test query", models.SearchSongs, 3)
	m.width = 80
	m.height = 24
	return m
}

func TestModelSearchFlow(t *testing.T) {
	songs := []models.Song{
		{ID: "vid00000001", Title: "First", Artist: "A"},
		{ID: "vid00000002", Title: "Second", Artist: "B"},
	}
	src := &fakeSource{songs: songs, streamURL: "https://example.googlevideo.com/stream"}

	t.Run("results populate the list", func(t *testing.T) {
		m := testModel(src)

		msg := m.Init()()
		fetched, ok := msg.(songsFetchedMsg)
		if !ok {
			t.Fatalf("Init produced %T, want songsFetchedMsg", msg)
		}
		if len(fetched.songs) != 2 {
			t.Fatalf("got %d songs", len(fetched.songs))
		}

		updated, _ := m.Update(fetched)
		m = updated.(*Model)
		if m.resultList.Title != "Results for 'test query'" {
			t.Errorf("list title = %q", m.resultList.Title)
		}
		if len(m.resultList.Items()) != 2 {
			t.Errorf("list has %d items", len(m.resultList.Items()))
		}
	})

	t.Run("enter selects and resolves", func(t *testing.T) {
		m := testModel(src)
		updated, _ := m.Update(songsFetchedMsg{songs: songs})
		m = updated.(*Model)

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(*Model)
		if m.view != DetailView {
			t.Fatalf("view = %v, want DetailView", m.view)
		}
		if m.Selected() == nil || m.Selected().Title != "First" {
			t.Errorf("Selected = %+v", m.Selected())
		}
		if cmd == nil {
			t.Fatal("expected a stream resolution command")
		}

		resolved, ok := cmd().(streamResolvedMsg)
		if !ok {
			t.Fatal("expected streamResolvedMsg")
		}
		updated, _ = m.Update(resolved)
		m = updated.(*Model)
		if m.streamURL != "https://example.googlevideo.com/stream" {
			t.Errorf("streamURL = %q", m.streamURL)
		}
		if m.resolving {
			t.Error("resolving flag should clear")
		}
	})

	t.Run("esc returns to results", func(t *testing.T) {
		m := testModel(src)
		updated, _ := m.Update(songsFetchedMsg{songs: songs})
		m = updated.(*Model)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(*Model)

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = updated.(*Model)
		if m.view != ResultListView {
			t.Errorf("view = %v, want ResultListView", m.view)
		}
	})

	t.Run("empty results surface an error view", func(t *testing.T) {
		m := testModel(&fakeSource{})
		updated, _ := m.Update(songsFetchedMsg{})
		m = updated.(*Model)
		if m.err == nil {
			t.Fatal("expected an error for empty results")
		}
	})

	t.Run("stream failure renders a warning", func(t *testing.T) {
		failing := &fakeSource{songs: songs, streamErr: errors.New("no stream")}
		m := testModel(failing)
		updated, _ := m.Update(songsFetchedMsg{songs: songs})
		m = updated.(*Model)
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(*Model)
		updated, _ = m.Update(cmd())
		m = updated.(*Model)

		if m.streamErr == nil {
			t.Error("expected stream error to be recorded")
		}
	})
}
