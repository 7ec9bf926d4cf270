// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a search-and-pick workflow:
//  1. [ResultListView] : Browse search results for a query
//  2. [DetailView] : Inspect a song and resolve its playable stream URL
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Search and stream resolution run as commands so the interface never blocks on network traffic.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
