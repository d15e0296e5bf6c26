package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/keys"
)

// Sidebar placeholders
const (
	SidebarLoadingText = "Loading collections..."
	SidebarErrorText   = "Failed to load collections"
	SidebarEmptyText   = "No collections found"
)

// Sidebar represents the left panel with the filterable collection list
type Sidebar struct {
	collections  []api.Collection
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	focused      bool

	loading bool
	loadErr string

	filterActive bool
	filterInput  textinput.Model
}

// NewSidebar creates a new sidebar in the loading state
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "filter collections..."
	ti.CharLimit = FilterCharLimit
	ti.Prompt = ""

	return &Sidebar{
		loading:     true,
		filterInput: ti,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.filterInput.SetWidth(max(InnerWidth(width)-3, 1))
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
	if !focused && s.filterActive {
		s.filterActive = false
		s.filterInput.Blur()
	}
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetLoading puts the sidebar back into the loading state.
func (s *Sidebar) SetLoading() {
	s.loading = true
	s.loadErr = ""
}

// IsLoading reports whether collections are being fetched.
func (s *Sidebar) IsLoading() bool {
	return s.loading
}

// SetCollections replaces the collection list and clears any load error.
func (s *Sidebar) SetCollections(collections []api.Collection) {
	s.collections = append([]api.Collection(nil), collections...)
	api.SortCollections(s.collections)
	s.loading = false
	s.loadErr = ""
	s.clampSelection()
}

// Collections returns every loaded collection, unfiltered.
func (s *Sidebar) Collections() []api.Collection {
	return s.collections
}

// SetLoadError records a failed fetch. The previous list is dropped.
func (s *Sidebar) SetLoadError(msg string) {
	s.collections = nil
	s.loading = false
	s.loadErr = msg
	s.clampSelection()
}

// LoadError returns the last load error, if any.
func (s *Sidebar) LoadError() string {
	return s.loadErr
}

// SetFilter replaces the filter text.
func (s *Sidebar) SetFilter(query string) {
	s.filterInput.SetValue(query)
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// Filter returns the current filter text.
func (s *Sidebar) Filter() string {
	return s.filterInput.Value()
}

// FocusFilter starts typing into the filter.
func (s *Sidebar) FocusFilter() tea.Cmd {
	s.filterActive = true
	return s.filterInput.Focus()
}

// ClearFilter empties the filter and stops typing into it.
func (s *Sidebar) ClearFilter() {
	s.filterActive = false
	s.filterInput.Blur()
	s.SetFilter("")
}

// IsFilterActive reports whether keystrokes go to the filter.
func (s *Sidebar) IsFilterActive() bool {
	return s.filterActive
}

// VisibleCollections returns the collections whose name contains the filter
// text, ignoring case.
func (s *Sidebar) VisibleCollections() []api.Collection {
	return FilterCollections(s.collections, s.filterInput.Value())
}

// FilterCollections returns the collections whose name contains query,
// ignoring case. An empty query matches everything. Whitespace in query is
// matched literally.
func FilterCollections(collections []api.Collection, query string) []api.Collection {
	if query == "" {
		return collections
	}
	query = strings.ToLower(query)
	var out []api.Collection
	for _, c := range collections {
		if strings.Contains(strings.ToLower(c.Name), query) {
			out = append(out, c)
		}
	}
	return out
}

// SelectedCollection returns the highlighted visible collection, or nil.
func (s *Sidebar) SelectedCollection() *api.Collection {
	visible := s.VisibleCollections()
	if s.selectedIdx < 0 || s.selectedIdx >= len(visible) {
		return nil
	}
	c := visible[s.selectedIdx]
	return &c
}

func (s *Sidebar) clampSelection() {
	n := len(s.VisibleCollections())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// CollectionLabel is the sidebar text for a collection.
func CollectionLabel(c api.Collection) string {
	return fmt.Sprintf("%s  %d items", c.Name, c.TotalItems)
}

// CollectionDetail is the floor price and description shown under the list
// for the selected collection. Missing metadata is skipped.
func CollectionDetail(c api.Collection) []string {
	var lines []string
	if fp, ok := c.FloorPrice(); ok {
		lines = append(lines, "Floor "+strconv.FormatFloat(fp, 'f', -1, 64)+" SUI")
	}
	if d := strings.TrimSpace(c.Description()); d != "" {
		lines = append(lines, d)
	}
	return lines
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		// Cursor blink
		if s.filterActive {
			var cmd tea.Cmd
			s.filterInput, cmd = s.filterInput.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if !s.focused {
		return s, nil
	}

	if s.filterActive {
		switch keyMsg.String() {
		case keys.Escape:
			s.ClearFilter()
			return s, nil
		case keys.Enter:
			// Keep the filter applied, return keys to navigation
			s.filterActive = false
			s.filterInput.Blur()
			return s, nil
		case keys.Up, keys.CtrlP:
			s.moveSelection(-1)
			return s, nil
		case keys.Down, keys.CtrlN:
			s.moveSelection(1)
			return s, nil
		default:
			var cmd tea.Cmd
			before := s.filterInput.Value()
			s.filterInput, cmd = s.filterInput.Update(msg)
			if s.filterInput.Value() != before {
				s.selectedIdx = 0
				s.scrollOffset = 0
			}
			return s, cmd
		}
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		s.moveSelection(-1)
	case keys.Down, "j":
		s.moveSelection(1)
	case keys.Escape:
		if s.Filter() != "" {
			s.ClearFilter()
		}
	}
	return s, nil
}

func (s *Sidebar) moveSelection(delta int) {
	n := len(s.VisibleCollections())
	idx := s.selectedIdx + delta
	if idx < 0 || idx >= n {
		return
	}
	s.selectedIdx = idx
}

// View renders the sidebar
func (s *Sidebar) View() string {
	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := InnerWidth(s.width)
	innerHeight := InnerHeight(s.height)

	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Collections"))

	if s.filterActive || s.Filter() != "" {
		slash := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).Render("/")
		lines = append(lines, " "+slash+" "+s.filterInput.View())
	}

	detail := s.renderDetail(innerWidth)
	listHeight := innerHeight - len(lines) - len(detail) - 1
	if len(detail) == 0 || listHeight < MinSidebarListHeight {
		detail = nil
		listHeight = max(innerHeight-len(lines), 1)
	}
	lines = append(lines, s.renderList(innerWidth, listHeight)...)
	if detail != nil {
		lines = append(lines, "")
		lines = append(lines, detail...)
	}

	content := strings.Join(lines, "\n")
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderDetail describes the selected collection, or returns nil when there
// is nothing to show.
func (s *Sidebar) renderDetail(innerWidth int) []string {
	if s.loading || s.loadErr != "" {
		return nil
	}
	c := s.SelectedCollection()
	if c == nil {
		return nil
	}
	var lines []string
	for _, line := range CollectionDetail(*c) {
		lines = append(lines, SidebarPlaceholderStyle.Render(ansi.Truncate(line, max(innerWidth-2, 1), "…")))
	}
	return lines
}

func (s *Sidebar) renderList(innerWidth, listHeight int) []string {
	placeholder := func(text string) []string {
		return []string{SidebarPlaceholderStyle.Render(ansi.Truncate(text, max(innerWidth-2, 1), "…"))}
	}

	switch {
	case s.loading:
		return []string{StatusLoadingStyle.Render(" " + SidebarLoadingText)}
	case s.loadErr != "":
		return placeholder(SidebarErrorText)
	}

	visible := s.VisibleCollections()
	if len(visible) == 0 {
		return placeholder(SidebarEmptyText)
	}

	// Keep the selection on screen
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	} else if s.selectedIdx >= s.scrollOffset+listHeight {
		s.scrollOffset = s.selectedIdx - listHeight + 1
	}
	s.scrollOffset = max(min(s.scrollOffset, len(visible)-listHeight), 0)

	// SidebarItemStyle pads one column on each side, plus the "> " marker
	labelWidth := max(innerWidth-4, 1)

	var lines []string
	for i := s.scrollOffset; i < len(visible) && len(lines) < listHeight; i++ {
		label := ansi.Truncate(CollectionLabel(visible[i]), labelWidth, "…")
		if i == s.selectedIdx && s.focused {
			lines = append(lines, SidebarSelectedStyle.Width(innerWidth).Render("> "+label))
			continue
		}
		lines = append(lines, SidebarItemStyle.Width(innerWidth).Render("  "+label))
	}
	return lines
}
