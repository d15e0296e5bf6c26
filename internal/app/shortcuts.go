package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/keys"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the shortcuts in the help modal.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "/", "ctrl+t")
	DisplayKey      string                              // Display name in help; defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresSidebar bool                                // Must not be in chat focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation  = "Navigation"
	CategoryCollections = "Collections"
	CategoryChat        = "Chat"
	CategoryGeneral     = "General"
)

var categoryOrder = []string{
	CategoryNavigation,
	CategoryCollections,
	CategoryChat,
	CategoryGeneral,
}

// ShortcutRegistry lists the shortcuts handled by ExecuteShortcut.
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Switch between collections and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             "/",
		Description:     "Filter collections",
		Category:        CategoryCollections,
		RequiresSidebar: true,
		Handler:         shortcutFilter,
	},
	{
		Key:         keys.CtrlR,
		Description: "Reload collections",
		Category:    CategoryCollections,
		Handler:     shortcutReload,
	},
	{
		Key:         keys.CtrlT,
		Description: "Simulate an NFT transfer",
		Category:    CategoryCollections,
		Handler:     shortcutTransfer,
	},
	{
		Key:         keys.CtrlL,
		Description: "Clear the conversation",
		Category:    CategoryChat,
		Handler:     shortcutClear,
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy the last bot reply",
		Category:    CategoryChat,
		Handler:     shortcutCopyReply,
	},
	{
		Key:             "n",
		Description:     "Toggle transfer notifications",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutToggleNotifications,
	},
	{
		Key:             "q",
		Description:     "Quit",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is kept out of ShortcutRegistry because shortcutHelp reads it
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show keyboard shortcuts",
	Category:        CategoryGeneral,
	RequiresSidebar: true,
	Handler:         shortcutHelp,
}

// DisplayOnlyShortcuts appear in the help modal but are handled elsewhere.
var DisplayOnlyShortcuts = []Shortcut{
	{Key: "↑/↓", Description: "Select collection", Category: CategoryCollections},
	{Key: "esc", Description: "Clear the filter", Category: CategoryCollections},
	{Key: "enter", Description: "Send message", Category: CategoryChat},
	{Key: "shift+enter", Description: "Insert newline", Category: CategoryChat},
	{Key: "pgup/pgdn", Description: "Scroll the conversation", Category: CategoryChat},
	{Key: "ctrl+c", Description: "Quit", Category: CategoryGeneral},
}

// isShortcutApplicable reports whether the shortcut's guards pass
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.focus != FocusSidebar {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut runs the shortcut bound to key. The bool result is false
// when no shortcut applies and the key should propagate to the focused panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	for _, s := range append(ShortcutRegistry, helpShortcut) {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("app").Debug("shortcut guard failed", "key", key, "focus", m.focus)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups the applicable shortcuts for the help modal
func (m *Model) helpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

// shortcutForDisplayKey finds a registry entry by the key shown in the help modal
func shortcutForDisplayKey(displayKey string) (Shortcut, bool) {
	for _, s := range ShortcutRegistry {
		if s.DisplayKey == displayKey || (s.DisplayKey == "" && s.Key == displayKey) {
			return s, true
		}
	}
	return Shortcut{}, false
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFocus()
}

func shortcutFilter(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.FocusFilter()
}

func shortcutReload(m *Model) (tea.Model, tea.Cmd) {
	return m, m.reloadCollections()
}

func shortcutTransfer(m *Model) (tea.Model, tea.Cmd) {
	return m, m.openTransferModal()
}

func shortcutClear(m *Model) (tea.Model, tea.Cmd) {
	return m, m.clearConversation()
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyLastReply()
}

func shortcutToggleNotifications(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleNotifications()
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	help := modals.NewHelpStateFromSections(m.helpSections())
	m.modal.Show(help)
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
