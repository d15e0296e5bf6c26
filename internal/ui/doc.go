// Package ui provides the user interface components for the nftdesk TUI.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Chat Panel                │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: layout calculations, owned by the app model.
//
// Header: the application title and the backend URL over a gradient.
//
// Footer: context-aware keyboard shortcuts.
//
// Sidebar: the collection list with a case-insensitive name filter. It shows
// a placeholder while loading, when the fetch failed, and when the filter
// matches nothing.
//
// Chat: the transcript, the typing indicator and the input textarea. The
// first message is the welcome banner, which survives ClearToWelcome.
//
// Modal: a centered container for a modals.ModalState.
//
// # Focus System
//
// Tab toggles focus between the sidebar and the chat input. The 'q' key only
// quits when the sidebar is focused and the filter is not being typed into.
package ui
