package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/clipboard"
	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/notification"
	"github.com/zhubert/nftdesk/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusSidebar:
		return "Sidebar"
	case FocusChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Model is the chat panel controller. It owns all client-side state for one
// program run and is the root Bubble Tea model.
type Model struct {
	config  *config.Config
	api     api.Service
	version string

	view    *ui.ViewContext
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Remote calls issued whose result message has not arrived yet
	pending int

	animate  bool
	copyText func(string) error
	notifyFn func(collection, tokenID string) error
}

// Option configures a Model.
type Option func(*Model)

// WithVersion sets the version shown by the help modal.
func WithVersion(version string) Option {
	return func(m *Model) { m.version = version }
}

// WithClipboard replaces the clipboard writer used by copy-last-reply.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

// WithNotifier replaces the desktop notification sent after a transfer.
func WithNotifier(fn func(collection, tokenID string) error) Option {
	return func(m *Model) { m.notifyFn = fn }
}

// WithoutAnimation disables the typing indicator and flash timers. Scripted
// runs use it so that settling commands never waits on a tick.
func WithoutAnimation() Option {
	return func(m *Model) { m.animate = false }
}

// New creates the controller. Collections are fetched by Init.
func New(cfg *config.Config, svc api.Service, opts ...Option) *Model {
	m := &Model{
		config:   cfg,
		api:      svc,
		view:     ui.NewViewContext(),
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		sidebar:  ui.NewSidebar(),
		chat:     ui.NewChat(cfg.GetWelcomeMessage()),
		modal:    ui.NewModal(),
		focus:    FocusSidebar,
		animate:  true,
		copyText: clipboard.WriteText,
		notifyFn: notification.TransferSimulated,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.header.SetAPIURL(cfg.GetAPIURL())
	m.sidebar.SetFocused(true)
	return m
}

// Init loads the collections and asks the backend which responder it runs.
func (m *Model) Init() tea.Cmd {
	logger.WithComponent("app").Info("starting", "api", m.config.GetAPIURL(), "version", m.version)
	m.pending += 2
	return tea.Batch(loadCollectionsCmd(m.api), statusCmd(m.api))
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// Messages returns a copy of the chat transcript
func (m *Model) Messages() []ui.Message {
	return m.chat.Messages()
}

// Sidebar returns the collection sidebar
func (m *Model) Sidebar() *ui.Sidebar {
	return m.sidebar
}

// Chat returns the chat panel
func (m *Model) Chat() *ui.Chat {
	return m.chat
}

// Modal returns the modal container
func (m *Model) Modal() *ui.Modal {
	return m.modal
}

// Footer returns the footer bar
func (m *Model) Footer() *ui.Footer {
	return m.footer
}

// PendingRequests returns the number of remote calls still in flight
func (m *Model) PendingRequests() int {
	return m.pending
}

// toggleFocus switches focus between sidebar and chat
func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusSidebar {
		m.focus = FocusChat
		m.sidebar.SetFocused(false)
		return m.chat.SetFocused(true)
	}
	m.focus = FocusSidebar
	m.chat.SetFocused(false)
	m.sidebar.SetFocused(true)
	return nil
}

// typingTick starts the typing indicator animation
func (m *Model) typingTick() tea.Cmd {
	if !m.animate {
		return nil
	}
	return ui.TypingTick()
}
