package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// FlashType sets the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a short-lived notice that replaces the footer bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically to expire flash messages
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg after a delay
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterContext is the UI state the footer picks its bindings from.
type FooterContext struct {
	SidebarFocused bool
	FilterActive   bool
	ModalVisible   bool
	Waiting        bool
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings overrides the context-derived bindings. Pass nil to restore them.
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	icon, color := "ℹ", ColorSecondary
	switch f.flashMessage.Type {
	case FlashSuccess:
		icon, color = "✓", ColorSuccess
	case FlashWarning:
		icon, color = "⚠", ColorWarning
	case FlashError:
		icon, color = "✕", ColorError
	}
	style := lipgloss.NewStyle().Foreground(color)
	return FooterStyle.Width(f.width).Render(style.Bold(true).Render(icon) + " " + style.Render(f.flashMessage.Text))
}

// Bindings returns the bindings for the current context.
func (f *Footer) Bindings() []KeyBinding {
	if f.bindings != nil {
		return f.bindings
	}

	switch {
	case f.ctx.ModalVisible:
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.ctx.FilterActive:
		return []KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "keep"},
			{Key: "esc", Desc: "clear"},
		}
	case f.ctx.SidebarFocused:
		return []KeyBinding{
			{Key: "tab", Desc: "chat"},
			{Key: "/", Desc: "filter"},
			{Key: "ctrl+t", Desc: "transfer"},
			{Key: "ctrl+r", Desc: "reload"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case f.ctx.Waiting:
		return []KeyBinding{
			{Key: "tab", Desc: "collections"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+t", Desc: "transfer"},
		}
	default:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+l", Desc: "clear"},
			{Key: "ctrl+y", Desc: "copy reply"},
			{Key: "ctrl+t", Desc: "transfer"},
			{Key: "tab", Desc: "collections"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	}
}

// View renders the footer, dropping trailing bindings that do not fit
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	const sepPlain = "  |  "
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "

	// FooterStyle pads one column on each side
	avail := f.width - 2
	used := 0

	var parts []string
	for _, b := range f.Bindings() {
		w := runewidth.StringWidth(b.Key + ": " + b.Desc)
		if len(parts) > 0 {
			w += runewidth.StringWidth(sepPlain)
		}
		if f.width > 0 && used+w > avail {
			break
		}
		used += w
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}

	return FooterStyle.Width(f.width).Render(strings.Join(parts, sep))
}
