package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	if !m.animate {
		return nil
	}
	return ui.FlashTick()
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// handleFlashTick clears an expired flash, or keeps ticking until it expires
func (m *Model) handleFlashTick() tea.Cmd {
	if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
		return nil
	}
	return ui.FlashTick()
}
