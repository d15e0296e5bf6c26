package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/nftdesk/internal/ui"
	"github.com/zhubert/nftdesk/internal/ui/modals"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateFooterContext()

	if m.modal.IsVisible() {
		if help, ok := m.modal.State.(*modals.HelpState); ok {
			help.SetSize(modals.ModalWidth, min(m.height-4, modals.HelpModalMaxVisible+4))
		}
		return m.modal.View(m.width, m.height-ui.FooterHeight) + "\n" + m.footer.View()
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	m.footer.SetContext(ui.FooterContext{
		SidebarFocused: m.focus == FocusSidebar,
		FilterActive:   m.sidebar.IsFilterActive(),
		ModalVisible:   m.modal.IsVisible(),
		Waiting:        m.chat.IsWaiting(),
	})
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := m.view
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}
