package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/keys"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/ui/modals"
)

// handleModalKey dispatches a key press to the visible modal
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch s := m.modal.State.(type) {
	case *modals.TransferState:
		return m.handleTransferModal(msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(msg, s)
	}
	_, cmd := m.modal.Update(msg)
	return m, cmd
}

// openTransferModal shows the transfer form. The loaded collection names are
// its select options and the sidebar selection is preselected.
func (m *Model) openTransferModal() tea.Cmd {
	collections := m.sidebar.Collections()
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		names = append(names, c.Name)
	}

	var selected string
	if c := m.sidebar.SelectedCollection(); c != nil {
		selected = c.Name
	}

	m.modal.Show(modals.NewTransferState(names, selected))
	return nil
}

func (m *Model) handleTransferModal(msg tea.KeyPressMsg, s *modals.TransferState) (tea.Model, tea.Cmd) {
	if s.IsSubmitting() {
		return m, nil
	}

	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := s.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		req := s.Values()
		m.modal.SetError("")
		s.SetSubmitting(true)
		m.pending++
		logger.WithComponent("app").Debug("submitting transfer", "collection", req.Collection, "token", req.TokenID)
		return m, simulateTransferCmd(m.api, req)
	}

	_, cmd := m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpModal(msg tea.KeyPressMsg, s *modals.HelpState) (tea.Model, tea.Cmd) {
	if s.IsFiltering() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		selected := s.GetSelectedShortcut()
		m.modal.Hide()
		if selected == nil {
			return m, nil
		}
		if sc, ok := shortcutForDisplayKey(selected.Key); ok && m.isShortcutApplicable(sc) {
			return sc.Handler(m)
		}
		return m, nil
	}

	_, cmd := m.modal.Update(msg)
	return m, cmd
}
