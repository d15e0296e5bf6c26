package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/keys"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if IsResultMsg(msg) && m.pending > 0 {
		m.pending--
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case CollectionsLoadedMsg:
		return m.handleCollectionsLoaded(msg)

	case ChatResponseMsg:
		return m.handleChatResponse(msg)

	case ConversationClearedMsg:
		return m.handleConversationCleared(msg)

	case TransferResultMsg:
		return m.handleTransferResult(msg)

	case StatusMsg:
		return m.handleStatus(msg)

	case ui.TypingTickMsg:
		_, cmd := m.chat.Update(msg)
		return m, cmd

	case ui.FlashTickMsg:
		return m, m.handleFlashTick()
	}

	// Field-internal messages (cursor blink, huh focus) go to the modal when
	// it is open, otherwise mouse wheel and the rest go to the chat viewport
	if m.modal.IsVisible() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}
	var cmds []tea.Cmd
	_, cmd := m.chat.Update(msg)
	cmds = append(cmds, cmd)
	if m.sidebar.IsFilterActive() {
		_, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press: modal first, then the filter input, then
// shortcuts, then the focused panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.focus == FocusSidebar && m.sidebar.IsFilterActive() {
		if key == keys.Tab {
			return m, m.toggleFocus()
		}
		_, cmd := m.sidebar.Update(msg)
		return m, cmd
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if m.focus == FocusChat {
		if key == keys.Enter {
			return m, m.sendMessage()
		}
		_, cmd := m.chat.Update(msg)
		return m, cmd
	}

	_, cmd := m.sidebar.Update(msg)
	return m, cmd
}

// sendMessage sends the chat input. Sends are serialized: while a reply is
// pending, enter keeps the input and issues nothing.
func (m *Model) sendMessage() tea.Cmd {
	text := m.chat.GetInput()
	if text == "" {
		return nil
	}
	if m.chat.IsWaiting() {
		logger.WithComponent("app").Debug("send ignored, reply pending")
		return nil
	}

	m.chat.AddMessage(ui.RoleUser, text)
	m.chat.ClearInput()
	m.chat.SetWaiting(true)
	m.pending++

	logger.WithComponent("app").Debug("sending chat message", "length", len(text))
	return tea.Batch(sendChatCmd(m.api, text), m.typingTick())
}

// reloadCollections refetches the collections, replacing the current set
func (m *Model) reloadCollections() tea.Cmd {
	m.sidebar.SetLoading()
	m.pending++
	return loadCollectionsCmd(m.api)
}

// clearConversation resets the transcript to the welcome banner before the
// server acknowledges.
func (m *Model) clearConversation() tea.Cmd {
	m.chat.ClearToWelcome()
	m.pending++
	return clearConversationCmd(m.api)
}

// copyLastReply copies the most recent bot message to the clipboard
func (m *Model) copyLastReply() tea.Cmd {
	text, ok := m.chat.LastBotMessage()
	if !ok {
		return m.ShowFlashWarning("No bot reply to copy")
	}
	if err := m.copyText(text); err != nil {
		logger.WithComponent("app").Warn("copy failed", "error", err)
		m.chat.AddMessage(ui.RoleSystem, "Failed to copy reply: "+err.Error())
		return nil
	}
	return m.ShowFlashSuccess("Copied reply to clipboard")
}

// toggleNotifications flips transfer notifications and saves the setting
func (m *Model) toggleNotifications() tea.Cmd {
	enabled := !m.config.GetNotificationsEnabled()
	m.config.SetNotificationsEnabled(enabled)

	state := "off"
	if enabled {
		state = "on"
	}
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to save config", "error", err)
		return m.ShowFlashWarning("Notifications " + state + " (not saved)")
	}
	logger.WithComponent("app").Info("notifications toggled", "enabled", enabled)
	return m.ShowFlashSuccess("Notifications " + state)
}
