package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/api"
)

// CollectionsLoadedMsg carries the result of fetching the collections.
type CollectionsLoadedMsg struct {
	Collections []api.Collection
	Err         error
}

// ChatResponseMsg carries the result of a chat send.
type ChatResponseMsg struct {
	Response *api.ChatResponse
	Err      error
}

// ConversationClearedMsg carries the result of clearing the server conversation.
type ConversationClearedMsg struct {
	Response *api.ClearResponse
	Err      error
}

// TransferResultMsg carries the result of a transfer simulation.
type TransferResultMsg struct {
	Request  api.TransferRequest
	Response *api.TransferResponse
	Err      error
}

// StatusMsg carries the backend status.
type StatusMsg struct {
	Status *api.StatusResponse
	Err    error
}

// IsResultMsg reports whether msg is the result of a remote call issued by
// the controller.
func IsResultMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case CollectionsLoadedMsg, ChatResponseMsg, ConversationClearedMsg, TransferResultMsg, StatusMsg:
		return true
	}
	return false
}

func loadCollectionsCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		collections, err := svc.Collections(context.Background())
		return CollectionsLoadedMsg{Collections: collections, Err: err}
	}
}

func sendChatCmd(svc api.Service, message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Chat(context.Background(), message)
		return ChatResponseMsg{Response: resp, Err: err}
	}
}

func clearConversationCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.ClearConversation(context.Background())
		return ConversationClearedMsg{Response: resp, Err: err}
	}
}

func simulateTransferCmd(svc api.Service, req api.TransferRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.SimulateTransfer(context.Background(), req)
		return TransferResultMsg{Request: req, Response: resp, Err: err}
	}
}

func statusCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		status, err := svc.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}
