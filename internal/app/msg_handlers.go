package app

import (
	stderrors "errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rivo/uniseg"

	"github.com/zhubert/nftdesk/internal/api"
	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/ui"
	"github.com/zhubert/nftdesk/internal/ui/modals"
)

// addressPreviewLen is how many graphemes of an address the transfer summary shows
const addressPreviewLen = 8

func (m *Model) handleCollectionsLoaded(msg CollectionsLoadedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if msg.Err != nil {
		log.Error("failed to load collections", "error", msg.Err)
		m.sidebar.SetLoadError(msg.Err.Error())
		return m, nil
	}
	log.Info("collections loaded", "count", len(msg.Collections))
	m.sidebar.SetCollections(msg.Collections)
	return m, nil
}

func (m *Model) handleChatResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	m.chat.SetWaiting(false)

	switch {
	case msg.Err != nil:
		logger.WithComponent("app").Error("chat request failed", "error", msg.Err, "kind", pkgerrors.GetKind(msg.Err))
		m.chat.AddMessage(ui.RoleSystem, "Failed to send message: "+failureReason(msg.Err))
	case msg.Response == nil:
		m.chat.AddMessage(ui.RoleSystem, "Failed to send message: empty response")
	case msg.Response.Error == "" && msg.Response.Response == "":
		logger.WithComponent("app").Warn("chat returned neither response nor error")
		m.chat.AddMessage(ui.RoleSystem, "Failed to send message: empty response")
	case msg.Response.Error != "":
		logger.WithComponent("app").Warn("chat returned an error", "error", msg.Response.Error)
		m.chat.AddMessage(ui.RoleSystem, "Error: "+msg.Response.Error)
	default:
		m.chat.AddMessage(ui.RoleBot, msg.Response.Response)
	}
	return m, nil
}

// handleConversationCleared confirms a clear. The transcript was already
// reset, so a failure is only logged.
func (m *Model) handleConversationCleared(msg ConversationClearedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	switch {
	case msg.Err != nil:
		log.Warn("clear conversation failed", "error", msg.Err)
	case msg.Response == nil || !msg.Response.Success:
		reason := "unknown error"
		if msg.Response != nil && msg.Response.Error != "" {
			reason = msg.Response.Error
		}
		log.Warn("clear conversation rejected", "reason", reason)
	default:
		m.chat.AddMessage(ui.RoleSystem, "Conversation cleared.")
	}
	return m, nil
}

func (m *Model) handleTransferResult(msg TransferResultMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	transfer, _ := m.modal.State.(*modals.TransferState)
	if transfer != nil {
		transfer.SetSubmitting(false)
	}

	if failure := transferFailure(msg); failure != "" {
		log.Warn("transfer simulation failed", "collection", msg.Request.Collection, "error", failure)
		m.chat.AddMessage(ui.RoleSystem, failure)
		if transfer != nil {
			m.modal.SetError(failure)
		}
		return m, nil
	}

	log.Info("transfer simulated", "collection", msg.Request.Collection, "token", msg.Request.TokenID)
	if transfer != nil {
		m.modal.Hide()
	}
	m.chat.AddMessage(ui.RoleSystem, TransferSummary(msg.Request))
	m.chat.AddMessage(ui.RoleBot, msg.Response.Response)

	var cmds []tea.Cmd
	cmds = append(cmds, m.ShowFlashSuccess("Transfer simulated"))
	if m.config.GetNotificationsEnabled() {
		notify, req := m.notifyFn, msg.Request
		cmds = append(cmds, func() tea.Msg {
			_ = notify(req.Collection, req.TokenID)
			return nil
		})
	}
	return m, tea.Batch(cmds...)
}

// transferFailure returns the system message for a failed transfer, or "" on success
func transferFailure(msg TransferResultMsg) string {
	switch {
	case msg.Err != nil:
		return "Transfer failed: " + failureReason(msg.Err)
	case msg.Response == nil:
		return "Transfer failed: empty response"
	case msg.Response.Error != "":
		return "Error: " + msg.Response.Error
	case !msg.Response.Success:
		return "Transfer failed: the server did not confirm the transfer"
	}
	return ""
}

func (m *Model) handleStatus(msg StatusMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Older backends have no status endpoint
		log := logger.WithComponent("app")
		if pkgerrors.Is(msg.Err, pkgerrors.KindNetwork) {
			log.Warn("status request failed", "error", msg.Err)
		} else {
			log.Debug("status unavailable", "error", msg.Err)
		}
		return m, nil
	}
	m.header.SetResponder(msg.Status.Responder)
	return m, nil
}

// failureReason phrases a failed request for the transcript. Transport and
// server failures show the underlying cause without the op prefix.
func failureReason(err error) string {
	var e *pkgerrors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	switch pkgerrors.GetKind(err) {
	case pkgerrors.KindNetwork:
		return "could not reach the server: " + e.Err.Error()
	case pkgerrors.KindAPI:
		return "server error: " + e.Err.Error()
	case pkgerrors.KindInvalid:
		return "unreadable server response"
	}
	return err.Error()
}

// TransferSummary formats the system message appended after a successful
// transfer simulation.
func TransferSummary(req api.TransferRequest) string {
	return fmt.Sprintf("Simulated transfer of %s #%s from %s... to %s...",
		req.Collection, req.TokenID,
		truncateGraphemes(req.FromAddress, addressPreviewLen),
		truncateGraphemes(req.ToAddress, addressPreviewLen))
}

// truncateGraphemes returns the first n grapheme clusters of s
func truncateGraphemes(s string, n int) string {
	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	return sb.String()
}
