package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/nftdesk/internal/ui/modals"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Fatal("new modal should be hidden")
	}
	if m.View(80, 24) != "" {
		t.Error("hidden modal renders nothing")
	}

	m.Show(modals.NewTransferState([]string{"Apes"}, ""))
	m.SetError("token id is required")
	if !m.IsVisible() {
		t.Fatal("expected visible")
	}

	view := ansi.Strip(m.View(100, 40))
	for _, want := range []string{"Simulate NFT Transfer", "token id is required"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Hide()
	if m.IsVisible() || m.GetError() != "" {
		t.Error("Hide should clear state and error")
	}
}

func TestModal_ShowClearsError(t *testing.T) {
	m := NewModal()
	m.SetError("old")
	m.Show(modals.NewTransferState(nil, ""))
	if m.GetError() != "" {
		t.Error("Show should reset the error")
	}
}

func TestModal_UpdateWithoutStateIsNoop(t *testing.T) {
	m := NewModal()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if cmd != nil {
		t.Error("expected no command")
	}
}
