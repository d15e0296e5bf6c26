package ui

import "testing"

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	v := NewViewContext()
	v.UpdateTerminalSize(120, 40)

	if v.ContentHeight != 40-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight = %d", v.ContentHeight)
	}
	if v.SidebarWidth != 40 {
		t.Errorf("SidebarWidth = %d, want 40", v.SidebarWidth)
	}
	if v.SidebarWidth+v.ChatWidth != 120 {
		t.Errorf("panels should fill the width: %d + %d", v.SidebarWidth, v.ChatWidth)
	}
}

func TestViewContext_ClampsTinyTerminals(t *testing.T) {
	v := NewViewContext()
	v.UpdateTerminalSize(5, 2)

	if v.TerminalWidth != MinTerminalWidth || v.TerminalHeight != MinTerminalHeight {
		t.Errorf("got %dx%d, want clamped minimum", v.TerminalWidth, v.TerminalHeight)
	}
	if v.ContentHeight <= 0 {
		t.Error("content height should stay positive")
	}
}

func TestInnerDimensions(t *testing.T) {
	if InnerWidth(10) != 8 || InnerHeight(10) != 8 {
		t.Error("inner size should subtract borders")
	}
	if InnerWidth(1) != 0 || InnerHeight(0) != 0 {
		t.Error("inner size should not go negative")
	}
}
