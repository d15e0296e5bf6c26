package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func bindingKeys(bs []KeyBinding) string {
	var out []string
	for _, b := range bs {
		out = append(out, b.Key)
	}
	return strings.Join(out, ",")
}

func TestFooter_BindingsFollowContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      FooterContext
		contains []string
		excludes []string
	}{
		{"sidebar", FooterContext{SidebarFocused: true}, []string{"/", "q", "ctrl+t"}, []string{"enter"}},
		{"chat", FooterContext{}, []string{"enter", "ctrl+l", "ctrl+y"}, []string{"q"}},
		{"waiting", FooterContext{Waiting: true}, []string{"tab"}, []string{"enter"}},
		{"filter", FooterContext{SidebarFocused: true, FilterActive: true}, []string{"esc", "enter"}, []string{"q"}},
		{"modal", FooterContext{ModalVisible: true, SidebarFocused: true}, []string{"esc", "enter", "tab"}, []string{"q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetContext(tt.ctx)
			got := "," + bindingKeys(f.Bindings()) + ","
			for _, k := range tt.contains {
				if !strings.Contains(got, ","+k+",") {
					t.Errorf("bindings %s missing %q", got, k)
				}
			}
			for _, k := range tt.excludes {
				if strings.Contains(got, ","+k+",") {
					t.Errorf("bindings %s should not include %q", got, k)
				}
			}
		})
	}
}

func TestFooter_SetBindingsOverrides(t *testing.T) {
	f := NewFooter()
	f.SetBindings([]KeyBinding{{Key: "x", Desc: "custom"}})
	if bindingKeys(f.Bindings()) != "x" {
		t.Errorf("override not applied: %v", f.Bindings())
	}
	f.SetBindings(nil)
	if bindingKeys(f.Bindings()) == "x" {
		t.Error("nil should restore context bindings")
	}
}

func TestFooter_ViewFitsWidth(t *testing.T) {
	f := NewFooter()
	f.SetWidth(30)
	f.SetContext(FooterContext{SidebarFocused: true})

	view := f.View()
	if w := ansi.StringWidth(view); w > 30 {
		t.Errorf("footer width %d exceeds 30: %q", w, ansi.Strip(view))
	}
	if !strings.Contains(ansi.Strip(view), "tab: chat") {
		t.Errorf("first binding should always fit: %q", ansi.Strip(view))
	}
}

func TestFooter_Flash(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	if f.HasFlash() {
		t.Fatal("no flash initially")
	}

	f.SetFlash("Copied to clipboard", FlashSuccess)
	if !f.HasFlash() {
		t.Fatal("expected flash")
	}
	view := ansi.Strip(f.View())
	if !strings.Contains(view, "Copied to clipboard") || !strings.Contains(view, "✓") {
		t.Errorf("flash not rendered: %q", view)
	}

	if f.ClearIfExpired() {
		t.Error("fresh flash should not expire")
	}
	f.flashMessage.CreatedAt = time.Now().Add(-time.Minute)
	if !f.ClearIfExpired() || f.HasFlash() {
		t.Error("old flash should be cleared")
	}
}

func TestFooter_FlashIcons(t *testing.T) {
	tests := []struct {
		flashType FlashType
		icon      string
	}{
		{FlashInfo, "ℹ"},
		{FlashSuccess, "✓"},
		{FlashWarning, "⚠"},
		{FlashError, "✕"},
	}
	for _, tt := range tests {
		f := NewFooter()
		f.SetWidth(80)
		f.SetFlash("msg", tt.flashType)
		if !strings.Contains(f.View(), tt.icon) {
			t.Errorf("flash type %d missing icon %q", tt.flashType, tt.icon)
		}
		f.ClearFlash()
		if f.HasFlash() {
			t.Error("ClearFlash should remove the message")
		}
	}
}
