package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const testWelcome = "Welcome! Ask me about NFT collections."

func TestNewChat_WelcomeBannerIsFirstMessage(t *testing.T) {
	c := NewChat(testWelcome)

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[0].Text != testWelcome {
		t.Errorf("unexpected banner %+v", msgs[0])
	}
}

func TestChat_AddMessageAppends(t *testing.T) {
	c := NewChat(testWelcome)
	c.AddMessage(RoleUser, "hi")
	c.AddMessage(RoleBot, "hello")
	c.AddMessage(RoleSystem, "Error: boom")

	msgs := c.Messages()
	want := []Message{
		{RoleSystem, testWelcome},
		{RoleUser, "hi"},
		{RoleBot, "hello"},
		{RoleSystem, "Error: boom"},
	}
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(want))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("msgs[%d] = %+v, want %+v", i, msgs[i], want[i])
		}
	}
}

func TestChat_MessagesReturnsCopy(t *testing.T) {
	c := NewChat(testWelcome)
	msgs := c.Messages()
	msgs[0].Text = "mutated"
	if c.Messages()[0].Text != testWelcome {
		t.Error("Messages() should return a copy")
	}
}

func TestChat_ClearToWelcome(t *testing.T) {
	c := NewChat(testWelcome)
	for range 5 {
		c.AddMessage(RoleUser, "x")
	}
	c.ClearToWelcome()

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Text != testWelcome {
		t.Errorf("after clear: %+v", msgs)
	}

	// Idempotent
	c.ClearToWelcome()
	if len(c.Messages()) != 1 {
		t.Error("second clear should keep the banner")
	}
}

func TestChat_LastBotMessage(t *testing.T) {
	c := NewChat(testWelcome)
	if _, ok := c.LastBotMessage(); ok {
		t.Error("no bot message yet")
	}

	c.AddMessage(RoleBot, "first")
	c.AddMessage(RoleUser, "q")
	c.AddMessage(RoleBot, "second")
	c.AddMessage(RoleSystem, "note")

	got, ok := c.LastBotMessage()
	if !ok || got != "second" {
		t.Errorf("LastBotMessage() = %q, %v", got, ok)
	}
}

func TestChat_Input(t *testing.T) {
	c := NewChat(testWelcome)
	c.SetInput("  gm  ")
	if c.GetInput() != "gm" {
		t.Errorf("GetInput() = %q", c.GetInput())
	}
	c.ClearInput()
	if c.GetInput() != "" {
		t.Error("ClearInput should empty the input")
	}
}

func TestChat_TypingIntoFocusedInput(t *testing.T) {
	c := NewChat(testWelcome)
	c.SetSize(60, 20)
	c.SetFocused(true)
	for _, r := range "hey" {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if c.GetInput() != "hey" {
		t.Errorf("GetInput() = %q", c.GetInput())
	}

	c.SetFocused(false)
	c.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if c.GetInput() != "hey" {
		t.Error("unfocused chat should ignore keys")
	}
}

func TestChat_WaitingIndicator(t *testing.T) {
	c := NewChat(testWelcome)
	c.SetSize(60, 20)

	c.SetWaiting(true)
	if !c.IsWaiting() {
		t.Fatal("expected waiting")
	}
	if !strings.Contains(ansi.Strip(c.View()), "Typing...") {
		t.Error("typing indicator should render while waiting")
	}

	_, cmd := c.Update(TypingTickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick while waiting should schedule another tick")
	}

	c.SetWaiting(false)
	if strings.Contains(ansi.Strip(c.View()), "Typing...") {
		t.Error("typing indicator should be hidden")
	}
	if _, cmd := c.Update(TypingTickMsg(time.Now())); cmd != nil {
		t.Error("tick after waiting ends should stop")
	}
}

func TestChat_ViewRendersRoles(t *testing.T) {
	c := NewChat(testWelcome)
	c.SetSize(80, 30)
	c.AddMessage(RoleUser, "What is SuiPunks?")
	c.AddMessage(RoleBot, "**SuiPunks** has 8888 items.")

	view := ansi.Strip(c.View())
	for _, want := range []string{testWelcome, "You:", "What is SuiPunks?", "Bot:", "SuiPunks has 8888 items."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{65 * time.Second, "1m05s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bold", "floor is **0.5 SUI**", []string{"floor is 0.5 SUI"}},
		{"inline code", "call `transfer`", []string{"call transfer"}},
		{"bullet", "- SuiOrigins", []string{"• SuiOrigins"}},
		{"numbered", "2. MoveLoot", []string{"2. MoveLoot"}},
		{"heading", "## Stats", []string{"Stats"}},
		{"link", "[docs](https://sui.io)", []string{"docs", "https://sui.io"}},
		{"code block", "```go\nfmt.Println(1)\n```", []string{"fmt", "Println"}},
		{"unterminated fence", "```\nraw", []string{"raw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(renderMarkdown(tt.input, 60))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderMarkdown(%q) = %q, missing %q", tt.input, got, w)
				}
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	for _, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("keep", 0) != "keep" {
		t.Error("zero width should not wrap")
	}
}
