package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/nftdesk/internal/keys"
)

// Role identifies who a chat message is from.
type Role string

const (
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
	RoleSystem Role = "system"
)

// Message is one entry in the chat transcript.
type Message struct {
	Role Role
	Text string
}

// Chat represents the right panel with the conversation and input
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	// messages[0] is the welcome banner and survives ClearToWelcome
	messages []Message

	waiting       bool
	waitStartTime time.Time
	spinnerFrame  int
}

// NewChat creates a chat panel whose first message is the welcome banner
func NewChat(welcome string) *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about NFT collections..."
	ti.CharLimit = ChatInputCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; the app intercepts it before the textarea sees it
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, "ctrl+j")

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		messages: []Message{{Role: RoleSystem, Text: welcome}},
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	chatPanelHeight := height - InputTotalHeight
	c.viewport.SetWidth(max(InnerWidth(width), 1))
	c.viewport.SetHeight(max(InnerHeight(chatPanelHeight), 1))
	c.input.SetWidth(max(InnerWidth(width)-InputPaddingWidth, 1))

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// AddMessage appends a message to the transcript
func (c *Chat) AddMessage(role Role, text string) {
	c.messages = append(c.messages, Message{Role: role, Text: text})
	c.updateContent()
}

// ClearToWelcome removes every message except the welcome banner
func (c *Chat) ClearToWelcome() {
	if len(c.messages) > 1 {
		c.messages = c.messages[:1]
	}
	c.updateContent()
}

// Messages returns a copy of the transcript
func (c *Chat) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastBotMessage returns the text of the most recent bot message
func (c *Chat) LastBotMessage() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleBot {
			return c.messages[i].Text, true
		}
	}
	return "", false
}

// GetInput returns the current input text, trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderMessage(msg, wrapWidth))
	}

	if c.waiting {
		sb.WriteString("\n\n")
		sb.WriteString(ChatBotStyle.Render("Bot:"))
		sb.WriteString("\n")
		sb.WriteString(renderTypingIndicator(c.spinnerFrame, time.Since(c.waitStartTime)))
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

func renderMessage(msg Message, width int) string {
	text := strings.TrimSpace(msg.Text)
	switch msg.Role {
	case RoleUser:
		return ChatUserStyle.Render("You:") + "\n" + ChatMessageStyle.Render(wrapText(text, width))
	case RoleBot:
		return ChatBotStyle.Render("Bot:") + "\n" + renderMarkdown(text, width)
	default:
		return ChatSystemStyle.Render(wrapText(text, width))
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(TypingTickMsg); ok {
		return c, c.handleTypingTick()
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		if !c.focused {
			return c, nil
		}
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown, "ctrl+up", "ctrl+down", "home", "end":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	// Mouse wheel and other non-key events scroll the viewport
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
