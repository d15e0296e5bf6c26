package ui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// TypingTickMsg advances the typing indicator animation
type TypingTickMsg time.Time

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// TypingTick returns a command that sends a tick message after a delay
func TypingTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// SetWaiting shows or hides the typing indicator
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
		c.spinnerFrame = 0
	}
	c.updateContent()
}

// IsWaiting returns whether the typing indicator is visible
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

func (c *Chat) handleTypingTick() tea.Cmd {
	if !c.waiting {
		return nil
	}
	c.spinnerFrame = (c.spinnerFrame + 1) % len(spinnerFrames)
	c.updateContent()
	return TypingTick()
}

// renderTypingIndicator renders "✺ Typing... 3s"
func renderTypingIndicator(frameIdx int, elapsed time.Duration) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	stopwatchStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	return spinnerStyle.Render(frame) + " " +
		ChatTypingStyle.Render("Typing... ") +
		stopwatchStyle.Render(formatElapsed(elapsed))
}

// formatElapsed formats a wait duration as "3s" or "1m05s"
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
