package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " nftdesk"

// Header represents the top header bar
type Header struct {
	width     int
	apiURL    string
	responder string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAPIURL sets the backend URL shown on the right
func (h *Header) SetAPIURL(url string) {
	h.apiURL = url
}

// SetResponder sets the backend responder name, shown next to the URL
func (h *Header) SetResponder(name string) {
	h.responder = name
}

// View renders the header
func (h *Header) View() string {
	var rightText string
	if h.apiURL != "" {
		rightText = h.apiURL
		if h.responder != "" {
			rightText += " (" + h.responder + ")"
		}
		rightText += " "
	}

	paddingLen := h.width - runewidth.StringWidth(headerTitle) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		rightText = ""
		paddingLen = max(h.width-runewidth.StringWidth(headerTitle), 0)
	}

	return h.renderGradient(headerTitle + strings.Repeat(" ", paddingLen) + rightText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// colorHex formats a color as #RRGGBB.
func colorHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// renderGradient renders content over a primary-to-background gradient.
// The responder suffix is muted.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	startR, startG, startB := parseHexColor(colorHex(ColorPrimary))
	endR, endG, endB := parseHexColor(colorHex(ColorBg))

	mutedStart := -1
	if h.responder != "" {
		mutedStart = strings.Index(content, "("+h.responder+")")
	}

	runes := []rune(content)
	width := len(runes)
	titleLen := len([]rune(headerTitle))
	var result strings.Builder

	byteIdx := 0
	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen)

		if mutedStart >= 0 && byteIdx >= mutedStart {
			style = style.Foreground(ColorTextMuted)
		} else {
			style = style.Foreground(ColorText)
		}

		result.WriteString(style.Render(string(r)))
		byteIdx += len(string(r))
	}

	return result.String()
}
