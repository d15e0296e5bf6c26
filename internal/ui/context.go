package ui

import (
	"github.com/zhubert/nftdesk/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int
}

// NewViewContext returns a ViewContext with fixed header and footer heights.
func NewViewContext() *ViewContext {
	return &ViewContext{
		HeaderHeight: HeaderHeight,
		FooterHeight: FooterHeight,
	}
}

// UpdateTerminalSize recalculates all dimensions when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height

	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.SidebarWidth = width / SidebarWidthRatio
	v.ChatWidth = width - v.SidebarWidth

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}
