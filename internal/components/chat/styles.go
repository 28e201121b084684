package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aeropilot/aeropilot-go/internal/styles"
)

var (
	// ChatContainer is the style for the overall chat container
	ChatContainer = lipgloss.NewStyle().
			Padding(1, 0)

	// EmptyState is shown when there are no messages
	EmptyState = lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true).
			Align(lipgloss.Center)

	// WelcomeText is shown on first load
	WelcomeText = `Welcome to AeroPilot!

Type a question and press Enter to start.

Try:
• "Find airports near London"
• "Plan a route from EGLL to KJFK"
• "What's the weather at Schiphol?"`
)
