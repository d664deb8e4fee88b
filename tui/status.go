package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current room, inventory, and turn count.
func (m Model) renderStatusBar() string {
	status := m.engine.Status()

	left := fmt.Sprintf(" %s", status.Room)
	right := fmt.Sprintf("T:%d ", status.Turns)

	// Show inventory items if they fit, otherwise just a count.
	if len(status.Inventory) > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(status.Inventory, ", "), status.Turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(status.Inventory), status.Turns)
		}
	}
	if status.Won {
		left += " | Victory"
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
