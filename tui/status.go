package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// locationDisplayName derives a readable name from a location label.
// "classical_hut" -> "Classical Hut".
func locationDisplayName(label string) string {
	words := strings.Split(label, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// current location, experience, and the party's health.
func (m Model) renderStatusBar() string {
	left := " " + locationDisplayName(m.status.location)
	right := fmt.Sprintf("XP:%d ", m.status.xp)

	if len(m.status.party) > 0 {
		partyStr := strings.Join(m.status.party, "  ")
		candidate := fmt.Sprintf("%s | XP:%d ", partyStr, m.status.xp)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Party: %d | XP:%d ", len(m.status.party), m.status.xp)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
