package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTitle = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleBattle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleToken = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindExits
	kindBattle
	kindError
	kindToken
)

// classifyLine determines how an engine output line should be styled.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "----"),
		trimmed == "Battle Summary",
		strings.HasSuffix(trimmed, "turn:"):
		return kindBattle
	case strings.HasPrefix(line, "You cannot go that way."),
		strings.HasPrefix(line, "I did not understand"),
		strings.HasPrefix(line, "Invalid"),
		strings.HasPrefix(line, "Unable to restore"):
		return kindError
	case strings.Contains(line, ";") && !strings.Contains(line, " "):
		// Save tokens are the only all-delimiter lines the engine prints.
		return kindToken
	default:
		return kindNarrative
	}
}

func renderLine(line string, kind lineKind) string {
	switch kind {
	case kindExits:
		return styleExits.Render(line)
	case kindBattle:
		return styleBattle.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindToken:
		return styleToken.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}
