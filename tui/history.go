// Package tui provides a Bubble Tea terminal front-end for the game.
package tui

// History keeps recent input lines for up/down recall.
type History struct {
	lines  []string
	limit  int
	cursor int // len(lines) means not navigating
}

// NewHistory creates a history buffer holding at most limit lines.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add records a line. Repeats of the most recent line are dropped.
func (h *History) Add(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		h.Reset()
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
	h.Reset()
}

// Older steps back in time and returns the line there.
func (h *History) Older() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Newer steps forward; the second return is false once navigation runs past
// the most recent line, meaning the input should go back to being blank.
func (h *History) Newer() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return "", false
	}
	return h.lines[h.cursor], true
}

// Reset leaves navigation mode.
func (h *History) Reset() {
	h.cursor = len(h.lines)
}
