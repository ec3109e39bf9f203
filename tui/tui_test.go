package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory(3)
	h.Add("north")
	h.Add("east")
	h.Add("east") // duplicate dropped
	h.Add("status")

	if got, ok := h.Older(); !ok || got != "status" {
		t.Fatalf("Older() = %q, %v", got, ok)
	}
	if got, ok := h.Older(); !ok || got != "east" {
		t.Fatalf("Older() = %q, %v", got, ok)
	}
	if got, ok := h.Older(); !ok || got != "north" {
		t.Fatalf("Older() = %q, %v", got, ok)
	}
	// Bottom of history: stays put.
	if got, ok := h.Older(); !ok || got != "north" {
		t.Fatalf("Older() past oldest = %q, %v", got, ok)
	}
	if got, ok := h.Newer(); !ok || got != "east" {
		t.Fatalf("Newer() = %q, %v", got, ok)
	}
	if got, ok := h.Newer(); !ok || got != "status" {
		t.Fatalf("Newer() = %q, %v", got, ok)
	}
	if _, ok := h.Newer(); ok {
		t.Fatal("Newer() past most recent should report false")
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 5; i++ {
		h.Add(fmt.Sprintf("cmd%d", i))
	}
	if got, _ := h.Older(); got != "cmd4" {
		t.Fatalf("latest = %q", got)
	}
	if got, _ := h.Older(); got != "cmd3" {
		t.Fatalf("second = %q", got)
	}
	// Oldest entries were evicted.
	if got, _ := h.Older(); got != "cmd3" {
		t.Fatalf("Older() past capacity = %q", got)
	}
}

func TestLineWriterSplitsLines(t *testing.T) {
	var got []string
	w := newLineWriter(func(line string) { got = append(got, line) })

	fmt.Fprintln(w, "first")
	fmt.Fprint(w, "second\nthird")
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("lines = %q", got)
	}
	w.Flush()
	if len(got) != 3 || got[2] != "third" {
		t.Fatalf("after flush: %q", got)
	}
	// Flushing with nothing buffered emits nothing.
	w.Flush()
	if len(got) != 3 {
		t.Fatalf("empty flush emitted a line: %q", got)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Exits: north, east.", kindExits},
		{"------------------------------------------------------------", kindBattle},
		{"Aaronson turn:", kindBattle},
		{"You cannot go that way.", kindError},
		{"Invalid number selected.", kindError},
		{"hut;1;Aaronson,analyst,1,a1~0~0~0", kindToken},
		{"A small hut at the edge of the frontier.", kindNarrative},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestEnterForwardsInputToEngine(t *testing.T) {
	ch := make(chan string, 1)
	m := New(ch)
	next0, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next0.(Model)

	// No read pending: enter is a no-op.
	m.input.SetValue("north")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	select {
	case line := <-ch:
		t.Fatalf("forwarded %q with no pending read", line)
	default:
	}

	// A prompt arrives, then enter forwards the line.
	next, _ = m.Update(promptMsg{prompt: ""})
	m = next.(Model)
	m.input.SetValue("north")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if got := <-ch; got != "north" {
		t.Fatalf("forwarded %q, want north", got)
	}
	if m.awaiting {
		t.Fatal("still awaiting after forwarding")
	}

	// Empty lines are forwarded too: they confirm battle selections.
	next, _ = m.Update(promptMsg{prompt: "Choose your action:"})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if got := <-ch; got != "" {
		t.Fatalf("forwarded %q, want empty confirm", got)
	}
}

func TestLocationDisplayName(t *testing.T) {
	if got := locationDisplayName("classical_hut"); got != "Classical Hut" {
		t.Errorf("locationDisplayName = %q", got)
	}
	if got := locationDisplayName("hut"); got != "Hut" {
		t.Errorf("locationDisplayName = %q", got)
	}
}

func TestDoneEndsProgram(t *testing.T) {
	m := New(make(chan string))
	next, cmd := m.Update(doneMsg{err: nil})
	m = next.(Model)
	if !m.quitting {
		t.Fatal("model not quitting after doneMsg")
	}
	if cmd == nil {
		t.Fatal("doneMsg produced no quit command")
	}
	if m.View() != "" {
		t.Errorf("quitting view = %q, want empty", m.View())
	}
}

func TestStatusBarFitsWidth(t *testing.T) {
	m := New(make(chan string))
	m.width = 60
	m.status = statusInfo{
		location: "hut",
		party:    []string{"Aaronson Analyst 1QP (0|1> 0|0> 1?)"},
		xp:       12,
	}
	bar := m.renderStatusBar()
	if !strings.Contains(bar, "Hut") {
		t.Errorf("status bar missing location: %q", bar)
	}
	if !strings.Contains(bar, "XP:12") {
		t.Errorf("status bar missing experience: %q", bar)
	}
}
