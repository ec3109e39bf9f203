package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nharlow/qrpg/engine"
	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
)

// rawLine stores an unstyled output line with its classification, so the
// whole transcript can be re-wrapped and re-styled on resize.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // echoed player input
}

// statusInfo is a snapshot of the session taken while the engine is blocked
// on a read, so the status bar never races the game goroutine.
type statusInfo struct {
	location string
	party    []string
	xp       int
}

// outputMsg carries one engine output line into the Update loop.
type outputMsg struct {
	line string
}

// promptMsg signals that the engine is waiting for input.
type promptMsg struct {
	prompt string
	status statusInfo
}

// doneMsg signals that the session ended.
type doneMsg struct {
	err error
}

// Model is the Bubble Tea model for the game TUI.
type Model struct {
	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine
	inputCh  chan string
	awaiting bool
	status   statusInfo

	width    int
	height   int
	ready    bool
	quitting bool
	err      error
}

// New creates a model that feeds player input to the engine over inputCh.
func New(inputCh chan string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		input:   ti,
		history: NewHistory(100),
		inputCh: inputCh,
	}
}

// Run plays a session in a full-screen terminal UI. The synchronous game
// loop runs in its own goroutine; every read blocks it until the player
// submits a line here.
func Run(bp *world.Blueprint, src rng.Source) error {
	inputCh := make(chan string)
	m := New(inputCh)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	go func() {
		out := newLineWriter(func(line string) { p.Send(outputMsg{line: line}) })
		var g *state.GameState
		read := func(q string) (string, error) {
			out.Flush()
			p.Send(promptMsg{prompt: q, status: snapshot(g)})
			line, ok := <-inputCh
			if !ok {
				return "", prompt.ErrExhausted
			}
			return line, nil
		}
		g = state.New(read, out)
		err := engine.Run(g, bp, src, copyToken)
		out.Flush()
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

// copyToken mirrors a fresh save token to the clipboard. Best effort; on a
// headless terminal the printed token still stands.
func copyToken(token string) {
	_ = clipboard.WriteAll(token)
}

func snapshot(g *state.GameState) statusInfo {
	if g == nil {
		return statusInfo{}
	}
	info := statusInfo{location: g.Location, xp: g.XP()}
	for _, member := range g.Party {
		info.party = append(info.party, member.DisplayName()+" "+member.StatusLine())
	}
	return info
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes, and engine messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // status bar + input line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if older, ok := m.history.Older(); ok {
				m.input.SetValue(older)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if newer, ok := m.history.Newer(); ok {
				m.input.SetValue(newer)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m.rawLines = append(m.rawLines, rawLine{text: msg.line, kind: classifyLine(msg.line)})
		m.refreshViewport()

	case promptMsg:
		m.awaiting = true
		m.status = msg.status
		if msg.prompt == "" {
			m.input.Prompt = "> "
		} else {
			m.input.Prompt = msg.prompt + " "
		}

	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter forwards the submitted line to the blocked engine read. An
// empty line is a meaningful answer (it confirms battle selections), so it
// is forwarded too.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if !m.awaiting {
		return m, nil
	}
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if line != "" {
		m.history.Add(line)
	}
	m.rawLines = append(m.rawLines, rawLine{text: m.input.Prompt + line, isInput: true})
	m.refreshViewport()

	m.awaiting = false
	m.inputCh <- line
	return m, nil
}

// refreshViewport re-wraps and re-styles the transcript at the current
// width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := wordwrap.String(rl.text, width)
		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
			continue
		}
		styled = append(styled, renderLine(wrapped, rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full layout: transcript, status bar, input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled (those
// drive input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// lineWriter turns engine writes into per-line program messages. Partial
// lines are buffered until the next newline or an explicit Flush.
type lineWriter struct {
	send func(string)
	buf  strings.Builder
}

func newLineWriter(send func(string)) *lineWriter {
	return &lineWriter{send: send}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			w.send(w.buf.String())
			w.buf.Reset()
		} else {
			w.buf.WriteByte(b)
		}
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *lineWriter) Flush() {
	if w.buf.Len() > 0 {
		w.send(w.buf.String())
		w.buf.Reset()
	}
}
