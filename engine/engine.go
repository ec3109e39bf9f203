// Package engine drives the game session: the exploring loop that renders
// locations, resolves input into movement, contextual actions, or commands,
// fires encounters, and hands control to the battle loop when one triggers.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/battle"
	"github.com/nharlow/qrpg/engine/parser"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/save"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
)

// Phase is the session's top-level state.
type Phase int

const (
	Exploring Phase = iota
	InBattle
	Ended
)

// SaveHook is called with every freshly emitted save token, letting a
// front-end mirror it somewhere convenient (e.g. the clipboard).
type SaveHook func(token string)

// MainLoop owns the session for its duration. The party lives in State; the
// battle loop borrows it when an encounter fires.
type MainLoop struct {
	State  *state.GameState
	World  *world.World
	Src    rng.Source
	OnSave SaveHook

	phase    Phase
	defeated bool
}

// New creates a loop over an already-populated session and world.
func New(g *state.GameState, w *world.World, src rng.Source) *MainLoop {
	g.Location = w.Current.Label
	return &MainLoop{State: g, World: w, Src: src}
}

// Phase returns the session's current phase.
func (m *MainLoop) Phase() Phase {
	return m.phase
}

// Defeated reports whether the session ended in party defeat rather than a
// voluntary quit.
func (m *MainLoop) Defeated() bool {
	return m.defeated
}

// Loop runs the session until quit or fatal defeat. The returned error is an
// input failure (an exhausted script counts); game outcomes are not errors.
func (m *MainLoop) Loop() error {
	out := m.State.Out
	render := true
	sweep := true
	for m.phase != Ended {
		if render {
			fmt.Fprintln(out, m.World.Current.Describe())
			if sweep {
				// Encounters are evaluated once per arrival. A battle
				// reprints the location but does not roll the rest of
				// the roster until the party comes back.
				sweep = false
				fought, err := m.runEncounters()
				if err != nil {
					return err
				}
				if fought {
					continue
				}
			}
		}
		render = true

		line, err := m.State.Input("")
		if err != nil {
			return err
		}
		m.State.LastInput = line
		words := strings.Fields(line)
		if len(words) == 0 {
			render = false
			continue
		}

		if d, ok := world.ParseDirection(strings.ToLower(words[0])); ok {
			if m.World.Move(d) {
				sweep = true
			} else {
				fmt.Fprintln(out, "You cannot go that way.")
				render = false
			}
			m.State.Location = m.World.Current.Label
			continue
		}

		lowered := make([]string, len(words))
		for i, w := range words {
			lowered[i] = strings.ToLower(w)
		}
		if msg, handled := m.World.Current.TryAction(m.State, m.World, lowered); handled {
			fmt.Fprintln(out, msg)
			render = false
			continue
		}

		cmd, err := parser.Parse(words[0])
		if errors.Is(err, parser.ErrAmbiguous) {
			fmt.Fprintln(out, parser.HelpText())
			render = false
			continue
		}
		switch cmd {
		case parser.None:
			fmt.Fprintln(out, "I did not understand that command.")
			render = false
		case parser.Quit:
			m.phase = Ended
		case parser.Look:
			// fall through to the re-render
		case parser.Status:
			m.printStatus()
			render = false
		case parser.Help:
			fmt.Fprintln(out, parser.HelpText())
			render = false
		case parser.Quantopedia:
			m.printCodex()
			render = false
		case parser.Save:
			m.save()
			render = false
		case parser.Load:
			loaded, err := m.load()
			if err != nil {
				return err
			}
			render = loaded
			sweep = loaded
		}
	}
	return nil
}

// runEncounters evaluates the current location's encounters in roster order
// and runs the first one that fires. An encounter is consumed only once its
// battle has actually run; untriggered ones stay for later visits.
func (m *MainLoop) runEncounters() (bool, error) {
	for _, e := range m.World.Current.Encounters {
		if !e.WillTrigger(m.Src) {
			continue
		}
		if e.Description != "" {
			fmt.Fprintln(m.State.Out, e.Description)
		}
		m.phase = InBattle
		b := e.Initiate(m.State, m.Src)
		result, err := b.Loop()
		m.World.Current.RemoveEncounter(e)
		m.phase = Exploring
		if err != nil {
			return true, err
		}
		if result == battle.PlayersDown {
			m.epitaph()
			m.defeated = true
			m.phase = Ended
			return true, nil
		}
		AwardXP(m.State, m.State.Out, b.XP())
		return true, nil
	}
	return false, nil
}

func (m *MainLoop) epitaph() {
	out := m.State.Out
	fmt.Fprintln(out, ripArt)
	fmt.Fprintln(out, "You have been measured and were found wanting.")
	fmt.Fprintln(out, "Better luck next repetition.")
}

func (m *MainLoop) printStatus() {
	out := m.State.Out
	fmt.Fprintln(out, "Party status:")
	for _, member := range m.State.Party {
		fmt.Fprintf(out, "  %s: %s\n", member.DisplayName(), member.StatusLine())
	}
	fmt.Fprintf(out, "Experience: %d\n", m.State.XP())
}

// printCodex lists every quantopedia entry the party has unlocked.
func (m *MainLoop) printCodex() {
	out := m.State.Out
	shown := false
	for _, entry := range actor.Codex() {
		if !m.State.HasCodex(entry.Bit) {
			continue
		}
		fmt.Fprintf(out, "%s:\n%s\n", entry.Kind, entry.Entry)
		shown = true
	}
	if !shown {
		fmt.Fprintln(out, "You have not discovered any quantopedia entries yet.")
	}
}

func (m *MainLoop) save() {
	out := m.State.Out
	m.State.Location = m.World.Current.Label
	token := save.Encode(m.State)
	fmt.Fprintln(out, "Use this token to return to this point in the game:")
	fmt.Fprintln(out, token)
	if m.OnSave != nil {
		m.OnSave(token)
	}
}

// load reads a pasted token and restores the session from it. Nothing about
// the live session changes unless the whole token decodes and names a known
// location.
func (m *MainLoop) load() (bool, error) {
	out := m.State.Out
	token, err := m.State.Input("Paste your save token to restore the game:")
	if err != nil {
		return false, err
	}
	snap, err := save.Decode(strings.TrimSpace(token), actor.DecodeMember)
	if err != nil {
		fmt.Fprintln(out, "Unable to restore the game from that token.")
		return false, nil
	}
	if !m.World.MoveTo(snap.Location) {
		fmt.Fprintln(out, "Unable to restore the game from that token.")
		return false, nil
	}
	save.Commit(m.State, snap)
	return true, nil
}
