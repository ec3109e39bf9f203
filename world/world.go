// Package world models the explorable map: labeled locations joined by
// directional exits, items that respond to typed keywords, and probabilistic
// encounters that spawn battles. A Blueprint is the immutable map definition;
// Build stamps out a fresh mutable World per session.
package world

import (
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/battle"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/state"
)

// Direction is one of the six travel directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	Up
	Down
)

var directionNames = [...]string{"north", "east", "south", "west", "up", "down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection resolves a lowercased word as a direction by prefix.
// Every single-letter prefix is already unique across the six names.
func ParseDirection(word string) (Direction, bool) {
	if word == "" {
		return 0, false
	}
	for i, name := range directionNames {
		if strings.HasPrefix(name, word) {
			return Direction(i), true
		}
	}
	return 0, false
}

// ActionFunc runs an item action and returns the text to show.
type ActionFunc func(g *state.GameState, w *World) string

// Item is an interactive prop in a location. Keywords are the verbs it
// answers to; Targets are the nouns it accepts after the verb. An item with
// no Targets acts on the bare keyword.
type Item struct {
	Keywords    []string
	Targets     []string
	Do          ActionFunc
	Description string
}

// Encounter is a chance event attached to a location. When triggered it
// spawns a fresh enemy roster and hands back a battle ready to run.
type Encounter struct {
	Name        string
	Probability float64
	Description string
	Spawn       func() []*actor.Qaracter
}

// WillTrigger draws once and reports whether the encounter fires.
func (e *Encounter) WillTrigger(src rng.Source) bool {
	return src.Float64() < e.Probability
}

// Initiate spawns the roster and creates the battle. The encounter itself is
// not consumed here; the caller removes it only after the battle runs.
func (e *Encounter) Initiate(g *state.GameState, src rng.Source) *battle.Battle {
	return battle.New(g, e.Spawn(), src)
}

// Location is one room on the map.
type Location struct {
	Label       string
	Title       string
	Description string
	Exits       map[Direction]string
	Encounters  []*Encounter
	Items       []*Item
}

// Describe renders the location: title, description, item blurbs, and the
// exits line.
func (l *Location) Describe() string {
	var sb strings.Builder
	if l.Title != "" {
		sb.WriteString(l.Title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.Description)
	for _, item := range l.Items {
		if item.Description != "" {
			sb.WriteString("\n")
			sb.WriteString(item.Description)
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(l.ExitsLine())
	return sb.String()
}

// ExitsLine lists the exits in fixed direction order.
func (l *Location) ExitsLine() string {
	var names []string
	for d := North; d <= Down; d++ {
		if _, ok := l.Exits[d]; ok {
			names = append(names, d.String())
		}
	}
	if len(names) == 0 {
		return "Exits: none."
	}
	return "Exits: " + strings.Join(names, ", ") + "."
}

// TryAction matches the typed words against the location's items. The first
// word is the keyword, the second (if any) the target. A keyword match with
// a missing or unknown target answers "<keyword> what?". The second return
// is false when no item claims the keyword.
func (l *Location) TryAction(g *state.GameState, w *World, words []string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}
	keyword := words[0]
	matched := false
	for _, item := range l.Items {
		if !contains(item.Keywords, keyword) {
			continue
		}
		matched = true
		if len(item.Targets) == 0 {
			return item.Do(g, w), true
		}
		if len(words) > 1 && contains(item.Targets, words[1]) {
			return item.Do(g, w), true
		}
	}
	if matched {
		return fmt.Sprintf("%s what?", keyword), true
	}
	return "", false
}

// RemoveEncounter deletes the encounter from the location so it cannot fire
// again.
func (l *Location) RemoveEncounter(e *Encounter) {
	for i, have := range l.Encounters {
		if have == e {
			l.Encounters = append(l.Encounters[:i], l.Encounters[i+1:]...)
			return
		}
	}
}

func contains(list []string, word string) bool {
	for _, have := range list {
		if have == word {
			return true
		}
	}
	return false
}

// World is one session's live map state.
type World struct {
	Locations map[string]*Location
	Current   *Location
}

// Move follows an exit from the current location. It reports false, leaving
// the position unchanged, when the current location has no such exit.
func (w *World) Move(d Direction) bool {
	label, ok := w.Current.Exits[d]
	if !ok {
		return false
	}
	return w.MoveTo(label)
}

// MoveTo jumps to a location by label. Used when restoring a saved game.
func (w *World) MoveTo(label string) bool {
	loc, ok := w.Locations[label]
	if !ok {
		return false
	}
	w.Current = loc
	return true
}

// Blueprint is the static definition of a world, as produced by the content
// loader.
type Blueprint struct {
	Title     string
	Intro     string
	Start     string
	Locations []*Location
}

// Build creates a fresh World from the blueprint. Locations are copied so
// that consuming an encounter in one session never bleeds into another.
func (b *Blueprint) Build() (*World, error) {
	w := &World{Locations: make(map[string]*Location, len(b.Locations))}
	for _, src := range b.Locations {
		loc := *src
		loc.Encounters = append([]*Encounter(nil), src.Encounters...)
		if _, dup := w.Locations[loc.Label]; dup {
			return nil, fmt.Errorf("world: duplicate location label %q", loc.Label)
		}
		w.Locations[loc.Label] = &loc
	}
	if !w.MoveTo(b.Start) {
		return nil, fmt.Errorf("world: start location %q not defined", b.Start)
	}
	return w, nil
}
