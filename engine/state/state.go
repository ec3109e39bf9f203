// Package state holds the mutable session root: the party, the current
// location label, and the flag bag. Exactly one GameState is live per
// session, owned by the main loop and mutated in place by battles and by
// save-token loads.
package state

import (
	"io"
	"strconv"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/prompt"
)

// Flag keys with engine-level meaning.
const (
	codexKey = "qp" // decimal bitmask of unlocked quantopedia entries
	xpKey    = "xp" // accumulated party experience
)

// GameState is the complete mutable game state for one session.
type GameState struct {
	Party    []*actor.Qaracter
	Location string // current location label
	Flags    *Flags

	// LastInput is the most recent raw input line. Transient: it is kept for
	// contextual actions but is not persisted.
	LastInput string

	// Input reads one line from the session's input source; Out receives all
	// user-visible text.
	Input prompt.Func
	Out   io.Writer
}

// New creates an empty session bound to the given I/O.
func New(in prompt.Func, out io.Writer) *GameState {
	return &GameState{
		Flags: NewFlags(),
		Input: in,
		Out:   out,
	}
}

// SetCodex sets a quantopedia unlock bit.
func (g *GameState) SetCodex(bit int) {
	cur := 0
	if v, ok := g.Flags.Get(codexKey); ok {
		cur, _ = strconv.Atoi(v)
	}
	g.Flags.Set(codexKey, strconv.Itoa(cur|bit))
}

// HasCodex reports whether a quantopedia unlock bit is set.
func (g *GameState) HasCodex(bit int) bool {
	v, ok := g.Flags.Get(codexKey)
	if !ok {
		return false
	}
	cur, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	return cur&bit != 0
}

// XP returns the party's accumulated experience.
func (g *GameState) XP() int {
	v, ok := g.Flags.Get(xpKey)
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}

// SetXP stores the party's accumulated experience.
func (g *GameState) SetXP(n int) {
	g.Flags.Set(xpKey, strconv.Itoa(n))
}

// Flag is one key/value pair from the flag bag.
type Flag struct {
	Key, Value string
}

// Flags is a string-to-string mapping that remembers insertion order, so a
// session's save token is byte-stable across save/load cycles.
type Flags struct {
	keys []string
	vals map[string]string
}

// NewFlags creates an empty flag bag.
func NewFlags() *Flags {
	return &Flags{vals: make(map[string]string)}
}

// Set stores a value. New keys append; existing keys keep their position.
func (f *Flags) Set(key, value string) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = value
}

// Get looks up a value.
func (f *Flags) Get(key string) (string, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Len returns the number of flags.
func (f *Flags) Len() int {
	return len(f.keys)
}

// All returns the flags in insertion order.
func (f *Flags) All() []Flag {
	out := make([]Flag, 0, len(f.keys))
	for _, k := range f.keys {
		out = append(out, Flag{Key: k, Value: f.vals[k]})
	}
	return out
}
