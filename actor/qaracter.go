// Package actor defines the battle participants: party members (player
// classes) and NPCs (autonomous behaviors). Both share the Qaracter chassis,
// a name plus a roster of qubit health points, and differ only in the
// strategy object attached to them.
package actor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nharlow/qrpg/qubit"
)

// Qaracter is a single battle participant. Party members carry a Class,
// NPCs carry a Behavior; exactly one of the two is set.
type Qaracter struct {
	Name     string
	class    Class
	behavior Behavior
	hp       []*qubit.Qubit
}

var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidName reports whether s is usable as a qaracter name. Names appear
// inside save tokens, so anything that could collide with the token
// delimiters is rejected.
func ValidName(s string) bool {
	return nameRe.MatchString(s)
}

func newQaracter(name string, level int) *Qaracter {
	q := &Qaracter{Name: name}
	for i := 0; i < level; i++ {
		q.hp = append(q.hp, qubit.New())
	}
	return q
}

// Kind returns the class or behavior name, e.g. "Analyst" or "BlueFoam".
func (q *Qaracter) Kind() string {
	if q.class != nil {
		return q.class.Name()
	}
	return q.behavior.Name()
}

// DisplayName is "<name> <kind>", e.g. "Aaronson Analyst".
func (q *Qaracter) DisplayName() string {
	return q.Name + " " + q.Kind()
}

// IsNPC reports whether this qaracter acts autonomously.
func (q *Qaracter) IsNPC() bool {
	return q.behavior != nil
}

// Class returns the player class, or nil for NPCs.
func (q *Qaracter) Class() Class {
	return q.class
}

// Behavior returns the NPC behavior, or nil for party members.
func (q *Qaracter) Behavior() Behavior {
	return q.behavior
}

// Level is the number of health qubits.
func (q *Qaracter) Level() int {
	return len(q.hp)
}

// HP returns the i-th health qubit (0-based).
func (q *Qaracter) HP(i int) *qubit.Qubit {
	return q.hp[i]
}

// AddHP grants an additional health qubit in the |0> state.
func (q *Qaracter) AddHP() {
	q.hp = append(q.hp, qubit.New())
}

// QubitName labels the i-th qubit for narration, e.g. "watcher_1".
func (q *Qaracter) QubitName(i int) string {
	return fmt.Sprintf("%s_%d", q.Name, i+1)
}

// ActiveQubits returns the indices of qubits that have not been measured.
func (q *Qaracter) ActiveQubits() []int {
	var idx []int
	for i, h := range q.hp {
		if !h.Measured() {
			idx = append(idx, i)
		}
	}
	return idx
}

// InBattle reports whether the qaracter can still act: at least one health
// qubit remains unmeasured.
func (q *Qaracter) InBattle() bool {
	return len(q.ActiveQubits()) > 0
}

// Down reports defeat: every qubit measured, with no more than half of them
// observed as |1>.
func (q *Qaracter) Down() bool {
	if q.InBattle() {
		return false
	}
	ones := 0
	for _, h := range q.hp {
		if h.Value() {
			ones++
		}
	}
	return ones*2 <= len(q.hp)
}

// Escaped reports the other terminal fate: fully measured but mostly |1>,
// out of the battle without being defeated.
func (q *Qaracter) Escaped() bool {
	return !q.InBattle() && !q.Down()
}

// StatusLine renders the health summary, e.g. "3QP (0|1> 1|0> 2?)":
// level, then counts of qubits measured |1>, measured |0>, and unmeasured.
func (q *Qaracter) StatusLine() string {
	ones, zeros, open := 0, 0, 0
	for _, h := range q.hp {
		switch {
		case !h.Measured():
			open++
		case h.Value():
			ones++
		default:
			zeros++
		}
	}
	s := fmt.Sprintf("%dQP (%d|1> %d|0> %d?)", len(q.hp), ones, zeros, open)
	if q.Down() {
		s += " *DOWN*"
	} else if q.Escaped() {
		s += " *ESCAPED*"
	}
	return s
}

// Target identifies one qubit of one qaracter as the object of an action.
type Target struct {
	Owner *Qaracter
	Index int
}

// Qubit returns the targeted health qubit.
func (t Target) Qubit() *qubit.Qubit {
	return t.Owner.HP(t.Index)
}

// Name returns the narration label of the targeted qubit.
func (t Target) Name() string {
	return t.Owner.QubitName(t.Index)
}

// ActiveTargets flattens a roster into every targetable (unmeasured) qubit,
// in roster order. Used both for NPC target selection and validity checks.
func ActiveTargets(roster []*Qaracter) []Target {
	var ts []Target
	for _, q := range roster {
		for _, i := range q.ActiveQubits() {
			ts = append(ts, Target{Owner: q, Index: i})
		}
	}
	return ts
}

// displayKey lowercases a kind name for use as a registry/serialization key.
func displayKey(name string) string {
	return strings.ToLower(name)
}
