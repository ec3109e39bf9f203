package actor

import (
	"fmt"

	"github.com/nharlow/qrpg/engine/rng"
)

// Class is the strategy object for a player-controlled qaracter: the battle
// actions it offers and the help text explaining them.
type Class interface {
	Name() string
	// Actions returns the selectable battle actions at the given level.
	Actions(level int) []BattleAction
	Help() string
}

// BattleAction is one selectable action in a battle turn.
type BattleAction struct {
	Key   string // single-letter menu key
	Label string // menu line, e.g. "Measure enemy qubit."
	// Apply performs the action against the chosen target and returns the
	// narration line.
	Apply func(actorName string, t Target, src rng.Source) string
}

func measureNarration(actorName string, t Target, value bool) string {
	v := 0
	if value {
		v = 1
	}
	return fmt.Sprintf("%s measures %s as |%d>.", actorName, t.Name(), v)
}

// Analyst can measure enemy qubits, and at level 3 gains a non-destructive
// sample.
type Analyst struct{}

func (Analyst) Name() string { return "Analyst" }

func (Analyst) Actions(level int) []BattleAction {
	actions := []BattleAction{
		{
			Key:   "m",
			Label: "Measure enemy qubit.",
			Apply: func(actorName string, t Target, src rng.Source) string {
				return measureNarration(actorName, t, t.Qubit().Sample(src, true))
			},
		},
	}
	if level >= 3 {
		actions = append(actions, BattleAction{
			Key:   "s",
			Label: "Sample enemy qubit.",
			Apply: func(actorName string, t Target, src rng.Source) string {
				v := 0
				if t.Qubit().Sample(src, false) {
					v = 1
				}
				return fmt.Sprintf("%s samples %s as |%d>.", actorName, t.Name(), v)
			},
		})
	}
	return actions
}

func (Analyst) Help() string {
	return "The analyst can measure enemy qubits.  This forces an enemy qubit\n" +
		"into the |0> state or |1> state with a probability based on its\n" +
		"amplitude. Try to measure the enemy qubits as |0> to defeat them."
}

// Engineer attacks with Hadamard and X gates.
type Engineer struct{}

func (Engineer) Name() string { return "Engineer" }

func (Engineer) Actions(level int) []BattleAction {
	return []BattleAction{
		{
			Key:   "h",
			Label: "Attack with H gate.",
			Apply: func(actorName string, t Target, src rng.Source) string {
				t.Qubit().Superpose()
				return fmt.Sprintf("%s hits %s with a Hadamard gate.", actorName, t.Name())
			},
		},
		{
			Key:   "x",
			Label: "Attack with X gate.",
			Apply: func(actorName string, t Target, src rng.Source) string {
				t.Qubit().Flip(1.0)
				return fmt.Sprintf("%s flips %s with an X gate.", actorName, t.Name())
			},
		},
	}
}

func (Engineer) Help() string {
	return "The engineer can apply Hadamard and X gates to enemy qubits.\n" +
		"An X gate flips a qubit between |0> and |1>; a Hadamard gate puts\n" +
		"it into an equal superposition.  Set up enemy qubits so that the\n" +
		"analyst can measure them as |0>."
}

// classes is the player class registry, keyed by serialization key.
var classes = map[string]Class{
	"analyst":  Analyst{},
	"engineer": Engineer{},
}

// NewMember creates a fresh level-1 party member of the given class key.
func NewMember(classKey, name string) (*Qaracter, error) {
	cls, ok := classes[classKey]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", classKey)
	}
	q := newQaracter(name, 1)
	q.class = cls
	return q, nil
}

// NewAnalyst creates a fresh level-1 Analyst.
func NewAnalyst(name string) *Qaracter {
	q, _ := NewMember("analyst", name)
	return q
}

// NewEngineer creates a fresh level-1 Engineer.
func NewEngineer(name string) *Qaracter {
	q, _ := NewMember("engineer", name)
	return q
}
