package actor

import (
	"fmt"

	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/qubit"
)

// Behavior is the strategy object for an autonomous NPC: given a choice draw
// in [0,1) and a target qubit, it performs one action and narrates it. The
// threshold splitting the action choice is variant-specific and lives in the
// concrete behavior so tests can drive it with scripted draws.
type Behavior interface {
	Name() string
	// Value is the experience granted when this NPC is defeated.
	Value() int
	Act(self *Qaracter, t Target, choice float64, src rng.Source) string
}

func npcMeasure(self *Qaracter, t Target, src rng.Source) string {
	return measureNarration(self.DisplayName(), t, t.Qubit().Sample(src, true))
}

// observer measures a random enemy qubit every turn.
type observer struct{}

func (observer) Name() string { return "Observer" }
func (observer) Value() int   { return 1 }

func (observer) Act(self *Qaracter, t Target, choice float64, src rng.Source) string {
	return npcMeasure(self, t, src)
}

// foam is the shared chassis for the foam family: above the threshold it
// slimes the target with a fractional gate, otherwise it measures.
type foam struct {
	name      string
	value     int
	threshold float64
	maxSlime  float64
	verb      string
	gate      func(q *qubit.Qubit, fraction float64)
}

func (f foam) Name() string { return f.name }
func (f foam) Value() int   { return f.value }

func (f foam) Act(self *Qaracter, t Target, choice float64, src rng.Source) string {
	if choice > f.threshold {
		slime := src.Float64() * f.maxSlime
		f.gate(t.Qubit(), slime)
		return fmt.Sprintf("%s %s %s for %0.3f.", self.DisplayName(), f.verb, t.Name(), slime)
	}
	return npcMeasure(self, t, src)
}

// purpleFoam foams the target into a superposition instead of a rotation.
type purpleFoam struct{}

func (purpleFoam) Name() string { return "PurpleFoam" }
func (purpleFoam) Value() int   { return 3 }

func (purpleFoam) Act(self *Qaracter, t Target, choice float64, src rng.Source) string {
	if choice > 0.2 {
		t.Qubit().Superpose()
		return fmt.Sprintf("%s covers %s with foam!", self.DisplayName(), t.Name())
	}
	return npcMeasure(self, t, src)
}

// schrodingerCat scratches targets into superposition or measures them.
type schrodingerCat struct{}

func (schrodingerCat) Name() string { return "SchrodingerCat" }
func (schrodingerCat) Value() int   { return 8 }

func (schrodingerCat) Act(self *Qaracter, t Target, choice float64, src rng.Source) string {
	if choice > 0.5 {
		t.Qubit().Superpose()
		return fmt.Sprintf("%s scratches %s into a superposition!", self.DisplayName(), t.Name())
	}
	return npcMeasure(self, t, src)
}

// npcSpec ties a behavior to its spawn shape: starting level and the gate
// preparation applied to fresh health qubits.
type npcSpec struct {
	behavior Behavior
	level    int
	prep     func(q *Qaracter)
}

var npcKinds = map[string]npcSpec{
	"observer": {behavior: observer{}, level: 1},
	"bluefoam": {
		behavior: foam{
			name: "BlueFoam", value: 2, threshold: 0.2, maxSlime: 0.25,
			verb: "slimes", gate: func(q *qubit.Qubit, f float64) { q.Flip(f) },
		},
		level: 1,
	},
	"greenfoam": {
		behavior: foam{
			name: "GreenFoam", value: 2, threshold: 0.2, maxSlime: 0.25,
			verb: "oozes", gate: func(q *qubit.Qubit, f float64) { q.Phase(f) },
		},
		level: 1,
	},
	"redfoam": {
		behavior: foam{
			name: "RedFoam", value: 3, threshold: 0.2, maxSlime: 0.35,
			verb: "slimes", gate: func(q *qubit.Qubit, f float64) { q.Flip(f) },
		},
		level: 1,
		// Red foam starts in the |1> state and must be flipped down.
		prep: func(q *Qaracter) { q.HP(0).Flip(1.0) },
	},
	"purplefoam": {
		behavior: purpleFoam{},
		level:    1,
		prep:     func(q *Qaracter) { q.HP(0).Superpose() },
	},
	"schrodingercat": {
		behavior: schrodingerCat{},
		level:    5,
		prep: func(q *Qaracter) {
			for i := 0; i < q.Level(); i++ {
				q.HP(i).Superpose()
			}
		},
	},
}

// NewNPC spawns a fresh NPC of the given kind key.
func NewNPC(kindKey, name string) (*Qaracter, error) {
	spec, ok := npcKinds[kindKey]
	if !ok {
		return nil, fmt.Errorf("unknown npc kind %q", kindKey)
	}
	q := newQaracter(name, spec.level)
	q.behavior = spec.behavior
	if spec.prep != nil {
		spec.prep(q)
	}
	return q, nil
}

// KnownNPC reports whether a kind key is registered.
func KnownNPC(kindKey string) bool {
	_, ok := npcKinds[kindKey]
	return ok
}
