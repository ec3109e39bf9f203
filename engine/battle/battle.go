// Package battle runs a turn-based fight between the player party and an NPC
// roster. Each round, every living party member acts (player-chosen action
// against a chosen enemy qubit), then every living NPC acts autonomously.
// Liveness is re-evaluated after each side's phase; on a mutual wipe in the
// same round, player defeat is checked first.
package battle

import (
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/state"
)

// Result is the battle outcome.
type Result int

const (
	Active Result = iota
	PlayersWon
	PlayersDown
)

const divider = "------------------------------------------------------------"

// Battle is one fight in progress. The party is borrowed from the session
// (health mutations persist after the battle); the enemy roster is owned by
// the battle and discarded with it.
type Battle struct {
	state   *state.GameState
	enemies []*actor.Qaracter
	src     rng.Source
	result  Result
}

// New creates a battle between the session's party and the given enemies.
func New(g *state.GameState, enemies []*actor.Qaracter, src rng.Source) *Battle {
	return &Battle{state: g, enemies: enemies, src: src}
}

// Result returns the current outcome.
func (b *Battle) Result() Result {
	return b.result
}

// XP returns the aggregate experience from defeated enemies.
func (b *Battle) XP() int {
	total := 0
	for _, e := range b.enemies {
		if e.Down() {
			total += e.Behavior().Value()
		}
	}
	return total
}

// Loop runs rounds until one side is out of the battle and returns the
// terminal result. An error means the input source failed mid-battle.
func (b *Battle) Loop() (Result, error) {
	for b.result == Active {
		if err := b.playerPhase(); err != nil {
			return b.result, err
		}
		if b.evaluate() {
			break
		}
		b.npcPhase()
		if b.evaluate() {
			break
		}
	}
	b.printSummary()
	return b.result, nil
}

// evaluate re-checks liveness and records a terminal result if one side is
// out. Player defeat is checked first: a simultaneous wipe is a loss.
func (b *Battle) evaluate() bool {
	if !anyInBattle(b.state.Party) {
		b.result = PlayersDown
		return true
	}
	if !anyInBattle(b.enemies) {
		b.result = PlayersWon
		return true
	}
	return false
}

func anyInBattle(roster []*actor.Qaracter) bool {
	for _, q := range roster {
		if q.InBattle() {
			return true
		}
	}
	return false
}

func (b *Battle) playerPhase() error {
	for _, member := range b.state.Party {
		if b.decided() {
			return nil
		}
		if !member.InBattle() {
			continue
		}
		if err := b.takePlayerTurn(member); err != nil {
			return err
		}
	}
	return nil
}

// decided reports whether either side is already out, without committing a
// result (evaluate owns the tie-break).
func (b *Battle) decided() bool {
	return !anyInBattle(b.state.Party) || !anyInBattle(b.enemies)
}

func (b *Battle) takePlayerTurn(member *actor.Qaracter) error {
	out := b.state.Out
	b.printHUD()

	actions := member.Class().Actions(member.Level())
	fmt.Fprintf(out, "%s turn:\n", member.Name)
	for _, a := range actions {
		fmt.Fprintf(out, "%s) %s\n", a.Key, a.Label)
	}
	fmt.Fprintln(out, "q) Read Quantopedia.")
	fmt.Fprintln(out, "?) Help.")

	var chosen actor.BattleAction
	var target actor.Target

	collect := func() error {
		act, err := b.chooseAction(member, actions)
		if err != nil {
			return err
		}
		t, err := b.chooseTarget()
		if err != nil {
			return err
		}
		chosen, target = act, t
		return nil
	}
	if err := prompt.Confirm(b.state.Input, out, collect); err != nil {
		return err
	}

	fmt.Fprintln(out, chosen.Apply(member.Name, target, b.src))
	return nil
}

func (b *Battle) chooseAction(member *actor.Qaracter, actions []actor.BattleAction) (actor.BattleAction, error) {
	out := b.state.Out
	for {
		line, err := b.state.Input("Choose your action:")
		if err != nil {
			return actor.BattleAction{}, err
		}
		switch line {
		case "?":
			fmt.Fprintln(out, member.Class().Help())
			continue
		case "q":
			b.printCodex()
			continue
		}
		for _, a := range actions {
			if a.Key == line {
				return a, nil
			}
		}
		fmt.Fprintln(out, "Invalid action selected.")
	}
}

// chooseTarget asks for an enemy number and then a qubit number, retrying
// until the selection names a live qubit.
func (b *Battle) chooseTarget() (actor.Target, error) {
	out := b.state.Out
	for {
		n, err := prompt.Number(b.state.Input, out, "Choose an enemy to target:", len(b.enemies))
		if err != nil {
			return actor.Target{}, err
		}
		enemy := b.enemies[n-1]
		if !enemy.InBattle() {
			fmt.Fprintln(out, "Invalid number selected.")
			continue
		}
		m, err := prompt.Number(b.state.Input, out, "Choose an enemy qubit to target:", enemy.Level())
		if err != nil {
			return actor.Target{}, err
		}
		if enemy.HP(m - 1).Measured() {
			fmt.Fprintln(out, "Invalid number selected.")
			continue
		}
		return actor.Target{Owner: enemy, Index: m - 1}, nil
	}
}

// printCodex shows the quantopedia entry for each enemy kind present, gated
// by the session's unlock bits.
func (b *Battle) printCodex() {
	out := b.state.Out
	seen := map[string]bool{}
	for _, e := range b.enemies {
		kind := e.Kind()
		if seen[kind] {
			continue
		}
		seen[kind] = true
		entry, ok := actor.CodexFor(kind)
		if !ok || !b.state.HasCodex(entry.Bit) {
			fmt.Fprintf(out, "You do not have information on %s yet.\n", kind)
			continue
		}
		fmt.Fprintln(out, entry.Entry)
	}
}

func (b *Battle) npcPhase() {
	for _, enemy := range b.enemies {
		if !enemy.InBattle() {
			continue
		}
		targets := actor.ActiveTargets(b.state.Party)
		if len(targets) == 0 {
			return
		}
		t := targets[b.src.Intn(len(targets))]
		choice := b.src.Float64()
		fmt.Fprintln(b.state.Out, enemy.Behavior().Act(enemy, t, choice, b.src))
	}
}

// printHUD renders the two-column battle status: party on the left, the
// numbered enemy roster on the right.
func (b *Battle) printHUD() {
	out := b.state.Out
	fmt.Fprintln(out, divider)
	rows := len(b.state.Party)
	if len(b.enemies) > rows {
		rows = len(b.enemies)
	}
	for i := 0; i < rows; i++ {
		var l1, l2, r1, r2 string
		if i < len(b.state.Party) {
			p := b.state.Party[i]
			l1, l2 = p.DisplayName(), p.StatusLine()
		}
		if i < len(b.enemies) {
			e := b.enemies[i]
			r1 = fmt.Sprintf("%d) %s", i+1, e.DisplayName())
			r2 = e.StatusLine()
		}
		fmt.Fprintln(out, column(l1, r1))
		fmt.Fprintln(out, column(l2, r2))
	}
	fmt.Fprintln(out, divider)
}

func column(left, right string) string {
	return strings.TrimRight(fmt.Sprintf("%-40s%s", left, right), " ")
}

func (b *Battle) printSummary() {
	out := b.state.Out
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, "                    Battle Summary")
	fmt.Fprintln(out)
	if b.result == PlayersWon {
		fmt.Fprintln(out, "The battle is over.  You have won the battle!")
	} else {
		fmt.Fprintln(out, "The battle is over.  You have lost the battle!")
	}
	rows := len(b.state.Party)
	if len(b.enemies) > rows {
		rows = len(b.enemies)
	}
	for i := 0; i < rows; i++ {
		var left, right string
		if i < len(b.state.Party) {
			p := b.state.Party[i]
			left = fmt.Sprintf("%s: %s", p.DisplayName(), fate(p))
		}
		if i < len(b.enemies) {
			e := b.enemies[i]
			right = fmt.Sprintf("%s %s", e.DisplayName(), fate(e))
		}
		fmt.Fprintln(out, column(left, right))
	}
	fmt.Fprintln(out, divider)
}

func fate(q *actor.Qaracter) string {
	switch {
	case q.Down():
		return "DOWN"
	case q.Escaped():
		return "ESCAPED"
	default:
		return "Still up."
	}
}
