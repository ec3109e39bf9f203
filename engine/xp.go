package engine

import (
	"fmt"
	"io"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/state"
)

const xpPerLevel = 10

// AwardXP adds battle experience to the session total. Every ten accumulated
// points grants one extra health qubit to the lowest-level party member, so
// rewards pull the party up evenly.
func AwardXP(g *state.GameState, out io.Writer, amount int) {
	if amount <= 0 {
		return
	}
	before := g.XP()
	total := before + amount
	g.SetXP(total)
	fmt.Fprintf(out, "The party gains %d experience points.\n", amount)
	for n := total/xpPerLevel - before/xpPerLevel; n > 0; n-- {
		member := lowestLevel(g.Party)
		if member == nil {
			return
		}
		member.AddHP()
		fmt.Fprintf(out, "%s gains a level! Now level %d.\n", member.Name, member.Level())
	}
}

func lowestLevel(party []*actor.Qaracter) *actor.Qaracter {
	var low *actor.Qaracter
	for _, member := range party {
		if low == nil || member.Level() < low.Level() {
			low = member
		}
	}
	return low
}
