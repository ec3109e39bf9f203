package engine

import (
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/save"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
)

// Run shows the start menu and plays a session to completion. It returns
// only on quit, fatal defeat, or an input failure.
func Run(g *state.GameState, bp *world.Blueprint, src rng.Source, hook SaveHook) error {
	out := g.Out
	fmt.Fprintln(out, titleArt)
	if bp.Title != "" {
		fmt.Fprintln(out, bp.Title)
		fmt.Fprintln(out)
	}
	for {
		fmt.Fprintln(out, menuText)
		n, err := prompt.Number(g.Input, out, "Please select an option:", 4)
		if err != nil {
			return err
		}
		switch n {
		case 1:
			name, err := prompt.Name(g.Input, out, "your character", actor.ValidName)
			if err != nil {
				return err
			}
			member, err := actor.NewMember("analyst", name)
			if err != nil {
				return err
			}
			g.Party = []*actor.Qaracter{member}
			w, err := bp.Build()
			if err != nil {
				return err
			}
			if bp.Intro != "" {
				fmt.Fprintln(out, bp.Intro)
			}
			return runLoop(g, w, src, hook)
		case 2:
			token, err := g.Input("Paste your save token to restore the game:")
			if err != nil {
				return err
			}
			snap, err := save.Decode(strings.TrimSpace(token), actor.DecodeMember)
			if err != nil {
				fmt.Fprintln(out, "Unable to restore the game from that token.")
				continue
			}
			w, err := bp.Build()
			if err != nil {
				return err
			}
			if !w.MoveTo(snap.Location) {
				fmt.Fprintln(out, "Unable to restore the game from that token.")
				continue
			}
			save.Commit(g, snap)
			return runLoop(g, w, src, hook)
		case 3:
			fmt.Fprintln(out, helpText)
		case 4:
			return nil
		}
	}
}

func runLoop(g *state.GameState, w *world.World, src rng.Source, hook SaveHook) error {
	m := New(g, w, src)
	m.OnSave = hook
	return m.Loop()
}
