// Package loader loads Lua world content into Go structs at startup. The
// Lua VM is discarded after loading; no Lua runs during play.
package loader

import (
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList reads a field that is either a single string or an array of
// strings (synonym sets expand here).
func stringList(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	}
	return nil
}

var codexFamilies = map[string]int{
	"foam":      actor.CodexFoam,
	"hills":     actor.CodexHills,
	"perimeter": actor.CodexPerimeter,
}

// compile converts all collected Lua data into a Blueprint.
func compile(coll *collector) (*world.Blueprint, error) {
	if coll.meta == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}
	bp := &world.Blueprint{
		Title: getString(coll.meta, "title"),
		Intro: getString(coll.meta, "intro"),
		Start: getString(coll.meta, "start"),
	}
	for _, raw := range coll.locations {
		loc, err := compileLocation(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling location %s: %w", raw.label, err)
		}
		bp.Locations = append(bp.Locations, loc)
	}
	return bp, nil
}

func compileLocation(raw rawLocation) (*world.Location, error) {
	loc := &world.Location{
		Label:       raw.label,
		Title:       getString(raw.table, "title"),
		Description: getString(raw.table, "description"),
	}

	if exits := getTable(raw.table, "exits"); exits != nil {
		loc.Exits = map[world.Direction]string{}
		var err error
		exits.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			vs, vok := v.(lua.LString)
			if !kok || !vok {
				err = fmt.Errorf("exits must map direction names to labels")
				return
			}
			d, ok := world.ParseDirection(string(ks))
			if !ok || d.String() != string(ks) {
				err = fmt.Errorf("unknown direction %q", string(ks))
				return
			}
			loc.Exits[d] = string(vs)
		})
		if err != nil {
			return nil, err
		}
	}

	if encounters := getTable(raw.table, "encounters"); encounters != nil {
		for i := 1; i <= encounters.MaxN(); i++ {
			tbl, ok := encounters.RawGetInt(i).(*lua.LTable)
			if !ok || tbl.RawGetString("__encounter") != lua.LTrue {
				return nil, fmt.Errorf("encounters[%d] is not an Encounter{}", i)
			}
			e, err := compileEncounter(tbl)
			if err != nil {
				return nil, fmt.Errorf("encounter %d: %w", i, err)
			}
			loc.Encounters = append(loc.Encounters, e)
		}
	}

	if items := getTable(raw.table, "items"); items != nil {
		for i := 1; i <= items.MaxN(); i++ {
			tbl, ok := items.RawGetInt(i).(*lua.LTable)
			if !ok || tbl.RawGetString("__item") != lua.LTrue {
				return nil, fmt.Errorf("items[%d] is not an Item{}", i)
			}
			item, err := compileItem(tbl)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			loc.Items = append(loc.Items, item)
		}
	}

	return loc, nil
}

type foeSpec struct {
	kind string
	name string
}

func compileEncounter(tbl *lua.LTable) (*world.Encounter, error) {
	e := &world.Encounter{
		Name:        getString(tbl, "name"),
		Probability: getNumber(tbl, "probability"),
		Description: getString(tbl, "description"),
	}

	foesTbl := getTable(tbl, "foes")
	if foesTbl == nil || foesTbl.MaxN() == 0 {
		return nil, fmt.Errorf("encounter has no foes")
	}
	var foes []foeSpec
	for i := 1; i <= foesTbl.MaxN(); i++ {
		f, ok := foesTbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("foes[%d] is not a Foe()", i)
		}
		spec := foeSpec{kind: getString(f, "kind"), name: getString(f, "name")}
		if !actor.KnownNPC(spec.kind) {
			return nil, fmt.Errorf("unknown foe kind %q", spec.kind)
		}
		foes = append(foes, spec)
	}

	// Fresh roster per trigger so health never leaks between sessions.
	e.Spawn = func() []*actor.Qaracter {
		roster := make([]*actor.Qaracter, 0, len(foes))
		for _, f := range foes {
			npc, err := actor.NewNPC(f.kind, f.name)
			if err != nil {
				continue // kind validated at load time
			}
			roster = append(roster, npc)
		}
		return roster
	}
	return e, nil
}

func compileItem(tbl *lua.LTable) (*world.Item, error) {
	item := &world.Item{
		Keywords:    stringList(tbl, "keywords"),
		Targets:     stringList(tbl, "targets"),
		Description: getString(tbl, "description"),
	}
	if len(item.Keywords) == 0 {
		return nil, fmt.Errorf("item has no keywords")
	}

	actionVal := tbl.RawGetString("action")
	do, err := compileAction(actionVal)
	if err != nil {
		return nil, err
	}
	item.Do = do
	return item, nil
}

// compileAction turns an effect table, or an array of them, into a single
// ActionFunc. Multiple effects run in order with their text joined by
// newlines.
func compileAction(v lua.LValue) (world.ActionFunc, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("item has no action")
	}
	if tbl.MaxN() > 0 {
		var effects []world.ActionFunc
		for i := 1; i <= tbl.MaxN(); i++ {
			inner, ok := tbl.RawGetInt(i).(*lua.LTable)
			if !ok {
				return nil, fmt.Errorf("action[%d] is not an effect", i)
			}
			fn, err := compileEffect(inner)
			if err != nil {
				return nil, err
			}
			effects = append(effects, fn)
		}
		return func(g *state.GameState, w *world.World) string {
			var lines []string
			for _, fn := range effects {
				if msg := fn(g, w); msg != "" {
					lines = append(lines, msg)
				}
			}
			return strings.Join(lines, "\n")
		}, nil
	}
	return compileEffect(tbl)
}

func compileEffect(tbl *lua.LTable) (world.ActionFunc, error) {
	text := getString(tbl, "text")
	switch kind := getString(tbl, "type"); kind {
	case "text":
		return func(*state.GameState, *world.World) string {
			return text
		}, nil
	case "grant_codex":
		family := getString(tbl, "family")
		bit, ok := codexFamilies[family]
		if !ok {
			return nil, fmt.Errorf("unknown codex family %q", family)
		}
		return func(g *state.GameState, _ *world.World) string {
			g.SetCodex(bit)
			return text
		}, nil
	case "award_xp":
		amount := int(getNumber(tbl, "amount"))
		return func(g *state.GameState, _ *world.World) string {
			engine.AwardXP(g, g.Out, amount)
			return text
		}, nil
	}
	return nil, fmt.Errorf("unknown effect type %q", getString(tbl, "type"))
}
