package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// rawLocation holds a location table before compilation.
type rawLocation struct {
	label string
	table *lua.LTable
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// World { title = "...", intro = "...", start = "label" }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.meta = L.CheckTable(1)
		return 0
	}))

	// Location "label" { ... } is curried: Location("label") returns a
	// function that takes the definition table.
	L.SetGlobal("Location", L.NewFunction(func(L *lua.LState) int {
		label := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.locations = append(coll.locations, rawLocation{label: label, table: tbl})
			return 0
		}))
		return 1
	}))

	// Encounter { probability = 0.3, foes = { ... }, ... } is a tagged
	// pass-through so compile can tell encounters and items apart.
	L.SetGlobal("Encounter", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString("__encounter", lua.LTrue)
		L.Push(tbl)
		return 1
	}))

	// Item { keywords = ..., targets = ..., action = ... }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString("__item", lua.LTrue)
		L.Push(tbl)
		return 1
	}))

	// Foe("kind", "name")
	L.SetGlobal("Foe", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		name := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kind))
		tbl.RawSetString("name", lua.LString(name))
		L.Push(tbl)
		return 1
	}))

	registerEffectHelpers(L)
	registerSynonyms(L)
}

func registerEffectHelpers(L *lua.LState) {
	// Text("...") builds a static message effect.
	L.SetGlobal("Text", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("text"))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// GrantCodex("family", "text") unlocks a quantopedia family.
	L.SetGlobal("GrantCodex", L.NewFunction(func(L *lua.LState) int {
		family := L.CheckString(1)
		text := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("grant_codex"))
		tbl.RawSetString("family", lua.LString(family))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// AwardXP(amount, "text")
	L.SetGlobal("AwardXP", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckNumber(1)
		text := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("award_xp"))
		tbl.RawSetString("amount", amount)
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))
}

// registerSynonyms defines the shared keyword sets usable as item keywords.
func registerSynonyms(L *lua.LState) {
	synonyms := map[string][]string{
		"EXAMINE": {"examine", "read", "study", "inspect"},
		"TALK":    {"talk", "speak", "ask"},
		"TAKE":    {"take", "grab"},
	}
	for name, words := range synonyms {
		tbl := L.NewTable()
		for _, w := range words {
			tbl.Append(lua.LString(w))
		}
		L.SetGlobal(name, tbl)
	}
}
