package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/engine/state"
	"github.com/nharlow/qrpg/world"
)

func testBlueprint() *world.Blueprint {
	return &world.Blueprint{
		Title: "Test Frontier",
		Start: "hut",
		Locations: []*world.Location{
			{
				Label:       "hut",
				Title:       "The Hut",
				Description: "A small hut at the edge of the frontier.",
				Exits:       map[world.Direction]string{world.East: "field"},
			},
			{
				Label:       "field",
				Title:       "The Field",
				Description: "An open field.",
				Exits:       map[world.Direction]string{world.West: "hut"},
			},
		},
	}
}

func newSession(t *testing.T, out *bytes.Buffer, lines ...string) *state.GameState {
	t.Helper()
	g := state.New(prompt.FromLines(lines...), out)
	member, err := actor.NewMember("analyst", "Aaronson")
	if err != nil {
		t.Fatalf("NewMember: %v", err)
	}
	g.Party = []*actor.Qaracter{member}
	return g
}

func newLoop(t *testing.T, g *state.GameState, bp *world.Blueprint) *MainLoop {
	t.Helper()
	w, err := bp.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return New(g, w, rng.NewScript(0.1))
}

func observerEncounter(t *testing.T, names ...string) *world.Encounter {
	t.Helper()
	return &world.Encounter{
		Name:        "observers",
		Probability: 1.0,
		Description: "A pack of observers wanders in.",
		Spawn: func() []*actor.Qaracter {
			var roster []*actor.Qaracter
			for _, name := range names {
				npc, err := actor.NewNPC("observer", name)
				if err != nil {
					t.Fatalf("NewNPC: %v", err)
				}
				roster = append(roster, npc)
			}
			return roster
		},
	}
}

func TestMoveAndQuit(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out, "e", "n", "w", "Quit")
	m := newLoop(t, g, testBlueprint())

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "The Field") {
		t.Errorf("moving east never rendered the field:\n%s", text)
	}
	if !strings.Contains(text, "You cannot go that way.") {
		t.Errorf("blocked move printed nothing:\n%s", text)
	}
	if m.Defeated() {
		t.Error("voluntary quit reported as defeat")
	}
	if g.Location != "hut" {
		t.Errorf("final location = %q, want hut", g.Location)
	}
}

func TestQuitLiteralIsCaseSensitive(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out, "quit", "QUIT", "Quit")
	m := newLoop(t, g, testBlueprint())

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if got := strings.Count(out.String(), "I did not understand that command."); got != 2 {
		t.Errorf("lowercase quit rejected %d times, want 2", got)
	}
}

func TestAmbiguousCommandDoesNotConsumeTurn(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out, "l", "s", "Quit")
	m := newLoop(t, g, testBlueprint())

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	text := out.String()
	if got := strings.Count(text, "You can type the name of a direction"); got != 2 {
		t.Errorf("command list shown %d times for two ambiguous inputs, want 2", got)
	}
	// Ambiguity suppresses the location re-render.
	if got := strings.Count(text, "The Hut"); got != 1 {
		t.Errorf("location rendered %d times, want 1", got)
	}
}

func TestContextualActionSuppressesRender(t *testing.T) {
	bp := testBlueprint()
	bp.Locations[0].Items = []*world.Item{{
		Keywords: []string{"read"},
		Targets:  []string{"sign"},
		Do: func(g *state.GameState, w *world.World) string {
			g.SetCodex(actor.CodexFoam)
			return "The sign describes the local quantum errors."
		},
	}}
	var out bytes.Buffer
	g := newSession(t, &out, "read sign", "read", "quantopedia", "Quit")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "The sign describes the local quantum errors.") {
		t.Errorf("item action output missing:\n%s", text)
	}
	if !strings.Contains(text, "read what?") {
		t.Errorf("bare keyword did not ask for a target:\n%s", text)
	}
	if got := strings.Count(text, "The Hut"); got != 1 {
		t.Errorf("location rendered %d times, want 1", got)
	}
	// The action granted the foam codex bit, so the entry is readable.
	if !strings.Contains(text, "Blue foam are the simplest kind of quantum errors.") {
		t.Errorf("quantopedia entry not shown after unlock:\n%s", text)
	}
}

func TestEncounterConsumedAfterBattle(t *testing.T) {
	bp := testBlueprint()
	bp.Locations[0].Encounters = []*world.Encounter{observerEncounter(t, "watcher")}
	var out bytes.Buffer
	g := newSession(t, &out, "m", "1", "1", "", "Quit")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	text := out.String()
	if got := strings.Count(text, "Battle Summary"); got != 1 {
		t.Fatalf("battle ran %d times, want 1", got)
	}
	if !strings.Contains(text, "The party gains 1 experience points.") {
		t.Errorf("reward not applied:\n%s", text)
	}
	// The location re-renders after the battle with the encounter consumed.
	if got := strings.Count(text, "The Hut"); got != 2 {
		t.Errorf("location rendered %d times, want 2", got)
	}
	if got := len(m.World.Current.Encounters); got != 0 {
		t.Errorf("%d encounters left, want 0", got)
	}
}

func TestBattleDoesNotChainEncounters(t *testing.T) {
	bp := testBlueprint()
	bp.Locations[0].Encounters = []*world.Encounter{
		observerEncounter(t, "first"),
		observerEncounter(t, "second"),
	}
	var out bytes.Buffer
	// Only the first battle's inputs are scripted. If the second certain
	// encounter fired on the post-battle re-render, Quit would be eaten as
	// a battle action and the script would run dry.
	g := newSession(t, &out, "m", "1", "1", "", "Quit")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if got := strings.Count(out.String(), "Battle Summary"); got != 1 {
		t.Errorf("battles before the next input = %d, want 1", got)
	}
	if got := len(m.World.Current.Encounters); got != 1 {
		t.Errorf("%d encounters left, want 1", got)
	}
}

func TestRemainingEncounterFiresOnRevisit(t *testing.T) {
	bp := testBlueprint()
	bp.Locations[0].Encounters = []*world.Encounter{
		observerEncounter(t, "first"),
		observerEncounter(t, "second"),
	}
	var out bytes.Buffer
	g := newSession(t, &out, "m", "1", "1", "", "e", "w", "m", "1", "1", "", "Quit")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if got := strings.Count(out.String(), "Battle Summary"); got != 2 {
		t.Errorf("battles = %d, want 2", got)
	}
	if got := len(m.World.Current.Encounters); got != 0 {
		t.Errorf("%d encounters left, want 0", got)
	}
}

func TestFirstEncounterWins(t *testing.T) {
	bp := testBlueprint()
	never := &world.Encounter{Name: "never", Probability: 0.0}
	bp.Locations[0].Encounters = []*world.Encounter{never, observerEncounter(t, "watcher")}
	var out bytes.Buffer
	g := newSession(t, &out, "m", "1", "1", "", "Quit")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if got := len(m.World.Current.Encounters); got != 1 || m.World.Current.Encounters[0] != never {
		t.Errorf("untriggered encounter was consumed; %d left", got)
	}
}

func TestFatalDefeat(t *testing.T) {
	bp := testBlueprint()
	bp.Locations[0].Encounters = []*world.Encounter{observerEncounter(t, "alpha", "beta")}
	var out bytes.Buffer
	// One measured observer goes down, the other measures the lone party
	// member into |0>. No further input is needed after the loss.
	g := newSession(t, &out, "m", "1", "1", "")
	m := newLoop(t, g, bp)

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if !m.Defeated() {
		t.Fatal("Defeated() = false after party wipe")
	}
	text := out.String()
	if !strings.Contains(text, "You have been measured and were found wanting.") {
		t.Errorf("epitaph missing:\n%s", text)
	}
	if !strings.Contains(text, "Better luck next repetition.") {
		t.Errorf("epitaph missing:\n%s", text)
	}
}

func TestArtEndsWithoutNewline(t *testing.T) {
	// Both constants go through Fprintln, which supplies the final newline.
	for name, art := range map[string]string{"title": titleArt, "rip": ripArt} {
		if strings.HasSuffix(art, "\n") {
			t.Errorf("%s art ends with a newline of its own", name)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	bp := testBlueprint()
	var out bytes.Buffer
	g := newSession(t, &out, "e", "save", "Quit")
	m := newLoop(t, g, bp)
	var token string
	m.OnSave = func(t string) { token = t }

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if token == "" {
		t.Fatal("save emitted no token")
	}
	if !strings.Contains(out.String(), token) {
		t.Error("token not printed for the player to copy")
	}

	var out2 bytes.Buffer
	g2 := newSession(t, &out2, "load", token, "Quit")
	g2.Party[0].Name = "Somebody" // replaced by the restored party
	m2 := newLoop(t, g2, bp)
	if err := m2.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if m2.World.Current.Label != "field" {
		t.Errorf("restored location = %q, want field", m2.World.Current.Label)
	}
	if len(g2.Party) != 1 || g2.Party[0].Name != "Aaronson" {
		t.Errorf("restored party = %+v", g2.Party)
	}
	if !strings.Contains(out2.String(), "The Field") {
		t.Error("restored location not re-rendered")
	}
}

func TestLoadBadTokenLeavesStateUntouched(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out, "load", "not;a;token", "load", "nowhere;0", "Quit")
	m := newLoop(t, g, testBlueprint())

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if got := strings.Count(out.String(), "Unable to restore the game from that token."); got != 2 {
		t.Errorf("restore failure message printed %d times, want 2", got)
	}
	if m.World.Current.Label != "hut" {
		t.Errorf("failed load moved the party to %q", m.World.Current.Label)
	}
	if g.Party[0].Name != "Aaronson" {
		t.Error("failed load replaced the party")
	}
}

func TestStatusCommand(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out, "status", "Quit")
	m := newLoop(t, g, testBlueprint())

	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Aaronson Analyst") {
		t.Errorf("status missing party member:\n%s", text)
	}
	if !strings.Contains(text, "Experience: 0") {
		t.Errorf("status missing experience:\n%s", text)
	}
}

func TestAwardXPLevelsUpLowestMember(t *testing.T) {
	var out bytes.Buffer
	g := newSession(t, &out)
	veteran, err := actor.NewMember("engineer", "Preskill")
	if err != nil {
		t.Fatalf("NewMember: %v", err)
	}
	veteran.AddHP()
	g.Party = append(g.Party, veteran)

	AwardXP(g, &out, 4)
	if g.Party[0].Level() != 1 {
		t.Fatal("level granted before ten points accumulated")
	}
	AwardXP(g, &out, 7)
	if g.XP() != 11 {
		t.Errorf("XP() = %d, want 11", g.XP())
	}
	if g.Party[0].Level() != 2 {
		t.Errorf("lowest member level = %d, want 2", g.Party[0].Level())
	}
	if g.Party[1].Level() != 2 {
		t.Errorf("veteran level = %d, want unchanged 2", g.Party[1].Level())
	}
	if !strings.Contains(out.String(), "Aaronson gains a level! Now level 2.") {
		t.Errorf("level-up message missing:\n%s", out.String())
	}
}

func TestRunStartMenu(t *testing.T) {
	var out bytes.Buffer
	g := state.New(prompt.FromLines("3", "5", "1", "Aaronson", "Quit"), &out)
	if err := Run(g, testBlueprint(), rng.NewScript(0.1), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Test Frontier") {
		t.Errorf("world title missing:\n%s", text)
	}
	if !strings.Contains(text, "Save often") {
		t.Errorf("help option output missing:\n%s", text)
	}
	if !strings.Contains(text, "Invalid number selected.") {
		t.Errorf("out-of-range menu option not rejected:\n%s", text)
	}
	if len(g.Party) != 1 || g.Party[0].Name != "Aaronson" {
		t.Errorf("new game party = %+v", g.Party)
	}
	if !strings.Contains(text, "The Hut") {
		t.Errorf("new game never rendered the start location:\n%s", text)
	}
}

func TestRunLoadFromMenu(t *testing.T) {
	bp := testBlueprint()
	var out bytes.Buffer
	g := newSession(t, &out, "save", "Quit")
	m := newLoop(t, g, bp)
	var token string
	m.OnSave = func(t string) { token = t }
	if err := m.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}

	var out2 bytes.Buffer
	g2 := state.New(prompt.FromLines("2", "garbage", "2", token, "Quit"), &out2)
	if err := Run(g2, bp, rng.NewScript(0.1), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out2.String(), "Unable to restore the game from that token.") {
		t.Error("bad token at the menu not rejected")
	}
	if len(g2.Party) != 1 || g2.Party[0].Name != "Aaronson" {
		t.Errorf("restored party = %+v", g2.Party)
	}
}
