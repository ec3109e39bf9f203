package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nharlow/qrpg/engine/prompt"
	"github.com/nharlow/qrpg/engine/rng"
	"github.com/nharlow/qrpg/world"
)

func testBlueprint() *world.Blueprint {
	return &world.Blueprint{
		Title: "Test Frontier",
		Intro: "The frontier stretches out before you.",
		Start: "hut",
		Locations: []*world.Location{
			{
				Label:       "hut",
				Title:       "The Hut",
				Description: "A small hut.",
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

func TestScriptPlayback(t *testing.T) {
	script := strings.Join([]string{
		"# start a new game",
		"1",
		"Aaronson",
		"e",
		"# and leave",
		"Quit",
	}, "\n")

	var out bytes.Buffer
	c := New(testBlueprint(), rng.NewScript(0.1))
	c.In = strings.NewReader(script)
	c.Out = &out
	c.EchoInput = true

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "The frontier stretches out before you.") {
		t.Errorf("intro missing:\n%s", text)
	}
	if !strings.Contains(text, "The Field") {
		t.Errorf("movement did not happen:\n%s", text)
	}
	if strings.Contains(text, "# start a new game") {
		t.Errorf("comment line leaked into the session:\n%s", text)
	}
	// Echo mode shows each consumed line.
	if !strings.Contains(text, "Aaronson") {
		t.Errorf("input not echoed:\n%s", text)
	}
	if !strings.Contains(text, "> ") {
		t.Errorf("default prompt not written:\n%s", text)
	}
}

func TestExhaustedScriptSurfaces(t *testing.T) {
	var out bytes.Buffer
	c := New(testBlueprint(), rng.NewScript(0.1))
	c.In = strings.NewReader("1\nAaronson\n")
	c.Out = &out

	if err := c.Run(); !errors.Is(err, prompt.ErrExhausted) {
		t.Fatalf("Run err = %v, want ErrExhausted", err)
	}
}
