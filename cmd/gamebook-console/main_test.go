package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/vm"
)

func newTestModel(t *testing.T) consoleModel {
	t.Helper()
	story, err := cli.LoadStory(cli.DefaultStory, asm.Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	g, err := vm.New(story.Data, cli.NewConfig(cli.Options{Seed: 1}))
	if err != nil {
		t.Fatal(err)
	}
	return newConsoleModel(g, story)
}

func submit(t *testing.T, m consoleModel, input string) (consoleModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm, ok := model.(consoleModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	if cm.textInput.Value() != "" {
		t.Fatalf("input not cleared after %q", input)
	}
	return cm, cmd
}

func lastEntry(t *testing.T, m consoleModel) entry {
	t.Helper()
	if len(m.history) == 0 {
		t.Fatal("empty history")
	}
	return m.history[len(m.history)-1]
}

func TestStartView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"The Cellar", "stands at the top of a dark stair.", "1) Go down", "2) Leave"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestChooseOption(t *testing.T) {
	m := newTestModel(t)
	m, cmd := submit(t, m, "2")
	if cmd != nil {
		t.Fatal("expected no command for an option")
	}
	if m.g.State() != vm.Finished {
		t.Fatalf("state = %s, want finished", m.g.State())
	}
	if e := lastEntry(t, m); e.input != "2" || !strings.HasSuffix(e.output, "The end.") {
		t.Fatalf("unexpected entry %+v", e)
	}
	if view := m.View(); !strings.Contains(view, "*** The End ***") {
		t.Fatalf("view lacks the end banner:\n%s", view)
	}
}

func TestBadInput(t *testing.T) {
	for _, input := range []string{"9", "down", ":use", ":use lamp", ":equip nobody potion", ":nope"} {
		m := newTestModel(t)
		m, _ = submit(t, m, input)
		if e := lastEntry(t, m); !e.isErr || e.input != input {
			t.Errorf("%q: expected an error entry, got %+v", input, e)
		}
		if m.g.State() != vm.AwaitingChoice {
			t.Errorf("%q: state = %s", input, m.g.State())
		}
	}
}

func TestUseItem(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, ":use potion")
	if e := lastEntry(t, m); e.isErr || e.output != "You feel better." {
		t.Fatalf("unexpected entry %+v", e)
	}
	if len(m.g.Inventory()) != 0 {
		t.Fatalf("potion not consumed: %v", m.g.Inventory())
	}
	if got := len(m.g.Options()); got != 2 {
		t.Fatalf("options = %d, want 2", got)
	}
}

func TestPanels(t *testing.T) {
	m := newTestModel(t)
	m, _ = submit(t, m, ":inv")
	m, _ = submit(t, m, ":party")
	if !m.showInventory || !m.showParty {
		t.Fatal("panels not toggled")
	}
	view := m.View()
	for _, want := range []string{"1) potion x1", "1) Ada", "health 12/12"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := submit(t, m, ":quit")
	if !m.quitting {
		t.Fatal("quitting flag not set")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
	if m.View() != "" {
		t.Fatal("view not empty after quit")
	}
}

func TestStartError(t *testing.T) {
	m := newTestModel(t)
	err := m.g.Start()
	if !errors.Is(err, vm.ErrNotRunning) {
		t.Fatalf("restart err = %v", err)
	}
}
