package assets_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/assets"
	"go.creack.net/gamebook/vm"
)

func compileStory(t *testing.T, name string) []byte {
	t.Helper()
	src, err := assets.Story(name)
	if err != nil {
		t.Fatal(err)
	}
	buf, _, err := asm.Compile(name+assets.Ext, src, asm.Options{Strict: true})
	if err != nil {
		t.Fatalf("compile %s: %s", name, err)
	}
	return buf
}

func TestStoriesCompile(t *testing.T) {
	names, err := assets.Stories()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("no bundled stories")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) { compileStory(t, name) })
	}
	if _, err := assets.Story("nope"); err == nil {
		t.Error("expected an error for an unknown story")
	}
}

// TestCellarPlaythrough always picks the first option until the story ends.
func TestCellarPlaythrough(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g, err := vm.New(compileStory(t, "cellar"), vm.Config{Rand: rand.New(rand.NewPCG(seed, 0))})
		if err != nil {
			t.Fatal(err)
		}
		if err := g.Start(); err != nil {
			t.Fatal(err)
		}
		if g.Title() != "The Cellar" {
			t.Errorf("title = %q", g.Title())
		}
		if !strings.HasPrefix(g.Output(), "Ada stands at the top of a dark stair. She holds a potion in her hand.") {
			t.Errorf("intro = %q", g.Output())
		}
		for range 500 {
			if g.State() != vm.AwaitingChoice {
				break
			}
			if err := g.ChooseOption(0); err != nil {
				t.Fatalf("seed %d: %s", seed, err)
			}
		}
		if g.State() != vm.Finished || g.Err() != nil {
			t.Fatalf("seed %d: state %s, err %v", seed, g.State(), g.Err())
		}
		out := g.Output()
		if !strings.HasSuffix(out, "The end.") && !strings.HasSuffix(out, "cold floor. ") {
			t.Errorf("seed %d: unexpected ending %q", seed, out[max(0, len(out)-60):])
		}
	}
}

func TestCellarPotion(t *testing.T) {
	g, err := vm.New(compileStory(t, "cellar"), vm.Config{Rand: rand.New(rand.NewPCG(1, 0))})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	inv := g.Inventory()
	if len(inv) != 1 || g.ObjectName(inv[0].Item) != "potion" {
		t.Fatalf("inventory = %+v", inv)
	}
	g.TakeOutput()
	if err := g.UseItem(inv[0].Item); err != nil {
		t.Fatal(err)
	}
	if out := g.Output(); out != "You feel better. " {
		t.Errorf("output = %q", out)
	}
	if len(g.Inventory()) != 0 {
		t.Errorf("potion not consumed")
	}
}
