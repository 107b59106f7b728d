package parser

import (
	"errors"
	"testing"

	"go.creack.net/gamebook/op"
)

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("world")
	if a == b {
		t.Fatalf("distinct texts share label %q", a)
	}
	if again := in.Intern("hello"); again != a {
		t.Errorf("re-intern: got %q, want %q", again, a)
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
	var order []string
	in.Each(func(label, text string) { order = append(order, label+"="+text) })
	if len(order) != 2 || order[0] != "__s0=hello" || order[1] != "__s1=world" {
		t.Errorf("insertion order = %v", order)
	}
}

func TestParseNode(t *testing.T) {
	const src = `
NODE start {
	say "Hello";
	say "Hello";
	add-option "Go" next;
}
NODE next { ; ; }
`
	g, err := Parse("t", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || g.Nodes[0].Name != "start" || g.Nodes[1].Name != "next" {
		t.Fatalf("nodes = %v", g.Nodes)
	}
	start := g.Nodes[0]
	if len(start.Block) != 4 {
		t.Fatalf("start has %d statements", len(start.Block))
	}
	if start.Block[0].Values[1] != start.Block[1].Values[1] {
		t.Errorf("repeated literal not interned: %v %v", start.Block[0], start.Block[1])
	}
	if g.Strings.Len() != 2 {
		t.Errorf("%d strings, want 2", g.Strings.Len())
	}
	if got := start.Block[3].Command(); got != op.EndCmd {
		t.Errorf("last statement %q, want synthetic end", got)
	}

	next, ok := g.Node("next")
	if !ok {
		t.Fatal("next not found")
	}
	if len(next.Block) != 1 || next.Block[0].Command() != op.EndCmd {
		t.Errorf("empty body = %v, want only end", next.Block)
	}
	if g.Symbols.Kind("next") != KindNode || g.Symbols.Kind("missing") != KindNone {
		t.Errorf("symbol kinds wrong")
	}
}

func TestParseValues(t *testing.T) {
	g, err := Parse("t", `NODE start { push 7; jump-eq stack 3 done; }`)
	if err != nil {
		t.Fatal(err)
	}
	st := g.Nodes[0].Block[1]
	want := []Value{Ident("jump-eq"), Ident("stack"), Int(3), Ident("done")}
	if len(st.Values) != len(want) {
		t.Fatalf("values = %v", st.Values)
	}
	for i := range want {
		if st.Values[i] != want[i] {
			t.Errorf("value %d: got %#v, want %#v", i, st.Values[i], want[i])
		}
	}
	if st.Origin.Line != 1 || st.Origin.Column != 22 {
		t.Errorf("statement origin %s", st.Origin)
	}
}

func TestParseDuplicateNode(t *testing.T) {
	_, err := Parse("t", "NODE a { }\nNODE a { }")
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Origin.Line != 2 || e.Origin.Column != 6 {
		t.Errorf("error at %s, want 2:6", e.Origin)
	}
	if e.Prev == nil || e.Prev.Line != 1 || e.Prev.Column != 6 {
		t.Errorf("previous definition = %v, want 1:6", e.Prev)
	}
}

func TestParseDeclarations(t *testing.T) {
	const src = `
TITLE "The Cave";
BYLINE "by someone";
VERSION "1.0";
CONSTANT gold-key 1000;
SKILL health { name "Health"; variable; ko; }
SKILL fire-res { name "Fire resistance"; }
DAMAGE-TYPE fire { name "fire"; resist fire-res; }
ITEM lamp { name "lamp"; slot 1; on-use use-lamp; }
CHARACTER hero { name "Ayla"; faction 1; skill health 10; skill fire-res 2; }
NODE start { }
NODE use-lamp { }
`
	g, err := Parse("t", src)
	if err != nil {
		t.Fatal(err)
	}
	if label, _ := g.Strings.Lookup("The Cave"); g.Title != label || label == "" {
		t.Errorf("title label %q", g.Title)
	}
	if g.Byline == "" || g.Version == "" {
		t.Errorf("byline %q version %q", g.Byline, g.Version)
	}
	if g.Constants["gold-key"] != 1000 || g.Symbols.Kind("gold-key") != KindConstant {
		t.Errorf("constant not recorded")
	}
	if len(g.Objects) != 5 {
		t.Fatalf("%d objects, want 5", len(g.Objects))
	}

	health, _ := g.Object("health")
	if health.Kind != op.ObjSkill || len(health.Props) != 3 {
		t.Fatalf("health = %+v", health)
	}
	if health.Props[1].Name != "variable" || health.Props[1].Value != Int(op.True) {
		t.Errorf("flag property = %+v", health.Props[1])
	}

	hero, _ := g.Object("hero")
	if hero.Kind != op.ObjCharacter || g.Symbols.Kind("hero") != KindCharacter {
		t.Fatalf("hero kind %s", hero.Kind)
	}
	sk := hero.Props[2]
	if sk.Name != op.SkillProperty || sk.Key != Ident("health") || sk.Value != Int(10) {
		t.Errorf("skill property = %+v", sk)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"stray top level", "say 1;", ErrExpectedTopLevelConstruct},
		{"top level punctuation", "{ }", ErrExpectedTopLevelConstruct},
		{"brace in statement", "NODE a { say { }", ErrUnexpectedToken},
		{"unterminated statement", "NODE a { say 1 }", ErrUnexpectedToken},
		{"missing node name", "NODE { }", ErrUnexpectedToken},
		{"eof in node", "NODE a { say 1;", ErrUnexpectedToken},
		{"lexical error surfaces", "NODE a { @ }", ErrUnexpectedCharacter},
		{"duplicate title", `TITLE "a"; TITLE "b";`, ErrDuplicateDeclaration},
		{"symbol collision", "CONSTANT a 1; NODE a { }", ErrDuplicateSymbol},
		{"object collision", "ITEM a { } SKILL a { }", ErrDuplicateSymbol},
		{"builtin collision", "CONSTANT true 2;", ErrDuplicateSymbol},
		{"unknown property", "ITEM a { colour red; }", ErrUnknownProperty},
		{"missing property value", "ITEM a { name; }", ErrUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("t", tt.src); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}
