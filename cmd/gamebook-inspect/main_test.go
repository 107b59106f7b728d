package main

import (
	"strings"
	"testing"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/disasm"
)

func TestPalette(t *testing.T) {
	var p palette
	seen := map[int]bool{}
	for range 512 {
		c := p.next()
		for _, elem := range bannedColors {
			if c == elem {
				t.Fatalf("banned color %d", c)
			}
		}
		seen[c] = true
	}
	if len(seen) != 256-len(bannedColors) {
		t.Errorf("cycled through %d colors", len(seen))
	}
}

func TestDump(t *testing.T) {
	buf, pr, err := asm.Compile("t", `NODE start { say "hi"; }`, asm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	l, err := disasm.Disassemble(buf, symfile.FromProgram(pr))
	if err != nil {
		t.Fatal(err)
	}
	node := l.Find(pr.Labels()["start"])
	out := dump(buf, l, node)

	if !strings.HasPrefix(out, "0x0000 ") || !strings.HasSuffix(out, "\n0x002b") {
		t.Errorf("dump = %q", out)
	}
	// Every byte of the node is in reverse video.
	if n := strings.Count(out, "\033[7m"); n != int(node.Size) {
		t.Errorf("%d selected bytes, node is %d", n, node.Size)
	}
	// The string record is bold.
	if !strings.Contains(out, "\033[1;38;5;") {
		t.Errorf("string record not bold")
	}
	if got := recordTitle(node); got != "0x0024 node     start" {
		t.Errorf("title = %q", got)
	}
}
