package parser

import (
	"errors"
	"strings"
	"testing"
)

// runeAt returns the text starting at the given 1-based line and rune column.
func runeAt(input string, line, col int) string {
	lines := strings.Split(input, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	rs := []rune(lines[line-1])
	if col < 1 || col > len(rs)+1 {
		return ""
	}
	return string(rs[col-1:])
}

func TestLexOrigins(t *testing.T) {
	const src = `// header comment
NODE start {
	say "héllo \"you\"";  /* inline
	comment */ push 42 ;
	label l-1; jump l-1 ;
}
`
	toks, err := Lex("game.src", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 16 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	for _, tok := range toks {
		if tok.Origin.File != "game.src" {
			t.Fatalf("bad file in %v", tok.Origin)
		}
		rest := runeAt(src, tok.Origin.Line, tok.Origin.Column)
		var want string
		switch tok.Kind {
		case TokString:
			want = `"`
		default:
			want = tok.Text
			if tok.Kind != TokIdentifier && tok.Kind != TokInteger {
				want = tok.Kind.String()[1:2]
			}
		}
		if !strings.HasPrefix(rest, want) {
			t.Errorf("%s at %s: source there is %.12q", tok, tok.Origin, rest)
		}
	}
	if toks[4].Kind != TokString || toks[4].Text != `héllo "you"` {
		t.Errorf("string token = %v", toks[4])
	}
	if toks[7].Kind != TokInteger || toks[7].Int != 42 || toks[7].Origin.Line != 4 {
		t.Errorf("integer token = %v at %s", toks[7], toks[7].Origin)
	}
}

func TestLexEscapes(t *testing.T) {
	toks, err := Lex("t", `"a\nb\'c\"d"`)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\nb'c\"d"; toks[0].Text != want {
		t.Errorf("got %q, want %q", toks[0].Text, want)
	}
}

func TestLexIdentifiers(t *testing.T) {
	toks, err := Lex("t", "-x _y #z a1-b2 (:)")
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenKind{TokIdentifier, TokIdentifier, TokIdentifier, TokIdentifier, TokOpenParen, TokColon, TokCloseParen}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
		line int
		col  int
	}{
		{"unterminated comment", "NODE /* never", ErrUnterminatedComment, 1, 6},
		{"unterminated string", "say \"abc", ErrUnterminatedString, 1, 5},
		{"unknown escape", "say \"ab\\q\"", ErrUnknownEscape, 1, 8},
		{"digit prefixed identifier", "push 12abc;", ErrMalformedNumber, 1, 6},
		{"number overflow", "push 4294967296;", ErrMalformedNumber, 1, 6},
		{"unexpected character", "NODE a {\n  @ }", ErrUnexpectedCharacter, 2, 3},
		{"lone slash", "a / b", ErrUnexpectedCharacter, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex("t", tt.src)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if e.Origin.Line != tt.line || e.Origin.Column != tt.col {
				t.Errorf("error at %s, want line %d col %d", e.Origin, tt.line, tt.col)
			}
		})
	}
}

func TestLexNumberTerminators(t *testing.T) {
	toks, err := Lex("t", "1;2}3)4:5\"x\"6//c\n4294967295")
	if err != nil {
		t.Fatal(err)
	}
	var ints []uint32
	for _, tok := range toks {
		if tok.Kind == TokInteger {
			ints = append(ints, tok.Int)
		}
	}
	want := []uint32{1, 2, 3, 4, 5, 6, 4294967295}
	if len(ints) != len(want) {
		t.Fatalf("got %v, want %v", ints, want)
	}
	for i := range want {
		if ints[i] != want[i] {
			t.Errorf("int %d: got %d, want %d", i, ints[i], want[i])
		}
	}
}
