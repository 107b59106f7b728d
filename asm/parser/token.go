package parser

import "fmt"

// Origin is the position of a token in the source.
// Line and Column are 1-based, Column counts runes.
type Origin struct {
	File   string
	Line   int
	Column int
}

func (o Origin) String() string {
	return fmt.Sprintf("%s:%d:%d", o.File, o.Line, o.Column)
}

// TokenKind enum type.
type TokenKind int

// TokenKind values.
const (
	TokEOF TokenKind = iota
	TokIdentifier
	TokString
	TokInteger
	TokSemicolon
	TokColon
	TokOpenBrace
	TokCloseBrace
	TokOpenParen
	TokCloseParen
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "<eof>"
	case TokIdentifier:
		return "<identifier>"
	case TokString:
		return "<string>"
	case TokInteger:
		return "<integer>"
	case TokSemicolon:
		return "';'"
	case TokColon:
		return "':'"
	case TokOpenBrace:
		return "'{'"
	case TokCloseBrace:
		return "'}'"
	case TokOpenParen:
		return "'('"
	case TokCloseParen:
		return "')'"
	default:
		return fmt.Sprintf("<unknown token %d>", int(k))
	}
}

// Token is one lexical element. Text holds the identifier name or the
// unescaped string body, Int the value of an integer.
type Token struct {
	Kind   TokenKind
	Text   string
	Int    uint32
	Origin Origin
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdentifier:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokString:
		if len(t.Text) > 10 {
			return fmt.Sprintf("%s %.10q...", t.Kind, t.Text)
		}
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokInteger:
		return fmt.Sprintf("%s %d", t.Kind, t.Int)
	default:
		return t.Kind.String()
	}
}
