package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type stateFn func(*lexer) stateFn

const eof = -1

// Runes ending an integer literal, on top of whitespace.
const numberTerminators = ";:{}()\"/"

// lexer holds the state of the scanner.
type lexer struct {
	name  string // The name of the input; used only for error reports.
	input string // The string being scanned.
	pos   int    // Current position in the input.
	start int    // Start position of this token.
	atEOF bool   // We have hit the end of input and returned eof.

	line, col           int // Position of the next rune.
	prevLine, prevCol   int // Position before the last call to next, for backup.
	startLine, startCol int // Start position of this token.

	tok Token  // Token to return to the parser.
	err *Error // Set when the scan failed.
}

func newLexer(name, input string) *lexer {
	return &lexer{
		name:      name,
		input:     input,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// Lex scans the whole input and returns the token sequence, EOF excluded.
func Lex(name, input string) ([]Token, error) {
	l := newLexer(name, input)
	var out []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokEOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

func (l *lexer) origin() Origin {
	return Origin{File: l.name, Line: l.line, Column: l.col}
}

func (l *lexer) startOrigin() Origin {
	return Origin{File: l.name, Line: l.startLine, Column: l.startCol}
}

// errorf records an error at the start of the current token and
// terminates the scan by returning a nil state.
func (l *lexer) errorf(err error, format string, args ...any) stateFn {
	return l.errorAt(l.startOrigin(), err, format, args...)
}

func (l *lexer) errorAt(o Origin, err error, format string, args ...any) stateFn {
	l.err = errorf(o, err, format, args...)
	l.start = len(l.input)
	l.pos = len(l.input)
	l.atEOF = true
	return nil
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.atEOF = true
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.prevLine, l.prevCol = l.line, l.col
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	if !l.atEOF && l.pos > 0 {
		_, w := utf8.DecodeLastRuneInString(l.input[:l.pos])
		l.pos -= w
		l.line, l.col = l.prevLine, l.prevCol
	}
}

// emit passes the pending text as a token back to the parser.
func (l *lexer) emit(k TokenKind) stateFn {
	return l.emitToken(Token{Kind: k, Text: l.input[l.start:l.pos], Origin: l.startOrigin()})
}

func (l *lexer) emitToken(t Token) stateFn {
	l.tok = t
	l.ignore()
	return nil
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
	l.startLine, l.startCol = l.line, l.col
}

// acceptRun consumes a run of runes matching the predicate.
func (l *lexer) acceptRun(valid func(rune) bool) bool {
	accepted := false
	for r := l.next(); r != eof && valid(r); r = l.next() {
		accepted = true
	}
	l.backup()
	return accepted
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '-' || r == '_' || r == '#'
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// lexText skips whitespace and comments and dispatches on the next rune.
func lexText(l *lexer) stateFn {
	l.acceptRun(isSpace)
	l.ignore()
	if l.pos >= len(l.input) {
		return l.emit(TokEOF)
	}
	switch r := l.next(); {
	case r == '/':
		switch l.next() {
		case '/':
			return lexLineComment
		case '*':
			return lexBlockComment
		}
		return l.errorf(ErrUnexpectedCharacter, "%q", '/')
	case r == '"':
		return lexString
	case r == ';':
		return l.emit(TokSemicolon)
	case r == ':':
		return l.emit(TokColon)
	case r == '{':
		return l.emit(TokOpenBrace)
	case r == '}':
		return l.emit(TokCloseBrace)
	case r == '(':
		return l.emit(TokOpenParen)
	case r == ')':
		return l.emit(TokCloseParen)
	case isDigit(r):
		return lexNumber
	case isIdentStart(r):
		return lexIdentifier
	default:
		return l.errorf(ErrUnexpectedCharacter, "%q", r)
	}
}

func lexLineComment(l *lexer) stateFn {
	for {
		r := l.next()
		if r == eof || r == '\n' {
			break
		}
	}
	l.ignore()
	return lexText
}

func lexBlockComment(l *lexer) stateFn {
	for {
		switch l.next() {
		case eof:
			return l.errorf(ErrUnterminatedComment, "missing */")
		case '*':
			if l.peek() == '/' {
				l.next()
				l.ignore()
				return lexText
			}
		}
	}
}

func lexNumber(l *lexer) stateFn {
	l.acceptRun(isDigit)
	if r := l.peek(); r != eof && !isSpace(r) && !strings.ContainsRune(numberTerminators, r) {
		return l.errorf(ErrMalformedNumber, "%q followed by %q", l.input[l.start:l.pos], r)
	}
	text := l.input[l.start:l.pos]
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return l.errorf(ErrMalformedNumber, "%s does not fit in 32 bits", text)
	}
	return l.emitToken(Token{Kind: TokInteger, Text: text, Int: uint32(n), Origin: l.startOrigin()})
}

func lexIdentifier(l *lexer) stateFn {
	l.acceptRun(isIdentChar)
	return l.emit(TokIdentifier)
}

func lexString(l *lexer) stateFn {
	var sb strings.Builder
	for {
		at := l.origin()
		switch r := l.next(); r {
		case eof:
			return l.errorf(ErrUnterminatedString, "missing closing quote")
		case '"':
			return l.emitToken(Token{Kind: TokString, Text: sb.String(), Origin: l.startOrigin()})
		case '\\':
			switch e := l.next(); e {
			case '"', '\'':
				sb.WriteRune(e)
			case 'n':
				sb.WriteByte('\n')
			case eof:
				return l.errorf(ErrUnterminatedString, "missing closing quote")
			default:
				return l.errorAt(at, ErrUnknownEscape, "\\%c", e)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

// nextToken returns the next token from the input.
func (l *lexer) nextToken() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	l.tok = Token{Kind: TokEOF, Origin: l.origin()}
	state := lexText
	for state != nil {
		state = state(l)
	}
	if l.err != nil {
		return Token{}, l.err
	}
	return l.tok, nil
}
