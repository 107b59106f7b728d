package parser

import "go.creack.net/gamebook/op"

// Top level keywords.
const (
	KeywordNode     = "NODE"
	KeywordTitle    = "TITLE"
	KeywordByline   = "BYLINE"
	KeywordVersion  = "VERSION"
	KeywordConstant = "CONSTANT"
)

// Parser is a recursive descent parser over the token stream.
type Parser struct {
	lexer     *lexer
	currToken Token
	peekToken Token
	peekErr   error

	data    *GameData
	headers map[string]Origin
}

// NewParser creates a new parser.
func NewParser(name, input string) *Parser {
	p := &Parser{
		lexer:   newLexer(name, input),
		data:    newGameData(name),
		headers: map[string]Origin{},
	}
	// Preload the next token.
	p.peekToken, p.peekErr = p.lexer.nextToken()
	return p
}

// Parse is a shortcut for NewParser(name, input).Parse().
func Parse(name, input string) (*GameData, error) {
	return NewParser(name, input).Parse()
}

// nextToken advances to the next token.
func (p *Parser) nextToken() error {
	if p.peekErr != nil {
		return p.peekErr
	}
	p.currToken = p.peekToken
	p.peekToken, p.peekErr = p.lexer.nextToken()
	return nil
}

// expect advances and fails unless the new token has the given kind.
func (p *Parser) expect(k TokenKind, what string) error {
	if err := p.nextToken(); err != nil {
		return err
	}
	if p.currToken.Kind != k {
		return p.unexpected(what)
	}
	return nil
}

func (p *Parser) unexpected(what string) error {
	return errorf(p.currToken.Origin, ErrUnexpectedToken, "expected %s, got %s", what, p.currToken)
}

// value converts a value token, interning strings.
func (p *Parser) value(t Token) (Value, bool) {
	switch t.Kind {
	case TokIdentifier:
		return Ident(t.Text), true
	case TokInteger:
		return Int(t.Int), true
	case TokString:
		return Ident(p.data.Strings.Intern(t.Text)), true
	default:
		return nil, false
	}
}

// Parse consumes the whole input.
func (p *Parser) Parse() (*GameData, error) {
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		tok := p.currToken
		if tok.Kind == TokEOF {
			break
		}
		if tok.Kind != TokIdentifier {
			return nil, errorf(tok.Origin, ErrExpectedTopLevelConstruct, "got %s", tok)
		}

		var err error
		switch tok.Text {
		case KeywordNode:
			err = p.parseNode()
		case KeywordTitle, KeywordByline, KeywordVersion:
			err = p.parseHeader()
		case KeywordConstant:
			err = p.parseConstant()
		default:
			if kind, ok := objectKeywords[tok.Text]; ok {
				err = p.parseObject(kind)
				break
			}
			err = errorf(tok.Origin, ErrExpectedTopLevelConstruct, "got %s", tok)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.data, nil
}

func (p *Parser) parseNode() error {
	if err := p.expect(TokIdentifier, "node name"); err != nil {
		return err
	}
	n := &Node{Name: p.currToken.Text, Origin: p.currToken.Origin}
	if err := p.defineNode(n); err != nil {
		return err
	}
	if err := p.expect(TokOpenBrace, "'{'"); err != nil {
		return err
	}

	var cur *Statement
	for {
		if err := p.nextToken(); err != nil {
			return err
		}
		tok := p.currToken
		if v, ok := p.value(tok); ok {
			if cur == nil {
				cur = &Statement{Origin: tok.Origin}
			}
			cur.Values = append(cur.Values, v)
			continue
		}
		switch {
		case tok.Kind == TokSemicolon:
			// Stray semicolons produce empty statements, drop them.
			if cur != nil {
				n.Block = append(n.Block, cur)
				cur = nil
			}
		case tok.Kind == TokCloseBrace && cur == nil:
			n.Block = append(n.Block, &Statement{Origin: tok.Origin, Values: []Value{Ident(op.EndCmd)}})
			p.data.Nodes = append(p.data.Nodes, n)
			p.data.nodes[n.Name] = n
			return nil
		case tok.Kind == TokCloseBrace:
			return p.unexpected("';'")
		default:
			return p.unexpected("statement value")
		}
	}
}

func (p *Parser) defineNode(n *Node) error {
	if prev, ok := p.data.nodes[n.Name]; ok {
		return &Error{Origin: n.Origin, Err: ErrDuplicateNode, Msg: n.Name, Prev: &prev.Origin}
	}
	return p.data.Symbols.Define(n.Name, n.Origin, KindNode)
}
