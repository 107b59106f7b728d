package parser

// parseHeader handles TITLE, BYLINE and VERSION: keyword, string, ';'.
func (p *Parser) parseHeader() error {
	kw := p.currToken
	if prev, ok := p.headers[kw.Text]; ok {
		return &Error{Origin: kw.Origin, Err: ErrDuplicateDeclaration, Msg: kw.Text, Prev: &prev}
	}
	if err := p.expect(TokString, "string"); err != nil {
		return err
	}
	label := p.data.Strings.Intern(p.currToken.Text)
	if err := p.expect(TokSemicolon, "';'"); err != nil {
		return err
	}

	p.headers[kw.Text] = kw.Origin
	switch kw.Text {
	case KeywordTitle:
		p.data.Title = label
	case KeywordByline:
		p.data.Byline = label
	case KeywordVersion:
		p.data.Version = label
	}
	return nil
}

// parseConstant handles CONSTANT <name> <integer> ';'.
func (p *Parser) parseConstant() error {
	if err := p.expect(TokIdentifier, "constant name"); err != nil {
		return err
	}
	name := p.currToken
	if err := p.expect(TokInteger, "integer"); err != nil {
		return err
	}
	n := p.currToken.Int
	if err := p.expect(TokSemicolon, "';'"); err != nil {
		return err
	}
	if err := p.data.Symbols.Define(name.Text, name.Origin, KindConstant); err != nil {
		return err
	}
	p.data.Constants[name.Text] = n
	return nil
}
