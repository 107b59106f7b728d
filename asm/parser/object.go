package parser

import "go.creack.net/gamebook/op"

var objectKeywords = map[string]SymbolKind{
	"ITEM":        KindItem,
	"SEX":         KindSex,
	"SPECIES":     KindSpecies,
	"SKILL":       KindSkill,
	"DAMAGE-TYPE": KindDamageType,
	"CHARACTER":   KindCharacter,
	"OBJECT":      KindObjectDef,
}

// parseObject handles <KIND> <name> { property [key] [value]; ... }.
func (p *Parser) parseObject(kind SymbolKind) error {
	if err := p.expect(TokIdentifier, "object name"); err != nil {
		return err
	}
	obj := &Object{Name: p.currToken.Text, Kind: kind.ObjectKind(), Origin: p.currToken.Origin}
	if err := p.data.Symbols.Define(obj.Name, obj.Origin, kind); err != nil {
		return err
	}
	if err := p.expect(TokOpenBrace, "'{'"); err != nil {
		return err
	}

	for {
		if err := p.nextToken(); err != nil {
			return err
		}
		switch p.currToken.Kind {
		case TokSemicolon:
			continue
		case TokCloseBrace:
			p.data.Objects = append(p.data.Objects, obj)
			p.data.objects[obj.Name] = obj
			return nil
		case TokIdentifier:
		default:
			return p.unexpected("property name")
		}

		prop, err := p.parseProperty()
		if err != nil {
			return err
		}
		obj.Props = append(obj.Props, prop)
	}
}

func (p *Parser) parseProperty() (Property, error) {
	name := p.currToken
	def, ok := op.LookupProperty(name.Text)
	if !ok {
		return Property{}, errorf(name.Origin, ErrUnknownProperty, "%q", name.Text)
	}
	prop := Property{Name: def.Name, Origin: name.Origin}

	if def.Flag {
		prop.Value = Int(op.True)
		return prop, p.expect(TokSemicolon, "';'")
	}
	if def.Keyed {
		key, err := p.propertyValue()
		if err != nil {
			return prop, err
		}
		prop.Key = key
	}
	v, err := p.propertyValue()
	if err != nil {
		return prop, err
	}
	prop.Value = v
	return prop, p.expect(TokSemicolon, "';'")
}

func (p *Parser) propertyValue() (Value, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	v, ok := p.value(p.currToken)
	if !ok {
		return nil, p.unexpected("property value")
	}
	return v, nil
}
