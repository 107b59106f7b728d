package asm

import (
	"errors"
	"fmt"

	"go.creack.net/gamebook/asm/parser"
)

// Options control the assembler. All default to false.
type Options struct {
	Strict bool // Unresolved symbols fail the build.
}

// Compile parses and assembles the given source.
func Compile(inputName, inputData string, opts Options) ([]byte, *Program, error) {
	g, err := parser.Parse(inputName, inputData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse: %w", err)
	}
	return Assemble(g, opts)
}

// Assemble runs both passes over parsed data and returns the image.
func Assemble(g *parser.GameData, opts Options) ([]byte, *Program, error) {
	if _, ok := g.Node(StartNode); !ok {
		return nil, nil, fmt.Errorf("%s: %w", g.Name, ErrMissingStartNode)
	}

	pr := newProgram(g)
	if err := pr.layout(); err != nil {
		return nil, nil, fmt.Errorf("failed to lay out program: %w", err)
	}
	buf, err := pr.emit()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode program: %w", err)
	}

	if opts.Strict && len(pr.warnings) > 0 {
		return nil, pr, fmt.Errorf("strict mode: %w", errors.Join(pr.warnings...))
	}
	return buf, pr, nil
}
