package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/disasm"
	"go.creack.net/gamebook/project"
)

type config struct {
	input, output, symbols string
	strict, prettyPrint    bool
}

func run(cfg config) error {
	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	buf, pr, err := asm.Compile(cfg.input, string(data), asm.Options{Strict: cfg.strict})
	if err != nil {
		return fmt.Errorf("failed to compile: %w", err)
	}
	syms := symfile.FromProgram(pr)

	if cfg.prettyPrint {
		l, err := disasm.Disassemble(buf, syms)
		if err != nil {
			return fmt.Errorf("failed to disassemble: %w", err)
		}
		fmt.Print(l)
		return nil
	}

	if err := os.WriteFile(cfg.output, buf, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if cfg.symbols != "" {
		if err := symfile.WriteFile(cfg.symbols, syms); err != nil {
			return err
		}
	}
	return nil
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func main() {
	log.SetFlags(0)
	var cfg config
	var verbosity int
	flag.StringVar(&cfg.output, "o", "", "output file, default to <input>.gbk")
	flag.BoolVar(&cfg.strict, "strict", false, "strict mode, unresolved symbols are errors")
	syms := flag.Bool("syms", false, "also write the symbol map next to the output")
	flag.BoolVar(&cfg.prettyPrint, "pretty", false, "print the listing, do not output compiled file")
	cli.VerbosityFlag(flag.CommandLine, &verbosity)
	flag.Parse()
	commonlog.Configure(verbosity, nil)

	cfg.input = flag.Arg(0)
	if cfg.input == "" {
		// Fall back to the project file.
		p, err := project.FindAndLoad(".")
		if err != nil {
			log.Fatalf("fail: %s.", err)
		}
		if p == nil {
			fmt.Fprintf(os.Stderr, "usage: %s <.src path> [options]\n", filepath.Base(os.Args[0]))
			flag.PrintDefaults()
			return
		}
		cfg.input = p.SourcePath()
		if cfg.output == "" {
			cfg.output = p.OutputPath()
		}
		cfg.strict = cfg.strict || p.Build.Strict
		*syms = true
		cfg.symbols = p.SymbolsPath()
	}
	if cfg.output == "" {
		cfg.output = replaceExt(cfg.input, project.ImageExt)
	}
	if *syms && cfg.symbols == "" {
		cfg.symbols = replaceExt(cfg.output, symfile.Ext)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
