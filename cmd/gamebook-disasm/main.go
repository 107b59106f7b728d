package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/disasm"
)

func loadSymbols(path, image string) (*symfile.Map, error) {
	if path != "" {
		return symfile.ReadFile(path)
	}
	side := strings.TrimSuffix(image, filepath.Ext(image)) + symfile.Ext
	if _, err := os.Stat(side); err == nil {
		return symfile.ReadFile(side)
	}
	return nil, nil
}

func disam(f, symsPath string) error {
	binData, err := os.ReadFile(f)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", f, err)
	}
	syms, err := loadSymbols(symsPath, f)
	if err != nil {
		return err
	}
	if syms == nil {
		if syms, err = disasm.KnownSymbols(binData); err != nil {
			return err
		}
		if syms != nil {
			log.Printf("Found match in known sources.")
		}
	}

	l, err := disasm.Disassemble(binData, syms)
	if err != nil {
		return fmt.Errorf("failed to disassemble: %w", err)
	}
	fmt.Print(l)
	return nil
}

func main() {
	log.SetFlags(0)
	symsPath := flag.String("syms", "", "symbol map, default to <input>.gbs when present")
	flag.Parse()
	f := flag.Arg(0)
	if f == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <.gbk path> [options]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		return
	}
	if err := disam(f, *symsPath); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
