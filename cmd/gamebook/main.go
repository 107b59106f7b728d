package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/tliron/commonlog/simple"

	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/vm"
)

// dump prints the image in hex, highlighting the record at mark.
func dump(w io.Writer, img []byte, mark uint32) {
	zz := make([]byte, 32)
	for i := 0; i < len(img); {
		b := img[i]
		if i%32 == 0 {
			if i+32 <= len(img) && bytes.Equal(img[i:i+32], zz) {
				fmt.Fprintf(w, "\n*")
				for ; i+32 <= len(img) && bytes.Equal(img[i:i+32], zz); i += 32 {
				}
				continue
			}
			fmt.Fprintf(w, "\n0x%04X:", i)
		}
		if i == int(mark) {
			fmt.Fprintf(w, "\033[7m")
		}
		fmt.Fprintf(w, " %02x", b)
		if i == int(mark) {
			fmt.Fprintf(w, "\033[27m")
		}
		i++
	}
	fmt.Fprintf(w, "\n")
}

type player struct {
	g     *vm.VM
	story *cli.Story
	out   io.Writer
}

func (p *player) name(addr uint32) string {
	if n := p.g.ObjectName(addr); n != "" {
		return n
	}
	if n, ok := p.story.Symbols.NameOf(addr); ok {
		return n
	}
	return fmt.Sprintf("0x%04x", addr)
}

func (p *player) showOptions() {
	for i, elem := range p.g.Options() {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, elem.Text)
	}
}

func (p *player) showInventory() {
	inv := p.g.Inventory()
	if len(inv) == 0 {
		fmt.Fprintln(p.out, "You carry nothing.")
		return
	}
	for _, elem := range inv {
		fmt.Fprintf(p.out, "  %3d %s\n", elem.Qty, p.name(elem.Item))
	}
}

func (p *player) showParty() {
	for _, id := range p.g.Party() {
		c, err := p.g.Character(id)
		if err != nil {
			fmt.Fprintf(p.out, "  %s: %s\n", p.name(id), err)
			continue
		}
		fmt.Fprintf(p.out, "  %s\n", p.name(id))
		for _, sk := range c.SkillList() {
			fmt.Fprintf(p.out, "    %-12s %d/%d\n", p.name(sk.Skill), sk.Current(), sk.Max)
		}
	}
}

// command runs one line of player input.
func (p *player) command(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "i", "inv":
		p.showInventory()
		return nil
	case "p", "party":
		p.showParty()
		return nil
	case "d", "dump":
		dump(p.out, p.story.Data, p.g.Node())
		return nil
	case "u", "use":
		if len(fields) != 2 {
			return fmt.Errorf("usage: use <n>")
		}
		n, err := strconv.Atoi(fields[1])
		inv := p.g.Inventory()
		if err != nil || n < 1 || n > len(inv) {
			return fmt.Errorf("no item %q", fields[1])
		}
		return p.g.UseItem(inv[n-1].Item)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return p.g.ChooseOption(n - 1)
}

func run(in io.Reader, out io.Writer, args []string) error {
	cfg, story, err := cli.ParseConfig("gamebook", args)
	if err != nil {
		return err
	}
	g, err := vm.New(story.Data, cfg)
	if err != nil {
		return err
	}
	p := &player{g: g, story: story, out: out}
	if t := g.Title(); t != "" {
		fmt.Fprintf(out, "%s\n", t)
		if b := g.Byline(); b != "" {
			fmt.Fprintf(out, "%s\n", b)
		}
		fmt.Fprintln(out)
	}
	if err := g.Start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		if s := g.TakeOutput(); s != "" {
			fmt.Fprintf(out, "%s\n", s)
		}
		if g.State() != vm.AwaitingChoice {
			break
		}
		p.showOptions()
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		if err := p.command(sc.Text()); err != nil {
			if g.Err() != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprintln(out, "*** The End ***")
	return g.Err()
}

func main() {
	log.SetFlags(0)
	if err := run(os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
