package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	_ "github.com/tliron/commonlog/simple"

	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/disasm"
	"go.creack.net/gamebook/op"
)

// bannedColors that are not legible.
var bannedColors = []int{
	0,
	16,
	17,
	18,
	19,
	20,
	21,
	52,
	53,
	54,
	55,
	232,
	233,
	234,
	235,
	236,
	237,
	238,
	239,
}

type palette struct {
	cur int
}

func (p *palette) next() int {
	p.cur++
	p.cur %= 256
	for slices.Contains(bannedColors, p.cur) {
		p.cur++
		p.cur %= 256
	}
	return p.cur
}

func colorCodeModif(color int, mods ...int) string {
	modsStr := make([]string, 0, len(mods))
	for _, elem := range mods {
		modsStr = append(modsStr, fmt.Sprintf("%d", elem))
	}
	ansiMod := strings.Join(modsStr, ";")
	if ansiMod != "" {
		ansiMod += ";"
	}
	return fmt.Sprintf("\033[%s38;5;%dm", ansiMod, color)
}

// span is a colored byte range of the image.
type span struct {
	start, end uint32
	code       string
}

// spans colors the header fields, then each record. Strings are bold,
// objects underlined.
func spans(l *disasm.Listing) []span {
	var p palette
	out := []span{}
	for _, elem := range []uint32{op.MagicOffset, op.FormatOffset, op.StartNodeOffset, op.TitleOffset, op.BylineOffset, op.VersionOffset} {
		out = append(out, span{elem, elem + op.WordSize, colorCodeModif(p.next())})
	}
	for _, r := range l.Records {
		var mods []int
		switch r.Tag {
		case op.IDString:
			mods = []int{1}
		case op.IDObject:
			mods = []int{4}
		}
		out = append(out, span{r.Addr, r.Addr + r.Size, colorCodeModif(p.next(), mods...)})
	}
	return out
}

// dump renders the image in hex, the selected record in reverse video.
func dump(img []byte, l *disasm.Listing, sel *disasm.Record) string {
	out := &strings.Builder{}

	const width = 16
	zeroBuf := make([]byte, width)
	colors := spans(l)

	firstEmpty := false
	s := 0
	for i := 0; i < len(img); {
		for s < len(colors) && uint32(i) >= colors[s].end {
			s++
		}
		colorCode := ""
		if s < len(colors) && uint32(i) >= colors[s].start {
			colorCode = colors[s].code
		}
		selectedCode := ""
		if sel != nil && uint32(i) >= sel.Addr && uint32(i) < sel.Addr+sel.Size {
			selectedCode = "\033[7m"
		}

		if i%width == 0 {
			if i+width <= len(img) && bytes.Equal(img[i:i+width], zeroBuf) {
				if !firstEmpty {
					firstEmpty = true
				} else {
					fmt.Fprintf(out, "\n*")
					for ; i+width <= len(img) && bytes.Equal(img[i:i+width], zeroBuf); i += width {
					}
					firstEmpty = false
					continue
				}
			}
			if i != 0 {
				fmt.Fprintf(out, "\n")
			}
			fmt.Fprintf(out, "0x%04x", i)
		}
		if i%(width/2) == 0 {
			fmt.Fprintf(out, " ")
		}
		fmt.Fprintf(out, " %s%s%02x\033[0m", colorCode, selectedCode, img[i])
		i++
	}
	fmt.Fprintf(out, "\n0x%04x", len(img))
	return out.String()
}

func recordTitle(r *disasm.Record) string {
	kind := "node"
	switch r.Tag {
	case op.IDString:
		kind = "string"
	case op.IDObject:
		kind = r.Object.Kind.String()
	}
	name := r.Name
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("0x%04x %-8s %s", r.Addr, kind, name)
}

func render(source string, img []byte, l *disasm.Listing) error {
	newTextView := func(text string) *tview.TextView {
		return tview.NewTextView().
			SetDynamicColors(true).
			SetText(text)
	}

	hexContent := newTextView("")
	show := func(sel *disasm.Record) {
		hexContent.Clear()
		_, _ = tview.ANSIWriter(hexContent).Write([]byte(dump(img, l, sel)))
		if sel != nil {
			hexContent.ScrollTo(int(sel.Addr)/16, 0)
		}
	}
	show(nil)

	leftContent := newTextView("")
	_, _ = tview.ANSIWriter(leftContent).Write([]byte(source))

	records := tview.NewList().ShowSecondaryText(false)
	for _, r := range l.Records {
		records.AddItem(recordTitle(r), "", 0, nil)
	}
	records.SetChangedFunc(func(i int, _, _ string, _ rune) {
		show(l.Records[i])
	})

	hex := tview.NewFlex()
	hex.SetBorder(true).SetTitle("Image")
	hex.AddItem(hexContent, 0, 1, false)

	left := tview.NewFlex()
	left.SetBorder(true).SetTitle("Source")
	left.AddItem(leftContent, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(records, 0, 1, true).
		AddItem(hex, 0, 2, false)
	records.SetBorder(true).SetTitle("Records")

	flex := tview.NewFlex().
		AddItem(left, 0, 1, false).
		AddItem(right, 0, 1, true)

	app := tview.NewApplication().SetRoot(flex, true).SetFocus(records).EnableMouse(true)
	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return ev
	})
	return app.Run()
}

func run(args []string) error {
	_, story, err := cli.ParseConfig("gamebook-inspect", args)
	if err != nil {
		return err
	}
	l, err := disasm.Disassemble(story.Data, story.Symbols)
	if err != nil {
		return fmt.Errorf("failed to disassemble: %w", err)
	}

	// Show the source when there is one, the listing otherwise.
	source := story.Source
	if source == "" {
		source = l.String()
	}
	return render(source, story.Data, l)
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
