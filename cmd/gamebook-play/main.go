package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	_ "github.com/tliron/commonlog/simple"

	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/disasm"
	"go.creack.net/gamebook/vm"
)

var msgColors = map[vm.MessageType]tcell.Color{
	vm.MsgDebug:    tcell.ColorDimGray,
	vm.MsgError:    tcell.ColorRed,
	vm.MsgWarning:  tcell.ColorYellow,
	vm.MsgDisplay:  tcell.ColorDefault,
	vm.MsgNode:     tcell.ColorLightGreen,
	vm.MsgOptions:  tcell.ColorBlue,
	vm.MsgGameOver: tcell.ColorPurple,
}

type Game struct {
	app  *tview.Application
	root *tview.Pages

	storyView     *tview.TextView
	optionsView   *tview.List
	stateView     *tview.TextView
	logsView      *tview.TextView
	inventoryView *tview.Table
	partyView     *tview.Table

	g     *vm.VM
	story *cli.Story
	ended bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewGame(ctx context.Context, g *vm.VM, story *cli.Story) *Game {
	app := tview.NewApplication().EnableMouse(true)

	newTextView := func(text string) *tview.TextView {
		return tview.NewTextView().
			SetDynamicColors(true).
			SetWordWrap(true).
			SetText(text)
	}

	storyView := newTextView("")
	storyView.SetTitle(g.Title()).SetBorder(true)

	optionsView := tview.NewList().ShowSecondaryText(false)
	optionsView.SetTitle("Options").SetBorder(true)

	stateView := newTextView("")
	stateView.SetTitle("State").SetBorder(true)

	logsView := newTextView("")
	logsView.SetTitle("Logs").SetBorder(true)
	logsView.ScrollToEnd()

	inventoryView := tview.NewTable().SetBorders(false).SetSelectable(true, false)
	inventoryView.SetTitle("Inventory (enter: use, e: equip on the first party member)").SetBorder(true)

	partyView := tview.NewTable().SetBorders(false)
	partyView.SetTitle("Party").SetBorder(true)

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(stateView, 0, 1, false).
		AddItem(logsView, 0, 2, false)

	leftPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(storyView, 0, 3, false).
		AddItem(optionsView, 0, 1, true)

	flex := tview.NewFlex().
		AddItem(leftPane, 0, 2, true).
		AddItem(rightPane, 0, 1, false)

	pages := tview.NewPages()
	pages.AddPage("main", flex, true, true)
	pages.AddPage("inventory", inventoryView, true, false)
	pages.AddPage("party", partyView, true, false)

	if l, err := disasm.Disassemble(story.Data, story.Symbols); err == nil {
		pages.AddPage("listing", newTextView(tview.Escape(l.String())), true, false)
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Game{
		app:  app,
		root: pages,

		storyView:     storyView,
		optionsView:   optionsView,
		stateView:     stateView,
		logsView:      logsView,
		inventoryView: inventoryView,
		partyView:     partyView,

		g:     g,
		story: story,

		ctx:    ctx,
		cancel: cancel,
	}
}

func (g *Game) Stop() {
	g.app.Stop()
	g.cancel()
}

// name returns the display name of an object, falling back to its label.
func (g *Game) name(addr uint32) string {
	if n := g.g.ObjectName(addr); n != "" {
		return n
	}
	if n, ok := g.story.Symbols.NameOf(addr); ok {
		return n
	}
	return fmt.Sprintf("0x%04x", addr)
}

func (g *Game) Init() {
	f := func(event *tcell.EventKey) *tcell.EventKey {
		curPage, _ := g.root.GetFrontPage()
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		}
		switch event.Rune() {
		case 'i':
			g.drawInventory()
			g.root.SwitchToPage("inventory")
			return nil
		case 'c':
			g.drawParty()
			g.root.SwitchToPage("party")
			return nil
		case 'l':
			if g.root.HasPage("listing") {
				g.root.SwitchToPage("listing")
			}
			return nil
		case 'e':
			if curPage == "inventory" {
				g.equipSelected()
				return nil
			}
		case 'q':
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		}
		return event
	}
	g.root.SetInputCapture(f)

	g.inventoryView.SetSelectedFunc(func(row, _ int) {
		inv := g.g.Inventory()
		if row < 1 || row > len(inv) {
			return
		}
		g.report(g.g.UseItem(inv[row-1].Item))
		g.root.SwitchToPage("main")
		g.Draw()
	})

	go func() {
		for {
			select {
			case msg := <-g.g.Messages:
				if msg.Type == vm.MsgDisplay {
					continue
				}
				g.app.QueueUpdateDraw(func() {
					colorCode := "[" + msgColors[msg.Type].String() + ":::]"
					fmt.Fprintf(g.logsView, "%s%-9s 0x%04x %s[:::]\n", colorCode, msg.Type, msg.Addr, tview.Escape(strings.TrimSuffix(msg.Message, "\n")))
				})
			case <-g.ctx.Done():
				return
			}
		}
	}()
}

func (g *Game) report(err error) {
	if err != nil {
		fmt.Fprintf(g.logsView, "[red:::]%s[:::]\n", tview.Escape(err.Error()))
	}
}

func (g *Game) equipSelected() {
	party := g.g.Party()
	inv := g.g.Inventory()
	row, _ := g.inventoryView.GetSelection()
	if len(party) == 0 || row < 1 || row > len(inv) {
		return
	}
	g.report(g.g.EquipItem(party[0], inv[row-1].Item))
	g.drawInventory()
	g.Draw()
}

func (g *Game) drawOptions() {
	g.optionsView.Clear()
	for i, elem := range g.g.Options() {
		shortcut := rune(0)
		if i < 9 {
			shortcut = rune('1' + i)
		}
		g.optionsView.AddItem(tview.Escape(elem.Text), "", shortcut, func() {
			g.report(g.g.ChooseOption(i))
			g.Draw()
		})
	}
}

func (g *Game) drawStory() {
	if s := g.g.TakeOutput(); s != "" {
		fmt.Fprintf(g.storyView, "%s\n\n", tview.Escape(s))
		g.storyView.ScrollToEnd()
	}
	if g.g.State() == vm.Finished && !g.ended {
		g.ended = true
		fmt.Fprintf(g.storyView, "[::b]*** The End ***[::-]\n")
		if err := g.g.Err(); err != nil {
			fmt.Fprintf(g.storyView, "[red:::]%s[:::]\n", tview.Escape(err.Error()))
		}
	}
}

func (g *Game) drawState() {
	sv := g.stateView
	sv.Clear()

	fmt.Fprintf(sv, "State: %s\n", g.g.State())
	fmt.Fprintf(sv, "Node: %s\n", g.name(g.g.Node()))
	if loc := g.g.Location(); loc != 0 {
		fmt.Fprintf(sv, "Location: %s\n", g.name(loc))
	}
	fmt.Fprintf(sv, "Items: %d\n", len(g.g.Inventory()))
	fmt.Fprintf(sv, "Party: %d\n", len(g.g.Party()))
	if c := g.g.Combat(); c.Active {
		names := make([]string, 0, len(c.Combatants))
		for _, id := range c.Combatants {
			names = append(names, g.name(id))
		}
		fmt.Fprintf(sv, "Combat round %d: %s\n", c.Round, tview.Escape(strings.Join(names, ", ")))
	}
}

func headerRow(t *tview.Table, titles ...string) {
	for i, elem := range titles {
		cell := tview.NewTableCell(elem).
			SetAttributes(tcell.AttrBold).
			SetAlign(tview.AlignCenter).
			SetSelectable(false)
		t.SetCell(0, i, cell)
	}
	t.SetFixed(1, 0)
}

func (g *Game) drawInventory() {
	t := g.inventoryView
	t.Clear()
	headerRow(t, "qty", "item")
	for i, elem := range g.g.Inventory() {
		t.SetCell(i+1, 0, tview.NewTableCell(fmt.Sprint(elem.Qty)).SetAlign(tview.AlignRight))
		t.SetCell(i+1, 1, tview.NewTableCell(g.name(elem.Item)))
	}
}

func (g *Game) drawParty() {
	t := g.partyView
	t.Clear()
	headerRow(t, "character", "skill", "current", "max", "gear")
	row := 1
	for _, id := range g.g.Party() {
		c, err := g.g.Character(id)
		if err != nil {
			continue
		}
		t.SetCell(row, 0, tview.NewTableCell(g.name(id)).SetTextColor(tcell.ColorLightGreen))
		gear := make([]string, 0, len(c.Gear))
		for _, slot := range slices.Sorted(maps.Keys(c.Gear)) {
			gear = append(gear, fmt.Sprintf("%d:%s", slot, g.name(c.Gear[slot])))
		}
		t.SetCell(row, 4, tview.NewTableCell(strings.Join(gear, " ")))
		for _, sk := range c.SkillList() {
			t.SetCell(row, 1, tview.NewTableCell(g.name(sk.Skill)))
			t.SetCell(row, 2, tview.NewTableCell(fmt.Sprint(sk.Current())).SetAlign(tview.AlignRight))
			t.SetCell(row, 3, tview.NewTableCell(fmt.Sprint(sk.Max)).SetAlign(tview.AlignRight))
			row++
		}
		if len(c.Skills) == 0 {
			row++
		}
	}
}

func (g *Game) Draw() {
	g.drawStory()
	g.drawOptions()
	g.drawState()
}

func run(args []string) error {
	cfg, story, err := cli.ParseConfig("gamebook-play", args)
	if err != nil {
		return err
	}
	m, err := vm.New(story.Data, cfg)
	if err != nil {
		return err
	}
	m.Messages = make(chan vm.Message, 256)

	g := NewGame(context.Background(), m, story)
	g.Init()
	g.report(m.Start())
	g.Draw()

	if err := g.app.SetRoot(g.root, true).SetFocus(g.optionsView).Run(); err != nil {
		return err
	}
	g.cancel()
	return nil
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
