package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/image/font"

	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/vm"
)

const initialScreenWidth, initialScreenHeight = 1024, 768

const margin = 12

var fontFace = text.NewGoXFace(bitmapfont.Face)

var (
	colorBackground = color.RGBA{R: 0x1c, G: 0x1b, B: 0x22, A: 0xff}
	colorStory      = color.RGBA{R: 0xe8, G: 0xe2, B: 0xd0, A: 0xff}
	colorOption     = color.RGBA{R: 0x8f, G: 0xd1, B: 0x9e, A: 0xff}
	colorStatus     = color.RGBA{R: 0x80, G: 0x80, B: 0x90, A: 0xff}
	colorError      = color.RGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
)

var errQuit = errors.New("quit")

// wrap splits s into lines no wider than width pixels.
func wrap(face font.Face, s string, width int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			next := word
			if line != "" {
				next = line + " " + word
			}
			if line != "" && font.MeasureString(face, next).Ceil() > width {
				out = append(out, line)
				next = word
			}
			line = next
		}
		out = append(out, line)
	}
	return out
}

// Game implements ebiten.Game interface.
type Game struct {
	g     *vm.VM
	story *cli.Story

	transcript    []string
	status        string
	showInventory bool
	scroll        int // Lines scrolled back from the end.
	width, height int
}

func (g *Game) lineHeight() float64 {
	m := fontFace.Metrics()
	return m.HLineGap + m.HAscent + m.HDescent
}

func (g *Game) flush() {
	if s := strings.TrimSpace(g.g.TakeOutput()); s != "" {
		g.transcript = append(g.transcript, s, "")
	}
	if g.g.State() == vm.Finished {
		g.status = "*** The End *** (esc to quit)"
		if err := g.g.Err(); err != nil {
			g.status = err.Error()
		}
	}
}

func (g *Game) choose(i int) {
	opts := g.g.Options()
	if i >= len(opts) {
		return
	}
	g.transcript = append(g.transcript, "> "+opts[i].Text, "")
	if err := g.g.ChooseOption(i); err != nil {
		g.status = err.Error()
	}
	g.scroll = 0
	g.flush()
}

func (g *Game) useItem(i int) {
	inv := g.g.Inventory()
	if i >= len(inv) {
		return
	}
	if err := g.g.UseItem(inv[i].Item); err != nil {
		g.status = err.Error()
	}
	g.showInventory = false
	g.flush()
}

// Update proceeds the game state.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if g.showInventory {
			g.showInventory = false
			return nil
		}
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.showInventory = !g.showInventory
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.scroll += 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.scroll = max(0, g.scroll-10)
	}
	for i := range 9 {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			if g.showInventory {
				g.useItem(i)
			} else {
				g.choose(i)
			}
			break
		}
	}
	return nil
}

func (g *Game) drawLines(screen *ebiten.Image, lines []string, y float64, clr color.Color) float64 {
	for _, elem := range lines {
		textOp := &text.DrawOptions{}
		textOp.GeoM.Translate(margin, y)
		textOp.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, elem, fontFace, textOp)
		y += g.lineHeight()
	}
	return y
}

func (g *Game) menu() []string {
	var out []string
	if g.showInventory {
		out = append(out, "Inventory (number to use, esc to close):")
		for i, elem := range g.g.Inventory() {
			out = append(out, fmt.Sprintf("  %d) %s x%d", i+1, g.g.ObjectName(elem.Item), elem.Qty))
		}
		return out
	}
	for i, elem := range g.g.Options() {
		out = append(out, fmt.Sprintf("  %d) %s", i+1, elem.Text))
	}
	return out
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	textWidth := g.width - 2*margin

	menu := g.menu()
	menuHeight := float64(len(menu)+2) * g.lineHeight()
	room := int((float64(g.height) - menuHeight - margin) / g.lineHeight())

	var lines []string
	for _, elem := range g.transcript {
		lines = append(lines, wrap(bitmapfont.Face, elem, textWidth)...)
	}
	end := max(0, len(lines)-g.scroll)
	start := max(0, end-room)
	g.drawLines(screen, lines[start:end], margin, colorStory)

	y := float64(g.height) - menuHeight
	y = g.drawLines(screen, menu, y, colorOption)
	statusColor := color.Color(colorStatus)
	if g.g.Err() != nil {
		statusColor = colorError
	}
	g.drawLines(screen, []string{g.status}, y+g.lineHeight(), statusColor)
}

// Layout follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func run(args []string) error {
	cfg, story, err := cli.ParseConfig("gamebook-window", args)
	if err != nil {
		return err
	}
	m, err := vm.New(story.Data, cfg)
	if err != nil {
		return err
	}

	g := &Game{g: m, story: story, status: "1-9: choose, i: inventory, pgup/pgdn: scroll, esc: quit"}
	if err := m.Start(); err != nil {
		g.status = err.Error()
	}
	g.flush()

	title := m.Title()
	if title == "" {
		title = story.ShortName
	}
	ebiten.SetWindowSize(initialScreenWidth, initialScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		InitUnfocused: true,
	}); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
