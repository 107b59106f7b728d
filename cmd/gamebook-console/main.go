package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	_ "github.com/tliron/commonlog/simple"

	"go.creack.net/gamebook/cli"
	"go.creack.net/gamebook/vm"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	storyColor  = lipgloss.Color("#E8E2D0")
	optionColor = lipgloss.Color("#10B981")
	errorColor  = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	storyStyle  = lipgloss.NewStyle().Foreground(storyColor)
	optionStyle = lipgloss.NewStyle().Foreground(optionColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const helpText = "number: choose  :inv  :party  :use <item>  :equip <char> <item>  :unequip <char> <slot>  :quit"

type entry struct {
	input  string
	output string
	isErr  bool
}

type consoleModel struct {
	textInput     textinput.Model
	g             *vm.VM
	story         *cli.Story
	history       []entry
	width         int
	showInventory bool
	showParty     bool
	quitting      bool
}

type keyMap struct {
	Enter key.Binding
	Quit  key.Binding
	Inv   key.Binding
	Party key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Inv: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle inventory"),
	),
	Party: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "toggle party"),
	),
}

func newConsoleModel(g *vm.VM, story *cli.Story) consoleModel {
	ti := textinput.New()
	ti.Placeholder = "option number or :command"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "> "

	m := consoleModel{textInput: ti, g: g, story: story}
	if err := g.Start(); err != nil {
		m.history = append(m.history, entry{output: err.Error(), isErr: true})
	}
	m.flush("")
	return m
}

// flush moves the pending story text into the history.
func (m *consoleModel) flush(input string) {
	out := strings.TrimSpace(m.g.TakeOutput())
	if out != "" || input != "" {
		m.history = append(m.history, entry{input: input, output: out})
	}
	if m.g.State() == vm.Finished {
		if err := m.g.Err(); err != nil {
			m.history = append(m.history, entry{output: err.Error(), isErr: true})
		}
	}
}

func (m *consoleModel) fail(input string, err error) {
	m.history = append(m.history, entry{input: input, output: err.Error(), isErr: true})
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Inv):
			m.showInventory = !m.showInventory
			return m, nil

		case key.Matches(msg, keys.Party):
			m.showParty = !m.showParty
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.SetValue("")
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}
			m.choose(input)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *consoleModel) choose(input string) {
	n, err := strconv.Atoi(input)
	if err != nil {
		m.fail(input, fmt.Errorf("not an option number: %q", input))
		return
	}
	if err := m.g.ChooseOption(n - 1); err != nil {
		m.fail(input, err)
		m.flush("")
		return
	}
	m.flush(input)
}

// lookup resolves a 1 based index or a case insensitive object name.
func (m *consoleModel) lookup(arg string, ids []uint32) (uint32, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(ids) {
			return 0, false
		}
		return ids[n-1], true
	}
	for _, id := range ids {
		if strings.EqualFold(m.g.ObjectName(id), arg) {
			return id, true
		}
		if m.story.Symbols != nil {
			if name, ok := m.story.Symbols.NameOf(id); ok && name == arg {
				return id, true
			}
		}
	}
	return 0, false
}

func (m *consoleModel) inventoryIDs() []uint32 {
	var out []uint32
	for _, elem := range m.g.Inventory() {
		out = append(out, elem.Item)
	}
	return out
}

func (m consoleModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)

	switch parts[0] {
	case ":help", ":h":
		m.history = append(m.history, entry{input: input, output: helpText})
	case ":inv", ":i":
		m.showInventory = !m.showInventory
	case ":party", ":p":
		m.showParty = !m.showParty
	case ":use", ":u":
		if len(parts) != 2 {
			m.fail(input, fmt.Errorf("usage: :use <item>"))
			break
		}
		item, ok := m.lookup(parts[1], m.inventoryIDs())
		if !ok {
			m.fail(input, fmt.Errorf("no %q in inventory", parts[1]))
			break
		}
		if err := m.g.UseItem(item); err != nil {
			m.fail(input, err)
			break
		}
		m.flush(input)
	case ":equip", ":e":
		if len(parts) != 3 {
			m.fail(input, fmt.Errorf("usage: :equip <char> <item>"))
			break
		}
		char, ok := m.lookup(parts[1], m.g.Party())
		if !ok {
			m.fail(input, fmt.Errorf("no %q in party", parts[1]))
			break
		}
		item, ok := m.lookup(parts[2], m.inventoryIDs())
		if !ok {
			m.fail(input, fmt.Errorf("no %q in inventory", parts[2]))
			break
		}
		if err := m.g.EquipItem(char, item); err != nil {
			m.fail(input, err)
			break
		}
		m.history = append(m.history, entry{input: input, output: fmt.Sprintf("%s equips the %s.", m.g.ObjectName(char), m.g.ObjectName(item))})
	case ":unequip":
		if len(parts) != 3 {
			m.fail(input, fmt.Errorf("usage: :unequip <char> <slot>"))
			break
		}
		char, ok := m.lookup(parts[1], m.g.Party())
		if !ok {
			m.fail(input, fmt.Errorf("no %q in party", parts[1]))
			break
		}
		slot, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			m.fail(input, fmt.Errorf("invalid slot %q", parts[2]))
			break
		}
		if err := m.g.UnequipItem(char, uint32(slot)); err != nil {
			m.fail(input, err)
		}
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.fail(input, fmt.Errorf("unknown command: %s", parts[0]))
	}
	return m, nil
}

func (m consoleModel) inventoryView() string {
	inv := m.g.Inventory()
	if len(inv) == 0 {
		return mutedStyle.Render("You carry nothing.")
	}
	var b strings.Builder
	b.WriteString("Inventory")
	for i, elem := range inv {
		fmt.Fprintf(&b, "\n%d) %s x%d", i+1, m.g.ObjectName(elem.Item), elem.Qty)
	}
	return b.String()
}

func (m consoleModel) partyView() string {
	var b strings.Builder
	b.WriteString("Party")
	for i, id := range m.g.Party() {
		c, err := m.g.Character(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "\n%d) %s", i+1, m.g.ObjectName(id))
		for _, s := range c.SkillList() {
			fmt.Fprintf(&b, "\n   %s %d/%d", m.g.ObjectName(s.Skill), s.Current(), s.Max)
		}
	}
	return b.String()
}

func (m consoleModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.g.Title()
	if title == "" {
		title = m.story.ShortName
	}
	b.WriteString(headerStyle.Render(title))
	if by := m.g.Byline(); by != "" {
		b.WriteString(mutedStyle.Render(by))
	}
	b.WriteString("\n\n")

	wrap := storyStyle
	if m.width > 4 {
		wrap = wrap.Width(m.width - 2)
	}
	for _, elem := range m.history {
		if elem.input != "" {
			b.WriteString(promptStyle.Render("> "+elem.input) + "\n")
		}
		if elem.output == "" {
			continue
		}
		if elem.isErr {
			b.WriteString(errorStyle.Render(elem.output) + "\n\n")
			continue
		}
		b.WriteString(wrap.Render(elem.output) + "\n\n")
	}

	var panels []string
	if m.showInventory {
		panels = append(panels, panelStyle.Render(m.inventoryView()))
	}
	if m.showParty {
		panels = append(panels, panelStyle.Render(m.partyView()))
	}
	if len(panels) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n")
	}

	if m.g.State() == vm.Finished {
		b.WriteString(mutedStyle.Render("*** The End *** (ctrl+c to quit)") + "\n")
		return b.String()
	}
	for i, elem := range m.g.Options() {
		b.WriteString(optionStyle.Render(fmt.Sprintf("  %d) %s", i+1, elem.Text)) + "\n")
	}
	b.WriteString("\n" + m.textInput.View() + "\n")
	b.WriteString(mutedStyle.Render(helpText) + "\n")
	return b.String()
}

func run(args []string) error {
	cfg, story, err := cli.ParseConfig("gamebook-console", args)
	if err != nil {
		return err
	}
	g, err := vm.New(story.Data, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newConsoleModel(g, story)).Run()
	return err
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
