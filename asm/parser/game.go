package parser

// GameData is the parsed program, read only once parsing returns.
type GameData struct {
	Name      string
	Strings   *Interner
	Symbols   *SymbolTable
	Nodes     []*Node   // Declaration order.
	Objects   []*Object // Declaration order.
	Constants map[string]uint32

	// String labels of the header declarations, empty when absent.
	Title   string
	Byline  string
	Version string

	nodes   map[string]*Node
	objects map[string]*Object
}

func newGameData(name string) *GameData {
	return &GameData{
		Name:      name,
		Strings:   NewInterner(),
		Symbols:   NewSymbolTable(),
		Constants: map[string]uint32{},
		nodes:     map[string]*Node{},
		objects:   map[string]*Object{},
	}
}

func (g *GameData) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

func (g *GameData) Object(name string) (*Object, bool) {
	o, ok := g.objects[name]
	return o, ok
}
