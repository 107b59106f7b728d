// Package vm runs compiled gamebook images.
package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"go.creack.net/gamebook/op"
)

var logger = commonlog.GetLogger("gamebook.vm")

// MaxCallDepth bounds nested do-node calls.
const MaxCallDepth = 256

// State of the VM, as seen by the host.
type State int

const (
	Idle State = iota
	Running
	AwaitingChoice
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case AwaitingChoice:
		return "awaiting choice"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Config struct {
	Rand        *rand.Rand // Defaults to a clock seeded source.
	Rules       Rules      // Defaults to DefaultRules.
	OutputLimit int        // Bytes of output kept, 0 for unlimited.
	Trace       bool       // Log every instruction.
}

// Option is a choice offered to the player.
type Option struct {
	Text  string
	Dest  uint32
	Extra uint32
}

// VM executes one image against its own game state.
// It is not safe for concurrent use.
type VM struct {
	Config Config
	Image  *Image

	state   State
	err     error
	output  []byte
	options []Option
	started bool

	current  uint32 // Top level node being run.
	location uint32 // Node offered back by add-return.

	game

	// Messages, when set, receives trace and status events.
	// Sends never block: events are dropped when the channel is full.
	Messages chan Message
}

// New loads the image. The VM stays Idle until Start.
func New(buf []byte, cfg Config) (*VM, error) {
	img, err := LoadImage(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules{}
	}
	return &VM{
		Config: cfg,
		Image:  img,
		game:   newGame(),
	}, nil
}

// Start runs the start node.
func (vm *VM) Start() error {
	if vm.state != Idle {
		return ErrNotRunning
	}
	return vm.enter(vm.Image.Header.StartNode)
}

// ChooseOption follows option i of the current list.
func (vm *VM) ChooseOption(i int) error {
	if vm.state != AwaitingChoice {
		return ErrNotRunning
	}
	if i < 0 || i >= len(vm.options) {
		return fmt.Errorf("option %d of %d: %w", i, len(vm.options), ErrBadOption)
	}
	return vm.enter(vm.options[i].Dest)
}

// enter runs a top level node with a cleared option list.
func (vm *VM) enter(node uint32) error {
	vm.options = nil
	vm.current = node
	vm.state = Running
	vm.send(MsgNode, node, "")

	if _, err := vm.call(node, 0); err != nil {
		return vm.fail(err)
	}

	if len(vm.options) == 0 {
		vm.state = Finished
		vm.send(MsgGameOver, node, "no options left")
		return nil
	}
	vm.state = AwaitingChoice
	vm.send(MsgOptions, node, fmt.Sprintf("%d options", len(vm.options)))
	return nil
}

func (vm *VM) fail(err error) error {
	vm.state = Finished
	vm.err = err
	vm.send(MsgError, vm.current, err.Error())
	logger.Errorf("%s", err)
	return err
}

// frame is one node call: its own stack and instruction cursor.
type frame struct {
	node  uint32
	c     *op.Cursor
	stack []uint32
	depth int
}

func (f *frame) push(v uint32) { f.stack = append(f.stack, v) }

func (f *frame) pop() (uint32, error) {
	if len(f.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

func (f *frame) jump(dest uint32) error {
	return f.c.SetPos(dest)
}

// call runs the node at addr to its end instruction and returns the
// value left on top of its stack, 0 when empty.
func (vm *VM) call(node uint32, depth int) (uint32, error) {
	if depth >= MaxCallDepth {
		return 0, &Error{Addr: node, Err: ErrCallDepth}
	}
	if err := vm.Image.checkNode(node); err != nil {
		return 0, &Error{Addr: node, Err: err}
	}
	f := &frame{node: node, c: op.NewCursor(vm.Image.buf, node+1), depth: depth}

	var args [3]uint32
	for {
		at := f.c.Pos()
		code, err := f.c.ReadByte()
		if err != nil {
			return 0, &Error{Addr: at, Err: err}
		}
		oc, ok := op.ByCode(code)
		if !ok {
			return 0, &Error{Addr: at, Err: fmt.Errorf("0x%02x: %w", code, ErrUnknownOpcode)}
		}
		if code == op.OpEnd {
			if len(f.stack) == 0 {
				return 0, nil
			}
			return f.stack[len(f.stack)-1], nil
		}

		// Operands decode left to right, each marker pops the stack.
		for i := range oc.Arity {
			w, err := f.c.ReadWord()
			if err != nil {
				return 0, &Error{Addr: at, Op: oc.Name, Err: err}
			}
			if op.DecodeOperand(w).Kind == op.Pop {
				if w, err = f.pop(); err != nil {
					return 0, &Error{Addr: at, Op: oc.Name, Err: err}
				}
			}
			args[i] = w
		}
		if vm.Config.Trace {
			msg := fmt.Sprintf("%s %v stack=%v", oc.Name, args[:oc.Arity], f.stack)
			logger.Debugf("0x%04x %s", at, msg)
			vm.send(MsgDebug, at, msg)
		}

		fn, ok := ops[code]
		if !ok {
			return 0, &Error{Addr: at, Op: oc.Name, Err: ErrUnknownOpcode}
		}
		if err := fn(vm, f, args[:oc.Arity]); err != nil {
			var e *Error
			if errors.As(err, &e) {
				return 0, err
			}
			return 0, &Error{Addr: at, Op: oc.Name, Err: err}
		}
	}
}

// say appends text to the output, keeping at most OutputLimit bytes.
func (vm *VM) say(s string) {
	vm.output = append(vm.output, s...)
	vm.send(MsgDisplay, vm.current, s)
	if limit := vm.Config.OutputLimit; limit > 0 && len(vm.output) > limit {
		cut := len(vm.output) - limit
		for cut < len(vm.output) && !utf8.RuneStart(vm.output[cut]) {
			cut++
		}
		vm.output = slices.Clone(vm.output[cut:])
	}
}

func (vm *VM) addOption(name, dest, extra uint32) error {
	text := "continue"
	if name != op.Continue {
		s, err := vm.Image.Text(name)
		if err != nil {
			return err
		}
		text = s
	}
	if err := vm.Image.checkNode(dest); err != nil {
		return err
	}
	vm.options = append(vm.options, Option{Text: text, Dest: dest, Extra: extra})
	return nil
}
