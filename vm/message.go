package vm

type MessageType int

const (
	_ MessageType = iota
	MsgDebug
	MsgError
	MsgWarning
	MsgDisplay
	MsgNode
	MsgOptions
	MsgGameOver
)

func (mt MessageType) String() string {
	switch mt {
	case MsgDebug:
		return "Debug"
	case MsgError:
		return "Error"
	case MsgWarning:
		return "Warning"
	case MsgDisplay:
		return "Display"
	case MsgNode:
		return "Node"
	case MsgOptions:
		return "Options"
	case MsgGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

type Message struct {
	Type    MessageType
	Addr    uint32 // Instruction or node address, 0 if none.
	Message string
}

func NewMessage(mt MessageType, addr uint32, msg string) Message {
	return Message{
		Type:    mt,
		Addr:    addr,
		Message: msg,
	}
}

// send publishes a message without ever blocking the VM.
func (vm *VM) send(mt MessageType, addr uint32, msg string) {
	if vm.Messages == nil {
		return
	}
	select {
	case vm.Messages <- NewMessage(mt, addr, msg):
	default:
	}
}
