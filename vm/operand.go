package vm

import (
	"fmt"
)

// OperandKind is the tag of an Operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE            = OperandKind(0) // none
	OPERAND_IMMEDIATE       = OperandKind(1) // imm
	OPERAND_REGISTER        = OperandKind(2) // reg
	OPERAND_MEMORY          = OperandKind(3) // mem
	OPERAND_MEMORY_REGISTER = OperandKind(4) // memreg
	OPERAND_LABEL           = OperandKind(5) // label
)

// Operand is a typed reference to an instruction's value source or destination.
//
//   - OPERAND_IMMEDIATE: Value is the literal.
//   - OPERAND_REGISTER: Value is the register index, Width the view.
//   - OPERAND_MEMORY: Value is the address, Width the access size.
//   - OPERAND_MEMORY_REGISTER: Value is the register holding the address.
//   - OPERAND_LABEL: Label names an Assembler label; resolved at Compile.
type Operand struct {
	Kind  OperandKind
	Width Width
	Value uint64
	Label string
}

// MakeImmediate returns a literal operand.
func MakeImmediate(value uint64) Operand {
	return Operand{Kind: OPERAND_IMMEDIATE, Width: WIDTH_QWORD, Value: value}
}

// MakeRegister returns a register view operand.
func MakeRegister(w Width, index int) Operand {
	return Operand{Kind: OPERAND_REGISTER, Width: w, Value: uint64(index)}
}

// MakeMemory returns a memory operand at a fixed address.
func MakeMemory(w Width, addr uint64) Operand {
	return Operand{Kind: OPERAND_MEMORY, Width: w, Value: addr}
}

// MakeMemoryRegister returns a memory operand addressed by the full value of a register.
func MakeMemoryRegister(w Width, index int) Operand {
	return Operand{Kind: OPERAND_MEMORY_REGISTER, Width: w, Value: uint64(index)}
}

// MakeLabel returns a reference to an Assembler label.
func MakeLabel(name string) Operand {
	return Operand{Kind: OPERAND_LABEL, Width: WIDTH_QWORD, Label: name}
}

// Readable returns true if the operand can be resolved to a value.
func (op Operand) Readable() bool {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		return true
	case OPERAND_REGISTER, OPERAND_MEMORY_REGISTER:
		return op.Width.Valid() && op.Value < REGISTER_COUNT
	case OPERAND_MEMORY:
		return op.Width.Valid()
	}
	return false
}

// Writable returns true if the operand can be a destination.
func (op Operand) Writable() bool {
	return op.Kind != OPERAND_IMMEDIATE && op.Readable()
}

// String returns the assembly language representation of the operand.
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("%#x", op.Value)
	case OPERAND_REGISTER:
		return fmt.Sprintf("%v r%d", op.Width, op.Value)
	case OPERAND_MEMORY:
		return fmt.Sprintf("%v [%#x]", op.Width, op.Value)
	case OPERAND_MEMORY_REGISTER:
		return fmt.Sprintf("%v [r%d]", op.Width, op.Value)
	case OPERAND_LABEL:
		return ":" + op.Label
	}
	return op.Kind.String()
}

// resolve reads the value named by the operand.
func (p *Processor) resolve(op Operand) (value uint64, err error) {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		value = op.Value
	case OPERAND_REGISTER:
		value, err = p.Register.Get(registerIndex(op.Value), op.Width)
	case OPERAND_MEMORY:
		value, err = p.ctx.readMemory(op.Value, op.Width)
	case OPERAND_MEMORY_REGISTER:
		var addr uint64
		addr, err = p.Register.Get(registerIndex(op.Value), WIDTH_QWORD)
		if err != nil {
			return
		}
		value, err = p.ctx.readMemory(addr, op.Width)
	default:
		err = ErrInvalidOperand
	}

	return
}

// assign writes the value, truncated to the operand width, to the destination.
func (p *Processor) assign(op Operand, value uint64) (err error) {
	switch op.Kind {
	case OPERAND_REGISTER:
		index := registerIndex(op.Value)
		err = p.Register.Set(index, op.Width, value)
		if err == nil && index == REG_IC {
			p.transferred = true
		}
	case OPERAND_MEMORY:
		err = p.ctx.writeMemory(op.Value, op.Width, value)
	case OPERAND_MEMORY_REGISTER:
		var addr uint64
		addr, err = p.Register.Get(registerIndex(op.Value), WIDTH_QWORD)
		if err != nil {
			return
		}
		err = p.ctx.writeMemory(addr, op.Width, value)
	default:
		err = ErrInvalidOperand
	}

	return
}

// destinationWidth returns the width an arithmetic result is wrapped to.
func destinationWidth(op Operand) Width {
	if op.Kind == OPERAND_IMMEDIATE || !op.Width.Valid() {
		return WIDTH_QWORD
	}
	return op.Width
}

// registerIndex clamps an operand value into the int range checked by Registers.
func registerIndex(value uint64) int {
	if value >= REGISTER_COUNT {
		return -1
	}
	return int(value)
}
