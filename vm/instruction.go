package vm

import (
	"fmt"
	"strings"
)

// Kind is an instruction operation.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_CALL = Kind(0) // call
	OP_MOV  = Kind(1) // mov
	OP_JMP  = Kind(2) // jmp
	OP_JZ   = Kind(3) // jz
	OP_JNZ  = Kind(4) // jnz
	OP_CMP  = Kind(5) // cmp
	OP_ADD  = Kind(6) // add
)

// Arity returns the number of operands used by the kind, or -1 if unknown.
func (k Kind) Arity() int {
	switch k {
	case OP_CALL, OP_JMP, OP_JZ, OP_JNZ:
		return 1
	case OP_MOV, OP_CMP:
		return 2
	case OP_ADD:
		return 3
	}
	return -1
}

// Instruction is a single immutable operation over typed operands.
type Instruction struct {
	Kind Kind
	Args [3]Operand
}

func makeInstruction(kind Kind, args ...Operand) (ins Instruction) {
	ins.Kind = kind
	copy(ins.Args[:], args)
	return
}

// CallDecode returns the call index operand.
func (ins Instruction) CallDecode() (index Operand) {
	return ins.Args[0]
}

// MovDecode returns the mov source and destination.
func (ins Instruction) MovDecode() (source, destination Operand) {
	return ins.Args[0], ins.Args[1]
}

// JumpDecode returns the target of a jmp, jz or jnz.
func (ins Instruction) JumpDecode() (target Operand) {
	return ins.Args[0]
}

// CmpDecode returns the cmp value and comparator.
func (ins Instruction) CmpDecode() (value, comparator Operand) {
	return ins.Args[0], ins.Args[1]
}

// AddDecode returns the add value, source and destination.
func (ins Instruction) AddDecode() (value, source, destination Operand) {
	return ins.Args[0], ins.Args[1], ins.Args[2]
}

// Validate checks the operand shapes of the instruction.
func (ins Instruction) Validate() (err error) {
	arity := ins.Kind.Arity()
	if arity < 0 {
		return ErrInstructionInvalid
	}

	for n, arg := range ins.Args {
		if n >= arity {
			if arg.Kind != OPERAND_NONE {
				return ErrInstructionInvalid
			}
			continue
		}
		if !arg.Readable() {
			return ErrInvalidOperand
		}
	}

	var destination Operand
	switch ins.Kind {
	case OP_MOV:
		_, destination = ins.MovDecode()
	case OP_ADD:
		_, _, destination = ins.AddDecode()
	default:
		return
	}

	if !destination.Writable() {
		err = ErrInvalidOperand
	}

	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	arity := ins.Kind.Arity()
	if arity < 0 {
		return ins.Kind.String()
	}

	args := make([]string, arity)
	for n := range arity {
		args[n] = ins.Args[n].String()
	}

	return fmt.Sprintf("%v %v", ins.Kind, strings.Join(args, ", "))
}
