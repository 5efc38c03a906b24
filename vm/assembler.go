// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"maps"
	"slices"
)

// Assembler accumulates instructions through chained calls and compiles
// them into a Program. It holds no VM state and only checks operand shapes.
type Assembler struct {
	code  []Instruction
	label map[string]int
	err   error // First label definition error.
}

// NewAssembler constructs an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

func (asm *Assembler) push(kind Kind, args ...Operand) *Assembler {
	asm.code = append(asm.code, makeInstruction(kind, args...))
	return asm
}

// Len returns the number of instructions added so far.
func (asm *Assembler) Len() int {
	return len(asm.code)
}

// Label names the index of the next instruction, for use with MakeLabel.
func (asm *Assembler) Label(name string) *Assembler {
	if asm.label == nil {
		asm.label = map[string]int{}
	}

	_, ok := asm.label[name]
	if ok {
		if asm.err == nil {
			asm.err = &ErrAssemble{Index: len(asm.code), Err: ErrLabelDuplicate}
		}
		return asm
	}

	asm.label[name] = len(asm.code)

	return asm
}

// Call appends a host call.
func (asm *Assembler) Call(index Operand) *Assembler {
	return asm.push(OP_CALL, index)
}

// Mov appends a move from source to destination.
func (asm *Assembler) Mov(source, destination Operand) *Assembler {
	return asm.push(OP_MOV, source, destination)
}

// Jmp appends an unconditional jump.
func (asm *Assembler) Jmp(target Operand) *Assembler {
	return asm.push(OP_JMP, target)
}

// Jz appends a jump taken when the zero flag is set.
func (asm *Assembler) Jz(target Operand) *Assembler {
	return asm.push(OP_JZ, target)
}

// Jnz appends a jump taken when the zero flag is clear.
func (asm *Assembler) Jnz(target Operand) *Assembler {
	return asm.push(OP_JNZ, target)
}

// Cmp appends a comparison of value against comparator.
func (asm *Assembler) Cmp(value, comparator Operand) *Assembler {
	return asm.push(OP_CMP, value, comparator)
}

// Add appends destination = source + value.
func (asm *Assembler) Add(value, source, destination Operand) *Assembler {
	return asm.push(OP_ADD, value, source, destination)
}

// Labels returns a copy of the label table.
func (asm *Assembler) Labels() map[string]int {
	return maps.Clone(asm.label)
}

// Compile resolves labels, validates every instruction and returns the
// program. The assembler is left unchanged.
func (asm *Assembler) Compile() (prog Program, err error) {
	if asm.err != nil {
		err = asm.err
		return
	}

	code := slices.Clone(asm.code)
	for n := range code {
		ins := &code[n]
		for a := range ins.Args {
			arg := &ins.Args[a]
			if arg.Kind != OPERAND_LABEL {
				continue
			}
			index, ok := asm.label[arg.Label]
			if !ok {
				err = &ErrAssemble{Index: n, Err: ErrLabelMissing(arg.Label)}
				return
			}
			*arg = MakeImmediate(uint64(index))
		}
	}

	return NewProgram(code...)
}
