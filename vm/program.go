package vm

import (
	"iter"
	"slices"
)

// Program is a compiled, immutable instruction stream indexed by the instruction counter.
type Program struct {
	code []Instruction
}

// NewProgram validates and copies the instructions into a Program.
func NewProgram(code ...Instruction) (prog Program, err error) {
	for n, ins := range code {
		err = ins.Validate()
		if err != nil {
			err = &ErrAssemble{Index: n, Err: err}
			return
		}
	}

	prog.code = slices.Clone(code)
	return
}

// Len returns the number of instructions; it is also the halt sentinel.
func (prog Program) Len() int {
	return len(prog.code)
}

// At returns the instruction at ic, or false if ic is past the end.
func (prog Program) At(ic uint64) (ins Instruction, ok bool) {
	if ic >= uint64(len(prog.code)) {
		return
	}
	return prog.code[ic], true
}

// All iterates the instructions with their instruction counter.
func (prog Program) All() iter.Seq2[uint64, Instruction] {
	return func(yield func(ic uint64, ins Instruction) bool) {
		for n, ins := range prog.code {
			if !yield(uint64(n), ins) {
				return
			}
		}
	}
}

// Equal returns true if both programs hold the same instructions.
func (prog Program) Equal(other Program) bool {
	return slices.Equal(prog.code, other.code)
}
