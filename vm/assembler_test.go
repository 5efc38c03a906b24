package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	prog, err := asm.Compile()
	assert.NoError(err)
	assert.Equal(0, prog.Len())

	asm.Call(imm(0)).
		Mov(imm(1), r(0)).
		Jmp(imm(0)).
		Jz(imm(1)).
		Jnz(r(3)).
		Cmp(r(0), MakeMemory(WIDTH_BYTE, 2)).
		Add(imm(1), r(0), MakeMemoryRegister(WIDTH_WORD, 4))
	assert.Equal(7, asm.Len())

	prog, err = asm.Compile()
	assert.NoError(err)

	var kinds []Kind
	for ic, ins := range prog.All() {
		assert.Equal(uint64(len(kinds)), ic)
		kinds = append(kinds, ins.Kind)
	}
	assert.Equal([]Kind{OP_CALL, OP_MOV, OP_JMP, OP_JZ, OP_JNZ, OP_CMP, OP_ADD}, kinds)

	ins, ok := prog.At(6)
	assert.True(ok)
	value, source, destination := ins.AddDecode()
	assert.Equal(imm(1), value)
	assert.Equal(r(0), source)
	assert.Equal(MakeMemoryRegister(WIDTH_WORD, 4), destination)
	assert.Equal("add 0x1, qword r0, word [r4]", ins.String())

	_, ok = prog.At(7)
	assert.False(ok)
}

func TestAssemblerPure(t *testing.T) {
	assert := assert.New(t)

	build := func() *Assembler {
		return NewAssembler().
			Label("top").
			Mov(imm(1), r(0)).
			Jmp(MakeLabel("top"))
	}

	asm := build()
	first, err := asm.Compile()
	assert.NoError(err)
	second, err := asm.Compile()
	assert.NoError(err)
	other, err := build().Compile()
	assert.NoError(err)

	assert.True(first.Equal(second))
	assert.True(first.Equal(other))

	// Labels are resolved in the program only.
	ins, _ := first.At(1)
	assert.Equal(imm(0), ins.JumpDecode())
	assert.Equal(OPERAND_LABEL, asm.code[1].Args[0].Kind)
	assert.Equal(map[string]int{"top": 0}, asm.Labels())
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	_, err := NewAssembler().Jmp(MakeLabel("nowhere")).Compile()
	assert.Equal(ErrLabelMissing("nowhere"), errors.Unwrap(err))

	_, err = NewAssembler().
		Label("a").
		Mov(imm(1), r(0)).
		Label("a").
		Compile()
	assert.ErrorIs(err, ErrLabelDuplicate)

	var asmErr *ErrAssemble
	assert.True(errors.As(err, &asmErr))
	assert.Equal(1, asmErr.Index)
}

func TestAssemblerValidate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		asm  *Assembler
		err  error
	}){
		{"mov_immediate_destination", NewAssembler().Mov(imm(1), imm(2)), ErrInvalidOperand},
		{"add_none_destination", NewAssembler().Add(imm(1), r(0), Operand{}), ErrInvalidOperand},
		{"cmp_none", NewAssembler().Cmp(Operand{}, r(0)), ErrInvalidOperand},
		{"call_none", NewAssembler().Call(Operand{}), ErrInvalidOperand},
		{"register_bounds", NewAssembler().Mov(imm(1), r(16)), ErrInvalidOperand},
		{"width", NewAssembler().Jmp(MakeMemory(Width(7), 0)), ErrInvalidOperand},
	}

	for _, entry := range table {
		_, err := entry.asm.Compile()
		assert.ErrorIs(err, entry.err, entry.name)
	}

	_, err := NewProgram(Instruction{Kind: Kind(42)})
	assert.ErrorIs(err, ErrInstructionInvalid)

	_, err = NewProgram(makeInstruction(OP_JMP, imm(0), imm(1)))
	assert.ErrorIs(err, ErrInstructionInvalid)
}

func TestProgramImmutable(t *testing.T) {
	assert := assert.New(t)

	code := []Instruction{makeInstruction(OP_MOV, imm(1), r(0))}
	prog, err := NewProgram(code...)
	assert.NoError(err)

	code[0] = makeInstruction(OP_JMP, imm(9))
	ins, _ := prog.At(0)
	assert.Equal(OP_MOV, ins.Kind)
	assert.Equal(1, prog.Len())
}
