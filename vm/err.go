package vm

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	// Register and handle errors
	ErrRegisterIndexOutOfBounds  = errors.New(f("register index out of bounds"))
	ErrProcessorIndexOutOfBounds = errors.New(f("processor index out of bounds"))

	// Shared context errors
	ErrInstructionsPoisoned = errors.New(f("instructions poisoned"))
	ErrMemoryPoisoned       = errors.New(f("memory poisoned"))

	// Operand and memory errors
	ErrInvalidOperand    = errors.New(f("invalid operand"))
	ErrAddressNotPresent = errors.New(f("address not present"))
	ErrWidthMismatch     = errors.New(f("width mismatch"))

	// Host call errors
	ErrCallIndexUnknown = errors.New(f("call index unknown"))
	ErrCallReserved     = errors.New(f("call index reserved"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))

	// Expression errors
	ErrParseExpression = errors.New(f("expression invalid"))
)

// ErrCallIndex reports a call to an index with no registered handler.
type ErrCallIndex uint64

func (ec ErrCallIndex) Error() string {
	return f("call index %#x unknown", uint64(ec))
}

// Is matches both ErrCallIndexUnknown and ErrInvalidOperand.
func (ec ErrCallIndex) Is(err error) bool {
	return err == ErrCallIndexUnknown || err == ErrInvalidOperand
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrAssemble indicates the builder position of an invalid instruction.
type ErrAssemble struct {
	Index int
	Err   error
}

func (err *ErrAssemble) Error() string {
	return f("instruction %d %v", err.Index, err.Err)
}

func (err *ErrAssemble) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the instruction counter and instruction of a runtime error.
type ErrRuntime struct {
	Ic          uint64
	Instruction Instruction
	Err         error
}

func (err *ErrRuntime) Error() string {
	return f("ic %#x '%v' %v", err.Ic, err.Instruction, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
