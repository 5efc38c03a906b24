package vm

import (
	"math/bits"
)

// Execute executes a single instruction against the processor.
// The instruction counter is not advanced; see Tick.
func (p *Processor) Execute(ins Instruction) (err error) {
	switch ins.Kind {
	case OP_CALL:
		err = p.execCall(ins.CallDecode())
	case OP_MOV:
		err = p.execMov(ins.MovDecode())
	case OP_JMP:
		err = p.jump(ins.JumpDecode())
	case OP_JZ:
		if p.Flag(FLAG_ZERO) {
			var ic uint64
			ic, err = p.resolve(ins.JumpDecode())
			if err != nil {
				return
			}
			p.SetFlag(FLAG_ZERO, false)
			p.transfer(ic)
		}
	case OP_JNZ:
		if !p.Flag(FLAG_ZERO) {
			err = p.jump(ins.JumpDecode())
		}
	case OP_CMP:
		err = p.execCmp(ins.CmpDecode())
	case OP_ADD:
		err = p.execAdd(ins.AddDecode())
	default:
		err = ErrInstructionInvalid
	}

	return
}

func (p *Processor) execCall(index Operand) (err error) {
	idx, err := p.resolve(index)
	if err != nil {
		return
	}

	if idx == CALL_DUMP {
		return p.dump()
	}

	fn, ok := p.ctx.lookupCall(idx)
	if !ok {
		err = ErrCallIndex(idx)
		return
	}

	ic := p.Register.Ic()
	err = fn(p)
	if err != nil {
		return
	}

	// A callback that moves the IC has made this cycle's transfer.
	if p.Register.Ic() != ic {
		p.transferred = true
	}

	return
}

func (p *Processor) execMov(source, destination Operand) (err error) {
	if !destination.Writable() {
		return ErrInvalidOperand
	}

	value, err := p.resolve(source)
	if err != nil {
		return
	}

	return p.assign(destination, value)
}

func (p *Processor) jump(target Operand) (err error) {
	ic, err := p.resolve(target)
	if err != nil {
		return
	}

	p.transfer(ic)

	return
}

// transfer moves the instruction counter; Tick will not advance it.
func (p *Processor) transfer(ic uint64) {
	p.Register[REG_IC].Set(WIDTH_QWORD, ic)
	p.transferred = true
}

// Jump moves the instruction counter from a host callback.
// The instruction at ic runs next, even when ic is the calling instruction.
func (p *Processor) Jump(ic uint64) {
	p.transfer(ic)
}

func (p *Processor) execCmp(value, comparator Operand) (err error) {
	a, err := p.resolve(value)
	if err != nil {
		return
	}

	b, err := p.resolve(comparator)
	if err != nil {
		return
	}

	p.SetFlag(FLAG_ZERO, a-b == 0)
	p.SetFlag(FLAG_GREATER, a > b)

	return
}

// add returns the sum wrapped to the width, and whether it carried out of the width.
func add(a, b uint64, w Width) (sum uint64, overflow bool) {
	sum, carry := bits.Add64(a, b, 0)
	overflow = carry != 0 || sum > w.Mask()
	sum &= w.Mask()
	return
}

func (p *Processor) execAdd(value, source, destination Operand) (err error) {
	if !destination.Writable() {
		return ErrInvalidOperand
	}

	a, err := p.resolve(source)
	if err != nil {
		return
	}

	b, err := p.resolve(value)
	if err != nil {
		return
	}

	sum, overflow := add(a, b, destinationWidth(destination))

	err = p.assign(destination, sum)
	if err != nil {
		return
	}

	p.SetFlag(FLAG_OVERFLOW, overflow)

	return
}
