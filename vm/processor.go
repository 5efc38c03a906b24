// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ezrec/regvm/translate"
)

// Processor is a single-threaded execution unit with a private register bank
// running the program of its shared Context.
type Processor struct {
	Verbose bool // Set to trace every executed instruction.

	Register Registers // Register bank.
	Ticks    int       // Executed instruction counter.

	Dump io.Writer // Destination of the CALL_DUMP state dump, if any. Vm processors default to stdout.

	ctx *Context

	transferred bool // IC written during the current instruction.
}

// NewProcessor creates a processor bound to a shared context.
func NewProcessor(ctx *Context) *Processor {
	return &Processor{ctx: ctx}
}

// Context returns the shared context of the processor.
func (p *Processor) Context() *Context {
	return p.ctx
}

// Reset clears the registers and the tick counter.
func (p *Processor) Reset() {
	clear(p.Register[:])
	p.Ticks = 0
	p.transferred = false
}

// Flag returns the state of a flag.
func (p *Processor) Flag(fl Flag) bool {
	return p.Register.Flags()&fl != 0
}

// SetFlag sets or clears a flag.
func (p *Processor) SetFlag(fl Flag, state bool) {
	flags := p.Register.Flags()
	if state {
		flags |= fl
	} else {
		flags &^= fl
	}
	p.Register[REG_FLAGS].Set(WIDTH_QWORD, uint64(flags))
}

// Memory reads a cell of the shared memory.
func (p *Processor) Memory(addr uint64, w Width) (value uint64, err error) {
	return p.ctx.readMemory(addr, w)
}

// SetMemory writes a cell of the shared memory.
func (p *Processor) SetMemory(addr uint64, w Width, value uint64) (err error) {
	return p.ctx.writeMemory(addr, w, value)
}

// String returns the current processor state as a string.
func (p *Processor) String() (text string) {
	for n := range REGISTER_COUNT {
		var name string
		switch n {
		case REG_FLAGS:
			name = "flags"
		case REG_IC:
			name = "ic"
		default:
			name = fmt.Sprintf("r%d", n)
		}
		val := p.Register[n].Get(WIDTH_QWORD)
		text += fmt.Sprintf("% 5s: %04X_%04X_%04X_%04X\n", name,
			(val>>48)&0xffff, (val>>32)&0xffff, (val>>16)&0xffff, val&0xffff)
	}

	var flags string
	for _, fl := range []Flag{FLAG_ZERO, FLAG_GREATER, FLAG_OVERFLOW} {
		if p.Flag(fl) {
			flags += fl.String()
		} else {
			flags += "-"
		}
	}
	text += fmt.Sprintf("% 5s: %v\n", "cond", flags)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", p.Ticks)

	return
}

// dump is the CALL_DUMP handler.
func (p *Processor) dump() (err error) {
	Logger().Info("dump",
		zap.Uint64("ic", p.Register.Ic()),
		zap.Uint64("flags", uint64(p.Register.Flags())),
		zap.Int("ticks", p.Ticks),
		zap.String("state", p.String()))

	if p.Dump != nil {
		_, err = translate.Fprintf(p.Dump, "%v", p.String())
	}

	return
}

// Tick executes a single fetch-decode-execute cycle.
// Running past the end of the program halts the processor.
func (p *Processor) Tick() (halted bool, err error) {
	ic := p.Register.Ic()

	ins, ok, err := p.ctx.fetch(ic)
	if err != nil {
		return
	}
	if !ok {
		halted = true
		return
	}

	if p.Verbose {
		Logger().Debug("execute", zap.Uint64("ic", ic), zap.Stringer("instruction", ins))
	}

	p.transferred = false
	err = p.Execute(ins)
	if err != nil {
		err = &ErrRuntime{Ic: ic, Instruction: ins, Err: err}
		return
	}

	// One net IC movement per cycle.
	if !p.transferred {
		p.Register[REG_IC].Set(WIDTH_QWORD, ic+1)
	}

	p.Ticks++

	return
}

// Start runs the processor until it halts or an instruction fails.
func (p *Processor) Start() (err error) {
	if p.Verbose {
		Logger().Debug("start", zap.Uint64("ic", p.Register.Ic()))
	}

	for {
		var halted bool
		halted, err = p.Tick()
		if err != nil {
			Logger().Warn("abort", zap.Int("ticks", p.Ticks), zap.Error(err))
			return
		}
		if halted {
			break
		}
	}

	if p.Verbose {
		Logger().Debug("halt", zap.Uint64("ic", p.Register.Ic()), zap.Int("ticks", p.Ticks))
	}

	return
}
