package vm

import (
	"sync"
	"sync/atomic"
)

// CallFunc is a host callback reached through the call instruction.
type CallFunc func(p *Processor) error

// CALL_DUMP is the reserved call index that dumps the processor state.
const CALL_DUMP = 0

// Context is the state shared by every processor of a Vm: the loaded
// program, the memory store and the host call table.
//
// Program and memory each sit behind a reader/writer lock held for a single
// fetch, read or write. A panic while a lock is held poisons it; every later
// access then fails with ErrInstructionsPoisoned or ErrMemoryPoisoned.
type Context struct {
	programLock     sync.RWMutex
	programPoisoned atomic.Bool
	program         Program

	memoryLock     sync.RWMutex
	memoryPoisoned atomic.Bool
	memory         Memory

	callLock sync.RWMutex
	call     map[uint64]CallFunc
}

// NewContext creates an empty shared context.
func NewContext() *Context {
	return &Context{
		call: map[uint64]CallFunc{},
	}
}

// poison marks the lock flag if the holder panics, then re-raises the panic.
func poison(flag *atomic.Bool) {
	if r := recover(); r != nil {
		flag.Store(true)
		panic(r)
	}
}

func (ctx *Context) withProgram(exclusive bool, fn func(prog *Program) error) (err error) {
	if ctx.programPoisoned.Load() {
		return ErrInstructionsPoisoned
	}

	if exclusive {
		ctx.programLock.Lock()
		defer ctx.programLock.Unlock()
	} else {
		ctx.programLock.RLock()
		defer ctx.programLock.RUnlock()
	}
	defer poison(&ctx.programPoisoned)

	if ctx.programPoisoned.Load() {
		return ErrInstructionsPoisoned
	}

	return fn(&ctx.program)
}

func (ctx *Context) withMemory(exclusive bool, fn func(mem *Memory) error) (err error) {
	if ctx.memoryPoisoned.Load() {
		return ErrMemoryPoisoned
	}

	if exclusive {
		ctx.memoryLock.Lock()
		defer ctx.memoryLock.Unlock()
	} else {
		ctx.memoryLock.RLock()
		defer ctx.memoryLock.RUnlock()
	}
	defer poison(&ctx.memoryPoisoned)

	if ctx.memoryPoisoned.Load() {
		return ErrMemoryPoisoned
	}

	return fn(&ctx.memory)
}

// Load replaces the shared program.
func (ctx *Context) Load(prog Program) (err error) {
	return ctx.withProgram(true, func(p *Program) error {
		*p = prog
		return nil
	})
}

// Program returns the current shared program.
func (ctx *Context) Program() (prog Program, err error) {
	err = ctx.withProgram(false, func(p *Program) error {
		prog = *p
		return nil
	})
	return
}

// fetch returns the instruction at ic; ok is false when ic is past the end.
func (ctx *Context) fetch(ic uint64) (ins Instruction, ok bool, err error) {
	err = ctx.withProgram(false, func(prog *Program) error {
		ins, ok = prog.At(ic)
		return nil
	})
	return
}

func (ctx *Context) readMemory(addr uint64, w Width) (value uint64, err error) {
	err = ctx.withMemory(false, func(mem *Memory) (err error) {
		value, err = mem.Read(addr, w)
		return
	})
	return
}

func (ctx *Context) writeMemory(addr uint64, w Width, value uint64) (err error) {
	return ctx.withMemory(true, func(mem *Memory) error {
		return mem.Write(addr, w, value)
	})
}

// ReadMemory reads a cell of the shared memory.
func (ctx *Context) ReadMemory(addr uint64, w Width) (value uint64, err error) {
	return ctx.readMemory(addr, w)
}

// WriteMemory writes a cell of the shared memory.
func (ctx *Context) WriteMemory(addr uint64, w Width, value uint64) (err error) {
	return ctx.writeMemory(addr, w, value)
}

// MemoryLen returns the number of present memory cells.
func (ctx *Context) MemoryLen() (count int, err error) {
	err = ctx.withMemory(false, func(mem *Memory) error {
		count = mem.Len()
		return nil
	})
	return
}

// SetCall installs, or removes when fn is nil, a host callback.
// CALL_DUMP cannot be replaced.
func (ctx *Context) SetCall(index uint64, fn CallFunc) (err error) {
	if index == CALL_DUMP {
		err = ErrCallReserved
		return
	}

	ctx.callLock.Lock()
	defer ctx.callLock.Unlock()

	if ctx.call == nil {
		ctx.call = map[uint64]CallFunc{}
	}

	if fn == nil {
		delete(ctx.call, index)
	} else {
		ctx.call[index] = fn
	}

	return
}

func (ctx *Context) lookupCall(index uint64) (fn CallFunc, ok bool) {
	ctx.callLock.RLock()
	defer ctx.callLock.RUnlock()

	fn, ok = ctx.call[index]
	return
}
