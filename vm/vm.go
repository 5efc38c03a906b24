// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"iter"
	"maps"
	"os"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ezrec/regvm/internal"
)

// Vm owns a table of processors, addressed by integer handles, and the
// Context they share.
type Vm struct {
	lock       sync.Mutex
	processors map[int]*Processor
	ctx        *Context
}

// NewVm creates a VM with an empty program and memory.
func NewVm() *Vm {
	return &Vm{
		processors: map[int]*Processor{},
		ctx:        NewContext(),
	}
}

// Context returns the shared context.
func (vm *Vm) Context() *Context {
	return vm.ctx
}

// LoadInstructions replaces the shared program. The new program is seen by
// every processor of the VM, including those created later.
func (vm *Vm) LoadInstructions(prog Program) (err error) {
	err = vm.ctx.Load(prog)
	if err != nil {
		return
	}

	Logger().Debug("load", zap.Int("instructions", prog.Len()))

	return
}

// SetCall installs a host callback on the shared context.
func (vm *Vm) SetCall(index uint64, fn CallFunc) error {
	return vm.ctx.SetCall(index, fn)
}

// handles returns the live handles in ascending order.
func (vm *Vm) handles() []int {
	return slices.Sorted(maps.Keys(vm.processors))
}

// Handles iterates the live handles in ascending order.
func (vm *Vm) Handles() iter.Seq[int] {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return slices.Values(vm.handles())
}

// NewProcessor creates a processor and returns its handle.
// The lowest free handle is reused before the table grows.
// The processor dumps its state to stdout until Dump is replaced.
func (vm *Vm) NewProcessor() (handle int) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	handle = internal.FirstGap(slices.Values(vm.handles()))
	p := NewProcessor(vm.ctx)
	p.Dump = os.Stdout
	vm.processors[handle] = p

	Logger().Debug("processor create", zap.Int("handle", handle))

	return
}

// DestroyProcessor releases a handle. Unknown handles are ignored.
func (vm *Vm) DestroyProcessor(handle int) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	delete(vm.processors, handle)

	Logger().Debug("processor destroy", zap.Int("handle", handle))
}

// Processor returns the processor of a handle.
func (vm *Vm) Processor(handle int) (p *Processor, err error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	p, ok := vm.processors[handle]
	if !ok {
		err = ErrProcessorIndexOutOfBounds
	}

	return
}
