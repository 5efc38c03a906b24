// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/regvm/internal"
	"github.com/ezrec/regvm/vm"
)

const (
	COUNTER_BASE  = 0 // Register holding the loop counter.
	COUNTER_LIMIT = 1 // Register holding the loop limit.
)

var _emulator_defines = map[string]uint64{
	"COUNTER_BASE":  COUNTER_BASE,
	"COUNTER_LIMIT": COUNTER_LIMIT,
}

// Emulator state. VM + program + the processors running it.
type Emulator struct {
	Verbose    bool       // If set, enables verbose logging.
	*vm.Vm                // Reference to the VM.
	Program    vm.Program // Currently loaded program.
	Processors int        // Number of processors started by Reset.
	Dump       io.Writer  // Destination of processor state dumps.

	handles []int
}

// lockedWriter serializes writes of processors running on separate goroutines.
type lockedWriter struct {
	lock sync.Mutex
	w    io.Writer
}

func (lw *lockedWriter) Write(data []byte) (n int, err error) {
	lw.lock.Lock()
	defer lw.lock.Unlock()

	return lw.w.Write(data)
}

// NewEmulator creates a new emulator with a single processor.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Vm:         vm.NewVm(),
		Processors: 1,
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, uint64] {
	processors := map[string]uint64{
		"PROCESSORS": uint64(emu.Processors),
	}
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		maps.All(processors),
		vm.Defines(),
	)
}

// Eval evaluates an expression against the emulator defines.
func (emu *Emulator) Eval(expr string) (uint64, error) {
	return vm.Eval(expr, emu.Defines())
}

// Reset loads the program and replaces all processors with fresh ones.
func (emu *Emulator) Reset() (err error) {
	err = emu.Vm.LoadInstructions(emu.Program)
	if err != nil {
		return
	}

	for _, handle := range emu.handles {
		emu.Vm.DestroyProcessor(handle)
	}
	emu.handles = emu.handles[:0]

	var dump io.Writer
	if emu.Dump != nil {
		dump = &lockedWriter{w: emu.Dump}
	}

	for range emu.Processors {
		handle := emu.Vm.NewProcessor()
		var p *vm.Processor
		p, err = emu.Vm.Processor(handle)
		if err != nil {
			return
		}
		p.Verbose = emu.Verbose
		p.Dump = dump
		emu.handles = append(emu.handles, handle)
	}

	return
}

// Handles returns the handles of the processors created by Reset.
func (emu *Emulator) Handles() []int {
	return emu.handles
}

// Run starts every processor on its own goroutine and waits for all of
// them to halt. The first failure is returned, tagged with its handle.
func (emu *Emulator) Run() (err error) {
	var group errgroup.Group

	for _, handle := range emu.handles {
		p, err := emu.Vm.Processor(handle)
		if err != nil {
			return &ErrProcessor{Handle: handle, Err: err}
		}
		group.Go(func() (err error) {
			err = p.Start()
			if err != nil {
				err = &ErrProcessor{Handle: handle, Err: err}
			}
			return
		})
	}

	err = group.Wait()
	if err != nil {
		return
	}

	vm.Logger().Info("halted", zap.Int("processors", len(emu.handles)), zap.Int("ticks", emu.Ticks()))

	return
}

// Ticks returns the total ticks of all processors since a reset.
func (emu *Emulator) Ticks() (ticks int) {
	for _, handle := range emu.handles {
		p, err := emu.Vm.Processor(handle)
		if err != nil {
			continue
		}
		ticks += p.Ticks
	}
	return
}

// CounterProgram builds the counting loop:
//
//	mov 0, r0
//	mov limit, r1
//	loop:
//	add 1, r0, r0
//	cmp r0, r1
//	jnz loop
//	call 0
func CounterProgram(limit uint64) (prog vm.Program, err error) {
	r0 := vm.MakeRegister(vm.WIDTH_QWORD, COUNTER_BASE)
	r1 := vm.MakeRegister(vm.WIDTH_QWORD, COUNTER_LIMIT)

	prog, err = vm.NewAssembler().
		Mov(vm.MakeImmediate(0), r0).
		Mov(vm.MakeImmediate(limit), r1).
		Label("loop").
		Add(vm.MakeImmediate(1), r0, r0).
		Cmp(r0, r1).
		Jnz(vm.MakeLabel("loop")).
		Call(vm.MakeImmediate(vm.CALL_DUMP)).
		Compile()
	if err != nil {
		err = fmt.Errorf("%v: %w", f("counter program"), err)
	}

	return
}
