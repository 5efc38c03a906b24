// Package vm implements a small register machine and its instruction builder.
//
// Each Processor owns sixteen 64-bit registers (r0-r13, the flags register
// and the instruction counter) whose contents can be viewed as bytes,
// words, double words or quad words. Processors created by the same Vm share
// one Context holding the loaded Program and a sparse byte-addressed memory,
// so several processors may run the same program concurrently from separate
// goroutines.
//
// The instruction set is closed: call, mov, jmp, jz, jnz, cmp and add. The
// Assembler chains these into a Program for Vm.LoadInstructions.
package vm
