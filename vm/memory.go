package vm

import (
	"encoding/binary"
	"iter"
	"maps"
	"slices"
)

// Memory is a sparse byte-addressed store.
// Each present address holds a buffer sized by the write that created it;
// absent addresses are never synthesised as zero.
type Memory struct {
	cells map[uint64][]byte
}

// Len returns the number of present cells.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Write replaces the cell at addr with a new buffer of the width's size.
func (mem *Memory) Write(addr uint64, w Width, value uint64) (err error) {
	if !w.Valid() {
		err = ErrInvalidOperand
		return
	}

	var buf [CELL_SIZE]byte
	binary.LittleEndian.PutUint64(buf[:], value)

	if mem.cells == nil {
		mem.cells = map[uint64][]byte{}
	}
	mem.cells[addr] = slices.Clone(buf[:w.Size()])

	return
}

// Read returns the zero-extended value of the cell at addr.
// The cell must exist and be at least as wide as the read.
func (mem *Memory) Read(addr uint64, w Width) (value uint64, err error) {
	if !w.Valid() {
		err = ErrInvalidOperand
		return
	}

	data, ok := mem.cells[addr]
	if !ok {
		err = ErrAddressNotPresent
		return
	}

	if w.Size() > len(data) {
		err = ErrWidthMismatch
		return
	}

	var buf [CELL_SIZE]byte
	copy(buf[:], data[:w.Size()])
	value = binary.LittleEndian.Uint64(buf[:])

	return
}

// Int returns the sign-extended value of the cell at addr.
func (mem *Memory) Int(addr uint64, w Width) (value int64, err error) {
	raw, err := mem.Read(addr, w)
	if err != nil {
		return
	}

	cell := MakeCell(raw)
	value = cell.Int(w)

	return
}

// SetInt replaces the cell at addr with the truncated signed value.
func (mem *Memory) SetInt(addr uint64, w Width, value int64) error {
	return mem.Write(addr, w, uint64(value))
}

// Float returns the IEEE-754 value of a dword or qword cell at addr.
func (mem *Memory) Float(addr uint64, w Width) (value float64, err error) {
	raw, err := mem.Read(addr, w)
	if err != nil {
		return
	}

	cell := MakeCell(raw)
	value, ok := cell.Float(w)
	if !ok {
		err = ErrWidthMismatch
	}

	return
}

// SetFloat replaces the cell at addr with an IEEE-754 dword or qword.
func (mem *Memory) SetFloat(addr uint64, w Width, value float64) (err error) {
	var cell Cell
	if !cell.SetFloat(w, value) {
		err = ErrWidthMismatch
		return
	}

	return mem.Write(addr, w, cell.Get(w))
}

// Width returns the width of the cell at addr.
func (mem *Memory) Width(addr uint64) (w Width, ok bool) {
	data, ok := mem.cells[addr]
	if !ok {
		return
	}

	switch len(data) {
	case 1:
		w = WIDTH_BYTE
	case 2:
		w = WIDTH_WORD
	case 4:
		w = WIDTH_DWORD
	default:
		w = WIDTH_QWORD
	}

	return
}

// Addresses returns the present addresses in ascending order.
func (mem *Memory) Addresses() iter.Seq[uint64] {
	return slices.Values(slices.Sorted(maps.Keys(mem.cells)))
}

// Reset drops every cell.
func (mem *Memory) Reset() {
	clear(mem.cells)
}
