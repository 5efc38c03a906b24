package vm

import (
	"encoding/binary"
	"math"
)

// Width selects how many low bytes of a storage cell an access uses.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_BYTE  = Width(0) // byte
	WIDTH_WORD  = Width(1) // word
	WIDTH_DWORD = Width(2) // dword
	WIDTH_QWORD = Width(3) // qword
)

// CELL_SIZE is the size in bytes of a register cell.
const CELL_SIZE = 8

// Valid returns true for the four defined widths.
func (w Width) Valid() bool {
	return w >= WIDTH_BYTE && w <= WIDTH_QWORD
}

// Size returns the number of bytes covered by the width, or 0 if invalid.
func (w Width) Size() int {
	if !w.Valid() {
		return 0
	}
	return 1 << w
}

// Bits returns the number of bits covered by the width.
func (w Width) Bits() int {
	return w.Size() * 8
}

// Mask returns the value mask of the width.
func (w Width) Mask() uint64 {
	if w == WIDTH_QWORD {
		return math.MaxUint64
	}
	return (uint64(1) << w.Bits()) - 1
}

// Cell is a fixed 8 byte little-endian storage location.
// Every width view of a cell aliases its low bytes.
type Cell [CELL_SIZE]byte

// MakeCell returns a cell holding the 64-bit value.
func MakeCell(value uint64) (cell Cell) {
	binary.LittleEndian.PutUint64(cell[:], value)
	return
}

// Get returns the zero-extended low bytes of the cell.
func (c *Cell) Get(w Width) (value uint64) {
	var buf [CELL_SIZE]byte
	copy(buf[:w.Size()], c[:w.Size()])
	value = binary.LittleEndian.Uint64(buf[:])
	return
}

// Set replaces the low bytes of the cell with the truncated value.
// Bytes above the width keep their prior content.
func (c *Cell) Set(w Width, value uint64) {
	var buf [CELL_SIZE]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	copy(c[:w.Size()], buf[:w.Size()])
}

// Int returns the sign-extended low bytes of the cell.
func (c *Cell) Int(w Width) int64 {
	if !w.Valid() {
		return 0
	}
	shift := 64 - w.Bits()
	return int64(c.Get(w)<<shift) >> shift
}

// SetInt replaces the low bytes of the cell with the truncated signed value.
func (c *Cell) SetInt(w Width, value int64) {
	c.Set(w, uint64(value))
}

// Float returns the IEEE-754 view of the cell.
// Only WIDTH_DWORD (binary32) and WIDTH_QWORD (binary64) have a float view.
func (c *Cell) Float(w Width) (value float64, ok bool) {
	switch w {
	case WIDTH_DWORD:
		value = float64(math.Float32frombits(uint32(c.Get(w))))
		ok = true
	case WIDTH_QWORD:
		value = math.Float64frombits(c.Get(w))
		ok = true
	}
	return
}

// SetFloat stores an IEEE-754 value in the low bytes of the cell.
func (c *Cell) SetFloat(w Width, value float64) (ok bool) {
	switch w {
	case WIDTH_DWORD:
		c.Set(w, uint64(math.Float32bits(float32(value))))
		ok = true
	case WIDTH_QWORD:
		c.Set(w, math.Float64bits(value))
		ok = true
	}
	return
}
