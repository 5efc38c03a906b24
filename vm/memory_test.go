package vm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	for n, w := range allWidths {
		addr := uint64(0x1000 + n)
		value := uint64(0x0123456789abcdef) & w.Mask()
		assert.NoError(mem.Write(addr, w, value))
		got, err := mem.Read(addr, w)
		assert.NoError(err)
		assert.Equal(value, got, w.String())

		stored, ok := mem.Width(addr)
		assert.True(ok)
		assert.Equal(w, stored)
	}

	assert.Equal(4, mem.Len())
}

func TestMemoryAbsent(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	_, err := mem.Read(0, WIDTH_BYTE)
	assert.ErrorIs(err, ErrAddressNotPresent)

	assert.NoError(mem.Write(8, WIDTH_QWORD, 1))
	_, err = mem.Read(9, WIDTH_BYTE)
	assert.ErrorIs(err, ErrAddressNotPresent)

	_, ok := mem.Width(9)
	assert.False(ok)
}

func TestMemoryWidth(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Write(0x10, WIDTH_WORD, 0x12345678))

	_, err := mem.Read(0x10, WIDTH_DWORD)
	assert.ErrorIs(err, ErrWidthMismatch)
	_, err = mem.Read(0x10, WIDTH_QWORD)
	assert.ErrorIs(err, ErrWidthMismatch)

	value, err := mem.Read(0x10, WIDTH_BYTE)
	assert.NoError(err)
	assert.Equal(uint64(0x78), value)

	value, err = mem.Read(0x10, WIDTH_WORD)
	assert.NoError(err)
	assert.Equal(uint64(0x5678), value)

	assert.ErrorIs(mem.Write(0x10, Width(9), 0), ErrInvalidOperand)
	_, err = mem.Read(0x10, Width(9))
	assert.ErrorIs(err, ErrInvalidOperand)
}

func TestMemoryReplace(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Write(0x20, WIDTH_QWORD, 0xffffffffffffffff))
	assert.NoError(mem.Write(0x20, WIDTH_BYTE, 0x01))

	value, err := mem.Read(0x20, WIDTH_BYTE)
	assert.NoError(err)
	assert.Equal(uint64(0x01), value)

	// No merge with the prior wider cell.
	_, err = mem.Read(0x20, WIDTH_WORD)
	assert.ErrorIs(err, ErrWidthMismatch)
	assert.Equal(1, mem.Len())
}

func TestMemoryAddresses(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	for _, addr := range []uint64{30, 10, 20, 0xffffffffffffffff} {
		assert.NoError(mem.Write(addr, WIDTH_BYTE, addr))
	}

	assert.Equal([]uint64{10, 20, 30, 0xffffffffffffffff}, slices.Collect(mem.Addresses()))

	mem.Reset()
	assert.Equal(0, mem.Len())
	_, err := mem.Read(10, WIDTH_BYTE)
	assert.ErrorIs(err, ErrAddressNotPresent)
}

func TestMemorySigned(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	for n, w := range allWidths {
		addr := uint64(0x100 + n)
		assert.NoError(mem.SetInt(addr, w, -2))

		value, err := mem.Int(addr, w)
		assert.NoError(err)
		assert.Equal(int64(-2), value, w.String())

		raw, err := mem.Read(addr, w)
		assert.NoError(err)
		assert.Equal(w.Mask()-1, raw, w.String())
	}

	assert.NoError(mem.Write(0x200, WIDTH_WORD, 0x80ff))
	value, err := mem.Int(0x200, WIDTH_BYTE)
	assert.NoError(err)
	assert.Equal(int64(-1), value)
	value, err = mem.Int(0x200, WIDTH_WORD)
	assert.NoError(err)
	assert.Equal(int64(-0x7f01), value)

	_, err = mem.Int(0x300, WIDTH_BYTE)
	assert.ErrorIs(err, ErrAddressNotPresent)
}

func TestMemoryFloat(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.SetFloat(0x10, WIDTH_DWORD, 1.5))
	assert.NoError(mem.SetFloat(0x20, WIDTH_QWORD, -0.25))

	value, err := mem.Float(0x10, WIDTH_DWORD)
	assert.NoError(err)
	assert.Equal(1.5, value)

	raw, err := mem.Read(0x10, WIDTH_DWORD)
	assert.NoError(err)
	assert.Equal(uint64(0x3fc00000), raw)

	value, err = mem.Float(0x20, WIDTH_QWORD)
	assert.NoError(err)
	assert.Equal(-0.25, value)

	// The low dword of a qword cell is a valid binary32 view.
	_, err = mem.Float(0x20, WIDTH_DWORD)
	assert.NoError(err)

	_, err = mem.Float(0x10, WIDTH_QWORD)
	assert.ErrorIs(err, ErrWidthMismatch)
	_, err = mem.Float(0x10, WIDTH_WORD)
	assert.ErrorIs(err, ErrWidthMismatch)

	assert.ErrorIs(mem.SetFloat(0x30, WIDTH_BYTE, 1), ErrWidthMismatch)
	assert.Equal(2, mem.Len())
}
