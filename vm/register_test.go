package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allWidths = []Width{WIDTH_BYTE, WIDTH_WORD, WIDTH_DWORD, WIDTH_QWORD}

func TestRegistersRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	for index := range REGISTER_COUNT {
		for _, w := range allWidths {
			value := uint64(0xa5a5a5a5a5a5a5a5) & w.Mask()
			assert.NoError(regs.Set(index, w, value))
			got, err := regs.Get(index, w)
			assert.NoError(err)
			assert.Equal(value, got, "r%d %v", index, w)
		}
	}
}

func TestRegistersNarrowWrite(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	assert.NoError(regs.Set(3, WIDTH_QWORD, 0xffffffffffffffff))
	assert.NoError(regs.Set(3, WIDTH_BYTE, 0x12))

	value, err := regs.Get(3, WIDTH_WORD)
	assert.NoError(err)
	assert.Equal(uint64(0xff12), value)

	value, err = regs.Get(3, WIDTH_QWORD)
	assert.NoError(err)
	assert.Equal(uint64(0xffffffffffffff12), value)

	assert.NoError(regs.Set(4, WIDTH_DWORD, 0x1234))
	value, err = regs.Get(4, WIDTH_QWORD)
	assert.NoError(err)
	assert.Equal(uint64(0x1234), value)
}

func TestRegistersBounds(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	for _, index := range []int{-1, REGISTER_COUNT, 100} {
		_, err := regs.Get(index, WIDTH_QWORD)
		assert.ErrorIs(err, ErrRegisterIndexOutOfBounds)
		assert.ErrorIs(regs.Set(index, WIDTH_QWORD, 0), ErrRegisterIndexOutOfBounds)
		_, err = regs.Int(index, WIDTH_QWORD)
		assert.ErrorIs(err, ErrRegisterIndexOutOfBounds)
		assert.ErrorIs(regs.SetInt(index, WIDTH_QWORD, 0), ErrRegisterIndexOutOfBounds)
		_, err = regs.Float(index, WIDTH_QWORD)
		assert.ErrorIs(err, ErrRegisterIndexOutOfBounds)
		assert.ErrorIs(regs.SetFloat(index, WIDTH_QWORD, 0), ErrRegisterIndexOutOfBounds)
	}
}

func TestRegistersViews(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	assert.NoError(regs.SetInt(0, WIDTH_WORD, -1))
	value, err := regs.Get(0, WIDTH_QWORD)
	assert.NoError(err)
	assert.Equal(uint64(0xffff), value)

	signed, err := regs.Int(0, WIDTH_WORD)
	assert.NoError(err)
	assert.Equal(int64(-1), signed)

	assert.NoError(regs.SetFloat(1, WIDTH_QWORD, -0.25))
	fl, err := regs.Float(1, WIDTH_QWORD)
	assert.NoError(err)
	assert.Equal(-0.25, fl)

	assert.ErrorIs(regs.SetFloat(1, WIDTH_BYTE, 1), ErrWidthMismatch)
	_, err = regs.Float(1, WIDTH_WORD)
	assert.ErrorIs(err, ErrWidthMismatch)
}

func TestRegistersReserved(t *testing.T) {
	assert := assert.New(t)

	var regs Registers
	assert.NoError(regs.Set(REG_IC, WIDTH_QWORD, 42))
	assert.NoError(regs.Set(REG_FLAGS, WIDTH_QWORD, uint64(FLAG_ZERO|FLAG_OVERFLOW)))

	assert.Equal(uint64(42), regs.Ic())
	assert.Equal(FLAG_ZERO|FLAG_OVERFLOW, regs.Flags())
}
