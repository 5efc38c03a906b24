package vm

// Register bank layout.
const (
	REGISTER_COUNT = 16 // Registers per processor.
	REG_FLAGS      = 14 // Flags bitset register.
	REG_IC         = 15 // Instruction counter register.
)

// Flag is a bit in the flags register.
type Flag uint64

const (
	FLAG_ZERO     = Flag(1 << 0) // Last cmp operands were equal.
	FLAG_GREATER  = Flag(1 << 1) // Last cmp value was above the comparator.
	FLAG_OVERFLOW = Flag(1 << 2) // Last add carried out of the destination width.
)

// String returns the short flag name.
func (fl Flag) String() string {
	switch fl {
	case FLAG_ZERO:
		return "z"
	case FLAG_GREATER:
		return "g"
	case FLAG_OVERFLOW:
		return "o"
	}
	return "?"
}

// Registers is a bound-checked processor register bank.
type Registers [REGISTER_COUNT]Cell

func (r *Registers) cell(index int) (cell *Cell, err error) {
	if index < 0 || index >= len(r) {
		err = ErrRegisterIndexOutOfBounds
		return
	}
	cell = &r[index]
	return
}

// Get returns the zero-extended value of a register view.
func (r *Registers) Get(index int, w Width) (value uint64, err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	value = cell.Get(w)
	return
}

// Set writes the truncated value to a register view.
func (r *Registers) Set(index int, w Width, value uint64) (err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	cell.Set(w, value)
	return
}

// Int returns the sign-extended value of a register view.
func (r *Registers) Int(index int, w Width) (value int64, err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	value = cell.Int(w)
	return
}

// SetInt writes the truncated signed value to a register view.
func (r *Registers) SetInt(index int, w Width, value int64) (err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	cell.SetInt(w, value)
	return
}

// Float returns the IEEE-754 value of a dword or qword register view.
func (r *Registers) Float(index int, w Width) (value float64, err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	value, ok := cell.Float(w)
	if !ok {
		err = ErrWidthMismatch
	}
	return
}

// SetFloat writes an IEEE-754 value to a dword or qword register view.
func (r *Registers) SetFloat(index int, w Width, value float64) (err error) {
	cell, err := r.cell(index)
	if err != nil {
		return
	}
	if !cell.SetFloat(w, value) {
		err = ErrWidthMismatch
	}
	return
}

// Flags returns the flags register bitset.
func (r *Registers) Flags() Flag {
	return Flag(r[REG_FLAGS].Get(WIDTH_QWORD))
}

// Ic returns the instruction counter.
func (r *Registers) Ic() uint64 {
	return r[REG_IC].Get(WIDTH_QWORD)
}
