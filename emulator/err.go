package emulator

import (
	"github.com/ezrec/regvm/translate"
)

var f = translate.From

// ErrProcessor indicates the processor handle of a runtime error.
type ErrProcessor struct {
	Handle int
	Err    error
}

func (err *ErrProcessor) Error() string {
	return f("processor %d %v", err.Handle, err.Err)
}

func (err *ErrProcessor) Unwrap() error {
	return err.Err
}
