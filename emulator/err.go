package emulator

import (
	"errors"

	"github.com/emusix/mos6502/translate"
)

var f = translate.From

var ErrRunLimit = errors.New(f("run limit exceeded"))

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
