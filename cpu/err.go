package cpu

import (
	"errors"

	"github.com/emusix/mos6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrOpcodeUnhandled = errors.New(f("opcode unhandled"))
	ErrModeNone        = errors.New(f("no addressing mode"))
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax      = errors.New(f(".equ syntax"))
	ErrEquateDuplicate   = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate    = errors.New(f("label duplicated"))
	ErrDirectiveSyntax   = errors.New(f("directive syntax"))
	ErrMnemonicInvalid   = errors.New(f("mnemonic invalid"))
	ErrOperandInvalid    = errors.New(f("operand invalid"))
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrOperandExtra      = errors.New(f("excessive operands"))
	ErrModeUnsupported   = errors.New(f("addressing mode unsupported"))
	ErrValueRange        = errors.New(f("value out of range"))
	ErrBranchRange       = errors.New(f("branch target out of range"))
	ErrOriginOverflow    = errors.New(f("program exceeds address space"))
	ErrExpressionInvalid = errors.New(f("expression invalid"))
)

// ErrOpcode reports the program counter and opcode byte of a faulting fetch.
type ErrOpcode struct {
	Pc   uint16
	Code uint8
}

func (eo ErrOpcode) Error() string {
	return f("pc $%04X opcode $%02X", eo.Pc, eo.Code)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax reports the source location of an assembler error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
