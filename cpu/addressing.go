package cpu

import (
	"github.com/emusix/mos6502/optable"
)

// zeroPageWord reads a 16-bit little-endian word whose bytes both live in
// page zero: the high byte of a pointer at $FF is fetched from $00, not
// $100. This replicates the hardware page-boundary quirk.
func (cpu *Cpu) zeroPageWord(ptr uint8) uint16 {
	lo := uint16(cpu.MemRead(uint16(ptr)))
	hi := uint16(cpu.MemRead(uint16(ptr + 1)))
	return (hi << 8) | lo
}

// operandAddress resolves the effective address for the current instruction
// from the program counter and index registers. The operand bytes are not
// consumed; the caller advances the program counter by the encoded length.
func (cpu *Cpu) operandAddress(mode optable.Mode) (addr uint16, err error) {
	switch mode {
	case optable.MODE_IMMEDIATE:
		addr = cpu.Pc
	case optable.MODE_ZEROPAGE:
		addr = uint16(cpu.MemRead(cpu.Pc))
	case optable.MODE_ZEROPAGE_X:
		// 8-bit wrapping add keeps the address within page zero.
		addr = uint16(cpu.MemRead(cpu.Pc) + cpu.X)
	case optable.MODE_ZEROPAGE_Y:
		addr = uint16(cpu.MemRead(cpu.Pc) + cpu.Y)
	case optable.MODE_ABSOLUTE:
		addr = cpu.MemReadWord(cpu.Pc)
	case optable.MODE_ABSOLUTE_X:
		addr = cpu.MemReadWord(cpu.Pc) + uint16(cpu.X)
	case optable.MODE_ABSOLUTE_Y:
		addr = cpu.MemReadWord(cpu.Pc) + uint16(cpu.Y)
	case optable.MODE_INDIRECT_X:
		ptr := cpu.MemRead(cpu.Pc) + cpu.X
		addr = cpu.zeroPageWord(ptr)
	case optable.MODE_INDIRECT_Y:
		ptr := cpu.MemRead(cpu.Pc)
		addr = cpu.zeroPageWord(ptr) + uint16(cpu.Y)
	default:
		err = ErrModeNone
	}

	return
}
