package cpu

import (
	"fmt"

	"github.com/emusix/mos6502/optable"
)

// Disassemble renders the instruction at addr as assembly text and reports
// its encoded length. Unknown opcode bytes render as a .byte directive of
// length one so a host can keep scanning.
func (cpu *Cpu) Disassemble(addr uint16) (text string, length uint8) {
	code := cpu.MemRead(addr)

	desc, ok := optable.Lookup(code)
	if !ok {
		return fmt.Sprintf(".byte $%02X", code), 1
	}

	var operand string
	switch desc.Mode {
	case optable.MODE_IMMEDIATE:
		operand = fmt.Sprintf("#$%02X", cpu.MemRead(addr+1))
	case optable.MODE_ZEROPAGE:
		operand = fmt.Sprintf("$%02X", cpu.MemRead(addr+1))
	case optable.MODE_ZEROPAGE_X:
		operand = fmt.Sprintf("$%02X,X", cpu.MemRead(addr+1))
	case optable.MODE_ZEROPAGE_Y:
		operand = fmt.Sprintf("$%02X,Y", cpu.MemRead(addr+1))
	case optable.MODE_ABSOLUTE:
		operand = fmt.Sprintf("$%04X", cpu.MemReadWord(addr+1))
	case optable.MODE_ABSOLUTE_X:
		operand = fmt.Sprintf("$%04X,X", cpu.MemReadWord(addr+1))
	case optable.MODE_ABSOLUTE_Y:
		operand = fmt.Sprintf("$%04X,Y", cpu.MemReadWord(addr+1))
	case optable.MODE_INDIRECT_X:
		operand = fmt.Sprintf("($%02X,X)", cpu.MemRead(addr+1))
	case optable.MODE_INDIRECT_Y:
		operand = fmt.Sprintf("($%02X),Y", cpu.MemRead(addr+1))
	case optable.MODE_NONE:
		switch desc.Len {
		case 2:
			// Branch: render the resolved target.
			offset := int8(cpu.MemRead(addr + 1))
			operand = fmt.Sprintf("$%04X", addr+2+uint16(offset))
		case 3:
			// Indirect jump.
			operand = fmt.Sprintf("($%04X)", cpu.MemReadWord(addr+1))
		}
	}

	text = desc.Mnemonic
	if len(operand) != 0 {
		text += " " + operand
	}

	return text, desc.Len
}
