package cpu

import (
	"errors"
	"log"

	"github.com/emusix/mos6502/optable"
)

// handler executes one instruction family against the CPU state. A handler
// that reassigns the program counter suspends the generic post-dispatch
// advance; done is reported only by the halt instruction.
type handler func(cpu *Cpu, mode optable.Mode) (done bool, err error)

// dispatch is keyed by the descriptor mnemonic, so the byte-to-family
// mapping lives solely in the optable.
var dispatch = map[string]handler{
	"BRK": (*Cpu).brk,
	"NOP": (*Cpu).nop,

	"LDA": (*Cpu).lda,
	"LDX": (*Cpu).ldx,
	"LDY": (*Cpu).ldy,
	"STA": (*Cpu).sta,
	"STX": (*Cpu).stx,
	"STY": (*Cpu).sty,

	"TAX": (*Cpu).tax,
	"TXA": (*Cpu).txa,
	"TAY": (*Cpu).tay,
	"TYA": (*Cpu).tya,
	"TSX": (*Cpu).tsx,
	"TXS": (*Cpu).txs,

	"INC": (*Cpu).inc,
	"INX": (*Cpu).inx,
	"INY": (*Cpu).iny,
	"DEC": (*Cpu).dec,
	"DEX": (*Cpu).dex,
	"DEY": (*Cpu).dey,

	"AND": (*Cpu).and,
	"ORA": (*Cpu).ora,
	"EOR": (*Cpu).eor,
	"ADC": (*Cpu).adc,
	"SBC": (*Cpu).sbc,

	"CMP": (*Cpu).cmp,
	"CPX": (*Cpu).cpx,
	"CPY": (*Cpu).cpy,

	"ASL": (*Cpu).asl,
	"LSR": (*Cpu).lsr,
	"ROL": (*Cpu).rol,
	"ROR": (*Cpu).ror,

	"BIT": (*Cpu).bit,

	"BCS": branchOn(FLAG_CARRY, true),
	"BCC": branchOn(FLAG_CARRY, false),
	"BEQ": branchOn(FLAG_ZERO, true),
	"BNE": branchOn(FLAG_ZERO, false),
	"BMI": branchOn(FLAG_NEGATIVE, true),
	"BPL": branchOn(FLAG_NEGATIVE, false),
	"BVS": branchOn(FLAG_OVERFLOW, true),
	"BVC": branchOn(FLAG_OVERFLOW, false),

	"JMP": (*Cpu).jmp,
	"JSR": (*Cpu).jsr,
	"RTS": (*Cpu).rts,

	"PHA": (*Cpu).pha,
	"PLA": (*Cpu).pla,
	"PHP": (*Cpu).php,
	"PLP": (*Cpu).plp,

	"CLC": setFlag(FLAG_CARRY, false),
	"SEC": setFlag(FLAG_CARRY, true),
	"CLI": setFlag(FLAG_INTERRUPT_DISABLE, false),
	"SEI": setFlag(FLAG_INTERRUPT_DISABLE, true),
	"CLV": setFlag(FLAG_OVERFLOW, false),
	"CLD": setFlag(FLAG_DECIMAL, false),
	"SED": setFlag(FLAG_DECIMAL, true),
}

// Step fetches, decodes, and executes exactly one instruction. done reports
// the halt opcode; decode faults carry the failing program counter and
// opcode byte in an ErrOpcode.
func (cpu *Cpu) Step() (done bool, err error) {
	at := cpu.Pc
	code := cpu.MemRead(cpu.Pc)
	cpu.Pc += 1

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: at, Code: code}, err)
		}
	}()

	desc, ok := optable.Lookup(code)
	if !ok {
		err = ErrOpcodeUnknown
		return
	}

	fn, ok := dispatch[desc.Mnemonic]
	if !ok {
		err = ErrOpcodeUnhandled
		return
	}

	if cpu.Verbose {
		text, _ := cpu.Disassemble(at)
		log.Printf("%04X: %v", at, text)
	}

	state := cpu.Pc
	done, err = fn(cpu, desc.Mode)
	if err != nil {
		return
	}

	// Branches and jumps advance the program counter themselves.
	if cpu.Pc == state {
		cpu.Pc += uint16(desc.Len - 1)
	}

	cpu.Ticks += int(desc.Cycles)

	return
}

// operandByte reads the byte at the resolved operand address.
func (cpu *Cpu) operandByte(mode optable.Mode) (value uint8, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}

	value = cpu.MemRead(addr)
	return
}

// addToA adds data and the incoming carry to the accumulator using 9-bit
// arithmetic. The 9th bit becomes the new Carry; Overflow is set when both
// operands share a sign bit that differs from the result's.
func (cpu *Cpu) addToA(data uint8) {
	sum := uint16(cpu.A) + uint16(data)
	if cpu.Status.Has(FLAG_CARRY) {
		sum += 1
	}
	result := uint8(sum)

	cpu.Status.Set(FLAG_CARRY, sum > 0xff)
	cpu.Status.Set(FLAG_OVERFLOW, (cpu.A^result)&(data^result)&0x80 != 0)

	cpu.A = result
	cpu.updateZeroNegative(cpu.A)
}

func (cpu *Cpu) lda(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.A = value
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) ldx(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.X = value
	cpu.updateZeroNegative(cpu.X)
	return
}

func (cpu *Cpu) ldy(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.Y = value
	cpu.updateZeroNegative(cpu.Y)
	return
}

func (cpu *Cpu) sta(mode optable.Mode) (done bool, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	cpu.MemWrite(addr, cpu.A)
	return
}

func (cpu *Cpu) stx(mode optable.Mode) (done bool, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	cpu.MemWrite(addr, cpu.X)
	return
}

func (cpu *Cpu) sty(mode optable.Mode) (done bool, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	cpu.MemWrite(addr, cpu.Y)
	return
}

func (cpu *Cpu) tax(mode optable.Mode) (done bool, err error) {
	cpu.X = cpu.A
	cpu.updateZeroNegative(cpu.X)
	return
}

func (cpu *Cpu) txa(mode optable.Mode) (done bool, err error) {
	cpu.A = cpu.X
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) tay(mode optable.Mode) (done bool, err error) {
	cpu.Y = cpu.A
	cpu.updateZeroNegative(cpu.Y)
	return
}

func (cpu *Cpu) tya(mode optable.Mode) (done bool, err error) {
	cpu.A = cpu.Y
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) tsx(mode optable.Mode) (done bool, err error) {
	cpu.X = cpu.Sp
	cpu.updateZeroNegative(cpu.X)
	return
}

// TXS is the one transfer with no flag effect.
func (cpu *Cpu) txs(mode optable.Mode) (done bool, err error) {
	cpu.Sp = cpu.X
	return
}

func (cpu *Cpu) inc(mode optable.Mode) (done bool, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	value := cpu.MemRead(addr) + 1
	cpu.MemWrite(addr, value)
	cpu.updateZeroNegative(value)
	return
}

func (cpu *Cpu) inx(mode optable.Mode) (done bool, err error) {
	cpu.X += 1
	cpu.updateZeroNegative(cpu.X)
	return
}

func (cpu *Cpu) iny(mode optable.Mode) (done bool, err error) {
	cpu.Y += 1
	cpu.updateZeroNegative(cpu.Y)
	return
}

func (cpu *Cpu) dec(mode optable.Mode) (done bool, err error) {
	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	value := cpu.MemRead(addr) - 1
	cpu.MemWrite(addr, value)
	cpu.updateZeroNegative(value)
	return
}

func (cpu *Cpu) dex(mode optable.Mode) (done bool, err error) {
	cpu.X -= 1
	cpu.updateZeroNegative(cpu.X)
	return
}

func (cpu *Cpu) dey(mode optable.Mode) (done bool, err error) {
	cpu.Y -= 1
	cpu.updateZeroNegative(cpu.Y)
	return
}

func (cpu *Cpu) and(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.A &= value
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) ora(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.A |= value
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) eor(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.A ^= value
	cpu.updateZeroNegative(cpu.A)
	return
}

func (cpu *Cpu) adc(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.addToA(value)
	return
}

// SBC is ADC of the two's-complement negation of the operand.
func (cpu *Cpu) sbc(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.addToA(^value + 1)
	return
}

// compare subtracts the operand from a register without storing the result.
// Carry reports register >= operand.
func (cpu *Cpu) compare(mode optable.Mode, reg uint8) (err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.Status.Set(FLAG_CARRY, reg >= value)
	cpu.updateZeroNegative(reg - value)
	return
}

func (cpu *Cpu) cmp(mode optable.Mode) (done bool, err error) {
	err = cpu.compare(mode, cpu.A)
	return
}

func (cpu *Cpu) cpx(mode optable.Mode) (done bool, err error) {
	err = cpu.compare(mode, cpu.X)
	return
}

func (cpu *Cpu) cpy(mode optable.Mode) (done bool, err error) {
	err = cpu.compare(mode, cpu.Y)
	return
}

// shifter rewrites either the accumulator (MODE_NONE) or the byte at the
// resolved address. Rotates on a memory operand rotate the value at that
// address, never the accumulator.
func (cpu *Cpu) shifter(mode optable.Mode, op func(cpu *Cpu, value uint8) uint8) (err error) {
	if mode == optable.MODE_NONE {
		cpu.A = op(cpu, cpu.A)
		cpu.updateZeroNegative(cpu.A)
		return
	}

	addr, err := cpu.operandAddress(mode)
	if err != nil {
		return
	}
	value := op(cpu, cpu.MemRead(addr))
	cpu.MemWrite(addr, value)
	cpu.updateZeroNegative(value)
	return
}

func (cpu *Cpu) asl(mode optable.Mode) (done bool, err error) {
	err = cpu.shifter(mode, func(cpu *Cpu, value uint8) uint8 {
		cpu.Status.Set(FLAG_CARRY, (value&0x80) != 0)
		return value << 1
	})
	return
}

func (cpu *Cpu) lsr(mode optable.Mode) (done bool, err error) {
	err = cpu.shifter(mode, func(cpu *Cpu, value uint8) uint8 {
		cpu.Status.Set(FLAG_CARRY, (value&0x01) != 0)
		return value >> 1
	})
	return
}

func (cpu *Cpu) rol(mode optable.Mode) (done bool, err error) {
	err = cpu.shifter(mode, func(cpu *Cpu, value uint8) uint8 {
		carryIn := cpu.Status.Has(FLAG_CARRY)
		cpu.Status.Set(FLAG_CARRY, (value&0x80) != 0)
		value <<= 1
		if carryIn {
			value |= 0x01
		}
		return value
	})
	return
}

func (cpu *Cpu) ror(mode optable.Mode) (done bool, err error) {
	err = cpu.shifter(mode, func(cpu *Cpu, value uint8) uint8 {
		carryIn := cpu.Status.Has(FLAG_CARRY)
		cpu.Status.Set(FLAG_CARRY, (value&0x01) != 0)
		value >>= 1
		if carryIn {
			value |= 0x80
		}
		return value
	})
	return
}

// BIT tests memory against the accumulator without modifying either.
func (cpu *Cpu) bit(mode optable.Mode) (done bool, err error) {
	value, err := cpu.operandByte(mode)
	if err != nil {
		return
	}
	cpu.Status.Set(FLAG_OVERFLOW, (value&0x40) != 0)
	cpu.Status.Set(FLAG_NEGATIVE, (value&0x80) != 0)
	cpu.Status.Set(FLAG_ZERO, (value&cpu.A) == 0)
	return
}

// branchOn builds a handler testing one flag against the wanted state. The
// signed offset is relative to the address following the offset byte; a
// branch not taken leaves the offset to the generic advance.
func branchOn(flag Status, want bool) handler {
	return func(cpu *Cpu, mode optable.Mode) (done bool, err error) {
		if cpu.Status.Has(flag) != want {
			return
		}

		offset := int8(cpu.MemRead(cpu.Pc))
		cpu.Pc = cpu.Pc + 1 + uint16(offset)
		return
	}
}

func (cpu *Cpu) jmp(mode optable.Mode) (done bool, err error) {
	target := cpu.MemReadWord(cpu.Pc)

	if mode == optable.MODE_NONE {
		// Indirect jump. A vector on a page boundary fetches its high
		// byte from the start of the same page, as the hardware does.
		if (target & 0x00ff) == 0x00ff {
			lo := uint16(cpu.MemRead(target))
			hi := uint16(cpu.MemRead(target & 0xff00))
			target = (hi << 8) | lo
		} else {
			target = cpu.MemReadWord(target)
		}
	}

	cpu.Pc = target
	return
}

// JSR pushes the address of the instruction's last byte; RTS adds one back.
func (cpu *Cpu) jsr(mode optable.Mode) (done bool, err error) {
	target := cpu.MemReadWord(cpu.Pc)
	cpu.stackPushWord(cpu.Pc + 1)
	cpu.Pc = target
	return
}

func (cpu *Cpu) rts(mode optable.Mode) (done bool, err error) {
	cpu.Pc = cpu.stackPullWord() + 1
	return
}

func (cpu *Cpu) pha(mode optable.Mode) (done bool, err error) {
	cpu.stackPush(cpu.A)
	return
}

func (cpu *Cpu) pla(mode optable.Mode) (done bool, err error) {
	cpu.A = cpu.stackPull()
	cpu.updateZeroNegative(cpu.A)
	return
}

// PHP pushes the status with both break bits set in the copy.
func (cpu *Cpu) php(mode optable.Mode) (done bool, err error) {
	cpu.stackPush(uint8(cpu.Status | FLAG_BREAK | FLAG_BREAK2))
	return
}

// PLP restores the status; Break is discarded and Break2 stays set.
func (cpu *Cpu) plp(mode optable.Mode) (done bool, err error) {
	cpu.Status = Status(cpu.stackPull()).
		With(FLAG_BREAK, false).
		With(FLAG_BREAK2, true)
	return
}

func setFlag(flag Status, on bool) handler {
	return func(cpu *Cpu, mode optable.Mode) (done bool, err error) {
		cpu.Status.Set(flag, on)
		return
	}
}

func (cpu *Cpu) nop(mode optable.Mode) (done bool, err error) {
	return
}

func (cpu *Cpu) brk(mode optable.Mode) (done bool, err error) {
	done = true
	return
}
