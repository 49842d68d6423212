package cpu

// Stack helpers over the fixed stack page. The stack grows downward and the
// 8-bit pointer wraps within the page.

func (cpu *Cpu) stackPush(value uint8) {
	cpu.MemWrite(STACK_BASE+uint16(cpu.Sp), value)
	cpu.Sp -= 1
}

func (cpu *Cpu) stackPull() (value uint8) {
	cpu.Sp += 1
	return cpu.MemRead(STACK_BASE + uint16(cpu.Sp))
}

func (cpu *Cpu) stackPushWord(value uint16) {
	cpu.stackPush(uint8(value >> 8))
	cpu.stackPush(uint8(value & 0xff))
}

func (cpu *Cpu) stackPullWord() (value uint16) {
	lo := uint16(cpu.stackPull())
	hi := uint16(cpu.stackPull())
	return (hi << 8) | lo
}
