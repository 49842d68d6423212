package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	MEMORY_SIZE  = 0x10000 // Full 16-bit address space.
	LOAD_ORIGIN  = uint16(0x8000)
	RESET_VECTOR = uint16(0xfffc) // Little-endian reset vector location.
	STACK_BASE   = uint16(0x0100) // Stack page base address.
	STACK_RESET  = uint8(0xfd)
)

var _cpu_defines = map[string]string{
	"LOAD_ORIGIN":  fmt.Sprintf("0x%x", LOAD_ORIGIN),
	"RESET_VECTOR": fmt.Sprintf("0x%x", RESET_VECTOR),
	"STACK_BASE":   fmt.Sprintf("0x%x", STACK_BASE),
}

// Cpu is the simulation context for a single 6502. The memory array is
// exclusively owned; two Cpu instances never share state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A      uint8  // Accumulator.
	X      uint8  // Index register X.
	Y      uint8  // Index register Y.
	Status Status // Processor status flags.
	Pc     uint16 // Program counter.
	Sp     uint8  // Stack pointer offset into the stack page.

	Memory [MEMORY_SIZE]uint8 // Flat linear memory.

	Ticks int // Base cycle counter.
}

// NewCpu creates a new CPU with registers zeroed, the stack pointer at its
// reset value, and the reset flag pattern. Memory is zero-initialized.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Sp:     STACK_RESET,
		Status: STATUS_RESET,
	}

	return
}

// Defines for the cpu, usable as assembler predefines.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "a", "x", "y", "sp", "status", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("$%04X", cpu.Pc)
		case "a":
			strval = fmt.Sprintf("$%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("$%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("$%02X", cpu.Y)
		case "sp":
			strval = fmt.Sprintf("$%02X", cpu.Sp)
		case "status":
			strval = cpu.Status.String()
		case "ticks":
			strval = fmt.Sprintf("%v", cpu.Ticks)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// MemRead reads one byte of memory.
func (cpu *Cpu) MemRead(addr uint16) uint8 {
	return cpu.Memory[addr]
}

// MemWrite writes one byte of memory.
func (cpu *Cpu) MemWrite(addr uint16, data uint8) {
	cpu.Memory[addr] = data
}

// MemReadWord reads a 16-bit little-endian word. The high byte read wraps
// through address 0 at the top of memory.
func (cpu *Cpu) MemReadWord(addr uint16) uint16 {
	lo := uint16(cpu.MemRead(addr))
	hi := uint16(cpu.MemRead(addr + 1))
	return (hi << 8) | lo
}

// MemWriteWord writes a 16-bit little-endian word.
func (cpu *Cpu) MemWriteWord(addr uint16, data uint16) {
	cpu.MemWrite(addr, uint8(data&0xff))
	cpu.MemWrite(addr+1, uint8(data>>8))
}

// Load copies a program image to the fixed load origin and installs the
// reset vector pointing at it. Memory outside the image is untouched.
// Returns ErrProgramTooLarge when the image would reach the reset vector.
func (cpu *Cpu) Load(program []uint8) (err error) {
	if len(program) > int(RESET_VECTOR-LOAD_ORIGIN) {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Memory[LOAD_ORIGIN:], program)
	cpu.MemWriteWord(RESET_VECTOR, LOAD_ORIGIN)

	if cpu.Verbose {
		log.Printf("cpu: load %v bytes at $%04X", len(program), LOAD_ORIGIN)
	}

	return
}

// Reset restores the registers, stack pointer, and flags to their reset
// values and loads the program counter from the reset vector. Memory is
// not cleared.
func (cpu *Cpu) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.Sp = STACK_RESET
	cpu.Status = STATUS_RESET
	cpu.Ticks = 0
	cpu.Pc = cpu.MemReadWord(RESET_VECTOR)

	if cpu.Verbose {
		log.Printf("cpu: reset to $%04X", cpu.Pc)
	}
}

// Run executes instructions until the halt opcode or an error.
func (cpu *Cpu) Run() (err error) {
	for {
		var done bool
		done, err = cpu.Step()
		if done || err != nil {
			return
		}
	}
}

// LoadAndRun loads a program image, resets, and runs it to halt.
func (cpu *Cpu) LoadAndRun(program []uint8) (err error) {
	err = cpu.Load(program)
	if err != nil {
		return
	}
	cpu.Reset()

	return cpu.Run()
}
