// Package emulator hosts a 6502 core together with an assembled program
// listing, mapping runtime faults back to source lines and exposing a
// per-instruction trace hook.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/emusix/mos6502/cpu"
	"github.com/emusix/mos6502/internal"
)

// RUN_LIMIT caps a single Run at a number of instructions, so a branch loop
// in a test program terminates with an error instead of spinning forever.
const RUN_LIMIT = 10_000_000

var _machine_defines = map[string]string{
	"RUN_LIMIT": fmt.Sprintf("%v", RUN_LIMIT),
}

// Machine is the emulator state: CPU plus the program listing it runs.
type Machine struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // The CPU simulation.
	Program  *cpu.Program

	// Trace, when set, is called before each instruction with the
	// program counter and its disassembly.
	Trace func(pc uint16, text string)
}

// NewMachine creates a machine with a freshly reset CPU and an empty
// program.
func NewMachine() (mach *Machine) {
	mach = &Machine{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns all assembler predefines of the machine and its CPU.
func (mach *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines),
		mach.Cpu.Defines(),
	)
}

// Assembler returns an assembler preloaded with the machine defines.
func (mach *Machine) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: mach.Verbose}
	for attr, val := range mach.Defines() {
		asm.Predefine(attr, val)
	}

	return
}

// LoadProgram installs an assembled listing and loads its image.
func (mach *Machine) LoadProgram(prog *cpu.Program) (err error) {
	err = mach.Cpu.Load(prog.Binary())
	if err != nil {
		return
	}

	mach.Program = prog
	mach.Cpu.Reset()

	return
}

// LoadBinary installs a raw image with no listing attached.
func (mach *Machine) LoadBinary(image []uint8) (err error) {
	err = mach.Cpu.Load(image)
	if err != nil {
		return
	}

	mach.Program = &cpu.Program{}
	mach.Cpu.Reset()

	return
}

// LineNo returns the source line of the instruction at the program counter,
// or 0 when no listing covers it.
func (mach *Machine) LineNo() int {
	dbg := mach.Program.Debug(mach.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.Statement.LineNo
}

// Step performs a single instruction step, annotating any fault with the
// source line.
func (mach *Machine) Step() (done bool, err error) {
	mach.Cpu.Verbose = mach.Verbose

	lineno := mach.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if mach.Trace != nil {
		text, _ := mach.Cpu.Disassemble(mach.Cpu.Pc)
		mach.Trace(mach.Cpu.Pc, text)
	}

	return mach.Cpu.Step()
}

// Run executes until the halt instruction, an error, or the run limit.
func (mach *Machine) Run() (err error) {
	for range RUN_LIMIT {
		var done bool
		done, err = mach.Step()
		if done || err != nil {
			return
		}
	}

	return &ErrRuntime{LineNo: mach.LineNo(), Err: ErrRunLimit}
}
