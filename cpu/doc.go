// Package cpu implements an instruction-stepped MOS 6502 emulator core and
// its assembler.
//
// The CPU consists of the accumulator (A), two index registers (X, Y), an
// 8-bit status register, a 16-bit program counter, an 8-bit stack pointer
// into the fixed stack page, and a flat 64 KiB memory array. Execution is a
// fetch-decode-execute loop driven by the opcode metadata in the optable
// package; a single Step entry point runs exactly one instruction so a host
// can interleave inspection or breakpoints.
//
// The assembler provides standard 6502 syntax with labels, equates, data
// directives, and compile-time $(...) expression evaluation.
package cpu
