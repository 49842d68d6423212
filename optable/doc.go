// Package optable holds the MOS 6502 opcode metadata: for every official
// opcode byte of the implemented instruction set, its mnemonic, addressing
// mode, encoded length, and base cycle count.
//
// The table is immutable lookup data. It is built once at package
// initialization and is never written afterwards; the execution engine
// consults it by opcode byte and derives its dispatch from the mnemonic.
package optable
