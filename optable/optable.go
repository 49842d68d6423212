package optable

// Mode is an addressing mode tag.
type Mode int

const (
	MODE_NONE       = Mode(iota) // no operand address
	MODE_IMMEDIATE               // #$44
	MODE_ZEROPAGE                // $44
	MODE_ZEROPAGE_X              // $44,X
	MODE_ZEROPAGE_Y              // $44,Y
	MODE_ABSOLUTE                // $4400
	MODE_ABSOLUTE_X              // $4400,X
	MODE_ABSOLUTE_Y              // $4400,Y
	MODE_INDIRECT_X              // ($44,X)
	MODE_INDIRECT_Y              // ($44),Y
)

var modeNames = map[Mode]string{
	MODE_NONE:       "none",
	MODE_IMMEDIATE:  "immediate",
	MODE_ZEROPAGE:   "zeropage",
	MODE_ZEROPAGE_X: "zeropage,x",
	MODE_ZEROPAGE_Y: "zeropage,y",
	MODE_ABSOLUTE:   "absolute",
	MODE_ABSOLUTE_X: "absolute,x",
	MODE_ABSOLUTE_Y: "absolute,y",
	MODE_INDIRECT_X: "(indirect,x)",
	MODE_INDIRECT_Y: "(indirect),y",
}

// String returns the conventional notation for the mode.
func (mode Mode) String() string {
	name, ok := modeNames[mode]
	if !ok {
		return "invalid"
	}
	return name
}

// Descriptor describes a single opcode byte.
type Descriptor struct {
	Code     uint8  // Opcode byte.
	Mnemonic string // Three-letter mnemonic.
	Len      uint8  // Encoded length in bytes, opcode included.
	Cycles   uint8  // Base cycle count, page-cross penalties excluded.
	Mode     Mode   // Addressing mode tag.
}

// The official opcode set of the implemented instruction families.
// BRK is the halt instruction; undocumented opcodes are absent.
var descriptors = []Descriptor{
	{0x00, "BRK", 1, 7, MODE_NONE},
	{0xea, "NOP", 1, 2, MODE_NONE},

	{0xa9, "LDA", 2, 2, MODE_IMMEDIATE},
	{0xa5, "LDA", 2, 3, MODE_ZEROPAGE},
	{0xb5, "LDA", 2, 4, MODE_ZEROPAGE_X},
	{0xad, "LDA", 3, 4, MODE_ABSOLUTE},
	{0xbd, "LDA", 3, 4, MODE_ABSOLUTE_X},
	{0xb9, "LDA", 3, 4, MODE_ABSOLUTE_Y},
	{0xa1, "LDA", 2, 6, MODE_INDIRECT_X},
	{0xb1, "LDA", 2, 5, MODE_INDIRECT_Y},

	{0xa2, "LDX", 2, 2, MODE_IMMEDIATE},
	{0xa6, "LDX", 2, 3, MODE_ZEROPAGE},
	{0xb6, "LDX", 2, 4, MODE_ZEROPAGE_Y},
	{0xae, "LDX", 3, 4, MODE_ABSOLUTE},
	{0xbe, "LDX", 3, 4, MODE_ABSOLUTE_Y},

	{0xa0, "LDY", 2, 2, MODE_IMMEDIATE},
	{0xa4, "LDY", 2, 3, MODE_ZEROPAGE},
	{0xb4, "LDY", 2, 4, MODE_ZEROPAGE_X},
	{0xac, "LDY", 3, 4, MODE_ABSOLUTE},
	{0xbc, "LDY", 3, 4, MODE_ABSOLUTE_X},

	{0x85, "STA", 2, 3, MODE_ZEROPAGE},
	{0x95, "STA", 2, 4, MODE_ZEROPAGE_X},
	{0x8d, "STA", 3, 4, MODE_ABSOLUTE},
	{0x9d, "STA", 3, 5, MODE_ABSOLUTE_X},
	{0x99, "STA", 3, 5, MODE_ABSOLUTE_Y},
	{0x81, "STA", 2, 6, MODE_INDIRECT_X},
	{0x91, "STA", 2, 6, MODE_INDIRECT_Y},

	{0x86, "STX", 2, 3, MODE_ZEROPAGE},
	{0x96, "STX", 2, 4, MODE_ZEROPAGE_Y},
	{0x8e, "STX", 3, 4, MODE_ABSOLUTE},

	{0x84, "STY", 2, 3, MODE_ZEROPAGE},
	{0x94, "STY", 2, 4, MODE_ZEROPAGE_X},
	{0x8c, "STY", 3, 4, MODE_ABSOLUTE},

	{0xaa, "TAX", 1, 2, MODE_NONE},
	{0x8a, "TXA", 1, 2, MODE_NONE},
	{0xa8, "TAY", 1, 2, MODE_NONE},
	{0x98, "TYA", 1, 2, MODE_NONE},
	{0xba, "TSX", 1, 2, MODE_NONE},
	{0x9a, "TXS", 1, 2, MODE_NONE},

	{0xe6, "INC", 2, 5, MODE_ZEROPAGE},
	{0xf6, "INC", 2, 6, MODE_ZEROPAGE_X},
	{0xee, "INC", 3, 6, MODE_ABSOLUTE},
	{0xfe, "INC", 3, 7, MODE_ABSOLUTE_X},
	{0xe8, "INX", 1, 2, MODE_NONE},
	{0xc8, "INY", 1, 2, MODE_NONE},

	{0xc6, "DEC", 2, 5, MODE_ZEROPAGE},
	{0xd6, "DEC", 2, 6, MODE_ZEROPAGE_X},
	{0xce, "DEC", 3, 6, MODE_ABSOLUTE},
	{0xde, "DEC", 3, 7, MODE_ABSOLUTE_X},
	{0xca, "DEX", 1, 2, MODE_NONE},
	{0x88, "DEY", 1, 2, MODE_NONE},

	{0x29, "AND", 2, 2, MODE_IMMEDIATE},
	{0x25, "AND", 2, 3, MODE_ZEROPAGE},
	{0x35, "AND", 2, 4, MODE_ZEROPAGE_X},
	{0x2d, "AND", 3, 4, MODE_ABSOLUTE},
	{0x3d, "AND", 3, 4, MODE_ABSOLUTE_X},
	{0x39, "AND", 3, 4, MODE_ABSOLUTE_Y},
	{0x21, "AND", 2, 6, MODE_INDIRECT_X},
	{0x31, "AND", 2, 5, MODE_INDIRECT_Y},

	{0x09, "ORA", 2, 2, MODE_IMMEDIATE},
	{0x05, "ORA", 2, 3, MODE_ZEROPAGE},
	{0x15, "ORA", 2, 4, MODE_ZEROPAGE_X},
	{0x0d, "ORA", 3, 4, MODE_ABSOLUTE},
	{0x1d, "ORA", 3, 4, MODE_ABSOLUTE_X},
	{0x19, "ORA", 3, 4, MODE_ABSOLUTE_Y},
	{0x01, "ORA", 2, 6, MODE_INDIRECT_X},
	{0x11, "ORA", 2, 5, MODE_INDIRECT_Y},

	{0x49, "EOR", 2, 2, MODE_IMMEDIATE},
	{0x45, "EOR", 2, 3, MODE_ZEROPAGE},
	{0x55, "EOR", 2, 4, MODE_ZEROPAGE_X},
	{0x4d, "EOR", 3, 4, MODE_ABSOLUTE},
	{0x5d, "EOR", 3, 4, MODE_ABSOLUTE_X},
	{0x59, "EOR", 3, 4, MODE_ABSOLUTE_Y},
	{0x41, "EOR", 2, 6, MODE_INDIRECT_X},
	{0x51, "EOR", 2, 5, MODE_INDIRECT_Y},

	{0x69, "ADC", 2, 2, MODE_IMMEDIATE},
	{0x65, "ADC", 2, 3, MODE_ZEROPAGE},
	{0x75, "ADC", 2, 4, MODE_ZEROPAGE_X},
	{0x6d, "ADC", 3, 4, MODE_ABSOLUTE},
	{0x7d, "ADC", 3, 4, MODE_ABSOLUTE_X},
	{0x79, "ADC", 3, 4, MODE_ABSOLUTE_Y},
	{0x61, "ADC", 2, 6, MODE_INDIRECT_X},
	{0x71, "ADC", 2, 5, MODE_INDIRECT_Y},

	{0xe9, "SBC", 2, 2, MODE_IMMEDIATE},
	{0xe5, "SBC", 2, 3, MODE_ZEROPAGE},
	{0xf5, "SBC", 2, 4, MODE_ZEROPAGE_X},
	{0xed, "SBC", 3, 4, MODE_ABSOLUTE},
	{0xfd, "SBC", 3, 4, MODE_ABSOLUTE_X},
	{0xf9, "SBC", 3, 4, MODE_ABSOLUTE_Y},
	{0xe1, "SBC", 2, 6, MODE_INDIRECT_X},
	{0xf1, "SBC", 2, 5, MODE_INDIRECT_Y},

	{0xc9, "CMP", 2, 2, MODE_IMMEDIATE},
	{0xc5, "CMP", 2, 3, MODE_ZEROPAGE},
	{0xd5, "CMP", 2, 4, MODE_ZEROPAGE_X},
	{0xcd, "CMP", 3, 4, MODE_ABSOLUTE},
	{0xdd, "CMP", 3, 4, MODE_ABSOLUTE_X},
	{0xd9, "CMP", 3, 4, MODE_ABSOLUTE_Y},
	{0xc1, "CMP", 2, 6, MODE_INDIRECT_X},
	{0xd1, "CMP", 2, 5, MODE_INDIRECT_Y},

	{0xe0, "CPX", 2, 2, MODE_IMMEDIATE},
	{0xe4, "CPX", 2, 3, MODE_ZEROPAGE},
	{0xec, "CPX", 3, 4, MODE_ABSOLUTE},

	{0xc0, "CPY", 2, 2, MODE_IMMEDIATE},
	{0xc4, "CPY", 2, 3, MODE_ZEROPAGE},
	{0xcc, "CPY", 3, 4, MODE_ABSOLUTE},

	{0x0a, "ASL", 1, 2, MODE_NONE},
	{0x06, "ASL", 2, 5, MODE_ZEROPAGE},
	{0x16, "ASL", 2, 6, MODE_ZEROPAGE_X},
	{0x0e, "ASL", 3, 6, MODE_ABSOLUTE},
	{0x1e, "ASL", 3, 7, MODE_ABSOLUTE_X},

	{0x4a, "LSR", 1, 2, MODE_NONE},
	{0x46, "LSR", 2, 5, MODE_ZEROPAGE},
	{0x56, "LSR", 2, 6, MODE_ZEROPAGE_X},
	{0x4e, "LSR", 3, 6, MODE_ABSOLUTE},
	{0x5e, "LSR", 3, 7, MODE_ABSOLUTE_X},

	{0x2a, "ROL", 1, 2, MODE_NONE},
	{0x26, "ROL", 2, 5, MODE_ZEROPAGE},
	{0x36, "ROL", 2, 6, MODE_ZEROPAGE_X},
	{0x2e, "ROL", 3, 6, MODE_ABSOLUTE},
	{0x3e, "ROL", 3, 7, MODE_ABSOLUTE_X},

	{0x6a, "ROR", 1, 2, MODE_NONE},
	{0x66, "ROR", 2, 5, MODE_ZEROPAGE},
	{0x76, "ROR", 2, 6, MODE_ZEROPAGE_X},
	{0x6e, "ROR", 3, 6, MODE_ABSOLUTE},
	{0x7e, "ROR", 3, 7, MODE_ABSOLUTE_X},

	{0x24, "BIT", 2, 3, MODE_ZEROPAGE},
	{0x2c, "BIT", 3, 4, MODE_ABSOLUTE},

	{0x10, "BPL", 2, 2, MODE_NONE},
	{0x30, "BMI", 2, 2, MODE_NONE},
	{0x50, "BVC", 2, 2, MODE_NONE},
	{0x70, "BVS", 2, 2, MODE_NONE},
	{0x90, "BCC", 2, 2, MODE_NONE},
	{0xb0, "BCS", 2, 2, MODE_NONE},
	{0xd0, "BNE", 2, 2, MODE_NONE},
	{0xf0, "BEQ", 2, 2, MODE_NONE},

	{0x4c, "JMP", 3, 3, MODE_ABSOLUTE},
	{0x6c, "JMP", 3, 5, MODE_NONE},
	{0x20, "JSR", 3, 6, MODE_ABSOLUTE},
	{0x60, "RTS", 1, 6, MODE_NONE},

	{0x48, "PHA", 1, 3, MODE_NONE},
	{0x08, "PHP", 1, 3, MODE_NONE},
	{0x68, "PLA", 1, 4, MODE_NONE},
	{0x28, "PLP", 1, 4, MODE_NONE},

	{0x18, "CLC", 1, 2, MODE_NONE},
	{0x38, "SEC", 1, 2, MODE_NONE},
	{0x58, "CLI", 1, 2, MODE_NONE},
	{0x78, "SEI", 1, 2, MODE_NONE},
	{0xb8, "CLV", 1, 2, MODE_NONE},
	{0xd8, "CLD", 1, 2, MODE_NONE},
	{0xf8, "SED", 1, 2, MODE_NONE},
}

var byCode [256](*Descriptor)

func init() {
	for n := range descriptors {
		desc := &descriptors[n]
		if byCode[desc.Code] != nil {
			panic("optable: duplicate opcode byte")
		}
		byCode[desc.Code] = desc
	}
}

// Lookup finds the descriptor for an opcode byte.
func Lookup(code uint8) (desc Descriptor, ok bool) {
	entry := byCode[code]
	if entry == nil {
		return
	}

	return *entry, true
}

// All returns the descriptors in table order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
