package cpu

// Status is the 8-bit processor status register. Bit positions follow the
// hardware layout so a serialized status byte matches the physical part.
type Status uint8

const (
	FLAG_CARRY             = Status(1 << 0)
	FLAG_ZERO              = Status(1 << 1)
	FLAG_INTERRUPT_DISABLE = Status(1 << 2)
	FLAG_DECIMAL           = Status(1 << 3) // Flag bit only; never alters ALU results.
	FLAG_BREAK             = Status(1 << 4)
	FLAG_BREAK2            = Status(1 << 5)
	FLAG_OVERFLOW          = Status(1 << 6)
	FLAG_NEGATIVE          = Status(1 << 7)
)

// STATUS_RESET is the power-on flag pattern: Break2 and Interrupt-Disable.
const STATUS_RESET = FLAG_BREAK2 | FLAG_INTERRUPT_DISABLE

// Has reports whether all flags in the mask are set.
func (st Status) Has(flag Status) bool {
	return (st & flag) == flag
}

// With returns the status with the flags in the mask set or cleared.
func (st Status) With(flag Status, on bool) Status {
	if on {
		return st | flag
	}
	return st &^ flag
}

// Set sets or clears the flags in the mask in place.
func (st *Status) Set(flag Status, on bool) {
	*st = st.With(flag, on)
}

var flagNames = []struct {
	flag Status
	name byte
}{
	{FLAG_NEGATIVE, 'N'},
	{FLAG_OVERFLOW, 'V'},
	{FLAG_BREAK2, '-'},
	{FLAG_BREAK, 'B'},
	{FLAG_DECIMAL, 'D'},
	{FLAG_INTERRUPT_DISABLE, 'I'},
	{FLAG_ZERO, 'Z'},
	{FLAG_CARRY, 'C'},
}

// String renders the flags high bit first, lower case when clear.
func (st Status) String() string {
	out := make([]byte, len(flagNames))
	for n, entry := range flagNames {
		name := entry.name
		if !st.Has(entry.flag) && name >= 'A' && name <= 'Z' {
			name |= 0x20
		}
		out[n] = name
	}

	return string(out)
}

// updateZeroNegative is the single authoritative Zero/Negative update rule:
// Zero iff the result is 0, Negative mirrors bit 7 of the result.
func (cpu *Cpu) updateZeroNegative(result uint8) {
	cpu.Status.Set(FLAG_ZERO, result == 0)
	cpu.Status.Set(FLAG_NEGATIVE, (result&0x80) != 0)
}
