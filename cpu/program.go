package cpu

import (
	"iter"
)

// Statement is one assembled source line: its location, the words it was
// parsed from, and the bytes it generated.
type Statement struct {
	LineNo    int
	Addr      uint16
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

// Program is an assembled listing, addressable by source line and by
// memory address.
type Program struct {
	Statements []Statement
}

// Debug locates the statement covering a memory address.
type Debug struct {
	*Statement
	Offset int
}

// Debug maps an address back to the statement that generated it.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+uint16(len(st.Bytes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Offset:    int(addr - st.Addr),
			}
			break
		}
	}

	return
}

// Binary flattens the listing into a loadable image starting at the load
// origin. Gaps between statements are zero filled.
func (prog *Program) Binary() (image []uint8) {
	for addr, data := range prog.Bytes() {
		offset := int(addr - LOAD_ORIGIN)
		for len(image) <= offset {
			image = append(image, 0)
		}
		image[offset] = data
	}

	return
}

// Bytes iterates the generated bytes with their absolute addresses.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, data uint8) bool) {
		for _, st := range prog.Statements {
			for n, data := range st.Bytes {
				if !yield(st.Addr+uint16(n), data) {
					return
				}
			}
		}
	}
}
