package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"  LDA #$01",
		"  STA $1234",
		"  BRK",
	)
	assert.NoError(err)

	dbg := prog.Debug(LOAD_ORIGIN)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Offset)

	// Middle byte of the STA maps back to line 2.
	dbg = prog.Debug(LOAD_ORIGIN + 3)
	assert.NotNil(dbg.Statement)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Offset)

	// Addresses past the program have no statement.
	dbg = prog.Debug(LOAD_ORIGIN + 6)
	assert.Nil(dbg.Statement)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "LDA #$42", "BRK")
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, prog.Binary())
}

func TestProgram_Bytes(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, "LDA #$42")
	assert.NoError(err)

	addrs := []uint16{}
	data := []uint8{}
	for addr, b := range prog.Bytes() {
		addrs = append(addrs, addr)
		data = append(data, b)
	}
	assert.Equal([]uint16{LOAD_ORIGIN, LOAD_ORIGIN + 1}, addrs)
	assert.Equal([]uint8{0xa9, 0x42}, data)
}

func TestProgram_BinaryRunsOnCpu(t *testing.T) {
	assert := assert.New(t)

	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"  LDX #$08",
		"loop:",
		"  DEX",
		"  BNE loop",
		"  BRK",
	}, "\n")))
	assert.NoError(err)

	cpu := NewCpu()
	err = cpu.LoadAndRun(prog.Binary())
	assert.NoError(err)
	assert.Equal(uint8(0x00), cpu.X)
	assert.True(cpu.Status.Has(FLAG_ZERO))
}
