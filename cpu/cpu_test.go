package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(uint8(0), cpu.X)
	assert.Equal(uint8(0), cpu.Y)
	assert.Equal(STACK_RESET, cpu.Sp)
	assert.Equal(STATUS_RESET, cpu.Status)
	assert.Equal(uint16(0), cpu.Pc)

	// Memory is zero-initialized.
	assert.Equal(uint8(0), cpu.MemRead(0x0000))
	assert.Equal(uint8(0), cpu.MemRead(0xffff))
}

func TestMemWord_LittleEndian(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.MemWriteWord(0x1000, 0x1234)
	assert.Equal(uint8(0x34), cpu.MemRead(0x1000))
	assert.Equal(uint8(0x12), cpu.MemRead(0x1001))
	assert.Equal(uint16(0x1234), cpu.MemReadWord(0x1000))
}

func TestLoad_InstallsResetVector(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Load([]uint8{0xa9, 0x01, 0x00})
	assert.NoError(err)

	assert.Equal(uint8(0xa9), cpu.MemRead(LOAD_ORIGIN))
	assert.Equal(uint8(0x01), cpu.MemRead(LOAD_ORIGIN+1))
	assert.Equal(LOAD_ORIGIN, cpu.MemReadWord(RESET_VECTOR))
}

func TestLoad_TooLarge(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	oversized := make([]uint8, int(RESET_VECTOR-LOAD_ORIGIN)+1)
	err := cpu.Load(oversized)
	assert.ErrorIs(err, ErrProgramTooLarge)

	// The reset vector must not have been clobbered.
	assert.Equal(uint16(0), cpu.MemReadWord(RESET_VECTOR))

	exact := make([]uint8, int(RESET_VECTOR-LOAD_ORIGIN))
	assert.NoError(cpu.Load(exact))
}

func TestReset_PreservesMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint8{0x00}))
	cpu.MemWrite(0x0010, 0x55)

	cpu.A, cpu.X, cpu.Y = 1, 2, 3
	cpu.Sp = 0x10
	cpu.Status = Status(0xff)

	cpu.Reset()
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(uint8(0), cpu.X)
	assert.Equal(uint8(0), cpu.Y)
	assert.Equal(STACK_RESET, cpu.Sp)
	assert.Equal(STATUS_RESET, cpu.Status)
	assert.Equal(LOAD_ORIGIN, cpu.Pc)
	assert.Equal(uint8(0x55), cpu.MemRead(0x0010))
}

func TestRun_HaltsAtBrk(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.LoadAndRun([]uint8{0xea, 0xea, 0x00, 0xea})
	assert.NoError(err)

	// Pc stops just past the halt byte.
	assert.Equal(LOAD_ORIGIN+3, cpu.Pc)
}

func TestStep_SingleInstruction(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint8{0xa9, 0x42, 0x00}))
	cpu.Reset()

	done, err := cpu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint8(0x42), cpu.A)
	assert.Equal(LOAD_ORIGIN+2, cpu.Pc)

	done, err = cpu.Step()
	assert.NoError(err)
	assert.True(done)
}

func TestStep_UnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// 0x02 is not an official opcode.
	err := cpu.LoadAndRun([]uint8{0x02})
	assert.ErrorIs(err, ErrOpcodeUnknown)

	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(LOAD_ORIGIN, eo.Pc)
	assert.Equal(uint8(0x02), eo.Code)
}

func TestStep_AccumulatesTicks(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// LDA #imm (2) + STA zp (3) + BRK (7)
	err := cpu.LoadAndRun([]uint8{0xa9, 0x01, 0x85, 0x10, 0x00})
	assert.NoError(err)
	assert.Equal(12, cpu.Ticks)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	text := cpu.String()
	assert.Contains(text, "pc: $0000")
	assert.Contains(text, "sp: $FD")
	assert.Contains(text, "nv-bdIzc")
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for attr, val := range cpu.Defines() {
		defines[attr] = val
	}
	assert.Equal("0x8000", defines["LOAD_ORIGIN"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
}
