package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzStep feeds arbitrary bytes to the execution engine. Any byte
// sequence must either execute or fault with an opcode error; it must
// never panic or escape the error taxonomy.
func FuzzStep(f *testing.F) {
	f.Add([]byte{0xa9, 0xc0, 0xaa, 0xe8, 0x00})
	f.Add([]byte{0x02})
	f.Add([]byte{0x4c, 0x00, 0x80})
	f.Add([]byte{0x20, 0x03, 0x80, 0x60})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		cpu := NewCpu()
		err := cpu.Load(data)
		if errors.Is(err, ErrProgramTooLarge) {
			return
		}
		assert.NoError(err)
		cpu.Reset()

		// Arbitrary input can loop; bound the steps taken.
		var done bool
		for range 10_000 {
			done, err = cpu.Step()
			if done || err != nil {
				break
			}
		}

		if done || err == nil {
			return
		}

		// Execution faults always identify the fetch.
		var opcode ErrOpcode
		assert.True(errors.As(err, &opcode))
		assert.True(errors.Is(err, ErrOpcodeUnknown) || errors.Is(err, ErrOpcodeUnhandled))
	})
}
