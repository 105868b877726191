package cpu

import (
	"testing"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jumpDescriptor() *instructions.InstructionDescriptor {
	return instructions.Instructions.Instruction(instructions.Mnemonic_JUMP)
}

func TestInstruction_Encode(t *testing.T) {
	tests := []struct {
		line     string
		expected []byte
	}{
		{"LOAD R0 [10]", []byte{0x01, 0x00, 0x0A}},
		{"STORE R1 [0xFF]", []byte{0x02, 0x01, 0xFF}},
		{"ADD R0 R1 R2", []byte{0x03, 0x00, 0x01, 0x02}},
		{"AND R0 R1 R2", []byte{0x04, 0x00, 0x01, 0x02}},
		{"OR R3 R4 R5", []byte{0x05, 0x03, 0x04, 0x05}},
		{"XOR R7 R6 R5", []byte{0x06, 0x07, 0x06, 0x05}},
		{"NOT R1 R2", []byte{0x07, 0x01, 0x02}},
		{"INIT [4] = 9", []byte{0x09, 0x04, 0x09}},
		{"OUT R2", []byte{0x0A, 0x02}},
		{"CLEAR [3]", []byte{0x0B, 0x03}},
		{"VER 0 1", []byte{0xFE, 0x01}},
		{"HALT", []byte{0xFF}},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			instr, err := Decode(test.line)
			require.NoError(t, err)

			binary, err := instr.Encode()
			require.NoError(t, err)
			assert.Equal(t, test.expected, binary)
			assert.Equal(t, len(binary), instr.Size())
		})
	}

	t.Run("jump", func(t *testing.T) {
		instr := &Instruction{Descriptor: jumpDescriptor(), Operands: []Operand{AddressOperand(0x20)}}
		binary, err := instr.Encode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x08, 0x20}, binary)
	})

	t.Run("text only instructions", func(t *testing.T) {
		for _, line := range []string{"NAND R0 R1 R2", "NOR R0 R1 R2", "MOV R0 1", "QMOV R0 [1]", "IF R0 == 0 THEN HALT"} {
			instr, err := Decode(line)
			require.NoError(t, err)

			_, err = instr.Encode()
			assert.ErrorIs(t, err, ErrUnknownInstruction, line)
		}
	})
}

func TestDecodeBinary(t *testing.T) {
	ram := memory.NewRAM()

	t.Run("round trip", func(t *testing.T) {
		for _, line := range []string{"LOAD R0 [10]", "STORE R7 [255]", "ADD R0 R1 R2", "XOR R1 R1 R1", "NOT R4 R5", "HALT"} {
			instr, err := Decode(line)
			require.NoError(t, err)
			binary, err := instr.Encode()
			require.NoError(t, err)
			require.NoError(t, ram.Load(0x40, binary))

			decoded, err := DecodeBinary(ram, 0x40)
			require.NoError(t, err)
			assert.Equal(t, instr.String(), decoded.String())
		}
	})

	t.Run("jump", func(t *testing.T) {
		require.NoError(t, ram.Load(0, []byte{0x08, 0x10}))

		decoded, err := DecodeBinary(ram, 0)
		require.NoError(t, err)
		assert.Equal(t, "JUMP [16]", decoded.String())
	})

	t.Run("invalid opcodes", func(t *testing.T) {
		for _, opcode := range []byte{0x00, 0x09, 0x0A, 0x0B, 0x0C, 0x80, 0xFE} {
			require.NoError(t, ram.Write(0, opcode))

			_, err := DecodeBinary(ram, 0)
			assert.ErrorIs(t, err, ErrInvalidOpcode, "opcode 0x%02X", opcode)
		}
	})

	t.Run("invalid register byte", func(t *testing.T) {
		require.NoError(t, ram.Load(0, []byte{0x01, 0x08, 0x00}))

		_, err := DecodeBinary(ram, 0)
		assert.ErrorIs(t, err, ErrInvalidRegister)
	})

	t.Run("operands past the end of memory", func(t *testing.T) {
		require.NoError(t, ram.Write(memory.Size-1, 0x01))

		_, err := DecodeBinary(ram, memory.Size-1)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestDisassembleBinary(t *testing.T) {
	ram := memory.NewRAM()

	t.Run("non executable opcodes", func(t *testing.T) {
		require.NoError(t, ram.Load(0, []byte{0x09, 0x01, 0x03}))

		decoded, err := DisassembleBinary(ram, 0)
		require.NoError(t, err)
		assert.Equal(t, "INIT [1] = 3", decoded.String())
		assert.Equal(t, 3, decoded.Size())

		_, err = DecodeBinary(ram, 0)
		assert.ErrorIs(t, err, ErrInvalidOpcode)
	})

	t.Run("unassigned opcodes", func(t *testing.T) {
		for _, opcode := range []byte{0x00, 0x0C, 0x80} {
			require.NoError(t, ram.Write(0, opcode))

			_, err := DisassembleBinary(ram, 0)
			assert.ErrorIs(t, err, ErrInvalidOpcode, "opcode 0x%02X", opcode)
		}
	})
}
