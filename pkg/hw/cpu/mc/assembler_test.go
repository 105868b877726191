package mc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Packed(t *testing.T) {
	program, err := NewAssembler().Assemble([]string{
		"; example",
		"start:",
		"LOAD R0 [10]   ; 3 bytes",
		"ADD R0 R1 R2   ; 4 bytes",
		"loop:",
		"JUMP loop",
		"HALT",
		"end:",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x01, 0x00, 0x0A,
		0x03, 0x00, 0x01, 0x02,
		0x08, 0x07,
		0xFF,
	}, program.Binary)

	assert.Equal(t, map[string]int{"start": 0, "loop": 7, "end": 10}, program.Labels)

	require.Len(t, program.Instructions, 4)
	assert.Equal(t, 3, program.Instructions[0].Line)
	assert.Equal(t, 0, program.Instructions[0].Address)
	assert.Equal(t, 3, program.Instructions[1].Address)
	assert.Equal(t, 7, program.Instructions[2].Address)
	assert.Equal(t, 9, program.Instructions[3].Address)
}

func TestAssemble_Slots(t *testing.T) {
	program, err := NewAssembler(WithSlotSize(4)).Assemble([]string{
		"LOAD R0 [1]",
		"JUMP next",
		"next:",
		"HALT",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x01, 0x00, 0x01, 0x00,
		0x08, 0x08, 0x00, 0x00,
		0xFF, 0x00, 0x00, 0x00,
	}, program.Binary)
	assert.Equal(t, 8, program.Labels["next"])
}

func TestAssemble_JumpTargets(t *testing.T) {
	program, err := NewAssembler().Assemble([]string{"JUMP [0x10]", "JUMP 3", "JUMP forward", "forward:"})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x08, 0x10, 0x08, 0x03, 0x08, 0x06}, program.Binary)
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source []string
		err    error
		line   int
	}{
		{"unknown mnemonic", []string{"HALT", "FOO R0"}, cpu.ErrUnknownInstruction, 2},
		{"text only mnemonic", []string{"NAND R0 R1 R2"}, cpu.ErrUnknownInstruction, 1},
		{"if has no encoding", []string{"IF R0 == 0 THEN HALT"}, cpu.ErrUnknownInstruction, 1},
		{"bad operand", []string{"", "LOAD R9 [0]"}, cpu.ErrInvalidRegister, 2},
		{"arity", []string{"JUMP"}, cpu.ErrArity, 1},
		{"duplicate label", []string{"a:", "HALT", "a:"}, ErrDuplicateLabel, 3},
		{"unknown label", []string{"JUMP nowhere"}, ErrUnknownLabel, 1},
		{"bad jump target", []string{"JUMP [999]"}, cpu.ErrInvalidAddress, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewAssembler().Assemble(test.source)
			assert.ErrorIs(t, err, test.err)

			var programErr *cpu.ProgramError
			require.ErrorAs(t, err, &programErr)
			assert.Equal(t, test.line, programErr.Line)
		})
	}

	t.Run("too large", func(t *testing.T) {
		_, err := NewAssembler().Assemble(strings.Split(strings.Repeat("ADD R0 R1 R2\n", 65), "\n"))
		assert.ErrorIs(t, err, ErrProgramTooLarge)
	})
}

func TestProgram_Listing(t *testing.T) {
	program, err := NewAssembler().Assemble([]string{"start:", "LOAD R0 [10]", "HALT ; bye"})
	require.NoError(t, err)

	assert.Equal(t,
		"start:\n"+
			"  0x00  01 00 0A  LOAD R0 [10]\n"+
			"  0x03  FF        HALT\n",
		program.Listing())
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "program.asm")
	output := filepath.Join(dir, "program.bin")

	require.NoError(t, os.WriteFile(input, []byte("LOAD R0 [1]\nSTORE R0 [2]\nHALT\n"), 0o644))

	program, err := NewAssembler().AssembleFile(input, output)
	require.NoError(t, err)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, program.Binary, written)

	var buffer bytes.Buffer
	require.NoError(t, program.WriteBinary(&buffer))
	assert.Equal(t, written, buffer.Bytes())
}

func TestParseJumpTarget(t *testing.T) {
	target, err := ParseJumpTarget("loop,")
	require.NoError(t, err)
	assert.Equal(t, "loop", target.Label)
	assert.Equal(t, "loop", target.String())

	target, err = ParseJumpTarget("0x20")
	require.NoError(t, err)
	assert.Equal(t, 0x20, target.Address)
	assert.Equal(t, "[32]", target.String())

	_, err = ParseJumpTarget("a:b")
	assert.ErrorIs(t, err, cpu.ErrSyntax)
}

func TestDescriptor_Documentation(t *testing.T) {
	doc := Descriptor.DocString()

	assert.Contains(t, doc, "registers: 8 x 8 bits (R0-R7)")
	assert.Contains(t, doc, "memory: 256 cells of 8 bits")
	assert.Contains(t, doc, "0xFF HALT")
}
