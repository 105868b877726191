package cpu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func assemble(t *testing.T, lines ...string) string {
	t.Helper()

	program, err := mc.NewAssembler().Assemble(lines)
	require.NoError(t, err)
	return writeFile(t, "program.bin", program.Binary)
}

func newTestMachine(maxSteps int) (*bios.Machine, *bytes.Buffer) {
	output := &bytes.Buffer{}
	return bios.NewMachine(bios.Config{MaxSteps: maxSteps}, nil, output), output
}

func decodeState(t *testing.T, data []byte) MachineState {
	t.Helper()

	var state MachineState
	require.NoError(t, yaml.Unmarshal(data, &state))
	return state
}

func TestExecute_TextProgram(t *testing.T) {
	machine, output := newTestMachine(interpreter.DefaultMaxSteps)
	path := writeFile(t, "program.asm", []byte("INIT [0] = 7\nLOAD R0 [0]\nOUT R0\nHALT\nOUT R0\n"))

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{state: true}, &stdout, &stderr)

	assert.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "OUT: REG R0=00000111\n", output.String())

	state := decodeState(t, stdout.Bytes())
	assert.Equal(t, "text", state.Program)
	assert.Equal(t, "halt", state.Stop)
	assert.Equal(t, 4, state.Steps)
	assert.Equal(t, 4, state.HaltLine)
	assert.Equal(t, uint8(7), state.Registers["R0"])
	assert.Equal(t, "00000111", state.Memory["0x00"])
	assert.Nil(t, state.PC)
}

func TestExecute_TextProgramError(t *testing.T) {
	machine, _ := newTestMachine(interpreter.DefaultMaxSteps)
	path := writeFile(t, "broken.asm", []byte("LOAD R0 [0]\nLOAD R8 [0]\n"))

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{}, &stdout, &stderr)

	assert.Equal(t, exitExecutionError, code)
	assert.Contains(t, stderr.String(), "line 2")
	assert.Empty(t, stdout.String())
}

func TestExecute_TextProgramErrorState(t *testing.T) {
	machine, _ := newTestMachine(interpreter.DefaultMaxSteps)
	path := writeFile(t, "broken.asm", []byte("INIT [0] = 1\nLOAD R0 [0]\nLOAD R8 [0]\nHALT\n"))

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{state: true}, &stdout, &stderr)
	assert.Equal(t, exitExecutionError, code)

	state := decodeState(t, stdout.Bytes())
	assert.Equal(t, "error", state.Stop)
	assert.Contains(t, state.Error, "line 3")
	assert.Equal(t, 2, state.Steps)
	assert.Equal(t, uint8(1), state.Registers["R0"])
}

func TestExecute_BinaryProgram(t *testing.T) {
	machine, _ := newTestMachine(interpreter.DefaultMaxSteps)
	require.NoError(t, machine.RAM.Write(0x80, 40))
	require.NoError(t, machine.RAM.Write(0x81, 2))

	path := assemble(t,
		"LOAD R0 [0x80]",
		"LOAD R1 [0x81]",
		"ADD R0 R1 R2",
		"STORE R2 [0x82]",
		"HALT")

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{trace: true, state: true}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	trace := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, trace, 5)
	assert.True(t, strings.HasPrefix(trace[0], "[   1] PC=0x00"), trace[0])
	assert.True(t, strings.HasSuffix(trace[2], "| ADD R0 R1 R2"), trace[2])
	assert.True(t, strings.HasSuffix(trace[4], "| HALT"), trace[4])

	state := decodeState(t, stdout.Bytes())
	assert.Equal(t, "binary", state.Program)
	assert.Equal(t, "halt", state.Stop)
	assert.Equal(t, 5, state.Steps)
	assert.Equal(t, uint8(42), state.Registers["R2"])
	assert.Equal(t, "00101010", state.Memory["0x82"])
	require.NotNil(t, state.PC)
}

func TestExecute_SlottedBinary(t *testing.T) {
	slotted := []byte{0x01, 0x00, 0x0A, 0x00, 0xFF}

	var stdout, stderr bytes.Buffer
	packed, _ := newTestMachine(interpreter.DefaultMaxSteps)
	code := execute(packed, writeFile(t, "slotted.bin", slotted), execOptions{state: true}, &stdout, &stderr)
	assert.Equal(t, exitExecutionError, code)
	assert.Equal(t, interpreter.StopError.String(), decodeState(t, stdout.Bytes()).Stop)

	stdout.Reset()
	stderr.Reset()
	machine := bios.NewMachine(bios.Config{MaxSteps: interpreter.DefaultMaxSteps, SlotSize: 4}, nil, &bytes.Buffer{})
	require.NoError(t, machine.RAM.Write(0x0A, 9))
	code = execute(machine, writeFile(t, "slotted.bin", slotted), execOptions{state: true}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	state := decodeState(t, stdout.Bytes())
	assert.Equal(t, 2, state.Steps)
	assert.Equal(t, uint8(9), state.Registers["R0"])
}

func TestExecute_BinaryBreakpoints(t *testing.T) {
	machine, _ := newTestMachine(interpreter.DefaultMaxSteps)
	path := assemble(t, "LOAD R0 [0x80]", "LOAD R1 [0x80]", "HALT")

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{breakpoints: []int{0x03, 0x06}}, &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "Breakpoint 1 hit at 0x03: R0=0")
	assert.Contains(t, stderr.String(), "Breakpoint 2 hit at 0x06:")
}

func TestExecute_BinaryMaxSteps(t *testing.T) {
	machine, _ := newTestMachine(10)
	path := assemble(t, "loop:", "JUMP loop")

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{state: true}, &stdout, &stderr)

	assert.Equal(t, exitNotHalted, code)
	assert.Contains(t, stderr.String(), "=== Execution max_steps ===")
	assert.Contains(t, stderr.String(), "Steps executed: 10")

	state := decodeState(t, stdout.Bytes())
	assert.Equal(t, "max_steps", state.Stop)
	assert.Equal(t, 10, state.Steps)
}

func TestExecute_BinaryMaxStepsAcrossBreakpoints(t *testing.T) {
	machine, _ := newTestMachine(6)
	path := assemble(t, "loop:", "JUMP loop")

	var stdout, stderr bytes.Buffer
	code := execute(machine, path, execOptions{breakpoints: []int{0}}, &stdout, &stderr)

	assert.Equal(t, exitNotHalted, code)
	assert.Contains(t, stderr.String(), "Steps executed: 6")
}

func TestExecute_BinaryErrors(t *testing.T) {
	machine, _ := newTestMachine(interpreter.DefaultMaxSteps)

	var stdout, stderr bytes.Buffer
	code := execute(machine, writeFile(t, "init.bin", []byte{0x09, 0x00, 0x05}), execOptions{}, &stdout, &stderr)
	assert.Equal(t, exitExecutionError, code)
	assert.Contains(t, stderr.String(), "=== Execution error ===")

	stderr.Reset()
	code = execute(machine, filepath.Join(t.TempDir(), "missing.bin"), execOptions{}, &stdout, &stderr)
	assert.Equal(t, exitLoadError, code)

	stderr.Reset()
	code = execute(machine, writeFile(t, "huge.bin", make([]byte, 300)), execOptions{}, &stdout, &stderr)
	assert.Equal(t, exitLoadError, code)
	assert.Contains(t, stderr.String(), "Error loading program")
}

func TestParseAddresses(t *testing.T) {
	addresses, err := parseAddresses([]string{"0x10", "16", " 255 "})
	require.NoError(t, err)
	assert.Equal(t, []int{16, 16, 255}, addresses)

	_, err = parseAddresses([]string{"256"})
	assert.ErrorIs(t, err, cpu.ErrInvalidAddress)

	_, err = parseAddresses([]string{"loop"})
	assert.ErrorIs(t, err, cpu.ErrInvalidAddress)
}

func TestIsTextProgram(t *testing.T) {
	assert.True(t, isTextProgram("program.asm"))
	assert.True(t, isTextProgram("PROGRAM.ASM"))
	assert.False(t, isTextProgram("program.bin"))
	assert.False(t, isTextProgram("program"))
}
