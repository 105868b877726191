package bios

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	level MessageLevel
	text  string
}

type fakeUI struct {
	messages  []message
	dumps     [][]string
	registers [][cpu.TotalRegisters]uint8
	texts     []string
	help      []CommandHelp
}

func (ui *fakeUI) ShowMessage(level MessageLevel, format string, args ...interface{}) {
	ui.messages = append(ui.messages, message{level: level, text: fmt.Sprintf(format, args...)})
}

func (ui *fakeUI) ShowMemoryDump(start int, cells []string) {
	ui.dumps = append(ui.dumps, cells)
}

func (ui *fakeUI) ShowRegisters(values [cpu.TotalRegisters]uint8) {
	ui.registers = append(ui.registers, values)
}

func (ui *fakeUI) ShowText(text string) {
	ui.texts = append(ui.texts, text)
}

func (ui *fakeUI) ShowHelp(commands []CommandHelp) {
	ui.help = commands
}

func (ui *fakeUI) last() message {
	if len(ui.messages) == 0 {
		return message{}
	}

	return ui.messages[len(ui.messages)-1]
}

func newTestController(t *testing.T) (*Controller, *fakeUI, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	ui := &fakeUI{}
	machine := NewMachine(DefaultConfig(), nil, output)
	return machine.PowerOn(ui), ui, output
}

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestController_PowerOn(t *testing.T) {
	c, ui, _ := newTestController(t)

	assert.True(t, c.IsRunning())
	require.Len(t, ui.messages, 2)
	assert.Equal(t, "Powering on the system...", ui.messages[0].text)
	assert.Equal(t, "System Powered On", ui.messages[1].text)
}

func TestController_Exit(t *testing.T) {
	for _, command := range []string{"exit", "quit", "  q  "} {
		c, _, _ := newTestController(t)
		c.Execute(command)
		assert.False(t, c.IsRunning(), command)
	}
}

func TestController_Help(t *testing.T) {
	c, ui, _ := newTestController(t)
	c.Execute("help")
	assert.NotEmpty(t, ui.help)
}

func TestController_Unknown(t *testing.T) {
	c, ui, _ := newTestController(t)
	c.Execute("frobnicate")

	assert.Equal(t, message{LevelError, "Unknown command: frobnicate"}, ui.last())
	assert.True(t, c.IsRunning())

	c.Execute("")
	assert.Equal(t, message{LevelError, "Unknown command: frobnicate"}, ui.last(), "empty commands are ignored")
}

func TestController_ExecAndInspect(t *testing.T) {
	c, ui, output := newTestController(t)

	c.Execute("exec INIT [3] = 5")
	c.Execute("exec LOAD R1 [3]")
	c.Execute("exec OUT R1")
	assert.Equal(t, "OUT: REG R1=00000101\n", output.String())

	c.Execute("address [3]")
	assert.Equal(t, message{LevelInfo, "Value at address [3]: 00000101"}, ui.last())

	c.Execute("address [0x03]")
	assert.Equal(t, "Value at address [0x03]: 00000101", ui.last().text)

	c.Execute("address [300]")
	assert.Equal(t, LevelError, ui.last().level)

	c.Execute("address")
	assert.Equal(t, LevelWarning, ui.last().level)

	c.Execute("registers")
	require.Len(t, ui.registers, 1)
	assert.Equal(t, uint8(5), ui.registers[0][1])

	c.Execute("memory_dump 2 3")
	require.Len(t, ui.dumps, 1)
	assert.Equal(t, []string{"00000000", "00000101", "00000000"}, ui.dumps[0])

	c.Execute("memory_dump")
	require.Len(t, ui.dumps, 2)
	assert.Len(t, ui.dumps[1], 256)

	c.Execute("exec LOAD R9 [0]")
	assert.Equal(t, LevelError, ui.last().level)
	assert.Contains(t, ui.last().text, "invalid register")

	c.Execute("exec HALT")
	assert.Equal(t, "Program halted.", ui.last().text)
}

func TestController_RunText(t *testing.T) {
	c, ui, output := newTestController(t)
	path := writeFile(t, "program.asm", "INIT [0] = 2\nLOAD R0 [0]\nADD R0 R0 R1\nOUT R1\nHALT\nOUT R0\n")

	c.Execute(path)

	assert.Equal(t, "OUT: REG R1=00000100\n", output.String())
	assert.Equal(t, message{LevelSuccess, "Program halted."}, ui.last())

	c.Execute(writeFile(t, "broken.asm", "LOAD R0 [0]\nFOO\n"))
	assert.Equal(t, LevelError, ui.last().level)
	assert.Contains(t, ui.last().text, "error at line 2")
}

func TestController_CompileAndRun(t *testing.T) {
	c, ui, _ := newTestController(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "program.asm")
	binary := filepath.Join(dir, "program.bin")

	require.NoError(t, os.WriteFile(source, []byte(
		"LOAD R0 [0x80]\n"+
			"LOAD R1 [0x81]\n"+
			"loop:\n"+
			"ADD R0 R1 R2\n"+
			"STORE R2 [0x82]\n"+
			"HALT\n"), 0o644))

	c.Execute(fmt.Sprintf("compile %v %v", source, binary))
	assert.Equal(t, LevelSuccess, ui.last().level, ui.last().text)

	c.Execute(fmt.Sprintf("listing %v", source))
	require.NotEmpty(t, ui.texts)
	assert.Contains(t, ui.texts[len(ui.texts)-1], "loop:")

	require.NoError(t, c.Machine().RAM.Write(0x80, 40))
	require.NoError(t, c.Machine().RAM.Write(0x81, 2))

	c.Execute(fmt.Sprintf("run %v", binary))
	assert.Equal(t, message{LevelSuccess, "Program execution completed (5 steps)"}, ui.last())

	value, err := c.Machine().RAM.Read(0x82)
	require.NoError(t, err)
	assert.Equal(t, byte(42), value)

	c.Execute("run")
	assert.Equal(t, LevelWarning, ui.last().level)

	c.Execute("run /does/not/exist.bin")
	assert.Equal(t, LevelError, ui.last().level)

	c.Execute("compile")
	assert.Equal(t, LevelWarning, ui.last().level)
}

func TestController_Debugging(t *testing.T) {
	c, ui, _ := newTestController(t)
	// XOR R0 R0 R0; NOT R0 R1; HALT
	binary := writeFile(t, "program.bin", string([]byte{0x06, 0x00, 0x00, 0x00, 0x07, 0x00, 0x01, 0xFF}))

	c.Execute("load " + binary)
	assert.Equal(t, LevelSuccess, ui.last().level)

	c.Execute("break 0x04")
	assert.Equal(t, message{LevelSuccess, "Breakpoint 1 set at 0x04"}, ui.last())

	c.Execute("breakpoints")
	assert.Contains(t, ui.texts[len(ui.texts)-1], "0x04")

	c.Execute("continue")
	assert.Equal(t, message{LevelWarning, "Breakpoint 1 hit at 0x04"}, ui.last())

	c.Execute("step")
	assert.Contains(t, ui.texts[len(ui.texts)-1], "NOT R0 R1")

	value, err := c.Machine().Engine.Registers().Read(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), value)

	c.Execute("step 5")
	assert.Equal(t, message{LevelSuccess, "Program execution completed (1 steps)"}, ui.last())

	c.Execute("disasm 0 8")
	assert.Equal(t, "0x00  XOR R0 R0 R0\n0x04  NOT R0 R1\n0x07  HALT\n", ui.texts[len(ui.texts)-1])

	c.Execute("delete 1")
	assert.Equal(t, message{LevelSuccess, "Breakpoint 1 deleted"}, ui.last())

	c.Execute("delete 1")
	assert.Equal(t, LevelError, ui.last().level)

	c.Execute("step zero")
	assert.Equal(t, LevelError, ui.last().level)
}

func TestController_MaxSteps(t *testing.T) {
	ui := &fakeUI{}
	config := DefaultConfig()
	config.MaxSteps = 10
	c := NewMachine(config, nil, &bytes.Buffer{}).PowerOn(ui)

	c.Execute("run " + writeFile(t, "loop.bin", string([]byte{0x08, 0x00})))
	assert.Equal(t, message{LevelWarning, "Stopped after 10 steps without reaching HALT"}, ui.last())
}

func TestController_Reset(t *testing.T) {
	c, ui, _ := newTestController(t)
	c.Execute("exec INIT [1] = 1")
	c.Execute("exec MOV R0 1")
	c.Execute("break 3")

	c.Execute("reset")
	assert.Equal(t, message{LevelSuccess, "Machine reset"}, ui.last())

	assert.Equal(t, make([]byte, 256), c.Machine().RAM.Bytes())
	assert.Equal(t, [cpu.TotalRegisters]uint8{}, c.Machine().Engine.Registers().Values())
	assert.Empty(t, c.Machine().Debugger.ListBreakpoints())
}

func TestCommandNames(t *testing.T) {
	names := CommandNames()

	assert.Contains(t, names, "memory_dump")
	assert.Contains(t, names, "regs")
	assert.Contains(t, names, "q")
	assert.NotContains(t, names, "<file>.asm")
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		arg   string
		value int
		err   bool
	}{
		{"0", 0, false},
		{"0xFF", 255, false},
		{"[0x10]", 16, false},
		{"255", 255, false},
		{"256", 0, true},
		{"[256]", 0, true},
		{"-1", 0, true},
		{"loop", 0, true},
	}

	for _, test := range tests {
		t.Run(test.arg, func(t *testing.T) {
			value, err := parseLocation(test.arg)
			if test.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.value, value)
		})
	}
}

func TestParseRange(t *testing.T) {
	start, length, err := parseRange([]string{"0", "256"}, 16)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 256, length)

	_, _, err = parseRange([]string{"256"}, 16)
	assert.ErrorIs(t, err, cpu.ErrInvalidAddress)

	_, _, err = parseRange([]string{"0", "257"}, 16)
	assert.ErrorIs(t, err, cpu.ErrInvalidAddress)
}

func TestController_BreakOutOfRange(t *testing.T) {
	c, ui, _ := newTestController(t)

	c.Execute("break 256")
	assert.Equal(t, LevelError, ui.last().level)
	assert.Empty(t, c.Machine().Debugger.ListBreakpoints())

	c.Execute("break 0xFF")
	assert.Equal(t, LevelSuccess, ui.last().level)
	assert.Len(t, c.Machine().Debugger.ListBreakpoints(), 1)
}
