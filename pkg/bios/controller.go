package bios

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

// Controller processes shell commands against a machine, delegating
// presentation to the UI
type Controller struct {
	machine *Machine
	ui      UI
	running bool
	trace   *interpreter.TraceFormatter
}

func NewController(machine *Machine, ui UI) *Controller {
	return &Controller{
		machine: machine,
		ui:      ui,
		running: true,
		trace:   interpreter.NewTraceFormatter(interpreter.StylePlain),
	}
}

func (c *Controller) Machine() *Machine {
	return c.machine
}

// IsRunning returns true until the user exits the shell
func (c *Controller) IsRunning() bool {
	return c.running
}

// SetTraceStyle selects how traces and listings are rendered
func (c *Controller) SetTraceStyle(style interpreter.FormatStyle) {
	c.trace = interpreter.NewTraceFormatter(style)
}

var commands = []CommandHelp{
	{Name: "help", Aliases: []string{"?"}, Description: "Show help", Usage: "help"},
	{Name: "address", Description: "Show a memory cell", Usage: "address <[addr]>"},
	{Name: "memory_dump", Description: "Dump memory cells", Usage: "memory_dump [start [length]]"},
	{Name: "registers", Aliases: []string{"regs"}, Description: "Show the register file", Usage: "registers"},
	{Name: "exec", Description: "Execute one instruction", Usage: "exec <instruction>"},
	{Name: "<file>.asm", Description: "Interpret a text program", Usage: "<file>.asm"},
	{Name: "compile", Description: "Assemble a text program into a binary", Usage: "compile <input.asm> <output.bin>"},
	{Name: "listing", Description: "Show the assembly listing of a text program", Usage: "listing <input.asm>"},
	{Name: "run", Description: "Load and run a binary (packed unless the machine has a slot size)", Usage: "run <binary.bin>"},
	{Name: "load", Description: "Load a binary without running it (packed unless the machine has a slot size)", Usage: "load <binary.bin>"},
	{Name: "step", Aliases: []string{"s"}, Description: "Execute binary instructions", Usage: "step [n]"},
	{Name: "continue", Aliases: []string{"c"}, Description: "Continue until halt, breakpoint or step limit", Usage: "continue"},
	{Name: "break", Aliases: []string{"b"}, Description: "Set a breakpoint", Usage: "break <addr>"},
	{Name: "delete", Aliases: []string{"d"}, Description: "Delete a breakpoint", Usage: "delete <id>"},
	{Name: "breakpoints", Description: "List breakpoints", Usage: "breakpoints"},
	{Name: "disasm", Aliases: []string{"x"}, Description: "Disassemble memory", Usage: "disasm [start [length]]"},
	{Name: "reset", Description: "Clear memory, registers and breakpoints", Usage: "reset"},
	{Name: "exit", Aliases: []string{"quit", "q"}, Description: "Leave the shell", Usage: "exit"},
}

// CommandNames returns every command name and alias, for completion
func CommandNames() []string {
	var names []string
	for _, cmd := range commands {
		if !strings.HasPrefix(cmd.Name, "<") {
			names = append(names, cmd.Name)
		}
		names = append(names, cmd.Aliases...)
	}

	return names
}

// Execute runs one shell command
func (c *Controller) Execute(command string) {
	command = strings.TrimSpace(command)
	args := strings.Fields(command)

	if len(args) == 0 {
		return
	}

	if strings.HasSuffix(args[0], ".asm") && len(args) == 1 {
		c.CmdRunText(args[0])
		return
	}

	switch args[0] {
	case "exit", "quit", "q":
		c.CmdQuit()
	case "help", "?":
		c.ui.ShowHelp(commands)
	case "address":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Please enter the address you'd like to gather!")
			return
		}
		c.CmdAddress(args[1])
	case "memory_dump":
		c.CmdMemoryDump(args[1:])
	case "registers", "regs":
		c.ui.ShowRegisters(c.machine.Engine.Registers().Values())
	case "exec":
		c.CmdExec(strings.TrimSpace(strings.TrimPrefix(command, args[0])))
	case "compile":
		if len(args) != 3 {
			c.ui.ShowMessage(LevelWarning, "Usage: compile <input_file.asm> <output_file.bin>")
			return
		}
		c.CmdCompile(args[1], args[2])
	case "listing":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Usage: listing <input_file.asm>")
			return
		}
		c.CmdListing(args[1])
	case "run":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Usage: run <binary_file.bin>")
			return
		}
		c.CmdRun(args[1])
	case "load":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Usage: load <binary_file.bin>")
			return
		}
		c.CmdLoad(args[1])
	case "step", "s":
		c.CmdStep(args[1:])
	case "continue", "c":
		c.CmdContinue()
	case "break", "b":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Usage: break <addr>")
			return
		}
		c.CmdBreak(args[1])
	case "delete", "d":
		if len(args) != 2 {
			c.ui.ShowMessage(LevelWarning, "Usage: delete <id>")
			return
		}
		c.CmdDelete(args[1])
	case "breakpoints":
		c.CmdBreakpoints()
	case "disasm", "x":
		c.CmdDisasm(args[1:])
	case "reset":
		c.machine.Reset()
		c.ui.ShowMessage(LevelSuccess, "Machine reset")
	default:
		c.ui.ShowMessage(LevelError, "Unknown command: %v", command)
	}
}

func parseNumber(arg string, limit int) (int, error) {
	value, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number '%v': %w", arg, err)
	}
	if value > uint64(limit) {
		return 0, utils.MakeError(cpu.ErrInvalidAddress, "'%v' out of range", arg)
	}

	return int(value), nil
}

// parseLocation accepts '[addr]' or a plain decimal or 0x prefixed number
// naming a memory cell
func parseLocation(arg string) (int, error) {
	if strings.HasPrefix(arg, "[") {
		return cpu.ParseAddress(arg)
	}

	return parseNumber(arg, memory.Size-1)
}

// parseLength accepts a number of cells, up to the whole memory
func parseLength(arg string) (int, error) {
	return parseNumber(arg, memory.Size)
}

// parseRange parses optional [start [length]] arguments
func parseRange(args []string, defaultLength int) (int, int, error) {
	start, length := 0, defaultLength

	if len(args) > 2 {
		return 0, 0, fmt.Errorf("expected at most two arguments, got %d", len(args))
	}

	if len(args) > 0 {
		var err error
		if start, err = parseLocation(args[0]); err != nil {
			return 0, 0, err
		}
	}

	if len(args) > 1 {
		var err error
		if length, err = parseLength(args[1]); err != nil {
			return 0, 0, err
		}
	}

	return start, length, nil
}

func (c *Controller) CmdQuit() {
	c.running = false
	c.ui.ShowMessage(LevelInfo, "Shutting down.")
}

func (c *Controller) CmdAddress(arg string) {
	address, err := cpu.ParseAddress(arg)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error: %v", err)
		return
	}

	value, err := c.machine.RAM.Read(address)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error: %v", err)
		return
	}

	c.ui.ShowMessage(LevelInfo, "Value at address %v: %v", arg, utils.FormatByte(value))
}

func (c *Controller) CmdMemoryDump(args []string) {
	start, length, err := parseRange(args, memory.Size)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Usage: memory_dump [start [length]]: %v", err)
		return
	}

	c.ui.ShowMemoryDump(start, c.machine.RAM.Dump(start, length))
}

func (c *Controller) CmdExec(instruction string) {
	if len(instruction) == 0 {
		c.ui.ShowMessage(LevelWarning, "Usage: exec <instruction>")
		return
	}

	cont, err := c.machine.Engine.Execute(instruction)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error: %v", err)
		return
	}

	if !cont {
		c.ui.ShowMessage(LevelInfo, "Program halted.")
	}
}

func (c *Controller) CmdRunText(path string) {
	c.ui.ShowMessage(LevelInfo, "Running program: %v", path)

	result, err := c.machine.Programs.RunFile(path)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error running program: %v", err)
		return
	}

	if result.Halted {
		c.ui.ShowMessage(LevelSuccess, "Program halted.")
	} else {
		c.ui.ShowMessage(LevelSuccess, "Program finished, %d instructions executed", result.Executed)
	}
}

func (c *Controller) CmdCompile(input string, output string) {
	program, err := c.machine.Assembler.AssembleFile(input, output)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error compiling file: %v", err)
		return
	}

	c.ui.ShowMessage(LevelSuccess, "Successfully compiled %v to %v (%d bytes)", input, output, program.Size())
}

func (c *Controller) CmdListing(input string) {
	lines, err := readFileLines(input)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error reading file: %v", err)
		return
	}

	program, err := c.machine.Assembler.Assemble(lines)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Error compiling file: %v", err)
		return
	}

	c.ui.ShowText(program.Listing())
}

func (c *Controller) CmdLoad(path string) bool {
	if err := c.machine.Interpreter.LoadFile(path); err != nil {
		c.ui.ShowMessage(LevelError, "Error loading binary: %v", err)
		return false
	}

	c.ui.ShowMessage(LevelSuccess, "Loaded %v", path)
	return true
}

func (c *Controller) CmdRun(path string) {
	if !c.CmdLoad(path) {
		return
	}

	c.CmdContinue()
}

func (c *Controller) CmdContinue() {
	c.showResult(c.machine.Debugger.Run(c.machine.Config.MaxSteps))
}

func (c *Controller) CmdStep(args []string) {
	count := 1

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			c.ui.ShowMessage(LevelError, "Usage: step [n]: invalid count '%v'", args[0])
			return
		}
		count = n
	}

	for n := range count {
		result := c.machine.Debugger.Step()

		if result.LastInstruction != nil {
			c.ui.ShowText(c.trace.FormatStep(n+1, result.LastPC, result.LastInstruction, c.machine.Engine.Registers()))
		}

		if result.StopReason != interpreter.StopStep {
			c.showResult(result)
			return
		}
	}
}

func (c *Controller) showResult(result *interpreter.ExecutionResult) {
	switch result.StopReason {
	case interpreter.StopHalt:
		c.ui.ShowMessage(LevelSuccess, "Program execution completed (%d steps)", result.StepsExecuted)
	case interpreter.StopError:
		c.ui.ShowMessage(LevelError, "Error running binary at %v: %v", utils.FormatHex(uint(result.LastPC), 2), result.Error)
	case interpreter.StopBreakpoint:
		c.ui.ShowMessage(LevelWarning, "Breakpoint %d hit at %v", result.BreakpointID, utils.FormatHex(uint(result.LastPC), 2))
	case interpreter.StopMaxSteps:
		c.ui.ShowMessage(LevelWarning, "Stopped after %d steps without reaching HALT", result.StepsExecuted)
	default:
		c.ui.ShowMessage(LevelInfo, "Stopped (%v) after %d steps", result.StopReason, result.StepsExecuted)
	}
}

func (c *Controller) CmdBreak(arg string) {
	address, err := parseLocation(arg)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Failed to add breakpoint: %v", err)
		return
	}

	bp := c.machine.Debugger.AddBreakpoint(address)
	c.ui.ShowMessage(LevelSuccess, "Breakpoint %d set at %v", bp.ID, utils.FormatHex(uint(address), 2))
}

func (c *Controller) CmdDelete(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil || !c.machine.Debugger.RemoveBreakpoint(id) {
		c.ui.ShowMessage(LevelError, "No breakpoint with ID %v", arg)
		return
	}

	c.ui.ShowMessage(LevelSuccess, "Breakpoint %d deleted", id)
}

func (c *Controller) CmdBreakpoints() {
	breakpoints := c.machine.Debugger.ListBreakpoints()
	if len(breakpoints) == 0 {
		c.ui.ShowMessage(LevelInfo, "No breakpoints set.")
		return
	}

	var builder strings.Builder
	for _, bp := range breakpoints {
		builder.WriteString(fmt.Sprintf("%d  %v  enabled=%v hits=%d\n", bp.ID, utils.FormatHex(uint(bp.Address), 2), bp.Enabled, bp.HitCount))
	}

	c.ui.ShowText(builder.String())
}

func (c *Controller) CmdDisasm(args []string) {
	start, length, err := parseRange(args, 16)
	if err != nil {
		c.ui.ShowMessage(LevelError, "Usage: disasm [start [length]]: %v", err)
		return
	}

	c.ui.ShowText(c.trace.FormatDisassembly(c.machine.Debugger.DisassembleRange(start, start+length)))
}
