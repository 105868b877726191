package cpu

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Manu343726/micro8/cmd/settings"
	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/spf13/cobra"
)

// Exit codes of the exec command
const (
	exitOK = iota
	exitLoadError
	exitExecutionError
	exitNotHalted
)

var (
	execTrace       bool
	execBreakpoints []string
	execState       bool
)

var execCmd = &cobra.Command{
	Use:   "exec <file>",
	Short: "Execute a micro8 program",
	Long: `Loads and executes a micro8 program file.

The command accepts either:
  - Text programs (.asm) - interpreted one line at a time
  - Binary programs (any other extension) - loaded at address 0 and run
    until HALT or the step budget (--max-steps) is exhausted

Binary programs are packed by default: each instruction takes its opcode
byte plus one byte per operand, as produced by "micro8 cpu compile". Binaries
laid out in fixed 4 byte slots (e.g. 01 00 0A 00 FF) need --slot-size 4,
otherwise the padding bytes are decoded as opcodes and fail with an invalid
opcode error.

Breakpoints and tracing only apply to binary programs. When a breakpoint is
hit the register file is printed and execution resumes.

Example:
  micro8 cpu exec program.asm
  micro8 cpu exec --trace --break 0x04 program.bin
  micro8 --slot-size 4 cpu exec slotted.bin`,
	Args: cobra.ExactArgs(1),
	Run:  runExec,
}

func init() {
	CpuCmd.AddCommand(execCmd)
	execCmd.Flags().BoolVarP(&execTrace, "trace", "t", false, "Trace each binary instruction to stderr")
	execCmd.Flags().StringSliceVarP(&execBreakpoints, "break", "b", nil, "Report the register file each time this address is reached (binary programs only)")
	execCmd.Flags().BoolVar(&execState, "state", false, "Print the final machine state as YAML")
}

type execOptions struct {
	trace       bool
	breakpoints []int
	state       bool
	style       interpreter.FormatStyle
}

func runExec(cmd *cobra.Command, args []string) {
	breakpoints, err := parseAddresses(execBreakpoints)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitLoadError)
	}

	machine := bios.NewMachine(settings.Current().Machine(), settings.Logger(), os.Stdout)
	code := execute(machine, args[0], execOptions{
		trace:       execTrace,
		breakpoints: breakpoints,
		state:       execState,
		style:       terminalStyle(os.Stderr),
	}, os.Stdout, os.Stderr)

	if code != exitOK {
		os.Exit(code)
	}
}

// parseAddresses parses memory addresses in any base accepted by strconv
func parseAddresses(values []string) ([]int, error) {
	addresses := make([]int, 0, len(values))
	for _, value := range values {
		address, err := strconv.ParseUint(strings.TrimSpace(value), 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", value, cpu.ErrInvalidAddress)
		}
		addresses = append(addresses, int(address))
	}

	return addresses, nil
}

func isTextProgram(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".asm")
}

// execute runs the program at path and returns the process exit code
func execute(machine *bios.Machine, path string, options execOptions, stdout io.Writer, stderr io.Writer) int {
	if isTextProgram(path) {
		return executeText(machine, path, options, stdout, stderr)
	}

	return executeBinary(machine, path, options, stdout, stderr)
}

func executeText(machine *bios.Machine, path string, options execOptions, stdout io.Writer, stderr io.Writer) int {
	result, err := machine.Programs.RunFile(path)

	if options.state {
		writeState(stdout, textState(machine, result, err))
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitExecutionError
	}

	return exitOK
}

func executeBinary(machine *bios.Machine, path string, options execOptions, stdout io.Writer, stderr io.Writer) int {
	binary, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return exitLoadError
	}

	if err := machine.Interpreter.LoadBinary(binary); err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return exitLoadError
	}

	dbg := machine.Debugger
	formatter := interpreter.NewTraceFormatter(options.style)

	if options.trace {
		dbg.SetEventCallback(func(event interpreter.ExecutionEvent, result *interpreter.ExecutionResult) bool {
			if (event == interpreter.EventStep || event == interpreter.EventHalt) && result.LastInstruction != nil {
				fmt.Fprintln(stderr, formatter.FormatStep(result.StepsExecuted, result.LastPC, result.LastInstruction, machine.Engine.Registers()))
			}
			return true
		})
	}

	for _, address := range options.breakpoints {
		dbg.AddBreakpoint(address)
	}

	total := runWithBreakpoints(machine, stderr)

	if options.state {
		writeState(stdout, binaryState(machine, total))
	}

	switch total.StopReason {
	case interpreter.StopHalt:
		return exitOK
	case interpreter.StopError:
		fmt.Fprint(stderr, formatter.FormatSummary(total))
		return exitExecutionError
	default:
		fmt.Fprint(stderr, formatter.FormatSummary(total))
		return exitNotHalted
	}
}

// runWithBreakpoints runs the loaded binary within the configured budget,
// reporting and resuming at every breakpoint. The returned result accumulates
// the steps of every resumed run.
func runWithBreakpoints(machine *bios.Machine, stderr io.Writer) *interpreter.ExecutionResult {
	budget := machine.Config.MaxSteps
	total := &interpreter.ExecutionResult{}

	for {
		remaining := 0
		if budget > 0 {
			remaining = budget - total.StepsExecuted
			if remaining <= 0 {
				total.StopReason = interpreter.StopMaxSteps
				return total
			}
		}

		result := machine.Debugger.Run(remaining)
		total.StepsExecuted += result.StepsExecuted
		total.StopReason = result.StopReason
		total.Error = result.Error
		total.LastPC = result.LastPC
		total.LastInstruction = result.LastInstruction
		total.BreakpointID = result.BreakpointID

		if result.StopReason != interpreter.StopBreakpoint {
			return total
		}

		fmt.Fprintf(stderr, "Breakpoint %d hit at 0x%02X:", result.BreakpointID, result.LastPC)
		for r, value := range machine.Engine.Registers().Values() {
			fmt.Fprintf(stderr, " R%d=%d", r, value)
		}
		fmt.Fprintln(stderr)
	}
}
