// Package interpreter runs micro8 binary programs.
//
// A binary program is a raw byte stream loaded at address 0. The interpreter
// keeps a program counter, decodes one instruction at a time through the
// shared cpu decoder and executes it with the cpu engine. The Debugger adds
// breakpoints and execution events on top.
//
// For simpler usage, use RunFile() which handles the entire flow:
//
//	result, err := interpreter.RunFile(engine, "program.bin", 65536)
//	fmt.Println("Stopped:", result.StopReason)
package interpreter

import (
	"os"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
)

// DefaultMaxSteps bounds runaway binary programs
const DefaultMaxSteps = 65536

// RunBinary loads a binary program and runs it to completion
func RunBinary(engine *cpu.Engine, binary []byte, maxSteps int, options ...Option) (*ExecutionResult, error) {
	interp := NewInterpreter(engine, options...)

	if err := interp.LoadBinary(binary); err != nil {
		return nil, err
	}

	return interp.Run(maxSteps), nil
}

// RunFile loads a raw binary file and runs it to completion. Loading failures
// are returned as errors, execution failures are reported in the result.
func RunFile(engine *cpu.Engine, path string, maxSteps int, options ...Option) (*ExecutionResult, error) {
	binary, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return RunBinary(engine, binary, maxSteps, options...)
}
