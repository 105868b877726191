package cpu

import (
	"bufio"
	"io"
	"os"
)

// CommandInterpreter runs one line of program text
type CommandInterpreter interface {
	// Run returns false if the command asked to stop the program
	Run(command string) (bool, error)
}

type engineInterpreter struct {
	engine *Engine
}

// MakeCommandInterpreter exposes the engine as a line interpreter
func MakeCommandInterpreter(e *Engine) CommandInterpreter {
	return &engineInterpreter{engine: e}
}

func (i *engineInterpreter) Run(command string) (bool, error) {
	return i.engine.Execute(command)
}

type sanitizedCommandInterpreter struct {
	CommandInterpreter
}

// MakeSanitizedCommandInterpreter skips blank lines, comment only lines and
// label declarations
func MakeSanitizedCommandInterpreter(i CommandInterpreter) CommandInterpreter {
	return &sanitizedCommandInterpreter{
		CommandInterpreter: i,
	}
}

func (i *sanitizedCommandInterpreter) Run(command string) (bool, error) {
	command = StripComment(command)

	if len(command) <= 0 || IsLabel(command) {
		return true, nil
	}

	return i.CommandInterpreter.Run(command)
}

// ProgramResult summarizes a text program run
type ProgramResult struct {
	// Number of lines that were executed
	Executed int
	Halted   bool
	// One based line of the instruction that stopped the program, zero if the
	// program ran to completion
	HaltLine int
}

type ProgramInterpreter struct {
	impl CommandInterpreter
}

func MakeProgramInterpreter(e *Engine) *ProgramInterpreter {
	return &ProgramInterpreter{
		impl: MakeSanitizedCommandInterpreter(MakeCommandInterpreter(e)),
	}
}

// Run executes the program line by line, stopping at the first failing line
// or at the first instruction that asks to stop
func (i *ProgramInterpreter) Run(lines []string) (*ProgramResult, error) {
	result := &ProgramResult{}

	for n, line := range lines {
		cont, err := i.impl.Run(line)
		if err != nil {
			return result, MakeProgramError(n+1, StripComment(line), err)
		}

		if command := StripComment(line); len(command) > 0 && !IsLabel(command) {
			result.Executed++
		}

		if !cont {
			result.Halted = true
			result.HaltLine = n + 1
			break
		}
	}

	return result, nil
}

func ReadLines(input io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

func (i *ProgramInterpreter) RunReader(input io.Reader) (*ProgramResult, error) {
	lines, err := ReadLines(input)
	if err != nil {
		return nil, err
	}

	return i.Run(lines)
}

func (i *ProgramInterpreter) RunFile(path string) (*ProgramResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return i.RunReader(file)
}
