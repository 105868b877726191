package cpu

import (
	"errors"
	"fmt"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
)

var (
	ErrOutOfBounds        = memory.ErrOutOfBounds
	ErrUnknownInstruction = instructions.ErrUnknownInstruction
	ErrInvalidOpcode      = instructions.ErrInvalidOpcode

	ErrArity                     = errors.New("wrong number of operands")
	ErrInvalidRegister           = errors.New("invalid register")
	ErrInvalidAddress            = errors.New("invalid address")
	ErrInvalidImmediate          = errors.New("invalid immediate value")
	ErrInvalidFlag               = errors.New("invalid flag")
	ErrInvalidCondition          = errors.New("invalid condition")
	ErrInvalidOperandCombination = errors.New("invalid operand combination")
	ErrInvalidDestination        = errors.New("invalid destination")
	ErrSyntax                    = errors.New("syntax error")
)

type Error error

func makeError(err Error, message string, args ...interface{}) Error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

// InstructionError reports the instruction line an engine failure comes from
type InstructionError struct {
	Line string
	Err  error
}

func (err *InstructionError) Error() string {
	return fmt.Sprintf("'%v': %v", err.Line, err.Err)
}

func (err *InstructionError) Unwrap() error {
	return err.Err
}

// ProgramError reports the failing line of a program
type ProgramError struct {
	// One based line number
	Line    int
	Command string
	Err     error
}

func MakeProgramError(line int, command string, err error) error {
	return &ProgramError{Line: line, Command: command, Err: err}
}

func (err *ProgramError) Error() string {
	return fmt.Sprintf("error at line %v (%v): %v", err.Line, err.Command, err.Err)
}

func (err *ProgramError) Unwrap() error {
	return err.Err
}
