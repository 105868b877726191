package cpu

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/logic"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

// Engine executes instructions against a register file and a memory bus.
// Both the text interpreter and the binary runner drive the same engine.
type Engine struct {
	registers Registers
	alu       arithmeticUnit
	memory    memory.Bus
	verbose   bool
	output    io.Writer
	logger    *slog.Logger
}

type Option func(*Engine)

// WithOutput sets where OUT and verbose trace lines are written. Defaults to stdout.
func WithOutput(output io.Writer) Option {
	return func(e *Engine) {
		e.output = output
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithVerbose sets the initial state of the verbose flag
func WithVerbose(verbose bool) Option {
	return func(e *Engine) {
		e.verbose = verbose
	}
}

func NewEngine(bus memory.Bus, options ...Option) *Engine {
	e := &Engine{
		memory: bus,
		output: os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}

	e.alu = arithmeticUnit{rs: &e.registers}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Engine) Registers() *Registers {
	return &e.registers
}

func (e *Engine) Memory() memory.Bus {
	return e.memory
}

func (e *Engine) Verbose() bool {
	return e.verbose
}

func (e *Engine) SetVerbose(verbose bool) {
	e.verbose = verbose
}

// Reset clears the registers and the verbose flag. Memory is left untouched.
func (e *Engine) Reset() {
	e.registers.Reset()
	e.verbose = false
}

// Execute decodes and executes one line of text. It returns false if the
// instruction asks to stop execution.
func (e *Engine) Execute(line string) (bool, error) {
	instr, err := Decode(line)
	if err != nil {
		return false, &InstructionError{Line: StripComment(line), Err: err}
	}

	if instr == nil {
		return true, nil
	}

	return e.Exec(instr)
}

// Exec executes an already decoded instruction. It returns false if the
// instruction asks to stop execution. A failed instruction leaves the
// machine state as it was before the failing step.
func (e *Engine) Exec(instr *Instruction) (bool, error) {
	cont, err := e.exec(instr)
	if err != nil {
		e.logger.Debug("instruction failed", slog.String("instruction", instr.String()), slog.Any("error", err))
		return false, &InstructionError{Line: instr.String(), Err: err}
	}

	e.logger.Debug("executed", slog.String("instruction", instr.String()), slog.Bool("continue", cont))
	return cont, nil
}

func (e *Engine) trace(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(e.output, format+"\n", args...)
	}
}

func (e *Engine) load(op Operand) (uint8, error) {
	switch op.Kind {
	case instructions.OperandKind_Register:
		return e.registers.Read(op.Register())
	case instructions.OperandKind_Address:
		return e.memory.Read(op.Value)
	default:
		return uint8(op.Value), nil
	}
}

func (e *Engine) store(op Operand, value uint8) error {
	switch op.Kind {
	case instructions.OperandKind_Register:
		return e.registers.Write(value, op.Register())
	case instructions.OperandKind_Address:
		return e.memory.Write(op.Value, value)
	default:
		return makeError(ErrInvalidDestination, "cannot write to immediate '%v'", op)
	}
}

func (e *Engine) exec(instr *Instruction) (bool, error) {
	ops := instr.Operands
	m := instr.Mnemonic()

	switch m {
	case instructions.Mnemonic_LOAD:
		value, err := e.memory.Read(ops[1].Value)
		if err != nil {
			return false, err
		}
		if err := e.registers.Write(value, ops[0].Register()); err != nil {
			return false, err
		}
		e.trace("LOAD: Loaded %v = %v", ops[0], utils.FormatByte(value))

	case instructions.Mnemonic_STORE:
		value, err := e.registers.Read(ops[0].Register())
		if err != nil {
			return false, err
		}
		if err := e.memory.Write(ops[1].Value, value); err != nil {
			return false, err
		}
		e.trace("STORE: Stored %v into %v = %v", ops[0], ops[1], utils.FormatByte(value))

	case instructions.Mnemonic_ADD,
		instructions.Mnemonic_AND,
		instructions.Mnemonic_OR,
		instructions.Mnemonic_NAND,
		instructions.Mnemonic_NOR,
		instructions.Mnemonic_XOR:
		result, err := e.alu.BinaryOp(ops[0].Register(), ops[1].Register(), ops[2].Register(), binaryOps[m])
		if err != nil {
			return false, err
		}
		e.trace("%v: %v %v %v = %v", m, ops[0], m, ops[1], utils.FormatByte(result))

	case instructions.Mnemonic_NOT:
		result, err := e.alu.UnaryOp(ops[0].Register(), ops[1].Register(), logic.Not)
		if err != nil {
			return false, err
		}
		e.trace("NOT: NOT %v = %v", ops[0], utils.FormatByte(result))

	case instructions.Mnemonic_MOV:
		value, err := e.load(ops[1])
		if err != nil {
			return false, err
		}
		if err := e.store(ops[0], value); err != nil {
			return false, err
		}
		e.trace("MOV: Moved %v to %v", utils.FormatByte(value), ops[0])

	case instructions.Mnemonic_QMOV:
		from, to := ops[0], ops[1]
		value, err := e.load(from)
		if err != nil {
			return false, err
		}
		if err := e.store(to, value); err != nil {
			return false, err
		}
		if err := e.store(from, 0); err != nil {
			return false, err
		}
		e.trace("QMOV: Moved %v from %v to %v, cleared %v", utils.FormatByte(value), from, to, from)

	case instructions.Mnemonic_INIT:
		if err := e.memory.Write(ops[0].Value, uint8(ops[1].Value)); err != nil {
			return false, err
		}
		e.trace("INIT: Set %v = %v", ops[0], utils.FormatByte(uint8(ops[1].Value)))

	case instructions.Mnemonic_CLEAR:
		if err := e.store(ops[0], 0); err != nil {
			return false, err
		}
		e.trace("CLEAR: Cleared %v", ops[0])

	case instructions.Mnemonic_OUT:
		value, err := e.load(ops[0])
		if err != nil {
			return false, err
		}
		switch ops[0].Kind {
		case instructions.OperandKind_Register:
			fmt.Fprintf(e.output, "OUT: REG %v=%v\n", ops[0], utils.FormatByte(value))
		case instructions.OperandKind_Address:
			fmt.Fprintf(e.output, "OUT: MEM %v=%v\n", ops[0], utils.FormatByte(value))
		default:
			fmt.Fprintf(e.output, "OUT: Value %v\n", utils.FormatByte(value))
		}

	case instructions.Mnemonic_VER:
		flag := ops[len(ops)-1].Value
		e.verbose = flag == 1
		e.trace("VER: VER = 1 -> SET")

	case instructions.Mnemonic_IF:
		return e.execIf(instr)

	case instructions.Mnemonic_HALT:
		e.trace("HALT: Execution stopped")
		return false, nil

	case instructions.Mnemonic_JUMP:
		return false, makeError(ErrUnknownInstruction, "JUMP needs a program counter, it only runs from binary programs")

	default:
		return false, makeError(ErrUnknownInstruction, "'%v'", m)
	}

	return true, nil
}

func (e *Engine) execIf(instr *Instruction) (bool, error) {
	c := instr.Condition

	lhs, err := e.registers.Read(c.Lhs)
	if err != nil {
		return false, err
	}

	rhs, err := e.load(c.Rhs)
	if err != nil {
		return false, err
	}

	if c.Cmp.Eval(lhs, rhs) {
		e.trace("IF: %v %v %v is true", c.Lhs, c.Cmp, c.Rhs)
		return e.exec(instr.Then)
	}

	if instr.Else != nil {
		e.trace("IF: %v %v %v is false, taking ELSE", c.Lhs, c.Cmp, c.Rhs)
		return e.exec(instr.Else)
	}

	e.trace("IF: %v %v %v is false, skipped", c.Lhs, c.Cmp, c.Rhs)
	return true, nil
}
