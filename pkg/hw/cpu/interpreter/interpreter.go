package interpreter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

var ErrHalted = errors.New("cpu is halted")

// Interpreter runs binary programs resident in memory, driving the shared
// execution engine with a program counter
type Interpreter struct {
	engine   *cpu.Engine
	pc       int
	halted   bool
	slotSize int
	logger   *slog.Logger
}

type Option func(*Interpreter)

// WithSlotSize makes every instruction occupy at least the given number of
// bytes. Zero (the default) packs instructions back to back.
func WithSlotSize(slotSize int) Option {
	return func(i *Interpreter) {
		i.slotSize = slotSize
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

func NewInterpreter(engine *cpu.Engine, options ...Option) *Interpreter {
	i := &Interpreter{
		engine: engine,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(i)
	}

	return i
}

func (i *Interpreter) Engine() *cpu.Engine {
	return i.engine
}

func (i *Interpreter) PC() int {
	return i.pc
}

func (i *Interpreter) SetPC(pc int) {
	i.pc = pc
}

func (i *Interpreter) Halted() bool {
	return i.halted
}

func (i *Interpreter) SlotSize() int {
	return i.slotSize
}

// LoadBinary writes the program at address 0 and resets the program counter.
// Memory past the end of the program is left untouched.
func (i *Interpreter) LoadBinary(binary []byte) error {
	if len(binary) > memory.Size {
		return utils.MakeError(memory.ErrOutOfBounds, "program of %d bytes does not fit in %d bytes of memory", len(binary), memory.Size)
	}

	bus := i.engine.Memory()
	for address, value := range binary {
		if err := bus.Write(address, value); err != nil {
			return err
		}
	}

	i.pc = 0
	i.halted = false

	i.logger.Debug("binary loaded", slog.Int("size", len(binary)))
	return nil
}

// LoadFile loads a raw binary file
func (i *Interpreter) LoadFile(path string) error {
	binary, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return i.LoadBinary(binary)
}

// DecodeInstruction decodes the instruction at the current PC
func (i *Interpreter) DecodeInstruction() (*cpu.Instruction, error) {
	return cpu.DecodeBinary(i.engine.Memory(), i.pc)
}

// Advance returns how many bytes the instruction occupies in a program
func (i *Interpreter) Advance(instr *cpu.Instruction) int {
	return max(i.slotSize, instr.Size())
}

// StepResult describes one executed instruction
type StepResult struct {
	// PC of the executed instruction
	PC          int
	NextPC      int
	Instruction *cpu.Instruction
	Halted      bool
}

// Step executes the instruction at the current PC
func (i *Interpreter) Step() (*StepResult, error) {
	if i.halted {
		return nil, ErrHalted
	}

	pc := i.pc

	instr, err := i.DecodeInstruction()
	if err != nil {
		return nil, fmt.Errorf("error decoding instruction at %v: %w", utils.FormatHex(uint(pc), 2), err)
	}

	next := pc + i.Advance(instr)

	if instr.Mnemonic() == instructions.Mnemonic_JUMP {
		next = instr.Operands[0].Value
	} else {
		cont, err := i.engine.Exec(instr)
		if err != nil {
			return nil, fmt.Errorf("error executing %v at %v: %w", instr, utils.FormatHex(uint(pc), 2), err)
		}

		if !cont {
			i.halted = true
			next = pc
		}
	}

	i.pc = next

	i.logger.Debug("step",
		slog.Int("pc", pc),
		slog.String("instruction", instr.String()),
		slog.Int("next", next),
		slog.Bool("halted", i.halted))

	return &StepResult{
		PC:          pc,
		NextPC:      next,
		Instruction: instr,
		Halted:      i.halted,
	}, nil
}

// Run executes up to maxSteps instructions (0 = unlimited)
func (i *Interpreter) Run(maxSteps int) *ExecutionResult {
	return NewDebugger(i).Run(maxSteps)
}

// Reset clears the program counter, the halted state and the engine registers.
// Memory is left untouched.
func (i *Interpreter) Reset() {
	i.pc = 0
	i.halted = false
	i.engine.Reset()
}
