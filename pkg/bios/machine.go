package bios

import (
	"io"
	"log/slog"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc"
	"github.com/Manu343726/micro8/pkg/hw/memory"
)

// Config of a machine
type Config struct {
	// Initial state of the verbose flag
	Verbose bool
	// Instruction budget of binary runs, 0 means unlimited
	MaxSteps int
	// Slot size shared by the assembler and the binary interpreter, 0 packs
	// instructions back to back
	SlotSize int
}

func DefaultConfig() Config {
	return Config{MaxSteps: interpreter.DefaultMaxSteps}
}

// Machine wires memory, cpu, assembler and binary interpreter together
type Machine struct {
	RAM         *memory.RAM
	Engine      *cpu.Engine
	Programs    *cpu.ProgramInterpreter
	Interpreter *interpreter.Interpreter
	Debugger    *interpreter.Debugger
	Assembler   *mc.Assembler
	Config      Config

	logger *slog.Logger
}

// NewMachine builds a powered off machine. Program output goes to output,
// diagnostics to logger.
func NewMachine(config Config, logger *slog.Logger, output io.Writer) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ram := memory.NewRAM()
	engine := cpu.NewEngine(memory.NewTracedBus(ram, logger),
		cpu.WithOutput(output),
		cpu.WithLogger(logger.With(slog.String("component", "cpu"))),
		cpu.WithVerbose(config.Verbose))

	interp := interpreter.NewInterpreter(engine,
		interpreter.WithSlotSize(config.SlotSize),
		interpreter.WithLogger(logger.With(slog.String("component", "interpreter"))))

	return &Machine{
		RAM:         ram,
		Engine:      engine,
		Programs:    cpu.MakeProgramInterpreter(engine),
		Interpreter: interp,
		Debugger:    interpreter.NewDebugger(interp),
		Assembler: mc.NewAssembler(
			mc.WithSlotSize(config.SlotSize),
			mc.WithLogger(logger.With(slog.String("component", "assembler")))),
		Config: config,
		logger: logger,
	}
}

// PowerOn announces the machine and hands control to the shell
func (m *Machine) PowerOn(ui UI) *Controller {
	ui.ShowMessage(LevelInfo, "Powering on the system...")
	ui.ShowMessage(LevelInfo, "System Powered On")
	m.logger.Info("machine powered on",
		slog.Int("memory", m.RAM.Size()),
		slog.Int("registers", cpu.TotalRegisters),
		slog.Int("slot_size", m.Config.SlotSize))

	return NewController(m, ui)
}

// Reset clears memory, registers and the interpreter state
func (m *Machine) Reset() {
	m.RAM.Reset()
	m.Interpreter.Reset()
	m.Engine.SetVerbose(m.Config.Verbose)
	m.Debugger.ClearBreakpoints()
}

// RunBinary loads a binary at address 0 and runs it within the step budget
func (m *Machine) RunBinary(binary []byte) (*interpreter.ExecutionResult, error) {
	if err := m.Interpreter.LoadBinary(binary); err != nil {
		return nil, err
	}

	return m.Debugger.Run(m.Config.MaxSteps), nil
}
