package cpu

import (
	"fmt"
	"io"

	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/Manu343726/micro8/pkg/utils"
	"gopkg.in/yaml.v3"
)

// MachineState is the report printed by exec --state. Memory lists only the
// cells that are not zero.
type MachineState struct {
	Program   string            `yaml:"program"`
	Stop      string            `yaml:"stop"`
	Steps     int               `yaml:"steps"`
	PC        *int              `yaml:"pc,omitempty"`
	HaltLine  int               `yaml:"halt_line,omitempty"`
	Error     string            `yaml:"error,omitempty"`
	Verbose   bool              `yaml:"verbose"`
	Registers map[string]uint8  `yaml:"registers"`
	Memory    map[string]string `yaml:"memory,omitempty"`
}

func baseState(machine *bios.Machine) *MachineState {
	state := &MachineState{
		Verbose:   machine.Engine.Verbose(),
		Registers: make(map[string]uint8, cpu.TotalRegisters),
		Memory:    make(map[string]string),
	}

	for r, value := range machine.Engine.Registers().Values() {
		state.Registers[cpu.Register(r).String()] = value
	}

	for address, value := range machine.RAM.Bytes() {
		if value != 0 {
			state.Memory[utils.FormatHex(uint(address), 2)] = utils.FormatByte(value)
		}
	}

	return state
}

func textState(machine *bios.Machine, result *cpu.ProgramResult, err error) *MachineState {
	state := baseState(machine)
	state.Program = "text"

	if result != nil {
		state.Steps = result.Executed
	}

	switch {
	case err != nil:
		state.Stop = interpreter.StopError.String()
		state.Error = err.Error()
	case result == nil:
		state.Stop = interpreter.StopError.String()
	case result.Halted:
		state.Stop = interpreter.StopHalt.String()
		state.HaltLine = result.HaltLine
	default:
		state.Stop = "end"
	}

	return state
}

func binaryState(machine *bios.Machine, result *interpreter.ExecutionResult) *MachineState {
	state := baseState(machine)
	state.Program = "binary"
	state.Stop = result.StopReason.String()
	state.Steps = result.StepsExecuted

	pc := machine.Interpreter.PC()
	state.PC = &pc

	if result.Error != nil {
		state.Error = result.Error.Error()
	}

	return state
}

func writeState(w io.Writer, state *MachineState) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(state); err != nil {
		fmt.Fprintf(w, "Error writing state: %v\n", err)
	}
}
