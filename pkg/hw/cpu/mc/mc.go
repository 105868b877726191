package mc

import (
	"fmt"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

// Contains implementation information about the machine code
type MachineCodeDescriptor struct {
	// Information about machine instructions
	Instructions *instructions.InstructionsDescriptor
	// Number of general purpose registers
	Registers int
	// Number of memory cells
	MemorySize int
}

// Dumps all the MC description as one big multiline string
func (d *MachineCodeDescriptor) Documentation(leftpad int) string {
	leftpad_str := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	all := d.Instructions.AllInstructions()
	encodable := 0
	for _, instr := range all {
		if instr.Encodable {
			encodable++
		}
	}

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("registers: %v x 8 bits (R0-R%v)\n", d.Registers, d.Registers-1))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("memory: %v cells of 8 bits\n", d.MemorySize))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("total instructions: %v\n", len(all)))
	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("instructions with binary encoding: %v\n\n", encodable))

	builder.WriteString(leftpad_str)
	builder.WriteString("Opcodes:\n\n")

	for _, instr := range all {
		if instr.Encodable {
			builder.WriteString(fmt.Sprintf(" - %v%v %v\n", leftpad_str, utils.FormatHex(uint8(instr.OpCode), 2), instr.Mnemonic))
		}
	}

	builder.WriteString("\n")
	builder.WriteString(leftpad_str)
	builder.WriteString("Instructions:\n\n")

	for _, instr := range all {
		builder.WriteString(instr.Documentation(leftpad + 2))
		builder.WriteString("\n")
	}

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func (d *MachineCodeDescriptor) DocString() string {
	return d.Documentation(0)
}

func makeMachineCodeDescriptor() MachineCodeDescriptor {
	return MachineCodeDescriptor{
		Instructions: &instructions.Instructions,
		Registers:    cpu.TotalRegisters,
		MemorySize:   memory.Size,
	}
}

// Contains implementation information about the machine code
var Descriptor MachineCodeDescriptor = makeMachineCodeDescriptor()
