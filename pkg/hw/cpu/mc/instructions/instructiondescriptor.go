package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/micro8/pkg/utils"
)

// Contains information describing an instruction
type InstructionDescriptor struct {
	Mnemonic Mnemonic
	// Number of whitespace separated tokens of the text form, mnemonic included.
	// Zero means the instruction validates its own shape (IF).
	Tokens int
	// Usage of the text form
	Syntax string
	// Instruction description (for documentation and debugging)
	Description string

	// Accepted by the text engine
	Text bool
	// Has an assigned binary opcode
	Encodable bool
	// Executed by the binary runner
	Executable bool
	OpCode     OpCode
	// One byte per operand following the opcode byte
	Encoding []OperandKind
}

// Number of bytes of the binary form: the opcode plus one byte per operand
func (d *InstructionDescriptor) Size() int {
	return 1 + len(d.Encoding)
}

func (d *InstructionDescriptor) String() string {
	return d.Mnemonic.String()
}

func (d *InstructionDescriptor) modes() string {
	modes := []string{}

	if d.Text {
		modes = append(modes, "text")
	}
	if d.Executable {
		modes = append(modes, "binary")
	} else if d.Encodable {
		modes = append(modes, "assembler only")
	}

	return strings.Join(modes, ", ")
}

// Returns full documentation for the instruction
func (d *InstructionDescriptor) Documentation(leftpad int) string {
	var builder strings.Builder
	pad := strings.Repeat(" ", leftpad)

	builder.WriteString(fmt.Sprintf("%s%s\n", pad, d.Syntax))
	builder.WriteString(fmt.Sprintf("%s  %s\n", pad, d.Description))
	builder.WriteString(fmt.Sprintf("%s  modes: %s\n", pad, d.modes()))

	if d.Encodable {
		builder.WriteString(fmt.Sprintf("%s  opcode: %s, %d bytes (%s)\n", pad,
			utils.FormatHex(uint8(d.OpCode), 2),
			d.Size(),
			utils.FormatSlice(append([]string{"opcode"}, utils.Map(d.Encoding, OperandKind.String)...), " ")))
	}

	return builder.String()
}
