package cpu

import (
	"fmt"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/utils"
)

// Instruction is a decoded instruction, ready to be executed by the engine
type Instruction struct {
	Descriptor *instructions.InstructionDescriptor
	Operands   []Operand

	// IF only
	Condition *Condition
	Then      *Instruction
	Else      *Instruction
}

func (i *Instruction) Mnemonic() instructions.Mnemonic {
	return i.Descriptor.Mnemonic
}

// Size returns the number of bytes of the binary form
func (i *Instruction) Size() int {
	return i.Descriptor.Size()
}

// String returns the canonical text form of the instruction
func (i *Instruction) String() string {
	switch i.Mnemonic() {
	case instructions.Mnemonic_IF:
		text := fmt.Sprintf("IF %v %v %v THEN %v", i.Condition.Lhs, i.Condition.Cmp, i.Condition.Rhs, i.Then)
		if i.Else != nil {
			text += fmt.Sprintf(" ELSE %v", i.Else)
		}
		return text
	case instructions.Mnemonic_INIT:
		return fmt.Sprintf("INIT %v = %v", i.Operands[0], i.Operands[1])
	}

	if len(i.Operands) == 0 {
		return i.Mnemonic().String()
	}

	return i.Mnemonic().String() + " " + utils.FormatSlice(i.Operands, " ")
}

// Encode returns the binary form of the instruction: the opcode byte followed
// by one byte per operand
func (i *Instruction) Encode() ([]byte, error) {
	d := i.Descriptor
	if !d.Encodable {
		return nil, makeError(ErrUnknownInstruction, "%v has no binary encoding", d.Mnemonic)
	}

	operands := i.Operands
	if d.Mnemonic == instructions.Mnemonic_VER && len(operands) > 0 {
		// only the flag is encoded
		operands = operands[len(operands)-1:]
	}

	if len(operands) != len(d.Encoding) {
		return nil, makeError(ErrArity, "%v encodes %d operands, got %d", d.Mnemonic, len(d.Encoding), len(operands))
	}

	binary := make([]byte, 0, d.Size())
	binary = append(binary, byte(d.OpCode))

	for _, op := range operands {
		binary = append(binary, byte(op.Value))
	}

	return binary, nil
}

// StripComment removes a trailing ';' comment and surrounding whitespace
func StripComment(line string) string {
	if code, _, hasComment := strings.Cut(line, ";"); hasComment {
		line = code
	}

	return strings.TrimSpace(line)
}

// LabelName returns the label declared by a line of the form 'name:'
func LabelName(line string) (string, bool) {
	line = StripComment(line)

	name, isLabel := strings.CutSuffix(line, ":")
	if !isLabel || len(name) == 0 || strings.ContainsAny(name, " \t") {
		return "", false
	}

	return name, true
}

func IsLabel(line string) bool {
	_, isLabel := LabelName(line)
	return isLabel
}
