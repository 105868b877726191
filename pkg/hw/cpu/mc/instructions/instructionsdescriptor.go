package instructions

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Manu343726/micro8/pkg/utils"
)

var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrInvalidOpcode      = errors.New("invalid opcode")
)

// Contains information about all implemented instructions
type InstructionsDescriptor struct {
	instructions map[Mnemonic]*InstructionDescriptor
	byName       map[string]*InstructionDescriptor
	byOpCode     map[OpCode]*InstructionDescriptor
}

// Initializes an instructions descriptor with all the given instructions
func NewInstructionsDescriptor(instructions []*InstructionDescriptor) InstructionsDescriptor {
	d := InstructionsDescriptor{
		instructions: make(map[Mnemonic]*InstructionDescriptor, len(instructions)),
		byName:       make(map[string]*InstructionDescriptor, len(instructions)),
		byOpCode:     make(map[OpCode]*InstructionDescriptor, len(instructions)),
	}

	for _, instr := range instructions {
		if _, duplicated := d.instructions[instr.Mnemonic]; duplicated {
			panic(fmt.Sprintf("instruction %v registered twice", mnemonicNames[instr.Mnemonic]))
		}

		d.instructions[instr.Mnemonic] = instr
		d.byName[mnemonicNames[instr.Mnemonic]] = instr

		if instr.Encodable {
			if other, taken := d.byOpCode[instr.OpCode]; taken {
				panic(fmt.Sprintf("opcode 0x%02X of %v already assigned to %v", uint8(instr.OpCode), mnemonicNames[instr.Mnemonic], mnemonicNames[other.Mnemonic]))
			}
			d.byOpCode[instr.OpCode] = instr
		} else if instr.Executable {
			panic(fmt.Sprintf("instruction %v is executable but has no opcode", mnemonicNames[instr.Mnemonic]))
		}
	}

	if len(d.instructions) != int(TOTAL_MNEMONICS) {
		panic("missing entry in instructions table??? Make sure every Mnemonic has a descriptor in the NewInstructionsDescriptor() call")
	}

	return d
}

// Returns the descriptor of a mnemonic
func (d *InstructionsDescriptor) Instruction(m Mnemonic) *InstructionDescriptor {
	return d.instructions[m]
}

// Returns the descriptor accepted by the text engine for the given mnemonic.
// Matching is exact and case sensitive.
func (d *InstructionsDescriptor) Parse(mnemonic string) (*InstructionDescriptor, error) {
	if instr, ok := d.byName[mnemonic]; ok && instr.Text {
		return instr, nil
	}

	return nil, utils.MakeError(ErrUnknownInstruction, "'%v'", mnemonic)
}

// Returns the descriptor with an assigned opcode for the given mnemonic
func (d *InstructionsDescriptor) ParseEncodable(mnemonic string) (*InstructionDescriptor, error) {
	if instr, ok := d.byName[mnemonic]; ok && instr.Encodable {
		return instr, nil
	}

	return nil, utils.MakeError(ErrUnknownInstruction, "'%v' has no binary encoding", mnemonic)
}

// Returns the descriptor assigned to an opcode, executable or not
func (d *InstructionsDescriptor) ByOpCode(op OpCode) (*InstructionDescriptor, bool) {
	instr, ok := d.byOpCode[op]
	return instr, ok
}

// Decodes an opcode byte into one of the instructions the binary runner executes
func (d *InstructionsDescriptor) DecodeOpCode(binaryRepresentation byte) (*InstructionDescriptor, error) {
	instr, ok := d.byOpCode[OpCode(binaryRepresentation)]

	if !ok {
		return nil, utils.MakeError(ErrInvalidOpcode, "%v (bin: %v)", utils.FormatHex(binaryRepresentation, 2), utils.FormatByte(binaryRepresentation))
	}
	if !instr.Executable {
		return nil, utils.MakeError(ErrInvalidOpcode, "%v (%v) is not executable from a binary program", utils.FormatHex(binaryRepresentation, 2), instr.Mnemonic)
	}

	return instr, nil
}

// Returns all implemented instructions in mnemonic order
func (d *InstructionsDescriptor) AllInstructions() []*InstructionDescriptor {
	all := make([]*InstructionDescriptor, 0, len(d.instructions))

	for _, instr := range d.instructions {
		all = append(all, instr)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Mnemonic < all[j].Mnemonic })
	return all
}

// Returns the documentation of the whole instruction set
func (d *InstructionsDescriptor) DocString() string {
	var builder strings.Builder

	builder.WriteString("micro8 instruction set\n\n")
	builder.WriteString("Operands: Rn (register 0-7), [addr] (memory cell, decimal or 0x hex), immediate (decimal, 0x hex or 0b binary, 8 bits)\n\n")

	for _, instr := range d.AllInstructions() {
		builder.WriteString(instr.Documentation(2))
		builder.WriteString("\n")
	}

	return builder.String()
}
