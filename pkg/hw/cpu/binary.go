package cpu

import (
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

// DecodeBinary decodes the instruction stored at the given address, failing
// with ErrInvalidOpcode for opcodes binary programs cannot execute
func DecodeBinary(bus memory.Bus, address int) (*Instruction, error) {
	opcode, err := bus.Read(address)
	if err != nil {
		return nil, err
	}

	if _, err := instructions.Instructions.DecodeOpCode(opcode); err != nil {
		return nil, err
	}

	return DisassembleBinary(bus, address)
}

// DisassembleBinary decodes the instruction stored at the given address: one
// opcode byte followed by one byte per encoded operand. Any assigned opcode is
// accepted, executable or not. Operands of kind Any decode as immediates.
func DisassembleBinary(bus memory.Bus, address int) (*Instruction, error) {
	opcode, err := bus.Read(address)
	if err != nil {
		return nil, err
	}

	desc, ok := instructions.Instructions.ByOpCode(instructions.OpCode(opcode))
	if !ok {
		return nil, makeError(ErrInvalidOpcode, "%v at address %d", utils.FormatHex(opcode, 2), address)
	}

	instr := &Instruction{
		Descriptor: desc,
		Operands:   make([]Operand, len(desc.Encoding)),
	}

	for n, kind := range desc.Encoding {
		value, err := bus.Read(address + 1 + n)
		if err != nil {
			return nil, err
		}

		switch kind {
		case instructions.OperandKind_Register:
			r := Register(value)
			if !r.Valid() {
				return nil, makeError(ErrInvalidRegister, "operand %d of %v at address %d is register index %d", n, desc.Mnemonic, address, value)
			}
			instr.Operands[n] = RegisterOperand(r)
		case instructions.OperandKind_Address:
			instr.Operands[n] = AddressOperand(int(value))
		default:
			instr.Operands[n] = ImmediateOperand(value)
		}
	}

	return instr, nil
}
