package instructions

import "fmt"

// Represents a binary instruction opcode
type OpCode uint8

const (
	// Load memory cell into register
	OpCode_LOAD OpCode = 0x01
	// Store register into memory cell
	OpCode_STORE OpCode = 0x02
	// Add two registers, save result into third
	OpCode_ADD OpCode = 0x03
	// Bitwise and of two registers, save result into third
	OpCode_AND OpCode = 0x04
	// Bitwise or of two registers, save result into third
	OpCode_OR OpCode = 0x05
	// Bitwise xor of two registers, save result into third
	OpCode_XOR OpCode = 0x06
	// Bitwise complement of a register into another
	OpCode_NOT OpCode = 0x07
	// Set the program counter
	OpCode_JUMP OpCode = 0x08
	// Write immediate into memory cell
	OpCode_INIT OpCode = 0x09
	// Print a value
	OpCode_OUT OpCode = 0x0A
	// Zero a register or memory cell
	OpCode_CLEAR OpCode = 0x0B
	// Set the verbose flag
	OpCode_VER OpCode = 0xFE
	// Stop execution
	OpCode_HALT OpCode = 0xFF
)

// Returns the mnemonic of the opcode, or its hex value if the byte is not an assigned opcode
func (op OpCode) String() string {
	if d, ok := Instructions.ByOpCode(op); ok {
		return d.Mnemonic.String()
	}

	return fmt.Sprintf("0x%02X", uint8(op))
}
